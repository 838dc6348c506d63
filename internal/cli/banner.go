package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

func displayWelcomeBanner(w io.Writer, version string) {
	banner := `
   ___      _              _                    _
  / __| __ _| |___ ___    /_\  __ _ ___ _ _  | |_
  \__ \/ _' | / -_|_-<   / _ \/ _' / -_) ' \ |  _|
  |___/\__,_|_\___/__/  /_/ \_\__, \___|_||_| \__|
                              |___/
`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Fprintln(w, red(banner))
	fmt.Fprintln(w, blue(fmt.Sprintf("Sales Agent dashboard (v%s)", version)))
}

package importer

import (
	"errors"
	"fmt"
)

// ErrEmptyFile is returned when the upload has no header row.
var ErrEmptyFile = errors.New("file has no header row")

// Warning is a non-fatal problem found while loading a file.
type Warning struct {
	Column  string `json:"column"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Column, w.Message)
}

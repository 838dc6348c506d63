package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/sale"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ParseFormats reads a comma-separated list such as "csv,pdf".
func ParseFormats(s string) ([]Format, error) {
	var out []Format

	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))

		switch f {
		case "":
			continue
		case FormatCSV, FormatJSON, FormatPDF:
			out = append(out, f)
		default:
			return nil, fmt.Errorf("unknown report type %q", part)
		}
	}

	return out, nil
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Service writes a dashboard report in downloadable formats.
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// Write renders r in format f to w.
func (s *Service) Write(w io.Writer, r *dashboard.Report, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, r.Dataset)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatPDF:
		return WritePDF(w, r)
	default:
		return fmt.Errorf("unknown report type %q", f)
	}
}

// ToDir writes one file per format into dir and returns their absolute paths.
func (s *Service) ToDir(r *dashboard.Report, formats []Format, dir string) ([]string, error) {
	paths := make([]string, 0, len(formats))

	for _, f := range formats {
		name, err := s.generateFilename("relatorio_vendas", dir, f)
		if err != nil {
			return nil, err
		}

		if err := s.writeFile(name, r, f); err != nil {
			return nil, err
		}

		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}

		paths = append(paths, abs)
	}

	return paths, nil
}

func (s *Service) writeFile(name string, r *dashboard.Report, f Format) error {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := s.Write(file, r, f); err != nil {
		return fmt.Errorf("writing %s report: %w", f, err)
	}

	return nil
}

// Filename is the attachment name offered for downloads.
func (s *Service) Filename(f Format) string {
	return fmt.Sprintf("relatorio_vendas_%s.%s", s.now().Format("20060102_150405"), f)
}

func (s *Service) generateFilename(base, dir string, f Format) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}

		dir = cwd
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %q: %w", dir, err)
	}

	name := fmt.Sprintf("%s_%s.%s", base, s.now().Format("20060102_150405"), f)

	return filepath.Join(dir, name), nil
}

// WriteCSV writes the filtered rows with the original header, semicolon separated.
func WriteCSV(w io.Writer, ds *sale.Dataset) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(ds.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range ds.Records {
		if err := writer.Write(r.Raw); err != nil {
			return fmt.Errorf("writing line %d: %w", r.Line, err)
		}
	}

	writer.Flush()

	return writer.Error()
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *dashboard.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	return nil
}

package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/salesagent/internal/encoding"
)

var (
	ErrColumnMissing   = errors.New("column not present")
	ErrColumnAmbiguous = errors.New("column header appears more than once; left unnormalized")
)

// Table is the raw semicolon-separated export: the header and the non-blank rows below it.
type Table struct {
	Header []string
	Rows   [][]string
	Lines  []int // 1-based source line of each row

	index map[string][]int
}

// ReadTable decodes r to UTF-8 and reads it as a semicolon-separated table.
// The first row with any non-empty cell is the header.
func ReadTable(r io.Reader) (*Table, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var t *Table

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if isBlank(row) {
			continue
		}

		if t == nil {
			t = newTable(row)
			continue
		}

		line, _ := reader.FieldPos(0)
		t.Rows = append(t.Rows, row)
		t.Lines = append(t.Lines, line)
	}

	if t == nil {
		return nil, ErrEmptyFile
	}

	return t, nil
}

func newTable(header []string) *Table {
	t := &Table{
		Header: make([]string, len(header)),
		index:  make(map[string][]int, len(header)),
	}

	for i, cell := range header {
		name := strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		t.Header[i] = name

		if name != "" {
			t.index[name] = append(t.index[name], i)
		}
	}

	return t
}

// Index returns the position of col in the header.
func (t *Table) Index(col string) (int, error) {
	idx := t.index[col]

	switch len(idx) {
	case 0:
		return -1, ErrColumnMissing
	case 1:
		return idx[0], nil
	default:
		return idx[0], ErrColumnAmbiguous
	}
}

// Cell returns the trimmed value at row i, column idx, or "" when out of range.
func (t *Table) Cell(i, idx int) string {
	row := t.Rows[i]
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

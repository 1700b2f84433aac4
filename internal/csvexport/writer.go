package csvexport

import (
	"encoding/csv"
	"io"
	"strings"
)

// Writer wraps csv.Writer for rendering spreadsheet sheets as CSV text.
type Writer struct {
	out    io.Writer
	csv    *csv.Writer
	sheets int
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w, csv: csv.NewWriter(w)}
}

// WriteSheet writes the rows of one sheet. Sheets after the first are
// separated from the previous one by a blank line. Trailing empty cells are
// dropped from every row and fully empty trailing rows are skipped.
func (w *Writer) WriteSheet(rows [][]string) error {
	rows = trimRows(rows)
	if len(rows) == 0 {
		return nil
	}
	if w.sheets > 0 {
		w.csv.Flush()
		if err := w.csv.Error(); err != nil {
			return err
		}
		if _, err := io.WriteString(w.out, "\n"); err != nil {
			return err
		}
	}
	w.sheets++
	return w.csv.WriteAll(rows)
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func trimRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		end := len(row)
		for end > 0 && strings.TrimSpace(row[end-1]) == "" {
			end--
		}
		out = append(out, row[:end])
	}
	last := len(out)
	for last > 0 && len(out[last-1]) == 0 {
		last--
	}
	return out[:last]
}

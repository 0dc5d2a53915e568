package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Writer streams rows as CSV with the header matching the active column
// set. Rows are written as they arrive; nothing is buffered beyond the
// csv package's own buffering, so reports of any size stream in constant
// memory.
type Writer struct {
	csv         *csv.Writer
	opts        Options
	wroteHeader bool
	count       int
}

// NewWriter creates a report writer over w.
func NewWriter(w io.Writer, opts Options) *Writer {
	return &Writer{csv: csv.NewWriter(w), opts: opts}
}

// WriteRow writes one pre-encoded row, emitting the header first if this
// is the first row.
func (w *Writer) WriteRow(row []string) error {
	if !w.wroteHeader {
		if err := w.csv.Write(Header(w.opts)); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		w.wroteHeader = true
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	w.count++
	return nil
}

// WriteAll writes every row, then flushes.
func (w *Writer) WriteAll(rows [][]string) error {
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Count returns the number of data rows written.
func (w *Writer) Count() int {
	return w.count
}

// Flush flushes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

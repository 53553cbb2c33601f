// =============================================================================
// Fixed-Width to CSV Converter - CSV Writer Module
// =============================================================================
//
// Serializes records as comma-separated lines. Each line is flushed as soon
// as it is written, so a conversion that fails halfway leaves every earlier
// line on disk.
//
// OUTPUT STRUCTURE:
//   Birth date,First name,Last name,Weight      <- header, names unescaped
//   01/01/1990,"Jo,hn",Smith,81.5                <- one record per input line
//
// ESCAPING:
//   Cells are escaped by the caller through Escape before they reach the
//   writer; WriteRecord only joins them. A cell is quoted when it contains the
//   delimiter, a double quote or a line break, and embedded quotes are doubled.
//
// =============================================================================

// Package csvwriter writes CSV lines with per-line flushing.
package csvwriter

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Delimiter separates cells on a line.
const Delimiter = ","

const quote = `"`

// =============================================================================
// ESCAPING
// =============================================================================

// Escape returns value quoted for CSV when it contains the delimiter, a quote
// character or a line break. Other values are returned unchanged.
func Escape(value string) string {
	if !strings.ContainsAny(value, Delimiter+quote+"\r\n") {
		return value
	}
	return quote + strings.ReplaceAll(value, quote, quote+quote) + quote
}

// Unescape reverses Escape for a single cell.
func Unescape(cell string) string {
	if len(cell) < 2 || !strings.HasPrefix(cell, quote) || !strings.HasSuffix(cell, quote) {
		return cell
	}
	return strings.ReplaceAll(cell[1:len(cell)-1], quote+quote, quote)
}

// =============================================================================
// WRITER
// =============================================================================

// Writer writes header and record lines to an underlying stream.
type Writer struct {
	buffer *bufio.Writer
}

// NewWriter creates a Writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{buffer: bufio.NewWriter(w)}
}

// WriteHeader writes the column names joined by the delimiter, unescaped.
func (w *Writer) WriteHeader(names []string) error {
	return w.writeLine(strings.Join(names, Delimiter))
}

// WriteRecord writes already-escaped cells joined by the delimiter.
func (w *Writer) WriteRecord(cells []string) error {
	return w.writeLine(strings.Join(cells, Delimiter))
}

func (w *Writer) writeLine(line string) error {
	if _, err := w.buffer.WriteString(line); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	if err := w.buffer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	if err := w.buffer.Flush(); err != nil {
		return fmt.Errorf("failed to flush line: %w", err)
	}
	return nil
}

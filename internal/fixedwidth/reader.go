// =============================================================================
// Fixed-Width to CSV Converter - Fixed-Width Line Reader
// =============================================================================
//
// Streams a fixed-width input file one line at a time so memory use does not
// depend on file size. Lines are decoded to UTF-8 from the configured source
// encoding and numbered from 1 for error reporting.
//
// USAGE:
//   reader, err := fixedwidth.Open(path, "UTF-8")
//   if err != nil {
//       return err
//   }
//   defer reader.Close()
//
//   for reader.Next() {
//       line := reader.Line()
//       // Process the line...
//   }
//
//   if err := reader.Err(); err != nil {
//       return err
//   }
//
// =============================================================================

// Package fixedwidth reads fixed-width text files line by line.
package fixedwidth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = "UTF-8"

// =============================================================================
// READER
// =============================================================================

// Reader streams decoded lines from a fixed-width file.
type Reader struct {
	file       *os.File
	reader     *bufio.Reader
	line       string
	lineNumber int
	done       bool
	err        error
}

// Open opens a fixed-width file for reading.
//
// PARAMETERS:
//   - filePath: The path to the input file.
//   - encodingName: An IANA encoding name such as "UTF-8" or "ISO-8859-1".
//     Empty means UTF-8. A UTF-8 byte order mark is stripped.
//
// RETURNS:
//   - A Reader positioned before the first line.
//   - An error if the encoding is unknown or the file cannot be opened.
func Open(filePath, encodingName string) (*Reader, error) {
	decoder, err := DecoderFor(encodingName)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return &Reader{
		file:   file,
		reader: bufio.NewReader(transform.NewReader(file, decoder)),
	}, nil
}

// Next advances to the next line. It returns false at end of input or on a
// read error; check Err afterwards.
func (r *Reader) Next() bool {
	if r.err != nil || r.done {
		return false
	}

	line, err := r.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		r.err = fmt.Errorf("error reading line %d: %w", r.lineNumber+1, err)
		return false
	}
	if err == io.EOF {
		r.done = true
		// A terminator on the last line does not start another line.
		if line == "" {
			return false
		}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	r.lineNumber++
	r.line = line
	return true
}

// Line returns the current line without its terminator.
func (r *Reader) Line() string {
	return r.line
}

// LineNumber returns the current line number (1-indexed).
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Err returns any error that occurred while reading.
func (r *Reader) Err() error {
	return r.err
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// =============================================================================
// ENCODINGS
// =============================================================================

// DecoderFor resolves an IANA encoding name to a decoder.
func DecoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc.NewDecoder(), nil
}

// =============================================================================
// LINE HELPERS
// =============================================================================

// PadRight pads a line with spaces until it is width characters long.
// Longer lines are returned unchanged.
func PadRight(line string, width int) string {
	n := len([]rune(line))
	if n >= width {
		return line
	}
	return line + strings.Repeat(" ", width-n)
}

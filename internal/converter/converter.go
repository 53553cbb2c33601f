// =============================================================================
// Fixed-Width to CSV Converter - Converter Module
// =============================================================================
//
// This module contains the conversion engine. An engine holds one schema and
// turns fixed-width input files into CSV files using it.
//
// CONVERSION PIPELINE:
//   1. Load the schema (text, YAML or XLSX) with LoadSchema
//   2. Remove any previous output file
//   3. Write the header line (column names)
//   4. For every input line: pad, slice, trim, transform, escape, write
//   5. Stop at the first invalid line; earlier lines stay in the output
//
// CONCURRENCY:
//   An engine is not safe for concurrent use. Use one engine per goroutine,
//   or the stateless ConvertFile helper.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/fixed-width-to-csv/internal/csvwriter"
	cerrors "github.com/ginjaninja78/fixed-width-to-csv/internal/errors"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/fixedwidth"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/schema"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/xlsxparser"
	"github.com/ginjaninja78/fixed-width-to-csv/pkg/utils"
)

const msgNotConfigured = "the configuration has not been set up using the load-schema operation"

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// InputFile is the fixed-width file that was read.
	InputFile string

	// OutputFile is the CSV file that was written.
	OutputFile string

	// Success is true when every input line was converted.
	Success bool

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about a conversion.
type ProcessingStats struct {
	// LinesRead counts input lines handed to the parser, including a line
	// that failed validation.
	LinesRead int

	// RecordsWritten counts CSV records written, header excluded.
	RecordsWritten int

	// ProcessingTime is the wall time of the conversion.
	ProcessingTime time.Duration
}

// Record is one converted line: escaped cell values in schema order.
type Record []string

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts fixed-width files to CSV according to a loaded schema.
type Converter struct {
	// schema is empty until LoadSchema succeeds.
	schema schema.Schema

	// encoding names the character set of input files.
	encoding string

	// xlsxColumns locates the schema tokens in XLSX schema files.
	xlsxColumns xlsxparser.TemplateColumns

	logger Logger
}

// Logger is the logging interface used by the engine. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEncoding sets the character set used to decode input files.
// An empty name means UTF-8.
func WithEncoding(name string) Option {
	return func(c *Converter) {
		c.encoding = name
	}
}

// WithTemplateColumns sets the worksheet and columns read from XLSX schema
// files.
func WithTemplateColumns(columns xlsxparser.TemplateColumns) Option {
	return func(c *Converter) {
		c.xlsxColumns = columns
	}
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a Converter with no schema loaded.
//
// PARAMETERS:
//   - opts: Optional settings (logger, input encoding, XLSX layout).
//
// RETURNS:
//   - A new Converter. Convert fails until LoadSchema has succeeded.
func New(opts ...Option) *Converter {
	c := &Converter{
		encoding:    fixedwidth.DefaultEncoding,
		xlsxColumns: xlsxparser.DefaultTemplateColumns(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schema returns the currently loaded schema.
func (c *Converter) Schema() *schema.Schema {
	return &c.schema
}

// Encoding returns the character set name used to decode input files.
func (c *Converter) Encoding() string {
	return c.encoding
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Convert reads the fixed-width file at inputPath and writes a CSV file at
// outputPath.
//
// PARAMETERS:
//   - inputPath: The fixed-width source file.
//   - outputPath: The CSV destination. An existing file is removed first.
//
// RETURNS:
//   - A Result with statistics, also returned on failure.
//   - A ConfigurationError if no schema is loaded.
//   - A ConversionError for I/O failures and invalid lines. For an invalid
//     line the message is the DataValidationError text, ending with
//     "line #<n>". Lines before it remain in the output file.
func (c *Converter) Convert(inputPath, outputPath string) (*Result, error) {
	startTime := time.Now()
	result := &Result{InputFile: inputPath, OutputFile: outputPath}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	if c.schema.IsEmpty() {
		return result, cerrors.NewConfigurationError(msgNotConfigured)
	}

	c.logger.Debug("converting file", "input", inputPath, "output", outputPath, "encoding", c.encoding)

	reader, err := fixedwidth.Open(inputPath, c.encoding)
	if err != nil {
		return result, cerrors.WrapConversion("failed to open input file", err)
	}
	defer c.closeQuietly("input file", reader)

	utils.RemoveQuietly(outputPath)

	out, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0644)
	if err != nil {
		return result, cerrors.WrapConversion("failed to create output file", err)
	}
	defer c.closeQuietly("output file", out)

	writer := csvwriter.NewWriter(out)
	if err := writer.WriteHeader(c.schema.Names()); err != nil {
		return result, cerrors.WrapConversion("failed to write header", err)
	}

	for reader.Next() {
		result.Stats.LinesRead++

		record, err := c.ParseLine(reader.Line(), reader.LineNumber())
		if err != nil {
			return result, cerrors.WrapConversion("", err)
		}

		if err := writer.WriteRecord(record); err != nil {
			return result, cerrors.WrapConversion(fmt.Sprintf("failed to write line #%d", reader.LineNumber()), err)
		}
		result.Stats.RecordsWritten++
	}

	if err := reader.Err(); err != nil {
		return result, cerrors.WrapConversion("failed to read input file", err)
	}

	result.Success = true
	c.logger.Debug("conversion complete",
		"input", inputPath,
		"records", result.Stats.RecordsWritten,
	)
	return result, nil
}

// ParseLine converts one input line into a record.
//
// The line is right-padded with spaces to the schema's total width, then cut
// into consecutive slices of each field's width. Every slice is trimmed,
// passed through its kind's transformer and escaped. An empty line yields an
// empty record. Characters past the total width are ignored.
//
// RETURNS:
//   - The record.
//   - A DataValidationError naming lineNumber if a value is invalid or the
//     record does not have one cell per field.
func (c *Converter) ParseLine(line string, lineNumber int) (Record, error) {
	record := Record{}
	if line == "" {
		return record, nil
	}

	chars := []rune(fixedwidth.PadRight(line, c.schema.TotalWidth()))
	for _, field := range c.schema.Fields() {
		if field.Width > len(chars) {
			continue
		}
		raw := string(chars[:field.Width])
		chars = chars[field.Width:]

		value, err := transformerFor(field.Kind).transform(strings.TrimSpace(raw), lineNumber)
		if err != nil {
			return nil, err
		}
		record = append(record, csvwriter.Escape(value))
	}

	if len(record) != c.schema.Len() {
		return nil, cerrors.NewDataValidationError(msgColumnCount, lineNumber)
	}
	return record, nil
}

// ConvertFile loads the schema at schemaPath into a fresh engine and
// converts inputPath into outputPath.
func ConvertFile(schemaPath, inputPath, outputPath string, opts ...Option) (*Result, error) {
	c := New(opts...)
	if err := c.LoadSchema(schemaPath); err != nil {
		return &Result{InputFile: inputPath, OutputFile: outputPath}, err
	}
	return c.Convert(inputPath, outputPath)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// closeQuietly closes a file and logs a failure instead of returning it.
func (c *Converter) closeQuietly(what string, closer io.Closer) {
	if err := closer.Close(); err != nil {
		c.logger.Warn("failed to close "+what, "error", err)
	}
}

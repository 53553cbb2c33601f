// =============================================================================
// Fixed-Width to CSV Converter - Validation Checker
// =============================================================================
//
// A dry run of a conversion. Every line of an input file is parsed against the
// engine's schema, but nothing is written; instead of stopping at the first
// invalid line the checker collects every violation.
//
// ERROR HANDLING:
//   - Violations are collected, not returned as errors
//   - Each violation records the line number and the rule that failed
//   - Setup problems (no schema, unreadable input) are returned as errors
//
// =============================================================================

package validation

import (
	"errors"
	"time"

	"github.com/ginjaninja78/fixed-width-to-csv/internal/converter"
	cerrors "github.com/ginjaninja78/fixed-width-to-csv/internal/errors"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/fixedwidth"
)

// =============================================================================
// VIOLATIONS
// =============================================================================

// Violation describes one input line that does not satisfy the schema.
type Violation struct {
	// Line is the 1-based input line number.
	Line int

	// Message is the violated rule, without the line suffix.
	Message string
}

// Error formats the violation the same way the engine reports it.
func (v Violation) Error() string {
	return cerrors.NewDataValidationError(v.Message, v.Line).Error()
}

// Result is the outcome of checking one file.
type Result struct {
	// InputFile is the checked file.
	InputFile string

	// LinesChecked counts the lines parsed before the check ended.
	LinesChecked int

	// Violations lists the invalid lines in input order.
	Violations []Violation

	// Truncated is true when the check stopped early because of
	// StopOnFirstError or MaxErrors.
	Truncated bool

	// Duration is the wall time of the check.
	Duration time.Duration
}

// Valid reports whether no violation was found.
func (r *Result) Valid() bool {
	return len(r.Violations) == 0
}

// =============================================================================
// CHECKER
// =============================================================================

// Options controls when a check stops.
type Options struct {
	// StopOnFirstError ends the check at the first violation.
	StopOnFirstError bool

	// MaxErrors ends the check once this many violations are collected.
	// Zero means unlimited.
	MaxErrors int
}

// Checker validates input files against the schema loaded in an engine.
type Checker struct {
	engine  *converter.Converter
	options Options
}

// NewChecker creates a checker that parses lines with engine, decoding input
// with the engine's encoding.
func NewChecker(engine *converter.Converter, options Options) *Checker {
	return &Checker{engine: engine, options: options}
}

// CheckFile parses every line of inputPath and collects violations.
//
// RETURNS:
//   - The result, also when violations were found.
//   - A ConfigurationError if the engine has no schema.
//   - A ConversionError if the input cannot be read.
func (c *Checker) CheckFile(inputPath string) (*Result, error) {
	startTime := time.Now()
	result := &Result{InputFile: inputPath}
	defer func() {
		result.Duration = time.Since(startTime)
	}()

	if c.engine.Schema().IsEmpty() {
		return result, cerrors.NewConfigurationError("the configuration has not been set up using the load-schema operation")
	}

	reader, err := fixedwidth.Open(inputPath, c.engine.Encoding())
	if err != nil {
		return result, cerrors.WrapConversion("failed to open input file", err)
	}
	defer reader.Close()

	for reader.Next() {
		result.LinesChecked++

		_, err := c.engine.ParseLine(reader.Line(), reader.LineNumber())
		if err == nil {
			continue
		}

		var dve *cerrors.DataValidationError
		if !errors.As(err, &dve) {
			return result, cerrors.WrapConversion("", err)
		}
		result.Violations = append(result.Violations, Violation{Line: dve.Line, Message: dve.Message})

		if c.limitReached(len(result.Violations)) {
			result.Truncated = true
			return result, nil
		}
	}

	if err := reader.Err(); err != nil {
		return result, cerrors.WrapConversion("failed to read input file", err)
	}
	return result, nil
}

func (c *Checker) limitReached(count int) bool {
	if c.options.StopOnFirstError {
		return true
	}
	return c.options.MaxErrors > 0 && count >= c.options.MaxErrors
}

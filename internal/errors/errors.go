// =============================================================================
// Fixed-Width to CSV Converter - Error Kinds
// =============================================================================
//
// Every failure surfaced by the conversion engine is one of three kinds:
//
//   ConfigurationError  : the schema is missing, malformed, or was never loaded
//   DataValidationError : one input line failed type validation (carries the line)
//   ConversionError     : the conversion as a whole did not complete; wraps I/O
//                         failures and any DataValidationError raised mid-file
//
// All three are terminal for the call that produced them.
//
// =============================================================================

// Package errors defines the error kinds returned by the conversion engine.
package errors

import (
	"errors"
	"fmt"
)

// =============================================================================
// CONFIGURATION ERRORS
// =============================================================================

// ConfigurationError reports a problem with the schema or with the order in
// which the engine was used.
type ConfigurationError struct {
	// Message is the human-readable description.
	Message string

	// Line is the 1-based schema line (or worksheet row) that failed.
	// Zero when the error is not tied to a line.
	Line int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (schema line %d)", msg, e.Line)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a ConfigurationError without a cause.
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{Message: message}
}

// =============================================================================
// DATA VALIDATION ERRORS
// =============================================================================

// DataValidationError reports an input line that does not satisfy the schema.
type DataValidationError struct {
	// Message describes the violated rule, without the line suffix.
	Message string

	// Line is the 1-based input line number.
	Line int
}

// Error implements the error interface. The message always ends with the
// line number so callers can report it verbatim.
func (e *DataValidationError) Error() string {
	return fmt.Sprintf("%s at line #%d", e.Message, e.Line)
}

// NewDataValidationError creates a DataValidationError for the given line.
func NewDataValidationError(message string, line int) *DataValidationError {
	return &DataValidationError{Message: message, Line: line}
}

// =============================================================================
// CONVERSION ERRORS
// =============================================================================

// ConversionError reports that a whole-file conversion did not complete.
type ConversionError struct {
	// Message is an optional prefix describing the failed step.
	// When empty the cause text is reported as-is.
	Message string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	switch {
	case e.Message == "":
		return e.Err.Error()
	case e.Err == nil:
		return e.Message
	default:
		return e.Message + ": " + e.Err.Error()
	}
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// WrapConversion wraps err into a ConversionError. A nil err yields nil.
func WrapConversion(message string, err error) error {
	if err == nil {
		return nil
	}
	return &ConversionError{Message: message, Err: err}
}

// =============================================================================
// CLASSIFICATION HELPERS
// =============================================================================

// IsConfiguration reports whether err is or wraps a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsDataValidation reports whether err is or wraps a DataValidationError.
func IsDataValidation(err error) bool {
	var de *DataValidationError
	return errors.As(err, &de)
}

// IsConversion reports whether err is or wraps a ConversionError.
func IsConversion(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}

// LineOf returns the input line number carried by err, or 0.
func LineOf(err error) int {
	var de *DataValidationError
	if errors.As(err, &de) {
		return de.Line
	}
	return 0
}

// Kind returns a short label for the error kind, used in logs and reports.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsConfiguration(err):
		return "configuration"
	case IsDataValidation(err) && !IsConversion(err):
		return "data_validation"
	case IsConversion(err):
		return "conversion"
	default:
		return "unknown"
	}
}

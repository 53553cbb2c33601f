// =============================================================================
// Fixed-Width to CSV Converter - Value Transformers
// =============================================================================
//
// Each schema kind validates and reformats the value sliced out of a line:
//
//   date    : must read as yyyy-MM-dd, written as dd/MM/yyyy
//   numeric : must parse as a floating-point number, written unchanged
//   string  : no validation, written unchanged
//
// Values arrive already trimmed. A failed check is reported as a
// DataValidationError carrying the input line number.
//
// =============================================================================

package converter

import (
	"strconv"
	"time"

	cerrors "github.com/ginjaninja78/fixed-width-to-csv/internal/errors"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/schema"
)

const (
	// SourceDateLayout is the only accepted input date layout (yyyy-MM-dd).
	SourceDateLayout = "2006-01-02"

	// TargetDateLayout is the output date layout (dd/MM/yyyy).
	TargetDateLayout = "02/01/2006"
)

const (
	msgDateFormat    = "Date format of source has to be yyyy-mm-dd"
	msgNumericFormat = "Numeric format has to be a number which can have a decimal"
	msgColumnCount   = "the line does not contain the configured set of columns"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// transformer validates and reformats one field value.
type transformer interface {
	transform(value string, lineNumber int) (string, error)
}

type dateTransformer struct{}

func (dateTransformer) transform(value string, lineNumber int) (string, error) {
	t, err := time.Parse(SourceDateLayout, value)
	if err != nil {
		return "", cerrors.NewDataValidationError(msgDateFormat, lineNumber)
	}
	return t.Format(TargetDateLayout), nil
}

type numericTransformer struct{}

func (numericTransformer) transform(value string, lineNumber int) (string, error) {
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return "", cerrors.NewDataValidationError(msgNumericFormat, lineNumber)
	}
	return value, nil
}

type stringTransformer struct{}

func (stringTransformer) transform(value string, _ int) (string, error) {
	return value, nil
}

// transformerFor returns the transformer for a kind. Fields only ever carry
// kinds accepted by schema.ParseKind.
func transformerFor(kind schema.Kind) transformer {
	switch kind {
	case schema.KindDate:
		return dateTransformer{}
	case schema.KindNumeric:
		return numericTransformer{}
	default:
		return stringTransformer{}
	}
}

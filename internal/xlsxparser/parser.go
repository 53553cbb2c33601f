// =============================================================================
// Fixed-Width to CSV Converter - XLSX Schema Parser
// =============================================================================
//
// Reads a fixed-width schema from an XLSX workbook instead of a plain text
// file. Some teams keep their record layouts in spreadsheets; this lets them
// point the converter straight at the workbook.
//
// TEMPLATE STRUCTURE (default layout, first sheet):
//
//   | Column A     | Column B | Column C |
//   |--------------|----------|----------|
//   | Label        | Width    | Type     |   <- optional header row
//   | Birth date   | 10       | date     |
//   | First name   | 15       | string   |
//   | Weight       | 5        | numeric  |
//
// Another sheet or other columns can be selected with TemplateColumns.
// The parser only extracts raw entries. Width and type tokens are validated by
// the converter, so a spreadsheet schema fails exactly like a text schema.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/fixed-width-to-csv/internal/schema"
)

// =============================================================================
// COLUMN LAYOUT
// =============================================================================

// TemplateColumns defines which worksheet columns hold each schema token.
// Column indexes are 0-based.
type TemplateColumns struct {
	// LabelColumn holds the field name.
	LabelColumn int

	// WidthColumn holds the field width.
	WidthColumn int

	// TypeColumn holds the type token (date, string, numeric).
	TypeColumn int

	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string
}

// DefaultTemplateColumns returns the A/B/C layout on the first sheet.
func DefaultTemplateColumns() TemplateColumns {
	return TemplateColumns{
		LabelColumn: 0, // Column A
		WidthColumn: 1, // Column B
		TypeColumn:  2, // Column C
	}
}

// NewTemplateColumns builds a layout from worksheet column letters such as
// "A" or "AB". An empty sheet name selects the first sheet.
func NewTemplateColumns(sheet, label, width, kind string) (TemplateColumns, error) {
	columns := TemplateColumns{Sheet: sheet}
	targets := []struct {
		name   string
		letter string
		index  *int
	}{
		{"label", label, &columns.LabelColumn},
		{"width", width, &columns.WidthColumn},
		{"type", kind, &columns.TypeColumn},
	}

	seen := make(map[int]string, len(targets))
	for _, target := range targets {
		number, err := excelize.ColumnNameToNumber(strings.TrimSpace(target.letter))
		if err != nil {
			return TemplateColumns{}, fmt.Errorf("invalid %s column %q: %w", target.name, target.letter, err)
		}
		if other, ok := seen[number]; ok {
			return TemplateColumns{}, fmt.Errorf("%s and %s columns must differ, both are %q", other, target.name, target.letter)
		}
		seen[number] = target.name
		*target.index = number - 1
	}
	return columns, nil
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads schema entries from an XLSX workbook using the given layout.
//
// RETURNS:
//   - The entries in row order. Entry.Line is the 1-based worksheet row.
//   - An error if the workbook cannot be opened or read.
func Parse(templatePath string, columns TemplateColumns) ([]schema.Entry, error) {
	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template file: %w", err)
	}
	defer f.Close()

	sheetName := columns.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("template file has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var entries []schema.Entry
	for i, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		entry := parseRow(row, columns, i+1)

		// A leading header row is recognised by its width cell.
		if len(entries) == 0 && isHeaderRow(entry) {
			continue
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// parseRow extracts the raw tokens of one worksheet row.
func parseRow(row []string, columns TemplateColumns, rowNumber int) schema.Entry {
	getCell := func(index int) string {
		if index < len(row) {
			return row[index]
		}
		return ""
	}

	// The label is kept verbatim; the converter trims width and type.
	return schema.Entry{
		Label: getCell(columns.LabelColumn),
		Width: getCell(columns.WidthColumn),
		Type:  getCell(columns.TypeColumn),
		Line:  rowNumber,
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isHeaderRow(entry schema.Entry) bool {
	return strings.EqualFold(strings.TrimSpace(entry.Width), "width")
}

package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "schema.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseWithHeaderRow(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Label", "Width", "Type"},
		{"Birth date", 10, "date"},
		{"First name", 15, "string"},
		{},
		{"Weight", 5, "numeric"},
	})

	entries, err := Parse(path, DefaultTemplateColumns())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Birth date", entries[0].Label)
	assert.Equal(t, "10", entries[0].Width)
	assert.Equal(t, "date", entries[0].Type)
	assert.Equal(t, 2, entries[0].Line)

	assert.Equal(t, "Weight", entries[2].Label)
	assert.Equal(t, "numeric", entries[2].Type)
	assert.Equal(t, 5, entries[2].Line)
}

func TestParseWithoutHeaderRow(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Code", 3, "string"},
		{"Amount", 8, "numeric"},
	})

	entries, err := Parse(path, DefaultTemplateColumns())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Code", entries[0].Label)
	assert.Equal(t, 1, entries[0].Line)
}

func TestParseShortRowLeavesTokensEmpty(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Only label"},
	})

	entries, err := Parse(path, DefaultTemplateColumns())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Width)
	assert.Equal(t, "", entries[0].Type)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultTemplateColumns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open template file")
}

func TestParseCustomLayout(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Layout")
	require.NoError(t, err)
	rows := [][]interface{}{
		{"Type", "Notes", "Label", "Width"},
		{"date", "dd/mm on output", "Birth date", 10},
		{"numeric", "", "Weight", 5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Layout", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "schema.xlsx")
	require.NoError(t, f.SaveAs(path))

	columns, err := NewTemplateColumns("Layout", "C", "D", "A")
	require.NoError(t, err)

	entries, err := Parse(path, columns)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Birth date", entries[0].Label)
	assert.Equal(t, "10", entries[0].Width)
	assert.Equal(t, "date", entries[0].Type)
	assert.Equal(t, "Weight", entries[1].Label)
	assert.Equal(t, 3, entries[1].Line)
}

func TestParseUnknownSheet(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"Code", 3, "string"}})

	columns := DefaultTemplateColumns()
	columns.Sheet = "Missing"
	_, err := Parse(path, columns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rows")
}

func TestNewTemplateColumns(t *testing.T) {
	columns, err := NewTemplateColumns("", "A", "b", "AA")
	require.NoError(t, err)
	assert.Equal(t, TemplateColumns{LabelColumn: 0, WidthColumn: 1, TypeColumn: 26}, columns)

	_, err = NewTemplateColumns("", "A", "1", "C")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid width column")

	_, err = NewTemplateColumns("", "A", "B", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	cerrors "github.com/ginjaninja78/fixed-width-to-csv/internal/errors"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/schema"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/xlsxparser"
)

func writeSchema(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func assertStandardSchema(t *testing.T, s *schema.Schema) {
	t.Helper()
	assert.Equal(t, []schema.Field{
		{Name: "Birth date", Width: 10, Kind: schema.KindDate},
		{Name: "First name", Width: 15, Kind: schema.KindString},
		{Name: "Last name", Width: 15, Kind: schema.KindString},
		{Name: "Weight", Width: 5, Kind: schema.KindNumeric},
	}, s.Fields())
	assert.Equal(t, 45, s.TotalWidth())
}

func TestLoadSchemaText(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadSchema(testSchema))
	assertStandardSchema(t, c.Schema())
}

func TestLoadSchemaTextTolerance(t *testing.T) {
	path := writeSchema(t, "schema.txt",
		"\ufeffBirth date, 10 ,date\r\n\r\nFirst name,15,string\r\nLast name,15, string\r\nWeight,5,numeric\r\n\r\n")

	c := New()
	require.NoError(t, c.LoadSchema(path))
	assertStandardSchema(t, c.Schema())
}

func TestLoadSchemaYAML(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadSchema(testYAMLSchema))
	assertStandardSchema(t, c.Schema())
}

func TestLoadSchemaXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Label", "Width", "Type"},
		{"Birth date", 10, "date"},
		{"First name", 15, "string"},
		{"Last name", 15, "string"},
		{"Weight", 5, "numeric"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	c := New()
	require.NoError(t, c.LoadSchema(path))
	assertStandardSchema(t, c.Schema())
}

func TestLoadSchemaXLSXCustomLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Layout")
	require.NoError(t, err)
	rows := [][]interface{}{
		{"Width", "Label", "Type"},
		{10, "Birth date", "date"},
		{15, "First name", "string"},
		{15, "Last name", "string"},
		{5, "Weight", "numeric"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Layout", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	columns, err := xlsxparser.NewTemplateColumns("Layout", "B", "A", "C")
	require.NoError(t, err)

	c := New(WithTemplateColumns(columns))
	require.NoError(t, c.LoadSchema(path))
	assertStandardSchema(t, c.Schema())
}

func TestLoadSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		message string
		line    string
	}{
		{"too few tokens", "schema.txt", "Birth date,10,date\nFirst name,15\n", "is not set up correctly", "schema line 2"},
		{"too many tokens", "schema.txt", "Birth, date,10,date\n", "is not set up correctly", "schema line 1"},
		{"unknown type", "schema.txt", "Birth date,10,datetime\n", "data type can only be", "schema line 1"},
		{"upper-case type", "schema.txt", "Birth date,10,Date\n", "data type can only be", "schema line 1"},
		{"non-numeric width", "schema.txt", "Birth date,ten,date\n", "must be a positive integer", "schema line 1"},
		{"zero width", "schema.txt", "Weight,5,numeric\nBirth date,0,date\n", "must be a positive integer", "schema line 2"},
		{"negative width", "schema.txt", "Birth date,-3,date\n", "must be a positive integer", "schema line 1"},
		{"empty file", "schema.txt", "\n\n", "does not define any column", ""},
		{"yaml bad type", "schema.yaml", "fields:\n  - name: Weight\n    width: 5\n    type: float\n", "data type can only be", "schema line 2"},
		{"yaml bad width", "schema.yml", "fields:\n  - name: Weight\n    width: 5.5\n    type: numeric\n", "must be a positive integer", "schema line 2"},
		{"yaml float width", "schema.yaml", "fields:\n  - name: Weight\n    width: 10.0\n    type: numeric\n", "must be a positive integer", "schema line 2"},
		{"yaml list width", "schema.yaml", "fields:\n  - name: Weight\n    width: [5]\n    type: numeric\n", "must be a positive integer", "schema line 2"},
		{"yaml malformed", "schema.yaml", "fields: [", "is not set up correctly", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSchema(t, tt.file, tt.content)

			err := New().LoadSchema(path)
			require.Error(t, err)
			assert.True(t, cerrors.IsConfiguration(err))
			assert.Contains(t, err.Error(), tt.message)
			if tt.line != "" {
				assert.Contains(t, err.Error(), tt.line)
			}
		})
	}
}

func TestLoadSchemaMissingFile(t *testing.T) {
	err := New().LoadSchema(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, cerrors.IsConfiguration(err))
	assert.Equal(t, "the configuration file does not exist", err.Error())
}

func TestLoadSchemaReplacesPrevious(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadSchema(testSchema))
	require.NoError(t, c.LoadSchema(testSchema))
	assert.Equal(t, 4, c.Schema().Len())

	other := writeSchema(t, "other.txt", "Code,3,string\n")
	require.NoError(t, c.LoadSchema(other))
	assert.Equal(t, []string{"Code"}, c.Schema().Names())
}

func TestLoadSchemaFailureKeepsPrevious(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadSchema(testSchema))

	broken := writeSchema(t, "broken.txt", "Code,3,string\nName,x,string\n")
	require.Error(t, c.LoadSchema(broken))
	assertStandardSchema(t, c.Schema())
}

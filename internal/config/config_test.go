package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "UTF-8", cfg.Input.Encoding)
	assert.Equal(t, "output.csv", cfg.Output.NameFormat)
	assert.Empty(t, cfg.Output.ArchiveDir)
	assert.False(t, cfg.Output.ArchiveDateSubdirs)
	assert.Equal(t, XLSXConfig{LabelColumn: "A", WidthColumn: "B", TypeColumn: "C"}, cfg.Schema.XLSX)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
input:
  encoding: ISO-8859-1
output:
  name_format: "{original}_{date}.csv"
  archive_dir: ./archive
  archive_date_subdirs: true
schema:
  xlsx:
    sheet: Layout
    label_column: B
    width_column: C
    type_column: A
log:
  level: debug
  format: json
metrics:
  textfile: ./converter.prom
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ISO-8859-1", cfg.Input.Encoding)
	assert.Equal(t, "{original}_{date}.csv", cfg.Output.NameFormat)
	assert.Equal(t, "./archive", cfg.Output.ArchiveDir)
	assert.True(t, cfg.Output.ArchiveDateSubdirs)

	columns, err := cfg.Schema.XLSX.TemplateColumns()
	require.NoError(t, err)
	assert.Equal(t, "Layout", columns.Sheet)
	assert.Equal(t, 1, columns.LabelColumn)
	assert.Equal(t, 2, columns.WidthColumn)
	assert.Equal(t, 0, columns.TypeColumn)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "./converter.prom", cfg.Metrics.Textfile)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	t.Setenv("FWCSV_LOG_LEVEL", "warn")
	t.Setenv("FWCSV_INPUT_ENCODING", "windows-1252")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "windows-1252", cfg.Input.Encoding)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"unknown encoding", "input:\n  encoding: klingon\n", "input.encoding"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad format", "log:\n  format: xml\n", "log.format"},
		{"bad xlsx column", "schema:\n  xlsx:\n    width_column: \"7\"\n", "schema.xlsx"},
		{"duplicate xlsx column", "schema:\n  xlsx:\n    type_column: A\n", "schema.xlsx"},
		{"empty name format", "output:\n  name_format: \" \"\n", "output.name_format"},
		{"malformed yaml", "log: [", "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveQuietly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	RemoveQuietly(path)
	assert.False(t, FileExists(path))

	// Removing again must not panic or fail.
	RemoveQuietly(path)
}

func TestGenerateOutputFileName(t *testing.T) {
	assert.Equal(t, "output.csv", GenerateOutputFileName("output.csv", "in/people.txt"))
	assert.Equal(t, "people.csv", GenerateOutputFileName("{original}", "in/people.txt"))
	assert.Equal(t, "people_export.CSV", GenerateOutputFileName("{original}_export.CSV", "people.dat"))

	name := GenerateOutputFileName("{original}_{date}_{uuid}", "people.txt")
	pattern := regexp.MustCompile(`^people_\d{8}_[0-9a-f-]{36}\.csv$`)
	assert.Regexp(t, pattern, name)

	assert.NotEqual(t,
		GenerateOutputFileName("{uuid}", "people.txt"),
		GenerateOutputFileName("{uuid}", "people.txt"))
}

func TestResolveOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("in", "people.csv"), ResolveOutputPath("{original}.csv", filepath.Join("in", "people.txt")))
	assert.Equal(t, "out/people.csv", ResolveOutputPath("out/{original}.csv", filepath.Join("in", "people.txt")))
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "people.txt")
	require.NoError(t, os.WriteFile(input, []byte("data"), 0644))

	archiver := NewArchiver(filepath.Join(dir, "archive"))
	archived, err := archiver.Archive(input)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "archive", "people.txt"), archived)
	assert.False(t, FileExists(input))
	data, err := os.ReadFile(archived)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	// A second file with the same name must not overwrite the first.
	require.NoError(t, os.WriteFile(input, []byte("more"), 0644))
	second, err := archiver.Archive(input)
	require.NoError(t, err)
	assert.NotEqual(t, archived, second)
	assert.True(t, FileExists(archived))
}

func TestArchiveDateSubdirs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "people.txt")
	require.NoError(t, os.WriteFile(input, []byte("data"), 0644))

	archiver := &Archiver{Dir: filepath.Join(dir, "archive"), UseDateSubdirs: true}
	archived, err := archiver.Archive(input)
	require.NoError(t, err)

	now := time.Now()
	assert.Contains(t, archived, filepath.Join("archive", now.Format("2006"), now.Format("01")))
}

func TestWriteErrorLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := WriteErrorLog(nil, dir)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = WriteErrorLog([]ErrorLogEntry{
		{Timestamp: time.Now(), FileName: "people.txt", ErrorType: "data_validation",
			ErrorMessage: "Date format of source has to be yyyy-mm-dd", LineNumber: 12},
		{Timestamp: time.Now(), FileName: "people.txt", ErrorType: "data_validation",
			ErrorMessage: "Numeric format has to be a number which can have a decimal", LineNumber: 14},
	}, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(data)
	assert.Contains(t, report, "Total Errors: 2")
	assert.Contains(t, report, "Line Number: 12")
	assert.Contains(t, report, "Numeric format")
	assert.True(t, strings.HasSuffix(report, "End of Error Log\n"))
}

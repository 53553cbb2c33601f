// =============================================================================
// Fixed-Width to CSV Converter - File Manager Utility
// =============================================================================
//
// This module provides file helpers for the CLI, including:
//   - Best-effort removal of a previous output file
//   - Output file naming from a template
//   - Archival of converted input files
//   - Error report generation for check runs
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the archive directory after a successful
//     conversion; failed files stay where they are
//   - Date-based subdirectories are optional (archive/2024/01/15/file.txt)
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// OUTPUT FILE HANDLING
// =============================================================================

// RemoveQuietly deletes path, ignoring every error. A missing file is the
// expected case.
func RemoveQuietly(path string) {
	_ = os.Remove(path)
}

// GenerateOutputFileName expands a file name template.
//
// PARAMETERS:
//   - format: The template. Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {original}  - Input file name without extension
//   - inputPath: The input file the output is derived from.
//
// RETURNS:
//   - The generated file name, always ending in .csv.
//
// EXAMPLE:
//   format: "{original}_{timestamp}.csv", inputPath: "in/people.txt"
//   output: "people_20240115_143022.csv"
func GenerateOutputFileName(format, inputPath string) string {
	now := time.Now()
	base := filepath.Base(inputPath)

	replacer := strings.NewReplacer(
		"{uuid}", uuid.New().String(),
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
		"{original}", strings.TrimSuffix(base, filepath.Ext(base)),
	)
	result := replacer.Replace(format)

	if !strings.HasSuffix(strings.ToLower(result), ".csv") {
		result += ".csv"
	}
	return result
}

// ResolveOutputPath returns the output path for inputPath. A generated name
// without a directory is placed next to the input file.
func ResolveOutputPath(format, inputPath string) string {
	name := GenerateOutputFileName(format, inputPath)
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) || strings.Contains(name, "/") {
		return name
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// Archiver moves converted input files out of the way.
type Archiver struct {
	// Dir is the archive root.
	Dir string

	// UseDateSubdirs files archives under Dir/YYYY/MM/DD.
	UseDateSubdirs bool
}

// NewArchiver creates an Archiver rooted at dir.
func NewArchiver(dir string) *Archiver {
	return &Archiver{Dir: dir}
}

// Archive moves filePath into the archive directory.
//
// RETURNS:
//   - The path of the archived file.
//   - An error if the file could not be moved. The original is left in place
//     unless the copy succeeded.
func (a *Archiver) Archive(filePath string) (string, error) {
	archivePath := a.archivePath(filePath)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

func (a *Archiver) archivePath(filePath string) string {
	dir := a.Dir
	if a.UseDateSubdirs {
		now := time.Now()
		dir = filepath.Join(dir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
		)
	}

	archivePath := filepath.Join(dir, filepath.Base(filePath))
	if FileExists(archivePath) {
		ext := filepath.Ext(archivePath)
		archivePath = fmt.Sprintf("%s_%s%s",
			strings.TrimSuffix(archivePath, ext),
			time.Now().Format("20060102_150405"),
			ext)
	}
	return archivePath
}

// =============================================================================
// ERROR REPORT GENERATION
// =============================================================================

// ErrorLogEntry represents one reported problem.
type ErrorLogEntry struct {
	Timestamp    time.Time
	FileName     string
	ErrorType    string
	ErrorMessage string
	LineNumber   int
}

// WriteErrorLog writes error entries to a report file in outputDir.
//
// RETURNS:
//   - The path to the report, or "" when there is nothing to report.
//   - An error if writing fails.
func WriteErrorLog(entries []ErrorLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	logFileName := fmt.Sprintf("error_log_%s.txt", time.Now().Format("20060102_150405"))
	logPath := filepath.Join(outputDir, logFileName)

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Fixed-Width to CSV Converter - Error Log\n"+
		"Generated: %s\n"+
		"Total Errors: %d\n"+
		"================================================================================\n\n",
		time.Now().Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Error #%d\n"+
			"  Timestamp:   %s\n"+
			"  File:        %s\n"+
			"  Error Type:  %s\n"+
			"  Message:     %s\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.FileName,
			entry.ErrorType,
			entry.ErrorMessage)
		if entry.LineNumber > 0 {
			fmt.Fprintf(writer, "  Line Number: %d\n", entry.LineNumber)
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Error Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

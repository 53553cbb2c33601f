// =============================================================================
// Fixed-Width to CSV Converter - Convert Command
// =============================================================================
//
// The convert command is the main entry point for a conversion. It:
//   1. Loads the schema into a new engine
//   2. Converts the input file into the output CSV file
//   3. Prints a summary
//   4. Archives the input file when output.archive_dir is set
//   5. Writes the metrics textfile when metrics.textfile is set
//
// The first invalid input line aborts the conversion; lines before it stay in
// the output file and the error names the line.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fixed-width-to-csv/internal/converter"
	cerrors "github.com/ginjaninja78/fixed-width-to-csv/internal/errors"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/metrics"
	"github.com/ginjaninja78/fixed-width-to-csv/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	// schemaPath is the schema file (text, YAML or XLSX). Shared by every
	// command that needs a schema.
	schemaPath string

	// inputPath is the fixed-width file to read.
	inputPath string

	// outputPath is the CSV file to write. Empty means output.name_format.
	outputPath string
)

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a fixed-width file to CSV",
	Long: `The convert command reads a fixed-width file, slices every line according
to the schema, validates dates and numbers, and writes a CSV file with a header
line of column names.

Dates are read as yyyy-mm-dd and written as dd/mm/yyyy. Values containing a
comma, a double quote or a line break are quoted.

An existing output file is replaced. When --output is omitted the name is taken
from output.name_format in the configuration, next to the input file.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Path to the schema file (required)")
	convertCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the fixed-width input file (required)")
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to the CSV output file")

	convertCmd.MarkFlagRequired("schema")
	convertCmd.MarkFlagRequired("input")
}

// =============================================================================
// MAIN CONVERSION FUNCTION
// =============================================================================

func runConvert(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	target := outputPath
	if target == "" {
		target = utils.ResolveOutputPath(appConfig.Output.NameFormat, inputPath)
	}

	m := metrics.New()
	defer writeMetrics(m)

	engine, err := newEngine()
	if err != nil {
		return err
	}

	if err := engine.LoadSchema(schemaPath); err != nil {
		m.ObserveFailure(err)
		logger.Error("failed to load schema", "schema", schemaPath, "kind", cerrors.Kind(err), "error", err)
		return fmt.Errorf("failed to load schema: %w", err)
	}

	logger.Info("converting", "input", inputPath, "output", target, "columns", engine.Schema().Len())

	result, err := engine.Convert(inputPath, target)
	m.ObserveConversion(result.Stats.LinesRead, result.Stats.RecordsWritten, result.Stats.ProcessingTime, err)
	if err != nil {
		logger.Error("conversion failed",
			"input", inputPath,
			"kind", cerrors.Kind(err),
			"line", cerrors.LineOf(err),
			"records_written", result.Stats.RecordsWritten,
			"error", err,
		)
		return fmt.Errorf("conversion failed: %w", err)
	}

	fmt.Fprintln(out, "=== Conversion Summary ===")
	fmt.Fprintf(out, "Input:   %s\n", result.InputFile)
	fmt.Fprintf(out, "Output:  %s\n", result.OutputFile)
	fmt.Fprintf(out, "Records: %d\n", result.Stats.RecordsWritten)
	fmt.Fprintf(out, "Time:    %s\n", result.Stats.ProcessingTime)

	if appConfig.Output.ArchiveDir != "" {
		archiver := utils.NewArchiver(appConfig.Output.ArchiveDir)
		archiver.UseDateSubdirs = appConfig.Output.ArchiveDateSubdirs

		archived, err := archiver.Archive(inputPath)
		if err != nil {
			// The CSV is already written; archiving is best-effort.
			logger.Warn("failed to archive input file", "input", inputPath, "error", err)
		} else {
			fmt.Fprintf(out, "Archive: %s\n", archived)
		}
	}

	return nil
}

// newEngine creates a conversion engine from the application configuration.
func newEngine() (*converter.Converter, error) {
	columns, err := appConfig.Schema.XLSX.TemplateColumns()
	if err != nil {
		return nil, fmt.Errorf("invalid schema.xlsx settings: %w", err)
	}
	return converter.New(
		converter.WithLogger(logger),
		converter.WithEncoding(appConfig.Input.Encoding),
		converter.WithTemplateColumns(columns),
	), nil
}

// writeMetrics exports the run's metrics when a textfile is configured.
func writeMetrics(m *metrics.Metrics) {
	if appConfig.Metrics.Textfile == "" {
		return
	}
	if err := m.WriteTextfile(appConfig.Metrics.Textfile); err != nil {
		logger.Warn("failed to write metrics", "path", appConfig.Metrics.Textfile, "error", err)
	}
}

// =============================================================================
// Fixed-Width to CSV Converter - Check Command
// =============================================================================
//
// The check command is a dry run of convert. It reports every invalid line of
// the input instead of stopping at the first one, and writes no CSV file.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fixed-width-to-csv/internal/metrics"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/validation"
	"github.com/ginjaninja78/fixed-width-to-csv/pkg/utils"
)

var (
	// maxErrors stops the check after this many invalid lines (0 = no limit).
	maxErrors int

	// failFast stops the check at the first invalid line.
	failFast bool

	// reportDir receives an error report when invalid lines are found.
	reportDir string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a fixed-width file against a schema without converting it",
	Long: `The check command parses every line of the input file with the schema and
lists each line whose date or numeric values are invalid. No CSV file is
written. The command fails when at least one invalid line is found.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Path to the schema file (required)")
	checkCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the fixed-width input file (required)")
	checkCmd.Flags().IntVar(&maxErrors, "max-errors", 0, "Stop after this many invalid lines (0 = no limit)")
	checkCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first invalid line")
	checkCmd.Flags().StringVar(&reportDir, "report-dir", "", "Write an error report to this directory")

	checkCmd.MarkFlagRequired("schema")
	checkCmd.MarkFlagRequired("input")
}

func runCheck(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	m := metrics.New()
	defer writeMetrics(m)

	engine, err := newEngine()
	if err != nil {
		return err
	}
	if err := engine.LoadSchema(schemaPath); err != nil {
		m.ObserveFailure(err)
		return fmt.Errorf("failed to load schema: %w", err)
	}

	checker := validation.NewChecker(engine, validation.Options{
		StopOnFirstError: failFast,
		MaxErrors:        maxErrors,
	})

	result, err := checker.CheckFile(inputPath)
	if err != nil {
		m.ObserveFailure(err)
		return fmt.Errorf("check failed: %w", err)
	}
	m.ObserveViolations(result.LinesChecked, len(result.Violations))

	for _, v := range result.Violations {
		fmt.Fprintf(out, "line %d: %s\n", v.Line, v.Message)
	}

	fmt.Fprintln(out, "=== Check Summary ===")
	fmt.Fprintf(out, "Input:         %s\n", result.InputFile)
	fmt.Fprintf(out, "Lines checked: %d\n", result.LinesChecked)
	fmt.Fprintf(out, "Invalid lines: %d\n", len(result.Violations))
	if result.Truncated {
		fmt.Fprintln(out, "Check stopped early; later lines were not checked.")
	}

	if result.Valid() {
		logger.Info("input is valid", "input", inputPath, "lines", result.LinesChecked)
		return nil
	}

	if reportDir != "" {
		reportPath, err := utils.WriteErrorLog(reportEntries(result), reportDir)
		if err != nil {
			logger.Warn("failed to write error report", "dir", reportDir, "error", err)
		} else {
			fmt.Fprintf(out, "Report:        %s\n", reportPath)
		}
	}

	return fmt.Errorf("%d invalid line(s) found in %s", len(result.Violations), inputPath)
}

func reportEntries(result *validation.Result) []utils.ErrorLogEntry {
	now := time.Now()
	entries := make([]utils.ErrorLogEntry, 0, len(result.Violations))
	for _, v := range result.Violations {
		entries = append(entries, utils.ErrorLogEntry{
			Timestamp:    now,
			FileName:     result.InputFile,
			ErrorType:    "data_validation",
			ErrorMessage: v.Message,
			LineNumber:   v.Line,
		})
	}
	return entries
}

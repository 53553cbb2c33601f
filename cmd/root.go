// =============================================================================
// Fixed-Width to CSV Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// (convert, check, validate, version) is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)
//   ├── convertCmd  (converter convert)
//   ├── checkCmd    (converter check)
//   ├── validateCmd (converter validate)
//   └── versionCmd  (converter version)
//
// CONFIGURATION:
//   Before any command runs the root command:
//   1. Loads the application configuration (--config, FWCSV_* variables)
//   2. Builds the slog logger from the log settings (--verbose forces debug)
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fixed-width-to-csv/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the application configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// appConfig is loaded before every command runs.
var appConfig *config.Config

// logger is built from appConfig.Log before every command runs.
var logger = slog.Default()

// logCloser closes the log file, if logging goes to one.
var logCloser io.Closer

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "Fixed-width to CSV converter",
	Long: `Converter turns fixed-width text files into CSV files. A schema file
describes the columns: their label, their width in characters and their type
(date, string or numeric).

Schema formats:
  text : one "<column label>,<column width>,<column type>" entry per line
  yaml : fields: [{name, width, type}, ...]
  xlsx : columns Label | Width | Type on the first sheet (see schema.xlsx)

Example Usage:
  converter convert -s config.txt -i input.txt -o output.csv
  converter check -s config.txt -i input.txt --max-errors 50
  converter validate -s config.txt`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the application configuration file (optional)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	cobra.OnFinalize(closeLog)
}

// initConfig loads the configuration and sets up logging.
func initConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appConfig = cfg

	closeLog()
	l, closer, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger = l
	logCloser = closer

	logger.Debug("configuration loaded",
		"config", cfgFile,
		"encoding", cfg.Input.Encoding,
		"name_format", cfg.Output.NameFormat,
	)
	return nil
}

// newLogger builds a slog logger writing to the configured file, or to
// stderr when no file is set.
func newLogger(cfg config.LogConfig, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	w := stderr
	var closer io.Closer
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = f
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), closer, nil
}

func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

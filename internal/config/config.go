// =============================================================================
// Fixed-Width to CSV Converter - Configuration Module
// =============================================================================
//
// Application settings for the CLI. The schema itself is not part of this
// configuration; it is passed per run with --schema. Only the layout of XLSX
// schema workbooks is configured here.
//
// SOURCES (later wins):
//   1. Built-in defaults
//   2. The YAML configuration file (optional)
//   3. FWCSV_* environment variables, e.g. FWCSV_INPUT_ENCODING
//
// EXAMPLE (config.yaml):
//   input:
//     encoding: ISO-8859-1
//   output:
//     name_format: "{original}_{date}.csv"
//     archive_dir: ./archive
//     archive_date_subdirs: true
//   schema:
//     xlsx:
//       sheet: Layout
//       label_column: A
//       width_column: B
//       type_column: C
//   log:
//     level: debug
//     format: json
//   metrics:
//     textfile: ./metrics/converter.prom
//
// =============================================================================

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ginjaninja78/fixed-width-to-csv/internal/fixedwidth"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/xlsxparser"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "FWCSV"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Input   InputConfig   `mapstructure:"input"`
	Output  OutputConfig  `mapstructure:"output"`
	Schema  SchemaConfig  `mapstructure:"schema"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// InputConfig describes fixed-width input files.
type InputConfig struct {
	// Encoding is the IANA character set name of input files.
	// Default: "UTF-8"
	Encoding string `mapstructure:"encoding"`
}

// OutputConfig describes where CSV files go.
type OutputConfig struct {
	// NameFormat is the output file name used when --output is not given.
	// Placeholders: {uuid}, {timestamp}, {date}, {original}.
	// Default: "output.csv"
	NameFormat string `mapstructure:"name_format"`

	// ArchiveDir is where each successfully converted input file is moved.
	// Empty disables archiving.
	ArchiveDir string `mapstructure:"archive_dir"`

	// ArchiveDateSubdirs files archived inputs under ArchiveDir/YYYY/MM/DD.
	ArchiveDateSubdirs bool `mapstructure:"archive_date_subdirs"`
}

// SchemaConfig describes how schema files are read.
type SchemaConfig struct {
	XLSX XLSXConfig `mapstructure:"xlsx"`
}

// XLSXConfig locates the schema tokens in a workbook. Columns are letters.
type XLSXConfig struct {
	// Sheet is the worksheet name. Empty means the first sheet.
	Sheet string `mapstructure:"sheet"`

	LabelColumn string `mapstructure:"label_column"` // Default: "A"
	WidthColumn string `mapstructure:"width_column"` // Default: "B"
	TypeColumn  string `mapstructure:"type_column"`  // Default: "C"
}

// TemplateColumns converts the configured letters to a parser layout.
func (x XLSXConfig) TemplateColumns() (xlsxparser.TemplateColumns, error) {
	return xlsxparser.NewTemplateColumns(x.Sheet, x.LabelColumn, x.WidthColumn, x.TypeColumn)
}

// LogConfig controls the slog handler built by the CLI.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: "info"
	Level string `mapstructure:"level"`

	// Format is text or json. Default: "text"
	Format string `mapstructure:"format"`

	// File is the log destination. Empty means stderr.
	File string `mapstructure:"file"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// Textfile is written after each run when set.
	Textfile string `mapstructure:"textfile"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from path (if it exists) and the environment.
// A missing file is not an error; defaults and environment still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to access config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults registers every key so that environment overrides work
// even when the file does not mention it.
func applyDefaults(v *viper.Viper) {
	v.SetDefault("input.encoding", fixedwidth.DefaultEncoding)
	v.SetDefault("output.name_format", "output.csv")
	v.SetDefault("output.archive_dir", "")
	v.SetDefault("output.archive_date_subdirs", false)
	v.SetDefault("schema.xlsx.sheet", "")
	v.SetDefault("schema.xlsx.label_column", "A")
	v.SetDefault("schema.xlsx.width_column", "B")
	v.SetDefault("schema.xlsx.type_column", "C")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("metrics.textfile", "")
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks settings that would otherwise fail late, in the middle
// of a conversion.
func (c *Config) Validate() error {
	if _, err := fixedwidth.DecoderFor(c.Input.Encoding); err != nil {
		return fmt.Errorf("input.encoding: %w", err)
	}

	if strings.TrimSpace(c.Output.NameFormat) == "" {
		return fmt.Errorf("output.name_format must not be empty")
	}

	if _, err := c.Schema.XLSX.TemplateColumns(); err != nil {
		return fmt.Errorf("schema.xlsx: %w", err)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", c.Log.Format)
	}

	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", l.Level)
	}
	return level, nil
}

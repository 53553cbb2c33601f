// =============================================================================
// Fixed-Width to CSV Converter - Schema Loading
// =============================================================================
//
// Schema files come in three shapes, picked by file extension:
//
//   .yaml / .yml : fields: [{name, width, type}, ...]
//   .xlsx        : columns Label | Width | Type, layout set by WithTemplateColumns
//   anything else: one "<label>,<width>,<type>" entry per line
//
// Every source is reduced to schema.Entry rows first, then validated here in
// one place so that all formats fail with the same ConfigurationError text.
//
// =============================================================================

package converter

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	cerrors "github.com/ginjaninja78/fixed-width-to-csv/internal/errors"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/schema"
	"github.com/ginjaninja78/fixed-width-to-csv/internal/xlsxparser"
)

const (
	msgSchemaMissing  = "the configuration file does not exist"
	msgSchemaShape    = "the configuration file is not set up correctly: the format is <column label>,<column width>,<column type>, e.g. Birth date,10,date"
	msgSchemaType     = "data type can only be 'date' or 'string' or 'numeric'"
	msgSchemaNoFields = "the configuration file does not define any column"
)

// =============================================================================
// SCHEMA LOADING
// =============================================================================

// LoadSchema reads the schema at configFilePath and makes it the engine's
// schema. The previous schema is replaced only when the whole file is valid;
// on error the engine keeps whatever it had before.
func (c *Converter) LoadSchema(configFilePath string) error {
	entries, err := c.readSchemaEntries(configFilePath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return cerrors.NewConfigurationError(msgSchemaNoFields)
	}

	var loaded schema.Schema
	for _, entry := range entries {
		field, err := fieldFromEntry(entry)
		if err != nil {
			return err
		}
		loaded.AddField(field)
	}

	c.schema = loaded
	c.logger.Debug("schema loaded",
		"path", configFilePath,
		"fields", loaded.Len(),
		"total_width", loaded.TotalWidth(),
	)
	return nil
}

// fieldFromEntry validates the raw tokens of one schema row.
func fieldFromEntry(entry schema.Entry) (schema.Field, error) {
	kind, ok := schema.ParseKind(strings.TrimSpace(entry.Type))
	if !ok {
		return schema.Field{}, &cerrors.ConfigurationError{Message: msgSchemaType, Line: entry.Line}
	}

	width, err := strconv.Atoi(strings.TrimSpace(entry.Width))
	if err != nil || width <= 0 {
		return schema.Field{}, &cerrors.ConfigurationError{
			Message: fmt.Sprintf("the column width must be a positive integer, got %q", entry.Width),
			Line:    entry.Line,
		}
	}

	return schema.Field{Name: entry.Label, Width: width, Kind: kind}, nil
}

// readSchemaEntries dispatches on the file extension.
func (c *Converter) readSchemaEntries(path string) ([]schema.Entry, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cerrors.NewConfigurationError(msgSchemaMissing)
		}
		return nil, &cerrors.ConfigurationError{Message: "failed to access the configuration file", Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return readYAMLEntries(path)
	case ".xlsx":
		entries, err := xlsxparser.Parse(path, c.xlsxColumns)
		if err != nil {
			return nil, &cerrors.ConfigurationError{Message: "failed to read the configuration workbook", Err: err}
		}
		return entries, nil
	default:
		return readTextEntries(path)
	}
}

// =============================================================================
// TEXT SCHEMA
// =============================================================================

func readTextEntries(path string) ([]schema.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &cerrors.ConfigurationError{Message: "failed to read the configuration file", Err: err}
	}
	defer file.Close()

	var entries []schema.Entry
	scanner := bufio.NewScanner(file)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if lineNumber == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		tokens := strings.Split(line, ",")
		if len(tokens) != 3 {
			return nil, &cerrors.ConfigurationError{Message: msgSchemaShape, Line: lineNumber}
		}

		entries = append(entries, schema.Entry{
			Label: tokens[0],
			Width: tokens[1],
			Type:  tokens[2],
			Line:  lineNumber,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, &cerrors.ConfigurationError{Message: "failed to read the configuration file", Err: err}
	}

	return entries, nil
}

// =============================================================================
// YAML SCHEMA
// =============================================================================

// yamlSchema is the document layout of a YAML schema file.
type yamlSchema struct {
	Fields []yamlField `yaml:"fields"`
}

// yamlField keeps width and type as raw nodes so that bad values reach the
// shared validation as written, instead of failing inside the YAML decoder or
// being normalised by it (10.0 must not become 10).
type yamlField struct {
	Name  string    `yaml:"name"`
	Width yaml.Node `yaml:"width"`
	Type  yaml.Node `yaml:"type"`

	line int
}

// UnmarshalYAML records the line of each field for error messages.
func (f *yamlField) UnmarshalYAML(value *yaml.Node) error {
	type plain yamlField
	var decoded plain
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*f = yamlField(decoded)
	f.line = value.Line
	return nil
}

func readYAMLEntries(path string) ([]schema.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &cerrors.ConfigurationError{Message: "failed to read the configuration file", Err: err}
	}

	var doc yamlSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &cerrors.ConfigurationError{Message: msgSchemaShape, Err: err}
	}

	entries := make([]schema.Entry, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		entries = append(entries, schema.Entry{
			Label: f.Name,
			Width: scalarString(f.Width),
			Type:  scalarString(f.Type),
			Line:  f.line,
		})
	}
	return entries, nil
}

// scalarString returns the source text of a scalar node. Anything else,
// including a missing key, yields "".
func scalarString(n yaml.Node) string {
	if n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

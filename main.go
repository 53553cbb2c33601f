// =============================================================================
// Fixed-Width to CSV Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   converter convert   - Convert a fixed-width file to CSV
//   converter check     - Report every invalid line of a fixed-width file
//   converter validate  - Validate a schema file
//   converter version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Conversion engine, schema sources, reader/writer, config
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/fixed-width-to-csv/cmd"
)

func main() {
	cmd.Execute()
}

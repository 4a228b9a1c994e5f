// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputTOML outputFormat = "toml"
)

// ErrInvalidOutputFormat is returned for an --output value other than text, json or toml.
var ErrInvalidOutputFormat = errors.New("invalid output format")

// outputFormat selects how command results are printed.
type outputFormat string

// Validate returns nil if the format is recognized.
func (f outputFormat) Validate() error {
	switch f {
	case outputText, outputJSON, outputTOML:
		return nil
	default:
		return fmt.Errorf("%w %q (valid: text, json, toml)", ErrInvalidOutputFormat, string(f))
	}
}

// writeStructured encodes v as JSON or TOML. It must not be called with outputText.
func writeStructured(w io.Writer, format outputFormat, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(v)
	default:
		return fmt.Errorf("%w %q", ErrInvalidOutputFormat, string(format))
	}
}

func outputFlagUsage() string {
	return "output format: text, json or toml"
}

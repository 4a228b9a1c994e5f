// SPDX-License-Identifier: MPL-2.0

// Package logging builds the charmbracelet/log loggers used across halmod.
package logging

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

const (
	// FormatText is the human-readable format.
	FormatText = "text"
	// FormatJSON emits one JSON object per line.
	FormatJSON = "json"
	// FormatLogfmt emits logfmt key=value pairs.
	FormatLogfmt = "logfmt"
)

// ErrUnknownFormat is returned by New for a format other than text, json or logfmt.
var ErrUnknownFormat = errors.New("unknown log format")

// Options configures New.
type Options struct {
	// Level is parsed with log.ParseLevel. Empty means info.
	Level string
	// Format is one of FormatText, FormatJSON or FormatLogfmt. Empty means text.
	Format string
	// Prefix is prepended to every line.
	Prefix string
	// Verbose forces the debug level regardless of Level.
	Verbose bool
	// ReportTimestamp adds a timestamp to each line.
	ReportTimestamp bool
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = log.DebugLevel
	}

	var formatter log.Formatter
	switch opts.Format {
	case "", FormatText:
		formatter = log.TextFormatter
	case FormatJSON:
		formatter = log.JSONFormatter
	case FormatLogfmt:
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		Formatter:       formatter,
		ReportTimestamp: opts.ReportTimestamp,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

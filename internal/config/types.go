// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/halmod/halmod/pkg/hwmodule"
)

const (
	// LinkerNative loads shared libraries through the platform dynamic linker.
	LinkerNative LinkerKind = "native"
	// LinkerPlugin loads Go plugins built with -buildmode=plugin.
	LinkerPlugin LinkerKind = "plugin"

	// LogLevelDebug enables resolution traces.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn reports skipped lookups and cleanup failures.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError reports failed candidates only.
	LogLevelError LogLevel = "error"

	// LogFormatText is charmbracelet/log's human-readable output.
	LogFormatText LogFormat = "text"
	// LogFormatJSON emits one JSON object per line.
	LogFormatJSON LogFormat = "json"
	// LogFormatLogfmt emits logfmt key=value pairs.
	LogFormatLogfmt LogFormat = "logfmt"
)

var (
	// ErrInvalidLinkerKind is returned when a LinkerKind value is not recognized.
	ErrInvalidLinkerKind = errors.New("invalid linker kind")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat is returned when a LogFormat value is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidLibraryRoot is returned when library_root is not an absolute path.
	ErrInvalidLibraryRoot = errors.New("invalid library root")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LinkerKind selects how module libraries are opened.
	LinkerKind string

	// InvalidLinkerKindError is returned when a LinkerKind value is not recognized.
	// It wraps ErrInvalidLinkerKind for errors.Is() compatibility.
	InvalidLinkerKindError struct {
		Value LinkerKind
	}

	// LogLevel is the minimum level written to the log.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// LogFormat selects the log encoder.
	LogFormat string

	// InvalidLogFormatError is returned when a LogFormat value is not recognized.
	InvalidLogFormatError struct {
		Value LogFormat
	}

	// InvalidLibraryRootError is returned when library_root is empty or relative.
	InvalidLibraryRootError struct {
		Value string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// LibraryRoot is the directory module libraries are installed in.
		LibraryRoot string `json:"library_root" mapstructure:"library_root"`
		// ModuleExtension is the library file extension without the dot.
		ModuleExtension string `json:"module_extension" mapstructure:"module_extension"`
		// VariantKeys are the property keys tried in order before "default".
		VariantKeys []string `json:"variant_keys" mapstructure:"variant_keys"`
		// PropertyFiles are build.prop style files, later files winning.
		PropertyFiles []string `json:"property_files" mapstructure:"property_files"`
		// Properties are inline values consulted before PropertyFiles.
		Properties map[string]string `json:"properties" mapstructure:"properties"`
		// Linker selects the library loader.
		Linker LinkerKind `json:"linker" mapstructure:"linker"`
		// Log configures diagnostics output.
		Log LogConfig `json:"log" mapstructure:"log"`
	}

	// LogConfig configures the logger.
	LogConfig struct {
		Level  LogLevel  `json:"level" mapstructure:"level"`
		Format LogFormat `json:"format" mapstructure:"format"`
	}
)

// DefaultConfig returns the deployment defaults: the board, arch, default
// walk over /system/lib/hw, with properties read from the system and vendor
// build.prop files.
func DefaultConfig() *Config {
	return &Config{
		LibraryRoot:     hwmodule.DefaultLibraryRoot,
		ModuleExtension: hwmodule.DefaultExtension,
		VariantKeys:     []string{hwmodule.BoardKey, hwmodule.ArchKey},
		PropertyFiles:   []string{"/system/build.prop", "/vendor/build.prop"},
		Properties:      map[string]string{},
		Linker:          LinkerNative,
		Log: LogConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}

// Error implements the error interface.
func (e *InvalidLinkerKindError) Error() string {
	return fmt.Sprintf("invalid linker %q (valid: native, plugin)", e.Value)
}

// Unwrap returns ErrInvalidLinkerKind for errors.Is() compatibility.
func (e *InvalidLinkerKindError) Unwrap() error { return ErrInvalidLinkerKind }

// Validate returns nil if the LinkerKind is recognized.
func (k LinkerKind) Validate() error {
	switch k {
	case LinkerNative, LinkerPlugin:
		return nil
	default:
		return &InvalidLinkerKindError{Value: k}
	}
}

// String returns the string representation of the LinkerKind.
func (k LinkerKind) String() string { return string(k) }

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Validate returns nil if the LogLevel is recognized.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// Error implements the error interface.
func (e *InvalidLogFormatError) Error() string {
	return fmt.Sprintf("invalid log format %q (valid: text, json, logfmt)", e.Value)
}

// Unwrap returns ErrInvalidLogFormat for errors.Is() compatibility.
func (e *InvalidLogFormatError) Unwrap() error { return ErrInvalidLogFormat }

// Validate returns nil if the LogFormat is recognized.
func (f LogFormat) Validate() error {
	switch f {
	case LogFormatText, LogFormatJSON, LogFormatLogfmt:
		return nil
	default:
		return &InvalidLogFormatError{Value: f}
	}
}

// String returns the string representation of the LogFormat.
func (f LogFormat) String() string { return string(f) }

// Error implements the error interface.
func (e *InvalidLibraryRootError) Error() string {
	return fmt.Sprintf("invalid library root %q: must be an absolute path", e.Value)
}

// Unwrap returns ErrInvalidLibraryRoot for errors.Is() compatibility.
func (e *InvalidLibraryRootError) Unwrap() error { return ErrInvalidLibraryRoot }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %d field errors: %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors, so errors.Is matches
// both the sentinel and any field-level cause.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate checks every field and returns an *InvalidConfigError listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs []error

	if c.LibraryRoot == "" || !strings.HasPrefix(c.LibraryRoot, "/") {
		errs = append(errs, &InvalidLibraryRootError{Value: c.LibraryRoot})
	}
	if strings.TrimSpace(strings.TrimPrefix(c.ModuleExtension, ".")) == "" {
		errs = append(errs, errors.New("module_extension must not be empty"))
	}
	if _, err := c.Keys(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Linker.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Log.Format.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Keys converts VariantKeys into the resolver's key list.
func (c *Config) Keys() (hwmodule.VariantKeys, error) {
	return hwmodule.NewVariantKeys(c.VariantKeys...)
}

// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/halmod/halmod/pkg/hwmodule"
)

func TestLinkerKind_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   LinkerKind
		wantErr bool
	}{
		{LinkerNative, false},
		{LinkerPlugin, false},
		{"", true},
		{"NATIVE", true},
		{"jit", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()
			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidLinkerKind) {
				t.Errorf("errors.Is(err, ErrInvalidLinkerKind) = false")
			}
			var kindErr *InvalidLinkerKindError
			if !errors.As(err, &kindErr) || kindErr.Value != tt.value {
				t.Errorf("errors.As() did not recover the value: %v", err)
			}
		})
	}
}

func TestLogLevel_Validate(t *testing.T) {
	t.Parallel()

	for _, l := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if err := l.Validate(); err != nil {
			t.Errorf("%q.Validate() = %v", l, err)
		}
	}
	if err := LogLevel("trace").Validate(); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("trace.Validate() = %v, want ErrInvalidLogLevel", err)
	}
}

func TestLogFormat_Validate(t *testing.T) {
	t.Parallel()

	for _, f := range []LogFormat{LogFormatText, LogFormatJSON, LogFormatLogfmt} {
		if err := f.Validate(); err != nil {
			t.Errorf("%q.Validate() = %v", f, err)
		}
	}
	if err := LogFormat("yaml").Validate(); !errors.Is(err, ErrInvalidLogFormat) {
		t.Errorf("yaml.Validate() = %v, want ErrInvalidLogFormat", err)
	}
}

func TestConfig_Validate_CollectsAllFieldErrors(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		LibraryRoot:     "relative/lib",
		ModuleExtension: ".",
		VariantKeys:     []string{"ro.arch", "ro.arch"},
		Linker:          "jit",
		Log:             LogConfig{Level: "loud", Format: "xml"},
	}

	err := cfg.Validate()
	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Validate() = %v, want *InvalidConfigError", err)
	}
	if len(cfgErr.FieldErrors) != 6 {
		t.Errorf("len(FieldErrors) = %d, want 6: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}

	for _, sentinel := range []error{
		ErrInvalidConfig,
		ErrInvalidLibraryRoot,
		hwmodule.ErrInvalidVariantKeys,
		ErrInvalidLinkerKind,
		ErrInvalidLogLevel,
		ErrInvalidLogFormat,
	} {
		if !errors.Is(err, sentinel) {
			t.Errorf("errors.Is(err, %v) = false", sentinel)
		}
	}
	if !strings.Contains(err.Error(), "6 field errors") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestInvalidConfigError_SingleField(t *testing.T) {
	t.Parallel()

	err := &InvalidConfigError{FieldErrors: []error{&InvalidLinkerKindError{Value: "x"}}}
	want := `invalid config: invalid linker "x" (valid: native, plugin)`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

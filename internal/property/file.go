// SPDX-License-Identifier: MPL-2.0

package property

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/magiconair/properties"
	"github.com/spf13/viper"

	"github.com/halmod/halmod/internal/logging"
	"github.com/halmod/halmod/pkg/hwmodule"
)

const (
	// EnvPrefix prefixes environment overrides: ro.product.board is read from
	// HALMOD_PROP_RO_PRODUCT_BOARD.
	EnvPrefix = "HALMOD_PROP"

	keyDelimiter = "::"
)

// ErrPropertyFile is the sentinel error wrapped by FileError.
var ErrPropertyFile = errors.New("unreadable property file")

type (
	// FileError is returned when a property file exists but cannot be parsed.
	// It wraps ErrPropertyFile and the underlying cause.
	FileError struct {
		Path string
		Err  error
	}

	// FileOptions configures NewFileSource.
	FileOptions struct {
		// Paths are read in order; later files override earlier ones. Missing
		// files are skipped.
		Paths []string
		// DisableEnv turns off HALMOD_PROP_* environment overrides.
		DisableEnv bool
		// Logger defaults to a discarding logger.
		Logger *log.Logger
	}

	// FileSource serves properties loaded from build.prop files. It is
	// read-only after construction and safe for concurrent use.
	FileSource struct {
		v      *viper.Viper
		loaded []string
	}
)

var _ hwmodule.PropertySource = (*FileSource)(nil)

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("property file %s: %v", e.Path, e.Err)
}

// Unwrap returns the sentinel and the cause.
func (e *FileError) Unwrap() []error {
	return []error{ErrPropertyFile, e.Err}
}

// NewFileSource reads the property files in opts.Paths.
func NewFileSource(opts FileOptions) (*FileSource, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	if !opts.DisableEnv {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		v.AutomaticEnv()
	}

	var loaded []string
	for _, path := range opts.Paths {
		values, err := readPropertyFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("property file not found, skipping", "path", path)
			continue
		}
		if err != nil {
			return nil, &FileError{Path: path, Err: err}
		}
		if err := v.MergeConfigMap(values); err != nil {
			return nil, &FileError{Path: path, Err: err}
		}
		logger.Debug("loaded property file", "path", path, "properties", len(values))
		loaded = append(loaded, path)
	}

	return &FileSource{v: v, loaded: loaded}, nil
}

// readPropertyFile parses a build.prop style file. ${...} references are left
// as written.
func readPropertyFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, err
	}

	values := make(map[string]any, p.Len())
	for key, value := range p.Map() {
		values[key] = value
	}
	return values, nil
}

// Property implements hwmodule.PropertySource.
func (s *FileSource) Property(key string) (string, bool, error) {
	if !s.v.IsSet(key) {
		return "", false, nil
	}
	value := strings.TrimSpace(s.v.GetString(key))
	return value, value != "", nil
}

// Files returns the property files that were found and loaded.
func (s *FileSource) Files() []string {
	return slices.Clone(s.loaded)
}

// Keys returns every property name loaded from files, lower-cased and sorted.
// Environment overrides are not listed.
func (s *FileSource) Keys() []string {
	keys := s.v.AllKeys()
	slices.Sort(keys)
	return keys
}

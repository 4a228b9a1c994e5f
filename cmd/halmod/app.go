// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/halmod/halmod/internal/config"
	"github.com/halmod/halmod/internal/dl"
	"github.com/halmod/halmod/internal/issue"
	"github.com/halmod/halmod/internal/logging"
	"github.com/halmod/halmod/internal/property"
	"github.com/halmod/halmod/pkg/hwmodule"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra handler receives an App and resolves modules
	// through the session it builds.
	App struct {
		Config ConfigProvider
		linker hwmodule.Linker
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		// Linker replaces the linker selected by the config's linker setting.
		Linker hwmodule.Linker
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// globalFlags holds the persistent flag values shared by all commands.
	globalFlags struct {
		configPath string
		verbose    bool
		props      []string
		root       string
		ext        string
	}

	// session is everything one command invocation needs to resolve modules.
	session struct {
		cfg      *config.Config
		cfgPath  string
		logger   *log.Logger
		cli      property.Map
		files    *property.FileSource
		props    hwmodule.PropertySource
		resolver *hwmodule.Resolver
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		linker: deps.Linker,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// loadConfig loads configuration honoring --config.
func (a *App) loadConfig(ctx context.Context, flags *globalFlags) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, usageError(withIssue(err, issue.ConfigLoadFailedId))
	}
	return cfg, nil
}

// newSession loads configuration and builds the property chain and resolver.
// Property precedence is --prop, then the config's inline properties, then
// the property files (with HALMOD_PROP_* environment overrides).
func (a *App) newSession(ctx context.Context, flags *globalFlags) (*session, error) {
	cfg, err := a.loadConfig(ctx, flags)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(a.stderr, logging.Options{
		Level:   cfg.Log.Level.String(),
		Format:  cfg.Log.Format.String(),
		Prefix:  "halmod",
		Verbose: flags.verbose,
	})
	if err != nil {
		return nil, usageError(err)
	}

	cli, err := property.ParseAssignments(flags.props)
	if err != nil {
		return nil, usageError(issue.NewErrorContext().
			WithOperation("parse --prop").
			WithSuggestion("Use the form --prop key=value").
			WithIssue(issue.InvalidPropertyAssignmentId).
			Wrap(err).
			BuildError())
	}

	files, err := property.NewFileSource(property.FileOptions{
		Paths:  cfg.PropertyFiles,
		Logger: logger,
	})
	if err != nil {
		return nil, usageError(issue.NewErrorContext().
			WithOperation("read property files").
			WithResource(strings.Join(cfg.PropertyFiles, ", ")).
			WithSuggestion("Check the property_files entries in your config").
			WithIssue(issue.PropertyFileUnreadableId).
			Wrap(err).
			BuildError())
	}

	keys, err := cfg.Keys()
	if err != nil {
		return nil, usageError(err)
	}

	root := cfg.LibraryRoot
	if flags.root != "" {
		root = flags.root
	}
	ext := cfg.ModuleExtension
	if flags.ext != "" {
		ext = flags.ext
	}

	props := property.Chain{cli, property.Map(cfg.Properties), files}
	resolver, err := hwmodule.NewResolver(hwmodule.ResolverOptions{
		Linker:      a.linkerFor(cfg.Linker),
		Properties:  props,
		Keys:        keys,
		LibraryRoot: root,
		Extension:   ext,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	cfgPath, _ := config.Locate(config.LoadOptions{ConfigFilePath: flags.configPath})

	return &session{
		cfg:      cfg,
		cfgPath:  cfgPath,
		logger:   logger,
		cli:      cli,
		files:    files,
		props:    props,
		resolver: resolver,
	}, nil
}

func (a *App) linkerFor(kind config.LinkerKind) hwmodule.Linker {
	if a.linker != nil {
		return a.linker
	}
	if kind == config.LinkerPlugin {
		return dl.NewPluginLinker()
	}
	return dl.NewLinker()
}

// withIssue attaches id to err when err is an ActionableError without one.
func withIssue(err error, id issue.Id) error {
	if ae, ok := asActionable(err); ok && ae.IssueId == 0 {
		ae.IssueId = id
	}
	return err
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/halmod/halmod/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the halmod command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd, _ := newRootCommand(app)
	return rootCmd
}

func newRootCommand(app *App) (*cobra.Command, *globalFlags) {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "halmod",
		Short: "Resolve and load variant-specific hardware modules",
		Long: TitleStyle.Render("halmod") + SubtitleStyle.Render(" - Resolve and load variant-specific hardware modules") + `

halmod finds the best implementation of a hardware module for the running
device. For a module id it tries, in order:

  <library_root>/<id>.<ro.product.board>.so
  <library_root>/<id>.<ro.arch>.so
  <library_root>/<id>.default.so

and loads the first library that exports a descriptor reporting that id.
Property values come from build.prop files, the config file and --prop.

` + SubtitleStyle.Render("Examples:") + `
  halmod get sensors                      Load the sensors module
  halmod paths sensors                    Show the candidate paths
  halmod --prop ro.arch=arm64 get lights  Override a property
  halmod props                            Show variant property values
  halmod config show                      Show current configuration`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging and detailed errors")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/halmod/config.cue)")
	pf.StringArrayVar(&flags.props, "prop", nil, "set a property, as key=value (repeatable)")
	pf.StringVar(&flags.root, "root", "", "override the library root directory")
	pf.StringVar(&flags.ext, "ext", "", "override the library file extension")

	rootCmd.AddCommand(newGetCommand(app, flags))
	rootCmd.AddCommand(newPathsCommand(app, flags))
	rootCmd.AddCommand(newPropsCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd, flags
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the root command.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd, flags := newRootCommand(app)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			writeError(w, err, flags.verbose)
		}),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// writeError prints err for the user. In verbose mode an attached issue guide
// is rendered below the message.
func writeError(w io.Writer, err error, verbose bool) {
	fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, verbose))

	ae, ok := asActionable(err)
	if !ok || ae.Issue() == nil {
		return
	}
	if !verbose {
		for _, link := range ae.Issue().ExtLinks() {
			fmt.Fprintf(w, "%s %s\n", SubtitleStyle.Render("See also:"), link)
		}
		return
	}
	if rendered, rerr := ae.Issue().Render("dark"); rerr == nil {
		fmt.Fprint(w, rendered)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	if ae, ok := asActionable(err); ok {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

func asActionable(err error) (*issue.ActionableError, bool) {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

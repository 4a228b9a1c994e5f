// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/halmod/halmod/internal/dl"
	"github.com/halmod/halmod/internal/issue"
	"github.com/halmod/halmod/pkg/hwmodule"
)

type (
	// moduleReport is the printable result of a successful get.
	moduleReport struct {
		ID         string              `json:"id" toml:"id"`
		Path       string              `json:"path" toml:"path"`
		Tag        string              `json:"tag" toml:"tag"`
		Descriptor hwmodule.Descriptor `json:"descriptor" toml:"descriptor"`
	}

	// notFoundReport is the structured form of a failed get.
	notFoundReport struct {
		ID       string          `json:"id" toml:"id"`
		Found    bool            `json:"found" toml:"found"`
		Attempts []attemptReport `json:"attempts" toml:"attempts"`
	}

	attemptReport struct {
		Key     string `json:"key" toml:"key"`
		Variant string `json:"variant" toml:"variant"`
		Path    string `json:"path" toml:"path"`
		Error   string `json:"error" toml:"error"`
	}
)

func newGetCommand(app *App, flags *globalFlags) *cobra.Command {
	var output string

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Resolve and load a module",
		Long: `Resolve a module id to the most specific library available, load it and
print the descriptor it exports. Exits with status 1 when no candidate loads.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := outputFormat(output)
			if err := format.Validate(); err != nil {
				return usageError(err)
			}
			return runGet(cmd, app, flags, args[0], format)
		},
	}
	getCmd.Flags().StringVarP(&output, "output", "o", string(outputText), outputFlagUsage())

	return getCmd
}

func runGet(cmd *cobra.Command, app *App, flags *globalFlags, id string, format outputFormat) error {
	if err := hwmodule.ValidateModuleID(id); err != nil {
		return invalidModuleIDError(id, err)
	}

	s, err := app.newSession(cmd.Context(), flags)
	if err != nil {
		return err
	}

	mod, err := s.resolver.Resolve(id)
	if err != nil {
		var notFound *hwmodule.ModuleNotFoundError
		if errors.As(err, &notFound) {
			if format != outputText {
				if werr := writeStructured(app.stdout, format, newNotFoundReport(notFound)); werr != nil {
					return werr
				}
			}
			return moduleNotFoundError(notFound)
		}
		return issue.WrapWithContext(err, "resolve module", id)
	}
	defer func() {
		if cerr := mod.Close(); cerr != nil {
			s.logger.Warn("close module", "path", mod.Path(), "error", cerr)
		}
	}()

	desc := mod.Descriptor()
	report := moduleReport{ID: mod.ID(), Path: mod.Path(), Tag: desc.TagString(), Descriptor: *desc}
	if format != outputText {
		return writeStructured(app.stdout, format, report)
	}
	writeModuleText(app.stdout, report)
	return nil
}

func writeModuleText(w io.Writer, r moduleReport) {
	fmt.Fprintln(w, SuccessStyle.Render("✓")+" "+TitleStyle.Render(r.ID))
	field := func(label, value string) {
		if value == "" {
			value = SubtitleStyle.Render("(none)")
		}
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label), value)
	}
	field("path", KeyStyle.Render(r.Path))
	field("name", r.Descriptor.Name)
	field("author", r.Descriptor.Author)
	tag := r.Tag
	if !r.Descriptor.HasHardwareTag() {
		tag = WarningStyle.Render(tag)
	}
	field("tag", tag)
	field("module", r.Descriptor.ModuleAPIVersion.String())
	field("hal", r.Descriptor.HALAPIVersion.String())
}

func newNotFoundReport(err *hwmodule.ModuleNotFoundError) notFoundReport {
	r := notFoundReport{ID: err.ID, Attempts: make([]attemptReport, 0, len(err.Attempts))}
	for _, a := range err.Attempts {
		ar := attemptReport{Key: a.Key, Variant: a.Variant, Path: a.Path}
		if a.Err != nil {
			ar.Error = a.Err.Error()
		}
		r.Attempts = append(r.Attempts, ar)
	}
	return r
}

// moduleNotFoundError wraps a failed resolution for display. When every
// attempt failed because the platform cannot load libraries, the platform
// guide is attached instead of the search-order guide.
func moduleNotFoundError(err *hwmodule.ModuleNotFoundError) error {
	id := issue.ModuleNotFoundId
	if len(err.Attempts) > 0 && allAttempts(err.Attempts, dl.ErrUnsupportedPlatform) {
		id = issue.UnsupportedPlatformId
	}

	ctx := issue.NewErrorContext().
		WithOperation("load module").
		WithResource(err.ID).
		WithIssue(id)
	for _, a := range err.Attempts {
		ctx.WithSuggestion(fmt.Sprintf("%s: %v", a.Path, a.Err))
	}
	ctx.WithSuggestion(fmt.Sprintf("Run 'halmod paths %s' to see every candidate", err.ID))

	return &ExitError{Code: ExitNotFound, Err: ctx.Wrap(err).BuildError()}
}

func allAttempts(attempts []hwmodule.Attempt, target error) bool {
	for _, a := range attempts {
		if !errors.Is(a.Err, target) {
			return false
		}
	}
	return true
}

func invalidModuleIDError(id string, err error) error {
	return usageError(issue.NewErrorContext().
		WithOperation("resolve module").
		WithResource(fmt.Sprintf("%q", id)).
		WithSuggestion("Module ids must be non-empty and must not contain '/'").
		WithIssue(issue.InvalidModuleIdId).
		Wrap(err).
		BuildError())
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/halmod/halmod/internal/issue"
	"github.com/halmod/halmod/pkg/hwmodule"
)

type (
	candidateReport struct {
		Key     string `json:"key" toml:"key"`
		Variant string `json:"variant,omitempty" toml:"variant,omitempty"`
		Path    string `json:"path,omitempty" toml:"path,omitempty"`
		Skipped string `json:"skipped,omitempty" toml:"skipped,omitempty"`
		Exists  bool   `json:"exists" toml:"exists"`
		Error   string `json:"error,omitempty" toml:"error,omitempty"`
	}

	pathsReport struct {
		ID         string            `json:"id" toml:"id"`
		Candidates []candidateReport `json:"candidates" toml:"candidates"`
	}
)

func newPathsCommand(app *App, flags *globalFlags) *cobra.Command {
	var output string

	pathsCmd := &cobra.Command{
		Use:   "paths <id>",
		Short: "Show the candidate paths for a module without loading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := outputFormat(output)
			if err := format.Validate(); err != nil {
				return usageError(err)
			}

			id := args[0]
			if err := hwmodule.ValidateModuleID(id); err != nil {
				return invalidModuleIDError(id, err)
			}

			s, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			candidates, err := s.resolver.Candidates(id)
			if err != nil {
				return issue.WrapWithContext(err, "plan module candidates", id)
			}

			report := newPathsReport(id, candidates)
			if format != outputText {
				return writeStructured(app.stdout, format, report)
			}
			writePathsText(app.stdout, report)
			return nil
		},
	}
	pathsCmd.Flags().StringVarP(&output, "output", "o", string(outputText), outputFlagUsage())

	return pathsCmd
}

func newPathsReport(id string, candidates []hwmodule.Candidate) pathsReport {
	r := pathsReport{ID: id, Candidates: make([]candidateReport, 0, len(candidates))}
	for _, c := range candidates {
		cr := candidateReport{Key: c.Key, Variant: c.Variant, Path: c.Path, Skipped: string(c.Skipped)}
		if c.Err != nil {
			cr.Error = c.Err.Error()
		} else if c.Path != "" {
			info, err := os.Stat(c.Path)
			cr.Exists = err == nil && !info.IsDir()
		}
		r.Candidates = append(r.Candidates, cr)
	}
	return r
}

func writePathsText(w io.Writer, r pathsReport) {
	fmt.Fprintln(w, TitleStyle.Render("Candidates for "+r.ID))
	for i, c := range r.Candidates {
		switch {
		case c.Skipped != "":
			fmt.Fprintf(w, "  %d. %s %s\n", i+1, KeyStyle.Render(c.Key), SubtitleStyle.Render("("+c.Skipped+")"))
		case c.Error != "":
			fmt.Fprintf(w, "  %d. %s = %s  %s\n", i+1, KeyStyle.Render(c.Key), c.Variant, ErrorStyle.Render(c.Error))
		default:
			state := WarningStyle.Render("missing")
			if c.Exists {
				state = SuccessStyle.Render("present")
			}
			fmt.Fprintf(w, "  %d. %s = %s  %s  %s\n", i+1, KeyStyle.Render(c.Key), c.Variant, c.Path, state)
		}
	}
}

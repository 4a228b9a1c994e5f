// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/halmod/halmod/pkg/hwmodule"
)

type (
	propertyReport struct {
		Key   string `json:"key" toml:"key"`
		Value string `json:"value,omitempty" toml:"value,omitempty"`
		Set   bool   `json:"set" toml:"set"`
		Error string `json:"error,omitempty" toml:"error,omitempty"`
	}

	propsReport struct {
		Files      []string         `json:"files" toml:"files"`
		Properties []propertyReport `json:"properties" toml:"properties"`
	}
)

func newPropsCommand(app *App, flags *globalFlags) *cobra.Command {
	var (
		output string
		all    bool
	)

	propsCmd := &cobra.Command{
		Use:   "props",
		Short: "Show the values of the variant property keys",
		Long: `Show what each configured variant key resolves to, after --prop, the
config file's properties and the property files are combined. With --all,
every property read from the property files is listed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := outputFormat(output)
			if err := format.Validate(); err != nil {
				return usageError(err)
			}

			s, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return err
			}

			keys := s.resolver.Keys().Keys()
			if all {
				keys = appendMissing(keys, s.files.Keys())
			}

			report := propsReport{Files: s.files.Files()}
			if report.Files == nil {
				report.Files = []string{}
			}
			for _, key := range keys {
				if hwmodule.IsDefault(key) {
					continue
				}
				value, ok, lerr := s.props.Property(key)
				pr := propertyReport{Key: key, Value: value, Set: ok && value != ""}
				if lerr != nil {
					pr.Error = lerr.Error()
				}
				report.Properties = append(report.Properties, pr)
			}

			if format != outputText {
				return writeStructured(app.stdout, format, report)
			}
			writePropsText(app.stdout, report)
			return nil
		},
	}
	propsCmd.Flags().StringVarP(&output, "output", "o", string(outputText), outputFlagUsage())
	propsCmd.Flags().BoolVarP(&all, "all", "a", false, "also list every property read from files")

	return propsCmd
}

func appendMissing(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, k := range dst {
		seen[k] = struct{}{}
	}
	for _, k := range src {
		if _, ok := seen[k]; !ok {
			dst = append(dst, k)
			seen[k] = struct{}{}
		}
	}
	return dst
}

func writePropsText(w io.Writer, r propsReport) {
	fmt.Fprintln(w, TitleStyle.Render("Property files"))
	if len(r.Files) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none found)"))
	}
	for _, f := range r.Files {
		fmt.Fprintf(w, "  - %s\n", f)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Properties"))
	for _, p := range r.Properties {
		switch {
		case p.Error != "":
			fmt.Fprintf(w, "  %s: %s\n", KeyStyle.Render(p.Key), WarningStyle.Render("lookup failed: "+p.Error))
		case !p.Set:
			fmt.Fprintf(w, "  %s: %s\n", KeyStyle.Render(p.Key), SubtitleStyle.Render("(unset)"))
		default:
			fmt.Fprintf(w, "  %s: %s\n", KeyStyle.Render(p.Key), SuccessStyle.Render(p.Value))
		}
	}
}

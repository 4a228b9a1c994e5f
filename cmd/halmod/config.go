// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halmod/halmod/internal/config"
	"github.com/halmod/halmod/internal/issue"
)

// newConfigCommand creates the `halmod config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage halmod configuration",
		Long: `Manage halmod configuration.

Configuration is stored in:
  - Linux: ~/.config/halmod/config.cue
  - macOS: ~/Library/Application Support/halmod/config.cue
  - Windows: %APPDATA%\halmod\config.cue

HALMOD_LIBRARY_ROOT, HALMOD_MODULE_EXTENSION, HALMOD_LINKER, HALMOD_LOG_LEVEL
and HALMOD_LOG_FORMAT override the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), flags)
			if err != nil {
				return err
			}
			cfgPath, _ := config.Locate(config.LoadOptions{ConfigFilePath: flags.configPath})
			showConfig(app.stdout, cfg, cfgPath)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), flags)
			if err != nil {
				return err
			}
			_, err = io.WriteString(app.stdout, config.GenerateCUE(cfg))
			return err
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig()
			if err != nil {
				return issue.WrapWithOperation(err, "create config")
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return issue.WrapWithOperation(err, "locate config directory")
			}
			cfgPath, err := config.ConfigPath()
			if err != nil {
				return issue.WrapWithOperation(err, "locate config file")
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
			fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, cfgPath string) {
	keyStyle := KeyStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if cfgPath != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("library_root"), valueStyle.Render(cfg.LibraryRoot))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("module_extension"), valueStyle.Render(cfg.ModuleExtension))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("linker"), valueStyle.Render(cfg.Linker.String()))

	keys := "(default only)"
	if len(cfg.VariantKeys) > 0 {
		keys = strings.Join(cfg.VariantKeys, ", ")
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("variant_keys"), valueStyle.Render(keys))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("property_files"))
	if len(cfg.PropertyFiles) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, f := range cfg.PropertyFiles {
		fmt.Fprintf(w, "  - %s\n", valueStyle.Render(f))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("properties"))
	if len(cfg.Properties) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	names := make([]string, 0, len(cfg.Properties))
	for k := range cfg.Properties {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(w, "  %s = %s\n", k, valueStyle.Render(cfg.Properties[k]))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(w, "  level: %s\n", valueStyle.Render(cfg.Log.Level.String()))
	fmt.Fprintf(w, "  format: %s\n", valueStyle.Render(cfg.Log.Format.String()))
}

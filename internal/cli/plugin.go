package cli

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/huekit/internal/plugin/manager"
	"github.com/jmylchreest/huekit/internal/security"
)

var (
	// Plugin run flags
	pluginPalette   string
	pluginArgs      map[string]string
	pluginOutputDir string
	pluginDryRun    bool
)

func newPluginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plugin",
		Aliases: []string{"plugins"},
		Short:   "List and run palette exporters",
		Long: `Exporters turn a palette into files. Every built-in export format is an
exporter; external exporter plugins are added in the config file:

  plugins:
    exporters:
      gpl: ~/.local/bin/huekit-gpl

External plugins speak either the go-plugin RPC protocol or accept palette
JSON on stdin, selected by their --plugin-info reply.`,
	}

	runCmd := &cobra.Command{
		Use:   "run <name>",
		Short: "Run an exporter and write its files",
		Long: `Run an exporter on a palette and write the files it returns into the output
directory. With --dry-run the files are printed instead.

Examples:
  huekit plugin run scss --palette sunset-vibes --output-dir ./styles
  huekit plugin run gpl --palette palette.json --arg columns=5 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runPluginRun,
	}
	runCmd.Flags().StringVarP(&pluginPalette, "palette", "p", "", "palette to export (premade id, JSON file or -)")
	runCmd.Flags().StringToStringVar(&pluginArgs, "arg", nil, "plugin argument as key=value (repeatable)")
	runCmd.Flags().StringVarP(&pluginOutputDir, "output-dir", "o", ".", "directory files are written to")
	runCmd.Flags().BoolVar(&pluginDryRun, "dry-run", false, "print files instead of writing them")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List available exporters",
			Args:  cobra.NoArgs,
			RunE:  runPluginList,
		},
		&cobra.Command{
			Use:   "info <name>",
			Short: "Show an exporter's metadata and arguments",
			Args:  cobra.ExactArgs(1),
			RunE:  runPluginInfo,
		},
		runCmd,
	)
	return cmd
}

func newManager(a *app) (*manager.Manager, error) {
	return manager.New(manager.Config{
		Exporters: a.cfg.Plugins.Exporters,
		Logger:    a.logger,
	})
}

func runPluginList(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	m, err := newManager(a)
	if err != nil {
		return err
	}
	defer m.Close()

	entries := m.List()
	if globalJSON {
		return a.writeJSON(entries)
	}

	t := NewTable("NAME", "SOURCE", "DESCRIPTION")
	t.SetColumnMaxWidth(2, 60)
	for _, e := range entries {
		desc := e.Description
		if e.Source == manager.SourceExternal {
			desc = e.Path
		}
		t.AddRow(e.Name, string(e.Source), desc)
	}
	return t.Write(a.out)
}

func runPluginInfo(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	m, err := newManager(a)
	if err != nil {
		return err
	}
	defer m.Close()

	info, flags, err := m.Info(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if globalJSON {
		return a.writeJSON(map[string]any{"info": info, "flags": flags})
	}

	fmt.Fprintf(a.out, "%s %s\n", info.Name, info.Version)
	if info.Description != "" {
		fmt.Fprintln(a.out, info.Description)
	}
	if len(flags) == 0 {
		return nil
	}
	fmt.Fprintln(a.out)
	t := NewTable("ARG", "TYPE", "DEFAULT", "REQUIRED", "DESCRIPTION")
	for _, f := range flags {
		t.AddRow(f.Name, f.Type, f.Default, strconv.FormatBool(f.Required), f.Description)
	}
	return t.Write(a.out)
}

func runPluginRun(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	p, err := resolvePalette(cmd, pluginPalette)
	if err != nil {
		return err
	}
	m, err := newManager(a)
	if err != nil {
		return err
	}
	defer m.Close()

	pluginArgsAny := make(map[string]any, len(pluginArgs))
	for k, v := range pluginArgs {
		pluginArgsAny[k] = v
	}

	files, err := m.Run(cmd.Context(), args[0], p, pluginArgsAny)
	if err != nil {
		return err
	}

	names := slices.Sorted(maps.Keys(files))
	if pluginDryRun {
		for _, name := range names {
			fmt.Fprintf(a.out, "==> %s <==\n%s", name, files[name])
		}
		return nil
	}

	dir, err := homedir.Expand(pluginOutputDir)
	if err != nil {
		return fmt.Errorf("failed to expand %s: %w", pluginOutputDir, err)
	}
	for _, name := range names {
		// Plugins name files; they never choose the directory.
		path, err := security.ValidateFilePath(name, dir)
		if err != nil {
			return fmt.Errorf("exporter %s: %w", args[0], err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if _, err := writeFile(path, files[name]); err != nil {
			return err
		}
		a.printf("Wrote %s\n", path)
	}
	return nil
}

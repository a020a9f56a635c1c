// gpl - huekit exporter plugin writing GIMP/Inkscape palettes
//
// A go-plugin exporter: huekit starts the binary once and calls Export
// over RPC for each palette.
//
// Build:
//   go build -o huekit-gpl ./contrib/plugins/exporter/gpl
//
// Usage (config.yaml):
//   plugins:
//     exporters:
//       gpl: ~/.local/bin/huekit-gpl
//
//   huekit plugin run gpl --palette sunset-vibes --arg columns=5

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	huekitplugin "github.com/jmylchreest/huekit/pkg/plugin"
)

const defaultColumns = 5

// GPLExporter renders a palette as a GIMP .gpl file.
type GPLExporter struct{}

func (GPLExporter) Export(_ context.Context, p huekitplugin.PaletteData) (map[string][]byte, error) {
	columns, err := intArg(p.PluginArgs, "columns", defaultColumns)
	if err != nil {
		return nil, err
	}
	if columns < 1 {
		return nil, fmt.Errorf("columns must be positive, got %d", columns)
	}

	name := p.Name
	if v, ok := p.PluginArgs["name"].(string); ok && v != "" {
		name = v
	}

	var b strings.Builder
	b.WriteString("GIMP Palette\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Columns: %d\n", columns)
	b.WriteString("#\n")
	for _, c := range p.Colours {
		label := c.Name
		if c.Role != "" {
			label += " (" + c.Role + ")"
		}
		fmt.Fprintf(&b, "%3d %3d %3d\t%s\n", c.RGB.R, c.RGB.G, c.RGB.B, label)
	}

	file := strcase.ToKebab(p.Name)
	if file == "" {
		file = "palette"
	}
	return map[string][]byte{file + ".gpl": []byte(b.String())}, nil
}

func (GPLExporter) GetMetadata() huekitplugin.PluginInfo {
	return huekitplugin.PluginInfo{
		Name:            "gpl",
		Version:         "0.1.0",
		ProtocolVersion: huekitplugin.ProtocolVersion,
		Description:     "GIMP/Inkscape palette (.gpl)",
		PluginProtocol:  string(huekitplugin.PluginTypeGoPlugin),
	}
}

func (GPLExporter) GetFlagHelp() []huekitplugin.FlagHelp {
	return []huekitplugin.FlagHelp{
		{Name: "columns", Type: "int", Default: strconv.Itoa(defaultColumns), Description: "swatch columns shown by the editor"},
		{Name: "name", Type: "string", Description: "palette name written to the file (defaults to the palette's name)"},
	}
}

// intArg reads an integer plugin argument. Arguments from the CLI arrive
// as strings; JSON callers may send numbers.
func intArg(args map[string]any, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%s: unsupported type %T", key, v)
	}
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == huekitplugin.InfoFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(GPLExporter{}.GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		return
	}
	huekitplugin.Serve(GPLExporter{})
}

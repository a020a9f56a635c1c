package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/palette"
)

const (
	swatchWidth    = 8
	minPreviewCell = 8
	maxPreviewCell = 16
)

// StdinRef selects standard input wherever a palette reference is accepted.
const StdinRef = "-"

var errNoPalette = errors.New("a palette is required: pass a premade id, a JSON file or - for stdin")

// colourful reports whether swatches are worth drawing.
func (a *app) colourful() bool {
	return a.profile != termenv.Ascii
}

// writePalette prints a palette as a table of its colours and roles.
func (a *app) writePalette(p palette.Palette) error {
	fmt.Fprintf(a.out, "%s  (%s)\n", p.Name, p.Category)

	headers := []string{"HEX", "NAME", "ROLE"}
	if a.colourful() {
		headers = append([]string{""}, headers...)
	}
	t := NewTable(headers...)
	for i, c := range p.Colors {
		role, _ := palette.RoleAt(i)
		row := []string{c.Hex, c.Name, string(role)}
		if a.colourful() {
			row = append([]string{colour.Swatch(c.Hex, swatchWidth, a.profile)}, row...)
		}
		t.AddRow(row...)
	}
	if err := t.Write(a.out); err != nil {
		return err
	}

	if globalPreview {
		a.writePreview(p)
	}
	return nil
}

// writePreview draws the palette as a strip of labelled role swatches.
func (a *app) writePreview(p palette.Palette) {
	cell := maxPreviewCell
	if a.width > 0 && len(p.Colors) > 0 {
		cell = min(max(a.width/len(p.Colors), minPreviewCell), maxPreviewCell)
	}

	var b strings.Builder
	for i, c := range p.Colors {
		label := c.Name
		if role, ok := palette.RoleAt(i); ok {
			label = string(role)
		}
		b.WriteString(colour.SwatchWithText(c.Hex, label, cell, a.profile))
	}
	fmt.Fprintf(a.out, "\n%s\n", b.String())
}

// writeColours prints loose colours, such as extraction results.
func (a *app) writeColours(colors []colour.Color) error {
	for _, c := range colors {
		if _, err := fmt.Fprintln(a.out, colour.FormatColour(c, a.profile)); err != nil {
			return err
		}
	}
	return nil
}

// resolvePalette reads a palette from stdin ("-"), a premade id or a JSON
// file. A JSON array is accepted when it holds exactly one palette, so
// `huekit generate --json` can be piped in.
func resolvePalette(cmd *cobra.Command, ref string) (palette.Palette, error) {
	if ref == "" {
		return palette.Palette{}, errNoPalette
	}
	if p, ok := palette.PremadeByID(ref); ok {
		return p, nil
	}

	var data []byte
	var err error
	if ref == StdinRef {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		var path string
		if path, err = homedir.Expand(ref); err == nil {
			data, err = os.ReadFile(path)
		}
	}
	if err != nil {
		return palette.Palette{}, fmt.Errorf("failed to read palette %s: %w", ref, err)
	}
	return decodePalette(data)
}

func decodePalette(data []byte) (palette.Palette, error) {
	var p palette.Palette
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []palette.Palette
		if err := json.Unmarshal(data, &list); err != nil {
			return p, fmt.Errorf("failed to parse palette JSON: %w", err)
		}
		if len(list) != 1 {
			return p, fmt.Errorf("expected one palette, got %d", len(list))
		}
		p = list[0]
	} else if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse palette JSON: %w", err)
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// writeFile writes content to path after expanding ~.
func writeFile(path string, content []byte) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	if err := os.WriteFile(expanded, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", expanded, err)
	}
	return expanded, nil
}

// Package export renders palettes as code snippets for stylesheets,
// build configs and native apps.
package export

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/palette"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// ErrUnknownFormat is returned for unrecognised format names.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export target.
type Format string

const (
	FormatCSS      Format = "css"
	FormatSCSS     Format = "scss"
	FormatTailwind Format = "tailwind"
	FormatJSON     Format = "json"
	FormatSwift    Format = "swift"
	FormatHex      Format = "hex"
)

// FormatInfo describes a format for pickers and file output.
type FormatInfo struct {
	Format    Format `json:"id"`
	Name      string `json:"name"`
	Extension string `json:"extension"`
}

var formats = []FormatInfo{
	{FormatCSS, "CSS Variables", ".css"},
	{FormatSCSS, "SCSS Variables", ".scss"},
	{FormatTailwind, "Tailwind Config", ".js"},
	{FormatJSON, "JSON", ".json"},
	{FormatSwift, "Swift/iOS", ".swift"},
	{FormatHex, "HEX List", ".txt"},
}

// Formats lists the built-in formats in display order.
func Formats() []FormatInfo {
	return append([]FormatInfo(nil), formats...)
}

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f.Format) == s {
			return f.Format, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Info returns the metadata for f.
func (f Format) Info() (FormatInfo, bool) {
	for _, info := range formats {
		if info.Format == f {
			return info, true
		}
	}
	return FormatInfo{}, false
}

// SafeName turns a palette name into an identifier: "Sunset Vibes"
// becomes "sunset-vibes".
func SafeName(name string) string {
	return strcase.ToKebab(strings.TrimSpace(name))
}

type row struct {
	Index     int
	Weight    int
	Hex       string
	Name      string
	Last      bool
	SwiftName string
	Red       string
	Green     string
	Blue      string
}

type view struct {
	Name        string
	Safe        string
	SwiftPrefix string
	Colors      []row
}

func newView(p palette.Palette) view {
	safe := SafeName(p.Name)
	v := view{
		Name:        p.Name,
		Safe:        safe,
		SwiftPrefix: strings.ReplaceAll(safe, "-", ""),
		Colors:      make([]row, len(p.Colors)),
	}
	for i, c := range p.Colors {
		rgb := colour.HexToRGB(c.Hex)
		v.Colors[i] = row{
			Index:     i + 1,
			Weight:    (i + 1) * 100,
			Hex:       c.Hex,
			Name:      c.Name,
			Last:      i == len(p.Colors)-1,
			SwiftName: strcase.ToCamel(strings.Join(strings.Fields(c.Name), " ")),
			Red:       unit(rgb.R),
			Green:     unit(rgb.G),
			Blue:      unit(rgb.B),
		}
	}
	return v
}

func unit(c uint8) string {
	return fmt.Sprintf("%.3f", float64(c)/255)
}

type jsonColour struct {
	Name     string `json:"name"`
	Hex      string `json:"hex"`
	Position int    `json:"position"`
}

type jsonPalette struct {
	Name   string       `json:"name"`
	Colors []jsonColour `json:"colors"`
}

func renderJSON(p palette.Palette) (string, error) {
	out := jsonPalette{Name: p.Name, Colors: make([]jsonColour, len(p.Colors))}
	for i, c := range p.Colors {
		out.Colors[i] = jsonColour{Name: c.Name, Hex: c.Hex, Position: i + 1}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return "", fmt.Errorf("failed to encode palette: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Render produces the snippet for p in format f. The result has no
// trailing newline.
func Render(p palette.Palette, f Format) (string, error) {
	if f == FormatJSON {
		return renderJSON(p)
	}
	if _, ok := f.Info(); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, string(f)+".tmpl", newView(p)); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", f, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

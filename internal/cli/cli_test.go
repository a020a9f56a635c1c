package cli_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/huekit/internal/cli"
	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/palette"
	"github.com/jmylchreest/huekit/internal/plugin/manager"
	"github.com/jmylchreest/huekit/internal/version"
)

const sunsetHex = "#FF6B6B\n#FEC89A\n#FFD93D\n#6BCB77\n#4D96FF\n"

// run executes the CLI with args in an isolated config and cache home and
// returns what it wrote to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	root := cli.NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, stdin, args...)
	if err != nil {
		t.Fatalf("huekit %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", out, err)
	}
	return v
}

func writeStripes(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 10 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	path := filepath.Join(t.TempDir(), "stripes.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

func TestVersion(t *testing.T) {
	info := decode[version.Info](t, mustRun(t, "", "version", "--json"))
	if info.Version != version.Version || info.GoVersion == "" {
		t.Errorf("version --json = %+v", info)
	}

	if out := mustRun(t, "", "version"); !strings.HasPrefix(out, "huekit ") {
		t.Errorf("version = %q", out)
	}
}

func TestGenerate(t *testing.T) {
	out := mustRun(t, "", "generate", "pastel", "--seed", "7", "--json")
	p := decode[palette.Palette](t, out)
	if p.Category != palette.Pastel {
		t.Errorf("category = %s, want pastel", p.Category)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("generated palette invalid: %v", err)
	}

	if again := mustRun(t, "", "generate", "pastel", "--seed", "7", "--json"); again != out {
		t.Error("the same seed produced different palettes")
	}

	many := decode[[]palette.Palette](t, mustRun(t, "", "generate", "vibrant", "-n", "3", "--seed", "1", "--json"))
	if len(many) != 3 {
		t.Errorf("generate -n 3 returned %d palettes", len(many))
	}

	text := mustRun(t, "", "generate", "nature", "--seed", "3")
	for _, want := range []string{"(nature)", "HEX", "primary", "light"} {
		if !strings.Contains(text, want) {
			t.Errorf("generate text output missing %q:\n%s", want, text)
		}
	}
}

func TestGenerateRandomUseCase(t *testing.T) {
	p := decode[palette.Palette](t, mustRun(t, "", "generate", "--seed", "11", "--json"))
	if p.Category == palette.UseCaseUnknown {
		t.Error("generate without a use case produced an unknown category")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown use case", []string{"generate", "brutalist"}},
		{"zero count", []string{"generate", "pastel", "-n", "0"}},
		{"lock out of range", []string{"generate", "--from", "sunset-vibes", "--lock", "7"}},
		{"use case with from", []string{"generate", "pastel", "--from", "sunset-vibes"}},
		{"missing file", []string{"generate", "--from", "/nonexistent/palette.json"}},
		{"bad seed mode", []string{"generate", "--seed-mode", "sometimes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, "", tt.args...); err == nil {
				t.Errorf("huekit %v succeeded, want error", tt.args)
			}
		})
	}
}

func TestRegenerate(t *testing.T) {
	p := decode[palette.Palette](t, mustRun(t, "", "generate", "--from", "sunset-vibes", "--lock", "0,4", "--seed", "2", "--json"))
	if p.ID != "sunset-vibes" {
		t.Errorf("ID = %q, want sunset-vibes", p.ID)
	}
	if p.Colors[0].Hex != "#FF6B6B" || p.Colors[4].Hex != "#4D96FF" {
		t.Errorf("locked colours changed: %v", p.Hex())
	}

	// A generated palette piped back in keeps its locked colour.
	first := mustRun(t, "", "generate", "minimal", "--seed", "5", "--json")
	prev := decode[palette.Palette](t, first)
	next := decode[palette.Palette](t, mustRun(t, first, "generate", "--from", "-", "--lock", "2", "--json"))
	if next.ID != prev.ID || next.Colors[2] != prev.Colors[2] {
		t.Errorf("regenerate from stdin = %+v, want colour 2 and id kept from %+v", next, prev)
	}
}

type harmonyResult struct {
	Base   int      `json:"base"`
	Scheme string   `json:"scheme"`
	Hues   []int    `json:"hues"`
	Colors []string `json:"colors"`
}

func TestHarmony(t *testing.T) {
	res := decode[harmonyResult](t, mustRun(t, "", "harmony", "--base", "200", "--count", "3", "--scheme", "triadic", "--json"))

	if res.Base != 200 || res.Scheme != "triadic" {
		t.Errorf("harmony header = %+v", res)
	}
	want := []int{200, 320, 80}
	for i, h := range want {
		if i >= len(res.Hues) || res.Hues[i] != h {
			t.Fatalf("hues = %v, want %v", res.Hues, want)
		}
	}
	if len(res.Colors) != 3 || !strings.HasPrefix(res.Colors[0], "#") {
		t.Errorf("colors = %v", res.Colors)
	}

	for _, args := range [][]string{
		{"harmony", "--scheme", "tetradic"},
		{"harmony", "--base", "400"},
		{"harmony", "--count", "0"},
	} {
		if _, err := run(t, "", args...); err == nil {
			t.Errorf("huekit %v succeeded, want error", args)
		}
	}
}

func TestGradient(t *testing.T) {
	var g struct {
		Type  string `json:"type"`
		Stops []struct {
			Color string `json:"color"`
		} `json:"stops"`
		CSS string `json:"css"`
	}

	out := mustRun(t, "", "gradient", "--from-palette", "sunset-vibes", "--json")
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatalf("failed to decode gradient: %v", err)
	}
	if len(g.Stops) != 4 || !strings.HasPrefix(g.CSS, "linear-gradient(to right, #FF6B6B 0%") {
		t.Errorf("from-palette gradient = %+v", g)
	}

	out = mustRun(t, "", "gradient", "--type", "radial", "--seed", "4", "--json")
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatalf("failed to decode gradient: %v", err)
	}
	if g.Type != "radial" || len(g.Stops) != 3 || !strings.HasPrefix(g.CSS, "radial-gradient(circle, ") {
		t.Errorf("random radial gradient = %+v", g)
	}

	text := mustRun(t, "", "gradient", "--from-palette", "sunset-vibes", "--direction", "to bottom")
	if !strings.Contains(text, "background: linear-gradient(to bottom, ") {
		t.Errorf("gradient text output = %q", text)
	}

	if _, err := run(t, "", "gradient", "--type", "diamond"); err == nil {
		t.Error("gradient --type diamond succeeded")
	}
}

func TestContrast(t *testing.T) {
	report := decode[colour.ContrastReport](t, mustRun(t, "", "contrast", "000000", "#FFFFFF", "--json"))
	if report.Foreground != "#000000" || report.Background != "#ffffff" {
		t.Errorf("report colours = %s on %s", report.Foreground, report.Background)
	}
	if report.Level != colour.LevelAAA || !report.Rating.AAALarge {
		t.Errorf("report = %+v, want AAA", report)
	}

	swapped := decode[colour.ContrastReport](t, mustRun(t, "", "contrast", "000000", "ffffff", "--swap", "--json"))
	if swapped.Foreground != "#ffffff" || swapped.Ratio != report.Ratio {
		t.Errorf("swapped report = %+v", swapped)
	}

	text := mustRun(t, "", "contrast", "#777777", "#ffffff")
	if !strings.Contains(text, "4.48:1  Fail") || !strings.Contains(text, "pass") {
		t.Errorf("contrast text output =\n%s", text)
	}

	if _, err := run(t, "", "contrast", "red", "white"); err == nil {
		t.Error("contrast accepted colour names")
	}
}

func TestExport(t *testing.T) {
	if out := mustRun(t, "", "export", "--palette", "sunset-vibes", "--format", "hex"); out != sunsetHex {
		t.Errorf("export hex = %q, want %q", out, sunsetHex)
	}

	css := mustRun(t, "", "export", "-p", "sunset-vibes")
	if !strings.HasPrefix(css, ":root {") {
		t.Errorf("default export = %q, want CSS", css)
	}

	piped := mustRun(t, "", "generate", "fashion", "--seed", "9", "--json")
	out := mustRun(t, piped, "export", "--palette", "-", "--format", "json")
	if !json.Valid([]byte(out)) {
		t.Errorf("export json from stdin is not JSON: %q", out)
	}

	path := filepath.Join(t.TempDir(), "palette.scss")
	mustRun(t, "", "export", "-p", "sunset-vibes", "-f", "scss", "-o", path, "--quiet")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export -o did not write a file: %v", err)
	}
	if !strings.HasPrefix(string(data), "// Sunset Vibes") || !strings.Contains(string(data), "$sunset-vibes-") {
		t.Errorf("scss export = %q", data)
	}
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{name: "no palette", args: []string{"export"}},
		{name: "unknown format", args: []string{"export", "-p", "sunset-vibes", "-f", "pdf"}},
		{name: "missing file", args: []string{"export", "-p", "/nonexistent.json"}},
		{name: "bad json", stdin: "{", args: []string{"export", "-p", "-"}},
		{name: "short palette", stdin: `{"colors":[{"hex":"#000000"}]}`, args: []string{"export", "-p", "-"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.stdin, tt.args...); err == nil {
				t.Errorf("huekit %v succeeded, want error", tt.args)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huekit.yaml")
	if err := os.WriteFile(path, []byte("export:\n  format: hex\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if out := mustRun(t, "", "export", "-p", "sunset-vibes", "--config", path); out != sunsetHex {
		t.Errorf("export with config format hex = %q", out)
	}
	// Flags beat the file.
	if out := mustRun(t, "", "export", "-p", "sunset-vibes", "--config", path, "-f", "css"); !strings.HasPrefix(out, ":root {") {
		t.Errorf("export -f css with config = %q", out)
	}

	if _, err := run(t, "", "export", "-p", "sunset-vibes", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("a missing explicit config file was ignored")
	}
}

func TestExplore(t *testing.T) {
	curated := decode[[]palette.Palette](t, mustRun(t, "", "explore", "curated", "--json"))
	if len(curated) != len(palette.Premade()) {
		t.Errorf("explore curated returned %d palettes", len(curated))
	}

	nature := decode[[]palette.Palette](t, mustRun(t, "", "explore", "nature", "--seed", "1", "--json"))
	if len(nature) == 0 {
		t.Fatal("explore nature returned nothing")
	}
	for _, p := range nature {
		if p.Category != palette.Nature {
			t.Errorf("explore nature returned %s palette %q", p.Category, p.Name)
		}
	}

	text := mustRun(t, "", "explore", "curated")
	if !strings.Contains(text, "Sunset Vibes") || !strings.Contains(text, "#FF6B6B #FEC89A") {
		t.Errorf("explore text output =\n%s", text)
	}

	if _, err := run(t, "", "explore", "everything"); err == nil {
		t.Error("explore accepted an unknown filter")
	}
}

type extractResult struct {
	Colors  []colour.Color   `json:"colors"`
	Palette *palette.Palette `json:"palette"`
}

func TestExtract(t *testing.T) {
	img := writeStripes(t)

	res := decode[extractResult](t, mustRun(t, "", "extract", img, "--colours", "2", "--json"))
	if len(res.Colors) != 2 || res.Palette != nil {
		t.Fatalf("extract --colours 2 = %+v", res)
	}
	hexes := res.Colors[0].Hex + " " + res.Colors[1].Hex
	if !strings.Contains(hexes, "#ff0000") || !strings.Contains(hexes, "#0000ff") {
		t.Errorf("extracted %s, want red and blue", hexes)
	}

	res = decode[extractResult](t, mustRun(t, "", "extract", img, "--seed", "3", "--algorithm", "kmeans", "--json"))
	if len(res.Colors) != palette.Size || res.Palette == nil || res.Palette.Name != "Extracted Palette" {
		t.Errorf("extract default = %+v, want five colours and a palette", res)
	}

	bad := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "extract", bad); err == nil || !strings.Contains(err.Error(), "no colours extracted") {
		t.Errorf("extract of a non-image error = %v", err)
	}

	if _, err := run(t, "", "extract", img, "--colours", "0"); err == nil {
		t.Error("extract --colours 0 succeeded")
	}
}

func TestPlugins(t *testing.T) {
	entries := decode[[]manager.Entry](t, mustRun(t, "", "plugin", "list", "--json"))
	if len(entries) != 6 {
		t.Errorf("plugin list returned %d exporters, want the 6 built-ins", len(entries))
	}

	dir := filepath.Join(t.TempDir(), "out")
	mustRun(t, "", "plugin", "run", "hex", "--palette", "sunset-vibes", "--output-dir", dir, "-q")
	data, err := os.ReadFile(filepath.Join(dir, "sunset-vibes.txt"))
	if err != nil {
		t.Fatalf("plugin run did not write its file: %v", err)
	}
	if string(data) != sunsetHex {
		t.Errorf("plugin run hex wrote %q", data)
	}

	dry := mustRun(t, "", "plugin", "run", "hex", "-p", "sunset-vibes", "--dry-run")
	if !strings.HasPrefix(dry, "==> sunset-vibes.txt <==\n#FF6B6B") {
		t.Errorf("plugin run --dry-run = %q", dry)
	}

	info := mustRun(t, "", "plugin", "info", "swift")
	if !strings.Contains(info, "Swift/iOS") {
		t.Errorf("plugin info swift = %q", info)
	}

	if _, err := run(t, "", "plugin", "run", "pdf", "-p", "sunset-vibes"); err == nil {
		t.Error("plugin run pdf succeeded")
	}
}

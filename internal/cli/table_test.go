package cli

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable("Name", "Age")

	table.AddRow("Alice", "30")
	table.AddRow("Bob")
	table.AddRow("Charlie", "25", "Extra")

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	for i, row := range table.rows {
		if len(row) != 2 {
			t.Errorf("row %d has %d cells, want 2", i, len(row))
		}
	}
	if table.rows[1][1] != "" {
		t.Errorf("padded cell = %q, want empty", table.rows[1][1])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable("ID", "NAME")
	table.AddRow("sunset-vibes", "Sunset Vibes")
	table.AddRow("a", "b")

	want := "ID            NAME\n" +
		"------------  ------------\n" +
		"sunset-vibes  Sunset Vibes\n" +
		"a             b\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("Render() with no headers = %q, want empty", got)
	}

	got := NewTable("Column1", "Column2").Render()
	if lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n"); len(lines) != 2 {
		t.Errorf("Render() with no rows gave %d lines, want header and separator", len(lines))
	}
}

func TestTableIgnoresANSIWidth(t *testing.T) {
	swatch := termenv.TrueColor.String("    ").Background(termenv.TrueColor.Color("#ff0000")).String()
	if swatch == "    " {
		t.Fatal("expected an escaped swatch")
	}

	table := NewTable("SWATCH", "HEX")
	table.AddRow(swatch, "#ff0000")
	table.AddRow("", "#00ff00")

	lines := strings.Split(table.Render(), "\n")
	col := strings.Index(lines[0], "HEX")
	plain := ansiPattern.ReplaceAllString(lines[2], "")
	if strings.Index(plain, "#ff0000") != col {
		t.Errorf("coloured row misaligned: %q", plain)
	}
	if strings.Index(lines[3], "#00ff00") != col {
		t.Errorf("plain row misaligned: %q", lines[3])
	}
}

func TestTableWrapsColumns(t *testing.T) {
	table := NewTable("NAME", "DESCRIPTION")
	table.SetColumnMaxWidth(1, 10)
	table.AddRow("hex", "one colour per line")

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Render() gave %d lines, want 4: %q", len(lines), lines)
	}
	if !strings.HasSuffix(lines[2], "one colour") || !strings.HasSuffix(lines[3], "per line") {
		t.Errorf("wrapped lines = %q", lines[2:])
	}
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"abc", 3},
		{"→ →", 3},
		{"\x1b[48;2;255;0;0m  \x1b[0m", 2},
	}
	for _, tt := range tests {
		if got := visibleWidth(tt.input); got != tt.want {
			t.Errorf("visibleWidth(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{"\x1b[1mx\x1b[0m", 3, "\x1b[1mx\x1b[0m  "},
	}
	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "fits", text: "short", width: 10, want: []string{"short"}},
		{name: "words", text: "alpha beta gamma", width: 10, want: []string{"alpha beta", "gamma"}},
		{name: "long word", text: "abcdefghijkl", width: 5, want: []string{"abcde", "fghij", "kl"}},
		{name: "no limit", text: "alpha beta", width: 0, want: []string{"alpha beta"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

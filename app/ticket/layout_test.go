package ticket

import (
	"strings"
	"testing"
)

func TestPad(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter", "abc", 5, "abc  "},
		{"exact", "abcde", 5, "abcde"},
		{"longer truncates", "abcdefg", 5, "abcde"},
		{"empty", "", 3, "   "},
		{"accented runes", "ñó", 4, "ñó  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pad(tt.in, tt.n); got != tt.want {
				t.Errorf("Pad(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	for _, width := range []int{Cols, 32} {
		got := Center("HOLA", width)
		if len([]rune(got)) != width {
			t.Fatalf("Center returned %d chars, want %d", len([]rune(got)), width)
		}
		if !strings.Contains(got, "HOLA") {
			t.Errorf("Center lost the content: %q", got)
		}
		if strings.TrimSpace(got) != "HOLA" {
			t.Errorf("Center added non-space padding: %q", got)
		}

		long := strings.Repeat("x", width+10)
		if got := Center(long, width); len(got) != width {
			t.Errorf("Center of over-long string returned %d chars, want %d", len(got), width)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty input yields one empty line", "", 10, []string{""}},
		{"single token", "hola", 10, []string{"hola"}},
		{"greedy packing", "uno dos tres", 8, []string{"uno dos", "tres"}},
		{"exact fit", "ab cd", 5, []string{"ab cd"}},
		{"long token hard split", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"whitespace only", "   ", 5, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWrapLineWidthInvariant(t *testing.T) {
	text := "Bandeja paisa con chicharrón extra crocante y arepa de chócolo para compartir"
	for _, width := range []int{1, 5, 10, 42} {
		for _, line := range Wrap(text, width) {
			if len([]rune(line)) > width {
				t.Errorf("width %d: line %q exceeds width", width, line)
			}
		}
	}
}

func TestWrapLabelValue(t *testing.T) {
	lines := WrapLabelValue("Dirección", "Calle 45 # 23-10 apartamento 301 torre B conjunto Los Alpes", Cols)

	if !strings.HasPrefix(lines[0], "Dirección: ") {
		t.Fatalf("first line lacks prefix: %q", lines[0])
	}
	if len(lines) < 2 {
		t.Fatalf("expected wrapped continuation lines, got %q", lines)
	}

	indent := strings.Repeat(" ", len([]rune("Dirección: ")))
	for _, cont := range lines[1:] {
		if !strings.HasPrefix(cont, indent) {
			t.Errorf("continuation line not indented: %q", cont)
		}
	}
	for _, line := range lines {
		if len([]rune(line)) > Cols {
			t.Errorf("line exceeds %d cols: %q", Cols, line)
		}
	}
}

func TestTotalLine(t *testing.T) {
	got := TotalLine("TOTAL", 45000, Cols)

	if len([]rune(got)) != Cols {
		t.Fatalf("TotalLine length = %d, want %d: %q", len([]rune(got)), Cols, got)
	}
	if !strings.HasPrefix(got, "TOTAL") {
		t.Errorf("label not left-aligned: %q", got)
	}
	if !strings.HasSuffix(got, "$45.000") {
		t.Errorf("amount not right-aligned: %q", got)
	}
	if !strings.Contains(got, "TOTAL ") {
		t.Errorf("label and amount not separated by a space: %q", got)
	}

	narrow := TotalLine("TOTAL", 45000, 32)
	if len([]rune(narrow)) != 32 {
		t.Errorf("32-col TotalLine length = %d: %q", len([]rune(narrow)), narrow)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "$0"},
		{500, "$500"},
		{6000, "$6.000"},
		{45000, "$45.000"},
		{1250000, "$1.250.000"},
		{-4500, "-$4.500"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

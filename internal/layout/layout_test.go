package layout

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"words", "hello world foo", 5, []string{"hello", "world", "foo"}},
		{"fits", "hello world", 20, []string{"hello world"}},
		{"empty", "", 10, nil},
		{"blank", "   \t  ", 10, nil},
		{"leading whitespace dropped", "   hi there", 5, []string{"hi", "there"}},
		{"long word split", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"long word after short", "ab cdefgh", 4, []string{"ab", "cdef", "gh"}},
		{"newline collapsed", "a\n\nb", 10, []string{"a b"}},
		{"pure wide runes", "你好世界", 4, []string{"你好", "世界"}},
		{"mix wide and ascii", "你好 hello", 4, []string{"你好", "hell", "o"}},
		{"wide rune wider than line", "你好", 1, []string{Ellipsis, Ellipsis}},
		{"zero width", "abc", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Wrap(%q,%d)=%q want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrap_LinesNeverExceedWidth(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		s := randomText(rng, rng.IntN(120))
		w := 1 + rng.IntN(30)
		for _, line := range Wrap(s, w) {
			if got := Width(line); got > w {
				t.Fatalf("Wrap(%q,%d) produced %q of width %d", s, w, line, got)
			}
		}
	}
}

func TestWrap_PreservesWords(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	want := strings.Join(strings.Fields(text), "")
	for w := 1; w < 20; w++ {
		lines := Wrap(text, w)
		if got := strings.Join(strings.Fields(strings.Join(lines, "")), ""); got != want {
			t.Fatalf("width %d: text not preserved: %q", w, lines)
		}
	}
	// Words that fit are never split.
	for w := 5; w < 20; w++ {
		if got := strings.Join(Wrap(text, w), " "); got != text {
			t.Fatalf("width %d: words split: %q", w, got)
		}
	}
}

func TestTruncateOrPad(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"truncate", "abcdefgh", 5, "abcd…"},
		{"pad", "abc", 5, "abc  "},
		{"exact", "abcde", 5, "abcde"},
		{"width one", "abc", 1, "…"},
		{"wide gap padded", "你好世界", 4, "你… "},
		{"zero", "abc", 0, ""},
		{"control stripped", "a\tb", 4, "a b "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateOrPad(tt.text, tt.width)
			if got != tt.want {
				t.Fatalf("TruncateOrPad(%q,%d)=%q want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncateOrPad_ExactWidth(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 500; i++ {
		s := randomText(rng, rng.IntN(40))
		w := 1 + rng.IntN(25)
		if got := Width(TruncateOrPad(s, w)); got != w {
			t.Fatalf("TruncateOrPad(%q,%d) has width %d", s, w, got)
		}
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize("a\r\n\tb\x1b[31mc"); got != "a b[31mc" {
		t.Fatalf("Sanitize = %q", got)
	}
	if got := Sanitize("plain"); got != "plain" {
		t.Fatalf("Sanitize = %q", got)
	}
}

var alphabet = []string{
	"a", "b", "c", "x", "y", "z", " ", " ", " ", "\t", "\n",
	"你", "好", "界", "é", "é", "🙂", "-", ".", "http://x.io/",
}

func randomText(rng *rand.Rand, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(alphabet[rng.IntN(len(alphabet))])
	}
	return b.String()
}

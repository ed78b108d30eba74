package layout

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Wrap breaks text into lines of at most maxWidth cells.
//
// Break opportunities follow the Unicode line breaking rules. Whitespace at
// the start of a line and at a break is dropped, so the words come back in
// order with only the separating whitespace collapsed. A word wider than the
// line is split between grapheme clusters; a single cluster wider than the
// line is replaced by Ellipsis. Blank text or maxWidth < 1 yields nil.
func Wrap(text string, maxWidth int) []string {
	if maxWidth < 1 {
		return nil
	}
	w := wrapper{max: maxWidth}
	state := -1
	for rest := Sanitize(text); rest != ""; {
		var segment string
		segment, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		word := strings.TrimRightFunc(segment, unicode.IsSpace)
		if word != "" {
			w.word(word)
		}
		if space := segment[len(word):]; space != "" {
			w.space(space)
		}
	}
	if w.cur > 0 {
		w.flush()
	}
	return w.lines
}

type wrapper struct {
	max   int
	lines []string
	buf   strings.Builder
	cur   int
}

func (w *wrapper) flush() {
	line := strings.TrimRightFunc(w.buf.String(), unicode.IsSpace)
	if line != "" {
		w.lines = append(w.lines, line)
	}
	w.buf.Reset()
	w.cur = 0
}

func (w *wrapper) space(s string) {
	if w.cur == 0 {
		return
	}
	width := Width(s)
	if w.cur+width > w.max {
		w.flush()
		return
	}
	w.buf.WriteString(s)
	w.cur += width
}

func (w *wrapper) word(s string) {
	width := Width(s)
	if w.cur+width <= w.max {
		w.buf.WriteString(s)
		w.cur += width
		return
	}
	if w.cur > 0 {
		w.flush()
		if width <= w.max {
			w.buf.WriteString(s)
			w.cur = width
			return
		}
	}
	w.split(s)
}

// split hard-breaks a word between grapheme clusters.
func (w *wrapper) split(s string) {
	state := -1
	for rest := s; rest != ""; {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		cw := Width(cluster)
		if cw > w.max {
			cluster, cw = Ellipsis, 1
		}
		if w.cur+cw > w.max {
			w.flush()
		}
		w.buf.WriteString(cluster)
		w.cur += cw
	}
}

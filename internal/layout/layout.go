// Package layout measures and shapes text for a fixed-width terminal grid.
//
// Widths are display cells: wide East Asian characters count as two, combining
// marks as zero. Functions here are pure and safe for concurrent use.
package layout

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Ellipsis marks truncated or unrenderable text. It is one cell wide.
const Ellipsis = "…"

// Ambiguous-width runes (the ellipsis among them) are measured as narrow no
// matter what the locale says, so layout results do not depend on $LANG.
var cond = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Width returns the display width of s in cells.
func Width(s string) int {
	return cond.StringWidth(s)
}

// Sanitize makes s safe to print on one line: each run of control whitespace
// becomes a single space and other control characters are dropped.
func Sanitize(s string) string {
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		switch {
		case unicode.IsControl(r) && unicode.IsSpace(r):
			if !inRun {
				b.WriteByte(' ')
			}
			inRun = true
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
			inRun = false
		}
	}
	return b.String()
}

// TruncateOrPad fits a single-line label to exactly width cells. Text that
// is too wide keeps its leading grapheme clusters up to width-1 cells and gets
// an Ellipsis; a wide cluster that does not fit leaves a gap that is padded.
// Shorter text is right-padded with spaces. A width below 1 yields "".
func TruncateOrPad(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = Sanitize(text)
	w := Width(text)
	if w <= width {
		return text + strings.Repeat(" ", width-w)
	}

	var b strings.Builder
	used := 0
	state := -1
	for rest := text; rest != ""; {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		cw := Width(cluster)
		if used+cw > width-1 {
			break
		}
		b.WriteString(cluster)
		used += cw
	}
	b.WriteString(Ellipsis)
	used++
	return b.String() + strings.Repeat(" ", width-used)
}

package window

import (
	"slices"
	"strings"

	"livefeed/internal/feed"
	"livefeed/internal/layout"

	"github.com/charmbracelet/lipgloss"
)

var (
	timestampColor lipgloss.TerminalColor = lipgloss.Color("3")
	labelColor     lipgloss.TerminalColor = lipgloss.Color("11")
	statusColor    lipgloss.TerminalColor = lipgloss.Color("14")
)

const (
	clockWidth     = 8 // HH:MM:SS
	timestampWidth = clockWidth + 1
	labelWidth     = 4 // "[X] "
	linkIndent     = "  "
)

type span struct {
	text string
	fg   lipgloss.TerminalColor
}

type line []span

func authorColor(a feed.Author) lipgloss.TerminalColor {
	return lipgloss.Color(a.Color.Hex())
}

func (w *Window) contentRows() int {
	if w.width < 1 {
		return 0
	}
	return max(w.height-1, 0)
}

// frame lays out the active view, bottom entries winning, and returns at
// most contentRows lines.
func (w *Window) frame(labels bool) []line {
	rows := w.contentRows()
	if rows == 0 {
		return nil
	}
	if w.view == LinksView {
		return w.linkFrame(rows)
	}
	return w.messageFrame(rows, labels)
}

func (w *Window) messageFrame(rows int, labels bool) []line {
	// Every entry takes at least one line, so rows entries fill the screen.
	entries := slices.Collect(w.queue.Last(rows))
	blocks := make([][]line, len(entries))
	for i, e := range entries {
		blocks[i] = w.entryLines(e, "", labels)
	}
	if labels {
		w.labelled = w.assignLabels(entries, blocks, rows)
	}
	lines := slices.Concat(blocks...)
	return lines[max(len(lines)-rows, 0):]
}

// entryLines lays out one entry. With prefixed set every line gets a label
// column; label is shown in it when non-empty.
func (w *Window) entryLines(e feed.Entry, label string, prefixed bool) []line {
	var prefix []span
	if prefixed {
		if label == "" {
			prefix = []span{{strings.Repeat(" ", labelWidth), nil}}
		} else {
			prefix = []span{{"[" + label + "] ", labelColor}}
		}
	}
	if w.mode.IsCompact() {
		return w.compactLines(e, prefix)
	}
	return w.normalLines(e, prefix)
}

func (w *Window) normalLines(e feed.Entry, prefix []span) []line {
	head := slices.Clone(prefix)
	indent := spansWidth(prefix)
	if w.showTimestamps {
		head = append(head, span{e.Clock() + " ", timestampColor})
		indent += timestampWidth
	}
	head = append(head,
		span{layout.TruncateOrPad(e.Author.Name, w.nameWidth), authorColor(e.Author)},
		span{" ", nil},
	)
	indent += w.nameWidth + 1

	body := layout.Wrap(e.Text, max(w.width-indent, 1))
	if len(body) == 0 {
		return []line{head}
	}
	out := make([]line, 0, len(body))
	out = append(out, append(head, span{body[0], nil}))
	pad := strings.Repeat(" ", indent)
	for _, b := range body[1:] {
		out = append(out, line{{pad + b, nil}})
	}
	return out
}

func (w *Window) compactLines(e feed.Entry, prefix []span) []line {
	head := slices.Clone(prefix)
	pw := spansWidth(prefix)
	avail := max(w.width-pw, 1)

	name := layout.Sanitize(e.Author.Name)
	if w.showTimestamps && avail >= clockWidth+2 {
		head = append(head,
			span{layout.TruncateOrPad(name, avail-clockWidth-1), authorColor(e.Author)},
			span{" ", nil},
			span{e.Clock(), timestampColor},
		)
	} else {
		if layout.Width(name) > avail {
			name = layout.TruncateOrPad(name, avail)
		}
		head = append(head, span{name, authorColor(e.Author)})
	}

	out := []line{head}
	pad := strings.Repeat(" ", pw)
	for _, b := range layout.Wrap(e.Text, avail) {
		out = append(out, line{{pad + b, nil}})
	}
	return out
}

func spansWidth(spans []span) int {
	n := 0
	for _, s := range spans {
		n += layout.Width(s.text)
	}
	return n
}

// printLine writes l at the cursor, clipped to the terminal width, and
// returns the number of cells written.
func (w *Window) printLine(l line) int {
	left := w.width
	for _, s := range l {
		if left <= 0 {
			break
		}
		text, sw := s.text, layout.Width(s.text)
		if sw > left {
			text, sw = layout.TruncateOrPad(text, left), left
		}
		w.sink.Print(text, s.fg)
		left -= sw
	}
	return w.width - left
}

func (w *Window) paintStatusRow() {
	w.sink.MoveTo(0, 0)
	w.sink.ClearLine()
	if w.status == nil || w.width < 1 {
		return
	}
	w.printLine(line{{layout.Sanitize(w.status.Text()), statusColor}})
	w.painted = true
}

// redraw clears the screen and paints the status row and the active view.
// An empty view on a blank screen is left alone.
func (w *Window) redraw(labels bool) {
	lines := w.frame(labels)
	if len(lines) == 0 && w.status == nil && !w.painted {
		w.dirty = false
		return
	}
	w.sink.Clear()
	w.painted = false
	w.paintStatusRow()
	w.row, w.col = 0, 0
	for i, l := range lines {
		w.sink.MoveTo(i+1, 0)
		w.col = w.printLine(l)
		w.row = i + 1
	}
	if len(lines) > 0 {
		w.painted = true
	}
	w.dirty = false
}

// info rewrites every row in place. The screen is never cleared as a whole.
func (w *Window) info() {
	lines := w.frame(w.labels())
	rows := w.contentRows()
	w.row, w.col = 0, 0
	for r := 1; r <= rows; r++ {
		w.sink.MoveTo(r, 0)
		w.sink.ClearLine()
		if r <= len(lines) {
			w.col = w.printLine(lines[r-1])
			w.row = r
		}
	}
	w.painted = len(lines) > 0
	w.paintStatusRow()
	w.sink.MoveTo(w.row, w.col)
	w.dirty = false
}

// append draws what arrived since the last paint below the current content.
func (w *Window) append() {
	switch w.view {
	case LinksView:
		w.appendLines(w.freshLinkLines())
	default:
		e, ok := w.queue.Back()
		if !ok {
			return
		}
		w.appendLines(w.entryLines(e, "", false))
	}
}

// appendLines writes lines below the last content row. Reaching the bottom
// scrolls the terminal, which drags content into the status row, so that
// row is repainted afterwards.
func (w *Window) appendLines(lines []line) {
	rows := w.contentRows()
	if rows == 0 || len(lines) == 0 {
		return
	}
	lines = lines[max(len(lines)-rows, 0):]
	scrolled := false
	for _, l := range lines {
		switch {
		case w.row == 0:
			w.sink.MoveTo(1, 0)
			w.row = 1
		case w.row < rows:
			w.sink.MoveToNextLine()
			w.row++
		default:
			w.sink.MoveToNextLine()
			scrolled = true
		}
		w.col = w.printLine(l)
	}
	w.painted = true
	if scrolled {
		w.paintStatusRow()
		w.sink.MoveTo(w.row, w.col)
	}
}

package window

import (
	"time"

	"livefeed/internal/feed"
	"livefeed/internal/layout"
	"livefeed/internal/links"
)

// linkFrame lays out the newest links grouped under author headers.
func (w *Window) linkFrame(rows int) []line {
	var out []line
	for _, g := range links.Groups(w.links.Last(rows)) {
		out = append(out, w.groupLines(g, true)...)
	}
	w.markLinksDrawn()
	return out[max(len(out)-rows, 0):]
}

// freshLinkLines lays out links extracted since the last paint. The first
// group skips its header when it continues the group already on screen.
func (w *Window) freshLinkLines() []line {
	fresh := w.links.Since(w.linkSeq)
	if len(fresh) == 0 {
		return nil
	}
	var out []line
	for i, g := range links.Groups(fresh) {
		header := i > 0 || !w.hasLink || !links.SameGroup(w.lastLink, g.Links[0])
		out = append(out, w.groupLines(g, header)...)
	}
	w.markLinksDrawn()
	return out
}

func (w *Window) markLinksDrawn() {
	if last, ok := w.links.Latest(); ok {
		w.linkSeq = last.Seq
		w.lastLink = last
		w.hasLink = true
	}
}

func (w *Window) groupLines(g links.Group, header bool) []line {
	var out []line
	if header {
		out = append(out, linkHeader(g.Timestamp, g.Author))
	}
	width := max(w.width-len(linkIndent), 1)
	for _, l := range g.Links {
		for _, part := range layout.Wrap(l.Link, width) {
			out = append(out, line{{linkIndent + part, nil}})
		}
	}
	return out
}

func linkHeader(ts time.Time, a feed.Author) line {
	return line{
		{ts.Local().Format(time.TimeOnly), timestampColor},
		{" ", nil},
		{layout.Sanitize(a.Name), authorColor(a)},
	}
}

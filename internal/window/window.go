// Package window is the render engine: it owns the message history and the
// link index, tracks display settings and translates them into draw
// primitives on a term.Sink.
//
// Row 0 of the terminal is reserved for the status banner; entries are drawn
// on rows 1 to height-1. A Window is driven from a single goroutine.
package window

import (
	"fmt"
	"iter"
	"time"

	"livefeed/internal/feed"
	"livefeed/internal/history"
	"livefeed/internal/links"
	"livefeed/internal/term"
)

const (
	MinColumnWidth = 5
	MaxColumnWidth = 25

	DefaultNameColumnWidth = 11
	DefaultMinWidth        = 30
	DefaultBufferMax       = 50
)

// Options configures a Window. Zero values pick the defaults.
type Options struct {
	BufferMax       int
	NameColumnWidth int
	MinWidth        int
	ShowTimestamps  bool
	LinkLimit       int
	StatusTTL       time.Duration
	Clock           func() time.Time
}

// Window is the render engine.
type Window struct {
	sink  term.Sink
	queue *history.Queue[feed.Entry]
	links *links.Index

	nameWidth      int
	showTimestamps bool
	minWidth       int

	view      View
	mode      ViewMode
	status    *Status
	statusTTL time.Duration
	clock     func() time.Time

	marking  bool
	labelled int

	width, height int
	// row is the terminal row of the last drawn content line, 0 when no
	// content is on screen; col is the column after it.
	row, col int
	painted  bool
	// dirty forces the next Append to repaint everything.
	dirty bool

	linkSeq  uint64
	lastLink links.Entry
	hasLink  bool
}

// New returns a Window drawing on sink.
func New(sink term.Sink, opts Options) *Window {
	if opts.BufferMax <= 0 {
		opts.BufferMax = DefaultBufferMax
	}
	if opts.NameColumnWidth == 0 {
		opts.NameColumnWidth = DefaultNameColumnWidth
	}
	if opts.MinWidth == 0 {
		opts.MinWidth = DefaultMinWidth
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Window{
		sink:           sink,
		queue:          history.New(opts.BufferMax, feed.Before),
		links:          links.NewIndex(opts.LinkLimit),
		nameWidth:      min(max(opts.NameColumnWidth, MinColumnWidth), MaxColumnWidth),
		showTimestamps: opts.ShowTimestamps,
		minWidth:       opts.MinWidth,
		statusTTL:      opts.StatusTTL,
		clock:          opts.Clock,
	}
}

// Push stores e and indexes its links. It returns how many links e held.
// Nothing is drawn; follow with Update(Append).
func (w *Window) Push(e feed.Entry) int {
	if back, ok := w.queue.Back(); ok && e.Timestamp.Before(back.Timestamp) {
		w.dirty = true
	}
	w.queue.Push(e)
	return len(w.links.Add(e))
}

// Update repaints the screen for the current terminal size. Size and write
// failures are returned wrapped; the caller should treat them as fatal.
func (w *Window) Update(mode UpdateMode) error {
	width, height, err := w.sink.Size()
	if err != nil {
		return fmt.Errorf("update %s: %w", mode, err)
	}
	if width != w.width || height != w.height {
		w.width, w.height = width, height
		w.dirty = true
	}
	if m := w.mode.auto(width, w.minWidth); m != w.mode {
		w.mode = m
		w.dirty = true
	}

	switch mode {
	case Redraw:
		w.redraw(w.labels())
	case Append:
		if w.dirty || w.marking {
			w.redraw(w.labels())
		} else {
			w.append()
		}
	case MarkAll:
		if w.view != MessageView {
			return nil
		}
		w.redraw(true)
	case Info:
		w.info()
	default:
		return fmt.Errorf("unknown update mode %d", int(mode))
	}

	if err := w.sink.Flush(); err != nil {
		return fmt.Errorf("update %s: %w", mode, err)
	}
	return nil
}

func (w *Window) labels() bool {
	return w.marking && w.view == MessageView
}

// GrowNameColumn widens the name column by one cell. It reports false at
// MaxColumnWidth.
func (w *Window) GrowNameColumn() bool {
	if w.nameWidth >= MaxColumnWidth {
		return false
	}
	w.nameWidth++
	w.dirty = true
	return true
}

// ShrinkNameColumn narrows the name column by one cell. It reports false at
// MinColumnWidth.
func (w *Window) ShrinkNameColumn() bool {
	if w.nameWidth <= MinColumnWidth {
		return false
	}
	w.nameWidth--
	w.dirty = true
	return true
}

func (w *Window) ToggleTimestamps() {
	w.showTimestamps = !w.showTimestamps
	w.dirty = true
}

// SetView switches the dataset. It reports false when v is already shown.
func (w *Window) SetView(v View) bool {
	if w.view == v {
		return false
	}
	w.view = v
	w.dirty = true
	return true
}

// CycleMode steps automatic → forced normal → forced compact → automatic
// and returns the new mode. The automatic choice is made on the next Update.
func (w *Window) CycleMode() ViewMode {
	w.mode = w.mode.next()
	w.dirty = true
	return w.mode
}

// SetStatus shows text on the status row from the next Update, replacing
// any current banner and restarting its TTL.
func (w *Window) SetStatus(text string) {
	if w.status != nil {
		w.status.Set(text)
		return
	}
	w.status = NewStatus(text, w.statusTTL, w.clock)
}

// StatusStale reports whether a banner is up and has outlived its TTL.
func (w *Window) StatusStale() bool {
	return w.status != nil && w.status.Stale()
}

// ClearStatus drops the banner. The status row is blanked on the next
// Update.
func (w *Window) ClearStatus() {
	w.status = nil
}

// StatusText returns the banner text, "" when none is up.
func (w *Window) StatusText() string {
	if w.status == nil {
		return ""
	}
	return w.status.Text()
}

// LatestLink returns the newest extracted link.
func (w *Window) LatestLink() (links.Entry, bool) {
	return w.links.Latest()
}

// Entries yields the history, oldest first.
func (w *Window) Entries() iter.Seq[feed.Entry] {
	return w.queue.All()
}

func (w *Window) Len() int             { return w.queue.Len() }
func (w *Window) LinkCount() int       { return w.links.Len() }
func (w *Window) View() View           { return w.view }
func (w *Window) Mode() ViewMode       { return w.mode }
func (w *Window) Marking() bool        { return w.marking }
func (w *Window) NameColumnWidth() int { return w.nameWidth }
func (w *Window) ShowTimestamps() bool { return w.showTimestamps }

// Package app runs the UI loop: it owns the Window on one goroutine and
// feeds it entries and commands arriving on bounded channels.
package app

import (
	"context"
	"fmt"
	"time"

	"livefeed/internal/command"
	"livefeed/internal/feed"
	"livefeed/internal/logger"
	"livefeed/internal/window"

	"github.com/atotto/clipboard"
)

const (
	DefaultPollInterval = 150 * time.Millisecond

	EntryBuffer   = 64
	CommandBuffer = 32
)

// Sizer reports the terminal size. term.Sink satisfies it.
type Sizer interface {
	Size() (width, height int, err error)
}

// Recorder receives every entry the loop shows.
type Recorder interface {
	Write(e feed.Entry)
}

// Options configures a Loop. Zero values pick the defaults.
type Options struct {
	PollInterval time.Duration
	// HelpText is shown on the status row for command.Help.
	HelpText string
	// Recorder may be nil.
	Recorder Recorder
	// Clipboard defaults to the system clipboard.
	Clipboard func(text string) error
}

// Loop drives a Window.
type Loop struct {
	win      *window.Window
	sizer    Sizer
	entries  <-chan feed.Entry
	commands <-chan command.Command
	opts     Options
	log      *logger.LogEntry

	width, height int
	closed        bool
}

// New returns a loop for win. sizer should be the sink win draws on.
func New(win *window.Window, sizer Sizer, entries <-chan feed.Entry, commands <-chan command.Command, opts Options) *Loop {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	return &Loop{
		win:      win,
		sizer:    sizer,
		entries:  entries,
		commands: commands,
		opts:     opts,
		log:      logger.Named("app"),
	}
}

// Run paints the first frame and then ticks until the entry channel closes,
// a Quit command arrives or ctx ends. Sink failures end the loop with the
// error.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.start(); err != nil {
		return err
	}
	l.log.WithField("interval", l.opts.PollInterval).Info("ui loop started")

	ticker := time.NewTicker(l.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			l.log.Info("ui loop cancelled")
			return nil
		case <-ticker.C:
		}
		stop, err := l.tick()
		if err != nil {
			l.log.WithError(err).Error("ui loop failed")
			return err
		}
		if stop {
			l.log.WithField("entries", l.win.Len()).Info("ui loop stopped")
			return nil
		}
	}
}

func (l *Loop) start() error {
	w, h, err := l.sizer.Size()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	l.width, l.height = w, h
	return l.win.Update(window.Redraw)
}

// tick runs one pass: resize, entries, commands, status expiry.
func (l *Loop) tick() (stop bool, err error) {
	w, h, err := l.sizer.Size()
	if err != nil {
		return false, fmt.Errorf("terminal size: %w", err)
	}
	if w != l.width || h != l.height {
		l.width, l.height = w, h
		if err := l.win.Update(window.Redraw); err != nil {
			return false, err
		}
	}

	if !l.win.Marking() {
		if err := l.drainEntries(); err != nil {
			return false, err
		}
	}

	for drained := false; !drained; {
		select {
		case c := <-l.commands:
			quit, err := l.apply(c)
			if err != nil || quit {
				return quit, err
			}
		default:
			drained = true
		}
	}

	if l.win.StatusStale() {
		l.win.ClearStatus()
		if err := l.win.Update(window.Redraw); err != nil {
			return false, err
		}
	}
	return l.closed, nil
}

func (l *Loop) drainEntries() error {
	for !l.closed {
		select {
		case e, ok := <-l.entries:
			if !ok {
				l.closed = true
				return nil
			}
			if n := l.win.Push(e); n > 0 {
				l.log.WithField("links", n).Debug("links extracted")
			}
			if l.opts.Recorder != nil {
				l.opts.Recorder.Write(e)
			}
			if err := l.win.Update(window.Append); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// apply runs one command. While marking, a key with a rune picks a label
// and anything else leaves the sub-mode.
func (l *Loop) apply(c command.Command) (quit bool, err error) {
	if c.Kind == command.Quit {
		return true, nil
	}
	if l.win.Marking() {
		if c.Kind != command.ToggleDelete && c.HasChar() {
			return false, l.win.Delete(c.Char)
		}
		l.win.CancelMarking()
		return false, l.win.Update(window.Redraw)
	}

	switch c.Kind {
	case command.Redraw:
		return false, l.win.Update(window.Redraw)
	case command.ToggleDelete:
		if l.win.BeginMarking() {
			return false, l.win.Update(window.MarkAll)
		}
	case command.Char:
	case command.GrowColumn:
		if l.win.GrowNameColumn() {
			return false, l.win.Update(window.Redraw)
		}
	case command.ShrinkColumn:
		if l.win.ShrinkNameColumn() {
			return false, l.win.Update(window.Redraw)
		}
	case command.ToggleTimestamps:
		l.win.ToggleTimestamps()
		return false, l.win.Update(window.Redraw)
	case command.LinksView:
		if l.win.SetView(window.LinksView) {
			return false, l.win.Update(window.Redraw)
		}
	case command.MessagesView:
		if l.win.SetView(window.MessageView) {
			return false, l.win.Update(window.Redraw)
		}
	case command.CycleMode:
		mode := l.win.CycleMode()
		l.log.WithField("mode", mode).Debug("view mode changed")
		return false, l.win.Update(window.Redraw)
	case command.CopyLink:
		l.win.SetStatus(l.copyLink())
		return false, l.win.Update(window.Info)
	case command.Help:
		l.win.SetStatus(l.opts.HelpText)
		return false, l.win.Update(window.Info)
	default:
		l.log.WithField("command", c.Kind).Warn("unhandled command")
	}
	return false, nil
}

func (l *Loop) copyLink() string {
	link, ok := l.win.LatestLink()
	if !ok {
		return "no links yet"
	}
	if err := l.opts.Clipboard(link.Link); err != nil {
		l.log.WithError(err).Warn("clipboard write failed")
		return "copy failed: " + err.Error()
	}
	return "copied " + link.Link
}

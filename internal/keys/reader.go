package keys

import (
	"context"
	"errors"
	"io"

	"livefeed/internal/command"
	"livefeed/internal/logger"

	tea "github.com/charmbracelet/bubbletea"
)

// Reader decodes key presses from a terminal and forwards commands. It runs
// Bubble Tea without a renderer, so the caller owns raw mode and the screen.
type Reader struct {
	in   io.Reader
	out  chan<- command.Command
	keys KeyMap
	log  *logger.LogEntry
}

// NewReader reads keys from in and sends commands on out.
func NewReader(in io.Reader, out chan<- command.Command, keys KeyMap) *Reader {
	return &Reader{in: in, out: out, keys: keys, log: logger.Named("keys")}
}

// Run blocks until the quit key is pressed or ctx is done.
func (r *Reader) Run(ctx context.Context) error {
	p := tea.NewProgram(
		model{reader: r},
		tea.WithContext(ctx),
		tea.WithInput(r.in),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// send never blocks; a full channel drops the key.
func (r *Reader) send(cmd command.Command) {
	select {
	case r.out <- cmd:
		r.log.WithField("type", cmd.Kind.String()).Debug("key")
	default:
		r.log.WithField("type", cmd.Kind.String()).Warn("command channel full, key dropped")
	}
}

type model struct {
	reader *Reader
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	// Fast typing or a paste arrives as one message holding many runes.
	presses := []tea.KeyMsg{km}
	if km.Type == tea.KeyRunes && len(km.Runes) > 1 && !km.Paste {
		presses = presses[:0]
		for _, r := range km.Runes {
			presses = append(presses, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: km.Alt})
		}
	}
	for _, p := range presses {
		cmd, ok := m.reader.keys.Translate(p)
		if !ok {
			continue
		}
		m.reader.send(cmd)
		if cmd.Kind == command.Quit {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string { return "" }

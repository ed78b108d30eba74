package term

import (
	"strings"

	"livefeed/internal/layout"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

type cell struct {
	text string // "" for the right half of a wide cluster
	fg   lipgloss.TerminalColor
	wide bool
}

// Screen is an in-memory Sink that behaves like a terminal grid without
// autowrap: text past the right edge is dropped. It also counts the
// primitives it receives so tests can assert how a frame was produced.
type Screen struct {
	width, height int
	cells         [][]cell
	row, col      int

	// SizeErr and WriteErr, when set, are returned by Size and Flush.
	SizeErr  error
	WriteErr error

	Clears     int
	LineClears int
	Flushes    int
}

// NewScreen returns a blank width x height screen.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Resize changes the grid size, keeping what still fits.
func (s *Screen) Resize(width, height int) {
	cells := make([][]cell, height)
	for r := range cells {
		cells[r] = make([]cell, width)
		if r < len(s.cells) {
			copy(cells[r], s.cells[r])
		}
	}
	s.width, s.height, s.cells = width, height, cells
	s.row = min(s.row, max(height-1, 0))
	s.col = min(s.col, max(width-1, 0))
}

func (s *Screen) Clear() {
	s.Clears++
	for r := range s.cells {
		s.cells[r] = make([]cell, s.width)
	}
}

func (s *Screen) ClearLine() {
	s.LineClears++
	if s.row < s.height {
		s.cells[s.row] = make([]cell, s.width)
	}
}

func (s *Screen) MoveTo(row, col int) {
	s.row = min(max(row, 0), max(s.height-1, 0))
	s.col = min(max(col, 0), s.width)
}

func (s *Screen) MoveToColumn0() { s.col = 0 }

func (s *Screen) MoveToNextLine() {
	s.col = 0
	if s.row < s.height-1 {
		s.row++
		return
	}
	if s.height > 0 {
		s.cells = append(s.cells[1:], make([]cell, s.width))
	}
}

func (s *Screen) Print(text string, fg lipgloss.TerminalColor) {
	if s.row >= s.height {
		return
	}
	line := s.cells[s.row]
	state := -1
	for rest := text; rest != ""; {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := layout.Width(cluster)
		if w == 0 {
			if s.col > 0 {
				line[s.col-1].text += cluster
			}
			continue
		}
		if s.col+w > s.width {
			s.col = s.width
			return
		}
		line[s.col] = cell{text: cluster, fg: fg}
		for i := 1; i < w; i++ {
			line[s.col+i] = cell{fg: fg, wide: true}
		}
		s.col += w
	}
}

func (s *Screen) Flush() error {
	s.Flushes++
	return s.WriteErr
}

func (s *Screen) Size() (int, int, error) {
	if s.SizeErr != nil {
		return 0, 0, s.SizeErr
	}
	return s.width, s.height, nil
}

// Row returns the text of row r with trailing blanks removed.
func (s *Screen) Row(r int) string {
	if r < 0 || r >= s.height {
		return ""
	}
	var b strings.Builder
	for _, c := range s.cells[r] {
		switch {
		case c.wide:
		case c.text == "":
			b.WriteByte(' ')
		default:
			b.WriteString(c.text)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns every row, see Row.
func (s *Screen) Lines() []string {
	out := make([]string, s.height)
	for r := range out {
		out[r] = s.Row(r)
	}
	return out
}

// Color returns the foreground color of the cell at (row, col).
func (s *Screen) Color(row, col int) lipgloss.TerminalColor {
	if row < 0 || row >= s.height || col < 0 || col >= s.width {
		return nil
	}
	return s.cells[row][col].fg
}

// Cursor returns the cursor position.
func (s *Screen) Cursor() (row, col int) {
	return s.row, s.col
}

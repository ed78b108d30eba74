package term

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

// Writer is a Sink that emits ANSI escape sequences. Output is buffered
// until Flush; bufio keeps the first write error and Flush returns it.
type Writer struct {
	out      *bufio.Writer
	fd       int
	renderer *lipgloss.Renderer
}

// NewWriter writes to out and queries the size of the terminal behind fd.
func NewWriter(out io.Writer, fd int) *Writer {
	return &Writer{
		out:      bufio.NewWriterSize(out, 16<<10),
		fd:       fd,
		renderer: lipgloss.NewRenderer(out),
	}
}

// SetProfile overrides the detected color profile.
func (w *Writer) SetProfile(p termenv.Profile) {
	w.renderer.SetColorProfile(p)
}

// Profile returns the color profile used for Print.
func (w *Writer) Profile() termenv.Profile {
	return w.renderer.ColorProfile()
}

// Setup switches to the alternate screen and hides the cursor.
func (w *Writer) Setup() error {
	w.write(ansi.SetAltScreenSaveCursorMode)
	w.write(ansi.HideCursor)
	w.write(ansi.EraseEntireScreen)
	return w.Flush()
}

// Restore undoes Setup.
func (w *Writer) Restore() error {
	w.write(ansi.ShowCursor)
	w.write(ansi.ResetAltScreenSaveCursorMode)
	return w.Flush()
}

func (w *Writer) Clear() { w.write(ansi.EraseEntireScreen) }

func (w *Writer) ClearLine() { w.write(ansi.EraseEntireLine) }

func (w *Writer) MoveTo(row, col int) { w.write(ansi.CursorPosition(col+1, row+1)) }

func (w *Writer) MoveToColumn0() { w.write("\r") }

func (w *Writer) MoveToNextLine() { w.write("\r\n") }

func (w *Writer) Print(text string, fg lipgloss.TerminalColor) {
	if fg == nil || text == "" {
		w.write(text)
		return
	}
	w.write(w.renderer.NewStyle().Foreground(fg).Render(text))
}

func (w *Writer) Flush() error {
	if err := w.out.Flush(); err != nil {
		return fmt.Errorf("write terminal: %w", err)
	}
	return nil
}

func (w *Writer) Size() (int, int, error) {
	width, height, err := xterm.GetSize(w.fd)
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	return width, height, nil
}

func (w *Writer) write(s string) {
	_, _ = w.out.WriteString(s)
}

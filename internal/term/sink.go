// Package term is the render engine's view of the terminal: a small set of
// draw primitives behind the Sink interface, an ANSI implementation for real
// terminals and an in-memory Screen for tests.
package term

import "github.com/charmbracelet/lipgloss"

// Sink receives draw primitives. Rows and columns are 0-based.
//
// Primitives do not return errors. An implementation records the first
// write failure and reports it from Flush.
type Sink interface {
	Clear()
	ClearLine()
	MoveTo(row, col int)
	MoveToColumn0()
	// MoveToNextLine moves to column 0 of the next row, scrolling the whole
	// screen up by one row when the cursor is on the last row.
	MoveToNextLine()
	// Print writes text at the cursor in the given foreground color; nil
	// means the terminal default.
	Print(text string, fg lipgloss.TerminalColor)
	Flush() error
	Size() (width, height int, err error)
}

package terminal

import (
	"fmt"
	"io"
)

// VT100 control sequences used by the picker and the final report.
const (
	HideCursor  = "\x1b[?25l"
	ShowCursor  = "\x1b[?25h"
	ClearScreen = "\x1b[2J\x1b[H"
	Home        = "\x1b[H"
	// ResetPrompt leaves a clean prompt area below a two-line report.
	ResetPrompt = "\x1b[3;1H\x1b[2K\n"
)

// MoveTo returns the sequence that positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

// DrawAt positions the cursor and writes the formatted text there.
func DrawAt(w io.Writer, row, col int, format string, args ...any) error {
	_, err := fmt.Fprintf(w, MoveTo(row, col)+format, args...)
	return err
}

package picker

import (
	"bytes"
	"fmt"
	"io"

	"happy-lines/internal/terminal"
)

// Header is drawn on the first row of every frame.
const Header = "Select a directory:"

// Layout of a frame. Rows and columns are 1-based.
const (
	firstEntryRow = 2
	entryCol      = 4
	markerCol     = 1
)

// Render writes one full frame for m to w in a single write.
func Render(w io.Writer, m *Menu) error {
	var b bytes.Buffer
	b.WriteString(terminal.ClearScreen)
	_ = terminal.DrawAt(&b, 1, 1, "%s", Header)
	for i, e := range m.Entries {
		_ = terminal.DrawAt(&b, firstEntryRow+i, entryCol, "%s", e)
	}
	if len(m.Entries) > 0 {
		_ = terminal.DrawAt(&b, firstEntryRow+m.Cursor, markerCol, ">")
	}
	b.WriteString(terminal.Home)
	_, err := w.Write(b.Bytes())
	return err
}

// Run draws m and feeds it keys from kr until the user confirms or cancels.
// Reaching the end of input cancels.
func Run(kr *terminal.KeyReader, w io.Writer, m *Menu) (State, error) {
	for m.State == Running {
		if err := Render(w, m); err != nil {
			return m.State, fmt.Errorf("render menu: %w", err)
		}
		k, err := kr.ReadKey()
		if err == io.EOF {
			m.State = Cancelled
			break
		}
		if err != nil {
			return m.State, fmt.Errorf("read key: %w", err)
		}
		m.Handle(k)
	}
	return m.State, nil
}

// Package picker implements the arrow-key directory menu.
package picker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"happy-lines/internal/scanner"
	"happy-lines/internal/terminal"
)

// State of the menu loop.
type State int

const (
	Running State = iota
	Confirmed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "running"
	}
}

// Menu is the selection state over a fixed list of entries.
type Menu struct {
	Entries []string
	Cursor  int
	State   State
}

func NewMenu(entries []string) *Menu {
	return &Menu{Entries: entries}
}

// Handle applies one key event and returns the resulting state. Keys
// received after the menu left Running are ignored.
func (m *Menu) Handle(k terminal.Key) State {
	if m.State != Running {
		return m.State
	}
	switch k.Kind {
	case terminal.KeyDown:
		if m.Cursor < len(m.Entries)-1 {
			m.Cursor++
		}
	case terminal.KeyUp:
		if m.Cursor > 0 {
			m.Cursor--
		}
	case terminal.KeyEnter:
		// nothing to confirm in an empty list
		if len(m.Entries) > 0 {
			m.State = Confirmed
		}
	case terminal.KeyChar:
		if k.Char == 'q' {
			m.State = Cancelled
		}
	}
	return m.State
}

// Selected returns the confirmed entry.
func (m *Menu) Selected() (string, bool) {
	if m.State != Confirmed || m.Cursor < 0 || m.Cursor >= len(m.Entries) {
		return "", false
	}
	return m.Entries[m.Cursor], true
}

// ListDirectories returns the names of the directories directly under root,
// sorted. Dot-prefixed names are left out unless includeHidden is set; "."
// and ".." never appear. Links to directories are listed.
func ListDirectories(root string, includeHidden bool) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	dirs := make([]string, 0, len(entries))
	for _, d := range entries {
		name := d.Name()
		if name == "." || name == ".." || (!includeHidden && scanner.Hidden(name)) {
			continue
		}
		if kind, _ := scanner.Classify(filepath.Join(root, name), d); kind == scanner.KindDir {
			dirs = append(dirs, name)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

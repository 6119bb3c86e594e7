package picker

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"happy-lines/internal/terminal"
)

var (
	up    = terminal.Key{Kind: terminal.KeyUp}
	down  = terminal.Key{Kind: terminal.KeyDown}
	left  = terminal.Key{Kind: terminal.KeyLeft}
	enter = terminal.Key{Kind: terminal.KeyEnter}
)

func TestMenu_BoundedNavigation(t *testing.T) {
	m := NewMenu([]string{"a", "b", "c"})
	m.Handle(up)
	if m.Cursor != 0 {
		t.Fatalf("up at top moved cursor to %d", m.Cursor)
	}
	for i := 0; i < 5; i++ {
		m.Handle(down)
	}
	if m.Cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.Cursor)
	}
	m.Handle(up)
	if m.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.Cursor)
	}
	if m.State != Running {
		t.Fatalf("state = %v", m.State)
	}
}

func TestMenu_IgnoredKeys(t *testing.T) {
	m := NewMenu([]string{"a", "b"})
	m.Handle(down)
	for _, k := range []terminal.Key{left, {Kind: terminal.KeyRight}, {Kind: terminal.KeyUnknown}, terminal.Char('x'), terminal.Char(0x03)} {
		if s := m.Handle(k); s != Running {
			t.Fatalf("key %+v changed state to %v", k, s)
		}
	}
	if m.Cursor != 1 {
		t.Fatalf("cursor moved to %d", m.Cursor)
	}
}

func TestMenu_ConfirmAndCancel(t *testing.T) {
	m := NewMenu([]string{"a", "b", "c"})
	m.Handle(down)
	if s := m.Handle(enter); s != Confirmed {
		t.Fatalf("state = %v", s)
	}
	if got, ok := m.Selected(); !ok || got != "b" {
		t.Fatalf("selected = %q, %v", got, ok)
	}
	m.Handle(down)
	if m.Cursor != 1 {
		t.Fatal("keys after confirm must be ignored")
	}

	m = NewMenu([]string{"a"})
	if s := m.Handle(terminal.Char('q')); s != Cancelled {
		t.Fatalf("state = %v", s)
	}
	if _, ok := m.Selected(); ok {
		t.Fatal("cancelled menu has no selection")
	}
}

func TestMenu_EmptyList(t *testing.T) {
	m := NewMenu(nil)
	m.Handle(down)
	m.Handle(up)
	if s := m.Handle(enter); s != Running {
		t.Fatalf("enter on empty list: state = %v", s)
	}
	if _, ok := m.Selected(); ok {
		t.Fatal("empty list has no selection")
	}
	if s := m.Handle(terminal.Char('q')); s != Cancelled {
		t.Fatalf("state = %v", s)
	}
}

func TestRun_TwoDownsAndEnter(t *testing.T) {
	m := NewMenu([]string{"alpha", "beta", "gamma"})
	var out bytes.Buffer
	kr := terminal.NewKeyReader(strings.NewReader("\x1b[B\x1b[B\r"))

	st, err := Run(kr, &out, m)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if st != Confirmed {
		t.Fatalf("state = %v", st)
	}
	if got, _ := m.Selected(); got != "gamma" {
		t.Fatalf("selected %q", got)
	}
	if n := strings.Count(out.String(), terminal.ClearScreen); n != 3 {
		t.Fatalf("expected 3 frames, got %d", n)
	}
}

func TestRun_QuitAndEOF(t *testing.T) {
	var out bytes.Buffer
	m := NewMenu([]string{"a", "b"})
	st, err := Run(terminal.NewKeyReader(strings.NewReader("\x1b[Bq\r")), &out, m)
	if err != nil || st != Cancelled {
		t.Fatalf("state = %v, err = %v", st, err)
	}

	m = NewMenu([]string{"a"})
	st, err = Run(terminal.NewKeyReader(strings.NewReader("")), &out, m)
	if err != nil || st != Cancelled {
		t.Fatalf("state at EOF = %v, err = %v", st, err)
	}
}

func TestRender(t *testing.T) {
	m := NewMenu([]string{"cmd", "internal"})
	m.Cursor = 1
	var out bytes.Buffer
	if err := Render(&out, m); err != nil {
		t.Fatal(err)
	}
	want := terminal.ClearScreen +
		"\x1b[1;1H" + Header +
		"\x1b[2;4Hcmd" +
		"\x1b[3;4Hinternal" +
		"\x1b[3;1H>" +
		terminal.Home
	if out.String() != want {
		t.Fatalf("frame mismatch:\n got %q\nwant %q", out.String(), want)
	}
}

func TestListDirectories(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"zeta", "alpha", ".git", "mid"} {
		if err := os.Mkdir(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "file.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Symlink(filepath.Join(root, "alpha"), filepath.Join(root, "linked")); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ListDirectories(root, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "linked", "mid", "zeta"}
	if runtime.GOOS == "windows" {
		want = []string{"alpha", "mid", "zeta"}
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}

	got, _ = ListDirectories(root, true)
	if len(got) != len(want)+1 || got[0] != ".git" {
		t.Fatalf("hidden listing = %q", got)
	}
}

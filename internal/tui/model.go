package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"happy-lines/internal/picker"
	"happy-lines/internal/scanner"
	"happy-lines/internal/terminal"
	"happy-lines/pkg/utils"
)

type status int

const (
	statusPicking status = iota
	statusWalking
	statusDone
	statusCancelled
)

// Outcome is what the program hands back once it exits.
type Outcome struct {
	Directory string
	Path      string
	Result    scanner.Result
	Cancelled bool
	Err       error
}

type model struct {
	root string
	opts scanner.Options
	menu *picker.Menu
	sp   spinner.Model

	st        status
	startedAt time.Time
	selected  string
	result    scanner.Result
	err       error

	walkCancel context.CancelFunc

	// list scrolling
	scrollOffset int
	termH        int
}

func newModel(root string, entries []string, opts scanner.Options) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return model{
		root: root,
		opts: opts,
		menu: picker.NewMenu(entries),
		sp:   sp,
		st:   statusPicking,
	}
}

// Run shows the directory list, walks the confirmed entry behind a spinner
// and returns the outcome.
func Run(root string, entries []string, opts scanner.Options) (Outcome, error) {
	p := tea.NewProgram(newModel(root, entries, opts))
	final, err := p.Run()
	if err != nil {
		return Outcome{}, err
	}
	return final.(model).outcome(), nil
}

func (m model) outcome() Outcome {
	if m.st != statusDone {
		return Outcome{Cancelled: true}
	}
	return Outcome{
		Directory: m.selected,
		Path:      filepath.Join(m.root, m.selected),
		Result:    m.result,
		Err:       m.err,
	}
}

// messages
type walkDoneMsg struct {
	result scanner.Result
	err    error
}

func walkCmd(ctx context.Context, path string, opts scanner.Options) tea.Cmd {
	return func() tea.Msg {
		res, err := scanner.Count(ctx, path, opts)
		return walkDoneMsg{result: res, err: err}
	}
}

// keyFor maps a bubbletea key to the picker's key events. j and k move
// like the arrows.
func keyFor(msg tea.KeyMsg) terminal.Key {
	switch msg.Type {
	case tea.KeyUp:
		return terminal.Key{Kind: terminal.KeyUp}
	case tea.KeyDown:
		return terminal.Key{Kind: terminal.KeyDown}
	case tea.KeyLeft:
		return terminal.Key{Kind: terminal.KeyLeft}
	case tea.KeyRight:
		return terminal.Key{Kind: terminal.KeyRight}
	case tea.KeyEnter:
		return terminal.Key{Kind: terminal.KeyEnter}
	case tea.KeyRunes:
		if len(msg.Runes) != 1 || msg.Runes[0] > 0x7f {
			break
		}
		switch r := msg.Runes[0]; r {
		case 'k':
			return terminal.Key{Kind: terminal.KeyUp}
		case 'j':
			return terminal.Key{Kind: terminal.KeyDown}
		default:
			return terminal.Char(byte(r))
		}
	}
	return terminal.Key{Kind: terminal.KeyUnknown}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m.cancel()
		}
		switch m.st {
		case statusPicking:
			switch m.menu.Handle(keyFor(msg)) {
			case picker.Cancelled:
				return m.cancel()
			case picker.Confirmed:
				return m.startWalk()
			}
			m.adjustScroll()
			return m, nil
		case statusWalking:
			if msg.String() == "q" {
				return m.cancel()
			}
		}
	case tea.WindowSizeMsg:
		m.termH = msg.Height
		m.adjustScroll()
		return m, nil

	case spinner.TickMsg:
		if m.st != statusWalking {
			return m, nil
		}
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd
	case walkDoneMsg:
		if m.st != statusWalking {
			return m, nil
		}
		m.result = msg.result
		m.err = msg.err
		m.st = statusDone
		return m, tea.Quit
	}
	return m, nil
}

func (m model) cancel() (tea.Model, tea.Cmd) {
	if m.walkCancel != nil {
		m.walkCancel()
	}
	m.st = statusCancelled
	return m, tea.Quit
}

func (m model) startWalk() (tea.Model, tea.Cmd) {
	name, ok := m.menu.Selected()
	if !ok {
		return m, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.walkCancel = cancel
	m.selected = name
	m.st = statusWalking
	m.startedAt = time.Now()
	return m, tea.Batch(m.sp.Tick, walkCmd(ctx, filepath.Join(m.root, name), m.opts))
}

func (m model) View() string {
	switch m.st {
	case statusPicking:
		return m.renderList()
	case statusWalking:
		elapsed := time.Since(m.startedAt).Round(time.Millisecond)
		return fmt.Sprintf("Counting happy lines in %s %s  Elapsed: %s\nPress q to cancel.\n",
			pathStyle.Render(m.selected), m.sp.View(), elapsed)
	case statusDone:
		files := m.result.Files
		return fmt.Sprintf("Counted %s %s (%s) in %s, %s happy lines.\n",
			utils.GroupDigits(files), utils.Plural(files, "file", "files"),
			utils.HumanizeBytes(m.result.Bytes),
			pathStyle.Render(m.selected),
			totalStyle.Render(utils.GroupDigits(m.result.Total)))
	default:
		return ""
	}
}

const listChrome = 3 // header, blank line, hint

func (m model) visibleHeight() int {
	h := m.termH - listChrome
	if m.termH == 0 || h > len(m.menu.Entries) {
		h = len(m.menu.Entries)
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *model) adjustScroll() {
	h := m.visibleHeight()
	if m.menu.Cursor >= m.scrollOffset+h {
		m.scrollOffset = m.menu.Cursor - h + 1
	}
	if m.menu.Cursor < m.scrollOffset {
		m.scrollOffset = m.menu.Cursor
	}
}

func (m model) renderList() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(picker.Header) + "\n\n")
	if len(m.menu.Entries) == 0 {
		b.WriteString("No subdirectories found.\n")
	}
	end := m.scrollOffset + m.visibleHeight()
	if end > len(m.menu.Entries) {
		end = len(m.menu.Entries)
	}
	for i := m.scrollOffset; i < end; i++ {
		if i == m.menu.Cursor {
			b.WriteString(cursorStyle.Render(">") + "  " + selectedStyle.Render(m.menu.Entries[i]) + "\n")
		} else {
			b.WriteString("   " + m.menu.Entries[i] + "\n")
		}
	}
	b.WriteString(hintStyle.Render("↑↓/jk move, enter count, q quit"))
	return b.String()
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))            // purple
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true) // green
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))            // cyan
	totalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("227")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

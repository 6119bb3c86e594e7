// Package report renders the outcome of a walk.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	"happy-lines/internal/scanner"
	"happy-lines/internal/terminal"
)

// Report pairs the selected directory with its walk result.
type Report struct {
	Directory string
	Result    scanner.Result
}

func (r Report) selectedLine() string {
	return "Selected directory: " + r.Directory
}

func (r Report) totalLine() string {
	return fmt.Sprintf("Total happy lines count: %d", r.Result.Total)
}

// WriteText prints the two report lines.
func WriteText(w io.Writer, r Report) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", r.selectedLine(), r.totalLine())
	return err
}

// WriteScreen clears the terminal, draws the two report lines on rows 1 and
// 2, and leaves the cursor on a cleared row 3.
func WriteScreen(w io.Writer, r Report) error {
	var b bytes.Buffer
	b.WriteString(terminal.ClearScreen)
	_ = terminal.DrawAt(&b, 1, 1, "%s", r.selectedLine())
	_ = terminal.DrawAt(&b, 2, 1, "%s", r.totalLine())
	b.WriteString(terminal.ResetPrompt)
	_, err := w.Write(b.Bytes())
	return err
}

// WriteFailures prints one diagnostic per unreadable file.
func WriteFailures(w io.Writer, failures []scanner.Failure) error {
	for _, f := range failures {
		if _, err := fmt.Fprintf(w, "Error opening file %s: %v\n", f.Path, f.Err); err != nil {
			return err
		}
	}
	return nil
}

type jsonFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type jsonReport struct {
	Directory string        `json:"directory"`
	Total     int           `json:"total"`
	Files     int           `json:"files"`
	Dirs      int           `json:"dirs"`
	Bytes     int64         `json:"bytes"`
	Failures  []jsonFailure `json:"failures"`
}

// WriteJSON writes the report as an indented JSON document.
func WriteJSON(w io.Writer, r Report) error {
	payload := jsonReport{
		Directory: r.Directory,
		Total:     r.Result.Total,
		Files:     r.Result.Files,
		Dirs:      r.Result.Dirs,
		Bytes:     r.Result.Bytes,
		Failures:  make([]jsonFailure, 0, len(r.Result.Failures)),
	}
	for _, f := range r.Result.Failures {
		payload.Failures = append(payload.Failures, jsonFailure{Path: f.Path, Error: f.Err.Error()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

var writeClipboard = clipboard.WriteAll

// Copy places the two report lines on the system clipboard.
func Copy(r Report) error {
	if err := writeClipboard(r.selectedLine() + "\n" + r.totalLine() + "\n"); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

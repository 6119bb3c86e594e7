package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"happy-lines/internal/scanner"
)

func sample() Report {
	return Report{
		Directory: "src",
		Result: scanner.Result{
			Total: 11,
			Files: 3,
			Dirs:  1,
			Bytes: 24,
			Failures: []scanner.Failure{
				{Path: "src/locked.txt", Err: errors.New("permission denied")},
			},
		},
	}
}

func TestWriteText(t *testing.T) {
	var b bytes.Buffer
	if err := WriteText(&b, sample()); err != nil {
		t.Fatal(err)
	}
	want := "Selected directory: src\nTotal happy lines count: 11\n"
	if b.String() != want {
		t.Fatalf("got %q want %q", b.String(), want)
	}
}

func TestWriteScreen(t *testing.T) {
	var b bytes.Buffer
	if err := WriteScreen(&b, sample()); err != nil {
		t.Fatal(err)
	}
	want := "\x1b[2J\x1b[H" +
		"\x1b[1;1HSelected directory: src" +
		"\x1b[2;1HTotal happy lines count: 11" +
		"\x1b[3;1H\x1b[2K\n"
	if b.String() != want {
		t.Fatalf("got %q want %q", b.String(), want)
	}
}

func TestWriteFailures(t *testing.T) {
	var b bytes.Buffer
	if err := WriteFailures(&b, sample().Result.Failures); err != nil {
		t.Fatal(err)
	}
	if b.String() != "Error opening file src/locked.txt: permission denied\n" {
		t.Fatalf("got %q", b.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var b bytes.Buffer
	if err := WriteJSON(&b, sample()); err != nil {
		t.Fatal(err)
	}
	var got jsonReport
	if err := json.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Directory != "src" || got.Total != 11 || got.Files != 3 || got.Bytes != 24 {
		t.Fatalf("unexpected payload %+v", got)
	}
	if len(got.Failures) != 1 || got.Failures[0].Error != "permission denied" {
		t.Fatalf("unexpected failures %+v", got.Failures)
	}

	b.Reset()
	if err := WriteJSON(&b, Report{Directory: "empty"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `"failures": []`) {
		t.Fatalf("failures should encode as an empty array: %s", b.String())
	}
}

func TestCopy(t *testing.T) {
	var got string
	orig := writeClipboard
	writeClipboard = func(s string) error { got = s; return nil }
	defer func() { writeClipboard = orig }()

	if err := Copy(sample()); err != nil {
		t.Fatal(err)
	}
	if got != "Selected directory: src\nTotal happy lines count: 11\n" {
		t.Fatalf("clipboard got %q", got)
	}
}

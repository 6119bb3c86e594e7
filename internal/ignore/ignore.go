// Package ignore holds the set of directory names excluded from a walk.
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Terminator ends the interactive ignore prompt.
const Terminator = "exit"

// Set is a collection of bare directory names. The zero value is empty and
// ready to use for lookups.
type Set map[string]struct{}

func New(names ...string) Set {
	s := make(Set, len(names))
	s.Add(names...)
	return s
}

// Add inserts names, skipping blanks.
func (s Set) Add(names ...string) {
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		s[n] = struct{}{}
	}
}

func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the members in sorted order.
func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ReadPrompt reads whitespace-delimited names until the Terminator token or
// end of input. Input is consumed line by line so that r can be handed to a
// key reader afterwards without losing keystrokes.
func ReadPrompt(r *bufio.Reader) ([]string, error) {
	var names []string
	for {
		line, err := r.ReadString('\n')
		for _, tok := range strings.Fields(line) {
			if tok == Terminator {
				return names, nil
			}
			names = append(names, tok)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return names, nil
			}
			return names, fmt.Errorf("read ignore names: %w", err)
		}
	}
}

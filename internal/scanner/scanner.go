// Package scanner counts happy lines below a directory.
package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"

	"happy-lines/internal/ignore"
)

// UnreadableFileLines is what a file that cannot be read adds to the total.
const UnreadableFileLines = 1

// Options defines walking behavior.
type Options struct {
	Ignore         ignore.Set // directory names skipped at any depth
	IncludeHidden  bool       // descend into and count dot-prefixed entries
	FollowSymlinks bool       // descend into symlinked directories
	Gitignore      bool       // also skip paths matched by <root>/.gitignore
}

// Failure is a file that contributed UnreadableFileLines instead of its count.
type Failure struct {
	Path string
	Err  error
}

// Result is the outcome of one walk.
type Result struct {
	Total    int   // happy lines, including sentinels for failures
	Files    int   // regular files visited
	Dirs     int   // directories descended into, root excluded
	Bytes    int64 // bytes successfully read
	Failures []Failure
}

func (r *Result) merge(o Result) {
	r.Total += o.Total
	r.Files += o.Files
	r.Dirs += o.Dirs
	r.Bytes += o.Bytes
	r.Failures = append(r.Failures, o.Failures...)
}

// CountLines returns the number of '\n' bytes in the file plus one, so an
// empty file has one line and a trailing partial line is counted.
func CountLines(path string) (int, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	return countReader(f)
}

func countReader(r io.Reader) (int, int64, error) {
	buf := make([]byte, 32*1024)
	lines := 1
	var size int64
	for {
		n, err := r.Read(buf)
		lines += bytes.Count(buf[:n], []byte{'\n'})
		size += int64(n)
		if errors.Is(err, io.EOF) {
			return lines, size, nil
		}
		if err != nil {
			return 0, size, err
		}
	}
}

// Count walks root depth-first and sums the happy lines of every regular
// file below it. Unreadable files and directories never abort the walk; the
// only errors returned are a malformed .gitignore and context cancellation,
// in which case the partial Result is still returned.
func Count(ctx context.Context, root string, opts Options) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	w := &walker{ctx: ctx, opts: opts}
	if opts.Gitignore {
		m, err := loadGitignore(root)
		if err != nil {
			return Result{}, err
		}
		w.gi = m
	}
	if opts.FollowSymlinks {
		w.seen = make(map[string]struct{})
		if real, err := filepath.EvalSymlinks(root); err == nil {
			w.seen[real] = struct{}{}
		}
	}
	res := w.walk(root)
	return res, ctx.Err()
}

type walker struct {
	ctx  context.Context
	opts Options
	gi   gitignore.IgnoreMatcher
	seen map[string]struct{} // real paths entered, only when following links
}

func (w *walker) walk(dir string) Result {
	var res Result
	entries, err := os.ReadDir(dir)
	if err != nil {
		return res
	}
	for _, d := range entries {
		if w.ctx.Err() != nil {
			return res
		}
		name := d.Name()
		if name == "." || name == ".." || (!w.opts.IncludeHidden && Hidden(name)) {
			continue
		}
		path := filepath.Join(dir, name)
		kind, link := Classify(path, d)
		switch kind {
		case KindDir:
			if w.opts.Ignore.Contains(name) || w.ignored(path, true) {
				continue
			}
			if !w.enter(path, link) {
				continue
			}
			res.Dirs++
			res.merge(w.walk(path))
		case KindFile:
			if w.ignored(path, false) {
				continue
			}
			res.Files++
			n, size, err := CountLines(path)
			if err != nil {
				res.Failures = append(res.Failures, Failure{Path: path, Err: err})
				res.Total += UnreadableFileLines
				continue
			}
			res.Total += n
			res.Bytes += size
		}
	}
	return res
}

// enter decides whether a directory is descended into. Without
// FollowSymlinks linked directories are skipped; with it, each real
// directory is entered at most once so link cycles terminate.
func (w *walker) enter(path string, link bool) bool {
	if !w.opts.FollowSymlinks {
		return !link
	}
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	if _, ok := w.seen[real]; ok {
		return false
	}
	w.seen[real] = struct{}{}
	return true
}

func (w *walker) ignored(path string, isDir bool) bool {
	return w.gi != nil && w.gi.Match(path, isDir)
}

func loadGitignore(root string) (gitignore.IgnoreMatcher, error) {
	p := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
	m, err := gitignore.NewGitIgnore(p, root)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p, err)
	}
	return m, nil
}

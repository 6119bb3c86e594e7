package scanner

import (
	"io/fs"
	"os"
	"strings"
)

// Kind is the classification of a directory entry.
type Kind int

const (
	KindOther Kind = iota
	KindDir
	KindFile
)

// Classify reports what path is, following a symbolic link to its target.
// The second result is true when the entry itself is a link. Broken links,
// devices, sockets and pipes are KindOther.
func Classify(path string, d fs.DirEntry) (Kind, bool) {
	mode := d.Type()
	link := mode&fs.ModeSymlink != 0
	if link {
		info, err := os.Stat(path)
		if err != nil {
			return KindOther, true
		}
		mode = info.Mode().Type()
	}
	switch {
	case mode.IsDir():
		return KindDir, link
	case mode.IsRegular():
		return KindFile, link
	}
	return KindOther, link
}

// Hidden reports whether name is dot-prefixed, which includes "." and "..".
func Hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

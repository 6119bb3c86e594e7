package terminal

import (
	"bufio"
	"io"
)

// KeyKind tags a decoded key event.
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyChar
)

func (k KeyKind) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyChar:
		return "char"
	default:
		return "unknown"
	}
}

// Key is a single decoded keystroke. Char is only meaningful for KeyChar.
type Key struct {
	Kind KeyKind
	Char byte
}

// Char builds a plain character key.
func Char(c byte) Key { return Key{Kind: KeyChar, Char: c} }

const esc = 0x1b

// DecodeEscape maps the two bytes following ESC to an arrow key.
// Anything other than ESC [ A/B/C/D is KeyUnknown.
func DecodeEscape(b0, b1 byte) Key {
	if b0 != '[' {
		return Key{Kind: KeyUnknown}
	}
	switch b1 {
	case 'A':
		return Key{Kind: KeyUp}
	case 'B':
		return Key{Kind: KeyDown}
	case 'C':
		return Key{Kind: KeyRight}
	case 'D':
		return Key{Kind: KeyLeft}
	}
	return Key{Kind: KeyUnknown}
}

// KeyReader reads one key event at a time from a byte stream.
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader wraps r. A *bufio.Reader is used as is so that callers can
// share it with line-oriented reads that happened earlier.
func NewKeyReader(r io.Reader) *KeyReader {
	if br, ok := r.(*bufio.Reader); ok {
		return &KeyReader{r: br}
	}
	return &KeyReader{r: bufio.NewReader(r)}
}

// ReadKey blocks for exactly one key event. An escape sequence cut short by
// end of input decodes to KeyUnknown; the error is only returned when no byte
// could be read at all.
func (kr *KeyReader) ReadKey() (Key, error) {
	c, err := kr.r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	switch c {
	case esc:
		b0, err := kr.r.ReadByte()
		if err != nil {
			return Key{Kind: KeyUnknown}, nil
		}
		b1, err := kr.r.ReadByte()
		if err != nil {
			return Key{Kind: KeyUnknown}, nil
		}
		return DecodeEscape(b0, b1), nil
	case '\r', '\n':
		return Key{Kind: KeyEnter}, nil
	}
	return Char(c), nil
}

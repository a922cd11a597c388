// Package codec translates bytes that are legal in WSL file names but
// illegal in Windows file names.
//
// When WSL stores such a byte c on a Windows filesystem it writes the
// private-use character U+F000+c instead, which is always the 3-byte UTF-8
// sequence EF 80 xx (c < 0x40) or EF 81 xx (0x40 <= c < 0x80).
package codec

import (
	"fmt"
	"strings"
)

// Class is the Windows file-name category of a single byte.
type Class uint8

const (
	// Legal bytes may appear in a Windows file name as-is.
	Legal Class = iota
	// Null is the NUL byte.
	Null
	// LowControl covers 0x01-0x1F.
	LowControl
	// Reserved covers " * : < > ? |
	Reserved
	// ForwardSlash is '/'.
	ForwardSlash
	// BackSlash is '\'.
	BackSlash
)

func (c Class) String() string {
	switch c {
	case Legal:
		return "legal"
	case Null:
		return "null"
	case LowControl:
		return "low-control"
	case Reserved:
		return "reserved"
	case ForwardSlash:
		return "forward-slash"
	case BackSlash:
		return "backslash"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// Classify returns the Windows file-name category of b.
func Classify(b byte) Class {
	switch {
	case b == 0:
		return Null
	case b < ' ':
		return LowControl
	}
	switch b {
	case '/':
		return ForwardSlash
	case '\\':
		return BackSlash
	case '"', '*', ':', '<', '>', '?', '|':
		return Reserved
	}
	return Legal
}

// Escapable reports whether b has an escaped form.
func Escapable(b byte) bool {
	switch Classify(b) {
	case Null, LowControl, Reserved, BackSlash:
		return true
	}
	return false
}

const (
	// EscapeLen is the length of every escape sequence.
	EscapeLen = 3

	escapeLead = 0xEF
)

// Escape returns the 3-byte escape of b. ok is false when b is never escaped.
func Escape(b byte) (seq [EscapeLen]byte, ok bool) {
	if !Escapable(b) {
		return seq, false
	}
	return [EscapeLen]byte{escapeLead, 0x80 | b>>6, 0x80 | b&0x3F}, true
}

// Unescape decodes the escape at the start of seq. ok is false when seq is
// shorter than EscapeLen or does not start with a valid escape.
func Unescape(seq []byte) (b byte, ok bool) {
	if len(seq) < EscapeLen || seq[0] != escapeLead {
		return 0, false
	}
	if seq[1] != 0x80 && seq[1] != 0x81 {
		return 0, false
	}
	if seq[2]&0xC0 != 0x80 {
		return 0, false
	}
	b = (seq[1]&0x01)<<6 | seq[2]&0x3F
	if !Escapable(b) {
		return 0, false
	}
	return b, true
}

// IllegalByteError reports a byte that cannot appear in the target
// representation.
type IllegalByteError struct {
	Byte   byte
	Class  Class
	Offset int
}

func (e *IllegalByteError) Error() string {
	return fmt.Sprintf("illegal %s character %q at offset %d", e.Class, e.Byte, e.Offset)
}

// Separator is the path separator used on the Windows side.
type Separator uint8

const (
	// Backward is '\', the native Windows separator.
	Backward Separator = iota
	// Forward is '/', which Windows also accepts.
	Forward
)

// Byte returns the separator character.
func (s Separator) Byte() byte {
	if s == Forward {
		return '/'
	}
	return '\\'
}

func (s Separator) String() string {
	return string(s.Byte())
}

// Set parses v into s. It lets a *Separator be used as a command-line flag.
func (s *Separator) Set(v string) error {
	sep, err := ParseSeparator(v)
	if err != nil {
		return err
	}
	*s = sep
	return nil
}

// Type names the flag value type in usage output.
func (s *Separator) Type() string {
	return "sep"
}

// ParseSeparator accepts `\`, "backslash", "/" and "slash".
func ParseSeparator(v string) (Separator, error) {
	switch strings.ToLower(v) {
	case `\`, "backslash":
		return Backward, nil
	case "/", "slash":
		return Forward, nil
	}
	return Backward, fmt.Errorf(`%q must be one of [\, backslash, /, slash]`, v)
}

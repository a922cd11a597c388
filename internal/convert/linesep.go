package convert

import (
	"fmt"
	"strings"
)

// LineSep delimits paths in a list.
type LineSep int

const (
	// LF is a line feed.
	LF LineSep = iota
	// Null is a NUL byte, as produced by find -print0.
	Null
	// CRLF is a carriage return and line feed. On input either byte
	// separates paths; the empty segment between them is skipped.
	CRLF
)

// Matches reports whether b separates paths.
func (s LineSep) Matches(b byte) bool {
	switch s {
	case Null:
		return b == 0
	case CRLF:
		return b == '\r' || b == '\n'
	default:
		return b == '\n'
	}
}

// Append appends the separator bytes to dst.
func (s LineSep) Append(dst []byte) []byte {
	switch s {
	case Null:
		return append(dst, 0)
	case CRLF:
		return append(dst, '\r', '\n')
	default:
		return append(dst, '\n')
	}
}

func (s LineSep) String() string {
	switch s {
	case Null:
		return "null"
	case CRLF:
		return "CRLF"
	default:
		return "LF"
	}
}

// Set implements pflag.Value.
func (s *LineSep) Set(v string) error {
	parsed, err := ParseLineSep(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *LineSep) Type() string {
	return "linesep"
}

// ParseLineSep parses a separator name. Escaped spellings such as \0 are
// accepted so shells need no quoting tricks.
func ParseLineSep(v string) (LineSep, error) {
	switch strings.ToLower(v) {
	case "lf", `\n`, "\n":
		return LF, nil
	case "null", "nul", "0", `\0`:
		return Null, nil
	case "crlf", `\r\n`, "\r\n":
		return CRLF, nil
	}
	return LF, fmt.Errorf("invalid line separator %q (use null, LF or CRLF)", v)
}

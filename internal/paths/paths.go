// Package paths rewrites absolute paths between the Windows and WSL
// namespaces of a single host.
//
// Paths are raw bytes. Nothing here touches the filesystem except Resolve,
// which queries the host once to build the immutable Root every conversion
// shares.
package paths

import (
	"errors"
	"fmt"
)

var (
	// ErrNotWSL is returned by Resolve when no WSL distribution name is set.
	ErrNotWSL = errors.New("not running under WSL")
	// ErrRootLoopNotFound is returned by Resolve when root-loop detection is
	// enabled but no Windows directory shares the identity of "/".
	ErrRootLoopNotFound = errors.New("WSL root not found in Windows Store packages")
)

// Converter appends the converted form of one absolute path to dst.
type Converter interface {
	Append(dst, path []byte) ([]byte, error)
}

// ParseError reports a path whose shape cannot be converted.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Message
}

// MountError reports a failed mount-table enumeration.
type MountError struct {
	Err error
}

func (e *MountError) Error() string {
	return fmt.Sprintf("enumerating drvfs mounts: %v", e.Err)
}

func (e *MountError) Unwrap() error {
	return e.Err
}

// EnvQueryError reports a failed Windows environment variable lookup.
type EnvQueryError struct {
	Var string
	Err error
}

func (e *EnvQueryError) Error() string {
	return fmt.Sprintf("Windows environment variable lookup failed for %s: %v", e.Var, e.Err)
}

func (e *EnvQueryError) Unwrap() error {
	return e.Err
}

// --- byte helpers ---

// hasPrefixFold reports whether path starts with prefix, comparing ASCII
// letters case-insensitively and matching a '/' in prefix against sep in
// path.
func hasPrefixFold(path, prefix []byte, sep byte) bool {
	if len(path) < len(prefix) {
		return false
	}
	for i, want := range prefix {
		got := path[i]
		if want == '/' {
			if got != sep {
				return false
			}
			continue
		}
		if toLower(got) != toLower(want) {
			return false
		}
	}
	return true
}

// atBoundary reports whether i is the end of path or the index of a
// separator.
func atBoundary(path []byte, i int, sep byte) bool {
	return i == len(path) || path[i] == sep
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 32
	}
	return b
}

func toUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 32
	}
	return b
}

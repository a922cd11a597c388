package paths

import (
	"bytes"
	"errors"

	"github.com/sungur/wslpath/internal/codec"
)

// verbatim is the \\?\ prefix of Win32 file namespace paths, written with
// '/' like every prefix here.
var verbatim = []byte("//?/")

// ToWSL converts absolute Windows paths to WSL paths.
//
// Accepted shapes, with either separator per Separator:
//
//	\\wsl$\<distro>\rest   -> /rest
//	C:                     -> /mnt/c
//	C:\rest                -> /mnt/c/rest
//
// each optionally behind a \\?\ prefix. Bytes that WSL escaped on the
// Windows side are decoded back to their raw form.
type ToWSL struct {
	Root      *Root
	Separator codec.Separator
}

// Append appends the WSL form of path to dst.
//
// Offsets in a returned *codec.IllegalByteError refer to path as given.
// When an error is returned, bytes past len(dst) must not be used.
func (c *ToWSL) Append(dst, path []byte) ([]byte, error) {
	sep := c.Separator.Byte()
	if c.Separator == codec.Backward {
		// '\' is authoritative, so a '/' is ambiguous rather than a separator
		if i := bytes.IndexByte(path, '/'); i >= 0 {
			return dst, &codec.IllegalByteError{Byte: '/', Class: codec.ForwardSlash, Offset: i}
		}
	}

	off := 0
	if hasPrefixFold(path, verbatim, sep) {
		off = len(verbatim)
	}

	if n, ok := c.matchUNC(path[off:], sep); ok {
		off += n
		if off == len(path) {
			return append(dst, '/'), nil
		}
		return c.decode(dst, path, off)
	}

	rest := path[off:]
	if len(rest) < 2 || !isASCIILetter(rest[0]) || rest[1] != ':' {
		return dst, &ParseError{Message: "not an absolute Windows path"}
	}
	letter := toLower(rest[0])
	mount, ok := c.Root.Mount(letter)
	if !ok {
		return dst, &ParseError{Message: "drive " + string(toUpper(letter)) + ": is not mounted"}
	}
	if len(rest) == 2 {
		return append(dst, mount...), nil
	}
	if rest[2] != sep {
		return dst, &ParseError{Message: "drive-relative path"}
	}
	off += 3

	dst = append(dst, mount...)
	dst = append(dst, '/')
	if letter == c.Root.RootLoopDrive {
		off = c.elideRootLoop(path, off, sep)
	}
	return c.decode(dst, path, off)
}

// matchUNC returns the length of the distribution's network root at the
// start of p.
func (c *ToWSL) matchUNC(p []byte, sep byte) (int, bool) {
	if n, ok := matchRoot(p, c.Root.UNC, sep); ok {
		return n, true
	}
	for _, alias := range c.Root.UNCAliases {
		if n, ok := matchRoot(p, alias, sep); ok {
			return n, true
		}
	}
	return 0, false
}

func matchRoot(p, root []byte, sep byte) (int, bool) {
	if len(root) == 0 || !hasPrefixFold(p, root, sep) || !atBoundary(p, len(root), sep) {
		return 0, false
	}
	// the separator after the root stays: it becomes the leading '/'
	return len(root), true
}

// elideRootLoop skips the root-loop prefix of the drive-relative path that
// starts at off, together with the separator after it.
func (c *ToWSL) elideRootLoop(path []byte, off int, sep byte) int {
	loop := c.Root.RootLoop
	if len(loop) == 0 {
		return off
	}
	p := path[off:]
	if !hasPrefixFold(p, loop, sep) || !atBoundary(p, len(loop), sep) {
		return off
	}
	off += len(loop)
	if off < len(path) {
		off++
	}
	return off
}

// decode appends the decoded form of path[off:] and rebases any error
// offset onto path.
func (c *ToWSL) decode(dst, path []byte, off int) ([]byte, error) {
	out, err := codec.Decode(dst, path[off:], c.Separator)
	if err != nil {
		var ie *codec.IllegalByteError
		if errors.As(err, &ie) {
			ie.Offset += off
		}
		return dst, err
	}
	return out, nil
}

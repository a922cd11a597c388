package paths

import (
	"bytes"
	"errors"
	"path"

	"github.com/sungur/wslpath/internal/codec"
)

// ToWindows converts absolute WSL paths to Windows paths. It is the inverse
// of ToWSL:
//
//	/mnt/c/Users/me  -> C:\Users\me
//	/mnt/c           -> C:\
//	/home/me         -> \\wsl$\<distro>\home\me
//
// Bytes that are illegal in Windows file names are escaped.
type ToWindows struct {
	Root      *Root
	Separator codec.Separator
	// Canonicalize cleans the path lexically before conversion. Nothing is
	// resolved on disk.
	Canonicalize bool
}

// Append appends the Windows form of p to dst.
func (c *ToWindows) Append(dst, p []byte) ([]byte, error) {
	if len(p) == 0 || p[0] != '/' {
		return dst, &ParseError{Message: "not an absolute WSL path"}
	}
	if i := bytes.IndexByte(p, 0); i >= 0 {
		return dst, &codec.IllegalByteError{Byte: 0, Class: codec.Null, Offset: i}
	}
	if c.Canonicalize && needsClean(p) {
		p = []byte(path.Clean(string(p)))
	}
	sep := c.Separator.Byte()

	if letter, rest, ok := c.Root.driveOf(p); ok {
		out := append(dst, toUpper(letter), ':', sep)
		return c.encode(dst, out, p, rest)
	}

	out := dst
	for _, b := range c.Root.UNC {
		if b == '/' {
			b = sep
		}
		out = append(out, b)
	}
	return c.encode(dst, out, p, p)
}

// encode appends the encoded rest, a suffix of p, to out. On error dst is
// returned unchanged.
func (c *ToWindows) encode(dst, out, p, rest []byte) ([]byte, error) {
	out, err := codec.Encode(out, rest, c.Separator)
	if err != nil {
		var ie *codec.IllegalByteError
		if errors.As(err, &ie) {
			ie.Offset += len(p) - len(rest)
		}
		return dst, err
	}
	return out, nil
}

// needsClean reports whether path.Clean would change p.
func needsClean(p []byte) bool {
	if len(p) > 1 && p[len(p)-1] == '/' {
		return true
	}
	for i := 0; i < len(p); i++ {
		if p[i] != '/' {
			continue
		}
		// inspect the component after this separator
		j := i + 1
		if j < len(p) && p[j] == '/' {
			return true
		}
		end := bytes.IndexByte(p[j:], '/')
		if end < 0 {
			end = len(p) - j
		}
		comp := p[j : j+end]
		if string(comp) == "." || string(comp) == ".." {
			return true
		}
	}
	return false
}

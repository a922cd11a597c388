// Package convert applies a single-path converter across delimited path
// lists held in memory or read from files in blocks.
package convert

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sungur/wslpath/internal/codec"
	"github.com/sungur/wslpath/internal/paths"
)

// PathError records one path that failed to convert.
type PathError struct {
	// Index is the position of the path among the non-empty segments of
	// the input.
	Index int
	// Path is a copy of the original bytes.
	Path []byte
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %d %q: %v", e.Index, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Offset returns the offset of the offending byte when the failure was an
// illegal character.
func (e *PathError) Offset() (int, bool) {
	var ie *codec.IllegalByteError
	if errors.As(e.Err, &ie) {
		return ie.Offset, true
	}
	return 0, false
}

// Result is the outcome of one Bulk.Convert call.
type Result struct {
	// Output holds one line per processed path, each followed by the output
	// separator. Failed paths leave an empty line. It is only valid until the
	// next call on the same Bulk.
	Output []byte
	Errors []*PathError
	// Remainder is the offset of the first unprocessed byte of the input.
	Remainder int
	// Paths is the number of paths processed.
	Paths int
}

// Bulk converts separator-delimited path lists. It reuses one output buffer
// across calls and is not safe for concurrent use.
type Bulk struct {
	Converter paths.Converter
	Input     LineSep
	Output    LineSep

	out []byte
}

// NewBulk returns a Bulk that splits on in and joins with out.
func NewBulk(conv paths.Converter, in, out LineSep) *Bulk {
	return &Bulk{Converter: conv, Input: in, Output: out}
}

// Convert converts every complete path in buf. Bytes after the last
// separator are left for the caller to carry into the next call.
func (b *Bulk) Convert(buf []byte) Result {
	b.out = b.out[:0]
	end := b.lastSep(buf)
	if end < 0 {
		return Result{Output: b.out}
	}

	var res Result
	start := 0
	for i := 0; i <= end; i++ {
		if !b.Input.Matches(buf[i]) {
			continue
		}
		seg := buf[start:i]
		start = i + 1
		if len(seg) == 0 {
			continue
		}
		out, err := b.Converter.Append(b.out, seg)
		if err != nil {
			res.Errors = append(res.Errors, &PathError{Index: res.Paths, Path: bytes.Clone(seg), Err: err})
		} else {
			b.out = out
		}
		b.out = b.Output.Append(b.out)
		res.Paths++
	}
	res.Output = b.out
	res.Remainder = end + 1
	return res
}

func (b *Bulk) lastSep(buf []byte) int {
	for i := len(buf) - 1; i >= 0; i-- {
		if b.Input.Matches(buf[i]) {
			return i
		}
	}
	return -1
}

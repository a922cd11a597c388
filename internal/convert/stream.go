package convert

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
)

// ErrIsDirectory is returned when a stream is opened on a directory.
var ErrIsDirectory = errors.New("is a directory")

// Default read sizing.
const (
	DefaultBlockSize = 64 << 10
	DefaultMaxBlocks = 16
	DefaultMinBlocks = 1
)

// State is the position of a Stream in its lifecycle.
type State int

const (
	Idle State = iota
	Reading
	Yielding
	Exhausted
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Reading:
		return "reading"
	case Yielding:
		return "yielding"
	case Exhausted:
		return "exhausted"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// StreamOptions sizes the reads of a Stream. Zero values take the defaults.
type StreamOptions struct {
	// BlockSize is the unit of every read.
	BlockSize int
	// MaxBlocks caps a read from a file of known length.
	MaxBlocks int
	// MinBlocks is the read size, in blocks, for pipes and devices.
	MinBlocks int
}

func (o StreamOptions) withDefaults() StreamOptions {
	if o.BlockSize <= 0 {
		o.BlockSize = DefaultBlockSize
	}
	if o.MaxBlocks <= 0 {
		o.MaxBlocks = DefaultMaxBlocks
	}
	if o.MinBlocks <= 0 {
		o.MinBlocks = DefaultMinBlocks
	}
	return o
}

// ReadSize returns the bytes requested per read for an input of the given
// length. A length <= 0 means unknown.
func (o StreamOptions) ReadSize(length int64) int {
	o = o.withDefaults()
	if length > 0 {
		return int(min(length, int64(o.MaxBlocks)*int64(o.BlockSize)))
	}
	return o.MinBlocks * o.BlockSize
}

// Stream converts a path list read from a file, one block at a time.
// Bytes of a path split across reads are carried to the front of the
// buffer. Once Exhausted or Failed, a Stream yields nothing more.
type Stream struct {
	r      io.Reader
	closer io.Closer
	bulk   *Bulk
	block  int

	buf      []byte
	n        int // valid bytes in buf
	consumed int // bytes of buf already converted
	paths    int // paths yielded so far
	state    State
	err      error
}

// Open opens the named file for streaming. The Stream owns the file.
func Open(name string, bulk *Bulk, opts StreamOptions) (*Stream, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	s, err := FromFile(f, bulk, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// FromFile streams an already open file such as os.Stdin. Closing the
// Stream does not close f.
func FromFile(f *os.File, bulk *Bulk, opts StreamOptions) (*Stream, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrIsDirectory)
	}
	length := int64(-1)
	if info.Mode().IsRegular() {
		length = info.Size()
	}
	return NewStream(f, length, bulk, opts), nil
}

// NewStream streams r, whose total length is length or <= 0 if unknown.
func NewStream(r io.Reader, length int64, bulk *Bulk, opts StreamOptions) *Stream {
	return &Stream{r: r, bulk: bulk, block: opts.ReadSize(length)}
}

// State returns the current lifecycle state.
func (s *Stream) State() State {
	return s.state
}

// Next reads one block and converts the complete paths it finishes.
//
// It returns io.EOF once the input is exhausted, and the read error once a
// read has failed. A path left unterminated at the end of the input is not
// converted; see Tail and ConvertTail. Result.Output is valid until the
// next call.
func (s *Stream) Next() (Result, error) {
	switch s.state {
	case Exhausted:
		return Result{}, io.EOF
	case Failed:
		return Result{}, s.err
	}
	s.state = Reading

	if s.consumed > 0 {
		s.n = copy(s.buf, s.buf[s.consumed:s.n])
		s.consumed = 0
	}
	s.buf = slices.Grow(s.buf[:s.n], s.block)

	m, err := s.r.Read(s.buf[s.n : s.n+s.block])
	// a failed read yields no result, so bytes returned with the error are
	// dropped along with the rest of the input
	if err != nil && !errors.Is(err, io.EOF) {
		s.state = Failed
		s.err = err
		return Result{}, err
	}

	if m == 0 {
		s.state = Exhausted
		return Result{}, io.EOF
	}

	s.n += m
	s.buf = s.buf[:s.n]
	res := s.convert()
	s.state = Yielding
	return res, nil
}

func (s *Stream) convert() Result {
	res := s.bulk.Convert(s.buf)
	for _, pe := range res.Errors {
		pe.Index += s.paths
	}
	s.paths += res.Paths
	s.consumed = res.Remainder
	return res
}

// Tail returns the bytes after the last separator once the Stream is
// Exhausted: an unterminated final path, or nil.
func (s *Stream) Tail() []byte {
	if s.state != Exhausted || s.consumed >= s.n {
		return nil
	}
	return s.buf[s.consumed:s.n]
}

// ConvertTail converts Tail as if it were terminated. Error indices
// continue from the paths already yielded. It returns an empty Result
// when there is no tail.
func (s *Stream) ConvertTail() Result {
	tail := s.Tail()
	if len(tail) == 0 {
		return Result{}
	}
	buf := s.bulk.Input.Append(slices.Clone(tail))
	res := s.bulk.Convert(buf)
	for _, pe := range res.Errors {
		pe.Index += s.paths
	}
	s.paths += res.Paths
	s.consumed = s.n
	return res
}

// All returns an iterator over the remaining results. The iterator stops
// after the first error and closes the Stream when it returns.
func (s *Stream) All() iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		defer s.Close()
		for {
			res, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(res, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the file opened by Open.
func (s *Stream) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}

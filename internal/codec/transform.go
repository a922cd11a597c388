package codec

import (
	"errors"

	"golang.org/x/text/transform"
)

// Decoder turns the remainder of a Windows path into WSL form: escapes
// become their raw byte and the Windows separator becomes '/'. Any other
// byte that is illegal on Windows is rejected.
//
// The Offset of a returned *IllegalByteError is relative to the src passed
// to that Transform call.
type Decoder struct {
	Separator Separator
}

var _ transform.Transformer = Decoder{}

// Reset implements transform.Transformer. Decoder is stateless.
func (Decoder) Reset() {}

// Transform implements transform.Transformer.
func (d Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c == escapeLead {
			if !atEOF && len(src)-nSrc < EscapeLen {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if b, ok := Unescape(src[nSrc:]); ok {
				if b == 0 {
					return nDst, nSrc, &IllegalByteError{Byte: 0, Class: Null, Offset: nSrc}
				}
				if nDst >= len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				dst[nDst] = b
				nDst++
				nSrc += EscapeLen
				continue
			}
		}

		switch class := Classify(c); {
		case class == Legal:
		case c == d.Separator.Byte():
			c = '/'
		default:
			return nDst, nSrc, &IllegalByteError{Byte: c, Class: class, Offset: nSrc}
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}

// Encoder is the inverse of Decoder: it turns the remainder of a WSL path
// into Windows form. '/' becomes the Windows separator and every other byte
// that is illegal on Windows is escaped. NUL is rejected.
type Encoder struct {
	Separator Separator
}

var _ transform.Transformer = Encoder{}

// Reset implements transform.Transformer. Encoder is stateless.
func (Encoder) Reset() {}

// Transform implements transform.Transformer.
func (e Encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for ; nSrc < len(src); nSrc++ {
		c := src[nSrc]
		switch Classify(c) {
		case Null:
			return nDst, nSrc, &IllegalByteError{Byte: 0, Class: Null, Offset: nSrc}
		case ForwardSlash:
			c = e.Separator.Byte()
		case Legal:
		default:
			if len(dst)-nDst < EscapeLen {
				return nDst, nSrc, transform.ErrShortDst
			}
			seq, _ := Escape(c)
			nDst += copy(dst[nDst:], seq[:])
			continue
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
	}
	return nDst, nSrc, nil
}

// Decode appends the WSL form of the Windows path fragment src to dst.
// On error the returned *IllegalByteError carries the offset into src.
func Decode(dst, src []byte, sep Separator) ([]byte, error) {
	out, n, err := transform.Append(Decoder{Separator: sep}, dst, src)
	return out, rebase(err, n)
}

// Encode appends the Windows form of the WSL path fragment src to dst.
func Encode(dst, src []byte, sep Separator) ([]byte, error) {
	out, n, err := transform.Append(Encoder{Separator: sep}, dst, src)
	return out, rebase(err, n)
}

// rebase points an IllegalByteError at the absolute source offset. Append
// reports the number of bytes consumed before the failing byte, which is
// exactly that offset.
func rebase(err error, consumed int) error {
	var ie *IllegalByteError
	if errors.As(err, &ie) {
		ie.Offset = consumed
	}
	return err
}

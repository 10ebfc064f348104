package untrust

import (
	"encoding/binary"
	"io"
	"math"
)

// The error type used to indicate the end of the input was reached before the operation could be completed.
var ErrEndOfInput = io.ErrUnexpectedEOF

// A read-only, forward-only cursor into the data in an Input.
type Reader struct {
	b []byte
	i int
}

// Construct a new Reader for the given input.
func NewReader(i Input) *Reader { return &Reader{b: i, i: 0} }

func (r *Reader) GoString() string { return "Reader" }

// Returns a copy of the Reader.
func (r *Reader) Clone() *Reader { return &Reader{b: r.b, i: r.i} }

// Returns true if the reader is at the end of the input, and false otherwise.
func (r *Reader) AtEnd() bool { return r.i == len(r.b) }

// Returns the number of bytes left to read.
func (r *Reader) Remaining() int { return len(r.b) - r.i }

// Reads the next input byte.
func (r *Reader) ReadByte() (byte, error) {
	if len(r.b) <= r.i {
		return 0, ErrEndOfInput
	}

	b := r.b[r.i]
	r.i++

	return b, nil
}

// Reads the next 4 input bytes as a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

// Skips n bytes of the input, returning the skipped input as an Input.
func (r *Reader) ReadBytes(n int) (Input, error) {
	if n < 0 || r.i > math.MaxInt-n {
		return nil, ErrEndOfInput
	}

	i := r.i + n

	if len(r.b) < i {
		r.i = len(r.b)

		return nil, ErrEndOfInput
	}

	b := r.b[r.i:i]
	r.i = i

	return Input(b), nil
}

// Skips the reader to the end of the input, returning the skipped input as an `Input`.
func (r *Reader) ReadBytesToEnd() (Input, error) {
	return r.ReadBytes(len(r.b) - r.i)
}

// Skips n bytes of the input.
func (r *Reader) Skip(n int) error {
	_, err := r.ReadBytes(n)

	return err
}

package wire

import (
	"encoding/binary"

	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/fifo"
)

// Writer is the serialization surface handed to content serializers
// (§4.B). It appends length-prefixed elements, fixed-width integers,
// fixed-width identifiers, and length-prefixed lists to a fifo.Buffer.
type Writer struct {
	buf *fifo.Buffer
}

// NewWriter wraps buf for writing. buf is typically fresh, but wrapping an
// in-progress buffer is valid too.
func NewWriter(buf *fifo.Buffer) *Writer { return &Writer{buf: buf} }

// Buffer returns the underlying FIFO, e.g. once serialization is complete
// and the caller wants its byte length or to hand it to a Sender.
func (w *Writer) Buffer() *fifo.Buffer { return w.buf }

// AddElement appends a length-prefixed opaque blob.
func (w *Writer) AddElement(b []byte) {
	var lb [4]byte
	binary.BigEndian.PutUint32(lb[:], uint32(len(b)))
	w.buf.Push(lb[:])
	if len(b) > 0 {
		w.buf.Push(b)
	}
}

// AddInt appends a fixed-width big-endian integer.
func (w *Writer) AddInt(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf.Push(b[:])
}

// AddIdentifier appends a fixed-width ASCII token, zero-padded to exactly
// n bytes. Returns errs.SerializationError if s does not fit in n bytes;
// it is never truncated.
func (w *Writer) AddIdentifier(s string, n int) error {
	if len(s) > n {
		return errs.NewSerializationError("identifier %q exceeds fixed width %d", s, n)
	}
	b := make([]byte, n)
	copy(b, s)
	w.buf.Push(b)
	return nil
}

// AddByte appends a single raw byte, with no length prefix.
func (w *Writer) AddByte(b byte) {
	w.buf.Push([]byte{b})
}

// AddList appends a length-prefixed sequence of elements.
func (w *Writer) AddList(elems [][]byte) {
	w.AddInt(int32(len(elems)))
	for _, e := range elems {
		w.AddElement(e)
	}
}

// Reader consumes a Writer's encoding back off a fifo.Buffer.
type Reader struct {
	buf *fifo.Buffer
}

// NewReader wraps buf for reading; buf is consumed as elements are read.
func NewReader(buf *fifo.Buffer) *Reader { return &Reader{buf: buf} }

func (r *Reader) readN(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, 0, n)
	for len(out) < n {
		chunk, got := r.buf.Pop(n - len(out))
		if got == 0 {
			return nil, errs.NewSerializationError("buffer underrun: wanted %d bytes, got %d", n, len(out))
		}
		out = append(out, chunk...)
	}
	return out, nil
}

// GetElement reads back a length-prefixed opaque blob.
func (r *Reader) GetElement() ([]byte, error) {
	lb, err := r.readN(4)
	if err != nil {
		return nil, err
	}
	l := int(binary.BigEndian.Uint32(lb))
	return r.readN(l)
}

// GetInt reads back a fixed-width big-endian integer.
func (r *Reader) GetInt() (int32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// GetIdentifier reads back a fixed-width ASCII token of width n, trimming
// trailing zero padding.
func (r *Reader) GetIdentifier(n int) (string, error) {
	b, err := r.readN(n)
	if err != nil {
		return "", err
	}
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	return string(b[:i]), nil
}

// GetByte reads back a single raw byte written by AddByte.
func (r *Reader) GetByte() (byte, error) {
	b, err := r.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// GetList reads back a length-prefixed sequence of elements.
func (r *Reader) GetList() ([][]byte, error) {
	count, err := r.GetInt()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, count)
	for i := int32(0); i < count; i++ {
		e, err := r.GetElement()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

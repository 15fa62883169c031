package qmc

import (
	"io"
)

// Reader extends io.Reader, but also provides a way to reuse the keystream with a different source.
type Reader interface {
	io.Reader
	// Reset will use the provided io.Reader and reset the keystream position to 0.
	Reset(source io.Reader)
	// Offset returns the absolute position of the next byte to be read.
	Offset() uint64
}

// Writer extends io.Writer, but also provides a way to reuse the keystream with a different target.
type Writer interface {
	io.Writer
	// Reset will use the provided io.Writer and reset the keystream position to 0.
	Reset(target io.Writer)
	// Offset returns the absolute position of the next byte to be written.
	Offset() uint64
}

var _ Reader = (*reader)(nil)

type reader struct {
	source io.Reader
	mask   Masker
	offset uint64
}

// NewReader constructs a Reader that will unmask (or mask) all bytes read from r.
// The keystream starts at position 0.
func NewReader(r io.Reader, opts ...TransformOpt) (Reader, error) {
	t, err := NewTransformer(opts...)
	if err != nil {
		return nil, err
	}
	return &reader{
		source: r,
		mask:   t.mask,
	}, nil
}

func (r *reader) Read(out []byte) (n int, err error) {
	n, err = r.source.Read(out)
	Apply(out[:n], r.offset, r.mask)
	r.offset += uint64(n)
	return n, err
}

func (r *reader) Reset(source io.Reader) {
	r.source = source
	r.offset = 0
}

func (r *reader) Offset() uint64 {
	return r.offset
}

var _ Writer = (*writer)(nil)

type writer struct {
	target io.Writer
	mask   Masker
	offset uint64
	buf    []byte
}

// NewWriter constructs a Writer that will mask (or unmask) all bytes before writing them to target.
// The keystream starts at position 0.
func NewWriter(target io.Writer, opts ...TransformOpt) (Writer, error) {
	t, err := NewTransformer(opts...)
	if err != nil {
		return nil, err
	}
	return &writer{
		target: target,
		mask:   t.mask,
	}, nil
}

func (w *writer) Write(in []byte) (n int, err error) {
	if cap(w.buf) < len(in) {
		w.buf = make([]byte, len(in))
	}
	buf := w.buf[:len(in)]
	copy(buf, in)
	Apply(buf, w.offset, w.mask)
	n, err = w.target.Write(buf)
	w.offset += uint64(n)
	return n, err
}

func (w *writer) Reset(target io.Writer) {
	w.target = target
	w.offset = 0
}

func (w *writer) Offset() uint64 {
	return w.offset
}

package qmc

import (
	"errors"
	"fmt"
	"io"
)

const (
	DefaultChunkSize = 1 << 20
	// MaxChunkSize is the largest buffer a Transformer will allocate.
	MaxChunkSize = 1 << 30
)

var (
	ErrInvalidChunkSize = errors.New("invalid chunk size")
)

// Transformer applies the keystream to a whole stream, one chunk at a time.
// A Transformer holds no per-stream state, so it may be shared between goroutines transforming different streams.
type Transformer struct {
	chunkSize int
	mask      Masker
}

// TransformOpt operates on a Transformer in NewTransformer.
// If any TransformOpt returns an error, then construction stops and the error is returned.
type TransformOpt = func(*Transformer) error

// ChunkSize sets the number of bytes read from the source at a time.
func ChunkSize(size int) TransformOpt {
	return func(t *Transformer) error {
		if err := ValidateChunkSize(size); err != nil {
			return err
		}
		t.chunkSize = size
		return nil
	}
}

// UseLegacyWrap selects LegacyMask, which is required to exactly reverse files produced by the original qmc-decode tool.
// Passing false selects Mask, which is the default.
func UseLegacyWrap(val bool) TransformOpt {
	return func(t *Transformer) error {
		if val {
			t.mask = LegacyMask
			return nil
		}
		t.mask = Mask
		return nil
	}
}

// ValidateChunkSize returns ErrInvalidChunkSize if size is not in the range 1 to MaxChunkSize.
func ValidateChunkSize(size int) error {
	if size <= 0 || size > MaxChunkSize {
		return fmt.Errorf("%w: got %d, must be between 1 and %d", ErrInvalidChunkSize, size, MaxChunkSize)
	}
	return nil
}

// NewTransformer creates a Transformer with the given options.
// By default, DefaultChunkSize and Mask are used.
func NewTransformer(opts ...TransformOpt) (*Transformer, error) {
	t := &Transformer{
		chunkSize: DefaultChunkSize,
		mask:      Mask,
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Transform reads src to the end, applying the keystream starting at offset 0, and writes the result to dst.
// The number of bytes written to dst is returned.
// Neither src nor dst is closed.
// If a write fails part way through, whatever was written to dst before the failure stays there.
func (t *Transformer) Transform(dst io.Writer, src io.Reader) (int64, error) {
	var (
		buf    = make([]byte, t.chunkSize)
		offset uint64
	)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			Apply(buf[:n], offset, t.mask)
			written, werr := dst.Write(buf[:n])
			offset += uint64(written)
			if werr != nil {
				return int64(offset), fmt.Errorf("write: %w", werr)
			}
			if written != n {
				return int64(offset), fmt.Errorf("write: %w", io.ErrShortWrite)
			}
		}
		switch {
		case errors.Is(rerr, io.EOF):
			return int64(offset), nil
		case rerr != nil:
			return int64(offset), fmt.Errorf("read: %w", rerr)
		case n == 0:
			return int64(offset), nil
		}
	}
}

// Transform is a shortcut for creating a Transformer with the given chunk size and calling Transform with it.
func Transform(dst io.Writer, src io.Reader, chunkSize int) (int64, error) {
	t, err := NewTransformer(ChunkSize(chunkSize))
	if err != nil {
		return 0, err
	}
	return t.Transform(dst, src)
}

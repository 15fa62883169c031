package qmc

import (
	"bytes"
	"errors"
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T, size int) []byte {
	t.Helper()
	data := make([]byte, size)
	rand.New(rand.NewSource(int64(size))).Read(data)
	return data
}

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

type failingWriter struct {
	after int
	n     int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > w.after {
		return 0, errors.New("disk full")
	}
	w.n += len(p)
	return len(p), nil
}

type failingReader struct {
	data []byte
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, errors.New("device went away")
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestNewTransformer(t *testing.T) {
	tr, err := NewTransformer()
	assert.NoError(t, err)
	assert.Equal(t, DefaultChunkSize, tr.chunkSize)

	tr, err = NewTransformer(ChunkSize(64), UseLegacyWrap(true))
	assert.NoError(t, err)
	assert.Equal(t, 64, tr.chunkSize)
	assert.Equal(t, LegacyMask(legacyPositionWrap), tr.mask(legacyPositionWrap))

	tr, err = NewTransformer(UseLegacyWrap(false))
	assert.NoError(t, err)
	assert.Equal(t, Mask(legacyPositionWrap), tr.mask(legacyPositionWrap))
}

func TestNewTransformer_Neg(t *testing.T) {
	_, err := NewTransformer(ChunkSize(0))
	assert.ErrorIs(t, err, ErrInvalidChunkSize)
	_, err = NewTransformer(ChunkSize(-1))
	assert.ErrorIs(t, err, ErrInvalidChunkSize)
	_, err = NewTransformer(ChunkSize(MaxChunkSize + 1))
	assert.ErrorIs(t, err, ErrInvalidChunkSize)
	_, err = NewTransformer(ChunkSize(math.MaxInt))
	assert.ErrorIs(t, err, ErrInvalidChunkSize)
	_, err = Transform(io.Discard, bytes.NewReader(nil), 0)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)

	assert.NoError(t, ValidateChunkSize(1))
	assert.NoError(t, ValidateChunkSize(MaxChunkSize))
}

func TestTransform_Known(t *testing.T) {
	var out bytes.Buffer
	n, err := Transform(&out, bytes.NewReader([]byte{0x00, 0x01, 0x02}), DefaultChunkSize)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, []byte{0xC3, 0x4B, 0xD4}, out.Bytes())
}

func TestTransform_Empty(t *testing.T) {
	var out countingWriter
	n, err := Transform(&out, bytes.NewReader(nil), 16)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, 0, out.writes)
	assert.Equal(t, 0, out.Len())
}

func TestTransform_RoundTrip(t *testing.T) {
	data := sample(t, 1000)
	for _, size := range []int{1, 3, 64, 127, 128, 129, 999, 1000, 4096} {
		var masked, unmasked bytes.Buffer
		_, err := Transform(&masked, bytes.NewReader(data), size)
		require.NoError(t, err)
		assert.NotEqual(t, data, masked.Bytes())

		n, err := Transform(&unmasked, &masked, size)
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), n)
		assert.Equal(t, data, unmasked.Bytes(), "chunk size %d", size)
	}
}

func TestTransform_ChunkInvariance(t *testing.T) {
	data := sample(t, 200)
	var whole bytes.Buffer
	_, err := Transform(&whole, bytes.NewReader(data), 200)
	require.NoError(t, err)

	tests := map[string]int{
		"Single byte":      1,
		"Odd size":         7,
		"Straddles period": 64,
		"Period":           KeySize,
		"Larger than data": 1 << 12,
	}
	for name, size := range tests {
		t.Run(name, func(t *testing.T) {
			var out countingWriter
			n, err := Transform(&out, bytes.NewReader(data), size)
			assert.NoError(t, err)
			assert.Equal(t, int64(len(data)), n)
			assert.Equal(t, whole.Bytes(), out.Bytes())
			assert.Equal(t, (len(data)+size-1)/size, out.writes)
		})
	}
}

func TestTransform_LegacyWrap(t *testing.T) {
	data := make([]byte, legacyPositionWrap+KeySize)
	tr, err := NewTransformer(ChunkSize(1000), UseLegacyWrap(true))
	require.NoError(t, err)

	var legacy, current bytes.Buffer
	_, err = tr.Transform(&legacy, bytes.NewReader(data))
	require.NoError(t, err)
	_, err = Transform(&current, bytes.NewReader(data), 1000)
	require.NoError(t, err)

	assert.Equal(t, current.Bytes()[:legacyPositionWrap], legacy.Bytes()[:legacyPositionWrap])
	assert.NotEqual(t, current.Bytes()[legacyPositionWrap:], legacy.Bytes()[legacyPositionWrap:])
	assert.Equal(t, keyTable[:], legacy.Bytes()[legacyPositionWrap:])
}

func TestTransform_WriteError(t *testing.T) {
	data := sample(t, 100)
	w := &failingWriter{after: 64}
	n, err := Transform(w, bytes.NewReader(data), 32)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, int64(64), n)
}

func TestTransform_ReadError(t *testing.T) {
	var out bytes.Buffer
	n, err := Transform(&out, &failingReader{data: sample(t, 10)}, 4)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "device went away")
	assert.Equal(t, int64(10), n)
	assert.Equal(t, 10, out.Len())
}

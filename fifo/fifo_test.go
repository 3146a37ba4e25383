package fifo_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/cloudrobotics/relaycore/fifo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopOrder(t *testing.T) {
	f := fifo.New()
	f.Push([]byte("hello "))
	f.Push([]byte("world"))
	require.Equal(t, 11, f.Len())

	chunk, n := f.Pop(5)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(chunk))
	assert.False(t, f.Empty())

	chunk, n = f.Pop(100)
	assert.Equal(t, 6, n)
	assert.Equal(t, " world", string(chunk))
	assert.True(t, f.Empty())
}

func TestPopNeverExceedsLimit(t *testing.T) {
	f := fifo.New()
	f.Push(bytes.Repeat([]byte{'x'}, 10))
	_, n := f.Pop(3)
	assert.LessOrEqual(t, n, 3)
}

// Chunking transparency (spec.md §8 invariant 2): splitting an arbitrary
// byte stream into arbitrary chunks and pushing it through a Buffer must
// reproduce the exact original sequence, regardless of how the chunk
// boundaries fall.
func TestChunkingTransparency(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	want := make([]byte, 10007)
	rng.Read(want)

	f := fifo.New()
	for off := 0; off < len(want); {
		n := 1 + rng.Intn(97)
		if off+n > len(want) {
			n = len(want) - off
		}
		f.Push(want[off : off+n])
		off += n
	}

	var got []byte
	for !f.Empty() {
		limit := 1 + rng.Intn(53)
		chunk, n := f.Pop(limit)
		require.LessOrEqual(t, n, limit)
		got = append(got, chunk[:n]...)
	}
	assert.Equal(t, want, got)
}

func TestEmptyPop(t *testing.T) {
	f := fifo.New()
	chunk, n := f.Pop(10)
	assert.Nil(t, chunk)
	assert.Equal(t, 0, n)
}

package collections_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/walteh/gotex/pkg/collections"
)

func TestRingBufferPushPop(t *testing.T) {
	rb := collections.NewRingBuffer[int](3)
	require.True(t, rb.Empty())
	require.Equal(t, 3, rb.Cap())

	require.True(t, rb.Push(1))
	require.True(t, rb.Push(2))
	require.True(t, rb.Push(3))
	require.True(t, rb.Full())
	require.False(t, rb.Push(4), "push into a full buffer should fail")

	v, ok := rb.Pop()
	require.True(t, ok)
	require.Equal(t, 1, v)

	require.True(t, rb.Push(4), "space freed by pop should be reusable")

	for _, want := range []int{2, 3, 4} {
		v, ok := rb.Pop()
		require.True(t, ok)
		require.Equal(t, want, v)
	}

	_, ok = rb.Pop()
	require.False(t, ok)
	require.True(t, rb.Empty())
}

func TestRingBufferWrapAround(t *testing.T) {
	rb := collections.NewRingBuffer[string](2)
	for i := 0; i < 10; i++ {
		require.True(t, rb.Push("a"))
		require.True(t, rb.Push("b"))

		v, ok := rb.At(1)
		require.True(t, ok)
		require.Equal(t, "b", v)

		v, _ = rb.Pop()
		require.Equal(t, "a", v)
		v, _ = rb.Pop()
		require.Equal(t, "b", v)
	}
}

func TestRingBufferAtOutOfRange(t *testing.T) {
	rb := collections.NewRingBuffer[int](2)
	rb.Push(7)

	_, ok := rb.At(1)
	require.False(t, ok)
	_, ok = rb.At(-1)
	require.False(t, ok)
}

func sliceSource[T any](items []T) func() (T, bool) {
	i := 0
	return func() (T, bool) {
		var zero T
		if i >= len(items) {
			return zero, false
		}
		v := items[i]
		i++
		return v, true
	}
}

func TestPeekIterPeekDoesNotConsume(t *testing.T) {
	it := collections.NewPeekIter(4, sliceSource([]int{10, 20, 30}))

	for i := 0; i < 3; i++ {
		v, ok := it.Peek()
		require.True(t, ok)
		require.Equal(t, 10, v, "repeated peeks should see the same element")
	}

	v, ok := it.PeekNth(2)
	require.True(t, ok)
	require.Equal(t, 30, v)

	_, ok = it.PeekNth(3)
	require.False(t, ok, "peek past the end of the source")

	for _, want := range []int{10, 20, 30} {
		v, ok := it.Next()
		require.True(t, ok)
		require.Equal(t, want, v)
	}
	_, ok = it.Next()
	require.False(t, ok)
}

func TestPeekIterBeyondCapacityPanics(t *testing.T) {
	it := collections.NewPeekIter(2, sliceSource([]int{1, 2, 3, 4}))
	require.Panics(t, func() { it.PeekNth(2) })
}

func TestPeekIterInterleaved(t *testing.T) {
	it := collections.NewPeekIter(2, sliceSource([]rune("abcd")))

	v, _ := it.Next()
	require.Equal(t, 'a', v)

	p1, _ := it.PeekNth(1)
	require.Equal(t, 'c', p1)

	v, _ = it.Next()
	require.Equal(t, 'b', v)
	v, _ = it.Next()
	require.Equal(t, 'c', v)

	p0, ok := it.Peek()
	require.True(t, ok)
	require.Equal(t, 'd', p0)

	v, _ = it.Next()
	require.Equal(t, 'd', v)
	_, ok = it.Next()
	require.False(t, ok)
}

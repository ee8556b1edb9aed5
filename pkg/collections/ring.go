// Package collections provides small fixed-capacity containers used by
// the token pipeline.
package collections

// RingBuffer is a fixed-capacity FIFO queue backed by a single
// preallocated slice. Push fails once the buffer is full; it never
// grows.
type RingBuffer[T any] struct {
	buf  []T
	head int
	size int
}

func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity <= 0 {
		panic("collections: ring buffer capacity must be positive")
	}
	return &RingBuffer[T]{buf: make([]T, capacity)}
}

func (me *RingBuffer[T]) Cap() int {
	return len(me.buf)
}

func (me *RingBuffer[T]) Len() int {
	return me.size
}

func (me *RingBuffer[T]) Empty() bool {
	return me.size == 0
}

func (me *RingBuffer[T]) Full() bool {
	return me.size == len(me.buf)
}

// Push appends v at the tail, reporting whether there was room.
func (me *RingBuffer[T]) Push(v T) bool {
	if me.Full() {
		return false
	}
	me.buf[(me.head+me.size)%len(me.buf)] = v
	me.size++
	return true
}

// Pop removes and returns the head element.
func (me *RingBuffer[T]) Pop() (T, bool) {
	var zero T
	if me.size == 0 {
		return zero, false
	}
	v := me.buf[me.head]
	me.buf[me.head] = zero
	me.head = (me.head + 1) % len(me.buf)
	me.size--
	return v, true
}

// At returns the n-th element from the head without removing it.
func (me *RingBuffer[T]) At(n int) (T, bool) {
	var zero T
	if n < 0 || n >= me.size {
		return zero, false
	}
	return me.buf[(me.head+n)%len(me.buf)], true
}

package collections

// PeekIter adds bounded O(1) lookahead to a pull-style source. Peeked
// elements are parked in a ring buffer until consumed, so PeekNth(n)
// never re-reads the source and never looks further than the buffer
// capacity.
type PeekIter[T any] struct {
	source func() (T, bool)
	buf    *RingBuffer[T]
	done   bool
}

func NewPeekIter[T any](capacity int, source func() (T, bool)) *PeekIter[T] {
	return &PeekIter[T]{source: source, buf: NewRingBuffer[T](capacity)}
}

func (me *PeekIter[T]) fill(want int) {
	for me.buf.Len() < want && !me.done {
		v, ok := me.source()
		if !ok {
			me.done = true
			return
		}
		if !me.buf.Push(v) {
			return
		}
	}
}

// Peek returns the next element without consuming it.
func (me *PeekIter[T]) Peek() (T, bool) {
	return me.PeekNth(0)
}

// PeekNth returns the element n positions ahead (0-based) without
// consuming anything. n must be below the buffer capacity.
func (me *PeekIter[T]) PeekNth(n int) (T, bool) {
	if n >= me.buf.Cap() {
		panic("collections: peek distance exceeds lookahead capacity")
	}
	me.fill(n + 1)
	return me.buf.At(n)
}

// Next consumes and returns the next element.
func (me *PeekIter[T]) Next() (T, bool) {
	me.fill(1)
	return me.buf.Pop()
}

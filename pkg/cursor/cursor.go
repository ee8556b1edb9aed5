// Package cursor walks source text one grapheme cluster at a time.
//
// All scanning in the token pipeline goes through a Cursor so that a
// token boundary can never split a user-perceived character: a cluster
// is either consumed whole or not at all. Byte positions reported by
// the cursor therefore always land on cluster boundaries.
package cursor

import (
	"github.com/apparentlymart/go-textseg/v13/textseg"
)

// Cursor is a forward scanner over an immutable source string with
// consumed-length tracking for token assembly. The zero value is not
// usable; construct with New.
type Cursor struct {
	src string
	bs  []byte
	pos int

	// bytes consumed since the last ResetTokenLen
	tokenLen int
}

func New(src string) *Cursor {
	return &Cursor{src: src, bs: []byte(src)}
}

// Peek returns the next grapheme cluster without consuming it. The
// second return is false once the input is exhausted.
func (me *Cursor) Peek() (string, bool) {
	if me.pos >= len(me.src) {
		return "", false
	}
	advance, _, err := textseg.ScanGraphemeClusters(me.bs[me.pos:], true)
	if err != nil || advance == 0 {
		return "", false
	}
	return me.src[me.pos : me.pos+advance], true
}

// Bump consumes one grapheme cluster, accumulating its byte length
// into the current token. It reports whether anything was consumed.
func (me *Cursor) Bump() bool {
	cluster, ok := me.Peek()
	if !ok {
		return false
	}
	me.pos += len(cluster)
	me.tokenLen += len(cluster)
	return true
}

// Advance consumes exactly n bytes. n must cover whole grapheme
// clusters; anything else is a caller bug.
func (me *Cursor) Advance(n int) {
	target := me.pos + n
	for me.pos < target {
		if !me.Bump() {
			panic("cursor: advance past end of input")
		}
	}
	if me.pos != target {
		panic("cursor: advance split a grapheme cluster")
	}
}

// Rewind moves the position back n bytes, giving the bytes back to the
// input. The caller must only rewind over whole clusters it consumed.
func (me *Cursor) Rewind(n int) {
	if n > me.pos || n > me.tokenLen {
		panic("cursor: rewind past token start")
	}
	me.pos -= n
	me.tokenLen -= n
}

// EatWhile consumes clusters while pred holds or input ends, returning
// the number of bytes consumed.
func (me *Cursor) EatWhile(pred func(cluster string) bool) int {
	consumed := 0
	for {
		cluster, ok := me.Peek()
		if !ok || !pred(cluster) {
			return consumed
		}
		me.pos += len(cluster)
		me.tokenLen += len(cluster)
		consumed += len(cluster)
	}
}

// Pos is the absolute byte offset of the next unread cluster.
func (me *Cursor) Pos() int {
	return me.pos
}

// TokenLen is the byte length accumulated since the last reset.
func (me *Cursor) TokenLen() int {
	return me.tokenLen
}

// ResetTokenLen closes the current token: the accumulated length is
// returned and the counter starts over at the current position.
func (me *Cursor) ResetTokenLen() int {
	n := me.tokenLen
	me.tokenLen = 0
	return n
}

// Rest returns the unread remainder of the source.
func (me *Cursor) Rest() string {
	return me.src[me.pos:]
}

// Done reports whether the input is exhausted.
func (me *Cursor) Done() bool {
	return me.pos >= len(me.src)
}

// FirstCluster returns the first grapheme cluster of s, or "" when s
// is empty. It lets callers look past the cluster a Cursor has already
// handed them without constructing a second cursor.
func FirstCluster(s string) string {
	if s == "" {
		return ""
	}
	advance, _, err := textseg.ScanGraphemeClusters([]byte(s), true)
	if err != nil || advance == 0 {
		return ""
	}
	return s[:advance]
}

package preparse

// TokenIter walks the syntax tokens of a LexedStr. Its notion of
// "current" is the index of the next unconsumed token: a marker taken
// before consuming token k and resolved after consuming n tokens
// covers exactly [k, k+n). The end-of-input sentinel is peekable but
// never consumed, so the iterator parks there.
type TokenIter struct {
	lexed  *LexedStr
	pos    int
	frames []spliceFrame
}

// spliceFrame is a layer of substituted tokens served ahead of the
// underlying stream.
type spliceFrame struct {
	tokens []SyntaxKind
	pos    int
}

// IterFrom positions an iterator on lexed with start as the index of
// the next token to consume.
func IterFrom(lexed *LexedStr, start int) *TokenIter {
	if start < 0 {
		start = 0
	}
	return &TokenIter{lexed: lexed, pos: start}
}

// Index is the index of the next unconsumed token in the underlying
// stream. Splice frames do not move it.
func (me *TokenIter) Index() int {
	return me.pos
}

// Peek returns the next token without consuming it.
func (me *TokenIter) Peek() SyntaxKind {
	return me.PeekNth(0)
}

// PeekNth returns the token n positions ahead without consuming
// anything, n counted from zero. Active splice frames are peeked
// through before the underlying stream.
func (me *TokenIter) PeekNth(n int) SyntaxKind {
	for i := len(me.frames) - 1; i >= 0; i-- {
		frame := &me.frames[i]
		remaining := len(frame.tokens) - frame.pos
		if n < remaining {
			return frame.tokens[frame.pos+n]
		}
		n -= remaining
	}
	idx := me.pos + n
	if idx >= me.lexed.Len()-1 {
		return SynEof
	}
	return me.lexed.KindAt(idx)
}

// Next consumes and returns one token. At the end of input it keeps
// returning SynEof without moving.
func (me *TokenIter) Next() SyntaxKind {
	for len(me.frames) > 0 {
		frame := &me.frames[len(me.frames)-1]
		if frame.pos < len(frame.tokens) {
			kind := frame.tokens[frame.pos]
			frame.pos++
			if frame.pos == len(frame.tokens) {
				me.frames = me.frames[:len(me.frames)-1]
			}
			return kind
		}
		me.frames = me.frames[:len(me.frames)-1]
	}
	if me.pos >= me.lexed.Len()-1 {
		return SynEof
	}
	kind := me.lexed.KindAt(me.pos)
	me.pos++
	return kind
}

// AdvanceWhile consumes tokens as long as pred holds and returns how
// many were consumed. The end-of-input sentinel stops it regardless
// of pred.
func (me *TokenIter) AdvanceWhile(pred func(SyntaxKind) bool) int {
	n := 0
	for {
		kind := me.Peek()
		if kind == SynEof || !pred(kind) {
			return n
		}
		me.Next()
		n++
	}
}

// SkipTrivia consumes whitespace, newlines and comments. Paragraph
// breaks are not trivia and stop the skip.
func (me *TokenIter) SkipTrivia() int {
	return me.AdvanceWhile(func(kind SyntaxKind) bool { return kind.IsTrivia() })
}

// Marker pins the index of the next token to consume, for resolving
// into a TokenRange later. The zero Marker is invalid.
type Marker struct {
	idx int
	ok  bool
}

// Mark pins the current position. Markers index the underlying
// stream, so taking one while a splice frame is active is a bug.
func (me *TokenIter) Mark() Marker {
	if len(me.frames) > 0 {
		panic("preparse: marker taken inside a splice frame")
	}
	return Marker{idx: me.pos, ok: true}
}

// RangeFrom resolves a marker against the current position into the
// half-open token range [marker, current).
func (me *TokenIter) RangeFrom(m Marker) TokenRange {
	if !m.ok {
		panic("preparse: range resolved from invalid marker")
	}
	end := me.pos
	if end < m.idx {
		end = m.idx
	}
	return TokenRange{Start: m.idx, End: end}
}

// Text returns the source text covered by a token range.
func (me *TokenIter) Text(r TokenRange) (string, bool) {
	return me.lexed.TextRange(r)
}

// Splice layers tokens over the stream. They are consumed before the
// underlying tokens and the frame removes itself once drained. Frames
// nest; an empty splice is a no-op.
func (me *TokenIter) Splice(tokens []SyntaxKind) {
	if len(tokens) == 0 {
		return
	}
	me.frames = append(me.frames, spliceFrame{tokens: tokens})
}

// InSplice reports whether any splice frame is still active.
func (me *TokenIter) InSplice() bool {
	return len(me.frames) > 0
}

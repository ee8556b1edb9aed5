package preparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/walteh/gotex/pkg/preparse"
)

func TestTokenIterBasics(t *testing.T) {
	lexed := preparse.NewLexedStr(`\def \name{x}`)
	iter := preparse.IterFrom(lexed, 0)

	require.Equal(t, 0, iter.Index())
	require.Equal(t, preparse.SynDef, iter.Peek())
	require.Equal(t, preparse.SynCommand, iter.PeekNth(2))
	require.Equal(t, 0, iter.Index(), "peeking must not consume")

	require.Equal(t, preparse.SynDef, iter.Next())
	require.Equal(t, 1, iter.Index())

	for iter.Peek() != preparse.SynEof {
		iter.Next()
	}
	require.Equal(t, lexed.Len()-1, iter.Index())

	// The sentinel is peekable but never consumed.
	require.Equal(t, preparse.SynEof, iter.Next())
	require.Equal(t, preparse.SynEof, iter.Next())
	require.Equal(t, lexed.Len()-1, iter.Index())
}

func TestTokenIterStartsMidStream(t *testing.T) {
	lexed := preparse.NewLexedStr(`\def \name{x}`)

	iter := preparse.IterFrom(lexed, 2)
	require.Equal(t, 2, iter.Index())
	require.Equal(t, preparse.SynCommand, iter.Peek())

	iter = preparse.IterFrom(lexed, -5)
	require.Equal(t, 0, iter.Index())

	iter = preparse.IterFrom(lexed, lexed.Len()+10)
	require.Equal(t, preparse.SynEof, iter.Peek())
	require.Equal(t, preparse.SynEof, iter.Next())
}

func TestTokenIterMarkAndRange(t *testing.T) {
	lexed := preparse.NewLexedStr(`\def \name{x}`)
	iter := preparse.IterFrom(lexed, 0)

	m := iter.Mark()
	iter.Next()
	iter.Next()
	iter.Next()

	r := iter.RangeFrom(m)
	require.Equal(t, preparse.TokenRange{Start: 0, End: 3}, r)
	require.Equal(t, 3, r.Len())

	text, ok := iter.Text(r)
	require.True(t, ok)
	require.Equal(t, `\def \name`, text)

	// A marker resolved without consuming anything is empty.
	m = iter.Mark()
	require.True(t, iter.RangeFrom(m).Empty())
}

func TestTokenIterRangeFromZeroMarker(t *testing.T) {
	lexed := preparse.NewLexedStr(`x`)
	iter := preparse.IterFrom(lexed, 0)

	require.Panics(t, func() { iter.RangeFrom(preparse.Marker{}) })
}

func TestTokenIterSkipTrivia(t *testing.T) {
	lexed := preparse.NewLexedStr("  % note\n\\def")
	iter := preparse.IterFrom(lexed, 0)

	require.Equal(t, 3, iter.SkipTrivia())
	require.Equal(t, preparse.SynDef, iter.Peek())
	require.Equal(t, 0, iter.SkipTrivia(), "skip is idempotent outside trivia")
}

func TestTokenIterSkipTriviaStopsAtBreak(t *testing.T) {
	lexed := preparse.NewLexedStr("a\n\nb")
	iter := preparse.IterFrom(lexed, 1)

	require.Equal(t, preparse.SynBreak, iter.Peek())
	require.Equal(t, 0, iter.SkipTrivia())
	require.Equal(t, 1, iter.Index())
}

func TestTokenIterAdvanceWhile(t *testing.T) {
	lexed := preparse.NewLexedStr("a b c{")
	iter := preparse.IterFrom(lexed, 0)

	n := iter.AdvanceWhile(func(kind preparse.SyntaxKind) bool {
		return kind != preparse.SynOpenBrace
	})
	require.Equal(t, 5, n)
	require.Equal(t, preparse.SynOpenBrace, iter.Peek())

	// A predicate that never fails still stops at the sentinel.
	n = iter.AdvanceWhile(func(preparse.SyntaxKind) bool { return true })
	require.Equal(t, 1, n)
	require.Equal(t, preparse.SynEof, iter.Peek())
}

func TestTokenIterPeekPastEnd(t *testing.T) {
	lexed := preparse.NewLexedStr("x")
	iter := preparse.IterFrom(lexed, 0)

	require.Equal(t, preparse.SynEof, iter.PeekNth(1))
	require.Equal(t, preparse.SynEof, iter.PeekNth(50))
}

func TestTokenIterSplice(t *testing.T) {
	lexed := preparse.NewLexedStr(`\def x`)
	iter := preparse.IterFrom(lexed, 0)

	require.Equal(t, preparse.SynDef, iter.Next())
	require.False(t, iter.InSplice())

	iter.Splice([]preparse.SyntaxKind{preparse.SynOpenBrace, preparse.SynCloseBrace})
	require.True(t, iter.InSplice())
	require.Equal(t, preparse.SynOpenBrace, iter.Peek())
	require.Equal(t, preparse.SynCloseBrace, iter.PeekNth(1))
	require.Equal(t, preparse.SynWhitespace, iter.PeekNth(2), "peeks continue into the underlying stream")
	require.Equal(t, 1, iter.Index(), "splices do not move the underlying position")

	require.Equal(t, preparse.SynOpenBrace, iter.Next())
	require.Equal(t, preparse.SynCloseBrace, iter.Next())
	require.False(t, iter.InSplice(), "a drained frame pops itself")

	require.Equal(t, preparse.SynWhitespace, iter.Next())
	require.Equal(t, 2, iter.Index())
}

func TestTokenIterSpliceNesting(t *testing.T) {
	lexed := preparse.NewLexedStr("x")
	iter := preparse.IterFrom(lexed, 0)

	iter.Splice([]preparse.SyntaxKind{preparse.SynAWord})
	iter.Splice([]preparse.SyntaxKind{preparse.SynStar})

	require.Equal(t, preparse.SynStar, iter.Peek(), "newest frame is served first")
	require.Equal(t, preparse.SynStar, iter.Next())
	require.Equal(t, preparse.SynAWord, iter.Next())
	require.False(t, iter.InSplice())

	iter.Splice(nil)
	require.False(t, iter.InSplice(), "empty splice is a no-op")
}

func TestTokenIterMarkInsideSplicePanics(t *testing.T) {
	lexed := preparse.NewLexedStr("x")
	iter := preparse.IterFrom(lexed, 0)

	iter.Splice([]preparse.SyntaxKind{preparse.SynAWord})
	require.Panics(t, func() { iter.Mark() })
}

package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/walteh/gotex/pkg/cursor"
)

func TestPeekBumpASCII(t *testing.T) {
	c := cursor.New("ab")

	cl, ok := c.Peek()
	require.True(t, ok)
	require.Equal(t, "a", cl)

	// peeking is not consuming
	cl, _ = c.Peek()
	require.Equal(t, "a", cl)
	require.Equal(t, 0, c.Pos())

	require.True(t, c.Bump())
	require.Equal(t, 1, c.Pos())
	require.Equal(t, 1, c.TokenLen())

	cl, _ = c.Peek()
	require.Equal(t, "b", cl)

	require.True(t, c.Bump())
	require.False(t, c.Bump())
	require.True(t, c.Done())

	_, ok = c.Peek()
	require.False(t, ok)
}

func TestMultiCodepointClustersAreAtomic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "decomposed umlaut",
			input: "äb", // ä as base + combining diaeresis
			want:  []string{"ä", "b"},
		},
		{
			name:  "crlf is one cluster",
			input: "\r\nx",
			want:  []string{"\r\n", "x"},
		},
		{
			name:  "emoji with skin tone",
			input: "\U0001F44D\U0001F3FD!",
			want:  []string{"\U0001F44D\U0001F3FD", "!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursor.New(tt.input)
			var got []string
			for {
				cl, ok := c.Peek()
				if !ok {
					break
				}
				got = append(got, cl)
				require.True(t, c.Bump())
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTokenLenAccounting(t *testing.T) {
	c := cursor.New("äbc")

	require.True(t, c.Bump()) // 3 bytes
	require.True(t, c.Bump()) // 1 byte
	require.Equal(t, 4, c.TokenLen())

	require.Equal(t, 4, c.ResetTokenLen())
	require.Equal(t, 0, c.TokenLen())
	require.Equal(t, 4, c.Pos())

	require.True(t, c.Bump())
	require.Equal(t, 1, c.TokenLen())
}

func TestEatWhile(t *testing.T) {
	c := cursor.New("   abc")

	n := c.EatWhile(func(cl string) bool { return cl == " " })
	require.Equal(t, 3, n)
	require.Equal(t, 3, c.TokenLen())
	require.Equal(t, "abc", c.Rest())

	// predicate that never matches consumes nothing
	n = c.EatWhile(func(cl string) bool { return cl == " " })
	require.Equal(t, 0, n)

	// eat to the end of input
	n = c.EatWhile(func(string) bool { return true })
	require.Equal(t, 3, n)
	require.True(t, c.Done())
}

func TestAdvanceAndRewind(t *testing.T) {
	c := cursor.New("::rest")

	c.Advance(2)
	require.Equal(t, 2, c.Pos())
	require.Equal(t, "rest", c.Rest())

	c.Rewind(2)
	require.Equal(t, 0, c.Pos())
	require.Equal(t, 0, c.TokenLen())

	cl, _ := c.Peek()
	require.Equal(t, ":", cl)
}

func TestRewindPastStartPanics(t *testing.T) {
	c := cursor.New("ab")
	c.Advance(1)
	c.ResetTokenLen()
	require.Panics(t, func() { c.Rewind(1) })
}

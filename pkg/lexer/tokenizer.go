package lexer

import (
	"github.com/walteh/gotex/pkg/cursor"
)

// maxStalledSteps bounds consecutive state-machine steps that neither
// consume bytes nor emit a token. A legitimate token of any length
// stays far below it; reaching it means a transition cycle is broken
// and the pipeline must fail loudly.
const maxStalledSteps = 1000

// Tokenizer turns source text into a stream of lexical tokens. The
// final token is always the zero-length KindEof tombstone; after that
// Next reports false forever.
type Tokenizer struct {
	cur   *cursor.Cursor
	state state
	done  bool
}

func New(src string) *Tokenizer {
	return &Tokenizer{cur: cursor.New(src), state: stateTop{}}
}

// Next produces the next token. The bool is false once the tombstone
// has been returned.
func (me *Tokenizer) Next() (Token, bool) {
	if me.done {
		return Token{}, false
	}
	stalled := 0
	for {
		head, _ := me.cur.Peek()
		var rest string
		if head != "" {
			rest = me.cur.Rest()[len(head):]
		}

		st := me.state.next(head, rest)
		if st.eof {
			me.done = true
			return Token{Kind: KindEof, Start: me.cur.Pos()}, true
		}

		consumed := !st.act.rewind && st.act.n > 0
		if st.act.rewind {
			me.cur.Rewind(st.act.n)
		} else if st.act.n > 0 {
			me.cur.Advance(st.act.n)
		}
		if st.next != nil {
			me.state = st.next
		}
		if st.hasEmit {
			length := me.cur.ResetTokenLen()
			return Token{Kind: st.emit, Start: me.cur.Pos() - length, Len: length}, true
		}
		if st.discard {
			me.cur.ResetTokenLen()
		}

		if consumed {
			stalled = 0
		} else {
			stalled++
			if stalled >= maxStalledSteps {
				panic("lexer: state machine stalled without emitting")
			}
		}
	}
}

// Scan tokenizes src in full, tombstone included.
func Scan(src string) []Token {
	tk := New(src)
	var out []Token
	for {
		tok, ok := tk.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

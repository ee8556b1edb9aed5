// Package lexer tokenizes source text with a grapheme-cluster-safe
// finite state machine.
//
// The machine is data, not control flow: every state is a small struct
// value, and a single step function maps (state, lookahead cluster,
// remaining text) to an action (consume, reconsume, or give bytes
// back), an optional token to emit, and the next state. The driving
// Tokenizer owns the byte accounting and panics if the machine stops
// making progress.
package lexer

// Kind classifies a lexical token. The preparse stage merges and
// re-labels these into syntax tokens; nothing downstream of preparse
// sees lexical kinds.
type Kind uint8

const (
	// KindEof is the tombstone closing every token stream.
	KindEof Kind = iota

	KindCommandIdent  // a single backslash
	KindCommand       // command name characters following a backslash
	KindVariableIdent // the @ sigil after a backslash
	KindVariable      // variable name characters
	KindPathSeparator // ::
	KindUnicodeEscape // u{...} after a backslash
	KindMacroParameter
	KindNumSign

	KindWhitespace
	KindNewline
	KindBreak
	KindComment

	KindInteger
	KindFloat
	KindUnit

	KindAWord // ASCII-alphabetic word
	KindUWord // word containing non-ASCII letters

	KindOpenBrace
	KindCloseBrace
	KindOpenBracket
	KindCloseBracket
	KindOpenParen
	KindCloseParen
	KindStar
	KindCaret
	KindLess
	KindGreater
	KindUnderscore
	KindSingleApostrophe
	KindDoubleApostrophe
	KindSlash
	KindTilde
	KindComma
	KindSemicolon
	KindAmpersand
	KindEqual
	KindPipe
	KindColon
	KindDollar
	KindMinus
	KindPlus
	KindPeriod
	KindAt
	KindQuestion
	KindBang

	KindMathDisplay // $$
	KindLeftArrow   // <-
	KindNotEqual    // !=
	KindPlusEqual   // +=
	KindMinusEqual  // -=
	KindMulEqual    // *=
	KindDivEqual    // /=

	// KindSymbol covers every cluster with no dedicated kind.
	KindSymbol
)

var kindNames = [...]string{
	KindEof:              "Eof",
	KindCommandIdent:     "CommandIdent",
	KindCommand:          "Command",
	KindVariableIdent:    "VariableIdent",
	KindVariable:         "Variable",
	KindPathSeparator:    "PathSeparator",
	KindUnicodeEscape:    "UnicodeEscape",
	KindMacroParameter:   "MacroParameter",
	KindNumSign:          "NumSign",
	KindWhitespace:       "Whitespace",
	KindNewline:          "Newline",
	KindBreak:            "Break",
	KindComment:          "Comment",
	KindInteger:          "Integer",
	KindFloat:            "Float",
	KindUnit:             "Unit",
	KindAWord:            "AWord",
	KindUWord:            "UWord",
	KindOpenBrace:        "OpenBrace",
	KindCloseBrace:       "CloseBrace",
	KindOpenBracket:      "OpenBracket",
	KindCloseBracket:     "CloseBracket",
	KindOpenParen:        "OpenParen",
	KindCloseParen:       "CloseParen",
	KindStar:             "Star",
	KindCaret:            "Caret",
	KindLess:             "Less",
	KindGreater:          "Greater",
	KindUnderscore:       "Underscore",
	KindSingleApostrophe: "SingleApostrophe",
	KindDoubleApostrophe: "DoubleApostrophe",
	KindSlash:            "Slash",
	KindTilde:            "Tilde",
	KindComma:            "Comma",
	KindSemicolon:        "Semicolon",
	KindAmpersand:        "Ampersand",
	KindEqual:            "Equal",
	KindPipe:             "Pipe",
	KindColon:            "Colon",
	KindDollar:           "Dollar",
	KindMinus:            "Minus",
	KindPlus:             "Plus",
	KindPeriod:           "Period",
	KindAt:               "At",
	KindQuestion:         "Question",
	KindBang:             "Bang",
	KindMathDisplay:      "MathDisplay",
	KindLeftArrow:        "LeftArrow",
	KindNotEqual:         "NotEqual",
	KindPlusEqual:        "PlusEqual",
	KindMinusEqual:       "MinusEqual",
	KindMulEqual:         "MulEqual",
	KindDivEqual:         "DivEqual",
	KindSymbol:           "Symbol",
}

func (me Kind) String() string {
	if int(me) < len(kindNames) {
		return kindNames[me]
	}
	return "Kind(?)"
}

// Token is a lexical token: a kind plus the byte span it covers in the
// source. The text itself is never copied; Start and Len index into
// the original string.
type Token struct {
	Kind  Kind
	Start int
	Len   int
}

// Text returns the token's slice of src.
func (me Token) Text(src string) string {
	return src[me.Start : me.Start+me.Len]
}

package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/walteh/gotex/pkg/cursor"
)

// Horizontal whitespace. LRM and RLM are invisible direction marks
// that behave like spaces for layout purposes.
var whitespaceRunes = map[rune]bool{
	'\t': true,
	' ':  true,
	' ':  true, // no-break space
	' ':  true, // ogham space mark
	'‎':  true, // left-to-right mark
	'‏':  true, // right-to-left mark
	' ':  true, // narrow no-break space
	'　':  true, // ideographic space
}

// Vertical whitespace. A lone carriage return counts; "\r\n" arrives
// as a single grapheme cluster and is consumed as one unit.
var newlineRunes = map[rune]bool{
	'\n': true,
	'\v': true,
	'\f': true,
	'\r': true,
	'':  true, // next line
	' ':  true, // line separator
	' ':  true, // paragraph separator
}

const paragraphSeparator = ' '

// singleSymbolTable maps one-byte clusters to their dedicated kinds.
// Anything absent lexes as KindSymbol.
var singleSymbolTable = map[byte]Kind{
	'{':  KindOpenBrace,
	'}':  KindCloseBrace,
	'[':  KindOpenBracket,
	']':  KindCloseBracket,
	'(':  KindOpenParen,
	')':  KindCloseParen,
	'*':  KindStar,
	'^':  KindCaret,
	'<':  KindLess,
	'>':  KindGreater,
	'_':  KindUnderscore,
	'\'': KindSingleApostrophe,
	'"':  KindDoubleApostrophe,
	'/':  KindSlash,
	'~':  KindTilde,
	',':  KindComma,
	';':  KindSemicolon,
	'&':  KindAmpersand,
	'=':  KindEqual,
	'|':  KindPipe,
	':':  KindColon,
	'$':  KindDollar,
	'-':  KindMinus,
	'+':  KindPlus,
	'.':  KindPeriod,
	'@':  KindAt,
	'?':  KindQuestion,
	'!':  KindBang,
}

// compositeTable pairs two adjacent one-byte clusters into a single
// token. Pairs like <= and == are deliberately absent: those fuse
// during preparse so that a<b=c keeps its token boundaries.
var compositeTable = map[[2]byte]Kind{
	{':', ':'}: KindPathSeparator,
	{'$', '$'}: KindMathDisplay,
	{'<', '-'}: KindLeftArrow,
	{'!', '='}: KindNotEqual,
	{'+', '='}: KindPlusEqual,
	{'-', '='}: KindMinusEqual,
	{'*', '='}: KindMulEqual,
	{'/', '='}: KindDivEqual,
}

// unitTable holds the dimension suffixes that may bind to a number.
// All entries fall in the 'b'..'s' byte range checked by stateUnit.
var unitTable = map[[2]byte]bool{
	{'b', 'p'}: true,
	{'c', 'c'}: true,
	{'c', 'm'}: true,
	{'d', 'd'}: true,
	{'e', 'm'}: true,
	{'e', 'x'}: true,
	{'i', 'n'}: true,
	{'m', 'm'}: true,
	{'m', 'u'}: true,
	{'p', 'c'}: true,
	{'p', 't'}: true,
	{'s', 'p'}: true,
}

// Cluster predicates classify by the cluster's first rune, so a base
// character with combining marks behaves like the base character.

func firstRune(cl string) rune {
	r, _ := utf8.DecodeRuneInString(cl)
	return r
}

func isWhitespaceCluster(cl string) bool {
	return cl != "" && whitespaceRunes[firstRune(cl)]
}

func isNewlineCluster(cl string) bool {
	return cl != "" && newlineRunes[firstRune(cl)]
}

func isBreakCluster(cl string) bool {
	return cl != "" && firstRune(cl) == paragraphSeparator
}

func isDigitCluster(cl string) bool {
	return cl != "" && cl[0] >= '0' && cl[0] <= '9'
}

func isAlphabeticCluster(cl string) bool {
	return cl != "" && unicode.IsLetter(firstRune(cl))
}

// isPlainASCII reports whether cl is exactly one ASCII byte, with no
// trailing combining marks.
func isPlainASCII(cl string) bool {
	return len(cl) == 1 && cl[0] < 0x80
}

func isASCIILetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIAlnumByte(b byte) bool {
	return isASCIILetterByte(b) || (b >= '0' && b <= '9')
}

// isNameStart matches the first cluster of a command or variable name
// segment: an ASCII letter or underscore.
func isNameStart(cl string) bool {
	return isPlainASCII(cl) && (isASCIILetterByte(cl[0]) || cl[0] == '_')
}

// isNameContinue matches subsequent name clusters: ASCII letters,
// digits, or underscore.
func isNameContinue(cl string) bool {
	return isPlainASCII(cl) && (isASCIIAlnumByte(cl[0]) || cl[0] == '_')
}

// isAWordCluster matches clusters that extend an ASCII word.
func isAWordCluster(cl string) bool {
	return cl != "" && isASCIILetterByte(cl[0])
}

// startsDigit reports whether the text after the current cluster
// opens with an ASCII digit.
func startsDigit(rest string) bool {
	return rest != "" && rest[0] >= '0' && rest[0] <= '9'
}

// startsExponent reports whether rest opens a float exponent body:
// a digit, or a minus sign followed by a digit.
func startsExponent(rest string) bool {
	if startsDigit(rest) {
		return true
	}
	return len(rest) >= 2 && rest[0] == '-' && rest[1] >= '0' && rest[1] <= '9'
}

// nextCluster returns the first grapheme cluster of rest.
func nextCluster(rest string) string {
	return cursor.FirstCluster(rest)
}

package preparse

import (
	"strings"

	"github.com/walteh/gotex/pkg/collections"
	"github.com/walteh/gotex/pkg/lexer"
)

// converterFuel bounds the peeks a single classification step may
// make before advancing. The counter resets on every advance; running
// it out means the classifier is stuck on one token, which is a bug.
const converterFuel = 256

// The classifier needs two tokens of lookahead; the buffer leaves
// headroom so a peek can never evict an unconsumed token.
const lookaheadCapacity = 4

// converter folds the lexical stream into syntax tokens. Every
// emitted token covers all bytes of the lexical tokens consumed since
// the previous emission, so runs like `\foo` (CommandIdent + Command)
// merge into a single token with one start offset.
type converter struct {
	lexed *LexedStr
	src   string
	iter  *collections.PeekIter[lexer.Token]
	pos   runPosition
	fuel  int
}

// runPosition tracks the absolute byte position and the byte length
// of the current unflushed run.
type runPosition struct {
	position int
	offset   int
}

func (me *runPosition) advanceBy(n int) {
	me.position += n
	me.offset += n
}

func (me *runPosition) resetToStart() int {
	start := me.position - me.offset
	me.offset = 0
	return start
}

func (me *runPosition) currentStart() int {
	return me.position - me.offset
}

func newConverter(lexed *LexedStr, src string) *converter {
	tk := lexer.New(src)
	return &converter{
		lexed: lexed,
		src:   src,
		iter:  collections.NewPeekIter(lookaheadCapacity, tk.Next),
		fuel:  converterFuel,
	}
}

func (me *converter) peekToken(n int) lexer.Token {
	if me.fuel == 0 {
		panic("preparse: classifier fuel exhausted")
	}
	me.fuel--
	tok, ok := me.iter.PeekNth(n)
	if !ok {
		return lexer.Token{Kind: lexer.KindEof, Start: me.pos.position}
	}
	return tok
}

func (me *converter) peekKind() lexer.Kind {
	return me.peekToken(0).Kind
}

func (me *converter) peekKind2() lexer.Kind {
	return me.peekToken(1).Kind
}

func (me *converter) advance() lexer.Token {
	me.fuel = converterFuel
	tok, ok := me.iter.Next()
	if !ok {
		return lexer.Token{Kind: lexer.KindEof, Start: me.pos.position}
	}
	me.pos.advanceBy(tok.Len)
	return tok
}

func (me *converter) text(tok lexer.Token) string {
	return tok.Text(me.src)
}

// currentRunText is the source slice of everything consumed since the
// last emission.
func (me *converter) currentRunText() string {
	return me.src[me.pos.currentStart():me.pos.position]
}

func (me *converter) addToken(kind SyntaxKind) {
	me.lexed.addToken(kind, me.pos.resetToStart())
}

func (me *converter) addError(kind PreparseErrorKind) {
	me.lexed.addError(kind, me.pos.resetToStart())
}

func (me *converter) addDefinition(kind SyntaxKind, def DefinitionKind) {
	me.lexed.addDefinition(kind, def, me.pos.resetToStart())
}

func (me *converter) advanceWithToken(kind SyntaxKind) {
	me.advance()
	me.addToken(kind)
}

func (me *converter) atEnd() bool {
	return me.peekKind() == lexer.KindEof
}

func (me *converter) convert() {
	for !me.atEnd() {
		me.token()
	}
	me.addToken(SynEof)
}

func (me *converter) token() {
	tok := me.advance()
	switch tok.Kind {
	case lexer.KindCommandIdent:
		me.command()
	case lexer.KindLess:
		if me.peekKind() == lexer.KindEqual {
			me.advanceWithToken(SynLessEq)
			return
		}
		me.addToken(SynLess)
	case lexer.KindGreater:
		if me.peekKind() == lexer.KindEqual {
			me.advanceWithToken(SynGreaterEq)
			return
		}
		me.addToken(SynGreater)
	case lexer.KindEqual:
		if me.peekKind() == lexer.KindEqual {
			me.advanceWithToken(SynComparison)
			return
		}
		me.addToken(SynEqual)
	case lexer.KindMinus:
		if me.peekKind() == lexer.KindGreater {
			me.advanceWithToken(SynRightArrow)
			return
		}
		me.addToken(SynMinus)
	case lexer.KindDollar:
		me.addToken(SynMathDelimiter)
	case lexer.KindNumSign:
		me.raw()
	case lexer.KindMacroParameter:
		me.macroParameter(tok)
	case lexer.KindDoubleApostrophe:
		me.stringToken()
	case lexer.KindComment:
		if strings.HasPrefix(me.text(tok), "%%") {
			me.addToken(SynAComment)
			return
		}
		me.addToken(SynComment)
	default:
		me.addToken(basicKind(tok.Kind))
	}
}

// raw recognizes the #>> raw delimiter; a lone # stays a NumSign.
func (me *converter) raw() {
	if me.peekKind() == lexer.KindGreater && me.peekKind2() == lexer.KindGreater {
		me.advance()
		me.advanceWithToken(SynRawDelimiter)
		return
	}
	me.addToken(SynNumSign)
}

func (me *converter) macroParameter(tok lexer.Token) {
	text := me.text(tok)
	if len(text) > 1 && text[1] >= '0' && text[1] <= '9' {
		me.addToken(SynSimpleMacroExpansion)
		return
	}
	me.addToken(SynComplexMacroExpansion)
}

// stringToken merges everything through the closing quote into one
// String token. An unterminated string runs to the end of input.
func (me *converter) stringToken() {
	for {
		switch me.peekKind() {
		case lexer.KindDoubleApostrophe:
			me.advance()
			me.addToken(SynString)
			return
		case lexer.KindEof:
			me.addToken(SynString)
			return
		default:
			me.advance()
		}
	}
}

// command classifies everything that follows a backslash.
func (me *converter) command() {
	switch me.peekKind() {
	case lexer.KindCommand:
		tok := me.advance()
		me.commandHead(me.text(tok))
	case lexer.KindVariableIdent:
		me.advance()
		me.variable(VariableNameMissing)
	case lexer.KindPathSeparator:
		me.advance()
		me.addToken(SynPathSeparator)
		me.pathSegment()
	case lexer.KindUnicodeEscape:
		me.advance()
		me.addToken(SynUnicodeEscape)
	case lexer.KindEof:
		me.addError(CommandNameMissing)
	case lexer.KindWhitespace, lexer.KindNewline, lexer.KindBreak, lexer.KindComment:
		me.advance()
		me.addError(CommandNameMissing)
	default:
		me.advance()
		me.addError(InvalidCommandName)
	}
}

// commandHead dispatches on the first name piece. Single-character
// escapes like `\{` close right away; a digit head followed by more
// name material consumes the offending token and flags the numeric
// prefix, keeping `\8` and `\8*` valid.
func (me *converter) commandHead(seg string) {
	if isAllDigits(seg) {
		switch me.peekKind() {
		case lexer.KindAWord, lexer.KindInteger, lexer.KindUnderscore, lexer.KindColon:
			me.advance()
			me.addError(InvalidCommandPrefix)
		case lexer.KindStar:
			me.advance()
			me.closeCommand(false)
		default:
			me.closeCommand(false)
		}
		return
	}
	if !isNameStartByte(seg[0]) {
		me.closeCommand(false)
		return
	}
	me.commandInner(false, seg)
}

// commandInner continues a name from the piece just consumed. seg is
// the text of the most recent piece; pathCtx is true once a path
// separator has been crossed. An underscore or colon stays part of
// the name only when the token after it keeps the name going.
func (me *converter) commandInner(pathCtx bool, seg string) {
	for {
		switch me.peekKind() {
		case lexer.KindPathSeparator:
			me.addToken(SynNamespace)
			me.advance()
			me.addToken(SynPathSeparator)
			me.pathSegment()
			return
		case lexer.KindStar:
			me.advance()
			me.closeCommand(pathCtx)
			return
		case lexer.KindAt:
			me.advance()
			me.variable(InvalidVariableNameEnding)
			return
		case lexer.KindColon, lexer.KindUnderscore:
			if !continuesName(me.peekKind2()) {
				me.advance()
				me.addError(me.endingError(pathCtx))
				return
			}
			tok := me.advance()
			seg = me.text(tok)
		case lexer.KindAWord, lexer.KindInteger:
			tok := me.advance()
			seg = me.text(tok)
		default:
			me.closeSegment(pathCtx, seg)
			return
		}
	}
}

// pathSegment opens the segment after an emitted path separator. The
// segment arrives as a Command token when the tokenizer was still in
// command context, or as plain word material when the separator was
// spelled mid-text.
func (me *converter) pathSegment() {
	switch me.peekKind() {
	case lexer.KindCommand, lexer.KindAWord:
		tok := me.advance()
		me.commandInner(true, me.text(tok))
	case lexer.KindUnderscore:
		me.advance()
		me.commandInner(true, "_")
	case lexer.KindAt:
		me.advance()
		me.variable(VariableNameMissing)
	case lexer.KindEof:
		me.addError(InvalidModuleName)
	default:
		me.advance()
		me.addError(InvalidModuleName)
	}
}

func (me *converter) closeSegment(pathCtx bool, seg string) {
	if strings.HasSuffix(seg, "_") && seg != "_" {
		me.addError(me.endingError(pathCtx))
		return
	}
	me.closeCommand(pathCtx)
}

// continuesName reports whether a lexical kind keeps a command name
// going after an underscore or colon. A path separator counts: a
// segment may end in `_` right before `::`.
func continuesName(kind lexer.Kind) bool {
	switch kind {
	case lexer.KindAWord, lexer.KindInteger, lexer.KindUnderscore, lexer.KindColon, lexer.KindPathSeparator:
		return true
	}
	return false
}

func (me *converter) endingError(pathCtx bool) PreparseErrorKind {
	if pathCtx {
		return InvalidFunctionName
	}
	return InvalidCommandNameEnding
}

// closeCommand flushes the accumulated run as a command token,
// recognizing keyword commands by their full source slice. Final
// segments of path-qualified names are always plain functions.
func (me *converter) closeCommand(pathCtx bool) {
	if pathCtx {
		me.addToken(SynFunction)
		return
	}
	switch me.currentRunText() {
	case `\def`:
		me.addDefinition(SynDef, DefDef)
	case `\newcommand`:
		me.addDefinition(SynNewCommand, DefMacro)
	case `\newenvironment`:
		me.addDefinition(SynNewEnv, DefEnvironment)
	case `\input`:
		me.addToken(SynInput)
	case `\usepackage`:
		me.addToken(SynUsePackage)
	case `\use`:
		me.addToken(SynUse)
	case `\fn`:
		me.addToken(SynFunctionIdent)
	case `\pub`:
		me.addToken(SynPub)
	case `\let`:
		me.addToken(SynLet)
	default:
		me.addToken(SynCommand)
	}
}

// variable accumulates a variable name. It is entered either right
// after the @ sigil or when an @ shows up inside a command run;
// missingKind is the error to raise when no name material follows.
func (me *converter) variable(missingKind PreparseErrorKind) {
	seg := ""
	consumed := false
	for {
		switch me.peekKind() {
		case lexer.KindVariable:
			tok := me.advance()
			seg = me.text(tok)
			consumed = true
		case lexer.KindAWord:
			tok := me.advance()
			seg += me.text(tok)
			consumed = true
		case lexer.KindInteger:
			if !consumed {
				me.advance()
				me.addError(InvalidVariableName)
				return
			}
			tok := me.advance()
			seg += me.text(tok)
		case lexer.KindUnderscore:
			switch me.peekKind2() {
			case lexer.KindAWord, lexer.KindInteger, lexer.KindUnderscore, lexer.KindPathSeparator:
				me.advance()
				seg += "_"
				consumed = true
			default:
				me.advance()
				me.addError(InvalidVariableNameEnding)
				return
			}
		case lexer.KindPathSeparator:
			me.addToken(SynNamespace)
			me.advance()
			me.addToken(SynPathSeparator)
			me.variableSegment()
			return
		case lexer.KindColon:
			me.advance()
			me.addError(InvalidVariableNameEnding)
			return
		case lexer.KindEof:
			me.closeVariable(seg, consumed, missingKind)
			return
		case lexer.KindWhitespace, lexer.KindNewline, lexer.KindBreak, lexer.KindComment:
			if !consumed {
				me.advance()
				me.addError(missingKind)
				return
			}
			me.closeVariable(seg, consumed, missingKind)
			return
		default:
			if !consumed {
				me.advance()
				me.addError(InvalidVariableName)
				return
			}
			me.closeVariable(seg, consumed, missingKind)
			return
		}
	}
}

// variableSegment opens the segment after a path separator in
// variable context. Like command segments, the name material arrives
// either as a Variable token or as loose word tokens.
func (me *converter) variableSegment() {
	switch me.peekKind() {
	case lexer.KindVariable, lexer.KindAWord, lexer.KindUnderscore, lexer.KindInteger:
		me.variable(VariableNameMissing)
	case lexer.KindEof:
		me.addError(InvalidModuleName)
	default:
		me.advance()
		me.addError(InvalidModuleName)
	}
}

func (me *converter) closeVariable(seg string, consumed bool, missingKind PreparseErrorKind) {
	if !consumed {
		me.addError(missingKind)
		return
	}
	if strings.HasSuffix(seg, "_") {
		me.addError(InvalidVariableNameEnding)
		return
	}
	me.addToken(SynVariable)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isNameStartByte mirrors the tokenizer's rule for a multi-character
// command head.
func isNameStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// basicKind maps lexical kinds that convert 1-to-1. Kinds with
// classification logic never reach it; a lexical kind that cannot
// appear here at all indicates a tokenizer bug.
func basicKind(kind lexer.Kind) SyntaxKind {
	switch kind {
	case lexer.KindWhitespace:
		return SynWhitespace
	case lexer.KindNewline:
		return SynNewline
	case lexer.KindBreak:
		return SynBreak
	case lexer.KindInteger:
		return SynNumber
	case lexer.KindFloat:
		return SynFloat
	case lexer.KindUnit:
		return SynUnit
	case lexer.KindAWord:
		return SynAWord
	case lexer.KindUWord:
		return SynWord
	case lexer.KindOpenBrace:
		return SynOpenBrace
	case lexer.KindCloseBrace:
		return SynCloseBrace
	case lexer.KindOpenBracket:
		return SynOpenBracket
	case lexer.KindCloseBracket:
		return SynCloseBracket
	case lexer.KindOpenParen:
		return SynOpenParen
	case lexer.KindCloseParen:
		return SynCloseParen
	case lexer.KindStar:
		return SynStar
	case lexer.KindCaret:
		return SynCaret
	case lexer.KindUnderscore:
		return SynUnderscore
	case lexer.KindSingleApostrophe:
		return SynSingleApostrophe
	case lexer.KindSlash:
		return SynSlash
	case lexer.KindTilde:
		return SynTilde
	case lexer.KindComma:
		return SynComma
	case lexer.KindSemicolon:
		return SynSemicolon
	case lexer.KindAmpersand:
		return SynAmpersand
	case lexer.KindPipe:
		return SynPipe
	case lexer.KindColon:
		return SynColon
	case lexer.KindPlus:
		return SynPlus
	case lexer.KindPeriod:
		return SynDot
	case lexer.KindAt:
		return SynAt
	case lexer.KindQuestion:
		return SynQuestion
	case lexer.KindBang:
		return SynBang
	case lexer.KindMathDisplay:
		return SynMathDisplay
	case lexer.KindLeftArrow:
		return SynLeftArrow
	case lexer.KindNotEqual:
		return SynNotEq
	case lexer.KindPlusEqual:
		return SynPlusEq
	case lexer.KindMinusEqual:
		return SynMinusEq
	case lexer.KindMulEqual:
		return SynMulEq
	case lexer.KindDivEqual:
		return SynDivEq
	case lexer.KindPathSeparator:
		return SynPathSeparator
	case lexer.KindUnicodeEscape:
		return SynUnicodeEscape
	case lexer.KindSymbol:
		return SynSymbol
	}
	panic("preparse: no direct conversion for lexical token " + kind.String())
}

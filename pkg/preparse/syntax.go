// Package preparse classifies the lexical token stream into syntax
// tokens: command and variable names are validated and merged,
// composite operators fused, keyword commands recognized, and
// definition sites collected. The result is a LexedStr, the read-only
// contract consumed by the definition resolver and the tree builder.
package preparse

// SyntaxKind classifies a syntax token. The set is closed; structural
// kinds near the end are reserved for the tree builder and never
// produced by the classifier.
type SyntaxKind uint8

const (
	// Commands and names.
	SynCommand SyntaxKind = iota
	SynFunction
	SynVariable
	SynNamespace
	SynPathSeparator

	// Keyword commands, matched on the full name slice.
	SynDef
	SynNewCommand
	SynNewEnv
	SynInput
	SynUsePackage
	SynUse
	SynFunctionIdent
	SynPub
	SynLet

	// Macro parameters inside definition bodies.
	SynSimpleMacroExpansion  // #1
	SynComplexMacroExpansion // #name

	SynUnicodeEscape

	// Trivia and layout.
	SynWhitespace
	SynNewline
	SynBreak
	SynComment
	SynAComment

	// Words and numbers.
	SynWord // contains non-ASCII letters
	SynAWord
	SynNumber
	SynFloat
	SynUnit

	SynString
	SynRawDelimiter // #>>

	// Delimiters.
	SynOpenBrace
	SynCloseBrace
	SynOpenBracket
	SynCloseBracket
	SynOpenParen
	SynCloseParen

	// Symbols and operators.
	SynStar
	SynNumSign
	SynCaret
	SynLess
	SynLessEq
	SynGreater
	SynGreaterEq
	SynUnderscore
	SynSingleApostrophe
	SynDoubleApostrophe
	SynSlash
	SynTilde
	SynComma
	SynSemicolon
	SynAmpersand
	SynEqual
	SynComparison // ==
	SynPipe
	SynColon
	SynMinus
	SynPlus
	SynDot
	SynAt
	SynQuestion
	SynBang
	SynLeftArrow  // <-
	SynRightArrow // ->
	SynNotEq
	SynPlusEq
	SynMinusEq
	SynMulEq
	SynDivEq
	SynSymbol

	SynMathDelimiter // $
	SynMathDisplay   // $$

	// Structural kinds reserved for the tree builder.
	SynRoot
	SynPreamble
	SynDocument
	SynCode
	SynText
	SynMath
	SynBlock
	SynOptionBlock

	SynEof
	SynError
)

var syntaxNames = [...]string{
	SynCommand:               "Command",
	SynFunction:              "Function",
	SynVariable:              "Variable",
	SynNamespace:             "Namespace",
	SynPathSeparator:         "PathSeparator",
	SynDef:                   "Def",
	SynNewCommand:            "NewCommand",
	SynNewEnv:                "NewEnv",
	SynInput:                 "Input",
	SynUsePackage:            "UsePackage",
	SynUse:                   "Use",
	SynFunctionIdent:         "FunctionIdent",
	SynPub:                   "Pub",
	SynLet:                   "Let",
	SynSimpleMacroExpansion:  "SimpleMacroExpansion",
	SynComplexMacroExpansion: "ComplexMacroExpansion",
	SynUnicodeEscape:         "UnicodeEscape",
	SynWhitespace:            "Whitespace",
	SynNewline:               "Newline",
	SynBreak:                 "Break",
	SynComment:               "Comment",
	SynAComment:              "AComment",
	SynWord:                  "Word",
	SynAWord:                 "AWord",
	SynNumber:                "Number",
	SynFloat:                 "Float",
	SynUnit:                  "Unit",
	SynString:                "String",
	SynRawDelimiter:          "RawDelimiter",
	SynOpenBrace:             "OpenBrace",
	SynCloseBrace:            "CloseBrace",
	SynOpenBracket:           "OpenBracket",
	SynCloseBracket:          "CloseBracket",
	SynOpenParen:             "OpenParen",
	SynCloseParen:            "CloseParen",
	SynStar:                  "Star",
	SynNumSign:               "NumSign",
	SynCaret:                 "Caret",
	SynLess:                  "Less",
	SynLessEq:                "LessEq",
	SynGreater:               "Greater",
	SynGreaterEq:             "GreaterEq",
	SynUnderscore:            "Underscore",
	SynSingleApostrophe:      "SingleApostrophe",
	SynDoubleApostrophe:      "DoubleApostrophe",
	SynSlash:                 "Slash",
	SynTilde:                 "Tilde",
	SynComma:                 "Comma",
	SynSemicolon:             "Semicolon",
	SynAmpersand:             "Ampersand",
	SynEqual:                 "Equal",
	SynComparison:            "Comparison",
	SynPipe:                  "Pipe",
	SynColon:                 "Colon",
	SynMinus:                 "Minus",
	SynPlus:                  "Plus",
	SynDot:                   "Dot",
	SynAt:                    "At",
	SynQuestion:              "Question",
	SynBang:                  "Bang",
	SynLeftArrow:             "LeftArrow",
	SynRightArrow:            "RightArrow",
	SynNotEq:                 "NotEq",
	SynPlusEq:                "PlusEq",
	SynMinusEq:               "MinusEq",
	SynMulEq:                 "MulEq",
	SynDivEq:                 "DivEq",
	SynSymbol:                "Symbol",
	SynMathDelimiter:         "MathDelimiter",
	SynMathDisplay:           "MathDisplay",
	SynRoot:                  "Root",
	SynPreamble:              "Preamble",
	SynDocument:              "Document",
	SynCode:                  "Code",
	SynText:                  "Text",
	SynMath:                  "Math",
	SynBlock:                 "Block",
	SynOptionBlock:           "OptionBlock",
	SynEof:                   "Eof",
	SynError:                 "Error",
}

func (me SyntaxKind) String() string {
	if int(me) < len(syntaxNames) {
		return syntaxNames[me]
	}
	return "SyntaxKind(?)"
}

// IsTrivia reports whether the token carries no syntactic weight.
// Break is not trivia: paragraph breaks delimit structure.
func (me SyntaxKind) IsTrivia() bool {
	switch me {
	case SynWhitespace, SynNewline, SynComment, SynAComment:
		return true
	}
	return false
}

// TokenRange is a half-open range of token indices.
type TokenRange struct {
	Start int
	End   int
}

func (me TokenRange) Len() int {
	return me.End - me.Start
}

func (me TokenRange) Empty() bool {
	return me.End <= me.Start
}

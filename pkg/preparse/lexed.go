package preparse

// DefinitionKind categorizes the definition-introducing keyword
// commands picked out during classification.
type DefinitionKind uint8

const (
	// DefMacro is a \newcommand definition.
	DefMacro DefinitionKind = iota
	// DefDef is a \def definition.
	DefDef
	// DefEnvironment is a \newenvironment definition.
	DefEnvironment
)

func (me DefinitionKind) String() string {
	switch me {
	case DefMacro:
		return "macro"
	case DefDef:
		return "def"
	case DefEnvironment:
		return "environment"
	}
	return "DefinitionKind(?)"
}

// Definition points at a recognized definition head token, such as
// the NewCommand token of a \newcommand. The resolver picks up from
// the token after it.
type Definition struct {
	Kind  DefinitionKind
	Index int
}

// LexedStr is the classified form of one source unit: the syntax
// token sequence, a parallel byte-offset table, the recoverable
// classification errors, and the definition sites. It is append-only
// during classification and immutable afterwards; the final token is
// always SynEof and the offset table has exactly one entry per token.
type LexedStr struct {
	src         string
	tokens      []SyntaxKind
	start       []uint32
	errors      []PreparseError
	definitions []Definition
}

// NewLexedStr tokenizes and classifies src.
func NewLexedStr(src string) *LexedStr {
	lexed := &LexedStr{src: src}
	newConverter(lexed, src).convert()
	return lexed
}

// Src returns the source text the token offsets index into.
func (me *LexedStr) Src() string {
	return me.src
}

// Len is the number of syntax tokens, sentinel included.
func (me *LexedStr) Len() int {
	return len(me.tokens)
}

// KindAt returns the kind of token idx, or SynEof out of bounds.
func (me *LexedStr) KindAt(idx int) SyntaxKind {
	if idx < 0 || idx >= len(me.tokens) {
		return SynEof
	}
	return me.tokens[idx]
}

// StartOf returns the byte offset where token idx begins. Indices at
// or past the sentinel clamp to the end of the source.
func (me *LexedStr) StartOf(idx int) int {
	if len(me.start) == 0 {
		return 0
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(me.start) {
		return int(me.start[len(me.start)-1])
	}
	return int(me.start[idx])
}

// TextAt returns the source slice of token idx.
func (me *LexedStr) TextAt(idx int) string {
	return me.src[me.StartOf(idx):me.StartOf(idx+1)]
}

// TextRange returns the source text covered by a token-index range.
// The bool is false when the range does not lie within the token
// sequence.
func (me *LexedStr) TextRange(r TokenRange) (string, bool) {
	if r.Start < 0 || r.End < r.Start || r.End > len(me.tokens) {
		return "", false
	}
	return me.src[me.StartOf(r.Start):me.StartOf(r.End)], true
}

// Tokens returns the syntax token sequence. The caller must not
// modify it.
func (me *LexedStr) Tokens() []SyntaxKind {
	return me.tokens
}

// Errors returns the recoverable classification errors in emission
// order.
func (me *LexedStr) Errors() []PreparseError {
	return me.errors
}

// Definitions returns the definition sites in source order.
func (me *LexedStr) Definitions() []Definition {
	return me.definitions
}

func (me *LexedStr) addToken(kind SyntaxKind, start int) {
	me.tokens = append(me.tokens, kind)
	me.start = append(me.start, uint32(start))
}

func (me *LexedStr) addError(kind PreparseErrorKind, start int) {
	me.addToken(SynError, start)
	me.errors = append(me.errors, PreparseError{Kind: kind, Token: len(me.tokens) - 1})
}

func (me *LexedStr) addDefinition(kind SyntaxKind, def DefinitionKind, start int) {
	me.addToken(kind, start)
	me.definitions = append(me.definitions, Definition{Kind: def, Index: len(me.tokens) - 1})
}

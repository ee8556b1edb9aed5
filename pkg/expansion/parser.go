package expansion

import (
	"strconv"

	"github.com/walteh/gotex/pkg/preparse"
)

// resolverFuel bounds the peeks a definition parser may take between
// two advances. Running dry means a decision loop stopped consuming
// input, which is a bug, not an input property.
const resolverFuel = 256

// optionalKind selects how strictly a block delimiter is expected.
type optionalKind uint8

const (
	// required: the delimiter must be there.
	required optionalKind = iota
	// optionalBlockIdent: tolerate a different token in the
	// delimiter's place and consume it anyway.
	optionalBlockIdent
	// optionalBlock: the whole block may be absent; nothing is
	// consumed when its opener is missing.
	optionalBlock
)

// defParser drives one definition's resolution: a token iterator
// positioned after the definition keyword, the item under
// construction, and the pending named-optional key range between
// seeing `name` and seeing its value.
type defParser struct {
	lexed      *preparse.LexedStr
	iter       *preparse.TokenIter
	item       StoreItem
	optionName *preparse.TokenRange
	fuel       int
}

func newDefParser(lexed *preparse.LexedStr, def preparse.Definition) *defParser {
	return &defParser{
		lexed: lexed,
		iter:  preparse.IterFrom(lexed, def.Index+1),
		item:  StoreItem{Kind: def.Kind, Token: def.Index},
		fuel:  resolverFuel,
	}
}

func (me *defParser) burn() {
	if me.fuel == 0 {
		panic("expansion: resolver fuel exhausted")
	}
	me.fuel--
}

func (me *defParser) peek() preparse.SyntaxKind {
	me.burn()
	return me.iter.Peek()
}

func (me *defParser) peekSecond() preparse.SyntaxKind {
	me.burn()
	return me.iter.PeekNth(1)
}

// peekSkipTrivia looks past any run of trivia without consuming it.
func (me *defParser) peekSkipTrivia() preparse.SyntaxKind {
	me.burn()
	for n := 0; ; n++ {
		kind := me.iter.PeekNth(n)
		if !kind.IsTrivia() {
			return kind
		}
	}
}

func (me *defParser) at(kind preparse.SyntaxKind) bool {
	return me.peek() == kind
}

func (me *defParser) atSecond(kind preparse.SyntaxKind) bool {
	return me.peekSecond() == kind
}

// advance consumes the next token. The sentinel is never consumed;
// advancing at the end of input reports EofReached instead.
func (me *defParser) advance() *ResolveError {
	if me.iter.Peek() == preparse.SynEof {
		return &ResolveError{Kind: EofReached}
	}
	me.iter.Next()
	me.fuel = resolverFuel
	return nil
}

// advanceTo consumes tokens up to, but not including, the next token
// of the given kind.
func (me *defParser) advanceTo(kind preparse.SyntaxKind) *ResolveError {
	me.iter.AdvanceWhile(func(k preparse.SyntaxKind) bool { return k != kind })
	me.fuel = resolverFuel
	if me.iter.Peek() == preparse.SynEof {
		return &ResolveError{Kind: EofReached}
	}
	return nil
}

func (me *defParser) skipTrivia() {
	if me.iter.SkipTrivia() > 0 {
		me.fuel = resolverFuel
	}
}

// expect consumes the next token when it matches. A tolerant
// expectation consumes the token either way; a strict one reports
// UnexpectedToken and leaves it in place.
func (me *defParser) expect(kind preparse.SyntaxKind, tolerant bool) *ResolveError {
	found := me.peek()
	if found == kind || tolerant {
		return me.advance()
	}
	return &ResolveError{Kind: UnexpectedToken, Expected: kind, Found: found}
}

// openBlock positions the parser inside a block. The returned skip
// flag tells the matching closeBlock whether to tolerate a missing
// closer.
func (me *defParser) openBlock(open preparse.SyntaxKind, opt optionalKind) (bool, *ResolveError) {
	me.skipTrivia()
	if opt == optionalBlock && !me.at(open) {
		return true, nil
	}
	tolerant := opt == optionalBlockIdent
	if err := me.expect(open, tolerant); err != nil {
		return false, err
	}
	return tolerant, nil
}

func (me *defParser) closeBlock(closer preparse.SyntaxKind, skip bool) *ResolveError {
	me.skipTrivia()
	return me.expect(closer, skip)
}

func (me *defParser) index() int {
	return me.iter.Index()
}

func (me *defParser) mark() preparse.Marker {
	return me.iter.Mark()
}

func (me *defParser) rangeFrom(m preparse.Marker) preparse.TokenRange {
	return me.iter.RangeFrom(m)
}

func (me *defParser) text(r preparse.TokenRange) (string, *ResolveError) {
	txt, ok := me.iter.Text(r)
	if !ok {
		return "", &ResolveError{Kind: FailedToRetrieveTextRange, Range: r}
	}
	return txt, nil
}

// parseNumber reads the token at idx as a base-10 count, skipping the
// first trim bytes of its text.
func (me *defParser) parseNumber(idx, trim int) (uint16, *ResolveError) {
	txt := me.lexed.TextAt(idx)
	if len(txt) < trim {
		return 0, &ResolveError{Kind: FailedToRetrieveText, Range: preparse.TokenRange{Start: idx, End: idx + 1}}
	}
	n, err := strconv.ParseUint(txt[trim:], 10, 16)
	if err != nil {
		return 0, &ResolveError{Kind: FailedToParseText, Range: preparse.TokenRange{Start: idx, End: idx + 1}}
	}
	return uint16(n), nil
}

// registerCmdName records the peeked Command token, backslash
// included, as the definition's name.
func (me *defParser) registerCmdName() {
	me.item.Name = me.lexed.TextAt(me.index())
}

func (me *defParser) registerEnvName(m preparse.Marker) *ResolveError {
	txt, err := me.text(me.rangeFrom(m))
	if err != nil {
		return err
	}
	me.item.Name = txt
	return nil
}

// registerArgCount parses the peeked Number token into the declared
// argument count.
func (me *defParser) registerArgCount() *ResolveError {
	n, err := me.parseNumber(me.index(), 0)
	if err != nil {
		return err
	}
	me.item.Args.Count = n
	return nil
}

func (me *defParser) registerOptArg(m preparse.Marker) {
	me.item.Args.Optional = append(me.item.Args.Optional, me.rangeFrom(m))
}

// markOptNamedArgName holds on to the key range of a named optional
// until its value range is known.
func (me *defParser) markOptNamedArgName(m preparse.Marker) {
	r := me.rangeFrom(m)
	me.optionName = &r
}

func (me *defParser) registerOptNamedArg(m preparse.Marker) *ResolveError {
	if me.optionName == nil {
		panic("expansion: named argument value registered before its name")
	}
	key, err := me.text(*me.optionName)
	if err != nil {
		return err
	}
	me.optionName = nil
	if me.item.Args.OptionalNamed == nil {
		me.item.Args.OptionalNamed = make(map[string]preparse.TokenRange)
	}
	me.item.Args.OptionalNamed[key] = me.rangeFrom(m)
	return nil
}

// registerSimpleRef records the peeked #N token under its parsed
// parameter number.
func (me *defParser) registerSimpleRef() *ResolveError {
	idx := me.index()
	key, err := me.parseNumber(idx, 1)
	if err != nil {
		return err
	}
	if me.item.Positional == nil {
		me.item.Positional = make(map[uint16][]uint32)
	}
	me.item.Positional[key] = append(me.item.Positional[key], uint32(idx))
	return nil
}

// registerComplexRef records the peeked #name token under its name,
// the marker stripped.
func (me *defParser) registerComplexRef() {
	idx := me.index()
	key := me.lexed.TextAt(idx)[1:]
	if me.item.Named == nil {
		me.item.Named = make(map[string][]uint32)
	}
	me.item.Named[key] = append(me.item.Named[key], uint32(idx))
}

func (me *defParser) registerBody(m preparse.Marker) {
	me.item.Body = me.rangeFrom(m)
}

func (me *defParser) registerSecondBody(m preparse.Marker) {
	r := me.rangeFrom(m)
	me.item.SecondBody = &r
}

package expansion

import "github.com/walteh/gotex/pkg/preparse"

// The grammar, one method per production. Errors abort the current
// definition only; error reporting stays minimal because thorough
// analysis happens once the tree is built.

func (me *defParser) resolveDef() *ResolveError {
	return me.resolveNewCommand()
}

func (me *defParser) resolveNewCommand() *ResolveError {
	if err := me.commandName(); err != nil {
		return err
	}
	if err := me.argCount(); err != nil {
		return err
	}
	if err := me.optionalArgs(); err != nil {
		return err
	}
	return me.body(true)
}

func (me *defParser) resolveNewEnvironment() *ResolveError {
	if err := me.environmentName(); err != nil {
		return err
	}
	if err := me.argCount(); err != nil {
		return err
	}
	if err := me.optionalArgs(); err != nil {
		return err
	}
	if err := me.body(true); err != nil {
		return err
	}
	return me.body(false)
}

// commandName parses `{\name}`. The braces are expected tolerantly so
// a mangled name block does not take the rest of the definition with
// it.
func (me *defParser) commandName() *ResolveError {
	skip, err := me.openBlock(preparse.SynOpenBrace, optionalBlockIdent)
	if err != nil {
		return err
	}
	me.skipTrivia()
	if me.at(preparse.SynCommand) {
		me.registerCmdName()
		if err := me.advance(); err != nil {
			return err
		}
	}
	return me.closeBlock(preparse.SynCloseBrace, skip)
}

// environmentName parses `{name}` where name is a bare identifier.
func (me *defParser) environmentName() *ResolveError {
	skip, err := me.openBlock(preparse.SynOpenBrace, required)
	if err != nil {
		return err
	}
	me.skipTrivia()
	m := me.mark()
	if err := me.matchName(m); err != nil {
		return err
	}
	if err := me.registerEnvName(m); err != nil {
		return err
	}
	return me.closeBlock(preparse.SynCloseBrace, skip)
}

// argCount parses the `[N]` block. Absent, the count stays zero.
func (me *defParser) argCount() *ResolveError {
	me.skipTrivia()
	if !(me.at(preparse.SynOpenBracket) || me.atSecond(preparse.SynNumber)) {
		return nil
	}
	skip, err := me.openBlock(preparse.SynOpenBracket, optionalBlockIdent)
	if err != nil {
		return err
	}
	me.skipTrivia()
	if me.at(preparse.SynNumber) {
		if err := me.registerArgCount(); err != nil {
			return err
		}
		if err := me.advance(); err != nil {
			return err
		}
	}
	return me.closeBlock(preparse.SynCloseBracket, skip)
}

// optionalArgs parses the `[...]` defaults block: comma-separated
// entries, each either a bare default value for the next positional
// optional or a `name = value` pair for a named one. Going through
// matchName first is opportunistic; entries are free-form and a
// mismatch is not an error here.
func (me *defParser) optionalArgs() *ResolveError {
	skip, err := me.openBlock(preparse.SynOpenBracket, optionalBlock)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}
	me.skipTrivia()
	m := me.mark()
entries:
	for {
		_ = me.matchName(m)

		switch me.peekSkipTrivia() {
		case preparse.SynCloseBracket:
			me.registerOptArg(m)
			break entries
		case preparse.SynEqual:
			me.markOptNamedArgName(m)
			if err := me.namedValue(); err != nil {
				return err
			}
			me.skipTrivia()
			m = me.mark()
		case preparse.SynComma:
			me.registerOptArg(m)
			me.skipTrivia()
			if err := me.advance(); err != nil {
				return err
			}
			me.skipTrivia()
			m = me.mark()
		default:
			if err := me.advance(); err != nil {
				return err
			}
		}

		if me.peekSkipTrivia() == preparse.SynCloseBracket {
			break
		}
	}
	if err := me.closeBlock(preparse.SynCloseBracket, false); err != nil {
		return err
	}
	return me.checkArgCount()
}

// checkArgCount enforces that the declared count covers every
// optional argument collected from the defaults block.
func (me *defParser) checkArgCount() *ResolveError {
	declared := int(me.item.Args.Count)
	found := len(me.item.Args.Optional) + len(me.item.Args.OptionalNamed)
	if declared >= found {
		return nil
	}
	return &ResolveError{Kind: WrongArgumentCount, Want: declared, Got: found}
}

// matchName consumes an identifier: a letter or underscore first,
// letters, digits, and underscores after. A trailing underscore is
// left unconsumed rather than rejected.
func (me *defParser) matchName(begin preparse.Marker) *ResolveError {
	switch kind := me.peek(); kind {
	case preparse.SynUnderscore, preparse.SynAWord:
		if err := me.advance(); err != nil {
			return err
		}
	default:
		name, _ := me.iter.Text(me.rangeFrom(begin))
		return &ResolveError{Kind: InvalidName, Found: kind, Name: name}
	}
	for {
		switch me.peek() {
		case preparse.SynUnderscore:
			if !me.nameContinues() {
				return nil
			}
			if err := me.advance(); err != nil {
				return err
			}
		case preparse.SynAWord, preparse.SynNumber:
			if err := me.advance(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (me *defParser) nameContinues() bool {
	switch me.peekSecond() {
	case preparse.SynAWord, preparse.SynUnderscore, preparse.SynNumber:
		return true
	}
	return false
}

// namedValue parses the value of a `name = value` entry: everything
// from after the equals sign to the next comma or the block's closing
// bracket. Opening tokens cannot nest inside a default value.
func (me *defParser) namedValue() *ResolveError {
	if err := me.advanceTo(preparse.SynEqual); err != nil {
		return err
	}
	if err := me.advance(); err != nil {
		return err
	}
	me.skipTrivia()
	m := me.mark()
	for {
		switch kind := me.peek(); kind {
		case preparse.SynCloseBracket:
			return me.registerOptNamedArg(m)
		case preparse.SynComma:
			if err := me.registerOptNamedArg(m); err != nil {
				return err
			}
			return me.advance()
		case preparse.SynOpenBracket, preparse.SynOpenBrace, preparse.SynCloseBrace:
			return &ResolveError{Kind: UnexpectedOpeningToken, Found: kind}
		default:
			if err := me.advance(); err != nil {
				return err
			}
		}
	}
}

// body scans one `{...}` body, tracking nested brace depth and
// recording every parameter reference it passes. An unmatched closing
// brace at depth zero ends the body; the braces themselves stay
// outside the recorded range.
func (me *defParser) body(first bool) *ResolveError {
	skip, err := me.openBlock(preparse.SynOpenBrace, required)
	if err != nil {
		return err
	}
	m := me.mark()
	depth := 0
scan:
	for {
		switch me.peek() {
		case preparse.SynCloseBrace:
			if depth == 0 {
				break scan
			}
			depth--
		case preparse.SynOpenBrace:
			depth++
		case preparse.SynSimpleMacroExpansion:
			if err := me.registerSimpleRef(); err != nil {
				return err
			}
		case preparse.SynComplexMacroExpansion:
			me.registerComplexRef()
		}
		if err := me.advance(); err != nil {
			return err
		}
	}
	if first {
		me.registerBody(m)
	} else {
		me.registerSecondBody(m)
	}
	return me.closeBlock(preparse.SynCloseBrace, skip)
}

package lexer

// The state machine is expressed as data. Each state implements next,
// mapping the lookahead cluster (head, "" at end of input) and the
// text after it (rest) to a step: an action on the cursor, an optional
// token emission, and the state to switch to. The Tokenizer applies
// the action first; an emitted token covers every byte accumulated
// since the previous emission.

type state interface {
	next(head, rest string) step
}

// action moves the cursor: consume n bytes forward, give n bytes back,
// or neither (reconsume: the same head is offered to the next state).
type action struct {
	n      int
	rewind bool
}

func consume(n int) action  { return action{n: n} }
func reconsume() action     { return action{} }
func giveBack(n int) action { return action{n: n, rewind: true} }

type step struct {
	act     action
	emit    Kind
	hasEmit bool
	discard bool
	eof     bool
	next    state
}

func (me action) andRemain() step {
	return step{act: me}
}

func (me action) andTransition(next state) step {
	return step{act: me, next: next}
}

func (me action) andEmit(kind Kind) step {
	return step{act: me, emit: kind, hasEmit: true}
}

func (me action) andDiscard() step {
	return step{act: me, discard: true}
}

func (me step) andTransition(next state) step {
	me.next = next
	return me
}

// begin hands the current head to another state untouched.
func begin(next state) step {
	return reconsume().andTransition(next)
}

func endOfInput() step {
	return step{eof: true}
}

type fromKind uint8

const (
	fromNone fromKind = iota
	fromNewline
	fromBreak
)

// stateTop dispatches between token families. unit is set after a
// number token so a following letter pair can bind as a dimension
// suffix.
type stateTop struct {
	unit bool
}

func (me stateTop) next(head, rest string) step {
	switch {
	case head == "":
		return endOfInput()
	case isBreakCluster(head):
		return begin(stateBreak{})
	case isWhitespaceCluster(head):
		return begin(stateWhitespace{unit: me.unit})
	case isNewlineCluster(head):
		return consume(len(head)).andTransition(stateNewline{unit: me.unit})
	case isDigitCluster(head):
		return begin(stateNumber{})
	case head == "." && startsDigit(rest):
		return consume(1).andTransition(stateFloat{})
	case me.unit && isPlainASCII(head) && isASCIILetterByte(head[0]):
		return begin(stateUnit{})
	case head == "\\":
		return consume(1).andEmit(KindCommandIdent).andTransition(stateCommandBegin{})
	case head == "#":
		return consume(1).andTransition(stateMacroParameter{})
	case head == "%":
		return begin(stateComment{})
	case !isAlphabeticCluster(head):
		return begin(stateSymbol{})
	default:
		return begin(stateWord{})
	}
}

// stateWhitespace accumulates horizontal whitespace. When entered
// after a newline or break, the newline bytes are already accumulated;
// pending counts only the whitespace consumed here so it can be given
// back if a non-whitespace cluster follows.
type stateWhitespace struct {
	unit    bool
	from    fromKind
	pending int
}

func (me stateWhitespace) next(head, rest string) step {
	switch {
	case head == "":
		return reconsume().andEmit(KindWhitespace).andTransition(stateTop{})
	case isNewlineCluster(head) && me.from != fromNone:
		return begin(stateBreak{})
	case isWhitespaceCluster(head):
		me.pending += len(head)
		return consume(len(head)).andTransition(me)
	case me.from == fromBreak:
		return giveBack(me.pending).andEmit(KindBreak).andTransition(stateTop{})
	case me.from == fromNewline:
		return giveBack(me.pending).andEmit(KindNewline).andTransition(stateTop{unit: me.unit})
	default:
		return reconsume().andEmit(KindWhitespace).andTransition(stateTop{unit: me.unit})
	}
}

// stateNewline has consumed exactly one newline unit. A second one
// upgrades the token to a break.
type stateNewline struct {
	unit bool
}

func (me stateNewline) next(head, rest string) step {
	switch {
	case head == "":
		return reconsume().andEmit(KindNewline).andTransition(stateTop{})
	case isWhitespaceCluster(head):
		return begin(stateWhitespace{unit: me.unit, from: fromNewline})
	case isNewlineCluster(head):
		return consume(len(head)).andTransition(stateBreak{})
	default:
		return reconsume().andEmit(KindNewline).andTransition(stateTop{unit: me.unit})
	}
}

// stateBreak swallows any further newlines into one Break token. A
// break always resets unit binding.
type stateBreak struct{}

func (me stateBreak) next(head, rest string) step {
	switch {
	case head == "":
		return reconsume().andEmit(KindBreak).andTransition(stateTop{})
	case isWhitespaceCluster(head):
		return begin(stateWhitespace{from: fromBreak})
	case isNewlineCluster(head):
		return consume(len(head)).andRemain()
	default:
		return reconsume().andEmit(KindBreak).andTransition(stateTop{})
	}
}

type stateNumber struct{}

func (me stateNumber) next(head, rest string) step {
	switch {
	case isDigitCluster(head):
		return consume(len(head)).andRemain()
	case head == "_" && startsDigit(rest):
		return consume(1).andRemain()
	case head == "." && startsDigit(rest):
		return consume(1).andTransition(stateFloat{})
	case head == "e" && len(rest) >= 2 && rest[0] == '-' && rest[1] >= '0' && rest[1] <= '9':
		return consume(2).andTransition(stateFloatExp{})
	case head == "e" && startsDigit(rest):
		return consume(1).andTransition(stateFloatExp{})
	default:
		return reconsume().andEmit(KindInteger).andTransition(stateTop{unit: true})
	}
}

type stateFloat struct{}

func (me stateFloat) next(head, rest string) step {
	switch {
	case isDigitCluster(head):
		return consume(len(head)).andRemain()
	case head == "_" && startsDigit(rest):
		return consume(1).andRemain()
	case head == "e" && len(rest) >= 2 && rest[0] == '-' && rest[1] >= '0' && rest[1] <= '9':
		return consume(2).andTransition(stateFloatExp{})
	case head == "e" && startsDigit(rest):
		return consume(1).andTransition(stateFloatExp{})
	default:
		return reconsume().andEmit(KindFloat).andTransition(stateTop{unit: true})
	}
}

type stateFloatExp struct{}

func (me stateFloatExp) next(head, rest string) step {
	switch {
	case isDigitCluster(head):
		return consume(len(head)).andRemain()
	case head == "_" && startsDigit(rest):
		return consume(1).andRemain()
	default:
		return reconsume().andEmit(KindFloat).andTransition(stateTop{unit: true})
	}
}

// stateUnit checks whether the two clusters after a number form an
// entry of the unit table with a word boundary behind them. On any
// mismatch the letters re-lex as an ordinary word.
type stateUnit struct{}

func (me stateUnit) next(head, rest string) step {
	if head == "" {
		return endOfInput()
	}
	if isPlainASCII(head) && head[0] >= 'b' && head[0] <= 's' {
		second := nextCluster(rest)
		if isPlainASCII(second) && unitTable[[2]byte{head[0], second[0]}] {
			third := nextCluster(rest[len(second):])
			if third == "" || !isAlphabeticCluster(third) {
				return consume(2).andEmit(KindUnit).andTransition(stateTop{})
			}
		}
	}
	return begin(stateWord{})
}

// stateCommandBegin follows an emitted backslash.
type stateCommandBegin struct{}

func (me stateCommandBegin) next(head, rest string) step {
	switch {
	case head == "":
		return reconsume().andDiscard().andTransition(stateTop{})
	case isWhitespaceCluster(head) || isNewlineCluster(head):
		return reconsume().andDiscard().andTransition(stateTop{})
	case head == "u":
		return consume(1).andTransition(stateUnicodeEscape{})
	case head == "@":
		return consume(1).andEmit(KindVariableIdent).andTransition(stateVariableName{})
	case head == ":" && nextCluster(rest) == ":":
		return begin(statePathSep{then: stateCommandContinueBegin{}})
	case isNameStart(head):
		return consume(len(head)).andTransition(stateCommandContinue{})
	case isPlainASCII(head):
		// single-character command like \{ or \\
		return consume(1).andEmit(KindCommand).andTransition(stateTop{})
	default:
		return begin(stateTop{})
	}
}

type stateCommandContinue struct{}

func (me stateCommandContinue) next(head, rest string) step {
	switch {
	case isNameContinue(head):
		return consume(len(head)).andRemain()
	case head == ":" && nextCluster(rest) == ":":
		return reconsume().andEmit(KindCommand).andTransition(statePathSep{then: stateCommandContinueBegin{}})
	default:
		return reconsume().andEmit(KindCommand).andTransition(stateTop{})
	}
}

// stateCommandContinueBegin opens the segment after a path separator
// in command position.
type stateCommandContinueBegin struct{}

func (me stateCommandContinueBegin) next(head, rest string) step {
	switch {
	case head == "":
		return reconsume().andDiscard().andTransition(stateTop{})
	case isNameStart(head):
		return consume(len(head)).andTransition(stateCommandContinue{})
	default:
		return begin(stateTop{})
	}
}

// statePathSep emits a :: pair and resumes in the carried state, so a
// name token never absorbs the separator.
type statePathSep struct {
	then state
}

func (me statePathSep) next(head, rest string) step {
	if head == ":" && nextCluster(rest) == ":" {
		return consume(2).andEmit(KindPathSeparator).andTransition(me.then)
	}
	return begin(stateTop{})
}

// stateVariableName follows an emitted @ sigil.
type stateVariableName struct{}

func (me stateVariableName) next(head, rest string) step {
	switch {
	case head == "":
		return reconsume().andDiscard().andTransition(stateTop{})
	case head == ":" && nextCluster(rest) == ":":
		return begin(statePathSep{then: stateVariableStart{}})
	case isNameStart(head):
		return consume(len(head)).andTransition(stateVariableContinue{})
	default:
		return begin(stateTop{})
	}
}

// stateVariableStart opens the segment after a path separator in
// variable position.
type stateVariableStart struct{}

func (me stateVariableStart) next(head, rest string) step {
	switch {
	case head == "":
		return reconsume().andDiscard().andTransition(stateTop{})
	case isNameStart(head):
		return consume(len(head)).andTransition(stateVariableContinue{})
	default:
		return begin(stateTop{})
	}
}

type stateVariableContinue struct{}

func (me stateVariableContinue) next(head, rest string) step {
	switch {
	case isNameContinue(head):
		return consume(len(head)).andRemain()
	case head == ":" && nextCluster(rest) == ":":
		return reconsume().andEmit(KindVariable).andTransition(statePathSep{then: stateVariableStart{}})
	default:
		return reconsume().andEmit(KindVariable).andTransition(stateTop{})
	}
}

// stateUnicodeEscape has consumed the u after a backslash and decides
// between an escape body and an ordinary command starting with u.
type stateUnicodeEscape struct{}

func (me stateUnicodeEscape) next(head, rest string) step {
	switch {
	case head == "{":
		return consume(1).andTransition(stateUnicodeEscapeValue{})
	case head == "" || isWhitespaceCluster(head) || isNewlineCluster(head):
		return reconsume().andEmit(KindUnicodeEscape).andTransition(stateTop{})
	default:
		return begin(stateCommandContinue{})
	}
}

type stateUnicodeEscapeValue struct{}

func (me stateUnicodeEscapeValue) next(head, rest string) step {
	switch {
	case head == "":
		return reconsume().andEmit(KindUnicodeEscape).andTransition(stateTop{})
	case head == "}":
		return consume(1).andEmit(KindUnicodeEscape).andTransition(stateTop{})
	default:
		return consume(len(head)).andRemain()
	}
}

// stateMacroParameter has consumed the # marker. Digits form a
// positional parameter, letters a named one, anything else leaves a
// bare number sign.
type stateMacroParameter struct{}

func (me stateMacroParameter) next(head, rest string) step {
	switch {
	case isDigitCluster(head):
		return consume(len(head)).andTransition(stateMacroParamDigits{})
	case isAlphabeticCluster(head):
		return consume(len(head)).andTransition(stateMacroParamContinue{})
	default:
		return reconsume().andEmit(KindNumSign).andTransition(stateTop{})
	}
}

type stateMacroParamDigits struct{}

func (me stateMacroParamDigits) next(head, rest string) step {
	if isDigitCluster(head) {
		return consume(len(head)).andRemain()
	}
	return reconsume().andEmit(KindMacroParameter).andTransition(stateTop{})
}

type stateMacroParamContinue struct{}

func (me stateMacroParamContinue) next(head, rest string) step {
	if isAlphabeticCluster(head) || isDigitCluster(head) || firstRune(head) == '_' {
		return consume(len(head)).andRemain()
	}
	return reconsume().andEmit(KindMacroParameter).andTransition(stateTop{})
}

// stateComment runs from % to the end of the line, newline excluded.
type stateComment struct{}

func (me stateComment) next(head, rest string) step {
	if head == "" || isNewlineCluster(head) {
		return reconsume().andEmit(KindComment).andTransition(stateTop{})
	}
	return consume(len(head)).andRemain()
}

// stateSymbol emits one symbol token, pairing adjacent clusters when
// they form a composite.
type stateSymbol struct{}

func (me stateSymbol) next(head, rest string) step {
	if head == "" {
		return endOfInput()
	}
	if isPlainASCII(head) {
		second := nextCluster(rest)
		if isPlainASCII(second) {
			if kind, ok := compositeTable[[2]byte{head[0], second[0]}]; ok {
				return consume(2).andEmit(kind).andTransition(stateTop{})
			}
		}
		if kind, ok := singleSymbolTable[head[0]]; ok {
			return consume(1).andEmit(kind).andTransition(stateTop{})
		}
	}
	return consume(len(head)).andEmit(KindSymbol).andTransition(stateTop{})
}

// stateWord splits words by script: runs led by an ASCII letter stay
// ASCII-only, anything else may mix scripts.
type stateWord struct{}

func (me stateWord) next(head, rest string) step {
	if head == "" {
		return endOfInput()
	}
	if isAWordCluster(head) {
		return begin(stateAWord{})
	}
	return begin(stateUWord{})
}

type stateAWord struct{}

func (me stateAWord) next(head, rest string) step {
	if isAWordCluster(head) {
		return consume(len(head)).andRemain()
	}
	return reconsume().andEmit(KindAWord).andTransition(stateTop{})
}

type stateUWord struct{}

func (me stateUWord) next(head, rest string) step {
	if isAlphabeticCluster(head) {
		return consume(len(head)).andRemain()
	}
	return reconsume().andEmit(KindUWord).andTransition(stateTop{})
}

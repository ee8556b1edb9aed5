package expansion

import (
	"fmt"

	"github.com/walteh/gotex/pkg/preparse"
)

// ResolveErrorKind names the ways resolving a single definition can
// fail. A failure aborts only its own definition; the remaining
// definitions of the source unit still resolve.
type ResolveErrorKind uint8

const (
	// UnexpectedToken: a required structural token was not found.
	UnexpectedToken ResolveErrorKind = iota
	// UnexpectedOpeningToken: a bracket or brace inside a named
	// default value, where nesting is not allowed.
	UnexpectedOpeningToken
	// InvalidName: an environment name must start with a letter or
	// underscore.
	InvalidName
	// WrongArgumentCount: more optional arguments declared than the
	// argument count allows.
	WrongArgumentCount
	// FailedToRetrieveText: a token index had no source text.
	FailedToRetrieveText
	// FailedToRetrieveTextRange: a token range had no source text.
	FailedToRetrieveTextRange
	// FailedToParseText: a numeric token or parameter reference did
	// not parse as a 16-bit count.
	FailedToParseText
	// EofReached: the input ended in the middle of the definition.
	EofReached
)

var resolveErrorNames = [...]string{
	UnexpectedToken:           "unexpected token",
	UnexpectedOpeningToken:    "unexpected opening token",
	InvalidName:               "invalid name",
	WrongArgumentCount:        "wrong argument count",
	FailedToRetrieveText:      "failed to retrieve text",
	FailedToRetrieveTextRange: "failed to retrieve text range",
	FailedToParseText:         "failed to parse text",
	EofReached:                "end of input reached",
}

func (me ResolveErrorKind) String() string {
	if int(me) < len(resolveErrorNames) {
		return resolveErrorNames[me]
	}
	return "ResolveErrorKind(?)"
}

// ResolveError is the failure record of one definition. Token is the
// resolver's position when it gave up; the payload fields are filled
// per kind: Expected and Found for UnexpectedToken, Found alone for
// UnexpectedOpeningToken, Found and Name for InvalidName, Want and
// Got for WrongArgumentCount, Range for the text retrieval and parse
// failures.
type ResolveError struct {
	Kind     ResolveErrorKind
	Token    int
	Expected preparse.SyntaxKind
	Found    preparse.SyntaxKind
	Name     string
	Range    preparse.TokenRange
	Want     int
	Got      int
}

func (me ResolveError) Error() string {
	switch me.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("expected %s but found %s at token %d", me.Expected, me.Found, me.Token)
	case UnexpectedOpeningToken:
		return fmt.Sprintf("found %s where no opening token is allowed at token %d", me.Found, me.Token)
	case InvalidName:
		return fmt.Sprintf("invalid name %q starting with %s at token %d", me.Name, me.Found, me.Token)
	case WrongArgumentCount:
		return fmt.Sprintf("argument count %d declared but %d optional arguments found at token %d", me.Want, me.Got, me.Token)
	case FailedToRetrieveTextRange, FailedToParseText:
		return fmt.Sprintf("%s %d..%d at token %d", me.Kind, me.Range.Start, me.Range.End, me.Token)
	}
	return fmt.Sprintf("%s at token %d", me.Kind, me.Token)
}

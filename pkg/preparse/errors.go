package preparse

import "fmt"

// PreparseErrorKind names the ways a command or variable name can be
// malformed. Every kind is locally recovered: the classifier emits an
// Error token and keeps going.
type PreparseErrorKind uint8

const (
	// CommandNameMissing: a backslash followed by trivia or the end
	// of input instead of a name.
	CommandNameMissing PreparseErrorKind = iota
	// InvalidCommandName: a backslash followed by material that can
	// never start a command name, such as a non-ASCII word.
	InvalidCommandName
	// InvalidCommandNameEnding: a command name ending in an
	// underscore or a single colon.
	InvalidCommandNameEnding
	// InvalidCommandPrefix: a digit-only name segment continued by
	// further name material.
	InvalidCommandPrefix
	// VariableNameMissing: the @ sigil with nothing usable after it.
	VariableNameMissing
	// InvalidVariableName: variable names are ASCII words,
	// underscores, and digits only.
	InvalidVariableName
	// InvalidVariableNameEnding: a variable name ending in an
	// underscore, colon, or dangling @.
	InvalidVariableNameEnding
	// InvalidModuleName: a path separator not followed by a valid
	// module segment.
	InvalidModuleName
	// InvalidFunctionName: a malformed final segment of a
	// path-qualified name.
	InvalidFunctionName
)

var preparseErrorNames = [...]string{
	CommandNameMissing:        "command name missing",
	InvalidCommandName:        "invalid command name",
	InvalidCommandNameEnding:  "invalid command name ending",
	InvalidCommandPrefix:      "invalid command name prefix",
	VariableNameMissing:       "variable name missing",
	InvalidVariableName:       "invalid variable name",
	InvalidVariableNameEnding: "invalid variable name ending",
	InvalidModuleName:         "invalid or missing module name",
	InvalidFunctionName:       "invalid function name",
}

func (me PreparseErrorKind) String() string {
	if int(me) < len(preparseErrorNames) {
		return preparseErrorNames[me]
	}
	return "PreparseErrorKind(?)"
}

// PreparseError records a classification failure. Token is the index
// of the Error syntax token that was emitted in its place.
type PreparseError struct {
	Kind  PreparseErrorKind
	Token int
}

func (me PreparseError) Error() string {
	return fmt.Sprintf("%s at token %d", me.Kind, me.Token)
}

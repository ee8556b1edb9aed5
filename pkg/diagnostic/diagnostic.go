// Package diagnostic renders the pipeline's error lists as
// position-addressed findings for the driver to display.
package diagnostic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/walteh/gotex/pkg/expansion"
	"github.com/walteh/gotex/pkg/position"
	"github.com/walteh/gotex/pkg/preparse"
	"gitlab.com/tozd/go/errors"
)

// Generator turns the token-index errors of one classified source unit
// into diagnostics.
type Generator interface {
	Generate(ctx context.Context, lexed *preparse.LexedStr, store *expansion.Store, resolveErrs []expansion.ResolveError) (*Diagnostics, error)
}

// Diagnostics groups the findings of one source unit by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Hints    []Diagnostic
}

// HasErrors reports whether any error-severity finding was produced.
func (me *Diagnostics) HasErrors() bool {
	return len(me.Errors) > 0
}

// Count is the total number of findings across all severities.
func (me *Diagnostics) Count() int {
	return len(me.Errors) + len(me.Warnings) + len(me.Hints)
}

// Diagnostic is a single finding: a message anchored at the byte span
// of the offending token.
type Diagnostic struct {
	Message  string
	Location position.RawPosition
	Severity Severity
}

// Severity is the display weight of a diagnostic.
type Severity string

const (
	SeverityError       Severity = "error"
	SeverityWarning     Severity = "warning"
	SeverityInformation Severity = "info"
	SeverityHint        Severity = "hint"
)

// DefaultGenerator maps preparse errors and resolver errors to
// error-severity diagnostics. WarnShadowed adds warnings for
// definitions whose name is taken over by a later definition;
// IncludeHints adds an informational entry per resolved definition.
type DefaultGenerator struct {
	WarnShadowed bool
	IncludeHints bool
}

func NewDefaultGenerator() *DefaultGenerator {
	return &DefaultGenerator{WarnShadowed: true}
}

// Generate implements Generator.
func (me *DefaultGenerator) Generate(ctx context.Context, lexed *preparse.LexedStr, store *expansion.Store, resolveErrs []expansion.ResolveError) (*Diagnostics, error) {
	if lexed == nil {
		return nil, errors.New("lexed source is nil")
	}

	diagnostics := &Diagnostics{}

	for _, perr := range lexed.Errors() {
		diagnostics.Errors = append(diagnostics.Errors, Diagnostic{
			Message:  preparseMessage(lexed, perr),
			Location: locationOf(lexed, perr.Token),
			Severity: SeverityError,
		})
	}

	for _, rerr := range resolveErrs {
		diagnostics.Errors = append(diagnostics.Errors, Diagnostic{
			Message:  resolveMessage(rerr),
			Location: locationOf(lexed, rerr.Token),
			Severity: SeverityError,
		})
	}

	if store != nil && me.WarnShadowed {
		diagnostics.Warnings = append(diagnostics.Warnings, shadowWarnings(lexed, store)...)
	}
	if store != nil && me.IncludeHints {
		diagnostics.Hints = append(diagnostics.Hints, definitionHints(lexed, store)...)
	}

	return diagnostics, nil
}

// locationOf anchors a diagnostic at token idx. The Eof sentinel has
// no text, so findings there collapse to a zero-length position at the
// end of the source.
func locationOf(lexed *preparse.LexedStr, idx int) position.RawPosition {
	return position.New(lexed.TextAt(idx), lexed.StartOf(idx))
}

func preparseMessage(lexed *preparse.LexedStr, perr preparse.PreparseError) string {
	text := lexed.TextAt(perr.Token)
	if text == "" {
		return perr.Kind.String()
	}
	return fmt.Sprintf("%s: %q", perr.Kind, text)
}

// resolveMessage renders a resolver error without the token index;
// the diagnostic's location already carries the position.
func resolveMessage(rerr expansion.ResolveError) string {
	switch rerr.Kind {
	case expansion.UnexpectedToken:
		return fmt.Sprintf("expected %s but found %s", rerr.Expected, rerr.Found)
	case expansion.UnexpectedOpeningToken:
		return fmt.Sprintf("%s is not allowed inside a default value", rerr.Found)
	case expansion.InvalidName:
		return fmt.Sprintf("invalid name %q", rerr.Name)
	case expansion.WrongArgumentCount:
		return fmt.Sprintf("argument count %d does not cover %d optional arguments", rerr.Want, rerr.Got)
	case expansion.EofReached:
		return "definition is unterminated"
	}
	return rerr.Kind.String()
}

// shadowWarnings flags every definition whose name the store's index
// no longer points at. The warning sits on the shadowed definition's
// head token.
func shadowWarnings(lexed *preparse.LexedStr, store *expansion.Store) []Diagnostic {
	var warnings []Diagnostic
	for _, kind := range []preparse.DefinitionKind{preparse.DefMacro, preparse.DefDef, preparse.DefEnvironment} {
		for _, item := range store.ByKind(kind) {
			winner, ok := store.Get(item.Name)
			if !ok || (winner.Kind == item.Kind && winner.Token == item.Token) {
				continue
			}
			warnings = append(warnings, Diagnostic{
				Message:  fmt.Sprintf("%s %q is shadowed by a later definition", item.Kind, item.Name),
				Location: locationOf(lexed, item.Token),
				Severity: SeverityWarning,
			})
		}
	}
	return warnings
}

func definitionHints(lexed *preparse.LexedStr, store *expansion.Store) []Diagnostic {
	var hints []Diagnostic
	for _, kind := range []preparse.DefinitionKind{preparse.DefMacro, preparse.DefDef, preparse.DefEnvironment} {
		for _, item := range store.ByKind(kind) {
			optional := len(item.Args.Optional) + len(item.Args.OptionalNamed)
			hints = append(hints, Diagnostic{
				Message:  fmt.Sprintf("%s %q takes %d arguments (%d optional)", item.Kind, item.Name, item.Args.Count, optional),
				Location: locationOf(lexed, item.Token),
				Severity: SeverityInformation,
			})
		}
	}
	return hints
}

// Formatter renders diagnostics into an output format.
type Formatter interface {
	Format(diagnostics *Diagnostics) ([]byte, error)
}

// TextFormatter renders one finding per line as
// path:line:column: severity: message, lines and columns one-based.
type TextFormatter struct {
	Path string
	Src  string
}

func NewTextFormatter(path, src string) *TextFormatter {
	return &TextFormatter{Path: path, Src: src}
}

// Format implements Formatter. Findings come out grouped by severity,
// errors first.
func (me *TextFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.New("diagnostics is nil")
	}

	var out []byte
	for _, group := range [][]Diagnostic{diagnostics.Errors, diagnostics.Warnings, diagnostics.Hints} {
		for _, d := range group {
			line, col := d.Location.GetLineAndColumn(me.Src)
			out = append(out, fmt.Sprintf("%s:%d:%d: %s: %s\n", me.Path, line+1, col+1, d.Severity, d.Message)...)
		}
	}
	return out, nil
}

// VSCodeFormatter renders diagnostics as the JSON array editors expect
// from external linters: numeric severity plus a zero-based
// line/character range.
type VSCodeFormatter struct {
	Src string
}

func NewVSCodeFormatter(src string) *VSCodeFormatter {
	return &VSCodeFormatter{Src: src}
}

type vscodePlace struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type vscodeRange struct {
	Start vscodePlace `json:"start"`
	End   vscodePlace `json:"end"`
}

type vscodeDiagnostic struct {
	Severity int         `json:"severity"`
	Message  string      `json:"message"`
	Range    vscodeRange `json:"range"`
}

var vscodeSeverities = map[Severity]int{
	SeverityError:       1,
	SeverityWarning:     2,
	SeverityInformation: 3,
	SeverityHint:        4,
}

// Format implements Formatter.
func (me *VSCodeFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.New("diagnostics is nil")
	}

	result := []vscodeDiagnostic{}
	for _, group := range [][]Diagnostic{diagnostics.Errors, diagnostics.Warnings, diagnostics.Hints} {
		for _, d := range group {
			r := d.Location.GetRange(me.Src)
			result = append(result, vscodeDiagnostic{
				Severity: vscodeSeverities[d.Severity],
				Message:  d.Message,
				Range: vscodeRange{
					Start: vscodePlace{Line: r.Start.Line, Character: r.Start.Character},
					End:   vscodePlace{Line: r.End.Line, Character: r.End.Character},
				},
			})
		}
	}
	return json.Marshal(result)
}

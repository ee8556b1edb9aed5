package diagnostic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/gotex/pkg/diagnostic"
	"github.com/walteh/gotex/pkg/expansion"
	"github.com/walteh/gotex/pkg/position"
	"github.com/walteh/gotex/pkg/preparse"
)

func generate(t *testing.T, gen *diagnostic.DefaultGenerator, src string) *diagnostic.Diagnostics {
	t.Helper()
	ctx := context.Background()
	lexed := preparse.NewLexedStr(src)
	store, resolveErrs := expansion.Resolve(ctx, lexed)

	got, err := gen.Generate(ctx, lexed, store, resolveErrs)
	require.NoError(t, err)
	return got
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name         string
		src          string
		wantErrors   []diagnostic.Diagnostic
		wantWarnings []diagnostic.Diagnostic
	}{
		{
			name: "clean source",
			src:  `\newcommand{\name}{as#1dfasdf}`,
		},
		{
			name: "malformed command name",
			src:  `\ä`,
			wantErrors: []diagnostic.Diagnostic{
				{
					Message:  `invalid command name: "\\ä"`,
					Location: position.New(`\ä`, 0),
					Severity: diagnostic.SeverityError,
				},
			},
		},
		{
			name: "unterminated definition",
			src:  `\newcommand{\name}`,
			wantErrors: []diagnostic.Diagnostic{
				{
					Message:  "expected OpenBrace but found Eof",
					Location: position.New("", 18),
					Severity: diagnostic.SeverityError,
				},
			},
		},
		{
			name: "shadowed definition",
			src:  `\def{\a}{x}\newcommand{\a}{y}`,
			wantWarnings: []diagnostic.Diagnostic{
				{
					Message:  `def "\a" is shadowed by a later definition`,
					Location: position.New(`\def`, 0),
					Severity: diagnostic.SeverityWarning,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generate(t, diagnostic.NewDefaultGenerator(), tt.src)

			require.Equal(t, tt.wantErrors, got.Errors)
			require.Equal(t, tt.wantWarnings, got.Warnings)
			assert.Empty(t, got.Hints)
			assert.Equal(t, len(tt.wantErrors) > 0, got.HasErrors())
		})
	}
}

func TestGenerateHints(t *testing.T) {
	gen := &diagnostic.DefaultGenerator{IncludeHints: true}
	got := generate(t, gen, `\newcommand{\name}[2][x]{#1#2}`)

	require.Empty(t, got.Errors)
	require.Equal(t, []diagnostic.Diagnostic{
		{
			Message:  `macro "\name" takes 2 arguments (1 optional)`,
			Location: position.New(`\newcommand`, 0),
			Severity: diagnostic.SeverityInformation,
		},
	}, got.Hints)
}

func TestGenerateNilLexed(t *testing.T) {
	gen := diagnostic.NewDefaultGenerator()
	_, err := gen.Generate(context.Background(), nil, nil, nil)
	require.Error(t, err)
}

func TestTextFormatter(t *testing.T) {
	src := "text\n\\ä more"
	got := generate(t, diagnostic.NewDefaultGenerator(), src)
	require.Len(t, got.Errors, 1)

	out, err := diagnostic.NewTextFormatter("doc.tex", src).Format(got)
	require.NoError(t, err)
	require.Equal(t, "doc.tex:2:1: error: invalid command name: \"\\\\ä\"\n", string(out))
}

func TestVSCodeFormatter(t *testing.T) {
	src := `\ä`
	got := generate(t, diagnostic.NewDefaultGenerator(), src)

	out, err := diagnostic.NewVSCodeFormatter(src).Format(got)
	require.NoError(t, err)
	require.JSONEq(t, `[
		{
			"severity": 1,
			"message": "invalid command name: \"\\\\ä\"",
			"range": {
				"start": {"line": 0, "character": 0},
				"end": {"line": 0, "character": 3}
			}
		}
	]`, string(out))
}

func TestFormatterNilDiagnostics(t *testing.T) {
	_, err := diagnostic.NewTextFormatter("doc.tex", "").Format(nil)
	require.Error(t, err)

	_, err = diagnostic.NewVSCodeFormatter("").Format(nil)
	require.Error(t, err)
}

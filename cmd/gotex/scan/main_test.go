package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFs(t *testing.T, path, src string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(src), 0644))
	return fs
}

func TestRunText(t *testing.T) {
	fs := newTestFs(t, "doc.tex", `\newcommand{\abs}[1]{|#1|}`)
	var out bytes.Buffer

	me := &Handler{format: "text"}
	require.NoError(t, me.Run(context.Background(), fs, &out, "doc.tex"))

	assert.Contains(t, out.String(), "NewCommand")
	assert.Contains(t, out.String(), `"\\newcommand"`)
	assert.Contains(t, out.String(), "SimpleMacroExpansion")
	assert.NotContains(t, out.String(), "Whitespace")
}

func TestRunTextWithErrors(t *testing.T) {
	fs := newTestFs(t, "doc.tex", "\\ä")
	var out bytes.Buffer

	me := &Handler{format: "text"}
	require.NoError(t, me.Run(context.Background(), fs, &out, "doc.tex"))

	assert.Contains(t, out.String(), "error: invalid command name")
}

func TestRunJSON(t *testing.T) {
	fs := newTestFs(t, "doc.tex", `\newcommand{\abs}[1]{|#1|}`)
	var out bytes.Buffer

	me := &Handler{format: "json"}
	require.NoError(t, me.Run(context.Background(), fs, &out, "doc.tex"))

	var view scanView
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))

	assert.Equal(t, "doc.tex", view.Path)
	require.NotEmpty(t, view.Tokens)
	assert.Equal(t, "NewCommand", view.Tokens[0].Kind)
	assert.Equal(t, `\newcommand`, view.Tokens[0].Text)
	assert.Empty(t, view.Errors)
}

func TestRunUnknownFormat(t *testing.T) {
	fs := newTestFs(t, "doc.tex", "x")
	var out bytes.Buffer

	me := &Handler{format: "sexp"}
	err := me.Run(context.Background(), fs, &out, "doc.tex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "sexp"`)
}

func TestRunMissingFile(t *testing.T) {
	me := &Handler{format: "text"}
	err := me.Run(context.Background(), afero.NewMemMapFs(), &bytes.Buffer{}, "nope.tex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading nope.tex")
}

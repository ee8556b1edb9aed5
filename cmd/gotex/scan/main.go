package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gotex/pkg/preparse"
)

type Handler struct {
	format string
	all    bool
}

func NewScanCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "print the classified token stream of a source file",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&me.format, "format", "text", "output format (text or json)")
	cmd.Flags().BoolVar(&me.all, "all", false, "include whitespace, newline and comment tokens")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), afero.NewOsFs(), cmd.OutOrStdout(), args[0])
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, fs afero.Fs, out io.Writer, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}

	lexed := preparse.NewLexedStr(string(data))

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("tokens", lexed.Len()).
		Int("errors", len(lexed.Errors())).
		Int("definitions", len(lexed.Definitions())).
		Msg("classified source")

	switch me.format {
	case "text":
		return me.writeText(out, lexed)
	case "json":
		return me.writeJSON(out, path, lexed)
	default:
		return errors.Errorf("unknown format %q", me.format)
	}
}

func (me *Handler) writeText(out io.Writer, lexed *preparse.LexedStr) error {
	for i := 0; i < lexed.Len(); i++ {
		kind := lexed.KindAt(i)
		if !me.all && kind.IsTrivia() {
			continue
		}
		if _, err := fmt.Fprintf(out, "%5d  %-22s %6d  %q\n", i, kind, lexed.StartOf(i), lexed.TextAt(i)); err != nil {
			return errors.Errorf("writing token table: %w", err)
		}
	}

	if len(lexed.Errors()) > 0 {
		fmt.Fprintln(out)
		for _, perr := range lexed.Errors() {
			fmt.Fprintf(out, "error: %s: %q at offset %d\n", perr.Kind, lexed.TextAt(perr.Token), lexed.StartOf(perr.Token))
		}
	}

	return nil
}

type tokenView struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	Text  string `json:"text"`
}

type errorView struct {
	Kind  string `json:"kind"`
	Token int    `json:"token"`
	Start int    `json:"start"`
	Text  string `json:"text"`
}

type scanView struct {
	Path   string      `json:"path"`
	Tokens []tokenView `json:"tokens"`
	Errors []errorView `json:"errors,omitempty"`
}

func (me *Handler) writeJSON(out io.Writer, path string, lexed *preparse.LexedStr) error {
	view := scanView{
		Path:   path,
		Tokens: make([]tokenView, 0, lexed.Len()),
	}

	for i := 0; i < lexed.Len(); i++ {
		kind := lexed.KindAt(i)
		if !me.all && kind.IsTrivia() {
			continue
		}
		view.Tokens = append(view.Tokens, tokenView{
			Index: i,
			Kind:  kind.String(),
			Start: lexed.StartOf(i),
			Text:  lexed.TextAt(i),
		})
	}

	for _, perr := range lexed.Errors() {
		view.Errors = append(view.Errors, errorView{
			Kind:  perr.Kind.String(),
			Token: perr.Token,
			Start: lexed.StartOf(perr.Token),
			Text:  lexed.TextAt(perr.Token),
		})
	}

	encoded, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return errors.Errorf("encoding token stream: %w", err)
	}

	if _, err := fmt.Fprintf(out, "%s\n", encoded); err != nil {
		return errors.Errorf("writing token stream: %w", err)
	}

	return nil
}

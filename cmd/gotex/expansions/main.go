package expansions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gotex/pkg/expansion"
	"github.com/walteh/gotex/pkg/preparse"
)

type Handler struct {
	bodies bool
}

func NewExpansionsCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "expansions <file>",
		Short: "resolve the definitions of a source file and print the store as JSON",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().BoolVar(&me.bodies, "bodies", false, "include the body source text of each definition")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), afero.NewOsFs(), cmd.OutOrStdout(), args[0])
	}

	return cmd
}

type rangeView struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type argsView struct {
	Count         uint16               `json:"count"`
	Optional      []rangeView          `json:"optional,omitempty"`
	OptionalNamed map[string]rangeView `json:"optional_named,omitempty"`
}

type itemView struct {
	Kind       string              `json:"kind"`
	Name       string              `json:"name"`
	Token      int                 `json:"token"`
	Args       argsView            `json:"args"`
	Body       rangeView           `json:"body"`
	BodyText   string              `json:"body_text,omitempty"`
	SecondBody *rangeView          `json:"second_body,omitempty"`
	Positional map[uint16][]uint32 `json:"positional,omitempty"`
	Named      map[string][]uint32 `json:"named,omitempty"`
}

type resolveErrorView struct {
	Kind    string `json:"kind"`
	Token   int    `json:"token"`
	Message string `json:"message"`
}

type storeView struct {
	Path         string             `json:"path"`
	Macros       []itemView         `json:"macros"`
	Defs         []itemView         `json:"defs"`
	Environments []itemView         `json:"environments"`
	Errors       []resolveErrorView `json:"errors,omitempty"`
}

func (me *Handler) Run(ctx context.Context, fs afero.Fs, out io.Writer, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}

	lexed := preparse.NewLexedStr(string(data))
	store, resolveErrs := expansion.Resolve(ctx, lexed)

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("resolved", store.Len()).
		Int("failed", len(resolveErrs)).
		Msg("resolved definitions")

	view := storeView{
		Path:         path,
		Macros:       me.itemViews(lexed, store.ByKind(preparse.DefMacro)),
		Defs:         me.itemViews(lexed, store.ByKind(preparse.DefDef)),
		Environments: me.itemViews(lexed, store.ByKind(preparse.DefEnvironment)),
	}

	for _, rerr := range resolveErrs {
		view.Errors = append(view.Errors, resolveErrorView{
			Kind:    rerr.Kind.String(),
			Token:   rerr.Token,
			Message: rerr.Error(),
		})
	}

	encoded, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return errors.Errorf("encoding store: %w", err)
	}

	if _, err := fmt.Fprintf(out, "%s\n", encoded); err != nil {
		return errors.Errorf("writing store: %w", err)
	}

	return nil
}

func (me *Handler) itemViews(lexed *preparse.LexedStr, items []expansion.StoreItem) []itemView {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		view := itemView{
			Kind:       item.Kind.String(),
			Name:       item.Name,
			Token:      item.Token,
			Args:       newArgsView(item.Args),
			Body:       rangeView{Start: item.Body.Start, End: item.Body.End},
			Positional: item.Positional,
			Named:      item.Named,
		}

		if item.SecondBody != nil {
			view.SecondBody = &rangeView{Start: item.SecondBody.Start, End: item.SecondBody.End}
		}

		if me.bodies {
			if text, ok := lexed.TextRange(item.Body); ok {
				view.BodyText = text
			}
		}

		views = append(views, view)
	}
	return views
}

func newArgsView(args expansion.Args) argsView {
	view := argsView{Count: args.Count}
	for _, r := range args.Optional {
		view.Optional = append(view.Optional, rangeView{Start: r.Start, End: r.End})
	}
	if len(args.OptionalNamed) > 0 {
		view.OptionalNamed = make(map[string]rangeView, len(args.OptionalNamed))
		for name, r := range args.OptionalNamed {
			view.OptionalNamed[name] = rangeView{Start: r.Start, End: r.End}
		}
	}
	return view
}

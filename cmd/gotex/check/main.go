package check

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/gotex/pkg/config"
	"github.com/walteh/gotex/pkg/diagnostic"
	"github.com/walteh/gotex/pkg/expansion"
	"github.com/walteh/gotex/pkg/finder"
	"github.com/walteh/gotex/pkg/preparse"
	"github.com/walteh/gotex/pkg/targz"
)

type Handler struct {
	configPath string
	format     string
	failFast   bool
	hints      bool
}

func NewCheckCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "check [globs...]",
		Short: "check source files and report diagnostics",
		Long: `check runs the full front end over every matching source file and
reports classification and definition-resolution problems. Sources come
either from glob arguments or from the check blocks of a config file.
Archives ending in .tar.gz or .tgz are checked entry by entry.`,
	}

	cmd.Flags().StringVar(&me.configPath, "config", "", "path to a gotex config file (HCL or YAML)")
	cmd.Flags().StringVar(&me.format, "format", "", "output format (text or vscode), overrides the config")
	cmd.Flags().BoolVar(&me.failFast, "fail-fast", false, "stop after the first file with errors")
	cmd.Flags().BoolVar(&me.hints, "hints", false, "include an informational entry per resolved definition")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), afero.NewOsFs(), cmd.OutOrStdout(), args)
	}

	return cmd
}

// tally accumulates results across files so the final error can say
// how bad things were.
type tally struct {
	files      int
	errorFiles int
	errors     int
	warnings   int
}

func (me *Handler) Run(ctx context.Context, fs afero.Fs, out io.Writer, globs []string) error {
	cfg, err := me.loadConfig(fs, globs)
	if err != nil {
		return err
	}

	format := cfg.Format()
	if me.format != "" {
		format = me.format
	}
	switch format {
	case config.FormatText, config.FormatVSCode:
	default:
		return errors.Errorf("unknown format %q", format)
	}

	failFast := me.failFast
	warnShadowed := true
	if cfg.Defaults != nil {
		failFast = failFast || cfg.Defaults.FailFast
		warnShadowed = cfg.Defaults.WarnShadowed
	}

	gen := diagnostic.NewDefaultGenerator()
	gen.WarnShadowed = warnShadowed
	gen.IncludeHints = me.hints || (cfg.Defaults != nil && cfg.Defaults.Hints)

	find := finder.NewDefaultFinder(fs)

	var total tally
	var fileErrs error
	for _, entry := range cfg.Checks {
		paths, err := find.FindSources(ctx, entry.Include, entry.Exclude)
		if err != nil {
			return errors.Errorf("check %q: %w", entry.Name, err)
		}

		zerolog.Ctx(ctx).Debug().
			Str("check", entry.Name).
			Int("files", len(paths)).
			Msg("running check")

		for _, path := range paths {
			hadErrors, err := me.checkPath(ctx, fs, out, gen, format, path, &total)
			if err != nil {
				fileErrs = multierr.Append(fileErrs, err)
				continue
			}
			if hadErrors && failFast {
				return errors.Errorf("found %d errors in %s", total.errors, path)
			}
		}
	}

	zerolog.Ctx(ctx).Info().
		Int("files", total.files).
		Int("errors", total.errors).
		Int("warnings", total.warnings).
		Msg("check finished")

	if fileErrs != nil {
		return errors.Errorf("some files could not be checked: %w", fileErrs)
	}
	if total.errors > 0 {
		return errors.Errorf("found %d errors in %d of %d files", total.errors, total.errorFiles, total.files)
	}

	return nil
}

func (me *Handler) loadConfig(fs afero.Fs, globs []string) (*config.Config, error) {
	if me.configPath != "" {
		cfg, err := config.Load(fs, me.configPath)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	if len(globs) == 0 {
		return nil, errors.New("nothing to check: pass glob arguments or --config")
	}
	return config.Default(globs), nil
}

func isBundle(path string) bool {
	return strings.HasSuffix(path, ".tar.gz") || strings.HasSuffix(path, ".tgz")
}

func (me *Handler) checkPath(ctx context.Context, fs afero.Fs, out io.Writer, gen diagnostic.Generator, format, path string, total *tally) (bool, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return false, errors.Errorf("reading %s: %w", path, err)
	}

	if !isBundle(path) {
		return me.checkSource(ctx, out, gen, format, path, string(data), total)
	}

	bundle, err := targz.LoadWithOptions(data, targz.LoadOptions{Filter: targz.SourceFilter})
	if err != nil {
		return false, errors.Errorf("loading bundle %s: %w", path, err)
	}

	hadErrors := false
	for _, entry := range bundle.Paths() {
		had, err := me.checkSource(ctx, out, gen, format, path+"#"+entry, string(bundle.Files[entry]), total)
		if err != nil {
			return hadErrors, err
		}
		hadErrors = hadErrors || had
	}
	return hadErrors, nil
}

func (me *Handler) checkSource(ctx context.Context, out io.Writer, gen diagnostic.Generator, format, path, src string, total *tally) (bool, error) {
	lexed := preparse.NewLexedStr(src)
	store, resolveErrs := expansion.Resolve(ctx, lexed)

	diagnostics, err := gen.Generate(ctx, lexed, store, resolveErrs)
	if err != nil {
		return false, errors.Errorf("generating diagnostics for %s: %w", path, err)
	}

	total.files++
	total.errors += len(diagnostics.Errors)
	total.warnings += len(diagnostics.Warnings)
	if diagnostics.HasErrors() {
		total.errorFiles++
	}

	switch format {
	case config.FormatVSCode:
		if err := writeVSCodeReport(out, path, src, diagnostics); err != nil {
			return diagnostics.HasErrors(), err
		}
	default:
		rendered, err := diagnostic.NewTextFormatter(path, src).Format(diagnostics)
		if err != nil {
			return diagnostics.HasErrors(), errors.Errorf("formatting diagnostics for %s: %w", path, err)
		}
		if _, err := out.Write(rendered); err != nil {
			return diagnostics.HasErrors(), errors.Errorf("writing diagnostics: %w", err)
		}
	}

	return diagnostics.HasErrors(), nil
}

// writeVSCodeReport emits one JSON object per file so the output stays
// consumable as a stream.
func writeVSCodeReport(out io.Writer, path, src string, diagnostics *diagnostic.Diagnostics) error {
	rendered, err := diagnostic.NewVSCodeFormatter(src).Format(diagnostics)
	if err != nil {
		return errors.Errorf("formatting diagnostics for %s: %w", path, err)
	}

	report := struct {
		Path        string          `json:"path"`
		Diagnostics json.RawMessage `json:"diagnostics"`
	}{Path: path, Diagnostics: json.RawMessage(rendered)}

	encoded, err := json.Marshal(report)
	if err != nil {
		return errors.Errorf("encoding report for %s: %w", path, err)
	}

	if _, err := fmt.Fprintf(out, "%s\n", encoded); err != nil {
		return errors.Errorf("writing diagnostics: %w", err)
	}
	return nil
}

// Package expansion statically resolves the definitions collected
// during preparse. Each \newcommand, \def, and \newenvironment gets
// its name, argument specification, and body ranges parsed and every
// parameter occurrence inside its bodies indexed, so a later
// expansion phase can substitute arguments without re-scanning text.
// Results land in a Store keyed by name; a definition that fails to
// parse yields a ResolveError instead and the rest keep resolving.
package expansion

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/gotex/pkg/preparse"
)

// parallelThreshold is the definition count below which resolving
// stays on the calling goroutine.
const parallelThreshold = 8

type resolveResult struct {
	item StoreItem
	err  *ResolveError
}

// Resolve parses every definition of lexed into a Store. Definitions
// are independent, so above a small threshold they are resolved on a
// bounded worker pool; insertion happens serially in definition order
// either way, which keeps name shadowing deterministic (last one
// wins). The context carries the logger; resolution itself is not
// cancellable.
func Resolve(ctx context.Context, lexed *preparse.LexedStr) (*Store, []ResolveError) {
	defs := lexed.Definitions()
	store := NewStore()
	if len(defs) == 0 {
		return store, nil
	}

	logger := zerolog.Ctx(ctx)
	logger.Trace().Int("definitions", len(defs)).Msg("resolving definitions")

	results := make([]resolveResult, len(defs))
	if len(defs) < parallelThreshold {
		for i, def := range defs {
			results[i] = resolveOne(lexed, def)
		}
	} else {
		var group errgroup.Group
		group.SetLimit(runtime.GOMAXPROCS(0))
		for i, def := range defs {
			i, def := i, def
			group.Go(func() error {
				results[i] = resolveOne(lexed, def)
				return nil
			})
		}
		_ = group.Wait()
	}

	var errs []ResolveError
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, *res.err)
			continue
		}
		store.Insert(res.item)
	}
	logger.Trace().Int("resolved", store.Len()).Int("failed", len(errs)).Msg("definitions resolved")
	return store, errs
}

func resolveOne(lexed *preparse.LexedStr, def preparse.Definition) resolveResult {
	parser := newDefParser(lexed, def)
	var err *ResolveError
	switch def.Kind {
	case preparse.DefMacro:
		err = parser.resolveNewCommand()
	case preparse.DefEnvironment:
		err = parser.resolveNewEnvironment()
	case preparse.DefDef:
		err = parser.resolveDef()
	}
	if err != nil {
		err.Token = parser.index()
		return resolveResult{err: err}
	}
	return resolveResult{item: parser.item}
}

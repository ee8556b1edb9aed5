package finder

import (
	"context"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// SourceFinder is responsible for locating source files to process
type SourceFinder interface {
	// FindSources returns the files matching any include pattern and no
	// exclude pattern, sorted and deduplicated
	FindSources(ctx context.Context, include []string, exclude []string) ([]string, error)
}

// DefaultFinder is the default implementation of SourceFinder
type DefaultFinder struct {
	fs afero.Fs
}

// NewDefaultFinder creates a new DefaultFinder over the given filesystem
func NewDefaultFinder(fs afero.Fs) *DefaultFinder {
	return &DefaultFinder{fs: fs}
}

// FindSources implements SourceFinder
func (me *DefaultFinder) FindSources(ctx context.Context, include []string, exclude []string) ([]string, error) {
	ifs := afero.NewIOFS(me.fs)

	seen := map[string]bool{}
	for _, pattern := range include {
		matches, err := doublestar.Glob(ifs, pattern)
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}

	match:
		for _, path := range matches {
			info, err := me.fs.Stat(path)
			if err != nil {
				return nil, errors.Errorf("stat %q: %w", path, err)
			}
			if info.IsDir() {
				continue
			}

			for _, skip := range exclude {
				ok, err := doublestar.Match(skip, path)
				if err != nil {
					return nil, errors.Errorf("matching %q: %w", skip, err)
				}
				if ok {
					continue match
				}
			}

			seen[path] = true
		}
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	zerolog.Ctx(ctx).Debug().
		Int("count", len(paths)).
		Strs("include", include).
		Msg("found source files")

	return paths, nil
}

package finder_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gotex/pkg/finder"
)

func newTestFs(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, path := range paths {
		require.NoError(t, afero.WriteFile(fs, path, []byte("\\relax\n"), 0644))
	}
	return fs
}

func TestFindSources(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "recursive include",
			files:   []string{"src/a.tex", "src/deep/b.tex", "src/notes.md"},
			include: []string{"src/**/*.tex"},
			want:    []string{"src/a.tex", "src/deep/b.tex"},
		},
		{
			name:    "exclude subtree",
			files:   []string{"src/a.tex", "src/vendor/c.tex"},
			include: []string{"src/**/*.tex"},
			exclude: []string{"src/vendor/**"},
			want:    []string{"src/a.tex"},
		},
		{
			name:    "overlapping includes deduplicate",
			files:   []string{"src/a.tex", "src/b.sty"},
			include: []string{"src/*.tex", "src/*"},
			want:    []string{"src/a.tex", "src/b.sty"},
		},
		{
			name:    "no matches",
			files:   []string{"src/a.tex"},
			include: []string{"docs/**/*.tex"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newTestFs(t, tt.files...)
			f := finder.NewDefaultFinder(fs)

			got, err := f.FindSources(context.Background(), tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindSourcesBadPattern(t *testing.T) {
	fs := newTestFs(t, "src/a.tex")
	f := finder.NewDefaultFinder(fs)

	_, err := f.FindSources(context.Background(), []string{"src/["}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "globbing")
}

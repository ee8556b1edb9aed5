package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gotex/pkg/config"
)

func writeConfig(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func TestLoadHCL(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "gotex.hcl", `
defaults {
  format        = "text"
  warn_shadowed = true
}

check "manuscript" {
  include = ["src/**/*.tex"]
  exclude = ["src/vendor/**"]
}

check "styles" {
  include = ["styles/*.sty"]
}
`)

	cfg, err := config.Load(fs, "gotex.hcl")
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults)
	assert.Equal(t, "text", cfg.Defaults.Format)
	assert.True(t, cfg.Defaults.WarnShadowed)
	assert.False(t, cfg.Defaults.FailFast)

	require.Len(t, cfg.Checks, 2)
	assert.Equal(t, "manuscript", cfg.Checks[0].Name)
	assert.Equal(t, []string{"src/**/*.tex"}, cfg.Checks[0].Include)
	assert.Equal(t, []string{"src/vendor/**"}, cfg.Checks[0].Exclude)
	assert.Equal(t, "styles", cfg.Checks[1].Name)
}

func TestLoadYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "gotex.yaml", `
defaults:
  format: vscode
checks:
  - name: manuscript
    include:
      - "src/**/*.tex"
`)

	cfg, err := config.Load(fs, "gotex.yaml")
	require.NoError(t, err)

	assert.Equal(t, config.FormatVSCode, cfg.Format())
	require.Len(t, cfg.Checks, 1)
	assert.Equal(t, "manuscript", cfg.Checks[0].Name)
	assert.Equal(t, []string{"src/**/*.tex"}, cfg.Checks[0].Include)
}

func TestLoadYAMLUnknownField(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "gotex.yml", `
checks:
  - name: manuscript
    include: ["*.tex"]
    nonsense: true
`)

	_, err := config.Load(fs, "gotex.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing YAML")
}

func TestLoadHCLSyntaxError(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "gotex.hcl", `check "broken" {`)

	_, err := config.Load(fs, "gotex.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing HCL")
}

func TestLoadMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := config.Load(fs, "nope.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr []string
	}{
		{
			name: "valid",
			cfg: &config.Config{
				Checks: []*config.CheckEntry{{Name: "a", Include: []string{"**/*.tex"}}},
			},
		},
		{
			name:    "no checks",
			cfg:     &config.Config{},
			wantErr: []string{"no check blocks defined"},
		},
		{
			name: "duplicate names",
			cfg: &config.Config{
				Checks: []*config.CheckEntry{
					{Name: "a", Include: []string{"*.tex"}},
					{Name: "a", Include: []string{"*.sty"}},
				},
			},
			wantErr: []string{`duplicate check name "a"`},
		},
		{
			name: "bad pattern and bad format",
			cfg: &config.Config{
				Defaults: &config.DefaultsBlock{Format: "xml"},
				Checks:   []*config.CheckEntry{{Name: "a", Include: []string{"src/["}}},
			},
			wantErr: []string{`unknown format "xml"`, `invalid pattern "src/["`},
		},
		{
			name: "missing include",
			cfg: &config.Config{
				Checks: []*config.CheckEntry{{Name: "a"}},
			},
			wantErr: []string{`check "a" has no include patterns`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default([]string{"*.tex"})
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.FormatText, cfg.Format())
	require.Len(t, cfg.Checks, 1)
	assert.Equal(t, []string{"*.tex"}, cfg.Checks[0].Include)
}

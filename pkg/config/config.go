// Package config loads the checker's configuration from HCL or YAML
// files. Configuration is optional; the driver falls back to Default
// when no file is given.
package config

import (
	"bytes"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Config is the file structure: optional defaults plus any number of
// named check blocks.
type Config struct {
	// Output and severity settings shared by all checks
	Defaults *DefaultsBlock `json:"defaults,omitempty" hcl:"defaults,block" yaml:"defaults,omitempty"`

	// Named groups of sources to check
	Checks []*CheckEntry `json:"checks" hcl:"check,block" yaml:"checks"`
}

// DefaultsBlock carries the settings every check inherits.
type DefaultsBlock struct {
	// Format selects the diagnostic rendering: text or vscode.
	Format string `json:"format,omitempty" yaml:"format,omitempty" hcl:"format,optional"`
	// FailFast stops after the first file with errors.
	FailFast bool `json:"fail_fast,omitempty" yaml:"fail_fast,omitempty" hcl:"fail_fast,optional"`
	// WarnShadowed reports definitions shadowed by later ones.
	WarnShadowed bool `json:"warn_shadowed,omitempty" yaml:"warn_shadowed,omitempty" hcl:"warn_shadowed,optional"`
	// Hints includes an informational entry per resolved definition.
	Hints bool `json:"hints,omitempty" yaml:"hints,omitempty" hcl:"hints,optional"`
}

// CheckEntry is one named group of sources.
type CheckEntry struct {
	Name    string   `json:"name" yaml:"name" hcl:"name,label"`
	Include []string `json:"include" yaml:"include" hcl:"include,attr"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
}

// Formats accepted by DefaultsBlock.Format.
const (
	FormatText   = "text"
	FormatVSCode = "vscode"
)

// Default is the configuration used when no file is given: one check
// over the provided include patterns, shadow warnings on.
func Default(include []string) *Config {
	return &Config{
		Defaults: &DefaultsBlock{Format: FormatText, WarnShadowed: true},
		Checks:   []*CheckEntry{{Name: "default", Include: include}},
	}
}

// Load reads and validates a config file. YAML is chosen by file
// extension; everything else parses as HCL.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
	} else {
		parser := hclparse.NewParser()
		hclFile, diags := parser.ParseHCL(data, path)
		if diags.HasErrors() {
			return nil, errors.Errorf("parsing HCL: %s", diags.Error())
		}

		evalCtx := &hcl.EvalContext{
			Variables: map[string]cty.Value{},
		}

		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
		if diags.HasErrors() {
			return nil, errors.Errorf("decoding HCL: %s", diags.Error())
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the whole file and reports every problem at once.
func (me *Config) Validate() error {
	var result *multierror.Error

	if me.Defaults != nil {
		switch me.Defaults.Format {
		case "", FormatText, FormatVSCode:
		default:
			result = multierror.Append(result, errors.Errorf("unknown format %q", me.Defaults.Format))
		}
	}

	if len(me.Checks) == 0 {
		result = multierror.Append(result, errors.New("no check blocks defined"))
	}

	seen := map[string]bool{}
	for _, check := range me.Checks {
		if check.Name == "" {
			result = multierror.Append(result, errors.New("check block without a name"))
		} else if seen[check.Name] {
			result = multierror.Append(result, errors.Errorf("duplicate check name %q", check.Name))
		}
		seen[check.Name] = true

		if len(check.Include) == 0 {
			result = multierror.Append(result, errors.Errorf("check %q has no include patterns", check.Name))
		}
		for _, pattern := range append(append([]string{}, check.Include...), check.Exclude...) {
			if !doublestar.ValidatePattern(pattern) {
				result = multierror.Append(result, errors.Errorf("check %q: invalid pattern %q", check.Name, pattern))
			}
		}
	}

	return result.ErrorOrNil()
}

// Format returns the configured output format, defaulting to text.
func (me *Config) Format() string {
	if me.Defaults == nil || me.Defaults.Format == "" {
		return FormatText
	}
	return me.Defaults.Format
}

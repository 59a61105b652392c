// Package config persists aspect option values per application and
// optional profile, and merges them with CLI-supplied values at
// invocation time.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"guibox/internal/aspects"
	"guibox/internal/errdefs"
	"guibox/pkg/logger"
)

// Config is a mapping of option name to values. Single-valued options
// keep exactly one entry; multi-valued (append-only) options accumulate.
type Config struct {
	Options map[string][]string `yaml:",inline"`
}

// New returns an empty config.
func New() *Config {
	return &Config{Options: map[string][]string{}}
}

// Set replaces the values stored for an option.
func (c *Config) Set(name string, values []string) {
	c.Options[name] = values
}

// Get returns all values stored for an option.
func (c *Config) Get(name string) []string {
	return c.Options[name]
}

// First returns the first value stored for an option, if any.
func (c *Config) First(name string) (string, bool) {
	v := c.Options[name]
	if len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// Merge combines persisted values with CLI-supplied ones. For options in
// the multi set the result is the union of both sides, persisted values
// first, in discovery order and without duplicates. For everything else a
// CLI value shadows the persisted one.
func (c *Config) Merge(cli *Config, multi map[string]bool) *Config {
	merged := New()
	for name, values := range c.Options {
		merged.Options[name] = append([]string(nil), values...)
	}
	for name, values := range cli.Options {
		if !multi[name] {
			merged.Options[name] = append([]string(nil), values...)
			continue
		}
		seen := map[string]bool{}
		for _, v := range merged.Options[name] {
			seen[v] = true
		}
		for _, v := range values {
			if !seen[v] {
				merged.Options[name] = append(merged.Options[name], v)
				seen[v] = true
			}
		}
	}
	return merged
}

// Dir returns the directory holding the record for (app, profile).
func Dir(app, profile string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errdefs.ErrMissingDirectory, err)
	}
	dir := filepath.Join(base, "guibox", app)
	if profile != "" {
		dir = filepath.Join(dir, "profiles", profile)
	}
	return dir, nil
}

// Load reads the persisted record for (app, profile). A record that does
// not exist yet yields an empty config.
func Load(app, profile string) (*Config, error) {
	dir, err := Dir(app, profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrConfigLoad, err)
	}
	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrConfigLoad, err)
	}
	cfg := New()
	if err := yaml.Unmarshal(data, &cfg.Options); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errdefs.ErrConfigLoad, path, err)
	}
	logger.Debug("loaded config", "app", app, "profile", profile, "path", path)
	return cfg, nil
}

// Save writes the record for (app, profile), creating directories as
// needed. The on-disk format is plain YAML, meant to be hand-editable.
func (c *Config) Save(app, profile string) error {
	dir, err := Dir(app, profile)
	if err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrConfigSave, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrConfigSave, err)
	}
	data, err := yaml.Marshal(c.Options)
	if err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrConfigSave, err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", errdefs.ErrConfigSave, path, err)
	}
	logger.Debug("saved config", "app", app, "profile", profile, "path", path)
	return nil
}

// cliAspects are the prototypes whose options the config layer exposes on
// every application's run and config subcommands.
var cliAspects = []aspects.ContainerAspect{
	aspects.Mount{},
	aspects.EnvFile{},
	aspects.Publish{},
	aspects.Locale{},
	aspects.Timezone{},
	aspects.CPUShares{},
	aspects.Memory{},
	aspects.Network{},
}

// CLIOptions returns the generic options understood by the config layer
// itself, independent of any application's own aspects.
func CLIOptions() []aspects.Option {
	var opts []aspects.Option
	for _, a := range cliAspects {
		opts = append(opts, a.ConfigArgs()...)
	}
	return opts
}

// Aspects re-derives aspect instances from the stored option values, in a
// fixed option order so composition stays deterministic.
func (c *Config) Aspects() ([]aspects.ContainerAspect, error) {
	var out []aspects.ContainerAspect

	for _, spec := range c.Get("mount") {
		m, err := aspects.ParseMount(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	for _, path := range c.Get("env-file") {
		out = append(out, aspects.EnvFile{Path: path})
	}
	for _, spec := range c.Get("publish") {
		p, err := aspects.NewPublish(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if lang, ok := c.First("locale"); ok {
		l, err := aspects.NewLocale(lang)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	if zone, ok := c.First("timezone"); ok {
		out = append(out, aspects.Timezone{Zone: zone})
	}
	if shares, ok := c.First("cpu-shares"); ok {
		out = append(out, aspects.CPUShares{Shares: shares})
	}
	if limit, ok := c.First("memory"); ok {
		out = append(out, aspects.Memory{Limit: limit})
	}
	if mode, ok := c.First("network"); ok {
		out = append(out, aspects.Network{Mode: mode})
	}
	return out, nil
}

// Package config reads the catalog tool settings from YAML.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"map-catalog/logging"
	"map-catalog/query"
	"map-catalog/query/qfilter"
	"map-catalog/query/qsort"
)

type (
	Config struct {
		LogLevel      string                  `yaml:"log_level"`
		ViewCacheSize int                     `yaml:"view_cache_size"`
		Query         QueryConfig             `yaml:"query"`
		Presets       map[string]qfilter.Spec `yaml:"presets,omitempty"`
	}
	// QueryConfig holds the defaults of the query subcommand.
	QueryConfig struct {
		Sort      string `yaml:"sort"`
		Ascending bool   `yaml:"ascending"`
		Limit     int    `yaml:"limit,omitempty"`
	}
)

var ErrUnknownPreset = errors.New("unknown preset")

func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		ViewCacheSize: query.DefaultViewCacheSize,
		Query: QueryConfig{
			Sort:      qsort.MapName,
			Ascending: true,
		},
		Presets: map[string]qfilter.Spec{
			"full-spread": {FullSpread: true},
			"ranked":      {Ranked: true},
		},
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "ExpandPath error")
	}
	return filepath.Join(home, p[1:]), nil
}

// Load reads the config at path over the defaults. A missing file yields the
// defaults; an empty path too.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, `Load error: reading "%s"`, path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, `Load error: "%s"`, path)
	}
	return cfg, nil
}

// Parse reads YAML over the defaults. Presets in data are added to the
// default presets.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "Parse error: invalid YAML")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.Wrap(err, "Parse error")
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "Save error: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, `Save error: writing "%s"`, path)
	}
	return nil
}

// Preset returns the named filter, or an empty Spec for an empty name.
func (r *Config) Preset(name string) (qfilter.Spec, error) {
	if name == "" {
		return qfilter.Spec{}, nil
	}
	spec, ok := r.Presets[name]
	if !ok {
		return qfilter.Spec{}, errors.Wrapf(ErrUnknownPreset, `Preset error: "%s"`, name)
	}
	return spec, nil
}

// Package config loads packship's tool configuration: which registry to
// publish to, under which namespace, and with which credentials. Values are
// layered defaults < config file < environment, so CI can override the
// registry without touching files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/packship/pkg/errors"
)

// Config is the resolved tool configuration
type Config struct {
	Registry RegistryConfig `koanf:"registry" toml:"registry"`
}

// RegistryConfig selects the publish target
type RegistryConfig struct {
	URL       string `koanf:"url" toml:"url"`
	Namespace string `koanf:"namespace" toml:"namespace"`
	Token     string `koanf:"token" toml:"token,omitempty"`
}

const envPrefix = "PACKSHIP_"

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"registry.url":       "https://registry.yottabuild.org",
		"registry.namespace": "modules",
		"registry.token":     "",
	}
}

// DefaultPath returns the location of the user config file
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "packship", "config.toml")
}

// Load resolves the configuration. A missing config file is fine; a
// malformed one is an error.
func Load() (*Config, error) {
	return loadFrom(DefaultPath())
}

func loadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot load defaults")
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot parse %s", path)
		}
	}

	// PACKSHIP_REGISTRY_URL -> registry.url
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot read environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot decode configuration")
	}
	return &cfg, nil
}

// WriteStarter writes a commented starter config to path unless one already
// exists.
func WriteStarter(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrAlreadyExists, "%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot create %s", filepath.Dir(path))
	}

	starter := Config{
		Registry: RegistryConfig{
			URL:       "https://registry.yottabuild.org",
			Namespace: "modules",
		},
	}
	data, err := gotoml.Marshal(starter)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "cannot serialize starter config")
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot write %s", path)
	}
	return nil
}

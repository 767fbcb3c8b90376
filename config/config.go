// Package config loads the service configuration from a YAML or JSON
// file with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kerguelen/boatgrid/core/engine"
	"github.com/kerguelen/boatgrid/core/metrics"
	"github.com/kerguelen/boatgrid/infra/mqtt"
)

// APIConfig parameterises the HTTP API the editor talks to.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Config is the root service configuration.
type Config struct {
	Electrical engine.Config  `json:"electrical"`
	Metrics    metrics.Config `json:"metrics"`
	MQTT       mqtt.Config    `json:"mqtt"`
	API        APIConfig      `json:"api"`
}

// Load reads the configuration file at path, applying `BG_` environment
// overrides (BG_API__ADDR=:9090 overrides api.addr).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("BG_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "bg_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied, used when
// no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	c.Electrical.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
	c.API.SetDefaults()
}

func (c *Config) validate() error {
	if err := c.Electrical.Validate(); err != nil {
		return err
	}
	if err := c.MQTT.Validate(); err != nil {
		return err
	}
	return nil
}

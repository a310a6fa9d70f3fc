// CLAUDE:SUMMARY Server config structs and YAML loading with defaults for nonoserve.
package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level nonoserve configuration.
type Config struct {
	Listen         string        `yaml:"listen"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Browser        BrowserConfig `yaml:"browser"`
	Webpbn         WebpbnConfig  `yaml:"webpbn"`
	Nonorg         NonorgConfig  `yaml:"nonograms_org"`
}

// BrowserConfig controls the Chrome lifecycle.
type BrowserConfig struct {
	Remote           string        `yaml:"remote"`
	RecycleInterval  time.Duration `yaml:"recycle_interval"`
	ResourceBlocking []string      `yaml:"resource_blocking"`
	Headless         *bool         `yaml:"headless"`
}

// WebpbnConfig controls the direct-fetch adapter.
type WebpbnConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// NonorgConfig controls the rendered-page adapter.
type NonorgConfig struct {
	BaseURL         string        `yaml:"base_url"`
	NavigateTimeout time.Duration `yaml:"navigate_timeout"`
	DataTimeout     time.Duration `yaml:"data_timeout"`
	RevealTimeout   time.Duration `yaml:"reveal_timeout"`
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":" + env("PORT", "8080")
	}
	if c.RequestTimeout <= 0 {
		// Scrapes navigate and wait twice; leave room for both phases.
		c.RequestTimeout = 2 * time.Minute
	}
	if len(c.Browser.ResourceBlocking) == 0 {
		c.Browser.ResourceBlocking = []string{"images", "fonts", "media"}
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Package config resolves where the generation service lives and how the
// front-end talks to it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL  = "http://localhost:8000/api"
	DefaultTimeout = 30 * time.Second
	DefaultPort    = "8888"

	// EnvAPIURL overrides the service base URL
	EnvAPIURL = "BARCODER_API_URL"
	// EnvTimeout overrides the request timeout, e.g. "10s"
	EnvTimeout = "BARCODER_TIMEOUT"
)

// Config holds front-end settings
type Config struct {
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
	Port    string        `yaml:"port"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
		Port:    DefaultPort,
	}
}

// Load builds a Config from defaults, then the YAML file at path (if
// path is not empty), then the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		cfg.merge(file)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) merge(other Config) {
	if other.APIURL != "" {
		c.APIURL = other.APIURL
	}
	if other.Timeout > 0 {
		c.Timeout = other.Timeout
	}
	if other.Port != "" {
		c.Port = other.Port
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate rejects settings the client cannot use
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("service base URL is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid service base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("service base URL must be an absolute http(s) URL: %s", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

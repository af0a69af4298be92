// Package config resolves the exporter configuration from an optional YAML
// file, an optional .env file and the process environment. The rest of the
// program consumes the resolved Config struct and never reads the
// environment directly.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Backlog struct {
		SpaceDomain string `yaml:"space_domain"`
		APIKey      string `yaml:"api_key"`
		ProjectKey  string `yaml:"project_key"`
		SSLVerify   bool   `yaml:"ssl_verify"`
	} `yaml:"backlog"`

	HTTP struct {
		TimeoutSeconds    int `yaml:"timeout_seconds"`
		PageSize          int `yaml:"page_size"`
		RequestIntervalMS int `yaml:"request_interval_ms"`
	} `yaml:"http"`
}

// Load resolves the configuration. Later sources win: defaults, then the
// YAML file (the given path, or backlog-exporter.yaml/.yml in the working
// directory), then a .env file, then the process environment.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	godotenv.Load()

	config := &Config{}
	applyDefaults(config)

	if path == "" {
		locations := []string{
			"backlog-exporter.yaml",
			"backlog-exporter.yml",
		}
		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %v", err)
		}
	}

	mergeWithEnv(config)
	return config, nil
}

// applyDefaults runs before the YAML unmarshal so that absent keys keep the
// defaults and explicit keys override them.
func applyDefaults(config *Config) {
	config.Backlog.SSLVerify = true
	config.HTTP.TimeoutSeconds = 120
	config.HTTP.PageSize = 100
	config.HTTP.RequestIntervalMS = 1100
}

func mergeWithEnv(config *Config) {
	if v := os.Getenv("BACKLOG_SPACE_DOMAIN"); v != "" {
		config.Backlog.SpaceDomain = v
	}
	if v := os.Getenv("BACKLOG_API_KEY"); v != "" {
		config.Backlog.APIKey = v
	}
	if v := os.Getenv("BACKLOG_PROJECT_KEY"); v != "" {
		config.Backlog.ProjectKey = v
	}
	if v := os.Getenv("BACKLOG_SSL_VERIFY"); v != "" {
		config.Backlog.SSLVerify = parseBool(v)
	}
}

// parseBool mirrors the values the BACKLOG_SSL_VERIFY contract accepts;
// anything else means false.
func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Timeout returns the HTTP client timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// RequestInterval returns the minimum delay between API calls as a duration.
func (c *Config) RequestInterval() time.Duration {
	return time.Duration(c.HTTP.RequestIntervalMS) * time.Millisecond
}

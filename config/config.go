// Package config resolves the plugin's small configuration surface: where the
// worker listens, which project name to report, and how long the health probe
// may take. Values come from defaults, an optional YAML file and environment
// overrides, in that order. Configuration failures never stop the plugin;
// callers fall back to defaults, matching the module-wide degrade-don't-fail
// policy.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/membridge/membridge/worker"
)

// Environment overrides, applied after any file values.
const (
	EnvWorkerURL = "MEMBRIDGE_WORKER_URL"
	EnvProject   = "MEMBRIDGE_PROJECT"
)

// FileName is the per-user config file looked up in the home directory when no
// explicit path is given.
const FileName = ".membridge.yaml"

// Config holds the resolved plugin configuration.
type Config struct {
	// WorkerURL is the memory worker's base URL.
	WorkerURL string `yaml:"worker_url"`

	// Project names the project on the worker side. Defaults to the base name
	// of the working directory.
	Project string `yaml:"project"`

	// HealthTimeout bounds the health probe, as a Go duration string ("1s").
	HealthTimeout string `yaml:"health_timeout"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	project := ""
	if cwd, err := os.Getwd(); err == nil {
		project = filepath.Base(cwd)
	}
	return Config{
		WorkerURL:     worker.DefaultBaseURL,
		Project:       project,
		HealthTimeout: worker.DefaultHealthTimeout.String(),
	}
}

// Load resolves configuration from the given YAML file path. An empty path
// means "the per-user file, if any"; a missing file is not an error. The
// returned Config is always usable: on any error it equals Default() plus
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, FileName)
		}
	}
	var loadErr error
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				cfg = Default()
				loadErr = fmt.Errorf("config: parsing %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			loadErr = fmt.Errorf("config: reading %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, loadErr
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvWorkerURL); v != "" {
		c.WorkerURL = v
	}
	if v := os.Getenv(EnvProject); v != "" {
		c.Project = v
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.WorkerURL == "" {
		c.WorkerURL = def.WorkerURL
	}
	if c.Project == "" {
		c.Project = def.Project
	}
	if c.HealthTimeout == "" {
		c.HealthTimeout = def.HealthTimeout
	}
}

// HealthTimeoutDuration parses HealthTimeout, falling back to the worker
// default when unset or malformed.
func (c Config) HealthTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.HealthTimeout)
	if err != nil || d <= 0 {
		return worker.DefaultHealthTimeout
	}
	return d
}

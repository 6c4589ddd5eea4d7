package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/prpkit/prpflow/internal/plan"
	"github.com/prpkit/prpflow/internal/stack"
)

// Config holds all prpflow configuration
type Config struct {
	StateDir         string          `toml:"state_dir"`
	ArchDocName      string          `toml:"arch_doc_name"`
	ContextMaxTokens int             `toml:"context_max_tokens"`
	LockTimeout      string          `toml:"lock_timeout"`
	CommitArtifacts  bool            `toml:"commit_artifacts"`
	Gates            plan.GateParams `toml:"gates"`
	ExtraStacks      []stack.Pattern `toml:"extra_stacks"`
}

// Default returns the default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		StateDir:         filepath.Join(homeDir, ".prpflow", "state"),
		ArchDocName:      stack.DefaultArchDocName,
		ContextMaxTokens: 8000,
		LockTimeout:      "30s",
		CommitArtifacts:  true,
		Gates:            plan.DefaultGateParams(),
	}
}

// LockTimeoutDuration returns the lock timeout as a duration
func (c *Config) LockTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.LockTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Registry builds the stack registry: built-in patterns first, then
// any extras declared in config, preserving declaration order.
func (c *Config) Registry() *stack.Registry {
	reg := stack.DefaultRegistry()
	reg.SetArchDocName(c.ArchDocName)
	if len(c.ExtraStacks) > 0 {
		reg.Extend(c.ExtraStacks)
	}
	return reg
}

// Load reads configuration from the config file
func Load() (*Config, error) {
	cfg := Default()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}

	configPath := filepath.Join(homeDir, ".prpflow", "config.toml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Expand ~ in StateDir
	if len(cfg.StateDir) > 0 && cfg.StateDir[0] == '~' {
		cfg.StateDir = filepath.Join(homeDir, cfg.StateDir[1:])
	}

	return cfg, nil
}

// Save writes configuration to the config file
func (c *Config) Save() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(homeDir, ".prpflow")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.toml")
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ConfigDir returns the prpflow config directory path
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".prpflow")
}

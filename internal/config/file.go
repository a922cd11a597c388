package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sungur/wslpath/internal/log"
)

// globalConfigPath returns the global config file path (~/.wslpath/config.yaml).
func globalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wslpath", "config.yaml")
}

// LoadConfig loads, merges and validates wslpath configuration.
//
// Precedence (later overrides earlier):
//  1. Global config (~/.wslpath/config.yaml)
//  2. Explicit config: explicitPath, or $WSLPATH_CONFIG when empty
//
// A broken global config is skipped with a warning; a missing or broken
// explicit config is an error. CLI flags should be applied on top of the
// returned config by the caller.
func LoadConfig(explicitPath string) (Config, error) {
	globalCfg := loadGlobalConfig()

	if explicitPath == "" {
		explicitPath = os.Getenv(EnvConfigPath)
	}
	var explicitCfg *Config
	if explicitPath != "" {
		cfg, err := loadConfigFile(explicitPath)
		if err != nil {
			return Config{}, err
		}
		if cfg == nil {
			return Config{}, fmt.Errorf("config file %s: %w", explicitPath, fs.ErrNotExist)
		}
		log.Debugf("Loaded config: %s", explicitPath)
		explicitCfg = cfg
	}

	merged := mergeConfigs(globalCfg, explicitCfg)
	if err := Validate(&merged); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return merged, nil
}

// loadGlobalConfig loads the global config file.
func loadGlobalConfig() *Config {
	path := globalConfigPath()
	if path == "" {
		return nil
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		log.Warnf("Ignoring global config: %v", err)
		return nil
	}
	if cfg != nil {
		log.Debugf("Loaded global config: %s", path)
	}
	return cfg
}

// loadConfigFile reads and parses a single config file using yaml.v3.
// Returns nil, nil if the file does not exist.
func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfigs merges multiple configs with later values taking precedence.
// nil configs are skipped.
func mergeConfigs(configs ...*Config) Config {
	result := Config{}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}

		if cfg.PathSep != "" {
			result.PathSep = cfg.PathSep
		}
		if cfg.ReadLineSep != "" {
			result.ReadLineSep = cfg.ReadLineSep
		}
		if cfg.WriteLineSep != "" {
			result.WriteLineSep = cfg.WriteLineSep
		}
		if cfg.Mounts != "" {
			result.Mounts = cfg.Mounts
		}
		if cfg.AutomountRoot != "" {
			result.AutomountRoot = cfg.AutomountRoot
		}
		if cfg.RootLoop != nil {
			result.RootLoop = cfg.RootLoop
		}
		if cfg.Canonicalize != nil {
			result.Canonicalize = cfg.Canonicalize
		}
		if cfg.BlockSize != "" {
			result.BlockSize = cfg.BlockSize
		}
		if cfg.MaxBlocks > 0 {
			result.MaxBlocks = cfg.MaxBlocks
		}
		if cfg.MinBlocks > 0 {
			result.MinBlocks = cfg.MinBlocks
		}
		if cfg.QueryTimeout != "" {
			result.QueryTimeout = cfg.QueryTimeout
		}
	}

	return result
}

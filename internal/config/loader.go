package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/genspectrum/sourcewatch/internal/utils/pathutils"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/sourcewatch"
	configFile = "config.yml"

	EnvPrefix     = "SOURCEWATCH_"
	EnvConfigPath = EnvPrefix + "CONFIG"
)

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ResolvePath picks the config file: --config flag, then $SOURCEWATCH_CONFIG,
// then ~/.config/sourcewatch/config.yml. explicit is false for the default path,
// which is allowed to be missing.
func ResolvePath(flagPath string) (path string, explicit bool, err error) {
	if flagPath != "" {
		p, err := pathutils.ToAbsolutePath(flagPath)
		return p, true, err
	}
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		p, err := pathutils.ToAbsolutePath(envPath)
		return p, true, err
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, configFile), false, nil
}

// Load builds the configuration: defaults, then the YAML file, then a local
// .env file and SOURCEWATCH_* environment variables, then validation.
func Load(flagPath string) (*Config, error) {
	cfg := Default()

	path, explicit, err := ResolvePath(flagPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// env-only setup
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.StatePath, err = pathutils.ToAbsolutePath(cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to resolve state path: %w", err)
	}
	if cfg.Log.File, err = pathutils.ToAbsolutePath(cfg.Log.File); err != nil {
		return nil, fmt.Errorf("failed to resolve log file path: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

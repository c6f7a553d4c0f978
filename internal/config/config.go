// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"

	"github.com/shayne/agentcmd/internal/dispatch"
)

type Config struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
}

func Default() Config {
	return Config{
		Endpoint:       dispatch.DefaultEndpoint,
		TimeoutSeconds: int(dispatch.DefaultTimeout / time.Second),
		LogLevel:       "info",
	}
}

// Load reads the config file. A missing file yields Default().
func Load() (Config, string, error) {
	path, err := Path()
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := loadToml(path)
	if err == nil {
		return cfg, path, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return Default(), path, nil
	}
	return Config{}, path, err
}

func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Path is the config file location under XDG_CONFIG_HOME.
func Path() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		var err error
		configHome, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}

	return filepath.Join(configHome, "agentcmd", "config.toml"), nil
}

// DefaultLogPath is where `config --log-file default` points logging.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "agentcmd", "agentcmd.log"), nil
}

func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return dispatch.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) Validate() error {
	if err := ValidateEndpoint(c.Endpoint); err != nil {
		return err
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	return ValidateLogLevel(c.LogLevel)
}

// ValidateLogLevel accepts zap level names. Empty means info.
func ValidateLogLevel(level string) error {
	if strings.TrimSpace(level) == "" {
		return nil
	}
	if _, err := zapcore.ParseLevel(strings.TrimSpace(level)); err != nil {
		return fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", level)
	}
	return nil
}

// ValidateEndpoint accepts absolute http(s) URLs.
func ValidateEndpoint(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return errors.New("endpoint is required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint is missing a host: %q", raw)
	}
	return nil
}

func loadToml(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = dispatch.DefaultEndpoint
	}
	return cfg, nil
}

func RemoveConfigFile() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

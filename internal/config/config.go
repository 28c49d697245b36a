// Package config loads and persists the CLI configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const (
	// AppName names the per-user configuration directory.
	AppName = "solana_token_cli"
	// FileName is the configuration file inside AppName.
	FileName = "default-config.yml"
	// DefaultRPCURL is the public mainnet-beta endpoint.
	DefaultRPCURL = "https://api.mainnet-beta.solana.com"
)

// Config is the persisted CLI configuration.
type Config struct {
	RPCURL string `yaml:"rpc_url"` // Solana JSON-RPC endpoint
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{RPCURL: DefaultRPCURL}
}

// DefaultPath returns <user config dir>/solana_token_cli/default-config.yml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load reads the configuration at path. A missing file is created with
// defaults. An empty rpc_url falls back to DefaultRPCURL.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a configuration from its YAML representation.
func Decode(r io.Reader) (Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode YAML: %w", err)
	}
	if cfg.RPCURL == "" {
		cfg.RPCURL = DefaultRPCURL
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	if err := encoder.Encode(&cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

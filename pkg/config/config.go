// Package config loads simbridge's settings: a yaml file with defaults
// applied before parsing, layered with SIMBRIDGE_*-prefixed environment
// overrides, grounded on phileasgo's config loader.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the handful of settings the core needs: where to listen for
// legacy clients, and how to reach the live sim over UDP.
type Config struct {
	Listen  ListenConfig  `yaml:"listen"`
	SimLink SimLinkConfig `yaml:"simlink"`
	Sidecar SidecarConfig `yaml:"sidecar"`
}

// ListenConfig holds the Acceptor's TCP bind address.
type ListenConfig struct {
	Address string `yaml:"address"`
}

// SimLinkConfig holds the UDP socket pair facing the live sim.
type SimLinkConfig struct {
	RecvPort   int    `yaml:"recv_port"`
	SendPort   int    `yaml:"send_port"`
	RemoteHost string `yaml:"remote_host"`
}

// SidecarConfig points at the directory holding the live-sim side launcher
// binary, the collaborator spec.md §6 says the core must hand this path to.
type SidecarConfig struct {
	BinaryDir string `yaml:"binary_dir"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Listen: ListenConfig{
			Address: "0.0.0.0:10000",
		},
		SimLink: SimLinkConfig{
			RecvPort:   10100,
			SendPort:   10101,
			RemoteHost: "127.0.0.1",
		},
		Sidecar: SidecarConfig{
			BinaryDir: "./sidecar",
		},
	}
}

// Load reads path, applying defaults first and overwriting with whatever
// the file specifies. If path does not exist, the defaults are written out
// and returned. .env/.env.local and SIMBRIDGE_* environment variables are
// then layered on top, mirroring phileasgo's env-plus-yaml approach.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("config: write default %s: %w", path, err)
	}

	_ = godotenv.Load(".env.local", ".env")
	applyEnvOverrides(cfg)

	return cfg, nil
}

// Save writes cfg to path as yaml, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SIMBRIDGE_LISTEN_ADDRESS"); v != "" {
		cfg.Listen.Address = v
	}
	if v := os.Getenv("SIMBRIDGE_SIMLINK_RECV_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SimLink.RecvPort = n
		}
	}
	if v := os.Getenv("SIMBRIDGE_SIMLINK_SEND_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SimLink.SendPort = n
		}
	}
	if v := os.Getenv("SIMBRIDGE_SIMLINK_REMOTE_HOST"); v != "" {
		cfg.SimLink.RemoteHost = v
	}
	if v := os.Getenv("SIMBRIDGE_SIDECAR_BINARY_DIR"); v != "" {
		cfg.Sidecar.BinaryDir = v
	}
}

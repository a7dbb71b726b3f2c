package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWritesDefaultsWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simbridge.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen.Address != "0.0.0.0:10000" {
		t.Errorf("got listen address %q, want default", cfg.Listen.Address)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected defaults written to %s: %v", path, err)
	}
	if !strings.Contains(string(content), "recv_port: 10100") {
		t.Errorf("config file missing default recv_port")
	}
}

func TestLoadMergesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simbridge.yaml")
	if err := os.WriteFile(path, []byte("simlink:\n  recv_port: 5000\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SimLink.RecvPort != 5000 {
		t.Errorf("got recv port %d, want 5000", cfg.SimLink.RecvPort)
	}
	// Untouched fields keep their defaults.
	if cfg.Listen.Address != "0.0.0.0:10000" {
		t.Errorf("got listen address %q, want default", cfg.Listen.Address)
	}
}

func TestEnvOverridesTakePriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simbridge.yaml")
	t.Setenv("SIMBRIDGE_LISTEN_ADDRESS", "127.0.0.1:9999")
	t.Setenv("SIMBRIDGE_SIMLINK_RECV_PORT", "7777")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen.Address != "127.0.0.1:9999" {
		t.Errorf("got %q, want env override", cfg.Listen.Address)
	}
	if cfg.SimLink.RecvPort != 7777 {
		t.Errorf("got %d, want env override 7777", cfg.SimLink.RecvPort)
	}
}

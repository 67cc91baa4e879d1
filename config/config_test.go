package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("HANDOFF_FILE", "")

	cfg := Load()
	if cfg.BackendURL != "http://localhost:20005" {
		t.Fatalf("unexpected backend url: %s", cfg.BackendURL)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
	if cfg.HandoffFile == "" {
		t.Fatalf("handoff path must have a default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://10.0.0.2:9000")
	t.Setenv("REQUEST_TIMEOUT", "5")
	t.Setenv("HANDOFF_FILE", "/tmp/handoff.json")

	cfg := Load()
	if cfg.BackendURL != "http://10.0.0.2:9000" {
		t.Fatalf("override ignored: %s", cfg.BackendURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("override ignored: %v", cfg.RequestTimeout)
	}
	if cfg.HandoffFile != "/tmp/handoff.json" {
		t.Fatalf("override ignored: %s", cfg.HandoffFile)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "not-a-number")
	if cfg := Load(); cfg.RequestTimeout != 60*time.Second {
		t.Fatalf("expected default on bad value, got %v", cfg.RequestTimeout)
	}
}

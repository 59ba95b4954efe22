package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://jsonplaceholder.typicode.com/todos" {
		t.Fatalf("unexpected base url %s", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("unexpected http timeout %v", cfg.HTTPTimeout)
	}
	if cfg.MirrorInterval != 5*time.Minute {
		t.Fatalf("unexpected mirror interval %v", cfg.MirrorInterval)
	}
	if cfg.StorageTTL != 7*24*time.Hour || cfg.StorageCleanupInterval != 12*time.Hour {
		t.Fatalf("unexpected storage durations ttl=%v cleanup=%v", cfg.StorageTTL, cfg.StorageCleanupInterval)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("TODO_BASE_URL", "http://localhost:3000/todos/")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "3")
	t.Setenv("STORAGE_TYPE", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:3000/todos" {
		t.Fatalf("expected trimmed env base url, got %s", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.StorageType != "none" {
		t.Fatalf("expected storage type none, got %s", cfg.StorageType)
	}
}

func TestLoadRejectsNonPositiveDurations(t *testing.T) {
	t.Setenv("MIRROR_INTERVAL", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero mirror interval")
	}
}

func TestFinalizeRejectsEmptyBaseURL(t *testing.T) {
	cfg := Config{
		BaseURL:               " / ",
		HTTPTimeoutSeconds:    1,
		MirrorIntervalSeconds: 1,
		StorageTTLSeconds:     1,
		StorageCleanupSeconds: 1,
	}
	if err := cfg.finalize(); err == nil {
		t.Fatalf("expected error for blank base url")
	}
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dochub/internal/platform/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Upload.Mode != config.UploadModePolled {
		t.Fatalf("expected polled default mode, got %q", cfg.Upload.Mode)
	}
	if cfg.Upload.PollInterval.Std() != 2*time.Second {
		t.Fatalf("unexpected poll interval %v", cfg.Upload.PollInterval)
	}
	if len(cfg.Upload.AllowedExtensions) == 0 || len(cfg.Upload.AllowedMIMETypes) == 0 {
		t.Fatalf("allow-list defaults not applied")
	}
	if cfg.CacheDBPath != filepath.Join(dir, "cache.db") {
		t.Fatalf("unexpected cache path %q", cfg.CacheDBPath)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
api_base_url: https://api.example.com
socket_url: wss://api.example.com/ws
upload:
  mode: sync
  poll_interval: 500ms
  allowed_extensions: [".pdf"]
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("unexpected base url %q", cfg.APIBaseURL)
	}
	if cfg.Upload.Mode != config.UploadModeSync {
		t.Fatalf("expected sync mode, got %q", cfg.Upload.Mode)
	}
	if cfg.Upload.PollInterval.Std() != 500*time.Millisecond {
		t.Fatalf("unexpected poll interval %v", cfg.Upload.PollInterval)
	}
	if len(cfg.Upload.AllowedExtensions) != 1 || cfg.Upload.AllowedExtensions[0] != ".pdf" {
		t.Fatalf("extension override not applied: %v", cfg.Upload.AllowedExtensions)
	}
	if len(cfg.Upload.AllowedMIMETypes) == 0 {
		t.Fatalf("mime defaults should survive partial override")
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("upload:\n  mode: batch\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatalf("unknown upload mode should fail")
	}
}

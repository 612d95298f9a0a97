package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreBackend != BackendFile {
		t.Errorf("expected file backend, got %q", cfg.StoreBackend)
	}
	if cfg.StoreNamespace != "dragonstream" || cfg.StoreKey != "widget_config_v2" {
		t.Errorf("unexpected key defaults %q %q", cfg.StoreNamespace, cfg.StoreKey)
	}
	if cfg.HTTPAddr != ":8080" || cfg.SessionCacheSize != 128 {
		t.Errorf("unexpected server defaults %q %d", cfg.HTTPAddr, cfg.SessionCacheSize)
	}
	if cfg.AuthEnabled || cfg.Reconcile {
		t.Error("auth and reconcile should default to off")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("STOREBACKEND", "redis")
	t.Setenv("REDISADDR", "cache:6380")
	t.Setenv("REDISDB", "3")
	t.Setenv("RECONCILE", "true")
	t.Setenv("LOGLEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreBackend != BackendRedis || cfg.RedisAddr != "cache:6380" || cfg.RedisDB != 3 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if !cfg.Reconcile || cfg.LogLevel != "debug" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.json")
	if err := os.WriteFile(path, []byte(`{"storebackend":"memory","storekey":"custom","httpaddr":":9090"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HTTPADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreBackend != BackendMemory || cfg.StoreKey != "custom" {
		t.Errorf("file not applied: %+v", cfg)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Errorf("expected env to override file, got %q", cfg.HTTPAddr)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STOREBACKEND", "sqlite")
	if _, err := Load(""); err == nil {
		t.Error("expected error for unknown backend")
	}
	if cfg := New(); cfg.StoreBackend != BackendFile {
		t.Errorf("New should fall back to defaults, got %q", cfg.StoreBackend)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}

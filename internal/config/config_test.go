package config

import (
	"os"
	"testing"
)

const sampleConfig = `
log:
  level: debug
server:
  host: 127.0.0.1
  port: "8080"
llm:
  base_url: https://api.example.com
  api_key: dummy
  model: gemini-1.5-pro
store:
  path: /tmp/debates-test.db
`

// TestLoad verifies that Load reads the file pointed at by CONFIG_PATH.
func TestLoad(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString(sampleConfig); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()

	t.Setenv("CONFIG_PATH", tmp.Name())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != "8080" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.LLM.BaseURL != "https://api.example.com" {
		t.Fatalf("unexpected base url: %s", cfg.LLM.BaseURL)
	}
	if cfg.Store.Path != "/tmp/debates-test.db" {
		t.Fatalf("unexpected store path: %s", cfg.Store.Path)
	}
}

// TestLoad_Defaults verifies defaults survive a missing config file.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Fatalf("expected default port 3000, got %s", cfg.Server.Port)
	}
	if cfg.LLM.Model != "gemini-1.5-pro" {
		t.Fatalf("expected default model, got %s", cfg.LLM.Model)
	}
	if cfg.Store.Path != "debates.db" {
		t.Fatalf("expected default store path, got %s", cfg.Store.Path)
	}
}

// TestLoad_EnvOverride verifies DEBATEMATE_* variables override file values.
func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")
	t.Setenv("DEBATEMATE_SERVER_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9999" {
		t.Fatalf("env override not applied, got %s", cfg.Server.Port)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("default port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "none" {
		t.Errorf("default provider = %q, want none", cfg.LLM.Provider)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("default backend = %q, want memory", cfg.Store.Backend)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	raw := `
[server]
port = 9100

[llm]
provider = "openai"
model = "gpt-4o-mini"
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KRISHISETU_LLM_PROVIDER", "claude")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100 from file", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "claude" {
		t.Errorf("provider = %q, want env override claude", cfg.LLM.Provider)
	}
}

func TestLoadRejectsInvalidBackend(t *testing.T) {
	t.Setenv("KRISHISETU_STORE_BACKEND", "dynamo")
	if _, err := Load(""); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}

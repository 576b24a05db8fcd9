package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pupplay.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if *cfg != want {
		t.Errorf("Load(\"\") = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
save:
  backend: sqlite
  sqlite_path: /tmp/pets.db
content:
  dir: ./mypack
game:
  tick_interval: 5s
  seed: 42
ui:
  frontend: plain
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Save.Backend != BackendSQLite || cfg.Save.SQLitePath != "/tmp/pets.db" {
		t.Errorf("Save = %+v", cfg.Save)
	}
	// Unset keys keep their defaults.
	if cfg.Save.Dir != "saves" {
		t.Errorf("Save.Dir = %q, want default", cfg.Save.Dir)
	}
	if cfg.Content.Dir != "./mypack" {
		t.Errorf("Content.Dir = %q", cfg.Content.Dir)
	}
	if cfg.Game.TickInterval != 5*time.Second || cfg.Game.Seed != 42 {
		t.Errorf("Game = %+v", cfg.Game)
	}
	if cfg.UI.Frontend != FrontendPlain {
		t.Errorf("UI.Frontend = %q", cfg.UI.Frontend)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "game:\n  seed: 7\n  tick_interval: 10s\n")
	t.Setenv("PUPPLAY_SEED", "99")
	t.Setenv("PUPPLAY_SAVE_DIR", "/var/pupplay")
	t.Setenv("PUPPLAY_TICK_INTERVAL", "1m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Seed != 99 {
		t.Errorf("Seed = %d, want 99", cfg.Game.Seed)
	}
	if cfg.Game.TickInterval != time.Minute {
		t.Errorf("TickInterval = %s, want 1m", cfg.Game.TickInterval)
	}
	if cfg.Save.Dir != "/var/pupplay" {
		t.Errorf("Save.Dir = %q", cfg.Save.Dir)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr string
	}{
		{"bad yaml", "save: [", nil, "parse config"},
		{"unknown backend", "save:\n  backend: redis\n", nil, "unknown save backend"},
		{"unknown frontend", "ui:\n  frontend: web\n", nil, "unknown frontend"},
		{"zero tick", "game:\n  tick_interval: 0s\n", nil, "tick_interval"},
		{"empty sqlite path", "save:\n  backend: sqlite\n  sqlite_path: \"\"\n", nil, "sqlite_path"},
		{"bad env seed", "", map[string]string{"PUPPLAY_SEED": "lots"}, "parse env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

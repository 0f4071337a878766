package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 5s
database:
  host: "db"
  port: 5432
  user: "app"
  password: "pw"
  name: "flash"
  sslmode: "disable"
auth:
  session_ttl: 1h
simulator:
  tick: 200ms
  step: 20
  start_delay: 100ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Address() != "127.0.0.1:9090" {
		t.Errorf("unexpected address %q", cfg.Server.Address())
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("unexpected read timeout %v", cfg.Server.ReadTimeout)
	}
	if cfg.Simulator.Tick != 200*time.Millisecond || cfg.Simulator.Step != 20 {
		t.Errorf("unexpected simulator config %+v", cfg.Simulator)
	}

	wantDSN := "host=db port=5432 user=app password=pw dbname=flash sslmode=disable"
	if got := cfg.Database.DSN(); got != wantDSN {
		t.Errorf("dsn: expected %q, got %q", wantDSN, got)
	}
}

func TestLoadAppliesSimulatorDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Simulator.Tick != 1500*time.Millisecond {
		t.Errorf("expected default tick 1.5s, got %v", cfg.Simulator.Tick)
	}
	if cfg.Simulator.Step != 16 {
		t.Errorf("expected default step 16, got %d", cfg.Simulator.Step)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

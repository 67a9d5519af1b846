package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != ":8080" {
		t.Fatalf("default port = %q", cfg.Server.Port)
	}
	if cfg.Solver.Tolerance != 1e-5 || cfg.Solver.MaxIterations != 100 {
		t.Fatalf("default solver settings: %+v", cfg.Solver)
	}
	if cfg.Sweep.SpotMin != 50 || cfg.Sweep.SpotMax != 150 || cfg.Sweep.Points != 100 {
		t.Fatalf("default sweep grid: %+v", cfg.Sweep)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: ":9090"
solver:
  max_iterations: 50
sweep:
  strike: 120
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != ":9090" {
		t.Fatalf("port not overridden: %q", cfg.Server.Port)
	}
	if cfg.Solver.MaxIterations != 50 {
		t.Fatalf("max_iterations not overridden: %d", cfg.Solver.MaxIterations)
	}
	// Unset keys keep defaults.
	if cfg.Solver.Tolerance != 1e-5 {
		t.Fatalf("tolerance default lost: %f", cfg.Solver.Tolerance)
	}
	if cfg.Sweep.Strike != 120 {
		t.Fatalf("sweep strike not overridden: %f", cfg.Sweep.Strike)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not: a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

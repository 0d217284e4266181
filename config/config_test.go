package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/activitykit/runner/config"
)

func TestDefaultParallelConfig(t *testing.T) {
	cfg := config.DefaultParallelConfig()

	if cfg.MaxWorkers != 3 {
		t.Errorf("got MaxWorkers %d, want 3", cfg.MaxWorkers)
	}
	if cfg.Observer != "slog" {
		t.Errorf("got Observer %q, want %q", cfg.Observer, "slog")
	}
}

func TestDefaultSequentialConfig(t *testing.T) {
	cfg := config.DefaultSequentialConfig()

	if cfg.Observer != "slog" {
		t.Errorf("got Observer %q, want %q", cfg.Observer, "slog")
	}
}

func TestParallelConfig_Merge(t *testing.T) {
	cfg := config.DefaultParallelConfig()

	source := &config.ParallelConfig{
		MaxWorkers: 8,
		Observer:   "noop",
	}

	cfg.Merge(source)

	if cfg.MaxWorkers != 8 {
		t.Errorf("got MaxWorkers %d, want 8", cfg.MaxWorkers)
	}
	if cfg.Observer != "noop" {
		t.Errorf("got Observer %q, want %q", cfg.Observer, "noop")
	}
}

func TestParallelConfig_Merge_ZeroValuesPreserveDefaults(t *testing.T) {
	cfg := config.DefaultParallelConfig()

	source := &config.ParallelConfig{} // all zero values

	cfg.Merge(source)

	if cfg.MaxWorkers != 3 {
		t.Errorf("got MaxWorkers %d, want 3 (preserved default)", cfg.MaxWorkers)
	}
	if cfg.Observer != "slog" {
		t.Errorf("got Observer %q, want %q (preserved default)", cfg.Observer, "slog")
	}
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "runner.json")

	content := `{
		"parallel": {
			"max_workers": 5,
			"observer": "noop"
		}
	}`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Parallel.MaxWorkers != 5 {
		t.Errorf("got MaxWorkers %d, want 5", cfg.Parallel.MaxWorkers)
	}
	if cfg.Parallel.Observer != "noop" {
		t.Errorf("got Observer %q, want %q", cfg.Parallel.Observer, "noop")
	}
	if cfg.Sequential.Observer != "slog" {
		t.Errorf("got Sequential.Observer %q, want default %q", cfg.Sequential.Observer, "slog")
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "runner.yaml")

	content := `
parallel:
  max_workers: 7
sequential:
  observer: noop
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Parallel.MaxWorkers != 7 {
		t.Errorf("got MaxWorkers %d, want 7", cfg.Parallel.MaxWorkers)
	}
	if cfg.Parallel.Observer != "slog" {
		t.Errorf("got Parallel.Observer %q, want default %q", cfg.Parallel.Observer, "slog")
	}
	if cfg.Sequential.Observer != "noop" {
		t.Errorf("got Sequential.Observer %q, want %q", cfg.Sequential.Observer, "noop")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("Load succeeded for missing file, want error")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "broken.json")

	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := config.Load(configPath); err == nil {
		t.Fatal("Load succeeded for malformed file, want error")
	}
}

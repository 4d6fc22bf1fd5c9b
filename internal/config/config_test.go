package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/edgeloop/pkg/edgeloop"
	"github.com/Faultbox/edgeloop/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test selection defaults
	if cfg.Selection.Axis != "z" {
		t.Errorf("expected axis 'z', got %s", cfg.Selection.Axis)
	}
	if cfg.Selection.Direction != "max" {
		t.Errorf("expected direction 'max', got %s", cfg.Selection.Direction)
	}
	if cfg.Selection.Scoring != "angle" {
		t.Errorf("expected scoring 'angle', got %s", cfg.Selection.Scoring)
	}
	if cfg.Selection.Bidirectional {
		t.Error("expected bidirectional to be false by default")
	}
	if cfg.Selection.QuadStart {
		t.Error("expected quad start to be false by default")
	}

	// Test split defaults
	if cfg.Split.Enabled {
		t.Error("expected split to be disabled by default")
	}
	if cfg.Split.InnerSuffix != "_inner" || cfg.Split.OuterSuffix != "_outer" {
		t.Errorf("unexpected suffixes %q/%q", cfg.Split.InnerSuffix, cfg.Split.OuterSuffix)
	}
	if cfg.Split.Format != "obj" {
		t.Errorf("expected format 'obj', got %s", cfg.Split.Format)
	}

	// Test batch defaults
	if cfg.Batch.Workers != 0 {
		t.Errorf("expected 0 workers, got %d", cfg.Batch.Workers)
	}
	if cfg.Batch.Timeout != 5*time.Minute {
		t.Errorf("expected timeout 5m, got %v", cfg.Batch.Timeout)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
selection:
  axis: y
  direction: min
  scoring: legacy-cosine
  bidirectional: true
  quad_start: true

split:
  enabled: true
  output_dir: "out"
  format: yaml

batch:
  workers: 3
  timeout: 30s

logging:
  level: "debug"
  log_file: "edgeloop.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Selection.Axis != "y" || cfg.Selection.Direction != "min" {
		t.Errorf("unexpected selection %+v", cfg.Selection)
	}
	if !cfg.Selection.Bidirectional {
		t.Error("expected bidirectional to be true")
	}
	if !cfg.Split.Enabled || cfg.Split.OutputDir != "out" || cfg.Split.Format != "yaml" {
		t.Errorf("unexpected split %+v", cfg.Split)
	}
	// Unset keys keep their defaults
	if cfg.Split.InnerSuffix != "_inner" {
		t.Errorf("expected default inner suffix, got %q", cfg.Split.InnerSuffix)
	}
	if cfg.Batch.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Batch.Workers)
	}
	if cfg.Batch.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.Batch.Timeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "edgeloop.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}

	sel, err := cfg.Selection.EdgeLoop()
	if err != nil {
		t.Fatalf("EdgeLoop failed: %v", err)
	}
	want := edgeloop.Config{
		Axis:          math.AxisY,
		Direction:     edgeloop.Min,
		Scoring:       edgeloop.ScoreLegacyCosine,
		Bidirectional: true,
		QuadStart:     true,
	}
	if sel != want {
		t.Errorf("expected %+v, got %+v", want, sel)
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	if err := os.WriteFile(configPath, []byte("selection: [not, a, map"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := Default()
	cfg.Selection.Axis = "x"
	cfg.Batch.Workers = 7

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}

	if loaded.Selection.Axis != "x" {
		t.Errorf("expected axis 'x', got %s", loaded.Selection.Axis)
	}
	if loaded.Batch.Workers != 7 {
		t.Errorf("expected 7 workers, got %d", loaded.Batch.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad axis", func(c *Config) { c.Selection.Axis = "w" }},
		{"bad direction", func(c *Config) { c.Selection.Direction = "up" }},
		{"bad scoring", func(c *Config) { c.Selection.Scoring = "sine" }},
		{"bad format", func(c *Config) { c.Split.Format = "ply" }},
		{"same suffix", func(c *Config) { c.Split.OuterSuffix = c.Split.InnerSuffix }},
		{"negative workers", func(c *Config) { c.Batch.Workers = -1 }},
		{"negative timeout", func(c *Config) { c.Batch.Timeout = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tmpDir)

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "edgeloop.yaml"), []byte("batch:\n  workers: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find edgeloop.yaml in current directory")
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
selection:
  axis: x
  direction: min
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-axis", "y", "-both", "-quad-start", "-workers", "4", "-debug"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Axis should be from flag (y), not file (x)
	if cfg.Selection.Axis != "y" {
		t.Errorf("expected axis 'y' from flag, got %s", cfg.Selection.Axis)
	}
	// Direction should be from file since no flag override
	if cfg.Selection.Direction != "min" {
		t.Errorf("expected direction 'min' from file, got %s", cfg.Selection.Direction)
	}
	if !cfg.Selection.Bidirectional {
		t.Error("expected bidirectional from flag")
	}
	if !cfg.Selection.QuadStart {
		t.Error("expected quad start from flag")
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("expected 4 workers from flag, got %d", cfg.Batch.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level from flag, got %s", cfg.Logging.Level)
	}
}

func TestLoad_InvalidOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("{}\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-scoring", "sine"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	if _, err := Load(flags); err == nil {
		t.Error("expected error for invalid scoring flag")
	}
}

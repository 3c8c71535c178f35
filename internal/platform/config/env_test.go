package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"MYSTIC_NUMBERS_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("MYSTIC_NUMBERS_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDotEnvKeepsExistingVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "MYSTIC_NUMBERS_TEST_PORT=456\nMYSTIC_NUMBERS_TEST_DOTENV_ONLY=yes\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("MYSTIC_NUMBERS_TEST_PORT", "789")
	t.Setenv("MYSTIC_NUMBERS_TEST_DOTENV_ONLY", "")
	os.Unsetenv("MYSTIC_NUMBERS_TEST_DOTENV_ONLY")
	t.Setenv(DotEnvVar, path)

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 789 {
		t.Fatalf("expected process env to win, got %d", cfg.Port)
	}
	if got := os.Getenv("MYSTIC_NUMBERS_TEST_DOTENV_ONLY"); got != "yes" {
		t.Fatalf("expected dotenv value, got %q", got)
	}
	os.Unsetenv("MYSTIC_NUMBERS_TEST_DOTENV_ONLY")
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	t.Setenv(DotEnvVar, "")
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}

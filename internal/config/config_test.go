package config_test

import (
	"testing"
	"time"

	"github.com/drillhq/drill/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	if cfg.LLMProvider != "anthropic" {
		t.Errorf("LLMProvider = %q, want anthropic", cfg.LLMProvider)
	}
	if cfg.SandboxTimeout != 30*time.Second {
		t.Errorf("SandboxTimeout = %v, want 30s", cfg.SandboxTimeout)
	}
	if cfg.ExercisesPath != "./exercises" {
		t.Errorf("ExercisesPath = %q, want ./exercises", cfg.ExercisesPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DRILL_PROVIDER", "ollama")
	t.Setenv("DRILL_MODEL", "llama3")
	t.Setenv("DRILL_SANDBOX_TIMEOUT", "5")
	t.Setenv("DEBUG", "true")

	cfg := config.Load()

	if cfg.LLMProvider != "ollama" {
		t.Errorf("LLMProvider = %q, want ollama", cfg.LLMProvider)
	}
	if cfg.LLMModel != "llama3" {
		t.Errorf("LLMModel = %q, want llama3", cfg.LLMModel)
	}
	if cfg.SandboxTimeout != 5*time.Second {
		t.Errorf("SandboxTimeout = %v, want 5s", cfg.SandboxTimeout)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("DRILL_SANDBOX_TIMEOUT", "not-a-number")

	cfg := config.Load()
	if cfg.SandboxTimeout != 30*time.Second {
		t.Errorf("SandboxTimeout = %v, want default on bad value", cfg.SandboxTimeout)
	}
}

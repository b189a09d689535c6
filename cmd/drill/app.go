package main

import (
	"fmt"
	"log/slog"

	"github.com/drillhq/drill/internal/config"
	"github.com/drillhq/drill/internal/exercise"
	"github.com/drillhq/drill/internal/llm"
)

// app bundles the wiring every command needs: merged configuration, the
// provider registry, and the exercise registry.
type app struct {
	env      *config.Config
	local    *config.LocalConfig
	logger   *slog.Logger
	registry *exercise.Registry
}

func newApp() (*app, error) {
	env := config.Load()
	local, err := config.LoadLocalConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(env.Debug)
	slog.SetDefault(logger)

	provider := buildProvider(env, local, logger)

	path := env.ExercisesPath
	if local.Exercises.Path != "" {
		path = local.Exercises.Path
	}

	registry := exercise.NewRegistry(exercise.NewLoader(path), provider, env.SandboxTimeout)
	if err := registry.LoadAll(); err != nil {
		return nil, fmt.Errorf("load exercise packs: %w", err)
	}
	return &app{env: env, local: local, logger: logger, registry: registry}, nil
}

// buildProvider assembles the provider registry from configuration and picks
// the default. A nil return means no provider is usable; offline exercises
// still work.
func buildProvider(env *config.Config, local *config.LocalConfig, logger *slog.Logger) llm.Provider {
	registry := llm.NewRegistry()

	for name, pc := range local.LLM.Providers {
		if !pc.Enabled {
			continue
		}

		apiKey := pc.APIKey
		model := pc.Model
		if name == env.LLMProvider {
			if env.LLMAPIKey != "" {
				apiKey = env.LLMAPIKey
			}
			if env.LLMModel != "" {
				model = env.LLMModel
			}
		}

		var provider llm.Provider
		switch name {
		case "anthropic":
			if apiKey == "" {
				continue
			}
			provider = llm.NewAnthropicProvider(llm.AnthropicConfig{APIKey: apiKey, Model: model})
		case "openai":
			if apiKey == "" {
				continue
			}
			provider = llm.NewOpenAIProvider(llm.OpenAIConfig{APIKey: apiKey, Model: model})
		case "gemini":
			if apiKey == "" {
				continue
			}
			provider = llm.NewGeminiProvider(llm.GeminiConfig{APIKey: apiKey, Model: model})
		case "ollama":
			url := pc.URL
			if url == "" {
				url = env.OllamaURL
			}
			provider = llm.NewOllamaProvider(llm.OllamaConfig{BaseURL: url, Model: model})
		default:
			logger.Warn("unknown provider in config", "provider", name)
			continue
		}

		registry.Register(name, llm.NewResilientProvider(provider, llm.DefaultResilientConfig()))
	}

	want := local.LLM.DefaultProvider
	if env.LLMProvider != "" {
		want = env.LLMProvider
	}
	if want != "" && want != "auto" {
		if provider, err := registry.Get(want); err == nil {
			return provider
		}
		logger.Warn("configured provider unavailable, falling back", "provider", want)
	}

	provider, err := registry.Default()
	if err != nil {
		logger.Warn("no AI provider configured, running offline")
		return nil
	}
	return provider
}

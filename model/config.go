package model

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config declares the providers and models available to an
// installation, typically loaded from a lumen.yaml file:
//
//	providers:
//	  ollama:
//	    base_url: http://localhost:11434
//	    models:
//	      - name: mistral
//	        context_window: 32768
//	  anthropic:
//	    api_key_env: ANTHROPIC_API_KEY
//	    models:
//	      - name: claude-sonnet-4-20250514
//	        context_window: 200000
type Config struct {
	Providers map[string]ProviderConfig `yaml:"providers"`

	// CompleteTimeout bounds one completion call, e.g. "90s".
	CompleteTimeout string `yaml:"complete_timeout"`
}

// ProviderConfig configures one provider entry.
type ProviderConfig struct {
	BaseURL   string        `yaml:"base_url"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Models    []ModelConfig `yaml:"models"`
}

// ModelConfig configures one model served by a provider.
type ModelConfig struct {
	Name          string `yaml:"name"`
	ContextWindow int    `yaml:"context_window"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration content.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("config declares no providers")
	}
	for name, pc := range cfg.Providers {
		switch name {
		case "ollama", "anthropic":
		default:
			return nil, fmt.Errorf("unknown provider %q", name)
		}
		if len(pc.Models) == 0 {
			return nil, fmt.Errorf("provider %q declares no models", name)
		}
		for _, m := range pc.Models {
			if m.Name == "" {
				return nil, fmt.Errorf("provider %q has a model without a name", name)
			}
		}
	}
	if cfg.CompleteTimeout != "" {
		if _, err := time.ParseDuration(cfg.CompleteTimeout); err != nil {
			return nil, fmt.Errorf("invalid complete_timeout: %w", err)
		}
	}
	return &cfg, nil
}

// Registry builds the model registry declared by the config.
func (c *Config) Registry() *Registry {
	var providers []Provider

	if pc, ok := c.Providers["ollama"]; ok {
		opts := []OllamaOption{
			WithOllamaModels(descriptors(pc.Models, "ollama", true)...),
		}
		if pc.BaseURL != "" {
			opts = append(opts, WithOllamaBaseURL(pc.BaseURL))
		}
		providers = append(providers, NewOllama(opts...))
	}

	if pc, ok := c.Providers["anthropic"]; ok {
		opts := []AnthropicOption{
			WithModels(descriptors(pc.Models, "anthropic", false)...),
		}
		if pc.BaseURL != "" {
			opts = append(opts, WithBaseURL(pc.BaseURL))
		}
		if pc.APIKeyEnv != "" {
			opts = append(opts, WithAPIKey(os.Getenv(pc.APIKeyEnv)))
		}
		providers = append(providers, NewAnthropic(opts...))
	}

	return NewRegistry(providers...)
}

func descriptors(models []ModelConfig, provider string, local bool) []Descriptor {
	out := make([]Descriptor, len(models))
	for i, m := range models {
		out[i] = Descriptor{
			Name:          m.Name,
			Provider:      provider,
			Local:         local,
			ContextWindow: m.ContextWindow,
		}
	}
	return out
}

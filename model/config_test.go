package model

import (
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	yaml := `
providers:
  ollama:
    base_url: http://localhost:11434
    models:
      - name: mistral
        context_window: 32768
  anthropic:
    api_key_env: ANTHROPIC_API_KEY
    models:
      - name: claude-sonnet-4-20250514
        context_window: 200000
complete_timeout: 90s
`
	cfg, err := ParseConfig([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseConfig() returned error: %v", err)
	}

	if len(cfg.Providers) != 2 {
		t.Errorf("len(Providers) = %d, want 2", len(cfg.Providers))
	}
	if cfg.Providers["ollama"].Models[0].Name != "mistral" {
		t.Errorf("ollama models = %+v", cfg.Providers["ollama"].Models)
	}
	if cfg.CompleteTimeout != "90s" {
		t.Errorf("CompleteTimeout = %q", cfg.CompleteTimeout)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no providers", "providers: {}", "no providers"},
		{"unknown provider", "providers:\n  openai:\n    models:\n      - name: gpt-4", "unknown provider"},
		{"no models", "providers:\n  ollama: {}", "no models"},
		{"unnamed model", "providers:\n  ollama:\n    models:\n      - context_window: 10", "without a name"},
		{"bad timeout", "providers:\n  ollama:\n    models:\n      - name: mistral\ncomplete_timeout: soon", "complete_timeout"},
		{"not yaml", ":", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("ParseConfig() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestConfigRegistry(t *testing.T) {
	yaml := `
providers:
  ollama:
    models:
      - name: mistral
        context_window: 32768
      - name: llama3
`
	cfg, err := ParseConfig([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseConfig() returned error: %v", err)
	}

	reg := cfg.Registry()
	d, _, ok := reg.Lookup("mistral")
	if !ok {
		t.Fatal("registry missing mistral")
	}
	if !d.Local || d.Provider != "ollama" || d.ContextWindow != 32768 {
		t.Errorf("descriptor = %+v", d)
	}
	if len(reg.List()) != 2 {
		t.Errorf("len(List()) = %d, want 2", len(reg.List()))
	}
}

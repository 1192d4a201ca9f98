package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// OllamaProvider serves locally hosted models through an Ollama
// server's generate API.
type OllamaProvider struct {
	baseURL    string
	httpClient *http.Client
	models     []Descriptor
}

// OllamaOption configures the Ollama provider.
type OllamaOption func(*OllamaProvider)

// WithOllamaBaseURL sets the server URL.
func WithOllamaBaseURL(url string) OllamaOption {
	return func(o *OllamaProvider) {
		o.baseURL = url
	}
}

// WithOllamaHTTPClient sets a custom HTTP client.
func WithOllamaHTTPClient(client *http.Client) OllamaOption {
	return func(o *OllamaProvider) {
		o.httpClient = client
	}
}

// WithOllamaModels overrides the descriptors this provider advertises.
func WithOllamaModels(models ...Descriptor) OllamaOption {
	return func(o *OllamaProvider) {
		o.models = models
	}
}

// Default Ollama configuration values
const (
	DefaultOllamaTimeout = 5 * time.Minute
	DefaultOllamaBaseURL = "http://localhost:11434"
)

// NewOllama creates a new Ollama provider.
func NewOllama(opts ...OllamaOption) *OllamaProvider {
	o := &OllamaProvider{
		baseURL: DefaultOllamaBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultOllamaTimeout,
		},
		models: []Descriptor{
			{Name: "mistral", Provider: "ollama", Local: true, ContextWindow: 32768},
			{Name: "llama3", Provider: "ollama", Local: true, ContextWindow: 8192},
		},
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Name implements Provider.
func (o *OllamaProvider) Name() string { return "ollama" }

// Models implements Provider.
func (o *OllamaProvider) Models() []Descriptor {
	out := make([]Descriptor, len(o.models))
	copy(out, o.models)
	return out
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete implements Provider.
func (o *OllamaProvider) Complete(ctx context.Context, req Request) (*Completion, error) {
	start := time.Now()

	apiReq := ollamaRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		System: contextPreamble(req.Context),
		Stream: false,
	}
	if t, ok := req.Config["temperature"]; ok {
		if v, err := strconv.ParseFloat(t, 64); err == nil {
			apiReq.Options = map[string]any{"temperature": v}
		}
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &Completion{
		Text:      resp.Response,
		Model:     req.Model,
		Provider:  o.Name(),
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"
)

// AnthropicProvider serves Claude models through the Anthropic API.
type AnthropicProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	models     []Descriptor
}

// AnthropicOption configures the Anthropic provider.
type AnthropicOption func(*AnthropicProvider)

// WithAPIKey sets the API key.
func WithAPIKey(key string) AnthropicOption {
	return func(a *AnthropicProvider) {
		a.apiKey = key
	}
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) AnthropicOption {
	return func(a *AnthropicProvider) {
		a.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) AnthropicOption {
	return func(a *AnthropicProvider) {
		a.httpClient = client
	}
}

// WithModels overrides the descriptors this provider advertises.
func WithModels(models ...Descriptor) AnthropicOption {
	return func(a *AnthropicProvider) {
		a.models = models
	}
}

// Default Anthropic configuration values
const (
	DefaultAnthropicTimeout = 5 * time.Minute
	DefaultAnthropicBaseURL = "https://api.anthropic.com"
	anthropicMaxTokens      = 8192
)

// NewAnthropic creates a new Anthropic provider. The API key is read
// from ANTHROPIC_API_KEY unless supplied with WithAPIKey.
func NewAnthropic(opts ...AnthropicOption) *AnthropicProvider {
	a := &AnthropicProvider{
		apiKey:  os.Getenv("ANTHROPIC_API_KEY"),
		baseURL: DefaultAnthropicBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultAnthropicTimeout,
		},
		models: []Descriptor{
			{Name: "claude-sonnet-4-20250514", Provider: "anthropic", ContextWindow: 200000},
			{Name: "claude-3-haiku-20240307", Provider: "anthropic", ContextWindow: 200000},
		},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Name implements Provider.
func (a *AnthropicProvider) Name() string { return "anthropic" }

// Models implements Provider.
func (a *AnthropicProvider) Models() []Descriptor {
	out := make([]Descriptor, len(a.models))
	copy(out, a.models)
	return out
}

// anthropicRequest is the API request format.
type anthropicRequest struct {
	Model       string         `json:"model"`
	Messages    []anthropicMsg `json:"messages"`
	System      string         `json:"system,omitempty"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature *float64       `json:"temperature,omitempty"`
}

type anthropicMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is the API response format.
type anthropicResponse struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete implements Provider.
func (a *AnthropicProvider) Complete(ctx context.Context, req Request) (*Completion, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}

	start := time.Now()

	apiReq := &anthropicRequest{
		Model:     req.Model,
		MaxTokens: anthropicMaxTokens,
		Messages:  []anthropicMsg{{Role: "user", Content: req.Prompt}},
		System:    contextPreamble(req.Context),
	}
	if t, ok := req.Config["temperature"]; ok {
		if v, err := strconv.ParseFloat(t, 64); err == nil {
			apiReq.Temperature = &v
		}
	}

	resp, err := a.doRequest(ctx, apiReq)
	if err != nil {
		return nil, err
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return &Completion{
		Text:      text,
		Model:     req.Model,
		Provider:  a.Name(),
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

func (a *AnthropicProvider) doRequest(ctx context.Context, req *anthropicRequest) (*anthropicResponse, error) {
	const maxRetries = 3

	for attempt := 0; attempt <= maxRetries; attempt++ {
		body, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-api-key", a.apiKey)
		httpReq.Header.Set("anthropic-version", "2023-06-01")

		httpResp, err := a.httpClient.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("http request: %w", err)
		}

		respBody, err := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if httpResp.StatusCode == http.StatusOK {
			var resp anthropicResponse
			if err := json.Unmarshal(respBody, &resp); err != nil {
				return nil, fmt.Errorf("unmarshal response: %w", err)
			}
			return &resp, nil
		}

		// Retry on 429 (rate limit) and 529 (overloaded).
		if (httpResp.StatusCode == 429 || httpResp.StatusCode == 529) && attempt < maxRetries {
			wait := retryAfterDelay(httpResp, attempt)
			slog.Warn("API rate limited, retrying", "status", httpResp.StatusCode, "attempt", attempt+1, "wait", wait)
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		return nil, fmt.Errorf("API error %d: %s", httpResp.StatusCode, string(respBody))
	}

	return nil, fmt.Errorf("max retries exceeded")
}

// retryAfterDelay returns how long to wait before retrying a rate-limited request.
// It respects the retry-after header if present, otherwise uses exponential backoff.
func retryAfterDelay(resp *http.Response, attempt int) time.Duration {
	if ra := resp.Header.Get("retry-after"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	wait := time.Duration(2<<uint(attempt)) * time.Second
	if wait > 30*time.Second {
		wait = 30 * time.Second
	}
	return wait
}

// contextPreamble folds execution state into a system prompt so the
// model sees the script's variables, memory size and goal count.
func contextPreamble(execCtx map[string]any) string {
	if len(execCtx) == 0 {
		return ""
	}
	b, err := json.Marshal(execCtx)
	if err != nil {
		return ""
	}
	return "You are assisting a Lumen script run. Current execution state: " + string(b)
}

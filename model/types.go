// Package model provides AI model registration and routing.
package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Descriptor describes one configured AI model.
type Descriptor struct {
	// Name is the model identifier used in scripts, e.g. "mistral".
	Name string

	// Provider is the backend serving the model, e.g. "ollama".
	Provider string

	// Local is true when the model runs on the local machine.
	Local bool

	// ContextWindow is the model's context size in tokens.
	ContextWindow int
}

// Request is one completion request.
type Request struct {
	// Model is the model name to complete with.
	Model string

	// Prompt is the task text.
	Prompt string

	// Context carries execution state the provider may fold into the
	// prompt (variables, memory size, goal count).
	Context map[string]any

	// Config holds activation-time options such as temperature.
	Config map[string]string
}

// Completion is the result of one completion request.
type Completion struct {
	Text      string
	Model     string
	Provider  string
	LatencyMs int64
}

// Provider is a backend that serves one or more models.
type Provider interface {
	// Name identifies the provider, e.g. "anthropic" or "ollama".
	Name() string

	// Models lists the descriptors this provider serves.
	Models() []Descriptor

	// Complete runs one completion. Implementations must honor
	// context cancellation and deadlines.
	Complete(ctx context.Context, req Request) (*Completion, error)
}

// Standard errors
var (
	// ErrModelNotFound is returned when activating an unknown model.
	ErrModelNotFound = errors.New("model not found")

	// ErrNoActiveModel is returned by Complete before any Activate.
	ErrNoActiveModel = errors.New("no active model")
)

// NotFoundError reports an unknown model name along with the names
// that are registered, so callers can surface them.
type NotFoundError struct {
	Model     string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("model %q not found (no models registered)", e.Model)
	}
	return fmt.Sprintf("model %q not found (available: %s)", e.Model, strings.Join(e.Available, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrModelNotFound }

// CompletionError wraps a provider failure or timeout.
type CompletionError struct {
	Model    string
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion via %s/%s: %v", e.Provider, e.Model, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

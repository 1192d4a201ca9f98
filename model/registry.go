package model

import (
	"context"
	"sort"
	"time"
)

// Registry holds the fixed set of models known to an installation.
// It is populated from configured providers at construction and
// read-only afterwards, so a single Registry may be shared by any
// number of engines.
type Registry struct {
	providers map[string]Provider
	models    []Descriptor // sorted by name
	byName    map[string]Descriptor
}

// NewRegistry builds a registry from the given providers. When two
// providers serve the same model name, the first one registered wins.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		byName:    make(map[string]Descriptor),
	}
	for _, p := range providers {
		for _, d := range p.Models() {
			if _, exists := r.byName[d.Name]; exists {
				continue
			}
			if d.Provider == "" {
				d.Provider = p.Name()
			}
			r.byName[d.Name] = d
			r.models = append(r.models, d)
		}
		r.providers[p.Name()] = p
	}
	sort.Slice(r.models, func(i, j int) bool { return r.models[i].Name < r.models[j].Name })
	return r
}

// List returns all registered model descriptors, ordered by name.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.models))
	copy(out, r.models)
	return out
}

// Names returns all registered model names, ordered.
func (r *Registry) Names() []string {
	names := make([]string, len(r.models))
	for i, d := range r.models {
		names[i] = d.Name
	}
	return names
}

// Lookup finds a model descriptor and the provider serving it.
func (r *Registry) Lookup(name string) (Descriptor, Provider, bool) {
	d, ok := r.byName[name]
	if !ok {
		return Descriptor{}, nil, false
	}
	return d, r.providers[d.Provider], true
}

// DefaultCompleteTimeout bounds one completion call.
const DefaultCompleteTimeout = 2 * time.Minute

// Router tracks which model is active for one engine and routes
// completion requests to its provider. The registry it reads is
// shared; the active selection is not, so each engine owns its own
// Router.
type Router struct {
	registry *Registry
	timeout  time.Duration

	active       *Descriptor
	activeConfig map[string]string
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithCompleteTimeout bounds each completion call.
func WithCompleteTimeout(d time.Duration) RouterOption {
	return func(rt *Router) {
		rt.timeout = d
	}
}

// NewRouter creates a router over a shared registry.
func NewRouter(registry *Registry, opts ...RouterOption) *Router {
	rt := &Router{
		registry: registry,
		timeout:  DefaultCompleteTimeout,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Registry returns the shared registry this router reads.
func (rt *Router) Registry() *Registry { return rt.registry }

// Activate selects the named model for subsequent completions.
// Unknown names return a NotFoundError listing registered models and
// leave the current selection untouched.
func (rt *Router) Activate(name string, config map[string]string) (Descriptor, error) {
	d, _, ok := rt.registry.Lookup(name)
	if !ok {
		return Descriptor{}, &NotFoundError{Model: name, Available: rt.registry.Names()}
	}
	rt.active = &d
	rt.activeConfig = config
	return d, nil
}

// Active returns the currently selected model, if any.
func (rt *Router) Active() (Descriptor, bool) {
	if rt.active == nil {
		return Descriptor{}, false
	}
	return *rt.active, true
}

// Reset clears the active selection.
func (rt *Router) Reset() {
	rt.active = nil
	rt.activeConfig = nil
}

// Complete sends the prompt to the active model's provider with a
// bounded timeout. It fails with ErrNoActiveModel when Activate was
// never called; provider failures and timeouts come back wrapped in
// a CompletionError.
func (rt *Router) Complete(ctx context.Context, prompt string, promptCtx map[string]any) (*Completion, error) {
	if rt.active == nil {
		return nil, ErrNoActiveModel
	}

	d := *rt.active
	_, provider, ok := rt.registry.Lookup(d.Name)
	if !ok || provider == nil {
		return nil, &NotFoundError{Model: d.Name, Available: rt.registry.Names()}
	}

	ctx, cancel := context.WithTimeout(ctx, rt.timeout)
	defer cancel()

	comp, err := provider.Complete(ctx, Request{
		Model:   d.Name,
		Prompt:  prompt,
		Context: promptCtx,
		Config:  rt.activeConfig,
	})
	if err != nil {
		return nil, &CompletionError{Model: d.Name, Provider: d.Provider, Err: err}
	}
	if comp.Model == "" {
		comp.Model = d.Name
	}
	if comp.Provider == "" {
		comp.Provider = d.Provider
	}
	return comp, nil
}

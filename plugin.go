package lumen

import (
	"context"
	"fmt"
	"strings"
)

// PluginRouter resolves and executes plugin calls. The plugin
// subsystem lives outside this module; the engine only routes a call
// by name and surfaces the result or the error.
type PluginRouter interface {
	Call(ctx context.Context, plugin, action string, args ...any) (any, error)
}

// Plugin routes a "name.action" call to the configured plugin router.
// Failures from the router come back wrapped in a PluginError.
func (e *Engine) Plugin(ctx context.Context, ref string, args ...any) (any, error) {
	name, action, found := strings.Cut(ref, ".")
	if !found || name == "" || action == "" {
		return nil, fmt.Errorf("invalid plugin reference %q, want name.action", ref)
	}
	if e.plugins == nil {
		return nil, ErrNoPluginRouter
	}

	result, err := e.plugins.Call(ctx, name, action, args...)
	if err != nil {
		return nil, &PluginError{Plugin: name, Action: action, Err: err}
	}
	return result, nil
}

package lumen

import (
	"errors"
	"fmt"

	"github.com/lumenlang/golumen/script"
)

// Standard errors
var (
	// ErrMemoryNotFound is returned when recalling an unknown tag.
	ErrMemoryNotFound = errors.New("memory tag not found")

	// ErrNoPluginRouter is returned by Plugin when no router is configured.
	ErrNoPluginRouter = errors.New("no plugin router configured")
)

// PluginError wraps a failure from the external plugin subsystem.
// The cause is opaque to the engine.
type PluginError struct {
	Plugin string
	Action string
	Err    error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s.%s: %v", e.Plugin, e.Action, e.Err)
}

func (e *PluginError) Unwrap() error { return e.Err }

// DispatchError reports an unexpected failure inside one statement
// handler. It is caught at the statement boundary and surfaced as an
// error result; the run continues.
type DispatchError struct {
	Kind script.Kind
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s: %v", e.Kind, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

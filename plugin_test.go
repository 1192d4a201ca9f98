package lumen

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakePluginRouter struct {
	callFn func(ctx context.Context, plugin, action string, args ...any) (any, error)
}

func (f *fakePluginRouter) Call(ctx context.Context, plugin, action string, args ...any) (any, error) {
	return f.callFn(ctx, plugin, action, args...)
}

func TestPluginCall(t *testing.T) {
	var gotPlugin, gotAction string
	var gotArgs []any
	pr := &fakePluginRouter{
		callFn: func(ctx context.Context, plugin, action string, args ...any) (any, error) {
			gotPlugin, gotAction, gotArgs = plugin, action, args
			return "done", nil
		},
	}
	e := newTestEngine(WithPluginRouter(pr))

	result, err := e.Plugin(context.Background(), "fs.read", "/tmp/x", 42)
	if err != nil {
		t.Fatalf("Plugin() returned error: %v", err)
	}
	if result != "done" {
		t.Errorf("result = %v", result)
	}
	if gotPlugin != "fs" || gotAction != "read" {
		t.Errorf("routed to %s.%s", gotPlugin, gotAction)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "/tmp/x" || gotArgs[1] != 42 {
		t.Errorf("args = %v", gotArgs)
	}
}

func TestPluginCallNoRouter(t *testing.T) {
	e := newTestEngine()

	_, err := e.Plugin(context.Background(), "fs.read")
	if !errors.Is(err, ErrNoPluginRouter) {
		t.Errorf("err = %v, want ErrNoPluginRouter", err)
	}
}

func TestPluginCallBadReference(t *testing.T) {
	e := newTestEngine(WithPluginRouter(&fakePluginRouter{}))

	for _, ref := range []string{"noaction", "fs.", ".read", ""} {
		if _, err := e.Plugin(context.Background(), ref); err == nil {
			t.Errorf("Plugin(%q) should fail", ref)
		}
	}
}

func TestPluginCallErrorWrapped(t *testing.T) {
	cause := fmt.Errorf("tool crashed")
	pr := &fakePluginRouter{
		callFn: func(ctx context.Context, plugin, action string, args ...any) (any, error) {
			return nil, cause
		},
	}
	e := newTestEngine(WithPluginRouter(pr))

	_, err := e.Plugin(context.Background(), "fs.read")
	var perr *PluginError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %T, want *PluginError", err)
	}
	if perr.Plugin != "fs" || perr.Action != "read" {
		t.Errorf("PluginError = %+v", perr)
	}
	if !errors.Is(err, cause) {
		t.Error("PluginError should unwrap to the cause")
	}
}

package lumen

import (
	"testing"
	"time"
)

func TestExecutionContextStateRoundtrip(t *testing.T) {
	c := NewExecutionContext()

	c.SetVariable("x", 1.5)
	if v, ok := c.Variable("x"); !ok || v != 1.5 {
		t.Errorf("Variable(x) = %v, %v", v, ok)
	}
	if _, ok := c.Variable("y"); ok {
		t.Error("unset variable should not resolve")
	}

	c.Remember("tag", "content")
	if entry, ok := c.Recall("tag"); !ok || entry.Content != "content" {
		t.Errorf("Recall(tag) = %+v, %v", entry, ok)
	}
	if entry, _ := c.Recall("tag"); entry.Timestamp.IsZero() {
		t.Error("Remember should stamp the entry")
	}

	c.AppendGoal("g", "high")
	if c.GoalCount() != 1 {
		t.Errorf("GoalCount = %d", c.GoalCount())
	}
	if c.MemorySize() != 1 {
		t.Errorf("MemorySize = %d", c.MemorySize())
	}

	c.SetCurrentModel("mistral")
	if c.CurrentModel() != "mistral" {
		t.Errorf("CurrentModel = %q", c.CurrentModel())
	}
}

func TestRememberOverwritesTag(t *testing.T) {
	c := NewExecutionContext()
	c.Remember("k", "first")
	c.Remember("k", "second")

	entry, _ := c.Recall("k")
	if entry.Content != "second" {
		t.Errorf("Content = %q, want latest write", entry.Content)
	}
	if c.MemorySize() != 1 {
		t.Errorf("MemorySize = %d, want 1", c.MemorySize())
	}
}

func TestClear(t *testing.T) {
	c := NewExecutionContext()
	c.SetVariable("x", 1)
	c.Remember("k", "v")
	c.AppendGoal("g", "low")
	c.SetAgentState("default", AgentState{Status: "on"})
	c.AppendConversationTurn(ConversationTurn{ID: "a", Task: "t"})
	c.SetCurrentModel("mistral")
	c.DefineFunction("f", FunctionDef{})

	c.Clear()

	snap := c.Snapshot()
	if len(snap.Variables) != 0 || len(snap.Memory) != 0 || len(snap.Goals) != 0 ||
		len(snap.Agents) != 0 || len(snap.Conversation) != 0 || len(snap.FunctionNames) != 0 {
		t.Errorf("snapshot after Clear = %+v", snap)
	}
	if snap.CurrentModel != "" {
		t.Errorf("CurrentModel = %q", snap.CurrentModel)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := NewExecutionContext()
	c.SetVariable("x", 1)
	c.Remember("k", "v")
	c.AppendGoal("g", "low")
	c.AppendConversationTurn(ConversationTurn{ID: "a", Timestamp: time.Now()})

	snap := c.Snapshot()

	// Mutating the context must not show through the snapshot.
	c.SetVariable("x", 2)
	c.Remember("k", "changed")
	c.AppendGoal("g2", "high")
	c.AppendConversationTurn(ConversationTurn{ID: "b"})

	if snap.Variables["x"] != 1 {
		t.Errorf("Variables[x] = %v", snap.Variables["x"])
	}
	if snap.Memory["k"].Content != "v" {
		t.Errorf("Memory[k] = %+v", snap.Memory["k"])
	}
	if len(snap.Goals) != 1 || len(snap.Conversation) != 1 {
		t.Errorf("snapshot grew: goals %d, turns %d", len(snap.Goals), len(snap.Conversation))
	}

	// And mutating the snapshot must not show through the context.
	snap.Variables["x"] = 99
	if v, _ := c.Variable("x"); v != 2 {
		t.Errorf("context variable = %v", v)
	}
}

func TestSnapshotFunctionNamesSorted(t *testing.T) {
	c := NewExecutionContext()
	c.DefineFunction("zeta", FunctionDef{})
	c.DefineFunction("alpha", FunctionDef{})
	c.DefineFunction("mid", FunctionDef{})

	snap := c.Snapshot()
	want := []string{"alpha", "mid", "zeta"}
	if len(snap.FunctionNames) != len(want) {
		t.Fatalf("FunctionNames = %v", snap.FunctionNames)
	}
	for i, name := range want {
		if snap.FunctionNames[i] != name {
			t.Errorf("FunctionNames[%d] = %q, want %q", i, snap.FunctionNames[i], name)
		}
	}
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	lumen "github.com/lumenlang/golumen"
	"github.com/lumenlang/golumen/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "lumen.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMemoryRoundtrip(t *testing.T) {
	s := openTestStore(t)

	now := time.Now().UTC().Truncate(time.Second)
	if err := s.RecordMemory("perf", lumen.MemoryEntry{Content: "analysis complete", Timestamp: now}); err != nil {
		t.Fatalf("RecordMemory() failed: %v", err)
	}

	entries, err := s.Memory()
	if err != nil {
		t.Fatalf("Memory() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries["perf"].Content != "analysis complete" {
		t.Errorf("entry = %+v", entries["perf"])
	}
}

func TestMemoryUpsert(t *testing.T) {
	s := openTestStore(t)

	now := time.Now().UTC()
	s.RecordMemory("k", lumen.MemoryEntry{Content: "first", Timestamp: now})
	if err := s.RecordMemory("k", lumen.MemoryEntry{Content: "second", Timestamp: now.Add(time.Second)}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	entries, err := s.Memory()
	if err != nil {
		t.Fatalf("Memory() failed: %v", err)
	}
	if len(entries) != 1 || entries["k"].Content != "second" {
		t.Errorf("entries = %+v, want single latest value", entries)
	}
}

func TestGoalsOrdered(t *testing.T) {
	s := openTestStore(t)

	now := time.Now().UTC()
	s.RecordGoal(lumen.Goal{Goal: "first", Priority: "high", Timestamp: now})
	s.RecordGoal(lumen.Goal{Goal: "second", Priority: "low", Timestamp: now})

	goals, err := s.Goals()
	if err != nil {
		t.Fatalf("Goals() failed: %v", err)
	}
	if len(goals) != 2 || goals[0].Goal != "first" || goals[1].Goal != "second" {
		t.Errorf("goals = %+v, want insertion order", goals)
	}
	if goals[0].Priority != "high" {
		t.Errorf("priority = %q", goals[0].Priority)
	}
}

func TestHistoryLimit(t *testing.T) {
	s := openTestStore(t)

	now := time.Now().UTC()
	for i, task := range []string{"one", "two", "three"} {
		err := s.RecordTurn(lumen.ConversationTurn{
			ID:        task[:2] + "000000",
			Task:      task,
			Response:  "r",
			Model:     "mistral",
			Timestamp: now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("RecordTurn() failed: %v", err)
		}
	}

	all, err := s.History(0)
	if err != nil {
		t.Fatalf("History(0) failed: %v", err)
	}
	if len(all) != 3 || all[0].Task != "one" {
		t.Errorf("History(0) = %+v", all)
	}

	last, err := s.History(2)
	if err != nil {
		t.Fatalf("History(2) failed: %v", err)
	}
	if len(last) != 2 || last[0].Task != "two" || last[1].Task != "three" {
		t.Errorf("History(2) = %+v, want the two newest in oldest-first order", last)
	}
}

type seedProvider struct{}

func (seedProvider) Name() string { return "fake" }
func (seedProvider) Models() []model.Descriptor {
	return []model.Descriptor{{Name: "mistral", Provider: "fake"}}
}
func (seedProvider) Complete(ctx context.Context, req model.Request) (*model.Completion, error) {
	return &model.Completion{Text: "ok"}, nil
}

func TestSeedEngine(t *testing.T) {
	s := openTestStore(t)

	now := time.Now().UTC()
	s.RecordMemory("prior", lumen.MemoryEntry{Content: "carried", Timestamp: now})
	s.RecordGoal(lumen.Goal{Goal: "resume work", Priority: "medium", Timestamp: now})
	s.RecordTurn(lumen.ConversationTurn{ID: "ab12cd34", Task: "t", Response: "r", Model: "mistral", Timestamp: now})

	e := lumen.New(model.NewRegistry(seedProvider{}))
	if err := s.Seed(e); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	res := e.Execute(context.Background(), "recall prior\n")
	if res.Results[0].Content != "carried" {
		t.Errorf("recall after seed = %+v", res.Results[0])
	}
	snap := e.Context()
	if len(snap.Goals) != 1 || len(snap.Conversation) != 1 {
		t.Errorf("seeded context: goals %d, turns %d", len(snap.Goals), len(snap.Conversation))
	}
}

func TestEngineRecordsThroughStore(t *testing.T) {
	s := openTestStore(t)
	e := lumen.New(model.NewRegistry(seedProvider{}), lumen.WithRecorder(s))

	res := e.Execute(context.Background(), `goal: "persist me" priority: high
remember("durable") as "d"
model: mistral
assistant: say hi`)
	if res.Status != lumen.ProgramSuccess {
		t.Fatalf("Status = %q", res.Status)
	}

	goals, err := s.Goals()
	if err != nil || len(goals) != 1 || goals[0].Goal != "persist me" {
		t.Errorf("goals = %+v (err %v)", goals, err)
	}
	entries, err := s.Memory()
	if err != nil || entries["d"].Content != "durable" {
		t.Errorf("memory = %+v (err %v)", entries, err)
	}
	turns, err := s.History(0)
	if err != nil || len(turns) != 1 || turns[0].Task != "say hi" {
		t.Errorf("turns = %+v (err %v)", turns, err)
	}
}

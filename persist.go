package lumen

import "log/slog"

// Recorder receives durable copies of context mutations as they
// happen. Implementations persist them (see the store package);
// recording failures are logged and never fail the statement.
type Recorder interface {
	RecordTurn(turn ConversationTurn) error
	RecordMemory(tag string, entry MemoryEntry) error
	RecordGoal(goal Goal) error
}

func (e *Engine) recordTurn(turn ConversationTurn) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.RecordTurn(turn); err != nil {
		slog.Warn("record conversation turn", "error", err)
	}
}

func (e *Engine) recordMemory(tag string, entry MemoryEntry) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.RecordMemory(tag, entry); err != nil {
		slog.Warn("record memory entry", "tag", tag, "error", err)
	}
}

func (e *Engine) recordGoal(goal Goal) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.RecordGoal(goal); err != nil {
		slog.Warn("record goal", "error", err)
	}
}

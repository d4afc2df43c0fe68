package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsFlowIntoOutput(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf})

	ctx := logg.WithGroupOrderID(context.Background(), "g-123")
	ctx = logg.WithField(ctx, "step", "replay")
	logg.Info(ctx, "replay.start")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["group_order_id"] != "g-123" {
		t.Fatalf("missing group_order_id: %v", entry)
	}
	if entry["step"] != "replay" {
		t.Fatalf("missing step: %v", entry)
	}
	if entry["service"] != "test" {
		t.Fatalf("missing service: %v", entry)
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if got := ParseLevel("nonsense"); got != zerolog.InfoLevel {
		t.Fatalf("unexpected level: %v", got)
	}
	if got := ParseLevel("debug"); got != zerolog.DebugLevel {
		t.Fatalf("unexpected level: %v", got)
	}
}

func TestErrorIncludesErrField(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	logg.Error(context.Background(), "session.close", context.DeadlineExceeded)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["error"] == nil {
		t.Fatalf("missing error field: %v", entry)
	}
}

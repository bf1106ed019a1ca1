package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestInfoCarriesContextFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithCourierID(ctx, "courier-9")
	logg.Info(ctx, "order.accepted")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Errorf("missing request_id: %v", entry)
	}
	if entry["courier_id"] != "courier-9" {
		t.Errorf("missing courier_id: %v", entry)
	}
	if entry["service"] != "test" {
		t.Errorf("missing service field: %v", entry)
	}
	if entry["message"] != "order.accepted" {
		t.Errorf("unexpected message: %v", entry)
	}
}

func TestErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	logg.Error(context.Background(), "settlement.failed", errors.New("boom"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["error"] != "boom" {
		t.Errorf("missing error field: %v", entry)
	}
	if _, ok := entry["stack"]; !ok {
		t.Error("expected stack field on error logs")
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Error("debug should parse")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Error("empty should default to info")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Error("unknown should default to info")
	}
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, line string) map[string]interface{} {
	t.Helper()
	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &payload); err != nil {
		t.Fatalf("failed to parse log line %q: %v", line, err)
	}
	return payload
}

func TestLoggerIncludesCorrelationIDAndLayer(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:    &buf,
		Level:     "debug",
		Format:    "json",
		Layer:     "domain",
		Component: "detector",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := WithCorrelationID(context.Background(), "abc123")
	logger.Debug(ctx, "active section changed", "from", "home", "to", "skills")

	payload := decodeLine(t, buf.String())
	if payload["layer"] != "domain" {
		t.Fatalf("expected layer domain, got %v", payload["layer"])
	}
	if payload["component"] != "detector" {
		t.Fatalf("expected component field, got %v", payload["component"])
	}
	if payload["correlation_id"] != "abc123" {
		t.Fatalf("expected correlation_id abc123, got %v", payload["correlation_id"])
	}
	if payload["to"] != "skills" {
		t.Fatalf("expected to=skills, got %v", payload["to"])
	}
	if payload["msg"] != "active section changed" {
		t.Fatalf("unexpected message %v", payload["msg"])
	}
}

func TestLoggerWithOverridesFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Format: "json", Component: "app"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := logger.With("component", "particles").(*Logger)
	child.ForLayer("domain").Warn(context.Background(), "tick skipped", "generation", 3)

	payload := decodeLine(t, buf.String())
	if payload["component"] != "particles" {
		t.Fatalf("expected component=particles, got %v", payload["component"])
	}
	if payload["layer"] != "domain" {
		t.Fatalf("expected layer=domain, got %v", payload["layer"])
	}
	if payload["generation"] != float64(3) {
		t.Fatalf("expected generation 3, got %v", payload["generation"])
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "warn", Format: "logfmt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info(context.Background(), "quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered, got %q", buf.String())
	}
	logger.Error(context.Background(), "loud", "code", "SETUP_FAILED")
	if !strings.Contains(buf.String(), "code=SETUP_FAILED") {
		t.Fatalf("expected logfmt output, got %q", buf.String())
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected level error")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected format error")
	}
}

func TestNoOpLogger(t *testing.T) {
	noOp := NewNoOpLogger()
	noOp.Info(context.Background(), "hello world")
	derived, ok := noOp.With("key", "value").(Multi)
	if !ok || len(derived) != 0 {
		t.Fatalf("expected With to return an empty fan-out, got %#v", derived)
	}
}

func TestMergeFields(t *testing.T) {
	got := mergeFields([]interface{}{"a", 1, "b", 2}, []interface{}{"b", 3, 42, "skip", "c"})
	want := []interface{}{"a", 1, "b", 3}
	if len(got) != len(want) {
		t.Fatalf("mergeFields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mergeFields = %v, want %v", got, want)
		}
	}
}

func TestSessionContextHasCorrelationID(t *testing.T) {
	ctx := NewSessionContext(context.Background())
	if GetCorrelationID(ctx) == "" {
		t.Fatal("expected generated correlation id")
	}
}

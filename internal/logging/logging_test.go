// ABOUTME: Tests for logger construction.
// ABOUTME: Covers level filtering and output formats.

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn"})

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected warn to be logged, got %q", out)
	}
}

func TestNewUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "loud"})

	logger.Debug("debug line")
	logger.Info("info line")

	if strings.Contains(buf.String(), "debug line") {
		t.Error("expected debug to be filtered at info level")
	}
	if !strings.Contains(buf.String(), "info line") {
		t.Error("expected info to be logged")
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "info", Format: "json"})

	logger.Info("request", "status", 200)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "request" {
		t.Errorf("expected msg=request, got %v", entry["msg"])
	}
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rowanlock/coursefinder-go/internal/ctxutil"
)

func parseEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	return logEntry
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info("test message")

	logEntry := parseEntry(t, &buf)

	requiredFields := []string{"timestamp", "level", "message"}
	for _, field := range requiredFields {
		if _, ok := logEntry[field]; !ok {
			t.Errorf("JSON log missing required field %q", field)
		}
	}

	if logEntry["message"] != "test message" {
		t.Errorf("message = %v, want %q", logEntry["message"], "test message")
	}
	if logEntry["level"] != "info" {
		t.Errorf("level = %v, want %q", logEntry["level"], "info")
	}
}

func TestLogger_WarnLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.Warn("careful")

	logEntry := parseEntry(t, &buf)
	if logEntry["level"] != "warning" {
		t.Errorf("level = %v, want %q", logEntry["level"], "warning")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Debug("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("debug record emitted at info level: %s", buf.String())
	}

	log.Info("should pass")
	if buf.Len() == 0 {
		t.Error("info record dropped at info level")
	}
}

func TestLogger_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("invalid", &buf)

	log.Debug("dropped")
	if buf.Len() != 0 {
		t.Error("invalid level should default to info and drop debug records")
	}
}

func TestLogger_WithModule(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithModule("resolver").Info("test message")

	logEntry := parseEntry(t, &buf)
	if module, ok := logEntry["module"].(string); !ok || module != "resolver" {
		t.Errorf("WithModule() module = %v, want %q", logEntry["module"], "resolver")
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	testErr := &testError{msg: "test error message"}
	log.WithError(testErr).Error("operation failed")

	logEntry := parseEntry(t, &buf)
	if errField, ok := logEntry["error"].(string); !ok || errField != "test error message" {
		t.Errorf("WithError() error = %v, want %q", logEntry["error"], "test error message")
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithFields(map[string]any{"family": "SMSTS", "results": 3}).Info("search done")

	logEntry := parseEntry(t, &buf)
	if logEntry["family"] != "SMSTS" {
		t.Errorf("family = %v, want SMSTS", logEntry["family"])
	}
	if logEntry["results"] != float64(3) {
		t.Errorf("results = %v, want 3", logEntry["results"])
	}
}

func TestLogger_RequestIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	ctx := ctxutil.WithRequestID(context.Background(), "ctx-req-456")
	log.InfoContext(ctx, "test message")

	logEntry := parseEntry(t, &buf)
	if requestID, ok := logEntry["request_id"].(string); !ok || requestID != "ctx-req-456" {
		t.Errorf("context request_id = %v, want %q", logEntry["request_id"], "ctx-req-456")
	}
}

func TestLogger_ShutdownWithoutRemote(t *testing.T) {
	log := New("info")
	if err := log.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() on stdout-only logger = %v, want nil", err)
	}
}

// testError is a simple error type for testing
type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

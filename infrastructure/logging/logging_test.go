package logging

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// testLogger creates a logger that writes to a buffer for testing
func testLogger() (*bolt.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := bolt.NewJSONHandler(buf)
	logger := bolt.New(handler).SetLevel(bolt.TRACE)
	return logger, buf
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()

	if config.Level != "info" {
		t.Errorf("Level = %s, want info", config.Level)
	}
	if config.Format != "console" {
		t.Errorf("Format = %s, want console", config.Format)
	}
	if config.Output != os.Stdout {
		t.Errorf("Output = %v, want os.Stdout", config.Output)
	}
}

func TestProductionConfig(t *testing.T) {
	t.Parallel()

	config := ProductionConfig()

	if config.Level != "info" {
		t.Errorf("Level = %s, want info", config.Level)
	}
	if config.Format != "json" {
		t.Errorf("Format = %s, want json", config.Format)
	}
	if config.Output != os.Stdout {
		t.Errorf("Output = %v, want os.Stdout", config.Output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"warn", bolt.WARN},
		{"error", bolt.ERROR},
		{"unknown", bolt.INFO}, // Default
		{"", bolt.INFO},        // Empty defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%s) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSessionIDField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := SessionID("sess-123")
	if field == nil {
		t.Fatal("SessionID() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"session_id":"sess-123"`)) {
		t.Errorf("expected session_id field in output: %s", buf.String())
	}
}

func TestToolNameField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := ToolName("read_file")
	if field == nil {
		t.Fatal("ToolName() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"tool":"read_file"`)) {
		t.Errorf("expected tool field in output: %s", buf.String())
	}
}

func TestErrorKindField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := ErrorKind("timeout")
	if field == nil {
		t.Fatal("ErrorKind() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"error_kind":"timeout"`)) {
		t.Errorf("expected error_kind field in output: %s", buf.String())
	}
}

func TestMemoryBytesField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := MemoryBytes(4096)
	if field == nil {
		t.Fatal("MemoryBytes() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"memory_bytes":4096`)) {
		t.Errorf("expected memory_bytes field in output: %s", buf.String())
	}
}

func TestTimeoutSecondsField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := TimeoutSeconds(2 * time.Second)
	if field == nil {
		t.Fatal("TimeoutSeconds() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"timeout_seconds":2`)) {
		t.Errorf("expected timeout_seconds field in output: %s", buf.String())
	}
}

func TestDurationField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Duration(100 * time.Millisecond)
	if field == nil {
		t.Fatal("Duration() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"duration_ms":100`)) {
		t.Errorf("expected duration_ms field in output: %s", buf.String())
	}
}

func TestFunctionCountField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := FunctionCount(3)
	if field == nil {
		t.Fatal("FunctionCount() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"function_count":3`)) {
		t.Errorf("expected function_count field in output: %s", buf.String())
	}
}

func TestComponentField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Component("session")
	if field == nil {
		t.Fatal("Component() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"component":"session"`)) {
		t.Errorf("expected component field in output: %s", buf.String())
	}
}

func TestStrField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Str("custom_key", "custom_value")
	if field == nil {
		t.Fatal("Str() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"custom_key":"custom_value"`)) {
		t.Errorf("expected custom_key field in output: %s", buf.String())
	}
}

// TestInit tests logger initialization
func TestInit(t *testing.T) {
	// Note: Can't test Init() properly due to sync.Once
	// Just test that Init doesn't panic with various configs
	t.Run("with nil output uses stdout", func(t *testing.T) {
		// Skip because sync.Once is already triggered
		t.Skip("sync.Once already triggered in other tests")
	})
}

// TestGet tests getting the default logger
func TestGet(t *testing.T) {
	logger := Get()
	if logger == nil {
		t.Fatal("Get() returned nil")
	}
}

// TestSetLevel tests changing the log level
func TestSetLevel(t *testing.T) {
	// Just verify it doesn't panic
	SetLevel("debug")
	SetLevel("info")
	SetLevel("error")
}

// TestLogEvent tests the LogEvent wrapper
func TestLogEvent(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	t.Run("Add chains fields", func(t *testing.T) {
		buf.Reset()
		event := &LogEvent{event: logger.Info()}
		event.Add(SessionID("sess-1")).Add(ToolName("read_file")).Msg("test")

		if !bytes.Contains(buf.Bytes(), []byte(`"session_id":"sess-1"`)) {
			t.Errorf("expected session_id field in output: %s", buf.String())
		}
		if !bytes.Contains(buf.Bytes(), []byte(`"tool":"read_file"`)) {
			t.Errorf("expected tool field in output: %s", buf.String())
		}
	})

	t.Run("Send without message", func(t *testing.T) {
		buf.Reset()
		event := &LogEvent{event: logger.Info()}
		event.Add(SessionID("sess-2")).Send()

		if !bytes.Contains(buf.Bytes(), []byte(`"session_id":"sess-2"`)) {
			t.Errorf("expected session_id field in output: %s", buf.String())
		}
	})
}

// TestNewEvent tests creating a new LogEvent wrapper
func TestNewEvent(t *testing.T) {
	logger, _ := testLogger()
	event := logger.Info()
	logEvent := NewEvent(event)

	if logEvent == nil {
		t.Fatal("NewEvent() returned nil")
	}
	if logEvent.event != event {
		t.Error("NewEvent() did not store the event correctly")
	}
}

// TestLogLevelHelpers tests the convenience methods
func TestLogLevelHelpers(t *testing.T) {
	// These call Get() which initializes the default logger
	// Just verify they don't panic and return non-nil

	// Redirect to discard to avoid polluting test output
	originalOutput := os.Stdout
	os.Stdout = os.NewFile(0, os.DevNull)
	defer func() { os.Stdout = originalOutput }()

	t.Run("Trace", func(t *testing.T) {
		event := Trace()
		if event == nil {
			t.Fatal("Trace() returned nil")
		}
	})

	t.Run("Debug", func(t *testing.T) {
		event := Debug()
		if event == nil {
			t.Fatal("Debug() returned nil")
		}
	})

	t.Run("Info", func(t *testing.T) {
		event := Info()
		if event == nil {
			t.Fatal("Info() returned nil")
		}
	})

	t.Run("Warn", func(t *testing.T) {
		event := Warn()
		if event == nil {
			t.Fatal("Warn() returned nil")
		}
	})

	t.Run("Error", func(t *testing.T) {
		event := Error()
		if event == nil {
			t.Fatal("Error() returned nil")
		}
	})

	// Note: Don't test Fatal() as it might call os.Exit
}

// Ensure io import is used
var _ io.Writer = (*bytes.Buffer)(nil)

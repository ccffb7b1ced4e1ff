package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"Info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"xyzzy", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInitLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{
		Level:   "info",
		Format:  "json",
		Service: "underwriting-service",
		Output:  &buf,
	})

	logger.Info("deal created", "deal_id", "deal-001")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "deal created" {
		t.Errorf("msg = %v, want %q", record["msg"], "deal created")
	}
	if record["service"] != "underwriting-service" {
		t.Errorf("service = %v, want underwriting-service", record["service"])
	}
	if record["deal_id"] != "deal-001" {
		t.Errorf("deal_id = %v, want deal-001", record["deal_id"])
	}
}

func TestInitLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{
		Level:  "warn",
		Format: "json",
		Output: &buf,
	})

	logger.Info("suppressed")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info record emitted at warn level:\n%s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing:\n%s", out)
	}
}

func TestInitLoggerTextDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{
		Level:  "info",
		Format: "",
		Output: &buf,
	})

	logger.Info("text message", "key", "value")
	if !strings.Contains(buf.String(), "msg=\"text message\"") {
		t.Errorf("expected text-format output, got:\n%s", buf.String())
	}
}

func TestInitLoggerSetsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{
		Level:  "info",
		Format: "json",
		Output: &buf,
	})

	if slog.Default().Handler() != logger.Handler() {
		t.Error("InitLogger did not install the default logger")
	}
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvLevel, "")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() error = %v", err)
	}
	if cfg.Format != "json" {
		t.Fatalf("Format = %q, want %q", cfg.Format, "json")
	}
	if cfg.Level != slog.LevelInfo {
		t.Fatalf("Level = %v, want %v", cfg.Level, slog.LevelInfo)
	}
}

func TestLoadConfigFromEnv_ValidValues(t *testing.T) {
	t.Setenv(EnvFormat, "text")
	t.Setenv(EnvLevel, "debug")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() error = %v", err)
	}
	if cfg.Format != "text" {
		t.Fatalf("Format = %q, want %q", cfg.Format, "text")
	}
	if cfg.Level != slog.LevelDebug {
		t.Fatalf("Level = %v, want %v", cfg.Level, slog.LevelDebug)
	}
}

func TestLoadConfigFromEnv_InvalidFormat(t *testing.T) {
	t.Setenv(EnvFormat, "yaml")
	t.Setenv(EnvLevel, "")

	_, err := LoadConfigFromEnv()
	if err == nil {
		t.Fatal("expected invalid LOG_FORMAT error")
	}
}

func TestLoadConfigFromEnv_InvalidLevel(t *testing.T) {
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvLevel, "trace")

	_, err := LoadConfigFromEnv()
	if err == nil {
		t.Fatal("expected invalid LOG_LEVEL error")
	}
}

func TestNewLogger_JSONIncludesStaticAttrs(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(DefaultConfig(), &out, "vulndash serve")
	logger.Info("hello")

	line := strings.TrimSpace(out.String())
	if line == "" {
		t.Fatal("expected JSON log line")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got := payload["app"]; got != AppName {
		t.Fatalf("app = %v, want %q", got, AppName)
	}
	if got := payload["command"]; got != "vulndash serve" {
		t.Fatalf("command = %v, want %q", got, "vulndash serve")
	}
}

func TestNewLogger_TextFormatAndDefaultCommand(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(Config{Format: "text", Level: slog.LevelInfo}, &out, "  ")
	logger.Debug("hidden")
	logger.Info("dataset loaded", "records", 3)

	line := out.String()
	if strings.Contains(line, "hidden") {
		t.Fatalf("debug record written at info level: %q", line)
	}
	for _, want := range []string{"app=vulndash", "command=vulndash", "records=3"} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}

func TestBootstrapFromEnv_LevelOverride(t *testing.T) {
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvLevel, "error")

	var out bytes.Buffer
	logger, err := BootstrapFromEnv(BootstrapOptions{Command: "vulndash serve", Writer: &out, Level: "debug"})
	if err != nil {
		t.Fatalf("BootstrapFromEnv() error = %v", err)
	}
	t.Cleanup(func() { slog.SetDefault(Discard()) })

	logger.Debug("visible")
	if !strings.Contains(out.String(), "visible") {
		t.Fatalf("debug record dropped with level override: %q", out.String())
	}

	if _, err := BootstrapFromEnv(BootstrapOptions{Level: "loud"}); err == nil {
		t.Fatal("expected invalid level override error")
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("Discard() logger is enabled at error level")
	}
}

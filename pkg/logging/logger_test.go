package logging

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"globelabels/pkg/config"
)

func TestInit(t *testing.T) {
	tempDir := t.TempDir()
	serverLog := filepath.Join(tempDir, "server.log")
	requestLog := filepath.Join(tempDir, "requests.log")

	// A previous run's log is kept as .old.
	if err := os.WriteFile(serverLog, []byte("previous run\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.LogConfig{
		Server:   config.LogSettings{Path: serverLog, Level: "DEBUG"},
		Requests: config.LogSettings{Path: requestLog, Level: "INFO"},
		Trace:    true,
	}

	defaultLogger := slog.Default()
	cleanup, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer func() {
		cleanup()
		slog.SetDefault(defaultLogger)
		SetTrace(false)
	}()

	if _, err := os.Stat(serverLog); os.IsNotExist(err) {
		t.Error("Server log file not created")
	}
	if _, err := os.Stat(requestLog); os.IsNotExist(err) {
		t.Error("Request log file not created")
	}
	old, err := os.ReadFile(serverLog + ".old")
	if err != nil || !strings.Contains(string(old), "previous run") {
		t.Errorf("expected rotated log, got %q (%v)", old, err)
	}
	if !TraceEnabled() {
		t.Error("trace flag not applied")
	}

	slog.Info("Labels recomputed", "visible", 12)
	if line := GlobalLogCapture.GetLastLine(); !strings.Contains(line, "visible=12") {
		t.Errorf("capture missed the line: %q", line)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"TRACE", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	SetTrace(false)
	Trace(logger, "Label suppressed", "label", "lake:Chad")
	if buf.Len() != 0 {
		t.Errorf("trace disabled but wrote %q", buf.String())
	}

	SetTrace(true)
	defer SetTrace(false)
	Trace(logger, "Label suppressed", "label", "lake:Chad")
	if !strings.Contains(buf.String(), "lake:Chad") {
		t.Errorf("trace enabled but wrote %q", buf.String())
	}
}

func TestLogCaptureWriter_Recent(t *testing.T) {
	w := &LogCaptureWriter{}
	for i := 0; i < captureSize+5; i++ {
		fmt.Fprintf(w, "line %d\n", i)
	}

	recent := w.Recent(3)
	want := []string{
		fmt.Sprintf("line %d", captureSize+2),
		fmt.Sprintf("line %d", captureSize+3),
		fmt.Sprintf("line %d", captureSize+4),
	}
	for i := range want {
		if recent[i] != want[i] {
			t.Errorf("Recent[%d] = %q, want %q", i, recent[i], want[i])
		}
	}
	if n := len(w.Recent(0)); n != captureSize {
		t.Errorf("expected %d retained lines, got %d", captureSize, n)
	}
}

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput_CapturesKeyvals(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	Info("profile assigned", "logical", "Stable-Balanced")
	out := buf.String()
	if !strings.Contains(out, "profile assigned") || !strings.Contains(out, "logical=Stable-Balanced") {
		t.Errorf("log output = %q", out)
	}
}

func TestInit_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cyclesense.log")
	if err := Init("warn", path); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(func() {
		Close()
		_ = Init("info", "")
	})

	Info("hidden")
	Warn("shown", "n", 1)
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("info line written at warn level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Errorf("warn line missing: %q", data)
	}
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	if err := Init("chatty", ""); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

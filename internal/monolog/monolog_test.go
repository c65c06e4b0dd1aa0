package monolog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWritesToLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "mono.log")

	logger := New(Options{LogFile: logPath, Verbose: true})
	logger.Info("hello", "key", "value")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Errorf("expected log file to contain the emitted record")
	}
}

func TestNewWithoutLogFileDoesNotPanic(t *testing.T) {
	logger := New(Options{})
	logger.Info("no file sink configured")
}

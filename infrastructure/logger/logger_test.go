package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func decodeLines(t *testing.T, raw string) []LogData {
	t.Helper()
	var out []LogData
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		var d LogData
		if err := json.Unmarshal([]byte(line), &d); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, d)
	}
	return out
}

func TestWriterLoggerRecordsLevelsAndCaller(t *testing.T) {
	buf := &bufferCloser{}
	log := NewWriterLogger(buf)

	log.Info("hello")
	log.Warning("careful")
	log.Error("broken", errors.New("boom"))

	records := decodeLines(t, buf.String())
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Level != "INFO" || records[1].Level != "WARNING" || records[2].Level != "ERROR" {
		t.Fatalf("unexpected levels: %+v", records)
	}
	if records[2].Err != "boom" {
		t.Fatalf("expected err boom, got %q", records[2].Err)
	}
	if records[0].File != "logger_test.go" {
		t.Fatalf("expected caller file logger_test.go, got %q", records[0].File)
	}
}

func TestNamedLoggerSharesOutput(t *testing.T) {
	buf := &bufferCloser{}
	root := NewWriterLogger(buf)
	child := root.Named("tui").Named("player")

	child.Info("from child")
	root.Info("from root")

	records := decodeLines(t, buf.String())
	if records[0].Component != "tui.player" {
		t.Fatalf("expected component tui.player, got %q", records[0].Component)
	}
	if records[1].Component != "" {
		t.Fatalf("root logger must not carry a component, got %q", records[1].Component)
	}

	child.Close()
	if !buf.closed {
		t.Fatal("closing a child must close the shared output")
	}
	root.Info("dropped")
	if strings.Contains(buf.String(), "dropped") {
		t.Fatal("closed logger must not write")
	}
}

func TestNewFileLoggerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	log, err := NewFileLogger(dir, "motivation_player")
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	log.Info("started")
	log.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "motivation_player_") {
		t.Fatalf("unexpected log files: %v", entries)
	}
}

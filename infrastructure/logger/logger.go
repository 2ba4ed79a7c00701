package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

type Logger interface {
	Info(msg string)
	Error(msg string, err error)
	Warning(msg string)
	// Named returns a logger that tags every record with component and shares
	// the same output.
	Named(component string) Logger
	Close()
}

type LogData struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Component string `json:"component,omitempty"`
	File      string `json:"file"`
	Function  string `json:"function"`
	Message   string `json:"message"`
	Err       string `json:"err,omitempty"`
}

// sink is shared by every named child of a logger.
type sink struct {
	mu      sync.Mutex
	out     io.WriteCloser
	encoder *json.Encoder
}

type fileLogger struct {
	sink      *sink
	component string
}

// NewFileLogger creates logDir if needed and opens a new JSON-lines file named
// after logPrefix and the start time.
func NewFileLogger(logDir, logPrefix string) (Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory '%s': %w", logDir, err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFilePath := filepath.Join(logDir, fmt.Sprintf("%s_%s.json", logPrefix, timestamp))

	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file '%s': %w", logFilePath, err)
	}

	return NewWriterLogger(file), nil
}

// NewWriterLogger writes records to w. Close closes w.
func NewWriterLogger(w io.WriteCloser) Logger {
	return &fileLogger{
		sink: &sink{
			out:     w,
			encoder: json.NewEncoder(w),
		},
	}
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return NewWriterLogger(nopCloser{io.Discard})
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func (l *fileLogger) write(level string, msg string, errIn error, skip int) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out == nil {
		fmt.Fprintf(os.Stderr, "logger is closed, dropping record: %s\n", msg)
		return
	}

	shortFileName, funcName := "???", "???"
	if pc, filePath, _, ok := runtime.Caller(skip); ok {
		shortFileName = filepath.Base(filePath)
		if fn := runtime.FuncForPC(pc); fn != nil {
			parts := strings.Split(fn.Name(), ".")
			funcName = parts[len(parts)-1]
		}
	}

	entry := LogData{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     level,
		Component: l.component,
		File:      shortFileName,
		Function:  funcName,
		Message:   msg,
	}
	if errIn != nil {
		entry.Err = errIn.Error()
	}

	if err := s.encoder.Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log record: %v\n", err)
	}
}

func (l *fileLogger) Info(msg string) {
	l.write("INFO", msg, nil, 2)
}

func (l *fileLogger) Error(msg string, err error) {
	l.write("ERROR", msg, err, 2)
}

func (l *fileLogger) Warning(msg string) {
	l.write("WARNING", msg, nil, 2)
}

func (l *fileLogger) Named(component string) Logger {
	if l.component != "" {
		component = l.component + "." + component
	}
	return &fileLogger{sink: l.sink, component: component}
}

func (l *fileLogger) Close() {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.out != nil {
		if err := s.out.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing log output: %v\n", err)
		}
		s.out = nil
	}
}

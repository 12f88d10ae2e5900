// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/H0llyW00dzZ/x509-store-context/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stderr, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger writes each message as a JSON line of the form
// {"level":"info","component":...,"message":...}.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu        sync.Mutex
	writer    io.Writer
	component string
	silent    bool
}

// entry is one JSON log line.
type entry struct {
	Level     string `json:"level"`
	Component string `json:"component,omitempty"`
	Message   string `json:"message"`
}

// NewJSONLogger creates a JSON logger tagging lines with component. A
// silent logger drops everything; a nil writer discards.
func NewJSONLogger(writer io.Writer, component string, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer:    writer,
		component: component,
		silent:    silent,
	}
}

// Printf formats and logs a message.
func (j *JSONLogger) Printf(format string, v ...any) {
	if j.silent {
		return
	}
	j.write(fmt.Sprintf(format, v...))
}

// Println logs its operands joined by spaces.
func (j *JSONLogger) Println(v ...any) {
	if j.silent {
		return
	}
	msg := fmt.Sprintln(v...)
	j.write(msg[:len(msg)-1])
}

func (j *JSONLogger) write(msg string) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	// Encode appends the trailing newline.
	if err := json.NewEncoder(buf).Encode(entry{
		Level:     "info",
		Component: j.component,
		Message:   msg,
	}); err != nil {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	_, _ = j.writer.Write(buf.Bytes())
}

// SetOutput sets the output destination. A nil writer discards.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}

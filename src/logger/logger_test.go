// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-store-context/src/logger"
)

// syncBuffer is a bytes.Buffer safe for the CLI logger's concurrent writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestCLILogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Printf("loaded %d anchors from %s", 3, "roots.pem")

				assert.Equal(t, "loaded 3 anchors from roots.pem\n", buf.String())
			},
		},
		{
			name: "Println",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Println("fetched", "Test Intermediate CA")

				assert.Equal(t, "fetched Test Intermediate CA\n", buf.String())
			},
		},
		{
			name: "SetOutput",
			testFunc: func(t *testing.T) {
				var buf1, buf2 bytes.Buffer
				log := logger.NewCLILogger()

				log.SetOutput(&buf1)
				log.Println("first")

				log.SetOutput(&buf2)
				log.Println("second")

				assert.Equal(t, "first\n", buf1.String())
				assert.Equal(t, "second\n", buf2.String())
			},
		},
		{
			name: "Concurrent usage",
			testFunc: func(t *testing.T) {
				buf := &syncBuffer{}
				log := logger.NewCLILogger()
				log.SetOutput(buf)

				var wg sync.WaitGroup
				for i := 0; i < 20; i++ {
					wg.Add(1)
					go func(n int) {
						defer wg.Done()
						log.Printf("message %d", n)
					}(i)
				}
				wg.Wait()

				assert.Equal(t, 20, strings.Count(buf.String(), "\n"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

// decodeLines parses every JSON line written to buf.
func decodeLines(t *testing.T, data string) []map[string]string {
	t.Helper()

	var lines []map[string]string
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		var line map[string]string
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line), "line: %s", scanner.Text())
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestJSONLogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf, "mcp-server", false)

				log.Printf("verify %s: code %d", "leaf.pem", 20)

				lines := decodeLines(t, buf.String())
				require.Len(t, lines, 1)
				assert.Equal(t, map[string]string{
					"level":     "info",
					"component": "mcp-server",
					"message":   "verify leaf.pem: code 20",
				}, lines[0])
			},
		},
		{
			name: "Println",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf, "", false)

				log.Println("server", "started")

				lines := decodeLines(t, buf.String())
				require.Len(t, lines, 1)
				assert.Equal(t, "server started", lines[0]["message"])
				assert.NotContains(t, lines[0], "component")
			},
		},
		{
			name: "Special characters are escaped",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf, "", false)

				log.Printf("subject %q\nnext", "CN=\"quoted\"")

				lines := decodeLines(t, buf.String())
				require.Len(t, lines, 1)
				assert.Equal(t, "subject \"CN=\\\"quoted\\\"\"\nnext", lines[0]["message"])
			},
		},
		{
			name: "Silent mode",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf, "mcp-server", true)

				log.Printf("hidden %d", 1)
				log.Println("hidden")

				assert.Empty(t, buf.String())
			},
		},
		{
			name: "Nil writer discards",
			testFunc: func(t *testing.T) {
				log := logger.NewJSONLogger(nil, "", false)
				assert.NotPanics(t, func() { log.Println("dropped") })

				log.SetOutput(nil)
				assert.NotPanics(t, func() { log.Printf("dropped %d", 2) })
			},
		},
		{
			name: "SetOutput",
			testFunc: func(t *testing.T) {
				var buf1, buf2 bytes.Buffer
				log := logger.NewJSONLogger(&buf1, "", false)

				log.Println("first")
				log.SetOutput(&buf2)
				log.Println("second")

				assert.Len(t, decodeLines(t, buf1.String()), 1)
				lines := decodeLines(t, buf2.String())
				require.Len(t, lines, 1)
				assert.Equal(t, "second", lines[0]["message"])
			},
		},
		{
			name: "Concurrent lines stay whole",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf, "worker", false)

				var wg sync.WaitGroup
				for i := 0; i < 50; i++ {
					wg.Add(1)
					go func(n int) {
						defer wg.Done()
						log.Printf("message %d", n)
					}(i)
				}
				wg.Wait()

				assert.Len(t, decodeLines(t, buf.String()), 50)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestLoggerInterface(t *testing.T) {
	var _ logger.Logger = logger.NewCLILogger()
	var _ logger.Logger = logger.NewJSONLogger(nil, "", true)
}

// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/x509-store-context/src/config"
	"github.com/H0llyW00dzZ/x509-store-context/src/logger"
	"github.com/H0llyW00dzZ/x509-store-context/src/version"
)

const serverName = "X509 Store Context"

const instructions = `Use verify_certificate to check an X.509 certificate against a trust store.
Pass untrusted intermediates in "untrusted", or set fetch_intermediates to
download them from the certificate's AIA issuer URLs. A failed verification is
not a tool error: the result carries the verify error code, its text and the
chain depth it was found at.`

var appVersion = version.Version

// GetVersion returns the version the server reports to clients.
func GetVersion() string { return appVersion }

// NewServer builds the MCP server with its tools registered.
func NewServer(cfg *config.Config, version string, l logger.Logger) *server.MCPServer {
	s := server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)

	h := &verifyHandler{cfg: cfg, version: version, log: l}
	s.AddTool(verifyTool(cfg), h.handle)
	return s
}

// Run serves MCP over stdin/stdout until the client disconnects or the
// process receives SIGINT or SIGTERM.
func Run(version string) error {
	appVersion = version
	l := logger.NewJSONLogger(os.Stderr, "mcp-server", false)

	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return serve(ctx, NewServer(cfg, version, l), os.Stdin, os.Stdout, l)
}

func serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, l logger.Logger) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(logWriter{l}, "", 0))

	l.Printf("%s %s listening on stdio", serverName, GetVersion())

	errChan := make(chan error, 1)
	go func() {
		errChan <- stdio.Listen(ctx, in, out)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}

// logWriter feeds a standard library logger into a [logger.Logger].
type logWriter struct{ l logger.Logger }

func (w logWriter) Write(p []byte) (int, error) {
	w.l.Println(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

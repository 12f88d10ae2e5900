// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/H0llyW00dzZ/x509-store-context/src/cli"
	"github.com/H0llyW00dzZ/x509-store-context/src/logger"
	verpkg "github.com/H0llyW00dzZ/x509-store-context/src/version"
)

var version string // set by ldflags or defaults to the version package

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

const (
	exitOK = iota
	exitError
	exitVerificationFailed
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, logger.NewCLILogger())
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, log logger.Logger) int {
	err := cli.Execute(ctx, version, log)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrVerificationFailed):
		return exitVerificationFailed
	case errors.Is(err, context.Canceled):
		log.Println("Operation cancelled.")
		return exitError
	default:
		log.Printf("Error: %v", err)
		return exitError
	}
}

// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger defines the Logger interface shared by the verify command
// and the MCP server, with two implementations: CLILogger for human-readable
// terminal output and JSONLogger for one JSON object per line, used where
// stdout carries a protocol and logs must stay out of it.
package logger

// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes certificate verification to [MCP] clients over
// stdio. It registers one tool, verify_certificate, which runs the same
// store context lifecycle as the verify command and returns the report.
//
// Defaults for trust anchors, network timeout and output format come from
// the configuration file named by X509_STORE_CONTEXT_CONFIG. Logs are JSON
// lines on stderr; stdout belongs to the protocol.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver

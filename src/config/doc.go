// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the verification settings shared by the verify
// command and the MCP server. Files may be JSON, YAML or TOML, chosen by
// extension; values missing from the file keep their defaults.
//
// Example YAML:
//
//	trust:
//	  caFile: /etc/ssl/certs/ca-certificates.crt
//	  system: false
//	verify:
//	  purpose: sslserver
//	network:
//	  timeoutSeconds: 10
//	  fetchIntermediates: true
//	output:
//	  format: tree
package config

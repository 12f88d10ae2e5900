// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain gathers the inputs of an [X.509] verification and
// reports its outcome. It provides capabilities to:
//   - Collect untrusted intermediates by following AIA CA Issuers URLs.
//   - Collect the chain a TLS server presents during the handshake.
//   - Render a verification [Report] as text, an ASCII tree, a markdown table or JSON.
//
// Trust decisions are not taken here: the collected certificates are handed
// to a verification context as untrusted input.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain

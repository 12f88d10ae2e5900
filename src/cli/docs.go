// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the Cobra command line of x509-store-context. Its
// verify command loads a certificate, builds the trust store and the
// untrusted chain from files, AIA downloads or a live TLS handshake, runs
// one verification through a store context and prints the result as text,
// an ASCII tree, a markdown table or JSON.
package cli

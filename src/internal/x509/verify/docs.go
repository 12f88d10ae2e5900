// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509verify runs one complete verification through a
// [x509storectx.StoreContext]: it builds the trust store and untrusted
// stack, drives the context from Create to Release, and returns the
// [x509chain.Report]. The verify command and the MCP server share it.
//
// [x509storectx.StoreContext]: https://pkg.go.dev/github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/storectx#StoreContext
// [x509chain.Report]: https://pkg.go.dev/github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/chain#Report
package x509verify

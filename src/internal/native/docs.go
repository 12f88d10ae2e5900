// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package native is the low-level certificate verification library the
// x509 handle packages bind to. It exposes raw handles ([StoreCtx], [Store],
// [X509], [Stack]), C-style integer return codes and a process-wide error
// queue, in the shape of the [OpenSSL] X509_STORE_CTX API.
//
// Path building and signature checks are delegated to [crypto/x509]. This
// package only tracks handle state, translates verification failures into
// numeric verify codes and queues library errors for the wrappers to report.
//
// Handles are not safe for concurrent mutation. The error queue is.
//
// [OpenSSL]: https://docs.openssl.org/3.0/man3/X509_STORE_CTX_new/
package native

// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509store provides [Store], the trust store handle a verification
// context is initialized with. A store holds the anchors chain validation may
// end at: certificates added one by one, loaded from PEM/DER/PKCS7 bundles or
// directories, and optionally the platform roots.
package x509store

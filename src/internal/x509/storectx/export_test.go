// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509storectx

import "github.com/H0llyW00dzZ/x509-store-context/src/internal/native"

// SetLibrary binds handles created afterwards to l.
func SetLibrary(l native.Library) (restore func()) {
	old := lib
	lib = l
	return func() { lib = old }
}

// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package native

import "crypto/x509"

// X509 is a single certificate handle.
type X509 struct {
	cert  *x509.Certificate
	freed bool
}

// X509New wraps a parsed certificate. It returns nil and queues an error
// when cert is nil.
func X509New(cert *x509.Certificate) *X509 {
	if cert == nil {
		ErrPutError(LibX509, ReasonPassedNullParameter)
		return nil
	}
	return &X509{cert: cert}
}

// X509Free releases x. Freeing nil or an already freed handle does nothing.
func X509Free(x *X509) {
	if x == nil {
		return
	}
	x.freed = true
	x.cert = nil
}

// Certificate returns the parsed certificate, nil once x is freed.
func (x *X509) Certificate() *x509.Certificate {
	if x == nil {
		return nil
	}
	return x.cert
}

// Freed reports whether X509Free was called on x.
func (x *X509) Freed() bool { return x != nil && x.freed }

// check queues and returns the error that keeps x from being used, 0 when
// it is usable.
func (x *X509) check() ErrorCode {
	switch {
	case x == nil:
		return ErrPutError(LibX509, ReasonPassedNullParameter)
	case x.freed:
		return ErrPutError(LibX509, ReasonFreedHandle)
	}
	return 0
}

func (x *X509) usable() bool { return x.check() == 0 }

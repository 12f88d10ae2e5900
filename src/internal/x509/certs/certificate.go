// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"

	"github.com/H0llyW00dzZ/x509-store-context/src/internal/native"
	"github.com/H0llyW00dzZ/x509-store-context/src/internal/pointer"
)

// ErrInvalidHandle is returned by methods invoked on a null handle.
var ErrInvalidHandle = pointer.ErrInvalidHandle

// Certificate is a handle to a single native certificate.
//
// Copies share the underlying pointer. Calling any method other than Raw,
// IsNull, Equal, Clone or Release on a null Certificate returns
// [ErrInvalidHandle] or a zero value.
type Certificate struct {
	pointer.Wrapper[native.X509]
}

// TakeOwnership wraps ptr and frees it when the last reference is released.
// A nil ptr fails with a [native.CryptographicError].
func TakeOwnership(ptr *native.X509) (Certificate, error) {
	if ptr == nil {
		code := native.ErrPutError(native.LibX509, native.ReasonPassedNullParameter)
		return Certificate{}, &native.CryptographicError{Code: native.ErrTakeError(code)}
	}
	return Certificate{pointer.Own(ptr, native.X509Free)}, nil
}

// New wraps ptr without taking ownership.
func New(ptr *native.X509) Certificate {
	return Certificate{pointer.Borrow(ptr)}
}

// FromX509 returns an owning handle for an already parsed certificate.
func FromX509(cert *x509.Certificate) (Certificate, error) {
	ptr := native.X509New(cert)
	if ptr == nil {
		return Certificate{}, native.ErrorIfNot(false, nil)
	}
	return TakeOwnership(ptr)
}

// Load decodes the first certificate in data (PEM, DER or PKCS7) into an
// owning handle.
func Load(data []byte) (Certificate, error) {
	cert, err := NewCodec().Decode(data)
	if err != nil {
		return Certificate{}, err
	}
	return FromX509(cert)
}

// Clone returns a handle with one more reference to the same certificate.
func (c Certificate) Clone() Certificate { return Certificate{c.Wrapper.Clone()} }

// Equal reports whether c and other share the same native pointer.
func (c Certificate) Equal(other Certificate) bool { return pointer.Same(c.Wrapper, other.Wrapper) }

// X509 returns the parsed certificate, nil for a null or freed handle.
func (c Certificate) X509() *x509.Certificate { return c.Raw().Certificate() }

// Subject returns the subject common name, falling back to the full
// distinguished name.
func (c Certificate) Subject() string {
	cert := c.X509()
	if cert == nil {
		return ""
	}
	if cert.Subject.CommonName != "" {
		return cert.Subject.CommonName
	}
	return cert.Subject.String()
}

// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509storectx

import (
	"crypto/x509"
	"time"

	"github.com/H0llyW00dzZ/x509-store-context/src/internal/native"
	"github.com/H0llyW00dzZ/x509-store-context/src/internal/pointer"
	x509certs "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/certs"
	x509store "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/store"
)

// CryptographicError is the error returned when the library reports a
// failure. Code is the library error taken from the queue at that moment.
type CryptographicError = native.CryptographicError

// ErrInvalidHandle is returned by methods invoked on a null StoreContext.
var ErrInvalidHandle = pointer.ErrInvalidHandle

// lib is the library new handles bind to.
var lib = native.Default()

// StoreContext is a handle to a native verification context.
//
// A StoreContext has the same semantics as the native pointer: copies share
// it, and two values are equal when they wrap the same pointer. The zero
// value is a null handle. Every method except Raw, IsNull, Owning, Equal,
// Clone and Release returns [ErrInvalidHandle] (or a zero value) on a null
// handle.
type StoreContext struct {
	pointer.Wrapper[native.StoreCtx]
	lib native.Library
}

// Create allocates a new context and returns an owning handle to it.
func Create() (StoreContext, error) {
	l := lib
	ptr := l.StoreCtxNew()
	if err := native.ErrorIfNot(ptr != nil, l.ErrGetError); err != nil {
		return StoreContext{}, err
	}
	return takeOwnership(l, ptr), nil
}

// TakeOwnership wraps ptr and frees it when the last reference is released.
// A nil ptr fails with a [*CryptographicError].
func TakeOwnership(ptr *native.StoreCtx) (StoreContext, error) {
	if ptr == nil {
		code := native.ErrPutError(native.LibX509, native.ReasonPassedNullParameter)
		return StoreContext{}, &CryptographicError{Code: native.ErrTakeError(code)}
	}
	return takeOwnership(lib, ptr), nil
}

func takeOwnership(l native.Library, ptr *native.StoreCtx) StoreContext {
	return StoreContext{
		Wrapper: pointer.Own(ptr, l.StoreCtxFree),
		lib:     l,
	}
}

// New wraps ptr without taking ownership: the caller is still responsible
// for freeing it. No validation is done and a nil ptr yields a null handle.
func New(ptr *native.StoreCtx) StoreContext {
	return StoreContext{
		Wrapper: pointer.Borrow(ptr),
		lib:     lib,
	}
}

// Clone returns a handle with one more reference to the same context.
func (c StoreContext) Clone() StoreContext {
	return StoreContext{Wrapper: c.Wrapper.Clone(), lib: c.lib}
}

// Equal reports whether c and other wrap the same native context.
func (c StoreContext) Equal(other StoreContext) bool {
	return pointer.Same(c.Wrapper, other.Wrapper)
}

// Initialize binds the context to a trust store, the certificate to verify
// and additional untrusted certificates usable to build the chain. Any of
// the three may be a null handle. A context must be cleaned up before it
// can be initialized again.
func (c StoreContext) Initialize(store x509store.Store, cert x509certs.Certificate, chain x509certs.Stack) error {
	if err := c.Check(); err != nil {
		return err
	}
	ok := c.lib.StoreCtxInit(c.Raw(), store.Raw(), cert.Raw(), chain.Raw()) != 0
	return native.ErrorIfNot(ok, c.lastError)
}

// SetTrustedCertificates makes certs the trusted set for the next
// verification, instead of the store given to Initialize. Library failures
// here are not reported.
func (c StoreContext) SetTrustedCertificates(certs x509certs.Stack) error {
	if err := c.Check(); err != nil {
		return err
	}
	c.lib.StoreCtxTrustedStack(c.Raw(), certs.Raw())
	return nil
}

// Cleanup resets the working state so Initialize can be called again. It
// does not free the context. Library failures here are not reported.
func (c StoreContext) Cleanup() error {
	if err := c.Check(); err != nil {
		return err
	}
	c.lib.StoreCtxCleanup(c.Raw())
	return nil
}

// SetTime fixes the time certificates are checked against.
func (c StoreContext) SetTime(t time.Time) error {
	if err := c.Check(); err != nil {
		return err
	}
	c.lib.StoreCtxSetTime(c.Raw(), t)
	return nil
}

// SetPurpose sets the usage the verified chain must allow.
func (c StoreContext) SetPurpose(p native.Purpose) error {
	if err := c.Check(); err != nil {
		return err
	}
	return native.ErrorIfNot(c.lib.StoreCtxSetPurpose(c.Raw(), p) == 1, c.lastError)
}

// SetHost sets the DNS name the leaf certificate must be valid for.
func (c StoreContext) SetHost(host string) error {
	if err := c.Check(); err != nil {
		return err
	}
	return native.ErrorIfNot(c.lib.StoreCtxSetHost(c.Raw(), host) == 1, c.lastError)
}

// Verify runs chain verification on an initialized context. It returns
// true for a trusted chain and false, with a nil error, when verification
// completed but failed; [StoreContext.VerifyError] then tells why. An error is
// returned only when verification could not run.
func (c StoreContext) Verify() (bool, error) {
	if err := c.Check(); err != nil {
		return false, err
	}
	switch c.lib.VerifyCert(c.Raw()) {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, native.ErrorIfNot(false, c.lastError)
	}
}

// lastError takes the queue entry of the last failure on c. Entries queued
// by other goroutines are left for their callers.
func (c StoreContext) lastError() native.ErrorCode {
	if code := c.lib.StoreCtxLastError(c.Raw()); code != 0 {
		return native.ErrTakeError(code)
	}
	return c.lib.ErrGetError()
}

// VerifyError returns the verify result code of the last verification, or
// [native.VErrUnspecified] for a null handle.
func (c StoreContext) VerifyError() int {
	if c.IsNull() {
		return native.VErrUnspecified
	}
	return c.lib.StoreCtxGetError(c.Raw())
}

// VerifyErrorString returns the text of [StoreContext.VerifyError].
func (c StoreContext) VerifyErrorString() string {
	return native.VerifyCertErrorString(c.VerifyError())
}

// ErrorDepth returns the chain depth the verify error was found at.
func (c StoreContext) ErrorDepth() int {
	if c.IsNull() {
		return -1
	}
	return c.lib.StoreCtxGetErrorDepth(c.Raw())
}

// Chain returns the chain built by the last Verify, leaf first. After a
// failed verification it holds the partial chain that was built.
func (c StoreContext) Chain() []*x509.Certificate {
	if c.IsNull() {
		return nil
	}
	return c.lib.StoreCtxGetChain(c.Raw())
}

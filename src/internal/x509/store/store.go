// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509store

import (
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/H0llyW00dzZ/x509-store-context/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/x509-store-context/src/internal/native"
	"github.com/H0llyW00dzZ/x509-store-context/src/internal/pointer"
	x509certs "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/certs"
)

// ErrInvalidHandle is returned by methods invoked on a null handle.
var ErrInvalidHandle = pointer.ErrInvalidHandle

// certExtensions are the file extensions LoadDirectory picks up.
var certExtensions = map[string]bool{
	".pem": true,
	".crt": true,
	".cer": true,
	".der": true,
	".p7b": true,
	".p7c": true,
}

// Store is a handle to a native trust store.
//
// A Store has the same semantics as the native pointer: copies share it.
// Every method except Raw, IsNull, Equal, Clone and Release returns
// [ErrInvalidHandle] on a null Store.
type Store struct {
	pointer.Wrapper[native.Store]
}

// Create allocates a new owning store.
func Create() (Store, error) {
	ptr := native.StoreNew()
	if err := native.ErrorIfNot(ptr != nil, nil); err != nil {
		return Store{}, err
	}
	return Store{pointer.Own(ptr, native.StoreFree)}, nil
}

// TakeOwnership wraps ptr and frees it when the last reference is released.
// A nil ptr fails with a [native.CryptographicError].
func TakeOwnership(ptr *native.Store) (Store, error) {
	if ptr == nil {
		code := native.ErrPutError(native.LibX509, native.ReasonPassedNullParameter)
		return Store{}, &native.CryptographicError{Code: native.ErrTakeError(code)}
	}
	return Store{pointer.Own(ptr, native.StoreFree)}, nil
}

// New wraps ptr without taking ownership. The caller still frees it.
func New(ptr *native.Store) Store {
	return Store{pointer.Borrow(ptr)}
}

// Clone returns a handle with one more reference to the same store.
func (s Store) Clone() Store { return Store{s.Wrapper.Clone()} }

// Equal reports whether s and other share the same native pointer.
func (s Store) Equal(other Store) bool { return pointer.Same(s.Wrapper, other.Wrapper) }

// AddCertificate adds cert as a trust anchor. Adding a certificate twice
// fails with a [native.CryptographicError].
func (s Store) AddCertificate(cert x509certs.Certificate) error {
	if err := s.Check(); err != nil {
		return err
	}
	if err := cert.Check(); err != nil {
		return err
	}
	return native.ErrorIfNot(native.StoreAddCert(s.Raw(), cert.Raw()) == 1, s.lastError)
}

// AddX509 adds a parsed certificate as a trust anchor.
func (s Store) AddX509(cert *x509.Certificate) error {
	c, err := x509certs.FromX509(cert)
	if err != nil {
		return err
	}
	return s.AddCertificate(c)
}

// LoadFile adds every certificate of a PEM, DER or PKCS7 bundle and returns
// how many were new. Certificates already in the store are skipped.
func (s Store) LoadFile(path string) (int, error) {
	if err := s.Check(); err != nil {
		return 0, err
	}

	data, err := gc.ReadFile(path)
	if err != nil {
		return 0, err
	}

	certs, err := x509certs.NewCodec().DecodeMultiple(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if len(certs) == 0 {
		code := native.ErrPutError(native.LibPEM, native.ReasonNoCertificateFound)
		return 0, &native.CryptographicError{Code: native.ErrTakeError(code)}
	}

	added := 0
	for _, cert := range certs {
		err := s.AddX509(cert)
		switch {
		case err == nil:
			added++
		case isDuplicate(err):
		default:
			return added, err
		}
	}
	return added, nil
}

// LoadDirectory loads every certificate file directly inside dir. Files
// that do not decode are skipped; the first I/O error stops the walk.
func (s Store) LoadDirectory(dir string) (int, error) {
	if err := s.Check(); err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, entry := range entries {
		if entry.IsDir() || !certExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		n, err := s.LoadFile(filepath.Join(dir, entry.Name()))
		added += n
		if err == nil || isDecodeError(err) {
			continue
		}
		return added, err
	}
	return added, nil
}

// SetDefaultPaths makes the store trust the platform roots as well.
func (s Store) SetDefaultPaths() error {
	if err := s.Check(); err != nil {
		return err
	}
	return native.ErrorIfNot(native.StoreSetDefaultPaths(s.Raw()) == 1, s.lastError)
}

// Count returns the number of explicitly added anchors.
func (s Store) Count() int {
	if n := native.StoreCount(s.Raw()); n > 0 {
		return n
	}
	return 0
}

// UsesDefaultPaths reports whether platform roots are trusted.
func (s Store) UsesDefaultPaths() bool { return native.StoreUsesDefaultPaths(s.Raw()) }

// lastError takes the queue entry of the last failure on s.
func (s Store) lastError() native.ErrorCode {
	if code := native.StoreLastError(s.Raw()); code != 0 {
		return native.ErrTakeError(code)
	}
	return native.ErrGetError()
}

func isDuplicate(err error) bool {
	return errors.Is(err, &native.CryptographicError{
		Code: native.PackError(native.LibX509, native.ReasonCertAlreadyInHashTable),
	})
}

func isDecodeError(err error) bool {
	return errors.Is(err, x509certs.ErrParseCertificate) ||
		errors.Is(err, x509certs.ErrInvalidBlockType) ||
		errors.Is(err, x509certs.ErrInvalidPEMBlock) ||
		errors.Is(err, &native.CryptographicError{
			Code: native.PackError(native.LibPEM, native.ReasonNoCertificateFound),
		})
}

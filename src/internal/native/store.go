// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package native

import (
	"crypto/sha256"
	"crypto/x509"
)

// Store is a trust store handle: the set of anchors verification may end at.
type Store struct {
	certs  []*X509
	seen   map[[sha256.Size]byte]struct{}
	system bool
	freed  bool

	// lastErr is the code queued by the last failing call on the store.
	lastErr ErrorCode
}

// StoreNew allocates an empty store.
func StoreNew() *Store {
	return &Store{seen: make(map[[sha256.Size]byte]struct{})}
}

// StoreFree releases st.
func StoreFree(st *Store) {
	if st == nil {
		return
	}
	st.freed = true
	st.certs = nil
	st.seen = nil
}

// StoreAddCert adds x as a trust anchor. It returns 1 on success and 0 when
// the handles are unusable or the certificate is already present.
func StoreAddCert(st *Store, x *X509) int {
	if !st.usable() {
		return 0
	}
	if code := x.check(); code != 0 {
		st.lastErr = code
		return 0
	}

	sum := sha256.Sum256(x.cert.Raw)
	if _, dup := st.seen[sum]; dup {
		st.lastErr = ErrPutError(LibX509, ReasonCertAlreadyInHashTable)
		return 0
	}

	st.seen[sum] = struct{}{}
	st.certs = append(st.certs, x)
	return 1
}

// StoreSetDefaultPaths makes the store also trust the platform roots.
func StoreSetDefaultPaths(st *Store) int {
	if !st.usable() {
		return 0
	}
	st.system = true
	return 1
}

// StoreLastError returns the code queued by the last failing call on st, 0
// when there is none.
func StoreLastError(st *Store) ErrorCode {
	if st == nil {
		return 0
	}
	return st.lastErr
}

// StoreCount returns the number of explicitly added anchors, -1 for an
// unusable store. Platform roots are not counted.
func StoreCount(st *Store) int {
	if st == nil || st.freed {
		return -1
	}
	return len(st.certs)
}

// StoreUsesDefaultPaths reports whether StoreSetDefaultPaths was applied.
func StoreUsesDefaultPaths(st *Store) bool {
	return st != nil && !st.freed && st.system
}

// certPool builds the verification roots for st.
func (st *Store) certPool() *x509.CertPool {
	var pool *x509.CertPool
	if st.system {
		if sys, err := x509.SystemCertPool(); err == nil {
			pool = sys
		}
	}
	if pool == nil {
		pool = x509.NewCertPool()
	}
	for _, x := range st.certs {
		if c := x.Certificate(); c != nil {
			pool.AddCert(c)
		}
	}
	return pool
}

// certificates returns the explicitly added anchors.
func (st *Store) certificates() []*x509.Certificate {
	if st == nil || st.freed {
		return nil
	}
	out := make([]*x509.Certificate, 0, len(st.certs))
	for _, x := range st.certs {
		if c := x.Certificate(); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (st *Store) check() ErrorCode {
	switch {
	case st == nil:
		return ErrPutError(LibX509, ReasonPassedNullParameter)
	case st.freed:
		st.lastErr = ErrPutError(LibX509, ReasonFreedHandle)
		return st.lastErr
	}
	return 0
}

func (st *Store) usable() bool { return st.check() == 0 }

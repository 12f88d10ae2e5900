// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pointer

import (
	"errors"
	"sync/atomic"
)

// ErrInvalidHandle is returned by wrapper methods invoked on a null handle.
var ErrInvalidHandle = errors.New("pointer: invalid handle")

// Deleter frees a native resource.
type Deleter[T any] func(*T)

// NullDeleter leaves the resource alone. Non-owning wrappers use it.
func NullDeleter[T any](*T) {}

// record is the shared ownership state of one wrapped pointer.
type record[T any] struct {
	refs     atomic.Int64
	released atomic.Bool
	owning   bool
	deleter  Deleter[T]
}

// Wrapper holds a native pointer and its ownership record. The zero value is
// a null handle.
type Wrapper[T any] struct {
	ptr *T
	rec *record[T]
}

// Own wraps ptr and frees it with del once the last reference is released.
// A nil ptr yields a null handle.
func Own[T any](ptr *T, del Deleter[T]) Wrapper[T] {
	if ptr == nil {
		return Wrapper[T]{}
	}
	if del == nil {
		del = NullDeleter[T]
	}
	rec := &record[T]{owning: true, deleter: del}
	rec.refs.Store(1)
	return Wrapper[T]{ptr: ptr, rec: rec}
}

// Borrow wraps ptr without taking ownership. A nil ptr yields a null handle.
func Borrow[T any](ptr *T) Wrapper[T] {
	if ptr == nil {
		return Wrapper[T]{}
	}
	rec := &record[T]{deleter: NullDeleter[T]}
	rec.refs.Store(1)
	return Wrapper[T]{ptr: ptr, rec: rec}
}

// Raw returns the wrapped pointer. It is valid on a null handle.
func (w Wrapper[T]) Raw() *T { return w.ptr }

// IsNull reports whether w wraps no resource.
func (w Wrapper[T]) IsNull() bool { return w.ptr == nil }

// Owning reports whether releasing the last reference frees the resource.
func (w Wrapper[T]) Owning() bool { return w.rec != nil && w.rec.owning }

// Clone returns a handle sharing the same record with one more reference.
// Cloning a released handle returns it unchanged.
func (w Wrapper[T]) Clone() Wrapper[T] {
	if w.rec == nil {
		return w
	}
	for {
		n := w.rec.refs.Load()
		if n <= 0 {
			return w
		}
		if w.rec.refs.CompareAndSwap(n, n+1) {
			return w
		}
	}
}

// Release drops one reference. The deleter runs exactly once, when the count
// reaches zero; releasing past zero is a no-op.
func (w Wrapper[T]) Release() {
	if w.rec == nil {
		return
	}
	for {
		n := w.rec.refs.Load()
		if n <= 0 {
			return
		}
		if !w.rec.refs.CompareAndSwap(n, n-1) {
			continue
		}
		if n == 1 && w.rec.released.CompareAndSwap(false, true) {
			w.rec.deleter(w.ptr)
		}
		return
	}
}

// Same reports whether a and b wrap the same native pointer.
func Same[T any](a, b Wrapper[T]) bool { return a.ptr == b.ptr }

// Check returns ErrInvalidHandle for a null handle.
func (w Wrapper[T]) Check() error {
	if w.ptr == nil {
		return ErrInvalidHandle
	}
	return nil
}

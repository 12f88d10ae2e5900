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

// Stack is a handle to an ordered native collection of certificates. The
// stack references its certificates; it never frees them.
type Stack struct {
	pointer.Wrapper[native.Stack]
}

// CreateStack allocates an empty owning stack.
func CreateStack() (Stack, error) {
	ptr := native.StackNew()
	if err := native.ErrorIfNot(ptr != nil, nil); err != nil {
		return Stack{}, err
	}
	return Stack{pointer.Own(ptr, native.StackFree)}, nil
}

// NewStack wraps ptr without taking ownership.
func NewStack(ptr *native.Stack) Stack {
	return Stack{pointer.Borrow(ptr)}
}

// StackOf builds an owning stack holding certs in order.
func StackOf(certs ...*x509.Certificate) (Stack, error) {
	s, err := CreateStack()
	if err != nil {
		return Stack{}, err
	}
	for _, cert := range certs {
		c, err := FromX509(cert)
		if err != nil {
			s.Release()
			return Stack{}, err
		}
		if err := s.Push(c); err != nil {
			s.Release()
			return Stack{}, err
		}
	}
	return s, nil
}

// LoadStack decodes every certificate in data into a new owning stack.
func LoadStack(data []byte) (Stack, error) {
	certs, err := NewCodec().DecodeMultiple(data)
	if err != nil {
		return Stack{}, err
	}
	return StackOf(certs...)
}

// Clone returns a handle with one more reference to the same stack.
func (s Stack) Clone() Stack { return Stack{s.Wrapper.Clone()} }

// Equal reports whether s and other share the same native pointer.
func (s Stack) Equal(other Stack) bool { return pointer.Same(s.Wrapper, other.Wrapper) }

// Push appends cert to the stack.
func (s Stack) Push(cert Certificate) error {
	if err := s.Check(); err != nil {
		return err
	}
	if err := cert.Check(); err != nil {
		return err
	}
	return native.ErrorIfNot(native.StackPush(s.Raw(), cert.Raw()) != 0, nil)
}

// Len returns the number of certificates, 0 for a null handle.
func (s Stack) Len() int {
	if n := native.StackNum(s.Raw()); n > 0 {
		return n
	}
	return 0
}

// At returns a non-owning handle to the certificate at i, or a null handle
// when i is out of range.
func (s Stack) At(i int) Certificate {
	return New(native.StackValue(s.Raw(), i))
}

// Certificates returns the parsed certificates in stack order.
func (s Stack) Certificates() []*x509.Certificate {
	n := s.Len()
	out := make([]*x509.Certificate, 0, n)
	for i := 0; i < n; i++ {
		if cert := s.At(i).X509(); cert != nil {
			out = append(out, cert)
		}
	}
	return out
}

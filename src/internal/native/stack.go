// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package native

import "crypto/x509"

// Stack is an ordered collection of certificate handles. It does not own
// the certificates pushed onto it.
type Stack struct {
	items []*X509
	freed bool
}

// StackNew allocates an empty stack.
func StackNew() *Stack { return &Stack{} }

// StackFree releases the container. The certificates are left alone.
func StackFree(s *Stack) {
	if s == nil {
		return
	}
	s.freed = true
	s.items = nil
}

// StackPush appends x and returns the new length, or 0 on failure.
func StackPush(s *Stack, x *X509) int {
	if !s.usable() || !x.usable() {
		return 0
	}
	s.items = append(s.items, x)
	return len(s.items)
}

// StackNum returns the number of items, -1 for a nil or freed stack.
func StackNum(s *Stack) int {
	if s == nil || s.freed {
		return -1
	}
	return len(s.items)
}

// StackValue returns the item at i, nil when out of range.
func StackValue(s *Stack, i int) *X509 {
	if s == nil || s.freed || i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

// certificates returns the live parsed certificates in stack order.
func (s *Stack) certificates() []*x509.Certificate {
	if s == nil || s.freed {
		return nil
	}
	out := make([]*x509.Certificate, 0, len(s.items))
	for _, x := range s.items {
		if c := x.Certificate(); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (s *Stack) check() ErrorCode {
	switch {
	case s == nil:
		return ErrPutError(LibCrypto, ReasonPassedNullParameter)
	case s.freed:
		return ErrPutError(LibCrypto, ReasonFreedHandle)
	}
	return 0
}

func (s *Stack) usable() bool { return s.check() == 0 }

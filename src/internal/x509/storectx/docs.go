// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509storectx provides [StoreContext], a handle to the native
// certificate verification context.
//
// A context is created (or wrapped), initialized with a trust store, the
// certificate to verify and an untrusted chain, optionally given a trusted
// certificate set that replaces the store, verified, and cleaned up so it
// can be initialized again:
//
//	ctx, err := x509storectx.Create()
//	if err != nil {
//		return err
//	}
//	defer ctx.Release()
//
//	if err := ctx.Initialize(store, leaf, untrusted); err != nil {
//		return err
//	}
//	defer ctx.Cleanup()
//
//	ok, err := ctx.Verify()
//
// Owning handles free the native context when their last reference is
// released; handles built with [New] never do. Failed library calls surface
// as [*CryptographicError]. Methods called on a null handle return
// [ErrInvalidHandle].
//
// A StoreContext is not safe for concurrent use. Callers serialize access
// to one context themselves.
package x509storectx

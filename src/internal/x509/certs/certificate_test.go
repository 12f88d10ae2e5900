// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-store-context/internal/testutil/pki"
	"github.com/H0llyW00dzZ/x509-store-context/src/internal/native"
	x509certs "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/certs"
)

func TestCertificateHandle(t *testing.T) {
	chain := pki.NewChain(t)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "FromX509 owns the native certificate",
			testFunc: func(t *testing.T) {
				c, err := x509certs.FromX509(chain.Leaf.Cert)
				require.NoError(t, err)
				raw := c.Raw()

				assert.True(t, c.Owning())
				assert.Equal(t, "leaf.example.com", c.Subject())
				assert.True(t, c.X509().Equal(chain.Leaf.Cert))

				alias := c.Clone()
				c.Release()
				assert.False(t, raw.Freed())
				alias.Release()
				assert.True(t, raw.Freed())
				assert.Nil(t, c.X509())
			},
		},
		{
			name: "FromX509 of nil fails",
			testFunc: func(t *testing.T) {
				native.ErrClearError()
				c, err := x509certs.FromX509(nil)
				assert.True(t, c.IsNull())
				assert.ErrorIs(t, err, &native.CryptographicError{
					Code: native.PackError(native.LibX509, native.ReasonPassedNullParameter),
				})
				assert.Equal(t, native.ErrorCode(0), native.ErrGetError())
			},
		},
		{
			name: "TakeOwnership of nil fails",
			testFunc: func(t *testing.T) {
				_, err := x509certs.TakeOwnership(nil)
				assert.ErrorIs(t, err, &native.CryptographicError{})
			},
		},
		{
			name: "New borrows",
			testFunc: func(t *testing.T) {
				ptr := native.X509New(chain.Root.Cert)
				c := x509certs.New(ptr)
				assert.False(t, c.Owning())
				c.Release()
				assert.False(t, ptr.Freed())

				owner, err := x509certs.TakeOwnership(ptr)
				require.NoError(t, err)
				assert.True(t, owner.Equal(c))
				owner.Release()
				assert.True(t, ptr.Freed())
			},
		},
		{
			name: "Load decodes PEM",
			testFunc: func(t *testing.T) {
				c, err := x509certs.Load(x509certs.NewCodec().EncodePEM(chain.Intermediate.Cert))
				require.NoError(t, err)
				defer c.Release()
				assert.Equal(t, "Test Intermediate CA", c.Subject())

				_, err = x509certs.Load([]byte("junk"))
				assert.ErrorIs(t, err, x509certs.ErrParseCertificate)
			},
		},
		{
			name: "Subject falls back to the distinguished name",
			testFunc: func(t *testing.T) {
				cert := &x509.Certificate{Subject: pkix.Name{Organization: []string{"Example Org"}}}
				c, err := x509certs.FromX509(cert)
				require.NoError(t, err)
				defer c.Release()
				assert.Equal(t, "O=Example Org", c.Subject())

				assert.Equal(t, "", x509certs.Certificate{}.Subject())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestStackHandle(t *testing.T) {
	chain := pki.NewChain(t)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "StackOf keeps order",
			testFunc: func(t *testing.T) {
				s, err := x509certs.StackOf(chain.Leaf.Cert, chain.Intermediate.Cert)
				require.NoError(t, err)
				defer s.Release()

				assert.Equal(t, 2, s.Len())
				assert.Equal(t, "leaf.example.com", s.At(0).Subject())
				assert.Equal(t, "Test Intermediate CA", s.At(1).Subject())
				assert.False(t, s.At(0).Owning())
				assert.True(t, s.At(2).IsNull())

				certs := s.Certificates()
				require.Len(t, certs, 2)
				assert.True(t, certs[1].Equal(chain.Intermediate.Cert))
			},
		},
		{
			name: "Push rejects null handles",
			testFunc: func(t *testing.T) {
				s, err := x509certs.CreateStack()
				require.NoError(t, err)
				defer s.Release()

				assert.ErrorIs(t, s.Push(x509certs.Certificate{}), x509certs.ErrInvalidHandle)
				assert.ErrorIs(t, x509certs.Stack{}.Push(x509certs.Certificate{}), x509certs.ErrInvalidHandle)
				assert.Equal(t, 0, s.Len())
			},
		},
		{
			name: "Push onto a released stack fails",
			testFunc: func(t *testing.T) {
				native.ErrClearError()
				s, err := x509certs.CreateStack()
				require.NoError(t, err)
				view := x509certs.NewStack(s.Raw())
				s.Release()

				c, err := x509certs.FromX509(chain.Leaf.Cert)
				require.NoError(t, err)
				defer c.Release()

				assert.ErrorIs(t, view.Push(c), &native.CryptographicError{
					Code: native.PackError(native.LibCrypto, native.ReasonFreedHandle),
				})
				assert.Equal(t, 0, view.Len())
			},
		},
		{
			name: "LoadStack decodes a bundle",
			testFunc: func(t *testing.T) {
				codec := x509certs.NewCodec()
				bundle := codec.EncodeMultiplePEM([]*x509.Certificate{chain.Intermediate.Cert, chain.Root.Cert})

				s, err := x509certs.LoadStack(bundle)
				require.NoError(t, err)
				defer s.Release()
				assert.Equal(t, 2, s.Len())
				assert.True(t, s.Equal(s.Clone()))
			},
		},
		{
			name: "Null stack is empty",
			testFunc: func(t *testing.T) {
				var s x509certs.Stack
				assert.Equal(t, 0, s.Len())
				assert.Empty(t, s.Certificates())
				assert.True(t, s.At(0).IsNull())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

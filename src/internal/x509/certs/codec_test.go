// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-store-context/internal/testutil/pki"
	x509certs "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/certs"
)

const (
	invalidPEM = `
-----BEGIN INVALID-----
-----END INVALID-----
`
	invalidCERT = `
-----BEGIN CERTIFICATE-----
-----END CERTIFICATE-----
`
)

func TestCodecOperations(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T, codec *x509certs.Codec, testCert *x509.Certificate)
	}{
		{
			name: "Decode Multiple Certificates",
			testFunc: func(t *testing.T, codec *x509certs.Codec, cert *x509.Certificate) {
				certs, err := codec.DecodeMultiple(codec.EncodePEM(cert))
				require.NoError(t, err, "DecodeMultiple() error")

				assert.Len(t, certs, 1, "expected 1 certificate")
			},
		},
		{
			name: "Encode Certificate to DER",
			testFunc: func(t *testing.T, codec *x509certs.Codec, cert *x509.Certificate) {
				encodedDER := codec.EncodeDER(cert)
				assert.NotEmpty(t, encodedDER, "EncodeDER() returned empty result")

				assert.True(t, x509CertEqual(cert, encodedDER), "original and encoded DER certificates are not equal")
			},
		},
		{
			name: "Encode Multiple Certificates to DER",
			testFunc: func(t *testing.T, codec *x509certs.Codec, cert *x509.Certificate) {
				encodedDER := codec.EncodeMultipleDER([]*x509.Certificate{cert, cert})

				certs, err := x509.ParseCertificates(encodedDER)
				require.NoError(t, err, "ParseCertificates() error")
				assert.Len(t, certs, 2)
			},
		},
		{
			name: "Decode Certificate",
			testFunc: func(t *testing.T, codec *x509certs.Codec, cert *x509.Certificate) {
				decoded, err := codec.Decode(codec.EncodePEM(cert))
				require.NoError(t, err, "Decode() error")
				assert.Equal(t, "leaf.example.com", decoded.Subject.CommonName)
			},
		},
		{
			name: "Decode-Encode-Decode Round Trip",
			testFunc: func(t *testing.T, codec *x509certs.Codec, cert *x509.Certificate) {
				decoded, err := codec.Decode(codec.EncodeDER(cert))
				require.NoError(t, err, "Decode() error")
				assert.True(t, cert.Equal(decoded), "original and decoded certificates are not equal")
			},
		},
	}

	codec := x509certs.NewCodec()
	testCert := pki.NewChain(t).Leaf.Cert
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t, codec, testCert)
		})
	}
}

func x509CertEqual(cert *x509.Certificate, derBytes []byte) bool {
	parsedCert, err := x509.ParseCertificate(derBytes)
	if err != nil {
		return false
	}
	return cert.Equal(parsedCert)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected error
	}{
		{
			name:     "Invalid PEM Block",
			input:    []byte(invalidPEM),
			expected: x509certs.ErrInvalidBlockType,
		},
		{
			name:     "Invalid Certificate",
			input:    []byte(invalidCERT),
			expected: x509certs.ErrParseCertificate,
		},
		{
			name:     "Invalid DER Data",
			input:    []byte("not a certificate"),
			expected: x509certs.ErrParseCertificate,
		},
	}

	codec := x509certs.NewCodec()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.input)
			assert.Equal(t, tt.expected, err, "expected specific error")
		})
	}
}

func TestCodec_IsPEM(t *testing.T) {
	codec := x509certs.NewCodec()
	cert := pki.NewSelfSigned(t, "pem.example.com").Cert

	tests := []struct {
		name     string
		input    []byte
		expected bool
	}{
		{
			name:     "Valid PEM",
			input:    codec.EncodePEM(cert),
			expected: true,
		},
		{
			name:     "Invalid PEM",
			input:    []byte("not a pem block"),
			expected: false,
		},
		{
			name:     "Empty Input",
			input:    []byte(""),
			expected: false,
		},
		{
			name:     "PEM-like but invalid base64",
			input:    []byte("-----BEGIN CERTIFICATE-----\ninvalid-base64\n-----END CERTIFICATE-----"),
			expected: false,
		},
		{
			name:     "DER format (binary)",
			input:    cert.Raw,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, codec.IsPEM(tt.input), "IsPEM() result incorrect")
		})
	}
}

func TestCodec_EncodeMultiplePEM(t *testing.T) {
	codec := x509certs.NewCodec()
	chain := pki.NewChain(t)

	tests := []struct {
		name         string
		certs        []*x509.Certificate
		expectBlocks int
	}{
		{
			name:         "Single Certificate",
			certs:        []*x509.Certificate{chain.Leaf.Cert},
			expectBlocks: 1,
		},
		{
			name:         "Multiple Certificates",
			certs:        []*x509.Certificate{chain.Leaf.Cert, chain.Intermediate.Cert, chain.Root.Cert},
			expectBlocks: 3,
		},
		{
			name:         "Empty List",
			certs:        []*x509.Certificate{},
			expectBlocks: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := codec.EncodeMultiplePEM(tt.certs)
			if tt.expectBlocks == 0 {
				assert.Empty(t, encoded, "expected empty result")
				return
			}

			blockCount := 0
			rest := encoded
			for len(rest) > 0 {
				block, remainder := pem.Decode(rest)
				if block == nil {
					break
				}
				assert.Equal(t, "CERTIFICATE", block.Type)
				blockCount++
				rest = remainder
			}
			assert.Equal(t, tt.expectBlocks, blockCount, "expected correct number of PEM blocks")
		})
	}
}

func TestCodec_DecodeMultiple(t *testing.T) {
	codec := x509certs.NewCodec()
	chain := pki.NewChain(t)
	both := []*x509.Certificate{chain.Leaf.Cert, chain.Intermediate.Cert}

	tests := []struct {
		name        string
		input       []byte
		expectCount int
		expectError error
	}{
		{
			name:        "Single PEM Certificate",
			input:       codec.EncodePEM(chain.Root.Cert),
			expectCount: 1,
		},
		{
			name:        "Multiple PEM Certificates",
			input:       codec.EncodeMultiplePEM(both),
			expectCount: 2,
		},
		{
			name:        "DER Format",
			input:       chain.Leaf.Cert.Raw,
			expectCount: 1,
		},
		{
			name:        "Concatenated DER",
			input:       codec.EncodeMultipleDER(both),
			expectCount: 2,
		},
		{
			name:        "Invalid PEM Type",
			input:       []byte(invalidPEM),
			expectError: x509certs.ErrInvalidBlockType,
		},
		{
			name:        "Invalid Certificate Data",
			input:       []byte(invalidCERT),
			expectError: x509certs.ErrParseCertificate,
		},
		{
			name:        "Garbage",
			input:       []byte{0x01, 0x02, 0x03},
			expectError: x509certs.ErrParseCertificate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certs, err := codec.DecodeMultiple(tt.input)
			if tt.expectError != nil {
				assert.Equal(t, tt.expectError, err, "expected specific error")
				return
			}
			require.NoError(t, err, "unexpected error")
			assert.Len(t, certs, tt.expectCount, "expected correct number of certificates")
		})
	}
}

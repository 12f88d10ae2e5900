// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pki generates small certificate hierarchies for tests.
package pki

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

var serial atomic.Int64

// Issued is a certificate together with its private key.
type Issued struct {
	Cert *x509.Certificate
	Key  crypto.Signer
}

// Options tweaks a generated certificate.
type Options struct {
	NotBefore   time.Time
	NotAfter    time.Time
	DNSNames    []string
	ExtKeyUsage []x509.ExtKeyUsage
	// IssuingURL is written to the AIA CA Issuers field.
	IssuingURL string
}

// Chain is a root, intermediate and leaf hierarchy.
type Chain struct {
	Root         Issued
	Intermediate Issued
	Leaf         Issued
}

// NewChain issues root -> intermediate -> leaf, the leaf valid for
// "leaf.example.com" as a TLS server.
func NewChain(t testing.TB) Chain {
	t.Helper()

	root := NewRoot(t, "Test Root CA")
	inter := NewIntermediate(t, "Test Intermediate CA", root)
	leaf := NewLeaf(t, "leaf.example.com", inter, Options{})
	return Chain{Root: root, Intermediate: inter, Leaf: leaf}
}

// NewRoot returns a self-signed CA.
func NewRoot(t testing.TB, cn string) Issued {
	t.Helper()
	tmpl := template(cn, Options{})
	tmpl.IsCA = true
	tmpl.BasicConstraintsValid = true
	tmpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	return issue(t, tmpl, nil)
}

// NewIntermediate returns a CA signed by parent. Only the first opts is
// used.
func NewIntermediate(t testing.TB, cn string, parent Issued, opts ...Options) Issued {
	t.Helper()
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	tmpl := template(cn, o)
	tmpl.IsCA = true
	tmpl.BasicConstraintsValid = true
	tmpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	return issue(t, tmpl, &parent)
}

// NewLeaf returns an end-entity certificate signed by parent. Without
// explicit DNS names the common name is used.
func NewLeaf(t testing.TB, cn string, parent Issued, opts Options) Issued {
	t.Helper()
	if len(opts.DNSNames) == 0 {
		opts.DNSNames = []string{cn}
	}
	if opts.ExtKeyUsage == nil {
		opts.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
	}
	tmpl := template(cn, opts)
	tmpl.KeyUsage = x509.KeyUsageDigitalSignature
	return issue(t, tmpl, &parent)
}

// NewSelfSigned returns a self-signed end-entity certificate.
func NewSelfSigned(t testing.TB, cn string) Issued {
	t.Helper()
	tmpl := template(cn, Options{DNSNames: []string{cn}})
	tmpl.KeyUsage = x509.KeyUsageDigitalSignature
	tmpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
	return issue(t, tmpl, nil)
}

func template(cn string, opts Options) *x509.Certificate {
	notBefore := opts.NotBefore
	if notBefore.IsZero() {
		notBefore = time.Now().Add(-time.Hour)
	}
	notAfter := opts.NotAfter
	if notAfter.IsZero() {
		notAfter = time.Now().Add(24 * time.Hour)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(serial.Add(1)),
		Subject:      pkix.Name{CommonName: cn, Organization: []string{"x509-store-context tests"}},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
		DNSNames:     opts.DNSNames,
		ExtKeyUsage:  opts.ExtKeyUsage,
	}
	if opts.IssuingURL != "" {
		tmpl.IssuingCertificateURL = []string{opts.IssuingURL}
	}
	return tmpl
}

func issue(t testing.TB, tmpl *x509.Certificate, parent *Issued) Issued {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	signerCert, signerKey := tmpl, crypto.Signer(key)
	if parent != nil {
		signerCert, signerKey = parent.Cert, parent.Key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, signerCert, key.Public(), signerKey)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("parse certificate: %v", err)
	}
	return Issued{Cert: cert, Key: key}
}

// PEM encodes certs as concatenated CERTIFICATE blocks.
func PEM(certs ...*x509.Certificate) []byte {
	var out []byte
	for _, cert := range certs {
		out = append(out, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})...)
	}
	return out
}

// WritePEM writes certs to dir/name and returns the path.
func WritePEM(t testing.TB, dir, name string, certs ...*x509.Certificate) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, PEM(certs...), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

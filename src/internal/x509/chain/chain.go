// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/x509-store-context/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/certs"
)

// maxIssuerFetches bounds the AIA walk so a looping issuer URL terminates.
const maxIssuerFetches = 8

// ErrIssuerFetch is returned when an issuer URL does not answer with a
// certificate.
var ErrIssuerFetch = errors.New("x509chain: failed to fetch issuer certificate")

// HTTPConfig holds HTTP client configuration for certificate operations
type HTTPConfig struct {
	Timeout   time.Duration // HTTP request timeout
	Version   string        // Application version for User-Agent
	UserAgent string        // Custom User-Agent string, if empty will be constructed from Version

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPConfig creates a new HTTP configuration with a 10 second timeout.
func NewHTTPConfig(version string) *HTTPConfig {
	return &HTTPConfig{
		Timeout: 10 * time.Second,
		Version: version,
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("X509-Store-Context/%s (+https://github.com/H0llyW00dzZ/x509-store-context)", c.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout}
		return c.client
	}

	if c.client.Timeout != c.Timeout {
		c.client.Timeout = c.Timeout
	}

	return c.client
}

// Chain is an ordered list of [X.509] certificates, leaf first.
//
// [X.509]: https://grokipedia.com/page/X.509
type Chain struct {
	mu         sync.RWMutex
	Certs      []*x509.Certificate
	Codec      *x509certs.Codec
	HTTPConfig *HTTPConfig // HTTP client configuration
}

// New creates a Chain holding cert (the leaf).
func New(cert *x509.Certificate, version string) *Chain {
	return &Chain{
		Certs:      []*x509.Certificate{cert},
		Codec:      x509certs.NewCodec(),
		HTTPConfig: NewHTTPConfig(version),
	}
}

// FetchCertificate follows the AIA CA Issuers URL of the last certificate
// until a self-signed certificate is reached or no URL is left, appending
// each downloaded issuer to the chain.
//
// Downloaded certificates are not trusted; they only extend the untrusted
// input of a later verification.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) FetchCertificate(ctx context.Context) error {
	for range maxIssuerFetches {
		ch.mu.RLock()
		last := ch.Certs[len(ch.Certs)-1]
		ch.mu.RUnlock()

		if len(last.IssuingCertificateURL) == 0 || ch.IsRootNode(last) {
			return nil
		}

		cert, err := ch.fetchIssuer(ctx, last.IssuingCertificateURL[0])
		if err != nil {
			return err
		}

		ch.mu.Lock()
		if ch.Certs[len(ch.Certs)-1] != last {
			ch.mu.Unlock()
			continue
		}
		ch.Certs = append(ch.Certs, cert)
		ch.mu.Unlock()
	}
	return nil
}

func (ch *Chain) fetchIssuer(ctx context.Context, url string) (*x509.Certificate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", ch.HTTPConfig.GetUserAgent())

	resp, err := ch.HTTPConfig.Client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: %s", ErrIssuerFetch, url, resp.Status)
	}

	data, err := gc.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	cert, err := ch.Codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrIssuerFetch, url, err)
	}
	return cert, nil
}

// IsSelfSigned reports whether cert carries its own subject as issuer and
// is signed by its own key.
func (ch *Chain) IsSelfSigned(cert *x509.Certificate) bool { return isSelfSigned(cert) }

func isSelfSigned(cert *x509.Certificate) bool {
	if !bytes.Equal(cert.RawSubject, cert.RawIssuer) {
		return false
	}
	return cert.CheckSignature(cert.SignatureAlgorithm, cert.RawTBSCertificate, cert.Signature) == nil
}

// IsRootNode determines if a certificate is a root node in the chain.
func (ch *Chain) IsRootNode(cert *x509.Certificate) bool {
	return ch.IsSelfSigned(cert)
}

// FilterIntermediates returns every certificate except the leaf and a
// trailing self-signed root.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) FilterIntermediates() []*x509.Certificate {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) <= 1 {
		return nil
	}
	end := len(ch.Certs)
	if ch.IsRootNode(ch.Certs[end-1]) {
		end--
	}
	out := make([]*x509.Certificate, end-1)
	copy(out, ch.Certs[1:end])
	return out
}

// Leaf returns the first certificate of the chain.
func (ch *Chain) Leaf() *x509.Certificate {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.Certs[0]
}

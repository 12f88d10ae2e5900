// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509verify

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/x509-store-context/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/x509-store-context/src/internal/native"
	x509certs "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/chain"
	x509store "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/store"
	x509storectx "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/storectx"
)

// ErrNoTrustAnchors is returned when no trust source was configured.
var ErrNoTrustAnchors = errors.New("x509verify: no trust anchors (set a CA file, a CA directory, system roots or trusted certificates)")

// ErrUnreadableInput is returned by [ReadInput] for data that is neither a
// readable file nor base64.
var ErrUnreadableInput = errors.New("x509verify: not a valid file path or base64 data")

// Options configures one verification.
type Options struct {
	CAFile string
	CADir  string
	System bool

	// Untrusted certificates may be used to build the chain.
	Untrusted []*x509.Certificate

	// Trusted, when non-nil, replaces the store as the trust source.
	Trusted []*x509.Certificate

	Purpose  native.Purpose
	Hostname string

	// At fixes the verification time; zero means now.
	At time.Time
}

// Verify checks leaf against the trust configured in opts. A failed
// verification is not an error: it is reported through the returned
// report. An error means the verification could not run.
func Verify(leaf *x509.Certificate, opts Options) (*x509chain.Report, error) {
	st, err := BuildStore(opts)
	if err != nil {
		return nil, err
	}
	defer st.Release()

	cert, err := x509certs.FromX509(leaf)
	if err != nil {
		return nil, fmt.Errorf("certificate: %w", err)
	}
	defer cert.Release()

	untrusted, err := x509certs.StackOf(opts.Untrusted...)
	if err != nil {
		return nil, fmt.Errorf("untrusted certificates: %w", err)
	}
	defer untrusted.Release()

	ctx, err := x509storectx.Create()
	if err != nil {
		return nil, fmt.Errorf("store context: %w", err)
	}
	defer ctx.Release()

	if err := ctx.Initialize(st, cert, untrusted); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	// Runs before Release.
	defer ctx.Cleanup()

	if opts.Trusted != nil {
		trusted, err := x509certs.StackOf(opts.Trusted...)
		if err != nil {
			return nil, fmt.Errorf("trusted certificates: %w", err)
		}
		defer trusted.Release()

		if err := ctx.SetTrustedCertificates(trusted); err != nil {
			return nil, err
		}
	}

	if err := configure(ctx, opts); err != nil {
		return nil, err
	}

	ok, err := ctx.Verify()
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	return x509chain.NewReport(ctx, ok, leaf, opts.Untrusted), nil
}

func configure(ctx x509storectx.StoreContext, opts Options) error {
	if !opts.At.IsZero() {
		if err := ctx.SetTime(opts.At); err != nil {
			return err
		}
	}
	if opts.Purpose != native.PurposeDefault {
		if err := ctx.SetPurpose(opts.Purpose); err != nil {
			return fmt.Errorf("purpose %s: %w", opts.Purpose, err)
		}
	}
	if opts.Hostname != "" {
		if err := ctx.SetHost(opts.Hostname); err != nil {
			return fmt.Errorf("hostname %q: %w", opts.Hostname, err)
		}
	}
	return nil
}

// BuildStore creates an owning store loaded from the CA file, the CA
// directory and the system roots in opts. The caller releases it.
func BuildStore(opts Options) (x509store.Store, error) {
	if opts.CAFile == "" && opts.CADir == "" && !opts.System && opts.Trusted == nil {
		return x509store.Store{}, ErrNoTrustAnchors
	}

	st, err := x509store.Create()
	if err != nil {
		return x509store.Store{}, fmt.Errorf("store: %w", err)
	}

	if opts.CAFile != "" {
		if _, err := st.LoadFile(opts.CAFile); err != nil {
			st.Release()
			return x509store.Store{}, fmt.Errorf("CA file: %w", err)
		}
	}
	if opts.CADir != "" {
		if _, err := st.LoadDirectory(opts.CADir); err != nil {
			st.Release()
			return x509store.Store{}, fmt.Errorf("CA directory: %w", err)
		}
	}
	if opts.System {
		if err := st.SetDefaultPaths(); err != nil {
			st.Release()
			return x509store.Store{}, fmt.Errorf("system roots: %w", err)
		}
	}
	return st, nil
}

// ReadInput returns the bytes named by input: the contents of the file
// when input is a readable path, else input decoded as base64.
func ReadInput(input string) ([]byte, error) {
	if data, err := gc.ReadFile(input); err == nil {
		return data, nil
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return nil, ErrUnreadableInput
	}
	return data, nil
}

// LoadCertificates decodes every certificate found in each input.
func LoadCertificates(inputs ...string) ([]*x509.Certificate, error) {
	codec := x509certs.NewCodec()

	var certs []*x509.Certificate
	for _, input := range inputs {
		data, err := ReadInput(input)
		if err != nil {
			return nil, err
		}
		decoded, err := codec.DecodeMultiple(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", shorten(input), err)
		}
		certs = append(certs, decoded...)
	}
	return certs, nil
}

// LoadCertificate decodes the first certificate of input.
func LoadCertificate(input string) (*x509.Certificate, error) {
	data, err := ReadInput(input)
	if err != nil {
		return nil, err
	}
	cert, err := x509certs.NewCodec().Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", shorten(input), err)
	}
	return cert, nil
}

// FetchIntermediates follows the AIA issuer URLs of leaf and returns the
// downloaded intermediates, root excluded.
func FetchIntermediates(ctx context.Context, leaf *x509.Certificate, timeout time.Duration, version string) ([]*x509.Certificate, error) {
	chain := x509chain.New(leaf, version)
	if timeout > 0 {
		chain.HTTPConfig.Timeout = timeout
	}
	if err := chain.FetchCertificate(ctx); err != nil {
		return nil, err
	}
	return chain.FilterIntermediates(), nil
}

// shorten keeps base64 inputs out of error messages.
func shorten(input string) string {
	if _, err := os.Stat(input); err == nil || len(input) <= 64 {
		return input
	}
	return input[:32] + "..."
}

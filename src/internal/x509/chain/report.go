// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"time"

	"github.com/google/uuid"

	x509certs "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/certs"
	x509storectx "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/storectx"
)

// Report is the outcome of one verification.
type Report struct {
	ID        string
	Verified  bool
	Code      int
	Reason    string
	Depth     int
	CheckedAt time.Time

	// Certs is the chain the context built, partial when verification
	// failed. Depth indexes it.
	Certs []*x509.Certificate
}

// NewReport reads the result of the last Verify on ctx. CheckedAt is the
// time fixed with SetTime, if any. leaf and untrusted are the inputs given
// to the context; they are shown when no chain was built.
func NewReport(ctx x509storectx.StoreContext, verified bool, leaf *x509.Certificate, untrusted []*x509.Certificate) *Report {
	checkedAt := time.Now()
	if param := ctx.Raw().Param(); param.UseCheckTime {
		checkedAt = param.CheckTime
	}

	r := &Report{
		ID:        uuid.NewString(),
		Verified:  verified,
		Code:      ctx.VerifyError(),
		Reason:    ctx.VerifyErrorString(),
		Depth:     ctx.ErrorDepth(),
		CheckedAt: checkedAt.UTC(),
	}

	if chain := ctx.Chain(); len(chain) > 0 {
		r.Certs = chain
		return r
	}

	if leaf != nil {
		r.Certs = append(r.Certs, leaf)
	}
	r.Certs = append(r.Certs, untrusted...)
	return r
}

// RenderPEM encodes Certs as concatenated PEM blocks, leaf first.
func (r *Report) RenderPEM() []byte {
	return x509certs.NewCodec().EncodeMultiplePEM(r.Certs)
}

// RenderDER encodes Certs as concatenated DER certificates, leaf first.
func (r *Report) RenderDER() []byte {
	return x509certs.NewCodec().EncodeMultipleDER(r.Certs)
}

// Subject returns the common name of the verified certificate.
func (r *Report) Subject() string {
	if len(r.Certs) == 0 {
		return ""
	}
	return r.Certs[0].Subject.CommonName
}

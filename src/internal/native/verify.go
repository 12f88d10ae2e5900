// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package native

import (
	"bytes"
	"crypto/x509"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Verify result codes, numbered as X509_V_* in OpenSSL.
const (
	VOK                             = 0
	VErrUnspecified                 = 1
	VErrUnableToGetIssuerCert       = 2
	VErrCertNotYetValid             = 9
	VErrCertHasExpired              = 10
	VErrDepthZeroSelfSignedCert     = 18
	VErrSelfSignedCertInChain       = 19
	VErrUnableToGetIssuerCertLocaly = 20
	VErrCertChainTooLong            = 22
	VErrInvalidCA                   = 24
	VErrInvalidPurpose              = 26
	VErrUnhandledCriticalExtension  = 34
	VErrPermittedViolation          = 47
	VErrHostnameMismatch            = 62
)

var verifyErrorStrings = map[int]string{
	VOK:                             "ok",
	VErrUnspecified:                 "unspecified certificate verification error",
	VErrUnableToGetIssuerCert:       "unable to get issuer certificate",
	VErrCertNotYetValid:             "certificate is not yet valid",
	VErrCertHasExpired:              "certificate has expired",
	VErrDepthZeroSelfSignedCert:     "self-signed certificate",
	VErrSelfSignedCertInChain:       "self-signed certificate in certificate chain",
	VErrUnableToGetIssuerCertLocaly: "unable to get local issuer certificate",
	VErrCertChainTooLong:            "certificate chain too long",
	VErrInvalidCA:                   "invalid CA certificate",
	VErrInvalidPurpose:              "unsupported certificate purpose",
	VErrUnhandledCriticalExtension:  "unhandled critical extension",
	VErrPermittedViolation:          "permitted subtree violation",
	VErrHostnameMismatch:            "hostname mismatch",
}

// VerifyCertErrorString returns the text of a verify result code.
func VerifyCertErrorString(code int) string {
	if s, ok := verifyErrorStrings[code]; ok {
		return s
	}
	return fmt.Sprintf("error number %d", code)
}

// Purpose is the usage a verified chain must allow.
type Purpose int

const (
	// PurposeDefault applies no extended key usage restriction.
	PurposeDefault Purpose = iota
	PurposeSSLClient
	PurposeSSLServer
	PurposeCodeSign
	PurposeAny
	purposeEnd
)

var purposeNames = [...]string{
	PurposeDefault:   "default",
	PurposeSSLClient: "sslclient",
	PurposeSSLServer: "sslserver",
	PurposeCodeSign:  "codesign",
	PurposeAny:       "any",
}

// String returns the short name used by ParsePurpose.
func (p Purpose) String() string {
	if !p.valid() {
		return fmt.Sprintf("purpose(%d)", int(p))
	}
	return purposeNames[p]
}

func (p Purpose) valid() bool { return p >= PurposeDefault && p < purposeEnd }

// ParsePurpose maps a short name to a Purpose. The empty string is
// PurposeDefault.
func ParsePurpose(name string) (Purpose, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PurposeDefault, nil
	}
	for i, n := range purposeNames {
		if n == name {
			return Purpose(i), nil
		}
	}
	return PurposeDefault, fmt.Errorf("native: unknown purpose %q", name)
}

func (p Purpose) keyUsages() []x509.ExtKeyUsage {
	switch p {
	case PurposeSSLClient:
		return []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth}
	case PurposeSSLServer:
		return []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
	case PurposeCodeSign:
		return []x509.ExtKeyUsage{x509.ExtKeyUsageCodeSigning}
	default:
		return []x509.ExtKeyUsage{x509.ExtKeyUsageAny}
	}
}

func verifyCert(ctx *StoreCtx) int {
	if !ctx.usable() {
		return -1
	}
	if !ctx.initialized {
		ctx.fail(ErrPutError(LibX509, ReasonContextNotInitialized))
		return -1
	}
	leaf := ctx.cert.Certificate()
	if leaf == nil {
		ctx.fail(ErrPutError(LibX509, ReasonNoCertSetForUsToVerify))
		return -1
	}

	var roots *x509.CertPool
	var anchors []*x509.Certificate
	switch {
	case ctx.trusted != nil:
		anchors = ctx.trusted.certificates()
		roots = x509.NewCertPool()
		for _, c := range anchors {
			roots.AddCert(c)
		}
	case ctx.store != nil:
		anchors = ctx.store.certificates()
		roots = ctx.store.certPool()
	default:
		roots = x509.NewCertPool()
	}

	intermediates := x509.NewCertPool()
	untrusted := ctx.untrusted.certificates()
	for _, c := range untrusted {
		intermediates.AddCert(c)
	}

	now := time.Now()
	if ctx.param.UseCheckTime {
		now = ctx.param.CheckTime
	}

	opts := x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
		CurrentTime:   now,
		DNSName:       ctx.param.Host,
		KeyUsages:     ctx.param.Purpose.keyUsages(),
	}

	chains, err := leaf.Verify(opts)
	if err != nil {
		path, anchored := issuerPath(leaf, untrusted, anchors)
		ctx.verifyErr, ctx.errorDepth = classify(err, path, anchored, now)
		// The partial chain stays readable after a failure.
		ctx.chain = path
		return 0
	}

	ctx.verifyErr = VOK
	ctx.errorDepth = 0
	ctx.chain = chains[0]
	return 1
}

// maxVerifyDepth bounds issuerPath, as the default verify depth does.
const maxVerifyDepth = 100

// issuerPath follows issuer links from leaf, preferring anchors over
// untrusted certificates. It stops at a self-signed certificate, at an
// anchor, or where no issuer is found. anchored reports whether the path
// ends at an anchor.
func issuerPath(leaf *x509.Certificate, untrusted, anchors []*x509.Certificate) (path []*x509.Certificate, anchored bool) {
	path = []*x509.Certificate{leaf}
	for cur := leaf; len(path) <= maxVerifyDepth; {
		if selfSigned(cur) {
			return path, contains(anchors, cur)
		}
		if issuer := findIssuer(cur, anchors, nil); issuer != nil {
			return append(path, issuer), true
		}
		issuer := findIssuer(cur, untrusted, path)
		if issuer == nil {
			return path, false
		}
		path = append(path, issuer)
		cur = issuer
	}
	return path, false
}

func findIssuer(cert *x509.Certificate, candidates, exclude []*x509.Certificate) *x509.Certificate {
	for _, c := range candidates {
		if !bytes.Equal(c.RawSubject, cert.RawIssuer) || contains(exclude, c) {
			continue
		}
		if cert.CheckSignatureFrom(c) == nil {
			return c
		}
	}
	return nil
}

func contains(certs []*x509.Certificate, cert *x509.Certificate) bool {
	for _, c := range certs {
		if c.Equal(cert) {
			return true
		}
	}
	return false
}

// classify turns a crypto/x509 verification error into a verify code and
// the depth of the offending certificate in path.
func classify(err error, path []*x509.Certificate, anchored bool, now time.Time) (int, int) {
	var invalid x509.CertificateInvalidError
	var unknown x509.UnknownAuthorityError
	var hostname x509.HostnameError
	var critical x509.UnhandledCriticalExtension
	var sysRoots x509.SystemRootsError

	switch {
	case errors.As(err, &invalid):
		depth := indexOf(path, invalid.Cert)
		switch invalid.Reason {
		case x509.Expired:
			if validityCode(invalid.Cert, now) == VErrCertNotYetValid {
				return VErrCertNotYetValid, depth
			}
			return VErrCertHasExpired, depth
		case x509.NotAuthorizedToSign:
			return VErrInvalidCA, depth
		case x509.IncompatibleUsage:
			return VErrInvalidPurpose, depth
		case x509.TooManyIntermediates:
			return VErrCertChainTooLong, depth
		case x509.CANotAuthorizedForThisName, x509.NameConstraintsWithoutSANs:
			return VErrPermittedViolation, depth
		case x509.CANotAuthorizedForExtKeyUsage:
			return VErrInvalidPurpose, depth
		}
		return VErrUnspecified, depth
	case errors.As(err, &hostname):
		return VErrHostnameMismatch, 0
	case errors.As(err, &unknown):
		last := len(path) - 1
		if anchored {
			// An issuer was rejected while the chain was built.
			for i, c := range path {
				if code := validityCode(c, now); code != VOK {
					return code, i
				}
			}
			return VErrUnspecified, last
		}
		if selfSigned(path[last]) {
			if last == 0 {
				return VErrDepthZeroSelfSignedCert, 0
			}
			return VErrSelfSignedCertInChain, last
		}
		return VErrUnableToGetIssuerCertLocaly, last
	case errors.As(err, &critical):
		return VErrUnhandledCriticalExtension, 0
	case errors.As(err, &sysRoots):
		return VErrUnableToGetIssuerCert, 0
	}
	return VErrUnspecified, 0
}

// validityCode checks the validity window of cert at now.
func validityCode(cert *x509.Certificate, now time.Time) int {
	switch {
	case cert == nil:
		return VOK
	case now.Before(cert.NotBefore):
		return VErrCertNotYetValid
	case now.After(cert.NotAfter):
		return VErrCertHasExpired
	}
	return VOK
}

// indexOf returns the position of cert in path, 0 when it is absent.
func indexOf(path []*x509.Certificate, cert *x509.Certificate) int {
	if cert == nil {
		return 0
	}
	for i, c := range path {
		if c.Equal(cert) {
			return i
		}
	}
	return 0
}

// selfSigned reports whether cert is signed by its own key, regardless of
// its CA flag.
func selfSigned(cert *x509.Certificate) bool {
	if !bytes.Equal(cert.RawSubject, cert.RawIssuer) {
		return false
	}
	return cert.CheckSignature(cert.SignatureAlgorithm, cert.RawTBSCertificate, cert.Signature) == nil
}

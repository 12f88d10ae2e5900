// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package native

import (
	"crypto/x509"
	"time"
)

// StoreCtx is the verification context: the working state used while a
// certificate is checked against a store and an untrusted chain.
type StoreCtx struct {
	store     *Store
	cert      *X509
	untrusted *Stack
	trusted   *Stack

	param VerifyParam

	initialized bool
	freed       bool

	verifyErr  int
	errorDepth int
	chain      []*x509.Certificate

	// lastErr is the code queued by the last failing call on the context.
	lastErr ErrorCode
}

// VerifyParam holds the verification parameters of a context.
type VerifyParam struct {
	CheckTime    time.Time
	UseCheckTime bool
	Purpose      Purpose
	Host         string
}

// Library is the verification-context API. [Default] returns the process
// implementation; tests substitute instrumented ones.
type Library interface {
	// StoreCtxNew allocates a context, nil on failure.
	StoreCtxNew() *StoreCtx
	// StoreCtxFree releases a context and its working state.
	StoreCtxFree(ctx *StoreCtx)
	// StoreCtxInit binds the context to its inputs. Returns 1 on success.
	StoreCtxInit(ctx *StoreCtx, store *Store, cert *X509, chain *Stack) int
	// StoreCtxTrustedStack makes certs the trust source instead of the store.
	StoreCtxTrustedStack(ctx *StoreCtx, certs *Stack)
	// StoreCtxCleanup resets the context so it can be initialized again.
	StoreCtxCleanup(ctx *StoreCtx)
	// StoreCtxSetTime fixes the verification time.
	StoreCtxSetTime(ctx *StoreCtx, t time.Time)
	// StoreCtxSetPurpose sets the required purpose. Returns 1 on success.
	StoreCtxSetPurpose(ctx *StoreCtx, p Purpose) int
	// StoreCtxSetHost sets the expected DNS name. Returns 1 on success.
	StoreCtxSetHost(ctx *StoreCtx, host string) int
	// VerifyCert runs verification: 1 trusted, 0 verify failure, -1 misuse.
	VerifyCert(ctx *StoreCtx) int
	// StoreCtxGetError returns the verify result code of the last run.
	StoreCtxGetError(ctx *StoreCtx) int
	// StoreCtxGetErrorDepth returns the chain depth of the verify error.
	StoreCtxGetErrorDepth(ctx *StoreCtx) int
	// StoreCtxGetChain returns the chain built by the last run, leaf first.
	// After a failure it is the partial chain up to the failing point.
	StoreCtxGetChain(ctx *StoreCtx) []*x509.Certificate
	// StoreCtxLastError returns the code queued by the last failing call on
	// ctx, 0 when there is none.
	StoreCtxLastError(ctx *StoreCtx) ErrorCode
	// ErrGetError pops the earliest queued library error.
	ErrGetError() ErrorCode
}

type library struct{}

var defaultLibrary Library = library{}

// Default returns the process-wide Library.
func Default() Library { return defaultLibrary }

func (library) StoreCtxNew() *StoreCtx { return &StoreCtx{} }

func (library) StoreCtxFree(ctx *StoreCtx) {
	if ctx == nil || ctx.freed {
		return
	}
	ctx.reset()
	ctx.freed = true
}

func (library) StoreCtxInit(ctx *StoreCtx, store *Store, cert *X509, chain *Stack) int {
	if !ctx.usable() {
		return 0
	}
	if ctx.initialized {
		return ctx.fail(ErrPutError(LibX509, ReasonContextAlreadyInitialized))
	}
	if store != nil {
		if code := store.check(); code != 0 {
			return ctx.fail(code)
		}
	}
	if cert != nil {
		if code := cert.check(); code != 0 {
			return ctx.fail(code)
		}
	}
	if chain != nil {
		if code := chain.check(); code != 0 {
			return ctx.fail(code)
		}
	}

	ctx.store = store
	ctx.cert = cert
	ctx.untrusted = chain
	ctx.trusted = nil
	ctx.verifyErr = VOK
	ctx.errorDepth = 0
	ctx.chain = nil
	ctx.initialized = true
	return 1
}

func (library) StoreCtxTrustedStack(ctx *StoreCtx, certs *Stack) {
	if ctx == nil || ctx.freed {
		return
	}
	ctx.trusted = certs
}

func (library) StoreCtxCleanup(ctx *StoreCtx) {
	if ctx == nil || ctx.freed {
		return
	}
	ctx.reset()
}

func (library) StoreCtxSetTime(ctx *StoreCtx, t time.Time) {
	if ctx == nil || ctx.freed {
		return
	}
	ctx.param.CheckTime = t
	ctx.param.UseCheckTime = true
}

func (library) StoreCtxSetPurpose(ctx *StoreCtx, p Purpose) int {
	if !ctx.usable() {
		return 0
	}
	if !p.valid() {
		return ctx.fail(ErrPutError(LibX509, ReasonUnknownPurposeID))
	}
	ctx.param.Purpose = p
	return 1
}

func (library) StoreCtxSetHost(ctx *StoreCtx, host string) int {
	if !ctx.usable() {
		return 0
	}
	for i := 0; i < len(host); i++ {
		if host[i] == 0 {
			return ctx.fail(ErrPutError(LibX509, ReasonInvalidHost))
		}
	}
	ctx.param.Host = host
	return 1
}

func (library) VerifyCert(ctx *StoreCtx) int { return verifyCert(ctx) }

func (library) StoreCtxGetError(ctx *StoreCtx) int {
	if ctx == nil {
		return VErrUnspecified
	}
	return ctx.verifyErr
}

func (library) StoreCtxGetErrorDepth(ctx *StoreCtx) int {
	if ctx == nil {
		return -1
	}
	return ctx.errorDepth
}

func (library) StoreCtxGetChain(ctx *StoreCtx) []*x509.Certificate {
	if ctx == nil || ctx.freed || len(ctx.chain) == 0 {
		return nil
	}
	out := make([]*x509.Certificate, len(ctx.chain))
	copy(out, ctx.chain)
	return out
}

func (library) StoreCtxLastError(ctx *StoreCtx) ErrorCode {
	if ctx == nil {
		return 0
	}
	return ctx.lastErr
}

func (library) ErrGetError() ErrorCode { return ErrGetError() }

// Initialized reports whether ctx holds inputs from StoreCtxInit.
func (ctx *StoreCtx) Initialized() bool { return ctx != nil && ctx.initialized }

// Freed reports whether StoreCtxFree was called on ctx.
func (ctx *StoreCtx) Freed() bool { return ctx != nil && ctx.freed }

// Param returns a copy of the verification parameters.
func (ctx *StoreCtx) Param() VerifyParam {
	if ctx == nil {
		return VerifyParam{}
	}
	return ctx.param
}

func (ctx *StoreCtx) reset() {
	ctx.store = nil
	ctx.cert = nil
	ctx.untrusted = nil
	ctx.trusted = nil
	ctx.param = VerifyParam{}
	ctx.initialized = false
	ctx.verifyErr = VOK
	ctx.errorDepth = 0
	ctx.chain = nil
}

// fail records code as the last failure of ctx and returns 0.
func (ctx *StoreCtx) fail(code ErrorCode) int {
	ctx.lastErr = code
	return 0
}

func (ctx *StoreCtx) usable() bool {
	switch {
	case ctx == nil:
		ErrPutError(LibX509, ReasonPassedNullParameter)
		return false
	case ctx.freed:
		ctx.fail(ErrPutError(LibX509, ReasonFreedHandle))
		return false
	}
	return true
}

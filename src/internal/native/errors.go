// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package native

import (
	"fmt"
	"sync"
)

// ErrorCode is a packed library error: the library number in the high bits
// and the reason in the low 23 bits.
type ErrorCode uint64

// Library numbers.
const (
	LibNone   = 0
	LibPEM    = 9
	LibX509   = 11
	LibASN1   = 13
	LibCrypto = 15
)

// Reason codes.
const (
	ReasonMallocFailure             = 65
	ReasonPassedNullParameter       = 67
	ReasonCertAlreadyInHashTable    = 101
	ReasonNoCertSetForUsToVerify    = 105
	ReasonUnknownPurposeID          = 121
	ReasonInvalidHost               = 122
	ReasonContextAlreadyInitialized = 140
	ReasonContextNotInitialized     = 141
	ReasonFreedHandle               = 142
	ReasonNoCertificateFound        = 143
)

const (
	reasonBits = 23
	reasonMask = 1<<reasonBits - 1

	// errNumErrors bounds the queue; older entries are dropped first.
	errNumErrors = 16
)

var reasonStrings = map[int]string{
	ReasonMallocFailure:             "malloc failure",
	ReasonPassedNullParameter:       "passed a null parameter",
	ReasonCertAlreadyInHashTable:    "cert already in hash table",
	ReasonNoCertSetForUsToVerify:    "no cert set for us to verify",
	ReasonUnknownPurposeID:          "unknown purpose id",
	ReasonInvalidHost:               "invalid host",
	ReasonContextAlreadyInitialized: "context already initialized",
	ReasonContextNotInitialized:     "context not initialized",
	ReasonFreedHandle:               "handle already freed",
	ReasonNoCertificateFound:        "no certificate found",
}

var libStrings = map[int]string{
	LibPEM:    "PEM routines",
	LibX509:   "x509 certificate routines",
	LibASN1:   "asn1 encoding routines",
	LibCrypto: "common libcrypto routines",
}

// PackError builds an ErrorCode from a library and reason.
func PackError(lib, reason int) ErrorCode {
	return ErrorCode(uint64(lib)<<reasonBits | uint64(reason)&reasonMask)
}

// Lib returns the library number of the code.
func (c ErrorCode) Lib() int { return int(uint64(c) >> reasonBits) }

// Reason returns the reason number of the code.
func (c ErrorCode) Reason() int { return int(uint64(c) & reasonMask) }

// String renders the code the way ERR_error_string does.
func (c ErrorCode) String() string {
	return fmt.Sprintf("error:%08X:%s::%s", uint64(c), libString(c.Lib()), reasonString(c.Reason()))
}

func libString(lib int) string {
	if s, ok := libStrings[lib]; ok {
		return s
	}
	return fmt.Sprintf("lib(%d)", lib)
}

func reasonString(reason int) string {
	if s, ok := reasonStrings[reason]; ok {
		return s
	}
	return fmt.Sprintf("reason(%d)", reason)
}

// The queue is process-wide: Go has no thread-local storage. Handles keep the
// code of their last failure so a caller can take its own entry with
// ErrTakeError instead of the queue head.
var errQueue struct {
	mu    sync.Mutex
	codes []ErrorCode
}

// ErrPutError queues an error and returns its packed code.
func ErrPutError(lib, reason int) ErrorCode {
	code := PackError(lib, reason)

	errQueue.mu.Lock()
	defer errQueue.mu.Unlock()

	if len(errQueue.codes) == errNumErrors {
		errQueue.codes = errQueue.codes[1:]
	}
	errQueue.codes = append(errQueue.codes, code)
	return code
}

// ErrGetError pops the earliest queued error, 0 when the queue is empty.
func ErrGetError() ErrorCode {
	errQueue.mu.Lock()
	defer errQueue.mu.Unlock()

	if len(errQueue.codes) == 0 {
		return 0
	}
	code := errQueue.codes[0]
	errQueue.codes = errQueue.codes[1:]
	return code
}

// ErrTakeError removes the earliest queued entry equal to code and returns
// code. Entries queued by other callers stay in place. A zero code takes
// nothing.
func ErrTakeError(code ErrorCode) ErrorCode {
	if code == 0 {
		return 0
	}

	errQueue.mu.Lock()
	defer errQueue.mu.Unlock()

	for i, c := range errQueue.codes {
		if c == code {
			errQueue.codes = append(errQueue.codes[:i:i], errQueue.codes[i+1:]...)
			break
		}
	}
	return code
}

// ErrClearError empties the queue.
func ErrClearError() {
	errQueue.mu.Lock()
	errQueue.codes = nil
	errQueue.mu.Unlock()
}

// CryptographicError reports a failed library call together with the error
// code taken from the queue at the moment of failure.
type CryptographicError struct {
	Code ErrorCode
}

// Error implements error.
func (e *CryptographicError) Error() string {
	if e.Code == 0 {
		return "cryptographic error: unknown failure"
	}
	return fmt.Sprintf("cryptographic error: %s: %s", libString(e.Code.Lib()), reasonString(e.Code.Reason()))
}

// Is reports whether target is a CryptographicError with the same code.
// A target with a zero code matches any CryptographicError.
func (e *CryptographicError) Is(target error) bool {
	t, ok := target.(*CryptographicError)
	if !ok {
		return false
	}
	return t.Code == 0 || t.Code == e.Code
}

// ErrorIfNot returns a CryptographicError carrying the next queued code
// when ok is false, and nil otherwise.
func ErrorIfNot(ok bool, next func() ErrorCode) error {
	if ok {
		return nil
	}
	if next == nil {
		next = ErrGetError
	}
	return &CryptographicError{Code: next()}
}

// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package native

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	code := PackError(LibX509, ReasonCertAlreadyInHashTable)

	assert.Equal(t, LibX509, code.Lib())
	assert.Equal(t, ReasonCertAlreadyInHashTable, code.Reason())
	assert.Equal(t, "error:05800065:x509 certificate routines::cert already in hash table", code.String())
	assert.Contains(t, PackError(99, 999).String(), "lib(99)")
	assert.Contains(t, PackError(99, 999).String(), "reason(999)")
}

func TestErrorQueue(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Empty queue yields zero",
			testFunc: func(t *testing.T) {
				ErrClearError()
				assert.Equal(t, ErrorCode(0), ErrGetError())
				assert.Equal(t, ErrorCode(0), ErrTakeError(0))
			},
		},
		{
			name: "First in first out",
			testFunc: func(t *testing.T) {
				ErrClearError()
				assert.Equal(t, PackError(LibX509, ReasonPassedNullParameter), ErrPutError(LibX509, ReasonPassedNullParameter))
				ErrPutError(LibPEM, ReasonNoCertificateFound)

				assert.Equal(t, PackError(LibX509, ReasonPassedNullParameter), ErrGetError())
				assert.Equal(t, PackError(LibPEM, ReasonNoCertificateFound), ErrGetError())
				assert.Equal(t, ErrorCode(0), ErrGetError())
			},
		},
		{
			name: "Take removes only the matching entry",
			testFunc: func(t *testing.T) {
				ErrClearError()
				mine := PackError(LibX509, ReasonInvalidHost)
				ErrPutError(LibPEM, ReasonNoCertificateFound)
				ErrPutError(LibX509, ReasonInvalidHost)
				ErrPutError(LibCrypto, ReasonFreedHandle)
				ErrPutError(LibX509, ReasonInvalidHost)

				assert.Equal(t, mine, ErrTakeError(mine))
				assert.Equal(t, PackError(LibPEM, ReasonNoCertificateFound), ErrGetError())
				assert.Equal(t, PackError(LibCrypto, ReasonFreedHandle), ErrGetError())
				assert.Equal(t, mine, ErrGetError())
				assert.Equal(t, ErrorCode(0), ErrGetError())
			},
		},
		{
			name: "Take of an absent code leaves the queue alone",
			testFunc: func(t *testing.T) {
				ErrClearError()
				ErrPutError(LibPEM, ReasonNoCertificateFound)

				code := PackError(LibX509, ReasonUnknownPurposeID)
				assert.Equal(t, code, ErrTakeError(code))
				assert.Equal(t, PackError(LibPEM, ReasonNoCertificateFound), ErrGetError())
			},
		},
		{
			name: "Oldest entries are dropped when full",
			testFunc: func(t *testing.T) {
				ErrClearError()
				for i := 0; i < errNumErrors+4; i++ {
					ErrPutError(LibX509, i+1)
				}

				assert.Equal(t, 5, ErrGetError().Reason())
				ErrClearError()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestCryptographicError(t *testing.T) {
	dup := &CryptographicError{Code: PackError(LibX509, ReasonCertAlreadyInHashTable)}
	wrapped := fmt.Errorf("add anchor: %w", dup)

	assert.EqualError(t, dup, "cryptographic error: x509 certificate routines: cert already in hash table")
	assert.EqualError(t, &CryptographicError{}, "cryptographic error: unknown failure")

	assert.ErrorIs(t, wrapped, &CryptographicError{})
	assert.ErrorIs(t, wrapped, &CryptographicError{Code: dup.Code})
	assert.NotErrorIs(t, wrapped, &CryptographicError{Code: PackError(LibX509, ReasonFreedHandle)})
	assert.NotErrorIs(t, errors.New("other"), &CryptographicError{})

	var ce *CryptographicError
	assert.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, dup.Code, ce.Code)
}

func TestErrorIfNot(t *testing.T) {
	ErrClearError()

	assert.NoError(t, ErrorIfNot(true, nil))

	ErrPutError(LibX509, ReasonInvalidHost)
	err := ErrorIfNot(false, nil)
	assert.ErrorIs(t, err, &CryptographicError{Code: PackError(LibX509, ReasonInvalidHost)})

	err = ErrorIfNot(false, func() ErrorCode { return PackError(LibCrypto, ReasonMallocFailure) })
	assert.ErrorIs(t, err, &CryptographicError{Code: PackError(LibCrypto, ReasonMallocFailure)})

	err = ErrorIfNot(false, nil)
	var ce *CryptographicError
	if assert.ErrorAs(t, err, &ce) {
		assert.Equal(t, ErrorCode(0), ce.Code)
	}
}

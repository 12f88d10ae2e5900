// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

type foreignBuffer struct{ bytes.Buffer }

func TestPool(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Get returns an empty buffer",
			testFunc: func(t *testing.T) {
				buf := Default.Get()
				defer Default.Put(buf)

				assert.Equal(t, 0, buf.Len())
			},
		},
		{
			name: "Reset clears written data",
			testFunc: func(t *testing.T) {
				buf := Default.Get()
				_, err := buf.WriteString("certificate")
				require.NoError(t, err)
				assert.Equal(t, []byte("certificate"), buf.Bytes())

				buf.Reset()
				assert.Equal(t, 0, buf.Len())
				Default.Put(buf)
			},
		},
		{
			name: "Put ignores foreign buffers",
			testFunc: func(t *testing.T) {
				assert.NotPanics(t, func() { Default.Put(&foreignBuffer{}) })
			},
		},
		{
			name: "Concurrent use",
			testFunc: func(t *testing.T) {
				var wg sync.WaitGroup
				for i := 0; i < 32; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						data, err := ReadAll(strings.NewReader("pooled"))
						assert.NoError(t, err)
						assert.Equal(t, "pooled", string(data))
					}()
				}
				wg.Wait()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestReadAll(t *testing.T) {
	data, err := ReadAll(strings.NewReader("-----BEGIN CERTIFICATE-----"))
	require.NoError(t, err)
	assert.Equal(t, "-----BEGIN CERTIFICATE-----", string(data))

	// The returned slice must survive buffer reuse.
	_, err = ReadAll(strings.NewReader("overwrite"))
	require.NoError(t, err)
	assert.Equal(t, "-----BEGIN CERTIFICATE-----", string(data))

	_, err = ReadAll(errorReader{})
	assert.EqualError(t, err, "read failed")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.pem")
	require.NoError(t, os.WriteFile(path, []byte("bundle"), 0o600))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bundle", string(data))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.pem"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

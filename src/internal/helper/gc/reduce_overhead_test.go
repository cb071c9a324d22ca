// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or use this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBufferInterface verifies that bytebufferpool.ByteBuffer satisfies Buffer interface
func TestBufferInterface(t *testing.T) {
	tests := []struct {
		name  string
		setup func(buf Buffer)
		check func(t *testing.T, buf Buffer)
	}{
		{
			name: "WriteString",
			setup: func(buf Buffer) {
				buf.WriteString("ab:cd:ef")
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "ab:cd:ef", buf.String())
				assert.Equal(t, 8, buf.Len())
			},
		},
		{
			name: "WriteByte separator",
			setup: func(buf Buffer) {
				buf.WriteString("ab")
				buf.WriteByte(':')
				buf.WriteString("cd")
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "ab:cd", buf.String())
			},
		},
		{
			name: "Write byte slice",
			setup: func(buf Buffer) {
				buf.Write([]byte("http://crl.example/r1.crl\n"))
				buf.Write([]byte("http://crl.example/r2.crl"))
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "http://crl.example/r1.crl\nhttp://crl.example/r2.crl", buf.String())
				assert.Equal(t, buf.String(), string(buf.Bytes()))
			},
		},
		{
			name: "Reset clears buffer",
			setup: func(buf Buffer) {
				buf.WriteString("data to clear")
				buf.Reset()
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, 0, buf.Len(), "Reset() failed, buffer still contains data: %q", buf.Bytes())
			},
		},
		{
			name:  "Empty buffer",
			setup: func(buf Buffer) {},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, 0, buf.Len())
				assert.Equal(t, "", buf.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			tt.setup(buf)
			tt.check(t, buf)
		})
	}
}

// TestBufferReadFrom verifies ReadFrom functionality
func TestBufferReadFrom(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantLen int64
	}{
		{
			name:    "Small data",
			data:    "Hello, World!",
			wantLen: 13,
		},
		{
			name:    "Empty reader",
			data:    "",
			wantLen: 0,
		},
		{
			name:    "Large data (10KB)",
			data:    strings.Repeat("0123456789", 1024),
			wantLen: 10240,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			n, err := buf.ReadFrom(strings.NewReader(tt.data))
			assert.NoError(t, err, "ReadFrom() should not return error")
			assert.Equal(t, tt.wantLen, n, "ReadFrom() read bytes")
			assert.Equal(t, tt.data, buf.String(), "ReadFrom() result")
		})
	}
}

// TestPoolGetPut verifies pool Get/Put operations
func TestPoolGetPut(t *testing.T) {
	buf1 := Default.Get()
	require.NotNil(t, buf1, "Get() returned nil buffer")

	buf1.WriteString("test data")
	assert.Equal(t, 9, buf1.Len(), "WriteString() length")
	buf1.Reset()
	assert.Equal(t, 0, buf1.Len(), "Reset() failed")

	// Return to pool (buf1 must not be accessed after this)
	Default.Put(buf1)

	buf2 := Default.Get()
	require.NotNil(t, buf2, "Get() returned nil buffer after Put()")
	assert.Equal(t, 0, buf2.Len(), "buffer from pool should be empty")

	buf2.Reset()
	Default.Put(buf2)
}

// TestPoolConcurrent verifies the pool is safe for concurrent use
func TestPoolConcurrent(t *testing.T) {
	const goroutines = 100
	const iterations = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := range goroutines {
		go func(id int) {
			defer wg.Done()
			for range iterations {
				buf := Default.Get()

				buf.WriteString("fingerprint ")
				buf.WriteByte(byte('0' + (id % 10)))

				assert.GreaterOrEqual(t, buf.Len(), 13, "buffer should hold the written bytes")

				buf.Reset()
				Default.Put(buf)
			}
		}(i)
	}

	wg.Wait()
}

// TestPoolPutNonByteBuffer verifies Put handles non-ByteBuffer types gracefully
func TestPoolPutNonByteBuffer(t *testing.T) {
	mockBuf := &mockBuffer{buf: bytes.NewBuffer(nil)}
	Default.Put(mockBuf)
}

// TestBufferReadFromError verifies ReadFrom propagates reader errors
func TestBufferReadFromError(t *testing.T) {
	buf := Default.Get()
	defer func() {
		buf.Reset()
		Default.Put(buf)
	}()

	errReader := &errorReader{err: io.ErrUnexpectedEOF}

	_, err := buf.ReadFrom(errReader)
	require.Error(t, err, "ReadFrom should return error from reader")
	assert.Equal(t, io.ErrUnexpectedEOF, err, "ReadFrom error")
}

// TestPoolInterfaceImplementation verifies pool type implements Pool interface
func TestPoolInterfaceImplementation(t *testing.T) {
	var _ Pool = &pool{}
	var _ Pool = Default
}

package utils

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestDeferredWriter_PassThrough(t *testing.T) {
	var out bytes.Buffer
	d := NewDeferredWriter(&out)

	n, err := d.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", out.String())
	assert.Zero(t, d.Buffered())
}

func TestDeferredWriter_HoldAndRelease(t *testing.T) {
	var out bytes.Buffer
	d := NewDeferredWriter(&out)

	d.Hold()
	_, _ = d.Write([]byte("hello "))
	_, _ = d.Write([]byte("world"))
	assert.Empty(t, out.String())
	assert.Equal(t, 11, d.Buffered())

	require.NoError(t, d.Release())
	assert.Equal(t, "hello world", out.String())
	assert.Zero(t, d.Buffered())

	_, _ = d.Write([]byte("!"))
	assert.Equal(t, "hello world!", out.String())
}

func TestDeferredWriter_ReleaseEmpty(t *testing.T) {
	d := NewDeferredWriter(failWriter{})
	d.Hold()
	assert.NoError(t, d.Release())
}

func TestDeferredWriter_ReleaseError(t *testing.T) {
	d := NewDeferredWriter(failWriter{})
	d.Hold()
	_, _ = d.Write([]byte("lost"))
	assert.Error(t, d.Release())
}

func TestDeferredWriter_Concurrent(t *testing.T) {
	var out bytes.Buffer
	d := NewDeferredWriter(&out)
	d.Hold()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Write([]byte("x"))
		}()
	}
	wg.Wait()

	require.NoError(t, d.Release())
	assert.Len(t, out.String(), 50)
}

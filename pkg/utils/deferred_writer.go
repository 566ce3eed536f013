package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter passes writes through to its target, except while held,
// when writes are buffered in memory until Release.
// Safe for concurrent use.
type DeferredWriter struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	target io.Writer
	held   bool
}

// NewDeferredWriter returns a pass-through writer for target.
func NewDeferredWriter(target io.Writer) *DeferredWriter {
	return &DeferredWriter{target: target}
}

// Write stores data in the internal buffer while held and writes it to the
// target otherwise.
func (d *DeferredWriter) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.held {
		return d.buf.Write(p)
	}
	return d.target.Write(p)
}

// Hold starts buffering writes.
func (d *DeferredWriter) Hold() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = true
}

// Release writes all buffered data to the target, clears the buffer, and
// returns to pass-through mode.
func (d *DeferredWriter) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = false

	if d.buf.Len() == 0 {
		return nil
	}

	_, err := d.buf.WriteTo(d.target)
	return err
}

// Buffered returns the number of bytes waiting for Release.
func (d *DeferredWriter) Buffered() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}

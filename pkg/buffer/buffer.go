package buffer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
)

// ErrBufferReleased is returned by writes to a buffer whose storage was released.
var ErrBufferReleased = errors.New("buffer released")

const defaultInitialCapacity = 512

// ResponseBuffer accumulates a streamed response body.
//
// The written length and the allocated capacity are tracked separately and the
// storage is reallocated only when length+incoming exceeds capacity. One spare
// byte past the capacity is always allocated so the content stays
// NUL-terminated after every write. A ResponseBuffer is owned by a single
// goroutine; only its Statistics may be shared.
type ResponseBuffer struct {
	data     []byte // len(data) == capacity+1
	length   int
	maxSize  int
	stats    *Statistics
	released bool
}

var _ io.Writer = (*ResponseBuffer)(nil)

// NewResponseBuffer creates an empty buffer.
func NewResponseBuffer(options ...Option) *ResponseBuffer {
	opts := applyOptions(options...)

	capacity := opts.initialCapacity
	if opts.maxSize > 0 && capacity > opts.maxSize {
		capacity = opts.maxSize
	}

	stats := opts.stats
	if stats == nil {
		stats = NewStatistics()
	}

	return &ResponseBuffer{
		data:    make([]byte, capacity+1),
		maxSize: opts.maxSize,
		stats:   stats,
	}
}

// Write appends p to the buffer. It implements io.Writer.
func (b *ResponseBuffer) Write(p []byte) (int, error) {
	if err := b.Append(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Append appends p to the buffer. On error the contents are left unchanged.
func (b *ResponseBuffer) Append(p []byte) error {
	if b.released {
		return ErrBufferReleased
	}

	need := b.length + len(p)
	if b.maxSize > 0 && need > b.maxSize {
		b.stats.Reject()
		return errors.WrapInvalid(errors.ErrResourceExhausted, "ResponseBuffer", "Append",
			fmt.Sprintf("body exceeds %d bytes", b.maxSize))
	}

	if need > b.Cap() {
		b.grow(need)
	}

	copy(b.data[b.length:], p)
	b.length = need
	b.data[b.length] = 0

	b.stats.Write(len(p))
	return nil
}

// grow reallocates storage for at least need bytes, doubling when possible.
func (b *ResponseBuffer) grow(need int) {
	newCap := 2 * b.Cap()
	if newCap < need {
		newCap = need
	}
	if b.maxSize > 0 && newCap > b.maxSize {
		newCap = b.maxSize
	}

	data := make([]byte, newCap+1)
	copy(data, b.data[:b.length])
	b.data = data
	b.stats.Grow()
}

// Len returns the number of bytes written.
func (b *ResponseBuffer) Len() int { return b.length }

// Cap returns the number of bytes the buffer holds before it must grow.
func (b *ResponseBuffer) Cap() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data) - 1
}

// Bytes returns the written bytes. The slice aliases the buffer storage and is
// valid until the next write or Release.
func (b *ResponseBuffer) Bytes() []byte {
	if b.released {
		return nil
	}
	return b.data[:b.length]
}

// String returns the written bytes as a string.
func (b *ResponseBuffer) String() string {
	return string(b.Bytes())
}

// Reader returns a reader over the written bytes.
func (b *ResponseBuffer) Reader() io.Reader {
	return bytes.NewReader(b.Bytes())
}

// Release drops the storage. Further writes fail with ErrBufferReleased.
// Releasing twice is a no-op.
func (b *ResponseBuffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.data = nil
	b.length = 0
	b.stats.Release()
}

// Released reports whether Release was called.
func (b *ResponseBuffer) Released() bool { return b.released }

// Stats returns the statistics this buffer reports to.
func (b *ResponseBuffer) Stats() *Statistics { return b.stats }

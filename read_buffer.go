package fdio

import (
	"bytes"
	"fmt"
)

const (
	defaultReadBufSize = 32 * 1024
	maxReadBufSize     = 8 * 1024 * 1024
)

// readBuffer is a FIFO window over a growable byte slice. Bytes read from
// the descriptor are committed at the end; bytes delivered to the caller are
// taken from the start. It only ever holds bytes that were physically read
// but not yet handed out.
type readBuffer struct {
	buf        []byte
	start, end int
}

func (rb *readBuffer) init(size int) {
	if len(rb.buf) == 0 {
		if size <= 0 {
			size = defaultReadBufSize
		}
		rb.buf = make([]byte, size)
	}
}

func (rb *readBuffer) buffered() int {
	return rb.end - rb.start
}

func (rb *readBuffer) window() []byte {
	return rb.buf[rb.start:rb.end]
}

// indexLF returns the offset of the first LF in the window, or -1.
func (rb *readBuffer) indexLF() int {
	return bytes.IndexByte(rb.window(), '\n')
}

// take removes the first n buffered bytes and returns them as a copy, so the
// result survives later reads into the same backing array.
func (rb *readBuffer) take(n int) []byte {
	if n <= 0 {
		return nil
	}
	if n > rb.buffered() {
		n = rb.buffered()
	}
	out := make([]byte, n)
	copy(out, rb.buf[rb.start:rb.start+n])
	rb.advance(n)
	return out
}

// takeAll drains the buffer, returning nil when it is empty.
func (rb *readBuffer) takeAll() []byte {
	if rb.buffered() == 0 {
		return nil
	}
	return rb.take(rb.buffered())
}

func (rb *readBuffer) advance(consumed int) {
	if consumed <= 0 {
		return
	}
	rb.start += consumed
	if rb.start >= rb.end {
		rb.start, rb.end = 0, 0
	}
}

func (rb *readBuffer) compact() {
	if rb.start == 0 || rb.start == rb.end {
		return
	}
	copy(rb.buf, rb.buf[rb.start:rb.end])
	rb.end -= rb.start
	rb.start = 0
}

func (rb *readBuffer) ensureWriteSpace() error {
	if rb.end < len(rb.buf) {
		return nil
	}
	if rb.start > 0 {
		rb.compact()
		if rb.end < len(rb.buf) {
			return nil
		}
	}

	// No space and cannot compact: grow.
	cur := len(rb.buf)
	if cur == 0 {
		cur = defaultReadBufSize
	}
	newLen := cur * 2
	if newLen > maxReadBufSize {
		newLen = maxReadBufSize
	}
	if newLen <= len(rb.buf) {
		return fmt.Errorf("%w: %d bytes", ErrBufferLimit, maxReadBufSize)
	}

	nb := make([]byte, newLen)
	copy(nb, rb.window())
	rb.end = rb.end - rb.start
	rb.start = 0
	rb.buf = nb
	return nil
}

// writeSpace returns the free region after the buffered bytes, compacting or
// growing the backing array as needed. New data read into it must be recorded
// with commit.
func (rb *readBuffer) writeSpace() ([]byte, error) {
	if err := rb.ensureWriteSpace(); err != nil {
		return nil, err
	}
	return rb.buf[rb.end:], nil
}

func (rb *readBuffer) commit(n int) {
	if n > 0 {
		rb.end += n
	}
}

package fdio

import (
	"fmt"
	"iter"
)

// Format selects what Read returns.
type Format int

const (
	// Line reads a single line without its end-of-line bytes.
	Line Format = iota
	// LineWithEOL reads a single line including its end-of-line bytes.
	LineWithEOL
	// All reads every remaining byte until end of stream.
	All
)

// Read reads according to f. It is a convenience dispatcher over ReadLine
// and ReadAll; fixed byte counts go through ReadN. An unrecognized format
// is a usage error, not an I/O error.
func (r *Reader) Read(f Format) (data []byte, timedOut bool, err error) {
	switch f {
	case Line:
		return r.ReadLine(false)
	case LineWithEOL:
		return r.ReadLine(true)
	case All:
		return r.ReadAll()
	default:
		return nil, false, fmt.Errorf("%w: %d", ErrInvalidFormat, int(f))
	}
}

// ReadN reads exactly n bytes, accumulating short reads as needed. Buffered
// bytes are served first; the descriptor is only touched for the shortfall.
//
// If the stream ends before n bytes arrive, the residual buffered bytes are
// returned as a final short read; once nothing remains, ReadN returns the
// nil triple. n == 0 returns the nil triple without touching the
// descriptor. A timeout leaves every buffered byte in place, so the call is
// safe to retry.
func (r *Reader) ReadN(n int) (data []byte, timedOut bool, err error) {
	if err := r.ensureOpen(); err != nil {
		return nil, false, err
	}
	if n < 0 {
		return nil, false, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}
	if n == 0 {
		return nil, false, nil
	}

	for r.buf.buffered() < n {
		nn, timedOut, err := r.fillOnce(n - r.buf.buffered())
		if err != nil || timedOut {
			return nil, timedOut, err
		}
		if nn == 0 {
			// End of stream: drain what is buffered as a final short
			// read, or report exhaustion.
			return r.buf.takeAll(), false, nil
		}
	}

	return r.buf.take(n), false, nil
}

// ReadAll reads until end of stream and returns everything, starting with
// any buffered bytes. It returns the nil triple when the stream was already
// exhausted.
//
// A timeout or error aborts the call and discards the bytes accumulated by
// this call (buffered bytes consumed at entry included); callers that retry
// after a timeout start over from the stream's current position.
func (r *Reader) ReadAll() (data []byte, timedOut bool, err error) {
	if err := r.ensureOpen(); err != nil {
		return nil, false, err
	}

	out := r.buf.takeAll()
	for {
		n, timedOut, err := r.fillOnce(0)
		if err != nil || timedOut {
			return nil, timedOut, err
		}
		if n == 0 {
			if len(out) == 0 {
				return nil, false, nil
			}
			return out, false, nil
		}
		out = append(out, r.buf.take(n)...)
	}
}

// ReadLine reads up to and including the next line delimiter. A delimiter
// is an LF together with an immediately preceding CR if present, so CRLF
// and bare LF input split the same way. With keepEOL the delimiter bytes
// are kept; otherwise they are dropped. Bytes after the delimiter stay
// buffered for the next call.
//
// If the stream ends with no delimiter in sight, the remainder is returned
// as a final partial line; after that ReadLine returns the nil triple. An
// empty line is returned as an empty, non-nil slice.
func (r *Reader) ReadLine(keepEOL bool) (data []byte, timedOut bool, err error) {
	if err := r.ensureOpen(); err != nil {
		return nil, false, err
	}

	for {
		if i := r.buf.indexLF(); i >= 0 {
			line := r.buf.take(i + 1)
			if keepEOL {
				return line, false, nil
			}
			return trimEOL(line), false, nil
		}

		n, timedOut, err := r.fillOnce(0)
		if err != nil || timedOut {
			return nil, timedOut, err
		}
		if n == 0 {
			// End of stream with no delimiter: the remainder is the
			// final partial line.
			return r.buf.takeAll(), false, nil
		}
	}
}

// trimEOL drops a trailing LF and an immediately preceding CR.
func trimEOL(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}
	return line
}

// Lines returns a lazy, forward-only iterator over the remaining lines,
// without end-of-line bytes. Iteration ends when the stream is exhausted.
//
// A transport error ends the iteration with a final (nil, err) pair; a
// timeout does the same with ErrTimeout. Neither is ever folded into normal
// termination, so a loop that ignores the error value must not treat an
// early stop as end of stream.
func (r *Reader) Lines() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for {
			line, timedOut, err := r.ReadLine(false)
			if err != nil {
				yield(nil, err)
				return
			}
			if timedOut {
				yield(nil, ErrTimeout)
				return
			}
			if line == nil {
				return
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}

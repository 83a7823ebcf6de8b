package fdio

import (
	"errors"

	"golang.org/x/sys/unix"
)

// fillOnce performs one read attempt against the descriptor, committing
// whatever arrives into the buffer. max caps the number of bytes requested;
// max <= 0 reads as much as the buffer's write space allows.
//
// On EAGAIN it waits for readability once, bounded by the configured
// timeout, then retries the read exactly once and returns whatever that
// retry yields. There is no loop here: callers that need more data call
// fillOnce again, re-entering the wait, so the timeout budget is per
// attempt rather than an end-to-end deadline.
//
// n == 0 with timedOut false and a nil error means end of stream, or no
// progress when the retried read would still block.
func (r *Reader) fillOnce(max int) (n int, timedOut bool, err error) {
	p, err := r.buf.writeSpace()
	if err != nil {
		return 0, false, err
	}
	if max > 0 && max < len(p) {
		p = p[:max]
	}

	n, err = r.sys.Read(r.fd, p)
	if err == nil {
		r.buf.commit(n)
		return n, false, nil
	}
	if !errors.Is(err, unix.EAGAIN) {
		return 0, false, err
	}

	ready, werr := r.sys.WaitRead(r.fd, r.timeout)
	if werr != nil {
		return 0, false, werr
	}
	if !ready {
		return 0, true, nil
	}

	n, err = r.sys.Read(r.fd, p)
	if errors.Is(err, unix.EAGAIN) {
		// The single retry would still block; report no progress and let
		// the caller decide whether to issue another attempt.
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	r.buf.commit(n)
	return n, false, nil
}

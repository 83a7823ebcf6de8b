// Package poller waits for readability on raw file descriptors.
package poller

import (
	"time"

	"golang.org/x/sys/unix"
)

// WaitRead blocks until fd is readable, has hung up, or timeout elapses.
// A negative timeout waits indefinitely. It reports whether the descriptor
// became readable; false with a nil error means the wait timed out.
//
// EINTR restarts the poll with the remaining time, so a signal never cuts
// the wait short.
func WaitRead(fd int, timeout time.Duration) (bool, error) {
	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		ms := -1
		if timeout >= 0 {
			remaining := time.Until(deadline)
			if remaining < 0 {
				remaining = 0
			}
			// Round up so a sub-millisecond budget still waits.
			ms = int((remaining + time.Millisecond - 1) / time.Millisecond)
		}

		fds := []unix.PollFd{{
			Fd:     int32(fd),
			Events: unix.POLLIN | unix.POLLHUP | unix.POLLERR,
		}}
		n, err := unix.Poll(fds, ms)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, nil
		}
		if fds[0].Revents&unix.POLLNVAL != 0 {
			return false, unix.EBADF
		}
		return true, nil
	}
}

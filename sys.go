package fdio

import "time"

//go:generate go tool mockgen -source=./sys.go -destination=./sys_mock.go -package=fdio Sys

// Sys is the seam between the Reader and the operating system. The real
// implementation issues raw system calls; tests substitute a mock to drive
// the would-block path deterministically.
type Sys interface {
	// Read attempts a single non-blocking read of up to len(p) bytes.
	// It returns 0 with a nil error at end of stream and unix.EAGAIN when
	// the descriptor has no data available yet. EINTR is retried internally
	// and never escapes.
	Read(fd int, p []byte) (int, error)

	// WaitRead blocks until fd is readable or timeout elapses. A negative
	// timeout waits indefinitely. ready is false when the wait timed out.
	WaitRead(fd int, timeout time.Duration) (ready bool, err error)

	// Close closes a raw descriptor owned by the Reader.
	Close(fd int) error
}

// Package fdio provides a buffered, timeout-aware reader over a raw Unix
// file descriptor (regular file, pipe, or duplicated handle).
//
// A Reader accumulates short reads transparently and retries a would-block
// condition exactly once per attempt, bounded by an optional timeout. It
// offers fixed-count reads, delimited line reads, read-all, and lazy line
// iteration over a single shared buffer, so callers get io-library
// ergonomics without managing EAGAIN and retry logic themselves.
//
// A Reader is not safe for concurrent use: exactly one logical operation
// may be in flight at a time, and reads are strictly sequential with
// respect to the underlying byte stream.
package fdio

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Reader is a buffered reader over a single file descriptor. The descriptor
// is either owned (opened or duplicated by the Reader, closed with it) or
// borrowed (left open on Close).
type Reader struct {
	fd    int
	file  *os.File
	owned bool

	buf     readBuffer
	timeout time.Duration

	sys Sys
	log Logger
}

func newReader(fd int, file *os.File, owned bool, cfg Config) *Reader {
	r := &Reader{
		fd:      fd,
		file:    file,
		owned:   owned,
		timeout: cfg.Timeout,
		sys:     cfg.sys,
		log:     cfg.Logger,
	}
	r.buf.init(cfg.BufferSize)
	return r
}

// Open opens path read-only in non-blocking mode. The descriptor is owned
// by the returned Reader and released by Close.
func Open(path string, opts ...Option) (*Reader, error) {
	cfg := mergeWithDefault(opts...)

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("fdio: open %s: %w", path, err)
	}

	cfg.Logger.Debug("fdio: opened path", "path", path, "fd", fd)
	return newReader(fd, nil, true, cfg), nil
}

// Dup duplicates fd and wraps the duplicate, which is owned by the returned
// Reader and released by Close. The original descriptor is untouched.
func Dup(fd int, opts ...Option) (*Reader, error) {
	cfg := mergeWithDefault(opts...)

	nfd, err := unix.Dup(fd)
	if err != nil {
		return nil, fmt.Errorf("fdio: dup %d: %w", fd, err)
	}
	unix.CloseOnExec(nfd)
	if err := unix.SetNonblock(nfd, true); err != nil {
		_ = unix.Close(nfd)
		return nil, fmt.Errorf("fdio: dup %d: %w", fd, err)
	}

	return newReader(nfd, nil, true, cfg), nil
}

// NewFromFD wraps an already-open descriptor without taking ownership:
// Close invalidates the Reader but leaves fd open. The descriptor is put
// into non-blocking mode.
func NewFromFD(fd int, opts ...Option) (*Reader, error) {
	if fd < 0 {
		return nil, fmt.Errorf("fdio: invalid descriptor %d", fd)
	}
	cfg := mergeWithDefault(opts...)

	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, fmt.Errorf("fdio: set nonblock on %d: %w", fd, err)
	}

	return newReader(fd, nil, false, cfg), nil
}

// NewFromFile wraps f and takes ownership of it: Close closes the file.
// The descriptor is put into non-blocking mode.
func NewFromFile(f *os.File, opts ...Option) (*Reader, error) {
	cfg := mergeWithDefault(opts...)

	fd := int(f.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, fmt.Errorf("fdio: set nonblock on %s: %w", f.Name(), err)
	}

	return newReader(fd, f, true, cfg), nil
}

func (r *Reader) ensureOpen() error {
	if r.fd < 0 {
		return ErrClosed
	}
	return nil
}

// Fd returns the wrapped descriptor, or -1 once the Reader has been closed.
func (r *Reader) Fd() int {
	return r.fd
}

// SetTimeout replaces the timeout used by subsequent read attempts; an
// operation already in flight is unaffected. NoTimeout waits indefinitely;
// any other negative value is a usage error.
func (r *Reader) SetTimeout(d time.Duration) error {
	if d < 0 && d != NoTimeout {
		return fmt.Errorf("%w: %v", ErrInvalidTimeout, d)
	}
	r.timeout = d
	return nil
}

// Close invalidates the Reader and releases the owned underlying resource,
// if any; borrowed descriptors are left open. Close is idempotent: a second
// call finds nothing to release and reports success. Buffered bytes are
// dropped; every read after Close fails with ErrClosed.
func (r *Reader) Close() error {
	if r.fd < 0 {
		return nil
	}

	fd := r.fd
	r.fd = -1

	if !r.owned {
		return nil
	}
	r.owned = false

	if r.file != nil {
		f := r.file
		r.file = nil
		if err := f.Close(); err != nil {
			r.log.Debug("fdio: close failed", "fd", fd, "error", err)
			return err
		}
		return nil
	}

	if err := r.sys.Close(fd); err != nil {
		r.log.Debug("fdio: close failed", "fd", fd, "error", err)
		return err
	}
	return nil
}

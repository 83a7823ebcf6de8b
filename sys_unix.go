package fdio

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/javi11/fdio/internal/poller"
)

// osSys implements Sys over raw system calls.
type osSys struct{}

func (osSys) Read(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Read(fd, p)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

func (osSys) WaitRead(fd int, timeout time.Duration) (bool, error) {
	return poller.WaitRead(fd, timeout)
}

func (osSys) Close(fd int) error {
	return unix.Close(fd)
}

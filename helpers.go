package fdio

import (
	"github.com/avast/retry-go/v4"
	"github.com/hashicorp/go-multierror"
)

// ReadRetry reads with the given format, retrying when an attempt times
// out. Hard errors and usage errors are never retried. It returns
// ErrTimeout when every attempt timed out and (nil, nil) at end of stream.
//
// This is the caller-side retry policy the Reader itself deliberately does
// not implement: each attempt re-enters the per-attempt timeout, so total
// wait is roughly attempts * timeout.
func ReadRetry(r *Reader, f Format, attempts uint) ([]byte, error) {
	return doRetry(attempts, func() ([]byte, bool, error) {
		return r.Read(f)
	})
}

// ReadNRetry is ReadRetry for fixed-count reads. Bytes buffered by a timed
// out attempt are retained, so successive attempts make progress.
func ReadNRetry(r *Reader, n int, attempts uint) ([]byte, error) {
	return doRetry(attempts, func() ([]byte, bool, error) {
		return r.ReadN(n)
	})
}

func doRetry(attempts uint, read func() ([]byte, bool, error)) ([]byte, error) {
	var data []byte

	err := retry.Do(
		func() error {
			d, timedOut, err := read()
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if timedOut {
				return ErrTimeout
			}
			data = d
			return nil
		},
		retry.Attempts(attempts),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// CloseAll closes every reader and collects the failures. Nil readers are
// skipped; Close being idempotent, readers already closed count as success.
func CloseAll(readers ...*Reader) error {
	var errs *multierror.Error

	for _, r := range readers {
		if r == nil {
			continue
		}
		if err := r.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return errs.ErrorOrNil()
}

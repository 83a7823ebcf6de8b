package fdio

import "errors"

// Sentinel errors returned by the Reader.
//
// ErrNegativeCount, ErrInvalidFormat and ErrInvalidTimeout are usage errors:
// they indicate a malformed argument, never a transport condition, and are
// returned immediately without touching the descriptor.
var (
	// ErrClosed indicates the Reader has been closed.
	ErrClosed = errors.New("fdio: reader is closed")

	// ErrNegativeCount indicates a negative byte count was requested.
	ErrNegativeCount = errors.New("fdio: negative read count")

	// ErrInvalidFormat indicates an unrecognized read format.
	ErrInvalidFormat = errors.New("fdio: invalid read format")

	// ErrInvalidTimeout indicates a timeout value that is neither NoTimeout
	// nor a non-negative duration.
	ErrInvalidTimeout = errors.New("fdio: invalid timeout")

	// ErrTimeout reports an exhausted timeout on surfaces that cannot carry
	// the dedicated timedOut result, such as Lines and the retry helpers.
	// The read methods themselves report timeouts via their timedOut return,
	// never through this error.
	ErrTimeout = errors.New("fdio: read timed out")

	// ErrBufferLimit indicates the internal buffer would exceed its cap.
	ErrBufferLimit = errors.New("fdio: read buffer limit exceeded")
)

// IsTimeout checks if the error reports an exhausted timeout. Timeouts are
// not failures; the descriptor simply had no data yet and the operation is
// safe to retry.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsUsageError checks if the error reports a malformed argument rather than
// a transport condition. Usage errors are programmer errors; retrying the
// same call cannot succeed.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrNegativeCount) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidTimeout)
}

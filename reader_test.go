package fdio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// pipeReader returns a Reader over the read end of a fresh pipe plus the
// write end. The Reader owns the read end.
func pipeReader(t *testing.T, opts ...Option) (*Reader, *os.File) {
	t.Helper()

	pr, pw, err := os.Pipe()
	require.NoError(t, err)

	r, err := NewFromFile(pr, opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = r.Close()
		_ = pw.Close()
	})
	return r, pw
}

// fileReader returns a Reader over a temp file holding content.
func fileReader(t *testing.T, content []byte, opts ...Option) *Reader {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	r, err := Open(path, opts...)
	require.NoError(t, err)

	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestReadN_Sequential(t *testing.T) {
	r := fileReader(t, []byte("0123456789"))

	data, timedOut, err := r.ReadN(4)
	require.NoError(t, err)
	require.False(t, timedOut)
	require.Equal(t, []byte("0123"), data)

	// Continues from byte n+1.
	data, timedOut, err = r.ReadN(3)
	require.NoError(t, err)
	require.False(t, timedOut)
	require.Equal(t, []byte("456"), data)

	data, timedOut, err = r.ReadN(3)
	require.NoError(t, err)
	require.False(t, timedOut)
	require.Equal(t, []byte("789"), data)

	// Exhausted: nil triple.
	data, timedOut, err = r.ReadN(1)
	require.NoError(t, err)
	require.False(t, timedOut)
	require.Nil(t, data)
}

func TestReadN_ZeroNeverTouchesDescriptor(t *testing.T) {
	// A mock with no expectations fails the test on any syscall.
	r, _ := newMockReader(t)

	data, timedOut, err := r.ReadN(0)
	require.NoError(t, err)
	require.False(t, timedOut)
	require.Nil(t, data)
}

func TestReadN_NegativeCount(t *testing.T) {
	r := fileReader(t, []byte("abc"))

	_, timedOut, err := r.ReadN(-1)
	require.ErrorIs(t, err, ErrNegativeCount)
	require.True(t, IsUsageError(err))
	require.False(t, timedOut)

	// The stream is untouched by the usage error.
	data, _, err := r.ReadN(3)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), data)
}

func TestReadN_DrainOnEOF(t *testing.T) {
	r, pw := pipeReader(t)

	_, err := pw.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, pw.Close())

	// More requested than the stream holds: residual bytes come back as a
	// final short read, not an error.
	data, timedOut, err := r.ReadN(10)
	require.NoError(t, err)
	require.False(t, timedOut)
	require.Equal(t, []byte("abc"), data)

	// Next call reports exhaustion.
	data, timedOut, err = r.ReadN(1)
	require.NoError(t, err)
	require.False(t, timedOut)
	require.Nil(t, data)
}

func TestReadAll(t *testing.T) {
	content := bytes.Repeat([]byte("all work and no play "), 4096)
	r := fileReader(t, content)

	data, timedOut, err := r.ReadAll()
	require.NoError(t, err)
	require.False(t, timedOut)
	require.Equal(t, content, data)

	// Exhausted stream: nil triple, not an empty slice.
	data, timedOut, err = r.ReadAll()
	require.NoError(t, err)
	require.False(t, timedOut)
	require.Nil(t, data)
}

func TestReadAll_StartsFromBuffer(t *testing.T) {
	r := fileReader(t, []byte("head and tail"))

	data, _, err := r.ReadN(5)
	require.NoError(t, err)
	require.Equal(t, []byte("head "), data)

	data, _, err = r.ReadAll()
	require.NoError(t, err)
	require.Equal(t, []byte("and tail"), data)
}

func TestReadLine_DelimiterMatrix(t *testing.T) {
	const input = "line1\r\nline2\nline3"

	t.Run("without EOL", func(t *testing.T) {
		r := fileReader(t, []byte(input))

		for _, want := range []string{"line1", "line2", "line3"} {
			data, timedOut, err := r.ReadLine(false)
			require.NoError(t, err)
			require.False(t, timedOut)
			require.Equal(t, want, string(data))
		}

		data, _, err := r.ReadLine(false)
		require.NoError(t, err)
		require.Nil(t, data)
	})

	t.Run("with EOL", func(t *testing.T) {
		r := fileReader(t, []byte(input))

		for _, want := range []string{"line1\r\n", "line2\n", "line3"} {
			data, timedOut, err := r.ReadLine(true)
			require.NoError(t, err)
			require.False(t, timedOut)
			require.Equal(t, want, string(data))
		}

		data, _, err := r.ReadLine(true)
		require.NoError(t, err)
		require.Nil(t, data)
	})
}

func TestReadLine_EmptyLines(t *testing.T) {
	r := fileReader(t, []byte("a\n\nb\n"))

	data, _, err := r.ReadLine(false)
	require.NoError(t, err)
	require.Equal(t, []byte("a"), data)

	// Empty line: empty but non-nil, distinct from end of stream.
	data, _, err = r.ReadLine(false)
	require.NoError(t, err)
	require.NotNil(t, data)
	require.Len(t, data, 0)

	data, _, err = r.ReadLine(false)
	require.NoError(t, err)
	require.Equal(t, []byte("b"), data)

	data, _, err = r.ReadLine(false)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestReadLine_LeavesRemainderBuffered(t *testing.T) {
	r, pw := pipeReader(t)

	// Everything arrives in a single write; only the first line leaves the
	// buffer.
	_, err := pw.Write([]byte("first\nsecond\n"))
	require.NoError(t, err)

	data, _, err := r.ReadLine(false)
	require.NoError(t, err)
	require.Equal(t, []byte("first"), data)

	data, _, err = r.ReadLine(false)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), data)
}

func TestRead_FormatDispatch(t *testing.T) {
	r := fileReader(t, []byte("one\ntwo\n"))

	data, _, err := r.Read(Line)
	require.NoError(t, err)
	require.Equal(t, []byte("one"), data)

	data, _, err = r.Read(LineWithEOL)
	require.NoError(t, err)
	require.Equal(t, []byte("two\n"), data)

	_, timedOut, err := r.Read(Format(99))
	require.ErrorIs(t, err, ErrInvalidFormat)
	require.True(t, IsUsageError(err))
	require.False(t, timedOut)
}

func TestLines(t *testing.T) {
	r := fileReader(t, []byte("a\nb\nc"))

	var got []string
	for line, err := range r.Lines() {
		require.NoError(t, err)
		got = append(got, string(line))
	}
	require.Equal(t, []string{"a", "b", "c"}, got)

	// Iteration is not restartable.
	count := 0
	for range r.Lines() {
		count++
	}
	require.Zero(t, count)
}

func TestLines_SurfacesTimeout(t *testing.T) {
	r, pw := pipeReader(t, WithTimeout(20*time.Millisecond))

	_, err := pw.Write([]byte("complete\nincomp"))
	require.NoError(t, err)

	var lines []string
	var lastErr error
	for line, err := range r.Lines() {
		if err != nil {
			lastErr = err
			continue
		}
		lines = append(lines, string(line))
	}

	// The second line never completes: the iterator must end with
	// ErrTimeout, not pretend the stream terminated.
	require.Equal(t, []string{"complete"}, lines)
	require.ErrorIs(t, lastErr, ErrTimeout)
	require.True(t, IsTimeout(lastErr))
}

func TestTimeout_BlocksThenRecovers(t *testing.T) {
	const timeout = 50 * time.Millisecond
	r, pw := pipeReader(t, WithTimeout(timeout))

	start := time.Now()
	data, timedOut, err := r.ReadN(5)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.True(t, timedOut)
	require.Nil(t, data)
	require.GreaterOrEqual(t, elapsed, timeout-5*time.Millisecond)

	// Once data shows up the same call succeeds with no timeout flag.
	_, err = pw.Write([]byte("hello"))
	require.NoError(t, err)

	data, timedOut, err = r.ReadN(5)
	require.NoError(t, err)
	require.False(t, timedOut)
	require.Equal(t, []byte("hello"), data)
}

func TestTimeout_KeepsPartialBuffer(t *testing.T) {
	r, pw := pipeReader(t, WithTimeout(20*time.Millisecond))

	_, err := pw.Write([]byte("par"))
	require.NoError(t, err)

	// Not enough bytes: times out, but the partial bytes stay buffered.
	data, timedOut, err := r.ReadN(7)
	require.NoError(t, err)
	require.True(t, timedOut)
	require.Nil(t, data)

	_, err = pw.Write([]byte("tial"))
	require.NoError(t, err)

	data, timedOut, err = r.ReadN(7)
	require.NoError(t, err)
	require.False(t, timedOut)
	require.Equal(t, []byte("partial"), data)
}

func TestSetTimeout(t *testing.T) {
	r, pw := pipeReader(t)

	require.NoError(t, r.SetTimeout(10*time.Millisecond))
	_, timedOut, err := r.ReadN(1)
	require.NoError(t, err)
	require.True(t, timedOut)

	err = r.SetTimeout(-5 * time.Second)
	require.ErrorIs(t, err, ErrInvalidTimeout)
	require.True(t, IsUsageError(err))

	// NoTimeout is accepted.
	require.NoError(t, r.SetTimeout(NoTimeout))

	_, err = pw.Write([]byte("x"))
	require.NoError(t, err)
	data, _, err := r.ReadN(1)
	require.NoError(t, err)
	require.Equal(t, []byte("x"), data)
}

func TestClose_Idempotent(t *testing.T) {
	r := fileReader(t, []byte("data"))

	require.NoError(t, r.Close())
	require.Equal(t, -1, r.Fd())

	// Second close is a successful no-op.
	require.NoError(t, r.Close())

	// Every read shape fails fast after close.
	_, _, err := r.ReadN(1)
	require.ErrorIs(t, err, ErrClosed)
	_, _, err = r.ReadAll()
	require.ErrorIs(t, err, ErrClosed)
	_, _, err = r.ReadLine(false)
	require.ErrorIs(t, err, ErrClosed)
	_, _, err = r.Read(All)
	require.ErrorIs(t, err, ErrClosed)
}

func TestClose_BorrowedDescriptorStaysOpen(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()

	r, err := NewFromFD(int(pr.Fd()), WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = pw.Write([]byte("before"))
	require.NoError(t, err)
	data, _, err := r.ReadN(6)
	require.NoError(t, err)
	require.Equal(t, []byte("before"), data)

	require.NoError(t, r.Close())

	// The descriptor itself must still be usable by its real owner.
	_, err = pw.Write([]byte("after"))
	require.NoError(t, err)
	buf := make([]byte, 5)
	n, err := pr.Read(buf)
	require.NoError(t, err)
	require.Equal(t, []byte("after"), buf[:n])
}

func TestDup_IndependentOfOriginal(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()

	r, err := Dup(int(pr.Fd()), WithTimeout(time.Second))
	require.NoError(t, err)
	require.NotEqual(t, int(pr.Fd()), r.Fd())

	_, err = pw.Write([]byte("shared"))
	require.NoError(t, err)

	data, _, err := r.ReadN(6)
	require.NoError(t, err)
	require.Equal(t, []byte("shared"), data)

	// Closing the duplicate leaves the original descriptor open.
	require.NoError(t, r.Close())
	_, err = pw.Write([]byte("x"))
	require.NoError(t, err)
	buf := make([]byte, 1)
	_, err = pr.Read(buf)
	require.NoError(t, err)
}

func TestOpen_NotFound(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	require.Nil(t, r)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRoundTrip_MixedReadSizes(t *testing.T) {
	content := make([]byte, 10000)
	for i := range content {
		content[i] = byte('a' + i%23)
	}
	r := fileReader(t, content, WithBufferSize(512))

	sizes := []int{1, 7, 64, 3, 511, 512, 513, 2048, 5}
	var got []byte
	for i := 0; ; i++ {
		data, timedOut, err := r.ReadN(sizes[i%len(sizes)])
		require.NoError(t, err)
		require.False(t, timedOut)
		if data == nil {
			break
		}
		got = append(got, data...)
	}

	// No duplication, no loss, no reordering.
	require.Equal(t, content, got)
}

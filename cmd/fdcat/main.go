// Command fdcat reads files (or stdin) through the fdio package and writes
// their contents to stdout. It exists mostly as a working example: per
// attempt read timeouts, retry-on-timeout, line iteration, and descriptor
// lifecycle are all exercised here.
//
// Usage:
//
//	fdcat [-t timeout] [-r attempts] [-l] [-k] [file ...]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/javi11/fdio"
)

func main() {
	var (
		timeout  = flag.Duration("t", time.Duration(0), "per read attempt timeout (0 waits forever)")
		attempts = flag.Uint("r", 1, "attempts per read before a timeout is reported")
		lineMode = flag.Bool("l", false, "read and emit line by line")
		keepEOL  = flag.Bool("k", false, "keep end-of-line bytes in line mode (implies -l)")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	rt := fdio.NoTimeout
	if *timeout > 0 {
		rt = *timeout
	}

	opts := []fdio.Option{
		fdio.WithTimeout(rt),
		fdio.WithLogger(log),
	}

	if err := run(os.Stdout, log, flag.Args(), opts, *lineMode || *keepEOL, *keepEOL, *attempts); err != nil {
		log.Error("fdcat failed", "error", err)
		os.Exit(1)
	}
}

func run(w io.Writer, log *slog.Logger, paths []string, opts []fdio.Option, lineMode, keepEOL bool, attempts uint) error {
	if len(paths) == 0 {
		r, err := fdio.NewFromFD(int(os.Stdin.Fd()), opts...)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := r.Close(); cerr != nil {
				log.Warn("close stdin reader", "error", cerr)
			}
		}()

		return cat(w, r, lineMode, keepEOL, attempts)
	}

	if lineMode {
		// Line mode streams, so files are handled one after another.
		for _, path := range paths {
			r, err := fdio.Open(path, opts...)
			if err != nil {
				return err
			}
			err = cat(w, r, true, keepEOL, attempts)
			if cerr := r.Close(); cerr != nil {
				log.Warn("close reader", "path", path, "error", cerr)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	}

	// Whole-file mode reads every file concurrently, then emits the
	// contents in argument order.
	readers := make([]*fdio.Reader, len(paths))
	contents := make([][]byte, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			r, err := fdio.Open(path, opts...)
			if err != nil {
				return err
			}
			readers[i] = r

			data, err := fdio.ReadRetry(r, fdio.All, attempts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			contents[i] = data
			return nil
		})
	}

	err := g.Wait()
	if cerr := fdio.CloseAll(readers...); cerr != nil {
		log.Warn("close readers", "error", cerr)
	}
	if err != nil {
		return err
	}

	for _, data := range contents {
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

func cat(w io.Writer, r *fdio.Reader, lineMode, keepEOL bool, attempts uint) error {
	if !lineMode {
		data, err := fdio.ReadRetry(r, fdio.All, attempts)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	format := fdio.LineWithEOL
	if !keepEOL {
		format = fdio.Line
	}

	for {
		line, err := fdio.ReadRetry(r, format, attempts)
		if err != nil {
			return err
		}
		if line == nil {
			return nil
		}
		if !keepEOL {
			line = append(line, '\n')
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
}

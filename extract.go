// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package ixf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Extract writes selected entries from the container to dstDir. Output
// filenames follow the fixed TGI naming convention, so no path traversal is
// possible from container-supplied data; extraction is parallelized by
// MaxWorkers. A failed entry does not stop the others: every selected entry
// is attempted, and the first error received from the workers is returned
// alongside statistics for the whole pass. If ctx is cancelled while entries
// are being queued, it returns ctx.Err() with empty statistics.
func (r *Reader) Extract(ctx context.Context, dstDir string, opts ExtractOptions) (ExtractStats, error) {
	start := time.Now()
	opts.applyDefaults()

	if r == nil || r.ra == nil {
		return ExtractStats{}, ErrNilReader
	}

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return ExtractStats{}, ErrClosed
	}

	entries := r.entries
	if opts.Entries != nil {
		entries = opts.Entries
	}
	if len(entries) == 0 {
		return ExtractStats{Duration: time.Since(start)}, nil
	}

	dstRootAbs, err := filepath.Abs(dstDir)
	if err != nil {
		return ExtractStats{}, fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(dstRootAbs, 0o750); err != nil {
		return ExtractStats{}, fmt.Errorf("create output dir: %w", err)
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers < 1 {
		workers = 1
	}

	taskCh := make(chan Entry, len(entries))
	errCh := make(chan error, len(entries))
	var extracted, decompressed int64
	var bytesWritten int64

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Go(func() {
			for entry := range taskCh {
				written, wasCompressed, err := r.extractOneEntry(dstRootAbs, entry, opts)
				if err == nil {
					atomic.AddInt64(&extracted, 1)
					atomic.AddInt64(&bytesWritten, written)
					if wasCompressed {
						atomic.AddInt64(&decompressed, 1)
					}
				}
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		})
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			close(taskCh)
			wg.Wait()
			return ExtractStats{}, ctx.Err()
		case taskCh <- entry:
		}
	}

	close(taskCh)
	wg.Wait()
	close(errCh)

	var first error
	for err := range errCh {
		if err != nil && first == nil {
			first = err
		}
	}

	stats := ExtractStats{
		ExtractedEntries:    int(extracted),
		DecompressedEntries: int(decompressed),
		BytesWritten:        bytesWritten,
		SkippedEntries:      len(entries) - int(extracted),
		Duration:            time.Since(start),
	}
	return stats, first
}

// extractOneEntry writes one entry's resolved payload to its canonical
// output path and returns bytes written plus whether QFS decode ran.
func (r *Reader) extractOneEntry(dstRootAbs string, entry Entry, opts ExtractOptions) (int64, bool, error) {
	data, decoded, err := r.ReadEntry(entry)
	if err != nil {
		return 0, false, fmt.Errorf("TGI %08X/%08X/%08X: %w", uint32(entry.Type), entry.Group, entry.Instance, err)
	}

	outPath, err := resolveOutputPath(dstRootAbs, OutputFileName(entry))
	if err != nil {
		return 0, false, err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	file, err := os.OpenFile(outPath, flags, 0o600)
	if err != nil {
		return 0, false, fmt.Errorf("open %s: %w", outPath, err)
	}

	n, writeErr := file.Write(data)
	closeErr := file.Close()
	if writeErr != nil {
		return int64(n), decoded, fmt.Errorf("write %s: %w", outPath, writeErr)
	}
	if closeErr != nil {
		return int64(n), decoded, fmt.Errorf("close %s: %w", outPath, closeErr)
	}

	if opts.OnEntryDone != nil {
		opts.OnEntryDone(entry, int64(n), outPath)
	}

	return int64(n), decoded, nil
}

// resolveOutputPath joins a synthesized output name onto dstRootAbs and
// verifies the result cannot escape it. Output names are always generated
// by OutputFileName from fixed hex digits and a table-driven extension, so
// this never rejects a legitimate call; it guards against a future naming
// bug the same way the format's TGI identity is otherwise trusted blindly.
func resolveOutputPath(dstRootAbs, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtractPath, name)
	}

	outPath := filepath.Join(dstRootAbs, name)
	rel, err := filepath.Rel(dstRootAbs, outPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrExtractPathOutsideRoot, outPath)
	}

	return outPath, nil
}

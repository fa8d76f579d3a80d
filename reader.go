// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package ixf

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"
)

// ReaderOptions configures Open behavior.
type ReaderOptions struct{}

// applyDefaults fills zero-valued reader options with defaults. Reserved for
// future tuning knobs; currently a no-op.
func (opts *ReaderOptions) applyDefaults() {}

// Reader provides read-only access to a parsed container file.
type Reader struct {
	ra      io.ReaderAt
	file    *os.File
	entries []Entry
	size    int64

	mu     sync.Mutex
	closed bool
}

// Open opens a container by path and parses its directory.
func Open(path string) (*Reader, error) {
	return OpenWithOptions(path, ReaderOptions{})
}

// OpenWithOptions opens a container by path and parses its directory using explicit reader options.
func OpenWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	opts.applyDefaults()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	r, err := NewReaderFromReaderAtWithOptions(f, fi.Size(), opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	r.file = f
	r.ra = f
	r.size = fi.Size()
	return r, nil
}

// NewReaderFromReaderAt parses a container from an existing ReaderAt and known size.
func NewReaderFromReaderAt(ra io.ReaderAt, size int64) (*Reader, error) {
	return NewReaderFromReaderAtWithOptions(ra, size, ReaderOptions{})
}

// NewReaderFromReaderAtWithOptions parses a container from an existing ReaderAt and known size using explicit reader options.
func NewReaderFromReaderAtWithOptions(ra io.ReaderAt, size int64, opts ReaderOptions) (*Reader, error) {
	opts.applyDefaults()

	if ra == nil {
		return nil, ErrNilReader
	}

	br := newByteReader(ra, 0, size)
	defer br.release()

	entries, err := parseDirectory(br, size)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := validateEntryBounds(e, size); err != nil {
			return nil, err
		}
	}

	return &Reader{ra: ra, size: size, entries: entries}, nil
}

// Entries returns a copy of parsed live entries, in on-disk order.
func (r *Reader) Entries() []Entry {
	if r == nil {
		return nil
	}
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Close closes the underlying file if the reader owns one.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadEntry reads one entry's raw payload bytes and resolves them per the
// dispatch precedence, returning the final bytes to write and whether a QFS
// decode ran. Each call opens its own byteReader over the shared io.ReaderAt,
// so concurrent calls against one Reader (as extract's worker pool performs)
// never share seek/buffer state.
func (r *Reader) ReadEntry(e Entry) ([]byte, bool, error) {
	if r == nil || r.ra == nil {
		return nil, false, ErrNilReader
	}

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return nil, false, ErrClosed
	}

	if err := validateEntryBounds(e, r.size); err != nil {
		return nil, false, err
	}
	if e.Length > math.MaxInt32 {
		return nil, false, fmt.Errorf("%w: entry length %d", ErrSizeOverflow, e.Length)
	}

	payload := make([]byte, e.Length)
	if e.Length > 0 {
		br := newByteReader(r.ra, 0, r.size)
		defer br.release()

		if err := br.SeekTo(int64(e.Offset)); err != nil {
			return nil, false, fmt.Errorf("seek entry payload: %w", err)
		}
		if err := br.ReadExact(payload); err != nil {
			return nil, false, fmt.Errorf("read entry payload at offset %d: %w", br.Offset(), err)
		}
	}

	return resolvePayload(e, payload)
}

// FindEntry returns the live entry matching the given TGI identity, or
// ErrEntryNotFound if no parsed entry matches.
func (r *Reader) FindEntry(t ResourceType, group, instance uint32) (Entry, error) {
	if r == nil {
		return Entry{}, ErrNilReader
	}
	for _, e := range r.entries {
		if e.Type == t && e.Group == group && e.Instance == instance {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: TGI %08X/%08X/%08X", ErrEntryNotFound, uint32(t), group, instance)
}

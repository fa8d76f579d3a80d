// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package ixf

import (
	"fmt"
	"io"
	"os"
)

// ListEntries opens a container and returns its live entries without reading payloads.
func ListEntries(path string) ([]Entry, error) {
	f, size, err := openFileWithSize(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ListEntriesFromReaderAt(f, size)
}

// ListEntriesFromReaderAt parses entries from a random-access source without reading payloads.
func ListEntriesFromReaderAt(ra io.ReaderAt, size int64) ([]Entry, error) {
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

	return entries, nil
}

// openFileWithSize opens a file and returns a handle plus current size.
func openFileWithSize(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open container: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat: %w", err)
	}

	return f, fi.Size(), nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package ixf

import "fmt"

// parseDirectory validates the container signature and walks the inline
// sequence of fixed 20-byte index records that follows it, returning live
// entries in on-disk order. Deleted slots are dropped silently; the
// terminator ends the walk. A source shorter than minValidContainerSize is
// treated as an empty, valid container.
func parseDirectory(br *byteReader, size int64) ([]Entry, error) {
	if size < minValidContainerSize {
		return nil, nil
	}

	sig, err := br.ReadUint32LE()
	if err != nil {
		return nil, err
	}
	if sig != ContainerSignature {
		return nil, ErrBadSignature
	}

	var entries []Entry
	for {
		e, err := readEntryRecord(br)
		if err != nil {
			return nil, err
		}

		if e.isTerminator() {
			return entries, nil
		}
		if e.isDeleted() {
			continue
		}

		entries = append(entries, e)
	}
}

// readEntryRecord reads one 20-byte index record: Group, Instance, Type, Offset, Length.
func readEntryRecord(br *byteReader) (Entry, error) {
	group, err := br.ReadUint32LE()
	if err != nil {
		return Entry{}, err
	}
	instance, err := br.ReadUint32LE()
	if err != nil {
		return Entry{}, err
	}
	typ, err := br.ReadUint32LE()
	if err != nil {
		return Entry{}, err
	}
	offset, err := br.ReadUint32LE()
	if err != nil {
		return Entry{}, err
	}
	length, err := br.ReadUint32LE()
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Group:    group,
		Instance: instance,
		Type:     ResourceType(typ),
		Offset:   offset,
		Length:   length,
	}, nil
}

// validateEntryBounds reports whether an entry's payload range fits within size.
func validateEntryBounds(e Entry, size int64) error {
	start := int64(e.Offset)
	end := start + int64(e.Length)
	if start < 0 || end < start || end > size {
		return fmt.Errorf("%w: TGI %08X/%08X/%08X", ErrInvalidEntryOffset, uint32(e.Type), e.Group, e.Instance)
	}
	return nil
}

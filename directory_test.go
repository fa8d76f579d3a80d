// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package ixf

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func appendEntry(buf []byte, e Entry) []byte {
	var rec [20]byte
	binary.LittleEndian.PutUint32(rec[0:4], e.Group)
	binary.LittleEndian.PutUint32(rec[4:8], e.Instance)
	binary.LittleEndian.PutUint32(rec[8:12], uint32(e.Type))
	binary.LittleEndian.PutUint32(rec[12:16], e.Offset)
	binary.LittleEndian.PutUint32(rec[16:20], e.Length)
	return append(buf, rec[:]...)
}

func containerHeader() []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, ContainerSignature)
	return buf
}

var terminatorEntry = Entry{}
var deletedEntry = Entry{Group: 0xFFFFFFFF, Instance: 0xFFFFFFFF, Type: 0xFFFFFFFF, Offset: 0xFFFFFFFF, Length: 0xFFFFFFFF}

func TestParseDirectoryTooShortIsEmpty(t *testing.T) {
	for _, size := range []int{0, 4, 23} {
		data := make([]byte, size)
		br := newByteReader(bytes.NewReader(data), 0, int64(size))
		entries, err := parseDirectory(br, int64(size))
		br.release()
		if err != nil {
			t.Fatalf("size=%d: %v", size, err)
		}
		if len(entries) != 0 {
			t.Fatalf("size=%d: got %d entries, want 0", size, len(entries))
		}
	}
}

func TestParseDirectoryExactly24BytesIsEmpty(t *testing.T) {
	data := containerHeader()
	data = appendEntry(data, terminatorEntry)
	if len(data) != 24 {
		t.Fatalf("test setup: len=%d", len(data))
	}

	br := newByteReader(bytes.NewReader(data), 0, int64(len(data)))
	defer br.release()
	entries, err := parseDirectory(br, int64(len(data)))
	if err != nil {
		t.Fatalf("parseDirectory: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}

func TestParseDirectoryBadSignature(t *testing.T) {
	data := make([]byte, 24)
	br := newByteReader(bytes.NewReader(data), 0, int64(len(data)))
	defer br.release()

	_, err := parseDirectory(br, int64(len(data)))
	if err != ErrBadSignature {
		t.Fatalf("got %v, want ErrBadSignature", err)
	}
}

func TestParseDirectorySkipsDeletedBetweenLiveEntries(t *testing.T) {
	live1 := Entry{Group: 1, Instance: 1, Type: String, Offset: 24, Length: 4}
	live2 := Entry{Group: 2, Instance: 2, Type: String, Offset: 28, Length: 4}

	data := containerHeader()
	data = appendEntry(data, live1)
	data = appendEntry(data, deletedEntry)
	data = appendEntry(data, live2)
	data = appendEntry(data, terminatorEntry)

	br := newByteReader(bytes.NewReader(data), 0, int64(len(data)))
	defer br.release()
	entries, err := parseDirectory(br, int64(len(data)))
	if err != nil {
		t.Fatalf("parseDirectory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0] != live1 || entries[1] != live2 {
		t.Fatalf("got %+v, want [%+v %+v]", entries, live1, live2)
	}
}

func TestParseDirectoryMissingTerminatorFailsAtEOF(t *testing.T) {
	live := Entry{Group: 1, Instance: 1, Type: String, Offset: 24, Length: 4}
	data := containerHeader()
	data = appendEntry(data, live) // no terminator

	br := newByteReader(bytes.NewReader(data), 0, int64(len(data)))
	defer br.release()
	_, err := parseDirectory(br, int64(len(data)))
	if err != ErrUnexpectedEOF {
		t.Fatalf("got %v, want ErrUnexpectedEOF", err)
	}
}

func TestParseDirectoryPreservesFileOrder(t *testing.T) {
	entries := []Entry{
		{Group: 3, Instance: 1, Type: String, Offset: 100, Length: 1},
		{Group: 1, Instance: 5, Type: String, Offset: 200, Length: 1},
		{Group: 9, Instance: 0, Type: String, Offset: 300, Length: 1},
	}
	data := containerHeader()
	for _, e := range entries {
		data = appendEntry(data, e)
	}
	data = appendEntry(data, terminatorEntry)

	br := newByteReader(bytes.NewReader(data), 0, int64(len(data)))
	defer br.release()
	got, err := parseDirectory(br, int64(len(data)))
	if err != nil {
		t.Fatalf("parseDirectory: %v", err)
	}
	for i, e := range entries {
		if got[i] != e {
			t.Fatalf("entry %d: got %+v, want %+v", i, got[i], e)
		}
	}
}

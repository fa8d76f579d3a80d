// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package ixf

import (
	"bytes"
	"testing"
)

func TestByteReaderReadUint32LE(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00, 0xEF, 0xBE, 0xAD, 0xDE}
	br := newByteReader(bytes.NewReader(data), 0, int64(len(data)))
	defer br.release()

	v, err := br.ReadUint32LE()
	if err != nil || v != 1 {
		t.Fatalf("v=%d err=%v", v, err)
	}
	v, err = br.ReadUint32LE()
	if err != nil || v != 0xDEADBEEF {
		t.Fatalf("v=%08X err=%v", v, err)
	}
}

func TestByteReaderReadExactShortFails(t *testing.T) {
	br := newByteReader(bytes.NewReader([]byte{0x01, 0x02}), 0, 2)
	defer br.release()

	var buf [4]byte
	if err := br.ReadExact(buf[:]); err != ErrUnexpectedEOF {
		t.Fatalf("got %v, want ErrUnexpectedEOF", err)
	}
}

func TestByteReaderOffsetTracksReads(t *testing.T) {
	data := make([]byte, 16)
	br := newByteReader(bytes.NewReader(data), 0, int64(len(data)))
	defer br.release()

	if br.Offset() != 0 {
		t.Fatalf("initial offset = %d", br.Offset())
	}
	var buf [5]byte
	if err := br.ReadExact(buf[:]); err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if br.Offset() != 5 {
		t.Fatalf("offset = %d, want 5", br.Offset())
	}
}

func TestByteReaderSeekWithinBuffer(t *testing.T) {
	data := []byte("0123456789")
	br := newByteReader(bytes.NewReader(data), 0, int64(len(data)))
	defer br.release()

	var buf [2]byte
	if err := br.ReadExact(buf[:]); err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if err := br.SeekTo(5); err != nil {
		t.Fatalf("SeekTo: %v", err)
	}
	if err := br.ReadExact(buf[:]); err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if string(buf[:]) != "56" {
		t.Fatalf("got %q, want \"56\"", buf[:])
	}
}

func TestByteReaderSeekPastEndFails(t *testing.T) {
	br := newByteReader(bytes.NewReader([]byte("abc")), 0, 3)
	defer br.release()

	if err := br.SeekTo(10); err == nil {
		t.Fatalf("expected error seeking past end")
	}
}

func TestByteReaderClosedFailsFast(t *testing.T) {
	br := newByteReader(bytes.NewReader([]byte("abc")), 0, 3)
	br.release()

	var buf [1]byte
	if err := br.ReadExact(buf[:]); err != ErrClosed {
		t.Fatalf("got %v, want ErrClosed", err)
	}
}

func TestByteReaderBaseOffset(t *testing.T) {
	data := []byte("0123456789")
	br := newByteReader(bytes.NewReader(data), 4, 6)
	defer br.release()

	var buf [3]byte
	if err := br.ReadExact(buf[:]); err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if string(buf[:]) != "456" {
		t.Fatalf("got %q, want \"456\"", buf[:])
	}
}

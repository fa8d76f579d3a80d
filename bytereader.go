// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package ixf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

// byteReaderBufSize bounds the internal read-ahead buffer used by byteReader.
const byteReaderBufSize = 4096

// byteReaderPool reuses buffered readers across directory and payload reads.
var byteReaderPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(new(io.SectionReader), byteReaderBufSize)
	},
}

// byteReader is a little-endian, virtual-offset-aware cursor over a random-access
// source. It buffers sequential reads and keeps its buffer on a forward seek
// within the buffered lookahead; a backward seek, even to bytes still held
// in the buffer, reopens the section and discards the buffer.
type byteReader struct {
	sr     *io.SectionReader
	br     *bufio.Reader
	base   int64 // absolute file offset the section reader was opened at
	pos    int64 // virtual offset, relative to base, of the next unread byte
	limit  int64 // section length
	closed bool
}

// newByteReader opens a bounded little-endian cursor over ra starting at base,
// covering at most length bytes. A negative length leaves nothing readable.
func newByteReader(ra io.ReaderAt, base int64, length int64) *byteReader {
	sr := io.NewSectionReader(ra, base, length)
	br, _ := byteReaderPool.Get().(*bufio.Reader)
	br.Reset(sr)

	return &byteReader{sr: sr, br: br, base: base, limit: length}
}

// release returns the internal buffered reader to the pool. The byteReader
// must not be used afterward.
func (b *byteReader) release() {
	if b.closed {
		return
	}
	b.closed = true
	byteReaderPool.Put(b.br)
}

// Offset reports the reader's current virtual position relative to base.
func (b *byteReader) Offset() int64 {
	return b.pos
}

// SeekTo repositions the cursor to an absolute virtual offset. A forward
// seek within the buffered lookahead is satisfied by discarding buffered
// bytes rather than reopening the section, so short forward jumps stay
// cheap. A backward seek always reopens a fresh section at the new offset
// and discards the buffer; every caller in this package opens a byteReader
// and seeks forward exactly once before reading, so that path exists for
// correctness but is not on the hot path.
func (b *byteReader) SeekTo(offset int64) error {
	if b.closed {
		return ErrClosed
	}
	if offset < 0 || offset > b.limit {
		return fmt.Errorf("%w: offset %d", ErrUnexpectedEOF, offset)
	}

	if offset >= b.pos {
		delta := offset - b.pos
		if n, err := b.br.Discard(int(delta)); err == nil && int64(n) == delta {
			b.pos = offset
			return nil
		}
	}

	if _, err := b.sr.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	b.br.Reset(b.sr)
	b.pos = offset
	return nil
}

// ReadExact fills buf entirely or returns ErrUnexpectedEOF.
func (b *byteReader) ReadExact(buf []byte) error {
	if b.closed {
		return ErrClosed
	}
	n, err := io.ReadFull(b.br, buf)
	b.pos += int64(n)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return ErrUnexpectedEOF
		}
		return fmt.Errorf("read: %w", err)
	}
	return nil
}

// ReadUint32LE reads one little-endian uint32.
func (b *byteReader) ReadUint32LE() (uint32, error) {
	var buf [4]byte
	if err := b.ReadExact(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}


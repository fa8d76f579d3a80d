// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package qfs

// Header describes a parsed QFS/RefPack stream header.
type Header struct {
	// HeaderStart is the byte offset (0 or 4) where the two-byte signature begins.
	HeaderStart int
	// DataStart is the byte offset of the first opcode.
	DataStart int
	// UncompressedSize is the declared size of the decoded output.
	UncompressedSize int
	// CompressedSizePresent reports whether a compressed-size field followed the signature.
	CompressedSizePresent bool
	// LargeSizeFields reports whether size fields are 4-byte big-endian (vs 3-byte).
	LargeSizeFields bool
	// Unknown1 preserves the reserved 0x40 flag bit; never acted upon.
	Unknown1 bool
}

// signatureMarkerMask isolates the two marker bits (0x10) from CompressedSizePresent (0x01),
// Unknown1 (0x40), and LargeSizeFields (0x80).
const signatureMarkerMask = 0x3E

const (
	flagCompressedSizePresent = 0x01
	flagUnknown1              = 0x40
	flagLargeSizeFields       = 0x80
	signatureSecondByte       = 0xFB
)

// isSignatureAt reports whether a valid QFS signature byte pair starts at off.
func isSignatureAt(input []byte, off int) bool {
	if off+1 >= len(input) {
		return false
	}
	return input[off]&signatureMarkerMask == 0x10 && input[off+1] == signatureSecondByte
}

// ParseHeader locates and decodes a QFS header at offset 0 or offset 4.
func ParseHeader(input []byte) (Header, error) {
	var headerStart int
	switch {
	case isSignatureAt(input, 0):
		headerStart = 0
	case isSignatureAt(input, 4):
		headerStart = 4
	default:
		return Header{}, ErrUnsupportedFormat
	}

	flags := input[headerStart]
	h := Header{
		HeaderStart:           headerStart,
		CompressedSizePresent: flags&flagCompressedSizePresent != 0,
		Unknown1:              flags&flagUnknown1 != 0,
		LargeSizeFields:       flags&flagLargeSizeFields != 0,
	}

	cursor := headerStart + 2
	if h.CompressedSizePresent {
		if h.LargeSizeFields {
			cursor += 4
		} else {
			cursor += 3
		}
	}

	sizeFieldLen := 3
	if h.LargeSizeFields {
		sizeFieldLen = 4
	}
	if cursor+sizeFieldLen > len(input) {
		return Header{}, ErrInputTooShort
	}

	size := 0
	for i := 0; i < sizeFieldLen; i++ {
		size = (size << 8) | int(input[cursor+i])
	}
	cursor += sizeFieldLen

	h.DataStart = cursor
	h.UncompressedSize = size
	return h, nil
}

// UncompressedSize parses just enough of the header to report the declared output size.
func UncompressedSize(input []byte) (int, error) {
	h, err := ParseHeader(input)
	if err != nil {
		return 0, err
	}
	return h.UncompressedSize, nil
}

// Decode parses the header and decodes the full opcode stream into a freshly
// allocated buffer sized to the declared uncompressed size.
func Decode(input []byte) ([]byte, error) {
	h, err := ParseHeader(input)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, h.UncompressedSize)
	n, err := decodeOpcodes(input, h.DataStart, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// DecodeInto parses the header and decodes the opcode stream into dst, which
// must be at least as long as the declared uncompressed size. It returns the
// number of bytes actually written, which may be less than len(dst) if the
// stream under-fills its declared size (mirrored source behavior, not an error).
func DecodeInto(dst, input []byte) (int, error) {
	h, err := ParseHeader(input)
	if err != nil {
		return 0, err
	}

	if len(dst) < h.UncompressedSize {
		return 0, ErrBufferTooSmall
	}

	return decodeOpcodes(input, h.DataStart, dst[:h.UncompressedSize])
}

// decodeOpcodes runs the opcode loop described in the four-family table:
// each opcode yields (plainCount, copyCount, copyOffset), where copyOffset
// is the back-distance minus one, computed before literals are emitted.
func decodeOpcodes(input []byte, ip int, dst []byte) (int, error) {
	end := len(input)
	op := 0
	outLen := len(dst)

	for ip < end && input[ip] < 0xFC {
		plainCount, copyCount, copyOffset, opLen, err := decodeOpcode(input, ip, end)
		if err != nil {
			return 0, err
		}
		ip += opLen

		if err := emitLiterals(dst, &op, outLen, input, &ip, end, plainCount); err != nil {
			return 0, err
		}

		if copyCount > 0 {
			if err := emitCopy(dst, &op, outLen, copyCount, copyOffset); err != nil {
				return 0, err
			}
		}
	}

	if ip < end && op < outLen {
		b0 := input[ip]
		if b0 < 0xFC {
			return 0, ErrCorruptStream
		}
		ip++
		plainCount := int(b0 & 0x03)
		if err := emitLiterals(dst, &op, outLen, input, &ip, end, plainCount); err != nil {
			return 0, err
		}
	}

	return op, nil
}

// decodeOpcode decodes one opcode at ip and returns its component counts plus its byte length.
func decodeOpcode(input []byte, ip, end int) (plainCount, copyCount, copyOffset, opLen int, err error) {
	b0 := input[ip]

	switch {
	case b0 < 0x80:
		if ip+1 >= end {
			return 0, 0, 0, 0, ErrCorruptStream
		}
		b1 := input[ip+1]
		plainCount = int(b0 & 0x03)
		copyCount = int((b0&0x1C)>>2) + 3
		copyOffset = (int(b0&0x60) << 3) + int(b1) + 1
		opLen = 2

	case b0 < 0xC0:
		if ip+2 >= end {
			return 0, 0, 0, 0, ErrCorruptStream
		}
		b1, b2 := input[ip+1], input[ip+2]
		plainCount = int((b1 & 0xC0) >> 6)
		copyCount = int(b0&0x3F) + 4
		copyOffset = (int(b1&0x3F) << 8) + int(b2) + 1
		opLen = 3

	case b0 < 0xE0:
		if ip+3 >= end {
			return 0, 0, 0, 0, ErrCorruptStream
		}
		b1, b2, b3 := input[ip+1], input[ip+2], input[ip+3]
		plainCount = int(b0 & 0x03)
		copyCount = (int(b0&0x0C) << 6) + int(b3) + 5
		copyOffset = (int(b0&0x10) << 12) + (int(b1) << 8) + int(b2) + 1
		opLen = 4

	default: // 0xE0..0xFB
		plainCount = (int(b0&0x1F) << 2) + 4
		copyCount = 0
		copyOffset = 0
		opLen = 1
	}

	return plainCount, copyCount, copyOffset, opLen, nil
}

// emitLiterals copies count literal bytes from input (advancing ip) to dst (advancing op).
func emitLiterals(dst []byte, op *int, outLen int, input []byte, ip *int, end, count int) error {
	if count == 0 {
		return nil
	}
	if *ip+count > end {
		return ErrCorruptStream
	}
	if *op+count > outLen {
		return ErrCorruptStream
	}

	copy(dst[*op:*op+count], input[*ip:*ip+count])
	*op += count
	*ip += count
	return nil
}

// emitCopy copies count bytes within dst from op-offset-1, one byte at a time
// so that overlapping runs (offset < count) reproduce correctly.
func emitCopy(dst []byte, op *int, outLen, count, offset int) error {
	src := *op - offset - 1
	if src < 0 {
		return ErrCorruptStream
	}
	if *op+count > outLen {
		return ErrCorruptStream
	}

	for i := 0; i < count; i++ {
		dst[*op+i] = dst[src+i]
	}
	*op += count
	return nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package ixf

import (
	"encoding/binary"
	"fmt"

	"github.com/ixfkit/ixf/qfs"
)

// resolvePayload applies the dispatch precedence for one entry's raw payload
// bytes and returns the final bytes to write, plus whether a QFS decode ran.
//
// Precedence: SpriteImage's alpha-flag test outranks the general
// container-compressed-entry signature for that type only; every other type
// only ever sees the signature path.
func resolvePayload(e Entry, payload []byte) ([]byte, bool, error) {
	if e.Type == SpriteImage {
		if hasSpriteAlphaFlag(payload) {
			decoded, err := decodeQFSFrom(payload, containerCompressedHeaderLen)
			return decoded, true, err
		}
		return payload, false, nil
	}

	if hasContainerCompressedSignature(payload) {
		decoded, err := decodeQFSFrom(payload, containerCompressedHeaderLen)
		return decoded, true, err
	}

	if e.Type == String {
		return unwrapString(payload), false, nil
	}

	return payload, false, nil
}

// hasSpriteAlphaFlag reports whether payload carries the sprite-image alpha
// marker: length > 20 and the little-endian word at offset 4 has either
// alpha bit set.
func hasSpriteAlphaFlag(payload []byte) bool {
	if len(payload) <= containerCompressedHeaderLen {
		return false
	}
	word := binary.LittleEndian.Uint32(payload[4:8])
	return word&spriteAlphaFlagBit1 != 0 || word&spriteAlphaFlagBit2 != 0
}

// hasContainerCompressedSignature reports whether payload begins with the
// fixed 8-byte container-compressed-entry marker and is long enough for the
// 12-byte opaque header that follows it.
func hasContainerCompressedSignature(payload []byte) bool {
	if len(payload) <= containerCompressedHeaderLen {
		return false
	}
	for i, b := range containerCompressedSignature {
		if payload[i] != b {
			return false
		}
	}
	return true
}

// decodeQFSFrom runs the QFS decoder over payload[from:]. Callers only reach
// here after confirming len(payload) > from via the signature/flag checks above.
func decodeQFSFrom(payload []byte, from int) ([]byte, error) {
	out, err := qfs.Decode(payload[from:])
	if err != nil {
		return nil, fmt.Errorf("decode entry payload: %w", err)
	}
	return out, nil
}

// unwrapString strips the 4-byte little-endian length prefix used by String
// resources and returns only the declared number of following bytes.
func unwrapString(payload []byte) []byte {
	if len(payload) < 4 {
		return nil
	}
	n := int(binary.LittleEndian.Uint32(payload[0:4]))
	if n <= 0 {
		return nil
	}
	if n > len(payload)-4 {
		n = len(payload) - 4
	}
	return payload[4 : 4+n]
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

// Package qfs implements the QFS/RefPack LZ77-family compression scheme
// used by SimCity 3000's indexed container payloads and standalone
// sprite-image resources.
package qfs

import "errors"

// Sentinel errors for QFS/RefPack operations. Use errors.Is in callers.
var (
	// ErrUnsupportedFormat means no valid QFS header signature was found at offset 0 or 4.
	ErrUnsupportedFormat = errors.New("qfs: unsupported format, no header signature found")
	// ErrCorruptStream means the opcode stream asks to read or write out of bounds,
	// or a back-reference points before the start of output.
	ErrCorruptStream = errors.New("qfs: corrupt opcode stream")
	// ErrBufferTooSmall means the caller-supplied output buffer is shorter than
	// the header's declared uncompressed size.
	ErrBufferTooSmall = errors.New("qfs: output buffer smaller than declared uncompressed size")
	// ErrInputTooShort means the input is too short to contain a valid header.
	ErrInputTooShort = errors.New("qfs: input too short for header")
	// ErrInputTooLarge means the input exceeds the encoder's size budget.
	ErrInputTooLarge = errors.New("qfs: input exceeds encoder size budget")
)

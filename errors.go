// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package ixf

import "errors"

// Sentinel errors for container operations. Use errors.Is in callers.
var (
	// ErrBadSignature means the 4-byte container signature is not ContainerSignature.
	ErrBadSignature = errors.New("invalid container file: bad signature")
	// ErrUnexpectedEOF means the reader was asked for more bytes than remain.
	ErrUnexpectedEOF = errors.New("unexpected end of file")
	// ErrNilReader means the reader is nil.
	ErrNilReader = errors.New("reader is nil")
	// ErrClosed means the reader or resource is already closed.
	ErrClosed = errors.New("reader or resource already closed")
	// ErrEntryNotFound means no live entry matches the requested TGI.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrInvalidExtractPath means a synthesized output name is invalid for the extraction destination.
	ErrInvalidExtractPath = errors.New("invalid extract path")
	// ErrExtractPathOutsideRoot means resolved extraction path escapes destination root.
	ErrExtractPathOutsideRoot = errors.New("extract path escapes destination root")
	// ErrSizeOverflow means a size or offset exceeds a platform-safe bound.
	ErrSizeOverflow = errors.New("size exceeds safe bound")
	// ErrInvalidEntryOffset means an entry's payload range falls outside the container.
	ErrInvalidEntryOffset = errors.New("invalid entry offset")
	// ErrInvalidFilterPattern means one or more entry filter rules are invalid.
	ErrInvalidFilterPattern = errors.New("invalid filter pattern")
)

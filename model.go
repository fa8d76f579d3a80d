// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package ixf

import "time"

// Internal binary layout and format limits.
const (
	// signatureSize is the fixed 4-byte container magic at offset 0.
	signatureSize = 4
	// entrySize is the fixed 20-byte index record size (5 little-endian uint32 fields).
	entrySize = 20
	// minValidContainerSize is the smallest size that carries a directory at all;
	// anything smaller is an empty, valid container per the format's Linux-release convention.
	minValidContainerSize = 24
)

// ContainerSignature is the 4-byte little-endian magic at offset 0 of a valid container.
const ContainerSignature uint32 = 0x80C381D7

// ResourceType is the 32-bit type tag ("T" of TGI) stored in an index entry.
// The system recognises a closed set of named tags; any other value flows
// through as opaque binary and only affects output extension selection.
type ResourceType uint32

// Recognised resource type tags. Values are part of the wire format.
const (
	BufferResource             ResourceType = 0x62B9DA24
	BuildingOccupantAttributes ResourceType = 0x207EDC0E
	FloraOccupantAttributes    ResourceType = 0xFFD30C03
	HotKey                     ResourceType = 0xA2E3D533
	OccupantAttributes         ResourceType = 0xC179C042
	OccupantAttributeOverrides ResourceType = 0x856CD19A
	NetworkOccupantAttributes  ResourceType = 0xE223741F
	PortOccupantAttributes     ResourceType = 0x220055E1
	SerializedSC3City          ResourceType = 0x00000FA1
	SerialText                 ResourceType = 0x81F53D09
	SpriteAttributes           ResourceType = 0x6300
	SpriteAnimationAttributes  ResourceType = 0x6301
	SpriteImage                ResourceType = 0x00000000
	SpriteImageInfo            ResourceType = 0x00000001
	String                     ResourceType = 0x2026960B
)

// containerCompressedSignature marks an entry payload beginning with a
// per-entry opaque header followed by a QFS-compressed stream at offset 20.
var containerCompressedSignature = [8]byte{0x07, 0x01, 0x00, 0x00, 0x00, 0x00, 0x08, 0x00}

// Sprite-image alpha flag bits, tested against the little-endian uint32 at payload offset 4.
const (
	spriteAlphaFlagBit1 = 0x10000000
	spriteAlphaFlagBit2 = 0x00080000
)

// containerCompressedHeaderLen is the byte offset where the actual QFS stream
// begins inside a container-compressed entry or an alpha-flagged sprite image.
const containerCompressedHeaderLen = 20

// Entry describes one live index record parsed from a container's directory.
// Entries are value records; pass by value.
type Entry struct {
	// Group is the "G" of the entry's TGI identity.
	Group uint32
	// Instance is the "I" of the entry's TGI identity.
	Instance uint32
	// Type is the "T" of the entry's TGI identity; also the resource type tag.
	Type ResourceType
	// Offset is the byte offset of the entry's payload within the container.
	Offset uint32
	// Length is the byte length of the entry's stored payload.
	Length uint32
}

// isTerminator reports whether all five fields equal the all-zero terminator sentinel.
func (e Entry) isTerminator() bool {
	return e.Group == 0 && e.Instance == 0 && e.Type == 0 && e.Offset == 0 && e.Length == 0
}

// isDeleted reports whether all five fields equal the all-0xFF deleted/empty sentinel.
func (e Entry) isDeleted() bool {
	const allOnes = 0xFFFFFFFF
	return e.Group == allOnes && e.Instance == allOnes && uint32(e.Type) == allOnes &&
		e.Offset == allOnes && e.Length == allOnes
}

// ExtractOptions configures Extract behavior.
type ExtractOptions struct {
	// OnEntryDone is called after one entry is fully written to disk.
	OnEntryDone func(entry Entry, written int64, outputPath string)
	// Entries limits extraction to a caller-selected subset; nil means all live entries.
	Entries []Entry
	// MaxWorkers is the number of extraction workers (zero means GOMAXPROCS).
	MaxWorkers int
	// Overwrite allows truncating existing output files; default is create-only.
	Overwrite bool
}

// ExtractStats mirrors a bulk-extraction result summary: counts and byte
// totals for one Extract call across every entry it touched.
type ExtractStats struct {
	// ExtractedEntries is the number of entries written to disk.
	ExtractedEntries int
	// SkippedEntries is the number of selected entries that were not
	// written because their extraction failed. Entries left out of
	// ExtractOptions.Entries are not counted.
	SkippedEntries int
	// BytesWritten is the total number of output bytes written.
	BytesWritten int64
	// DecompressedEntries is the number of entries that went through the QFS decoder.
	DecompressedEntries int
	// Duration is the end-to-end extraction wall-clock duration.
	Duration time.Duration
}

// applyDefaults clamps a negative MaxWorkers to zero (GOMAXPROCS).
func (opts *ExtractOptions) applyDefaults() {
	if opts.MaxWorkers < 0 {
		opts.MaxWorkers = 0
	}
}

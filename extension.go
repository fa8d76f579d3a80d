// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package ixf

import "fmt"

// extensionByType maps a recognised resource-type tag to its output file
// extension. Unrecognised tags fall through to ".bin".
var extensionByType = map[ResourceType]string{
	BufferResource:             ".bmp",
	BuildingOccupantAttributes: ".tkb1",
	FloraOccupantAttributes:    ".tkb1",
	OccupantAttributes:         ".tkb1",
	OccupantAttributeOverrides: ".tkb1",
	NetworkOccupantAttributes:  ".tkb1",
	PortOccupantAttributes:     ".tkb1",
	HotKey:                     ".txt",
	SerialText:                 ".txt",
	String:                     ".txt",
	SpriteAttributes:           ".sat",
	SpriteAnimationAttributes:  ".saa",
	SpriteImage:                ".sim",
	SpriteImageInfo:            ".sii",
}

// extensionFor returns the output file extension for a resource-type tag.
func extensionFor(t ResourceType) string {
	if ext, ok := extensionByType[t]; ok {
		return ext
	}
	return ".bin"
}

// OutputFileName formats an entry's canonical output name:
// 0x{Type:X8}_0x{Group:X8}_0x{Instance:X8}{.ext}
func OutputFileName(e Entry) string {
	return fmt.Sprintf("0x%08X_0x%08X_0x%08X%s", uint32(e.Type), e.Group, e.Instance, extensionFor(e.Type))
}

// RecognisedContainerExtensions lists the case-insensitive input file
// extensions the bulk driver treats as candidate containers.
var RecognisedContainerExtensions = []string{".dat", ".ixf", ".bld", ".sc3", ".st3", ".sct", ".cfg"}

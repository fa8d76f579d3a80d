// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

/*
Package ixf reads the indexed database container format used by SimCity
3000 (IXF/DAT/BLD/SC3/ST3/SCT/CFG files): it parses the container's inline
directory, resolves each entry's payload according to its resource-type
tag, and hands back the final bytes for the caller to write. Compressed
payloads (either standalone sprite images or the general container-
compressed-entry convention) are transparently expanded via the qfs
sub-package's RefPack decoder.

# Reading

Open a container and enumerate or read entries:

	r, err := ixf.Open("city.dat")
	if err != nil {
	    return err
	}
	defer r.Close()
	for _, e := range r.Entries() {
	    data, _, _ := r.ReadEntry(e)
	    // use data
	}

For metadata-only scans, use the helper without creating a full reader:

	entries, err := ixf.ListEntries("city.dat")
	if err != nil {
	    return err
	}
	_ = entries

# Extracting

Extract all entries to a directory (parallel workers), each named by its
TGI identity:

	stats, err := r.Extract(ctx, "out/", ixf.ExtractOptions{MaxWorkers: 4})
	if err != nil {
	    return err
	}
	_ = stats.ExtractedEntries

# Compression

The qfs sub-package exposes the codec directly for callers that already
hold a compressed byte range:

	out, err := qfs.Decode(compressed)
	if err != nil {
	    return err
	}
	_ = out
*/
package ixf

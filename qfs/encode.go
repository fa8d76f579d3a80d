// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

package qfs

import "math/bits"

// Encoder budget constants fixed by the QFS/RefPack wire format itself, not
// tunable per instance.
const (
	minInputLen  = 10
	maxInputLen  = 16*1024*1024 - 1 // largest size the 3-byte header size field can hold
	maxMatchLen  = 1028
	niceLength   = 258
	maxLazyLen   = 258
	goodLength   = 32
	maxChainBase = 4096
	maxWindow    = 131072
	minHashSize  = 32
	maxHashSize  = 65536
	minMatchLen  = 3
)

// EncodeOptions is reserved for future tuning; currently empty, so
// DefaultEncodeOptions is the only usable value.
type EncodeOptions struct{}

// DefaultEncodeOptions returns the default (and only) encoder tuning profile.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{}
}

// Encode compresses data using a hash-chain longest-match search and emits
// the QFS/RefPack opcode stream described by the decoder's opcode table.
// It returns (nil, nil) — the Incompressible soft signal — when the input
// is shorter than minInputLen or the match search cannot beat the
// input-length-minus-one output budget. Input longer than maxInputLen fails
// with ErrInputTooLarge.
func Encode(data []byte, _ EncodeOptions) ([]byte, error) {
	if len(data) < minInputLen {
		return nil, nil
	}
	if len(data) > maxInputLen {
		return nil, ErrInputTooLarge
	}

	matches := findMatches(data)

	out := make([]byte, 0, len(data)-1)
	out = appendHeader(out, len(data))

	body, ok := emitOpcodes(out, data, len(data)-1, matches)
	if !ok {
		return nil, nil // incompressible: could not fit budget
	}

	return body, nil
}

// appendHeader appends the encoder's canonical "10 FB" + 3-byte BE size header.
func appendHeader(out []byte, size int) []byte {
	out = append(out, 0x10, 0xFB)
	out = append(out, byte(size>>16), byte(size>>8), byte(size))
	return out
}

// lzMatch is one accepted (or rejected) match candidate at a given input position.
type lzMatch struct {
	length int
	offset int // true back-distance (pos - candidatePos)
}

// findMatches runs the hash-chain + lazy-matching search over the whole
// input and returns, for every literal position not consumed by a prior
// match, either a zero-length entry (plain literal) or the accepted match
// starting there.
func findMatches(data []byte) []lzMatch {
	n := len(data)
	window := windowSizeFor(n)
	hashSize := hashSizeFor(window)
	hashShift := hashShiftFor(hashSize)
	hashMask := hashSize - 1
	windowMask := window - 1

	head := make([]int32, hashSize)
	prev := make([]int32, window)
	for i := range head {
		head[i] = -1
	}
	for i := range prev {
		prev[i] = -1
	}

	insert := func(pos int, hash int) {
		prev[pos&windowMask] = head[hash]
		head[hash] = int32(pos)
	}

	hashAt := func(pos int) int {
		h := int(data[pos])
		h = ((h << hashShift) ^ int(data[pos+1])) & hashMask
		h = ((h << hashShift) ^ int(data[pos+2])) & hashMask
		return h
	}

	bestMatchAt := func(pos int) lzMatch {
		if pos+minMatchLen > n {
			return lzMatch{}
		}
		hash := hashAt(pos)
		chainLimit := maxChainBase
		best := lzMatch{}
		cand := head[hash]
		maxLen := n - pos
		if maxLen > maxMatchLen {
			maxLen = maxMatchLen
		}

		for cand >= 0 && chainLimit > 0 {
			distance := pos - int(cand)
			if distance > window {
				break
			}

			length := matchLength(data, int(cand), pos, maxLen)
			if length > best.length && acceptableMatch(distance, length) {
				best = lzMatch{length: length, offset: distance}
				if best.length >= goodLength {
					chainLimit = maxChainBase / 4
				}
				if best.length >= niceLength {
					break
				}
			}

			cand = prev[int(cand)&windowMask]
			chainLimit--
		}

		insert(pos, hash)
		return best
	}

	matches := make([]lzMatch, n)
	pos := 0
	var pending lzMatch
	pendingPos := -1

	for pos < n {
		if pos+minMatchLen > n {
			for ; pos < n; pos++ {
				matches[pos] = lzMatch{}
			}
			break
		}

		cur := bestMatchAt(pos)

		if pendingPos >= 0 {
			if pending.length > 0 && pending.length >= cur.length {
				matches[pendingPos] = pending
				skipTo := pendingPos + pending.length
				for p := pendingPos + 1; p < skipTo && p < n; p++ {
					if p+minMatchLen <= n {
						insert(p, hashAt(p))
					}
				}
				pos = skipTo
				pendingPos = -1
				pending = lzMatch{}
				continue
			}

			matches[pendingPos] = lzMatch{}
		}

		pendingPos = pos
		pending = cur
		pos++
	}

	if pendingPos >= 0 {
		if pending.length > 0 {
			matches[pendingPos] = pending
		} else {
			matches[pendingPos] = lzMatch{}
		}
	}

	return matches
}

// acceptableMatch enforces the three offset/length encodability bands.
// Distance 1 is never encodable: the smallest opcode family's offset field
// bottoms out at a back-distance of 2.
func acceptableMatch(distance, length int) bool {
	if length < minMatchLen || distance < 2 {
		return false
	}
	switch {
	case distance <= 1024:
		return true
	case distance <= 16384:
		return length >= 4
	default:
		return length >= 5
	}
}

// matchLength compares bytes at cand and pos (cand < pos, self-referential
// overlap is legal since both index the same static input array).
func matchLength(data []byte, cand, pos, maxLen int) int {
	n := 0
	for n < maxLen && data[cand+n] == data[pos+n] {
		n++
	}
	return n
}

// windowSizeFor returns the highest power of two <= n, capped at maxWindow.
func windowSizeFor(n int) int {
	if n <= 0 {
		return minHashSize
	}
	w := 1 << (bits.Len(uint(n)) - 1)
	if w > maxWindow {
		w = maxWindow
	}
	if w < 1 {
		w = 1
	}
	return w
}

// hashSizeFor returns max(window/2, minHashSize) capped at maxHashSize.
func hashSizeFor(window int) int {
	h := window / 2
	if h < minHashSize {
		h = minHashSize
	}
	if h > maxHashSize {
		h = maxHashSize
	}
	// round up to a power of two
	return 1 << bits.Len(uint(h-1))
}

// hashShiftFor computes (trailing_zeros(hashSize)+2)/3, 6 at the 65536 cap.
func hashShiftFor(hashSize int) int {
	return (bits.TrailingZeros(uint(hashSize)) + 2) / 3
}

// emitOpcodes walks the accepted match table and serializes literal-run and
// match opcodes in the families described by the decoder's opcode table.
// out already carries the header bytes written by appendHeader; budget is
// the whole encoded output's ceiling, header included. Returns false if the
// encoded body would not fit under budget.
func emitOpcodes(out []byte, data []byte, budget int, matches []lzMatch) ([]byte, bool) {
	n := len(data)
	pos := 0
	litStart := 0

	flushLiteralBlocks := func(litLen int) bool {
		for litLen >= 4 {
			block := litLen
			if block > 112 {
				block = 112
			}
			block -= block % 4
			if block == 0 {
				break
			}
			out = append(out, byte(0xE0+((block-4)>>2)))
			out = append(out, data[litStart:litStart+block]...)
			litStart += block
			litLen -= block
			if len(out) > budget {
				return false
			}
		}
		return true
	}

	for pos < n {
		m := matches[pos]
		if m.length == 0 {
			pos++
			continue
		}

		litLen := pos - litStart
		if !flushLiteralBlocks(litLen) {
			return nil, false
		}
		remainder := pos - litStart // 0..3 residual literals embedded in the match opcode

		var ok bool
		out, ok = appendMatchOpcode(out, data, litStart, remainder, m)
		if !ok || len(out) > budget {
			return nil, false
		}

		litStart = pos + m.length
		pos = litStart
	}

	litLen := n - litStart
	if !flushLiteralBlocks(litLen) {
		return nil, false
	}
	remainder := n - litStart
	out = append(out, byte(0xFC+remainder))
	out = append(out, data[litStart:litStart+remainder]...)

	if len(out) > budget {
		return nil, false
	}
	return out, true
}

// appendMatchOpcode picks the smallest opcode family that fits (distance, length)
// and appends the opcode's match fields followed by its embedded literal bytes.
//
// Each family's copyOffset field, as read back by the decoder, equals
// distance-1 (source = op - copyOffset - 1 = op - distance). The raw bits
// packed into the opcode encode copyOffset-1, i.e. distance-2: the decoder
// formulas all add a trailing "+1" on top of the bit-packed value.
func appendMatchOpcode(out []byte, data []byte, litStart, plainCount int, m lzMatch) ([]byte, bool) {
	length := m.length
	distance := m.offset
	adjusted := distance - 2

	switch {
	case adjusted >= 0 && adjusted <= 1023 && length >= 3 && length <= 10 && plainCount <= 3:
		b0 := byte(((adjusted>>8)&0x03)<<5) | byte((length-3)<<2) | byte(plainCount)
		b1 := byte(adjusted)
		out = append(out, b0, b1)

	case adjusted >= 0 && adjusted <= 16383 && length >= 4 && length <= 67 && plainCount <= 3:
		b0 := byte(0x80) | byte(length-4)
		b1 := byte(plainCount<<6) | byte((adjusted>>8)&0x3F)
		b2 := byte(adjusted)
		out = append(out, b0, b1, b2)

	case adjusted >= 0 && adjusted <= 131071 && length >= 5 && length <= 1028 && plainCount <= 3:
		lenBits := length - 5
		b0 := byte(0xC0) | byte(((adjusted>>16)&0x01)<<4) | byte((lenBits>>6)&0x0C) | byte(plainCount)
		b1 := byte(adjusted >> 8)
		b2 := byte(adjusted)
		b3 := byte(lenBits)
		out = append(out, b0, b1, b2, b3)

	default:
		return out, false
	}

	out = append(out, data[litStart:litStart+plainCount]...)
	return out, true
}

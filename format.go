/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package qrdecode

import "math/bits"

// formatInfo is the recovered error-correction level and mask, read
// from the two redundant 15-bit format strings flanking the top-left
// finder.
type formatInfo struct {
	ecl  ECL
	mask Mask
}

// readFormatBits extracts the two raw (uncorrected) 15-bit copies of
// the format information from the matrix, at the positions
// markFormatReservation marked.
func readFormatBits(m *Matrix) (copy1, copy2 int) {
	for i := 0; i <= 5; i++ {
		copy1 |= bToI(m.isDark(8, i)) << uint(i)
	}
	copy1 |= bToI(m.isDark(8, 7)) << 6
	copy1 |= bToI(m.isDark(8, 8)) << 7
	copy1 |= bToI(m.isDark(7, 8)) << 8
	for i := 9; i < 15; i++ {
		copy1 |= bToI(m.isDark(14-i, 8)) << uint(i)
	}

	for i := 0; i < 8; i++ {
		copy2 |= bToI(m.isDark(m.Size-1-i, 8)) << uint(i)
	}
	for i := 8; i < 15; i++ {
		copy2 |= bToI(m.isDark(8, m.Size-15+i)) << uint(i)
	}

	return copy1, copy2
}

// decodeFormatBits recovers the format information from whichever of
// the two 15-bit copies is closer to a valid BCH(15,5) codeword,
// tolerating up to 3 bit errors per copy — the same Hamming distance
// the standard's (15,5) code guarantees correcting, applied the way
// the teacher's own drawFormatBits loop computed the code in the
// other direction.
func decodeFormatBits(copy1, copy2 int) (formatInfo, error) {
	best, bestDist := -1, 4
	for _, bits15 := range [2]int{copy1, copy2} {
		data, dist := matchFormatBits(bits15)
		if dist < bestDist {
			best, bestDist = data, dist
		}
	}
	if best < 0 {
		return formatInfo{}, newError(ErrFormatUnreadable)
	}

	return formatInfo{
		ecl:  ecFromFormatBits(best >> 3),
		mask: Mask(best & 0x7),
	}, nil
}

// matchFormatBits finds the 5-bit format data value whose BCH-encoded
// 15-bit form is closest (in Hamming distance) to the given bits, and
// returns that distance.
func matchFormatBits(bits15 int) (data, distance int) {
	bestDist := 99
	bestData := -1
	for d := 0; d < 32; d++ {
		dist := bits.OnesCount(uint(computeFormatBits(d) ^ bits15))
		if dist < bestDist {
			bestDist = dist
			bestData = d
		}
	}
	if bestDist > 3 {
		return -1, bestDist
	}
	return bestData, bestDist
}

// readVersionBits extracts the two raw 18-bit version copies from the
// two 3x6/6x3 blocks near the top-right and bottom-left finders. Only
// meaningful for versions 7 and up — markVersionReservation is only
// called in that range.
func readVersionBits(m *Matrix) (copy1, copy2 int) {
	for i := 0; i < 18; i++ {
		a := m.Size - 11 + i%3
		b := i / 3
		if m.isDark(b, a) {
			copy1 |= 1 << uint(i)
		}
		if m.isDark(a, b) {
			copy2 |= 1 << uint(i)
		}
	}
	return copy1, copy2
}

// decodeVersionBits recovers the version number from whichever 18-bit
// copy is closer to a valid BCH(18,6) codeword, tolerating up to 3 bit
// errors — mirroring decodeFormatBits but over the version code.
func decodeVersionBits(copy1, copy2 int) (Version, error) {
	best, bestDist := -1, 4
	for _, bits18 := range [2]int{copy1, copy2} {
		for v := 7; v <= 40; v++ {
			dist := bits.OnesCount(uint(computeVersionBits(v) ^ bits18))
			if dist < bestDist {
				best, bestDist = v, dist
			}
		}
	}
	if best < 0 {
		return 0, newError(ErrVersionUnreadable)
	}
	return Version(best), nil
}

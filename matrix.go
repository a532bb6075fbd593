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

// buildFunctionTemplate marks every module position that is NOT part
// of the encoded message: timing patterns, finders, alignment
// patterns, and the format/version reservations. It is the decode-side
// twin of drawFunctionPatterns — same geometry, but it only records
// which cells are function modules; it never assigns their color,
// since that color is read from the photograph, not written.
func buildFunctionTemplate(m *Matrix) {
	size := m.Size

	for i := 0; i < size; i++ {
		m.IsFunction[6][i] = true
		m.IsFunction[i][6] = true
	}

	markFinder(m, 3, 3)
	markFinder(m, size-4, 3)
	markFinder(m, 3, size-4)

	alignPos := alignmentPatternPositions[m.Version]
	numAlign := len(alignPos)
	for i := 0; i < numAlign; i++ {
		for j := 0; j < numAlign; j++ {
			if i == 0 && j == 0 || i == 0 && j == numAlign-1 || i == numAlign-1 && j == 0 {
				continue
			}
			markAlignment(m, alignPos[i], alignPos[j])
		}
	}

	markFormatReservation(m)
	if m.Version >= 7 {
		markVersionReservation(m)
	}
}

func markFinder(m *Matrix, x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= m.Size || yy < 0 || yy >= m.Size {
				continue
			}
			m.IsFunction[yy][xx] = true
		}
	}
}

func markAlignment(m *Matrix, x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			m.IsFunction[y+dy][x+dx] = true
		}
	}
}

func markFormatReservation(m *Matrix) {
	for i := 0; i <= 5; i++ {
		m.IsFunction[i][8] = true
	}
	m.IsFunction[7][8] = true
	m.IsFunction[8][8] = true
	m.IsFunction[8][7] = true
	for i := 9; i < 15; i++ {
		m.IsFunction[8][14-i] = true
	}
	for i := 0; i < 8; i++ {
		m.IsFunction[8][m.Size-1-i] = true
	}
	for i := 8; i < 15; i++ {
		m.IsFunction[m.Size-15+i][8] = true
	}
	m.IsFunction[m.Size-8][8] = true
}

func markVersionReservation(m *Matrix) {
	for i := 0; i < 18; i++ {
		a := m.Size - 11 + i%3
		b := i / 3
		m.IsFunction[b][a] = true
		m.IsFunction[a][b] = true
	}
}

// sampleMatrix fills every module of m by projecting its module
// coordinate through t into the pixel grid and reading the module
// candidate underneath, function and data cells alike — the function
// template only decides which cells are skipped later (unmask,
// unloadCodewords), not which cells get sampled here.
func sampleMatrix(g *Grid, t *transform, m *Matrix) {
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			col, row := t.samplePixel(x, y)
			m.Modules[y][x] = bToModule(g.at(col, row))
		}
	}
}

// maskPredicates reports, for a given (x, y), whether that module is
// inverted by one of the 8 ISO/IEC 18004 mask patterns — the same
// table of eight conditions applyMask switched on, reused unchanged
// since masking is its own inverse.
var maskPredicates = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// unmask XORs every non-function module with the given mask's
// predicate, undoing applyMask's transform.
func unmask(m *Matrix, mask Mask) {
	pred := maskPredicates[mask]
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if !m.IsFunction[y][x] && pred(x, y) {
				m.Modules[y][x] ^= 1
			}
		}
	}
}

// fixedModuleMismatch counts how many of the known-fixed function
// modules (the cells of row and column 6 — finder edges, separators and
// timing pattern — and the always-dark module next to the bottom-left
// finder) disagree with their expected color once the
// matrix has been sampled. A noisy photograph should still agree on
// almost all of these; too many mismatches indicates the sampling
// grid is misaligned rather than the symbol being damaged, per the
// fixed-module mismatch budget in the component design.
func fixedModuleMismatch(m *Matrix) int {
	mismatches := 0
	for i := 0; i < m.Size; i++ {
		if i == 6 {
			continue
		}
		// Finder edges are dark; separators (7, Size-8) and the timing
		// run between them alternate starting dark.
		want := i%2 == 0 || i < 7 || i >= m.Size-7
		if m.isDark(6, i) != want {
			mismatches++
		}
		if m.isDark(i, 6) != want {
			mismatches++
		}
	}
	if !m.isDark(8, m.Size-8) {
		mismatches++
	}
	return mismatches
}

// unloadCodewords reads the data+EC codeword bytes back out of the
// matrix using the same zig-zag, two-columns-at-a-time traversal (with
// column 6 skipped in favor of 5) that drawCodewords used to lay them
// down, MSB of each codeword first.
func unloadCodewords(m *Matrix, numCodewords int) []byte {
	data := make([]byte, numCodewords)
	i := 0

	for right := m.Size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < m.Size; vert++ {
			for j := 0; j < 2; j++ {
				x := right - j
				upward := (right+1)&2 == 0

				var y int
				if upward {
					y = m.Size - 1 - vert
				} else {
					y = vert
				}

				if !m.IsFunction[y][x] && i < len(data)*8 {
					bit := bToI(m.isDark(x, y))
					data[i>>3] |= byte(bit << uint(7-(i&7)))
					i++
				}
			}
		}
	}

	return data
}

func bToI(b bool) int {
	if b {
		return 1
	}
	return 0
}

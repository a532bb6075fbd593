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

import "math"

// Error-tolerance knobs, held fixed so the signature tests below are
// exactly reproducible.
const (
	signatureMaxDeviation  = 0.25
	horVertScanMaxDistance = 2.0
	moduleSizeDeviation    = 0.5
	cornerSideLengthDev    = 0.8
	cornerRightAngleDev    = 0.25
	alignmentSearchArea    = 0.3
)

// finderCandidate is a finder pattern match. A horizontal hit carries
// only moduleSizeH and leaves moduleSize zero; once vertical matching
// succeeds moduleSize becomes the average of the horizontal and
// vertical estimates and distance stops being +Inf.
type finderCandidate struct {
	row, c1, c2   int
	moduleSizeH   float64
	col, r1, r2   int
	moduleSizeV   float64
	moduleSize    float64
	distance      float64
}

func (f *finderCandidate) centerX() float64 { return float64(f.c1+f.c2) / 2 }
func (f *finderCandidate) centerY() float64 { return float64(f.r1+f.r2) / 2 }

// alignmentCandidate is an alignment pattern match from a single
// horizontal scan; unlike finders, alignment patterns are consumed
// directly without a vertical-match confirmation pass (the search
// window in the top-level decode loop already narrows the area enough
// that horizontal signature alone is selective).
type alignmentCandidate struct {
	row, c1, c2 int
	moduleSize  float64
}

func (a *alignmentCandidate) centerX() float64 { return float64(a.c1+a.c2) / 2 }
func (a *alignmentCandidate) centerY() float64 { return float64(a.row) }

// runPositions walks length samples of a row/column and returns the
// flip boundaries, including the synthetic endpoints 0 and length —
// so consecutive entries give every run's length via subtraction.
func runPositions(length int, at func(i int) bool) []int {
	positions := make([]int, 0, 16)
	positions = append(positions, 0)
	for i := 1; i < length; i++ {
		if at(i) != at(i-1) {
			positions = append(positions, i)
		}
	}
	positions = append(positions, length)
	return positions
}

// findFinderSignatures scans a run-length sequence for 1:1:3:1:1
// windows and returns the candidates it accepts.
func findFinderSignatures(positions []int, fixedRow, fixedCol int, horizontal bool) []finderCandidate {
	var out []finderCandidate
	if len(positions)-1 < 6 {
		return out
	}
	for i := 0; i+5 < len(positions); i += 2 {
		l := make([]float64, 5)
		for j := 0; j < 5; j++ {
			l[j] = float64(positions[i+j+1] - positions[i+j])
		}
		module := float64(positions[i+5]-positions[i]) / 7
		if module <= 0 {
			continue
		}
		tol := signatureMaxDeviation * module
		if math.Abs(l[0]-module) > tol || math.Abs(l[1]-module) > tol ||
			math.Abs(l[2]-3*module) > tol || math.Abs(l[3]-module) > tol ||
			math.Abs(l[4]-module) > tol {
			continue
		}

		if horizontal {
			out = append(out, finderCandidate{
				row: fixedRow, c1: positions[i+2], c2: positions[i+3],
				moduleSizeH: module, distance: math.Inf(1),
			})
		} else {
			out = append(out, finderCandidate{
				col: fixedCol, r1: positions[i+2], r2: positions[i+3],
				moduleSizeV: module,
			})
		}
	}
	return out
}

// findAlignmentSignatures scans for the n:1:1:1:n alignment ratio
// within a single row, used by the top-level decode loop's targeted
// alignment search.
func findAlignmentSignatures(positions []int, row int) []alignmentCandidate {
	var out []alignmentCandidate
	if len(positions)-1 < 4 {
		return out
	}
	for i := 0; i+5 < len(positions); i++ {
		l := make([]float64, 5)
		for j := 0; j < 5; j++ {
			l[j] = float64(positions[i+j+1] - positions[i+j])
		}
		module := float64(positions[i+4]-positions[i+1]) / 3
		if module <= 0 {
			continue
		}
		tol := signatureMaxDeviation * module
		if l[0] < module-tol || math.Abs(l[1]-module) > tol ||
			math.Abs(l[2]-module) > tol || math.Abs(l[3]-module) > tol ||
			l[4] < module-tol {
			continue
		}
		out = append(out, alignmentCandidate{row: row, c1: positions[i+1], c2: positions[i+4], moduleSize: module})
	}
	return out
}

// findFinders runs the horizontal scan over every row, the vertical
// scan over every column touched by a horizontal hit, matches the two,
// and deduplicates overlapping candidates — the full pipeline behind
// spec component D.
func findFinders(g *Grid) []finderCandidate {
	var horizontals []finderCandidate
	touchedCols := make(map[int]bool)

	for r := 0; r < g.Height; r++ {
		positions := runPositions(g.Width, func(i int) bool { return g.at(i, r) })
		hits := findFinderSignatures(positions, r, 0, true)
		for _, h := range hits {
			horizontals = append(horizontals, h)
			for c := h.c1; c < h.c2; c++ {
				touchedCols[c] = true
			}
		}
	}

	for c := range touchedCols {
		positions := runPositions(g.Height, func(i int) bool { return g.at(c, i) })
		vhits := findFinderSignatures(positions, 0, c, false)
		for _, v := range vhits {
			matchVertical(horizontals, c, v.r1, v.r2, v.moduleSizeV)
		}
	}

	return dedupFinders(horizontals)
}

// matchVertical attempts to pair a vertical hit with every horizontal
// candidate whose span it overlaps, keeping only the closest match per
// horizontal candidate (ties broken by first-seen).
func matchVertical(horizontals []finderCandidate, col, r1, r2 int, moduleV float64) {
	vCenterY := float64(r1+r2) / 2
	for i := range horizontals {
		h := &horizontals[i]
		if col < h.c1 || col >= h.c2 {
			continue
		}
		if h.row < r1 || h.row >= r2 {
			continue
		}
		if math.Min(h.moduleSizeH, moduleV) < moduleSizeDeviation*math.Max(h.moduleSizeH, moduleV) {
			continue
		}

		hCenterY := float64(h.row)
		dist := math.Abs(hCenterY - vCenterY)
		if dist > horVertScanMaxDistance {
			continue
		}
		if dist < h.distance {
			h.col, h.r1, h.r2 = col, r1, r2
			h.moduleSizeV = moduleV
			h.moduleSize = (h.moduleSizeH + moduleV) / 2
			h.distance = dist
		}
	}
}

// dedupFinders drops unmatched candidates and, among overlapping
// bounding boxes, keeps the smallest-distance one.
func dedupFinders(candidates []finderCandidate) []finderCandidate {
	var matched []finderCandidate
	for _, c := range candidates {
		if math.IsInf(c.distance, 1) {
			continue
		}
		matched = append(matched, c)
	}

	var out []finderCandidate
	for _, c := range matched {
		replaced := false
		for i := range out {
			if overlaps(&out[i], &c) {
				if c.distance < out[i].distance {
					out[i] = c
				}
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, c)
		}
	}
	return out
}

func overlaps(a, b *finderCandidate) bool {
	return a.c1 < b.c2 && b.c1 < a.c2 && a.r1 < b.r2 && b.r1 < a.r2
}

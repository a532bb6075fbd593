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

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindFinderSignaturesAcceptsExactRatio(t *testing.T) {
	module := 4
	// 7 boundary points -> 6 runs, satisfying the >=6-runs precondition;
	// the 1:1:3:1:1 window sits at runs [0..4].
	positions := []int{0, module, 2 * module, 5 * module, 6 * module, 7 * module, 8 * module}
	hits := findFinderSignatures(positions, 5, 0, true)
	if assert.Len(t, hits, 1) {
		assert.InDelta(t, float64(module), hits[0].moduleSizeH, 0.01)
		assert.Equal(t, 2*module, hits[0].c1)
		assert.Equal(t, 5*module, hits[0].c2)
	}
}

func TestFindFinderSignaturesRejectsOutOfRatio(t *testing.T) {
	// L2 (the middle run) is only 2x the module instead of 3x -- well
	// outside even a generous tolerance.
	positions := []int{0, 4, 8, 16, 20, 24, 28}
	hits := findFinderSignatures(positions, 0, 0, true)
	assert.Empty(t, hits)
}

func TestFindAlignmentSignaturesAcceptsRatio(t *testing.T) {
	module := 3
	// n:1:1:1:n, outer runs long (n = 5 modules here).
	positions := []int{0, 5 * module, 6 * module, 7 * module, 8 * module, 13 * module}
	hits := findAlignmentSignatures(positions, 9)
	if assert.Len(t, hits, 1) {
		assert.Equal(t, 9, hits[0].row)
		assert.InDelta(t, float64(module), hits[0].moduleSize, 0.01)
	}
}

func TestRunPositionsIncludesEndpoints(t *testing.T) {
	bits := []bool{false, false, true, true, true, false, false}
	positions := runPositions(len(bits), func(i int) bool { return bits[i] })
	assert.Equal(t, []int{0, 2, 5, 7}, positions)
}

func TestMatchVerticalKeepsClosestDistance(t *testing.T) {
	horizontals := []finderCandidate{
		{row: 10, c1: 8, c2: 16, moduleSizeH: 4, distance: math.Inf(1)},
	}
	matchVertical(horizontals, 12, 6, 14, 4) // center row 10, distance 0
	matchVertical(horizontals, 12, 8, 16, 4) // center row 12, distance 2 -- farther, must not replace

	assert.InDelta(t, 0.0, horizontals[0].distance, 0.001)
	assert.Equal(t, 6, horizontals[0].r1)
}

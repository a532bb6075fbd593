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
	"testing"

	"github.com/stretchr/testify/assert"
)

func finderAt(row, col int, module float64) *finderCandidate {
	half := module / 2
	return &finderCandidate{
		row: row, c1: col - int(half), c2: col + int(half),
		r1: row - int(half), r2: row + int(half),
		moduleSize: module,
	}
}

// These three finders sit at the corners of an upright, unrotated
// symbol: TL at (10,10), TR at (10,110) (same row, across columns), BL
// at (110,10) (same column, down rows), in (row, col) terms.
func uprightFinders() (tl, tr, bl *finderCandidate) {
	return finderAt(10, 10, 10), finderAt(10, 110, 10), finderAt(110, 10, 10)
}

func TestBuildCornerIdentifiesTopLeftRegardlessOfInputOrder(t *testing.T) {
	tl, tr, bl := uprightFinders()

	for _, perm := range [][3]*finderCandidate{
		{tl, tr, bl}, {tr, bl, tl}, {bl, tl, tr}, {tl, bl, tr}, {tr, tl, bl}, {bl, tr, tl},
	} {
		cn, err := buildCorner(perm[0], perm[1], perm[2])
		assert.NoError(t, err)
		assert.Same(t, tl, cn.topLeft)
		assert.Same(t, tr, cn.topRight)
		assert.Same(t, bl, cn.bottomLeft)
	}
}

func TestBuildCornerRejectsSkewedLegs(t *testing.T) {
	tl := finderAt(10, 10, 10)
	tr := finderAt(10, 110, 10) // leg length ~100
	bl := finderAt(30, 10, 10)  // leg length ~20, ratio 0.2 << 0.8

	_, err := buildCorner(tl, tr, bl)
	assert.Error(t, err)
	kind, ok := Kind(err)
	assert.True(t, ok)
	assert.Equal(t, ErrCornerInvalid, kind)
}

func TestBuildCornerRejectsNonRightAngle(t *testing.T) {
	tl := finderAt(0, 0, 10)
	tr := finderAt(0, 100, 10)
	// bl skewed off TL's column -- hypotenuse (tr,bl)
	// stays the longest side so TL is still picked, but the TL angle
	// is well off 90 degrees.
	bl := finderAt(100, 40, 10)

	_, err := buildCorner(tl, tr, bl)
	assert.Error(t, err)
	kind, ok := Kind(err)
	assert.True(t, ok)
	assert.Equal(t, ErrCornerInvalid, kind)
}

func TestEstimateVersionClampsToRange(t *testing.T) {
	assert.Equal(t, Version(1), estimateVersion(1, 10, 1, 10))
	assert.Equal(t, Version(40), estimateVersion(100000, 10, 100000, 10))
}

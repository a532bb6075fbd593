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

// A version-1 corner (size 21) placed at pixel scale 10px/module, with
// the matrix's top-left pixel at (5,5): module (x,y) lands on pixel
// (5+10x, 5+10y), so finder centers at module (3,3), (17,3), (3,17)
// land at pixel (35,35), (175,35), (35,175).
func affineCorner() *corner {
	return &corner{
		topLeft:    &finderCandidate{c1: 30, c2: 40, r1: 30, r2: 40},
		topRight:   &finderCandidate{c1: 170, c2: 180, r1: 30, r2: 40},
		bottomLeft: &finderCandidate{c1: 30, c2: 40, r1: 170, r2: 180},
	}
}

func TestAffineTransformSolvesExactGrid(t *testing.T) {
	cn := affineCorner()
	tr, err := affineTransform(cn, 21)
	assert.NoError(t, err)

	col, row := tr.sample(3, 3)
	assert.InDelta(t, 35.0, col, 1e-6)
	assert.InDelta(t, 35.0, row, 1e-6)

	col, row = tr.sample(17, 3)
	assert.InDelta(t, 175.0, col, 1e-6)
	assert.InDelta(t, 35.0, row, 1e-6)

	col, row = tr.sample(3, 17)
	assert.InDelta(t, 35.0, col, 1e-6)
	assert.InDelta(t, 175.0, row, 1e-6)

	// Midpoint in module space should land at the midpoint in pixel
	// space for a pure affine (no perspective) map.
	col, row = tr.sample(10, 3)
	assert.InDelta(t, 105.0, col, 1e-6)
	assert.InDelta(t, 35.0, row, 1e-6)
}

// affineTransform's module-space triangle, (3,3)/(D-4,3)/(3,D-4), is
// never collinear for any valid size, so singularity has to be
// exercised at the solver level directly rather than through a
// corner's pixel placement.
func TestSolve3x3RejectsCollinearPoints(t *testing.T) {
	_, err := solve3x3(0, 0, 1, 1, 2, 2, 0, 1, 2)
	assert.Error(t, err)
	kind, ok := Kind(err)
	assert.True(t, ok)
	assert.Equal(t, ErrTransformSingular, kind)
}

func TestSolve8x8RejectsSingularSystem(t *testing.T) {
	var m [8][9]float64
	for i := 0; i < 8; i++ {
		m[i][i] = 1
		m[i][8] = float64(i + 1)
	}
	m[7] = m[6] // rank-deficient: row 7 duplicates row 6.

	_, err := solve8x8(m)
	assert.Error(t, err)
	kind, ok := Kind(err)
	assert.True(t, ok)
	assert.Equal(t, ErrTransformSingular, kind)
}

func TestProjectiveTransformMatchesAffineWhenUnskewed(t *testing.T) {
	cn := affineCorner()
	size := 21
	// Bottom-right alignment center at module (size-7, size-7) = (14,14)
	// under the same 10px/module, (5,5)-origin mapping: pixel (145,145).
	tr, err := projectiveTransform(cn, 145, 145, size)
	assert.NoError(t, err)

	col, row := tr.sample(3, 3)
	assert.InDelta(t, 35.0, col, 1e-6)
	assert.InDelta(t, 35.0, row, 1e-6)

	col, row = tr.sample(14, 14)
	assert.InDelta(t, 145.0, col, 1e-6)
	assert.InDelta(t, 145.0, row, 1e-6)

	// With no actual perspective skew, g and h solve out to ~0.
	assert.InDelta(t, 0.0, tr.g, 1e-6)
	assert.InDelta(t, 0.0, tr.h, 1e-6)
}

func TestSamplePixelRoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 1, roundHalfAwayFromZero(0.5))
	assert.Equal(t, -1, roundHalfAwayFromZero(-0.5))
	assert.Equal(t, 2, roundHalfAwayFromZero(1.5))
	assert.Equal(t, 0, roundHalfAwayFromZero(0.49))
}

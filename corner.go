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

// corner is an oriented finder triple: TopLeft/TopRight/BottomLeft,
// with the derived line lengths and version estimate the transform
// and format stages need next.
type corner struct {
	topLeft, topRight, bottomLeft *finderCandidate
	topLineLength, leftLineLength float64
	version                       Version
}

// buildCorner orients three matched finders into a corner, rejecting
// triples that are too skewed or not close enough to a right angle.
// See spec component E for the geometric tests.
func buildCorner(a, b, c *finderCandidate) (*corner, error) {
	dAB := dist(a, b)
	dBC := dist(b, c)
	dCA := dist(c, a)

	var topLeft, other1, other2 *finderCandidate
	switch {
	case dAB >= dBC && dAB >= dCA:
		topLeft, other1, other2 = c, a, b
	case dBC >= dAB && dBC >= dCA:
		topLeft, other1, other2 = a, b, c
	default:
		topLeft, other1, other2 = b, c, a
	}

	v1x, v1y := other1.centerX()-topLeft.centerX(), other1.centerY()-topLeft.centerY()
	v2x, v2y := other2.centerX()-topLeft.centerX(), other2.centerY()-topLeft.centerY()
	cross := v1x*v2y - v1y*v2x

	var topRight, bottomLeft *finderCandidate
	if cross > 0 {
		topRight, bottomLeft = other1, other2
	} else {
		topRight, bottomLeft = other2, other1
	}
	topLineLength := dist(topLeft, topRight)
	leftLineLength := dist(topLeft, bottomLeft)

	shortLeg, longLeg := topLineLength, leftLineLength
	if shortLeg > longLeg {
		shortLeg, longLeg = longLeg, shortLeg
	}
	if longLeg == 0 || shortLeg/longLeg < cornerSideLengthDev {
		return nil, newError(ErrCornerInvalid)
	}

	// Right-angle deviation: cosine of the angle between the top and
	// left legs, measured at TopLeft.
	topX, topY := topRight.centerX()-topLeft.centerX(), topRight.centerY()-topLeft.centerY()
	leftX, leftY := bottomLeft.centerX()-topLeft.centerX(), bottomLeft.centerY()-topLeft.centerY()
	dot := topX*leftX + topY*leftY
	cosTheta := dot / (topLineLength * leftLineLength)
	if math.Abs(cosTheta) > cornerRightAngleDev {
		return nil, newError(ErrCornerInvalid)
	}

	version := estimateVersion(topLineLength, topLeft.moduleSize, leftLineLength, topLeft.moduleSize)

	return &corner{
		topLeft: topLeft, topRight: topRight, bottomLeft: bottomLeft,
		topLineLength: topLineLength, leftLineLength: leftLineLength,
		version: version,
	}, nil
}

func estimateVersion(topLen, topModule, leftLen, leftModule float64) Version {
	v := math.Round(((topLen/topModule + leftLen/leftModule) / 2 - 10) / 4)
	if v < 1 {
		v = 1
	}
	if v > 40 {
		v = 40
	}
	return Version(v)
}

func dist(a, b *finderCandidate) float64 {
	dx := a.centerX() - b.centerX()
	dy := a.centerY() - b.centerY()
	return math.Sqrt(dx*dx + dy*dy)
}

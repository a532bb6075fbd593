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

// transform maps module coordinates (x, y) in [0, D) to pixel
// coordinates. The affine form has g = h = 0; the projective form
// additionally divides by g*x + h*y + 1.
type transform struct {
	a, b, c, d, e, f, g, h float64
}

func (t *transform) sample(x, y float64) (col, row float64) {
	denom := t.g*x + t.h*y + 1
	col = (t.a*x + t.b*y + t.c) / denom
	row = (t.d*x + t.e*y + t.f) / denom
	return
}

// samplePixel rounds half-away-from-zero to the pixel under a given
// module center.
func (t *transform) samplePixel(x, y int) (col, row int) {
	fc, fr := t.sample(float64(x), float64(y))
	return roundHalfAwayFromZero(fc), roundHalfAwayFromZero(fr)
}

func roundHalfAwayFromZero(v float64) int {
	if v >= 0 {
		return int(math.Floor(v + 0.5))
	}
	return int(math.Ceil(v - 0.5))
}

// affineTransform solves two independent 3x3 systems for the finder
// centers at module (3,3), (D-4,3), (3,D-4) mapping to the corner's
// TopLeft/TopRight/BottomLeft pixel centers. Used whenever no
// alignment pattern is available (version 1, or an alignment search
// miss).
func affineTransform(cn *corner, size int) (*transform, error) {
	x1, y1 := 3.0, 3.0
	x2, y2 := float64(size-4), 3.0
	x3, y3 := 3.0, float64(size-4)

	colA, err := solve3x3(x1, y1, x2, y2, x3, y3,
		cn.topLeft.centerX(), cn.topRight.centerX(), cn.bottomLeft.centerX())
	if err != nil {
		return nil, err
	}
	rowA, err := solve3x3(x1, y1, x2, y2, x3, y3,
		cn.topLeft.centerY(), cn.topRight.centerY(), cn.bottomLeft.centerY())
	if err != nil {
		return nil, err
	}

	return &transform{a: colA[0], b: colA[1], c: colA[2], d: rowA[0], e: rowA[1], f: rowA[2]}, nil
}

// solve3x3 solves for (p,q,r) in p*x_i + q*y_i + r = v_i, i=1..3, via
// Gaussian elimination with row-repair: if a pivot is zero, swap in a
// lower row with a nonzero entry in that column before eliminating.
func solve3x3(x1, y1, x2, y2, x3, y3, v1, v2, v3 float64) ([3]float64, error) {
	m := [3][4]float64{
		{x1, y1, 1, v1},
		{x2, y2, 1, v2},
		{x3, y3, 1, v3},
	}

	for col := 0; col < 3; col++ {
		if m[col][col] == 0 {
			repaired := false
			for row := col + 1; row < 3; row++ {
				if m[row][col] != 0 {
					m[col], m[row] = m[row], m[col]
					repaired = true
					break
				}
			}
			if !repaired {
				return [3]float64{}, newError(ErrTransformSingular)
			}
		}
		for row := 0; row < 3; row++ {
			if row == col {
				continue
			}
			factor := m[row][col] / m[col][col]
			for k := col; k < 4; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}

	var result [3]float64
	for i := 0; i < 3; i++ {
		if m[i][i] == 0 {
			return [3]float64{}, newError(ErrTransformSingular)
		}
		result[i] = m[i][3] / m[i][i]
	}
	return result, nil
}

// projectiveTransform solves the 8x9 augmented system for (a..h)
// mapping the finder centers plus the bottom-right alignment pattern
// center (module (D-7,D-7)) to their pixel centers.
func projectiveTransform(cn *corner, alignCol, alignRow float64, size int) (*transform, error) {
	pts := [4]struct{ mx, my, px, py float64 }{
		{3, 3, cn.topLeft.centerX(), cn.topLeft.centerY()},
		{float64(size - 4), 3, cn.topRight.centerX(), cn.topRight.centerY()},
		{3, float64(size - 4), cn.bottomLeft.centerX(), cn.bottomLeft.centerY()},
		{float64(size - 7), float64(size - 7), alignCol, alignRow},
	}

	// Two independent 8-unknown systems would double-count g,h; build
	// the single coupled 8x8 system instead: for each point,
	//   a*mx + b*my + c - g*mx*px - h*my*px = px
	//   d*mx + e*my + f - g*mx*py - h*my*py = py
	var rows [8][9]float64
	for i, p := range pts {
		rows[2*i] = [9]float64{p.mx, p.my, 1, 0, 0, 0, -p.mx * p.px, -p.my * p.px, p.px}
		rows[2*i+1] = [9]float64{0, 0, 0, p.mx, p.my, 1, -p.mx * p.py, -p.my * p.py, p.py}
	}

	coeffs, err := solve8x8(rows)
	if err != nil {
		return nil, err
	}

	return &transform{
		a: coeffs[0], b: coeffs[1], c: coeffs[2],
		d: coeffs[3], e: coeffs[4], f: coeffs[5],
		g: coeffs[6], h: coeffs[7],
	}, nil
}

// solve8x8 eliminates an 8x9 augmented matrix (8 unknowns, 8 rows with
// their RHS value in column 8), using the same row-repair strategy as
// solve3x3.
func solve8x8(m [8][9]float64) ([8]float64, error) {
	for col := 0; col < 8; col++ {
		if m[col][col] == 0 {
			repaired := false
			for row := col + 1; row < 8; row++ {
				if m[row][col] != 0 {
					m[col], m[row] = m[row], m[col]
					repaired = true
					break
				}
			}
			if !repaired {
				return [8]float64{}, newError(ErrTransformSingular)
			}
		}
		for row := 0; row < 8; row++ {
			if row == col {
				continue
			}
			factor := m[row][col] / m[col][col]
			for k := col; k < 9; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}

	var result [8]float64
	for i := 0; i < 8; i++ {
		if m[i][i] == 0 {
			return [8]float64{}, newError(ErrTransformSingular)
		}
		result[i] = m[i][8] / m[i][i]
	}
	return result, nil
}

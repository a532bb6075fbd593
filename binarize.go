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

import "image"

// binarize converts a source image into a Grid of dark/light module
// candidates using a single global threshold over perceptual
// luminance. It is intentionally the simplest contract-satisfying
// implementation: deterministic, with no adaptive windowing, per the
// component design's explicit license to substitute something fancier
// without changing anything downstream.
func binarize(img image.Image) (*Grid, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, newError(ErrBinarizationFailed)
	}

	lum := make([]int32, width*height)
	var sum int64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// ITU-R BT.601 luma weights, applied to the 16-bit channel
			// values RGBA() returns after shifting them down to 8 bits.
			l := (299*int32(r>>8) + 587*int32(g>>8) + 114*int32(b>>8)) / 1000
			lum[y*width+x] = l
			sum += int64(l)
		}
	}

	threshold := int32(sum / int64(width*height))

	grid := newGrid(width, height)
	for i, l := range lum {
		grid.bits[i] = l < threshold
	}
	return grid, nil
}

// IsDark reports whether the module candidate at image row r, column c
// is dark, per the decoder's external is_dark(r,c) contract.
func (g *Grid) IsDark(r, c int) bool {
	return g.at(c, r)
}

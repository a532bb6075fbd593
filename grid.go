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

// Grid is a binarized image: one bool per pixel, true meaning "dark".
// It plays the same row-major role binarize.go's output does that
// QRCode.Modules played for the encoder, except indexed by pixel
// rather than by symbol module until sampleMatrix projects it down.
type Grid struct {
	Width, Height int
	bits          []bool
}

func newGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, bits: make([]bool, width*height)}
}

func (g *Grid) at(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	return g.bits[y*g.Width+x]
}

func (g *Grid) set(x, y int, dark bool) {
	g.bits[y*g.Width+x] = dark
}

// Matrix is the sampled, de-masked symbol grid: one module per
// position, Size x Size, analogous to QRCode.Modules in the encoder
// but produced by reading a photograph instead of writing one.
type Matrix struct {
	Version    Version
	Size       int
	Modules    [][]module
	IsFunction [][]bool
}

func newMatrix(version Version) *Matrix {
	size := int(version)*4 + 17
	m := &Matrix{Version: version, Size: size}
	m.Modules = make([][]module, size)
	m.IsFunction = make([][]bool, size)
	for i := 0; i < size; i++ {
		m.Modules[i] = make([]module, size)
		m.IsFunction[i] = make([]bool, size)
	}
	return m
}

func (m *Matrix) setFunction(x, y int, dark bool) {
	m.Modules[y][x] = bToModule(dark)
	m.IsFunction[y][x] = true
}

func (m *Matrix) isDark(x, y int) bool {
	return m.Modules[y][x] == 1
}

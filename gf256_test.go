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

// rsEncodeRemainder computes the EC remainder for data under the given
// generator, the same shift-register algorithm the teacher's encoder
// used to compute codewords in the opposite direction (see
// reedSolomonComputeGenerator's doc comment in tables.go).
func rsEncodeRemainder(data, generator []byte) []byte {
	result := make([]byte, len(generator))
	for _, b := range data {
		factor := b ^ result[0]
		copy(result, result[1:])
		result[len(result)-1] = 0
		for i, coef := range generator {
			result[i] ^= gfMul(coef, factor)
		}
	}
	return result
}

func TestGFMulDivIdentities(t *testing.T) {
	for a := 1; a < 256; a++ {
		for _, b := range []byte{1, 2, 3, 0xFF} {
			got := gfDiv(gfMul(byte(a), b), b)
			assert.Equal(t, byte(a), got)
		}
	}
}

func TestGFMulZero(t *testing.T) {
	assert.Equal(t, byte(0), gfMul(0, 123))
	assert.Equal(t, byte(0), gfMul(123, 0))
}

func TestRSCorrectNoErrors(t *testing.T) {
	ecLen := 10
	gen := reedSolomonComputeGenerator(ecLen)
	data := []byte("Bugs Bunny")
	parity := rsEncodeRemainder(data, gen)
	block := append(append([]byte{}, data...), parity...)

	result, err := rsCorrect(block, ecLen)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.errorsFixed)
	assert.Equal(t, block, result.corrected)
}

func TestRSCorrectUpToHalfECErrors(t *testing.T) {
	ecLen := 10
	gen := reedSolomonComputeGenerator(ecLen)
	data := []byte("0123456789")
	parity := rsEncodeRemainder(data, gen)
	block := append(append([]byte{}, data...), parity...)

	corrupted := append([]byte{}, block...)
	for _, i := range []int{0, 2, 4, 6, 9} { // floor(10/2) = 5 errors
		corrupted[i] ^= 0xFF
	}

	result, err := rsCorrect(corrupted, ecLen)
	assert.NoError(t, err)
	assert.Equal(t, 5, result.errorsFixed)
	assert.Equal(t, block, result.corrected)
}

func TestRSCorrectUncorrectable(t *testing.T) {
	ecLen := 10
	gen := reedSolomonComputeGenerator(ecLen)
	data := []byte("0123456789")
	parity := rsEncodeRemainder(data, gen)
	block := append(append([]byte{}, data...), parity...)

	corrupted := append([]byte{}, block...)
	for _, i := range []int{0, 1, 2, 3, 4, 5} { // floor(10/2)+1 = 6 errors
		corrupted[i] ^= 0xFF
	}

	_, err := rsCorrect(corrupted, ecLen)
	assert.Error(t, err)
	kind, ok := Kind(err)
	assert.True(t, ok)
	assert.Equal(t, ErrReedSolomonUncorrectable, kind)
}

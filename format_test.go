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

func TestDecodeFormatBitsExact(t *testing.T) {
	for data := 0; data < 32; data++ {
		bits15 := computeFormatBits(data)
		fi, err := decodeFormatBits(bits15, bits15)
		assert.NoError(t, err)
		assert.Equal(t, ecFromFormatBits(data>>3), fi.ecl)
		assert.Equal(t, Mask(data&0x7), fi.mask)
	}
}

func TestDecodeFormatBitsUpToThreeErrors(t *testing.T) {
	data := 0b10101 // ECL bits 10, mask 101
	clean := computeFormatBits(data)

	for _, flips := range [][]uint{{0}, {0, 3}, {0, 3, 9}} {
		corrupted := clean
		for _, b := range flips {
			corrupted ^= 1 << b
		}
		fi, err := decodeFormatBits(corrupted, corrupted)
		assert.NoError(t, err)
		assert.Equal(t, ecFromFormatBits(data>>3), fi.ecl)
		assert.Equal(t, Mask(data&0x7), fi.mask)
	}
}

func TestDecodeVersionBitsOneAndTwoBitErrors(t *testing.T) {
	clean := computeVersionBits(7)
	oneError := clean ^ (1 << 4)
	twoErrors := clean ^ (1<<2 | 1<<15)

	v, err := decodeVersionBits(oneError, twoErrors)
	assert.NoError(t, err)
	assert.Equal(t, Version(7), v)
}

func TestEcFromFormatBitsCanonicalOrdering(t *testing.T) {
	assert.Equal(t, Medium, ecFromFormatBits(0b00))
	assert.Equal(t, Low, ecFromFormatBits(0b01))
	assert.Equal(t, High, ecFromFormatBits(0b10))
	assert.Equal(t, Quartile, ecFromFormatBits(0b11))
}

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

// interleaveBlocks is the encode-side inverse of deinterleave, built
// only for this test so deinterleave's output can be checked against
// known input instead of against itself.
func interleaveBlocks(blocks [][]byte, blockECCLen int) []byte {
	var out []byte
	maxDataLen := 0
	for _, b := range blocks {
		if n := len(b) - blockECCLen; n > maxDataLen {
			maxDataLen = n
		}
	}
	for i := 0; i < maxDataLen; i++ {
		for _, b := range blocks {
			if i < len(b)-blockECCLen {
				out = append(out, b[i])
			}
		}
	}
	for i := 0; i < blockECCLen; i++ {
		for _, b := range blocks {
			out = append(out, b[len(b)-blockECCLen+i])
		}
	}
	return out
}

func TestDeinterleaveRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		ecl     ECL
		version Version
	}{
		{"v1-L", Low, 1},
		{"v5-M-two-blocks", Medium, 5},
		{"v7-Q", Quartile, 7},
		{"v27-H-uneven-groups", High, 27},
		{"v40-H", High, 40},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			numBlocks, shortBlockLen, numShortBlocks, blockECCLen := blockLayout(c.ecl, int(c.version))

			synthetic := make([][]byte, numBlocks)
			counter := byte(0)
			for i := range synthetic {
				dataLen := shortBlockLen - blockECCLen
				if i >= numShortBlocks {
					dataLen++
				}
				block := make([]byte, dataLen+blockECCLen)
				for j := range block {
					block[j] = counter
					counter++
				}
				synthetic[i] = block
			}

			raw := interleaveBlocks(synthetic, blockECCLen)
			got := deinterleave(raw, c.ecl, c.version)

			assert.Equal(t, synthetic, got)
		})
	}
}

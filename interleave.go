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

// deinterleave splits the raw codeword sequence unloadCodewords reads
// off the matrix back into per-block byte slices (data followed by EC
// bytes), inverting the round-robin the teacher's addECCAndInterleave
// used to interleave them — short blocks (one data codeword fewer)
// come first, exactly as jalphad's deinterleaveBlocks also assumes.
func deinterleave(raw []byte, ecl ECL, version Version) [][]byte {
	numBlocks, shortBlockLen, numShortBlocks, blockECCLen := blockLayout(ecl, int(version))

	blocks := make([][]byte, numBlocks)
	for i := range blocks {
		dataLen := shortBlockLen - blockECCLen
		if i >= numShortBlocks {
			dataLen++
		}
		blocks[i] = make([]byte, dataLen+blockECCLen)
	}

	k := 0
	for i := 0; i < shortBlockLen-blockECCLen+1; i++ {
		for j := 0; j < numBlocks; j++ {
			dataLen := len(blocks[j]) - blockECCLen
			if i < dataLen {
				blocks[j][i] = raw[k]
				k++
			}
		}
	}

	for i := 0; i < blockECCLen; i++ {
		for j := 0; j < numBlocks; j++ {
			dataLen := len(blocks[j]) - blockECCLen
			blocks[j][dataLen+i] = raw[k]
			k++
		}
	}

	return blocks
}

// BlockStat is the per-block correction outcome surfaced through
// Decoder.BlockStats.
type BlockStat struct {
	DataCodewords int
	ECCodewords   int
	ErrorsFixed   int
}

// correctBlocks Reed-Solomon-corrects every block independently and
// concatenates the recovered data codewords back into a single
// stream, mirroring jalphad's CorrectCodewords/reinterleaveBlocks pair
// but working over blockLayout's derived split instead of a fixed
// ECBlocks table lookup.
func correctBlocks(blocks [][]byte, blockECCLen int) ([]byte, []BlockStat, error) {
	stats := make([]BlockStat, len(blocks))
	var data []byte

	for i, block := range blocks {
		result, err := rsCorrect(block, blockECCLen)
		if err != nil {
			return nil, nil, wrapError(ErrReedSolomonUncorrectable, err)
		}
		dataLen := len(block) - blockECCLen
		data = append(data, result.corrected[:dataLen]...)
		stats[i] = BlockStat{
			DataCodewords: dataLen,
			ECCodewords:   blockECCLen,
			ErrorsFixed:   result.errorsFixed,
		}
	}

	return data, stats, nil
}

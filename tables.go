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
 *
 * Modeled after https://github.com/nayuki/QR-Code-generator.
 * See https://www.thonky.com/qr-code-tutorial/introduction and
 * https://en.wikipedia.org/wiki/QR_code for an explanation of how QR codes
 * are formatted.
 */

package qrdecode

// eccCodeWordsPerBlock and numErrorCorrectionBlocks are per the ISO/IEC
// 18004 tables, unchanged by direction: the same block geometry that
// the encoder used to lay codewords out is what the decoder needs to
// pull them back apart.
var (
	alignmentPatternPositions [41][]int

	eccCodeWordsPerBlock = [4][41]int{
		// Version:                                                                                                         Error correction level
		//       0,  1,  2,  3,  4,  5,  6,  7,  8,  9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40
		{-1, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},  // Low
		{-1, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28}, // Medium
		{-1, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30}, // Quartile
		{-1, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30}, // High
	}

	// numDataCodewords[ecl][version] is the total data-codeword count
	// (sum across blocks) decodeWithTransform checks correctBlocks'
	// output against before segment decoding.
	numDataCodewords [4][41]int

	numErrorCorrectionBlocks = [4][41]int{
		// Version:                                                                                                  Error correction level
		//       0, 1, 2, 3, 4, 5, 6, 7, 8, 9,10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40
		{-1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},              // Low
		{-1, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},     // Medium
		{-1, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},  // Quartile
		{-1, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81}, // High
	}

	numRawDataModules [41]int
)

func init() {
	// numRawDataModules[v] is the number of bits available for codewords
	// (data + EC, including remainder bits) once function patterns are
	// excluded. See spec §4.H.
	for v := 1; v <= 40; v++ {
		result := (16*v+128)*v + 64
		if v >= 2 {
			numAlign := v/7 + 2
			result -= (25*numAlign-10)*numAlign - 55
			if v >= 7 {
				result -= 36
			}
		}
		if result < 208 || result > 29648 {
			panic("numRawDataModules miscalculated")
		}
		numRawDataModules[v] = result
	}

	for e := Low; e <= High; e++ {
		for v := 1; v <= 40; v++ {
			numDataCodewords[e][v] = numRawDataModules[v]/8 - eccCodeWordsPerBlock[e][v]*numErrorCorrectionBlocks[e][v]
		}
	}

	for v := 1; v <= 40; v++ {
		alignmentPatternPositions[v] = getAlignmentPatternPositions(v)
	}
}

// getAlignmentPatternPositions returns the ascending list of alignment
// pattern center coordinates for the given version, shared by both axes.
func getAlignmentPatternPositions(version int) []int {
	if version == 1 {
		return []int{}
	}

	numAlign := version/7 + 2
	var step int
	if version == 32 { // Special snowflake.
		step = 26
	} else { // step = ceil[(size - 13) / (numAlign * 2 - 2)] * 2.
		step = (version*4+numAlign*2+1)/(numAlign*2-2) * 2
	}
	result := make([]int, numAlign)
	result[0] = 6
	for i, pos := len(result)-1, version*4+17-7; i >= 1; i-- {
		result[i] = pos
		pos -= step
	}

	return result
}

// blockLayout returns the number of blocks, the total length of a short
// block (its data codewords plus its EC codewords), the count of blocks
// that carry one fewer data codeword than the rest, and the EC
// codewords per block. It is the same split the
// encoder used to lay codewords into blocks (see addECCAndInterleave in
// the teacher's original form); de-interleaving needs to recover the
// identical split to know where each block's bytes landed.
func blockLayout(ecl ECL, version int) (numBlocks, shortBlockLen, numShortBlocks, blockECCLen int) {
	numBlocks = numErrorCorrectionBlocks[ecl][version]
	blockECCLen = eccCodeWordsPerBlock[ecl][version]
	rawCodeWords := numRawDataModules[version] / 8
	numShortBlocks = numBlocks - rawCodeWords%numBlocks
	shortBlockLen = rawCodeWords / numBlocks
	return
}

// computeFormatBits re-derives the 15-bit format codeword (EC level and
// mask packed with its BCH(15,5) code and XOR mask) for a given raw
// 5-bit value. format.go recomputes all 32 candidates with it each time
// it matches noisy format bits, rather than storing the results as a
// literal table — same BCH loop the encoder used to draw format bits, run
// forward instead of compared against a live matrix.
func computeFormatBits(data int) int {
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ rem>>9*0x537
	}
	return data<<10 ^ rem ^ 0x5412
}

// computeVersionBits re-derives the 18-bit version codeword (BCH(18,6))
// for a version number 7..40, used the same way computeFormatBits is.
func computeVersionBits(version int) int {
	rem := version
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*0x1F25
	}
	return version<<12 | rem
}

// reedSolomonComputeGenerator creates the Reed-Solomon generator
// polynomial of the given degree over GF(256)/0x11D. Coefficients are
// stored highest to lowest power, excluding the implicit leading 1.
func reedSolomonComputeGenerator(degree int) []byte {
	if degree < 1 || degree > 255 {
		panic("degree out of range")
	}

	result := make([]byte, degree)
	result[degree-1] = 1

	root := byte(1)
	for i := 0; i < degree; i++ {
		for j := 0; j < len(result); j++ {
			result[j] = gfMul(result[j], root)
			if j+1 < len(result) {
				result[j] ^= result[j+1]
			}
		}
		root = gfMul(root, 0x02)
	}

	return result
}

// alphanumericCharset is the ISO/IEC 18004 Table 5 character set, in
// encoding order; its index is the value a 5.5-bit alphanumeric pair
// decodes to.
const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

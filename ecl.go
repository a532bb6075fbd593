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

// ECL represents the error correction level recovered from a QR code's
// format information.
type ECL int8

// ECL values, in the canonical ordering used by the EC block tables
// (eccCodeWordsPerBlock and numErrorCorrectionBlocks are indexed by this
// value, not by the raw 2-bit format field — see ecFromFormatBits).
const (
	Low      ECL = iota // Low error correction level (recovers ~7% of data).
	Medium              // Medium error correction level (recovers ~15% of data).
	Quartile            // Quartile error correction level (recovers ~25% of data).
	High                // High error correction level (recovers ~30% of data).
)

func (e ECL) String() string {
	switch e {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	default:
		return "?"
	}
}

// ecPercent is the nominal percentage of codewords each level can
// recover, used for the fixed-module mismatch budget in decode.go.
var ecPercent = [4]int{7, 15, 25, 30}

// ecFromFormatBits maps the raw 2-bit EC field read out of format
// information to the canonical L=0,M=1,Q=2,H=3 ordering. The standard's
// own bit pattern is L=01,M=00,Q=11,H=10; XORing with 1 recovers the
// canonical numeric ordering directly (see spec §4.G).
func ecFromFormatBits(bits int) ECL {
	return ECL(bits ^ 1)
}

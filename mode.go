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

// mode is the mode indicator read from the front of a segment. The bit
// patterns are the ISO/IEC 18004 mode indicators; numBits holds the
// character-count field width for version ranges [1,9], [10,26], [27,40].
type mode struct {
	indicator int8
	numBits   [3]int8
}

// Mode indicator values. Kanji and Structured Append are recognized only
// well enough to report InvalidMode — spec.md's Non-goals exclude Kanji
// decoding, and the Open Question on Structured Append (spec.md §9)
// resolves to surfacing the header rather than reassembling it.
const (
	modeIndicatorTerminator     = 0x0
	modeIndicatorNumeric        = 0x1
	modeIndicatorAlphanumeric   = 0x2
	modeIndicatorStructuredAppend = 0x3
	modeIndicatorByte           = 0x4
	modeIndicatorKanji          = 0x8
	modeIndicatorECI            = 0x7
)

var (
	modeNumeric      = mode{modeIndicatorNumeric, [3]int8{10, 12, 14}}
	modeAlphanumeric = mode{modeIndicatorAlphanumeric, [3]int8{9, 11, 13}}
	modeByte         = mode{modeIndicatorByte, [3]int8{8, 16, 16}}
)

// numCharCountBits returns the character-count field width for this mode
// at the given version. The same three-way bucket the teacher's encoder
// uses for numCharCountBits applies unchanged when reading instead of
// writing: ISO/IEC 18004 defines one table for both directions.
func (m *mode) numCharCountBits(version int) int8 {
	return m.numBits[(version+7)/17]
}

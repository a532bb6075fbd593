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

// Version is a QR code version number, 1..40.
type Version int8

// Mask is one of the 8 data-masking patterns, 0..7.
type Mask int8

// module is the binary state of a single matrix cell: 0 for light, 1
// for dark. Kept as its own type, rather than bool, because it is
// XORed against mask output the same way the encoder's Modules grid
// was.
type module int8

func bToModule(b bool) module {
	if b {
		return 1
	}
	return 0
}

// MaxVersion and MinVersion bound the version range a symbol can
// report.
const (
	MinVersion = Version(1)
	MaxVersion = Version(40)
)

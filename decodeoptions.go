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

// decodeOptions holds the functional options for Decode. Same shape as
// the encoder's segmentEncoder: a struct of defaults, mutated one
// field at a time by whichever With* functions the caller passes.
type decodeOptions struct {
	minVersion, maxVersion Version
	debugSVGPath           string
	openDebugInBrowser     bool
}

// WithVersionRange restricts the corner-building and version-estimate
// stages to versions in [min, max], rejecting candidates outside the
// range before they reach the format/version BCH stage. Useful when
// the caller knows the symbol population in advance (e.g. a fixed
// label format) and wants to reject false-positive finder triples
// faster.
func WithVersionRange(min, max Version) func(*decodeOptions) {
	return func(o *decodeOptions) {
		o.minVersion = min
		o.maxVersion = max
	}
}

// WithDebugSVG writes an SVG rendering of the binarized image with every
// accepted finder triple marked to path, one file per corner attempt,
// for visual inspection of why a symbol did or didn't decode. The
// sampled module matrix is not rendered.
func WithDebugSVG(path string) func(*decodeOptions) {
	return func(o *decodeOptions) {
		o.debugSVGPath = path
	}
}

// WithOpenDebugInBrowser opens each written debug SVG in the system's
// default browser as it's produced. Has no effect unless WithDebugSVG
// is also given.
func WithOpenDebugInBrowser(open bool) func(*decodeOptions) {
	return func(o *decodeOptions) {
		o.openDebugInBrowser = open
	}
}

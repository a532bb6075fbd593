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
	"image"
	"math"
)

// Option configures a Decoder, the same functional-options shape the
// teacher's segmentEncoder used for EncodeSegments.
type Option func(*decodeOptions)

// Decoder recognizes QR Code symbols in an image and records
// diagnostics about the most recently decoded symbol. A Decoder holds
// no state between calls to Decode other than those diagnostics and
// its configured options; it is safe to reuse for multiple images, and
// a fresh zero-value *Decoder is never shared mutable state across
// concurrent Decode calls on different images (see spec §5).
type Decoder struct {
	Version       Version
	Dimension     int
	ECL           ECL
	Mask          Mask
	ECIAssignment int

	// LastStructuredAppend is set whenever a corner's segment stream
	// begins a Structured Append header (mode 0011), even though that
	// corner is then abandoned with ErrInvalidMode — see spec §9's
	// Structured Append open question and segment.go's
	// StructuredAppendHeader.
	LastStructuredAppend *StructuredAppendHeader

	// BlockStats records, per error-correction block of the most
	// recently decoded symbol, how many symbol errors Reed-Solomon
	// correction fixed.
	BlockStats []BlockStat

	opts decodeOptions
}

// NewDecoder builds a Decoder with the given options applied over the
// defaults (full version range, no debug output).
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		ECIAssignment: -1,
		opts: decodeOptions{
			minVersion: MinVersion,
			maxVersion: MaxVersion,
		},
	}
	for _, opt := range opts {
		opt(&d.opts)
	}
	return d
}

// decodeInfo carries the diagnostics of one successfully decoded
// corner back up to Decode, which copies them onto the Decoder once
// the corner's payload is accepted.
type decodeInfo struct {
	version    Version
	size       int
	ecl        ECL
	mask       Mask
	eci        int
	blockStats []BlockStat
}

// Decode finds every QR Code symbol in img and returns its decoded
// byte payload, one entry per symbol, in the order its corner was
// recovered. It never returns an error for "no code found" — an empty
// or nil slice is the result in that case, per spec §7's propagation
// policy that only corner-local failures exist below the image level.
// The sole error Decode can return is a malformed source image.
func Decode(img image.Image, opts ...Option) ([][]byte, error) {
	return NewDecoder(opts...).Decode(img)
}

// Decode is the method form of the package-level Decode, letting a
// caller inspect diagnostics (Version, ECL, Mask, ...) afterward or
// reuse a configured Decoder across many images.
func (d *Decoder) Decode(img image.Image) ([][]byte, error) {
	grid, err := binarize(img)
	if err != nil {
		return nil, err
	}

	finders := findFinders(grid)
	if len(finders) < 3 {
		return nil, nil
	}

	var results [][]byte
	for _, triple := range tripleIndices(len(finders)) {
		cn, err := buildCorner(&finders[triple[0]], &finders[triple[1]], &finders[triple[2]])
		if err != nil {
			continue
		}
		if cn.version < d.opts.minVersion || cn.version > d.opts.maxVersion {
			continue
		}

		payload, info, err := d.decodeCorner(cn, grid)
		if d.opts.debugSVGPath != "" {
			d.writeDebugSVG(cn, grid, info)
		}
		if err != nil {
			continue
		}

		results = append(results, payload)
		d.Version = info.version
		d.Dimension = info.size
		d.ECL = info.ecl
		d.Mask = info.mask
		d.ECIAssignment = info.eci
		d.BlockStats = info.blockStats
	}

	return results, nil
}

// tripleIndices enumerates every unordered triple of indices into a
// slice of length n, in ascending order, the candidate finder
// combinations the top-level decode loop tries as a corner.
func tripleIndices(n int) [][3]int {
	var out [][3]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				out = append(out, [3]int{i, j, k})
			}
		}
	}
	return out
}

// decodeCorner tries the 3-point affine transform first; on failure,
// for version >= 2, it searches a window around the predicted
// bottom-right alignment pattern and retries with the 4-point
// projective transform against every alignment candidate found, per
// spec §"Top-level decode loop".
func (d *Decoder) decodeCorner(cn *corner, grid *Grid) ([]byte, *decodeInfo, error) {
	payload, info, err := d.decodeWithTransform(cn, grid, cn.version, nil)
	if err == nil {
		return payload, info, nil
	}
	if cn.version < 2 {
		return nil, nil, err
	}

	for _, align := range findAlignmentWindow(cn, grid) {
		align := align
		payload, info, err2 := d.decodeWithTransform(cn, grid, cn.version, &align)
		if err2 == nil {
			return payload, info, nil
		}
	}
	return nil, nil, err
}

// decodeWithTransform runs the full matrix-sampling-through-segment-
// decoding pipeline for one geometric hypothesis: the affine transform
// when align is nil, otherwise the projective transform through that
// alignment candidate. It re-reads format/version information once
// more if version recovery corrects the initial estimate, resampling
// at the corrected size, exactly as spec §4.G describes.
func (d *Decoder) decodeWithTransform(cn *corner, grid *Grid, version Version, align *alignmentCandidate) ([]byte, *decodeInfo, error) {
	m, err := buildAndSample(cn, grid, version, align)
	if err != nil {
		return nil, nil, err
	}

	c1, c2 := readFormatBits(m)
	fi, err := decodeFormatBits(c1, c2)
	if err != nil {
		return nil, nil, err
	}

	finalVersion := version
	if version >= 7 {
		vc1, vc2 := readVersionBits(m)
		if rv, verr := decodeVersionBits(vc1, vc2); verr == nil && rv != version {
			finalVersion = rv
			m, err = buildAndSample(cn, grid, finalVersion, align)
			if err != nil {
				return nil, nil, err
			}
			c1, c2 = readFormatBits(m)
			fi, err = decodeFormatBits(c1, c2)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	mismatches := fixedModuleMismatch(m)
	checked := 2*(m.Size-1) + 1
	if mismatches*100 > checked*ecPercent[fi.ecl] {
		return nil, nil, newError(ErrFixedModuleMismatch)
	}

	unmask(m, fi.mask)

	totalCodewords := numRawDataModules[int(finalVersion)] / 8
	raw := unloadCodewords(m, totalCodewords)

	blocks := deinterleave(raw, fi.ecl, finalVersion)
	_, _, _, blockECCLen := blockLayout(fi.ecl, int(finalVersion))
	data, stats, err := correctBlocks(blocks, blockECCLen)
	if err != nil {
		return nil, nil, err
	}
	if len(data) != numDataCodewords[fi.ecl][int(finalVersion)] {
		return nil, nil, newError(ErrReedSolomonUncorrectable)
	}

	payload, eci, sa, err := decodeSegments(data, finalVersion)
	if sa != nil {
		d.LastStructuredAppend = sa
	}
	if err != nil {
		return nil, nil, err
	}

	info := &decodeInfo{
		version:    finalVersion,
		size:       m.Size,
		ecl:        fi.ecl,
		mask:       fi.mask,
		eci:        eci,
		blockStats: stats,
	}
	return payload, info, nil
}

// buildAndSample allocates a fresh matrix for version, builds its
// function template, computes the transform for the given geometric
// hypothesis, and samples the matrix from grid through it.
func buildAndSample(cn *corner, grid *Grid, version Version, align *alignmentCandidate) (*Matrix, error) {
	size := int(version)*4 + 17
	m := newMatrix(version)
	buildFunctionTemplate(m)

	var tf *transform
	var err error
	if align == nil {
		tf, err = affineTransform(cn, size)
	} else {
		tf, err = projectiveTransform(cn, align.centerX(), align.centerY(), size)
	}
	if err != nil {
		return nil, err
	}

	sampleMatrix(grid, tf, m)
	return m, nil
}

// findAlignmentWindow predicts the pixel position of the bottom-right
// alignment pattern (module (D-7,D-7)) from the 3-point transform and
// scans a square window of side ALIGNMENT_SEARCH_AREA *
// (topLineLength+leftLineLength) around it for alignment signatures,
// per spec §4.F/§"Top-level decode loop".
func findAlignmentWindow(cn *corner, grid *Grid) []alignmentCandidate {
	size := int(cn.version)*4 + 17
	tf, err := affineTransform(cn, size)
	if err != nil {
		return nil
	}

	px, py := tf.sample(float64(size-7), float64(size-7))
	side := alignmentSearchArea * (cn.topLineLength + cn.leftLineLength)
	half := side / 2

	rowMin := clampInt(int(math.Floor(py-half)), 0, grid.Height-1)
	rowMax := clampInt(int(math.Ceil(py+half)), 0, grid.Height-1)
	colMin := clampInt(int(math.Floor(px-half)), 0, grid.Width-1)
	colMax := clampInt(int(math.Ceil(px+half)), 0, grid.Width-1)

	var out []alignmentCandidate
	for row := rowMin; row <= rowMax; row++ {
		width := colMax - colMin + 1
		if width < 5 {
			continue
		}
		positions := runPositions(width, func(i int) bool { return grid.at(colMin+i, row) })
		for _, a := range findAlignmentSignatures(positions, row) {
			a.c1 += colMin
			a.c2 += colMin
			out = append(out, a)
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

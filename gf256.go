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

// GF(256) arithmetic under the QR code's primitive polynomial, 0x11D —
// the same field the encoder's reedSolomonMultiply worked in, tabulated
// here via exp/log so the decoder can afford per-symbol gfMul/gfDiv
// calls inside syndrome, Euclidean-algorithm and Chien search loops.
var (
	gfExp [512]byte
	gfLog [256]int
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		gfExp[i] = byte(x)
		gfLog[x] = i
		x <<= 1
		if x&0x100 != 0 {
			x ^= 0x11D
		}
	}
	for i := 255; i < 512; i++ {
		gfExp[i] = gfExp[i-255]
	}
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[int(gfLog[a])+int(gfLog[b])]
}

func gfInverse(a byte) byte {
	if a == 0 {
		panic("gf256: inverse of zero")
	}
	return gfExp[255-gfLog[a]]
}

func gfDiv(a, b byte) byte {
	if a == 0 {
		return 0
	}
	return gfMul(a, gfInverse(b))
}

// gfPoly is a GF(256) polynomial, coefficients stored highest-degree
// first — the same convention reedSolomonComputeGenerator used for
// generator polynomials, extended here to cover received codewords
// and the syndrome, error-locator and error-evaluator polynomials the
// Euclidean decoder works with.
type gfPoly []byte

// newGFPoly trims leading zero coefficients, keeping the invariant
// that a nonzero polynomial's first coefficient is nonzero.
func newGFPoly(coeffs []byte) gfPoly {
	i := 0
	for i < len(coeffs)-1 && coeffs[i] == 0 {
		i++
	}
	return gfPoly(coeffs[i:])
}

func (p gfPoly) degree() int {
	return len(p) - 1
}

func (p gfPoly) isZero() bool {
	return len(p) == 1 && p[0] == 0
}

// coefficient returns the coefficient of x^degree, 0 if out of range.
func (p gfPoly) coefficient(degree int) byte {
	if degree < 0 || degree > p.degree() {
		return 0
	}
	return p[len(p)-1-degree]
}

func (p gfPoly) evaluateAt(x byte) byte {
	if x == 0 {
		return p.coefficient(0)
	}
	result := p[0]
	for i := 1; i < len(p); i++ {
		result = gfMul(result, x) ^ p[i]
	}
	return result
}

func gfPolyAdd(a, b gfPoly) gfPoly {
	if len(a) < len(b) {
		a, b = b, a
	}
	diff := len(a) - len(b)
	result := make([]byte, len(a))
	copy(result, a)
	for i, c := range b {
		result[diff+i] ^= c
	}
	return newGFPoly(result)
}

func gfPolyMul(a, b gfPoly) gfPoly {
	if a.isZero() || b.isZero() {
		return gfPoly{0}
	}
	result := make([]byte, len(a)+len(b)-1)
	for i, ac := range a {
		if ac == 0 {
			continue
		}
		for j, bc := range b {
			result[i+j] ^= gfMul(ac, bc)
		}
	}
	return newGFPoly(result)
}

func gfPolyMulScalar(p gfPoly, scalar byte) gfPoly {
	if scalar == 0 {
		return gfPoly{0}
	}
	result := make([]byte, len(p))
	for i, c := range p {
		result[i] = gfMul(c, scalar)
	}
	return newGFPoly(result)
}

// gfPolyMulMonomial returns p * (coeff * x^degree).
func gfPolyMulMonomial(p gfPoly, degree int, coeff byte) gfPoly {
	if coeff == 0 {
		return gfPoly{0}
	}
	result := make([]byte, len(p)+degree)
	for i, c := range p {
		result[i] = gfMul(c, coeff)
	}
	return newGFPoly(result)
}

func gfBuildMonomial(degree int, coeff byte) gfPoly {
	if coeff == 0 {
		return gfPoly{0}
	}
	result := make([]byte, degree+1)
	result[0] = coeff
	return gfPoly(result)
}

// rsBlock holds the outcome of correcting a single codeword block: the
// corrected data+EC bytes, and how many symbol errors were fixed —
// surfaced through Decoder.BlockStats per the correction-transparency
// supplement.
type rsBlock struct {
	corrected   []byte
	errorsFixed int
}

// rsCorrect corrects up to numECWords/2 symbol errors in codeword using
// syndrome computation, the Euclidean algorithm (in place of explicit
// Berlekamp-Massey) to find the error locator and evaluator
// polynomials, Chien search for error positions and Forney's formula
// for error magnitudes — the decoding half of the Reed-Solomon
// algorithm jalphad's error_correction.go runs stage by stage, folded
// here into the shared gfPoly representation instead of a dedicated
// field-element wrapper type.
func rsCorrect(codeword []byte, numECWords int) (rsBlock, error) {
	received := newGFPoly(codeword)

	syndromeCoeffs := make([]byte, numECWords)
	noError := true
	for i := 0; i < numECWords; i++ {
		ev := received.evaluateAt(gfExp[i])
		syndromeCoeffs[numECWords-1-i] = ev
		if ev != 0 {
			noError = false
		}
	}
	if noError {
		return rsBlock{corrected: codeword, errorsFixed: 0}, nil
	}

	syndrome := newGFPoly(syndromeCoeffs)
	sigma, omega, err := rsEuclidean(gfBuildMonomial(numECWords, 1), syndrome, numECWords)
	if err != nil {
		return rsBlock{}, wrapError(ErrReedSolomonUncorrectable, err)
	}

	errorLocations, err := rsFindErrorLocations(sigma)
	if err != nil {
		return rsBlock{}, wrapError(ErrReedSolomonUncorrectable, err)
	}
	if len(errorLocations) > numECWords/2 {
		return rsBlock{}, newError(ErrReedSolomonUncorrectable)
	}

	errorMagnitudes := rsFindErrorMagnitudes(omega, errorLocations)

	corrected := append([]byte(nil), codeword...)
	for i, loc := range errorLocations {
		position := len(corrected) - 1 - gfLog[loc]
		if position < 0 || position >= len(corrected) {
			return rsBlock{}, newError(ErrReedSolomonUncorrectable)
		}
		corrected[position] ^= errorMagnitudes[i]
	}

	return rsBlock{corrected: corrected, errorsFixed: len(errorLocations)}, nil
}

// rsEuclidean runs the extended Euclidean algorithm on (a, b) until the
// remainder's degree drops below R/2, recovering the error locator
// (sigma) and error evaluator (omega) polynomials from a single
// division chain instead of a separate Berlekamp-Massey pass.
func rsEuclidean(a, b gfPoly, r int) (sigma, omega gfPoly, err error) {
	if a.degree() < b.degree() {
		a, b = b, a
	}

	rLast, rCur := a, b
	tLast, tCur := gfPoly{0}, gfPoly{1}

	for 2*rCur.degree() >= r {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = rCur, tCur

		if rLast.isZero() {
			return nil, nil, newError(ErrReedSolomonUncorrectable)
		}

		rCur = rLastLast
		q := gfPoly{0}
		denomLeadInverse := gfInverse(rLast.coefficient(rLast.degree()))

		for rCur.degree() >= rLast.degree() && !rCur.isZero() {
			degreeDiff := rCur.degree() - rLast.degree()
			scale := gfMul(rCur.coefficient(rCur.degree()), denomLeadInverse)
			q = gfPolyAdd(q, gfBuildMonomial(degreeDiff, scale))
			rCur = gfPolyAdd(rCur, gfPolyMulMonomial(rLast, degreeDiff, scale))
		}

		tCur = gfPolyAdd(gfPolyMul(q, tLast), tLastLast)

		if rCur.degree() >= rLast.degree() {
			return nil, nil, newError(ErrReedSolomonUncorrectable)
		}
	}

	sigmaTildeAtZero := tCur.coefficient(0)
	if sigmaTildeAtZero == 0 {
		return nil, nil, newError(ErrReedSolomonUncorrectable)
	}

	inverse := gfInverse(sigmaTildeAtZero)
	return gfPolyMulScalar(tCur, inverse), gfPolyMulScalar(rCur, inverse), nil
}

// rsFindErrorLocations runs a brute-force Chien search: sigma's roots
// (evaluated over every nonzero field element) give the inverse of
// each error's position.
func rsFindErrorLocations(sigma gfPoly) ([]byte, error) {
	numErrors := sigma.degree()
	if numErrors == 0 {
		return nil, nil
	}

	result := make([]byte, 0, numErrors)
	for i := 1; i < 256 && len(result) < numErrors; i++ {
		if sigma.evaluateAt(byte(i)) == 0 {
			result = append(result, gfInverse(byte(i)))
		}
	}
	if len(result) != numErrors {
		return nil, newError(ErrReedSolomonUncorrectable)
	}
	return result, nil
}

// rsFindErrorMagnitudes applies Forney's formula at each error
// location using the error evaluator polynomial omega.
func rsFindErrorMagnitudes(omega gfPoly, errorLocations []byte) []byte {
	result := make([]byte, len(errorLocations))
	for i, loc := range errorLocations {
		xInverse := gfInverse(loc)
		denominator := byte(1)
		for j, other := range errorLocations {
			if i == j {
				continue
			}
			denominator = gfMul(denominator, 1^gfMul(other, xInverse))
		}
		result[i] = gfMul(omega.evaluateAt(xInverse), gfInverse(denominator))
	}
	return result
}

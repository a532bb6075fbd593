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

import "fmt"

// ErrorKind classifies why a single corner failed to decode. Decode
// recovers every corner-level kind locally and does not return it, even
// when every candidate corner in the image failed (the result is then
// empty with a nil error); only ErrBinarizationFailed reaches the caller.
type ErrorKind int8

// Error kinds, in roughly pipeline order.
const (
	ErrBinarizationFailed ErrorKind = iota
	ErrInsufficientFinders
	ErrCornerInvalid
	ErrTransformSingular
	ErrVersionUnreadable
	ErrFormatUnreadable
	ErrFixedModuleMismatch
	ErrReedSolomonUncorrectable
	ErrBitStreamUnderflow
	ErrInvalidMode
	ErrEciEncodingMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrBinarizationFailed:
		return "binarization failed"
	case ErrInsufficientFinders:
		return "insufficient finders"
	case ErrCornerInvalid:
		return "corner invalid"
	case ErrTransformSingular:
		return "transform singular"
	case ErrVersionUnreadable:
		return "version unreadable"
	case ErrFormatUnreadable:
		return "format unreadable"
	case ErrFixedModuleMismatch:
		return "fixed module mismatch"
	case ErrReedSolomonUncorrectable:
		return "reed-solomon uncorrectable"
	case ErrBitStreamUnderflow:
		return "bit stream underflow"
	case ErrInvalidMode:
		return "invalid mode"
	case ErrEciEncodingMalformed:
		return "eci encoding malformed"
	default:
		return "unknown decode error"
	}
}

// decodeError is the sum-type stand-in the source's thrown exceptions
// become: every stage that can abandon the current corner returns one of
// these instead of unwinding the stack. See DESIGN.md's decode.go entry.
type decodeError struct {
	kind  ErrorKind
	cause error
}

func newError(kind ErrorKind) *decodeError {
	return &decodeError{kind: kind}
}

func wrapError(kind ErrorKind, cause error) *decodeError {
	return &decodeError{kind: kind, cause: cause}
}

func (e *decodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("qrdecode: %s: %v", e.kind, e.cause)
	}
	return fmt.Sprintf("qrdecode: %s", e.kind)
}

func (e *decodeError) Unwrap() error {
	return e.cause
}

// Kind returns the classification of a decode error, or false if err did
// not originate from this package.
func Kind(err error) (ErrorKind, bool) {
	de, ok := err.(*decodeError)
	if !ok {
		return 0, false
	}
	return de.kind, true
}

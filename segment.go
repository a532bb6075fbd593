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

import "strings"

// StructuredAppendHeader is the raw header of a Structured Append
// segment (mode 0011): which symbol this is, how many symbols the
// full message spans, and the parity byte over the de-masked,
// corrected data of every symbol. Reassembly across symbols is out of
// scope; the header is surfaced so a caller can do it themselves.
type StructuredAppendHeader struct {
	SymbolIndex, SymbolCount int
	Parity                   byte
}

// decodeSegments reads mode/length/data segments from the corrected
// data codewords until a terminator or end of stream, concatenating
// every Numeric/Alphanumeric/Byte segment's bytes into one payload.
// This is the read side of MakeNumeric/MakeAlphanumeric/MakeBytes/
// MakeECI: same bit widths and tables, consumed instead of appended.
func decodeSegments(data []byte, version Version) ([]byte, int, *StructuredAppendHeader, error) {
	r := newBitReader(data)
	var out []byte
	eciAssignment := -1
	var structuredAppend *StructuredAppendHeader

	for {
		if r.bitsAvailable() < 4 {
			break
		}
		indicator, err := r.readBits(4)
		if err != nil {
			return nil, eciAssignment, structuredAppend, err
		}

		switch indicator {
		case modeIndicatorTerminator:
			return out, eciAssignment, structuredAppend, nil

		case modeIndicatorECI:
			value, err := readECIValue(r)
			if err != nil {
				return nil, eciAssignment, structuredAppend, err
			}
			eciAssignment = value

		case modeIndicatorStructuredAppend:
			header, err := readStructuredAppendHeader(r)
			if err != nil {
				return nil, eciAssignment, structuredAppend, err
			}
			structuredAppend = header
			return nil, eciAssignment, structuredAppend, newError(ErrInvalidMode)

		case modeIndicatorNumeric:
			bytes, err := decodeNumericSegment(r, version)
			if err != nil {
				return nil, eciAssignment, structuredAppend, err
			}
			out = append(out, bytes...)

		case modeIndicatorAlphanumeric:
			bytes, err := decodeAlphanumericSegment(r, version)
			if err != nil {
				return nil, eciAssignment, structuredAppend, err
			}
			out = append(out, bytes...)

		case modeIndicatorByte:
			bytes, err := decodeByteSegment(r, version)
			if err != nil {
				return nil, eciAssignment, structuredAppend, err
			}
			out = append(out, bytes...)

		default:
			return nil, eciAssignment, structuredAppend, newError(ErrInvalidMode)
		}
	}

	return out, eciAssignment, structuredAppend, nil
}

func readECIValue(r *bitReader) (int, error) {
	first, err := r.readBits(8)
	if err != nil {
		return 0, wrapError(ErrEciEncodingMalformed, err)
	}

	switch {
	case first>>7 == 0:
		return first, nil
	case first>>6 == 0b10:
		rest, err := r.readBits(8)
		if err != nil {
			return 0, wrapError(ErrEciEncodingMalformed, err)
		}
		return (first&0x3F)<<8 | rest, nil
	case first>>5 == 0b110:
		rest, err := r.readBits(16)
		if err != nil {
			return 0, wrapError(ErrEciEncodingMalformed, err)
		}
		return (first&0x1F)<<16 | rest, nil
	default:
		return 0, newError(ErrEciEncodingMalformed)
	}
}

func readStructuredAppendHeader(r *bitReader) (*StructuredAppendHeader, error) {
	index, err := r.readBits(4)
	if err != nil {
		return nil, err
	}
	count, err := r.readBits(4)
	if err != nil {
		return nil, err
	}
	parity, err := r.readBits(8)
	if err != nil {
		return nil, err
	}
	return &StructuredAppendHeader{SymbolIndex: index, SymbolCount: count + 1, Parity: byte(parity)}, nil
}

func decodeNumericSegment(r *bitReader, version Version) ([]byte, error) {
	count, err := r.readBits(modeNumeric.numCharCountBits(int(version)))
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	remaining := count
	for remaining >= 3 {
		v, err := r.readBits(10)
		if err != nil {
			return nil, err
		}
		sb.WriteString(padDigits(v, 3))
		remaining -= 3
	}
	switch remaining {
	case 2:
		v, err := r.readBits(7)
		if err != nil {
			return nil, err
		}
		sb.WriteString(padDigits(v, 2))
	case 1:
		v, err := r.readBits(4)
		if err != nil {
			return nil, err
		}
		sb.WriteString(padDigits(v, 1))
	}

	if sb.Len() != count {
		return nil, newError(ErrBitStreamUnderflow)
	}
	return []byte(sb.String()), nil
}

func padDigits(v, digits int) string {
	s := itoa(v)
	for len(s) < digits {
		s = "0" + s
	}
	return s
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

func decodeAlphanumericSegment(r *bitReader, version Version) ([]byte, error) {
	count, err := r.readBits(modeAlphanumeric.numCharCountBits(int(version)))
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	remaining := count
	for remaining >= 2 {
		v, err := r.readBits(11)
		if err != nil {
			return nil, err
		}
		sb.WriteByte(alphanumericCharset[v/45])
		sb.WriteByte(alphanumericCharset[v%45])
		remaining -= 2
	}
	if remaining == 1 {
		v, err := r.readBits(6)
		if err != nil {
			return nil, err
		}
		sb.WriteByte(alphanumericCharset[v])
	}

	if sb.Len() != count {
		return nil, newError(ErrBitStreamUnderflow)
	}
	return []byte(sb.String()), nil
}

func decodeByteSegment(r *bitReader, version Version) ([]byte, error) {
	count, err := r.readBits(modeByte.numCharCountBits(int(version)))
	if err != nil {
		return nil, err
	}

	out := make([]byte, count)
	for i := range out {
		b, err := r.readBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(b)
	}
	return out, nil
}

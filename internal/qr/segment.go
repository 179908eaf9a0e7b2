// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

import (
	"golang.org/x/text/encoding/charmap"
)

// Segment is a run of data encoded in a single mode.
type Segment struct {
	// Mode used to encode the data.
	Mode Mode
	// CharCount is the value of the character count indicator: characters for numeric
	// and alphanumeric segments, bytes for byte segments.
	CharCount int

	data bitBuffer
}

// NewSegment encodes data in the mode returned by ChooseMode.
func NewSegment(data string) *Segment {
	switch mode := ChooseMode(data); mode {
	case Numeric:
		return &Segment{Mode: mode, CharCount: len(data), data: encodeNumeric(data)}
	case Alphanumeric:
		return &Segment{Mode: mode, CharCount: len(data), data: encodeAlphanumeric(data)}
	default:
		raw := byteModeBytes(data)
		return &Segment{Mode: Byte, CharCount: len(raw), data: encodeBytes(raw)}
	}
}

// Bits returns the encoded payload, without mode and count indicators.
func (s *Segment) Bits() []bool {
	return s.data.Bits()
}

// bitLength returns the length of the segment at version including its header.
func (s *Segment) bitLength(version int) int {
	return 4 + s.Mode.charCountBits(version) + s.data.len()
}

// totalBits returns the length of the segment at version including its header,
// or -1 when the character count does not fit the count indicator.
func (s *Segment) totalBits(version int) int {
	if s.CharCount >= 1<<uint(s.Mode.charCountBits(version)) {
		return -1
	}

	return s.bitLength(version)
}

// appendTo writes mode indicator, character count and payload into buffer.
func (s *Segment) appendTo(buffer *bitBuffer, version int) {
	buffer.appendBits(s.Mode.indicator(), 4)
	buffer.appendBits(uint32(s.CharCount), s.Mode.charCountBits(version))
	buffer.appendBuffer(&s.data)
}

func encodeNumeric(data string) bitBuffer {
	var out bitBuffer
	for i := 0; i < len(data); i += 3 {
		end := min(i+3, len(data))
		var value uint32
		for _, digit := range data[i:end] {
			value = value*10 + uint32(digit-'0')
		}

		// 3 digits in 10 bits, 2 in 7 and 1 in 4
		out.appendBits(value, (end-i)*3+1)
	}

	return out
}

func encodeAlphanumeric(data string) bitBuffer {
	var out bitBuffer
	for i := 0; i+1 < len(data); i += 2 {
		value := alphanumericValues[rune(data[i])]*45 + alphanumericValues[rune(data[i+1])]
		out.appendBits(value, 11)
	}

	if len(data)%2 == 1 {
		out.appendBits(alphanumericValues[rune(data[len(data)-1])], 6)
	}

	return out
}

// byteModeBytes returns the ISO-8859-1 representation of data if every rune belongs to
// that charset, otherwise its UTF-8 bytes.
func byteModeBytes(data string) []byte {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(data)
	if err != nil {
		return []byte(data)
	}

	return []byte(encoded)
}

func encodeBytes(raw []byte) bitBuffer {
	var out bitBuffer
	for _, b := range raw {
		out.appendBits(uint32(b), 8)
	}

	return out
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

// bitBuffer is an append only sequence of bits, most significant bit first.
type bitBuffer struct {
	bits []bool
}

// appendBits appends the low length bits of value.
func (b *bitBuffer) appendBits(value uint32, length int) {
	for i := length - 1; i >= 0; i-- {
		b.bits = append(b.bits, (value>>uint(i))&1 == 1)
	}
}

// appendBuffer appends every bit of other.
func (b *bitBuffer) appendBuffer(other *bitBuffer) {
	b.bits = append(b.bits, other.bits...)
}

func (b *bitBuffer) len() int {
	return len(b.bits)
}

// Bits returns a copy of the buffer content.
func (b *bitBuffer) Bits() []bool {
	out := make([]bool, len(b.bits))
	copy(out, b.bits)
	return out
}

// bytes packs the buffer into bytes, padding the last one with zero bits.
func (b *bitBuffer) bytes() []byte {
	out := make([]byte, (len(b.bits)+7)/8)
	for i, bit := range b.bits {
		if bit {
			out[i>>3] |= 1 << (7 - uint(i&7))
		}
	}

	return out
}

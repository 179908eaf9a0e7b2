// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

// GF(256) arithmetic with the primitive polynomial x^8+x^4+x^3+x^2+1.
const gfPrimitive = 0x11D

var (
	gfExp [512]byte
	gfLog [256]byte
)

func init() {
	x := 1
	for i := range 255 {
		gfExp[i] = byte(x)
		gfLog[x] = byte(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= gfPrimitive
		}
	}
	for i := 255; i < len(gfExp); i++ {
		gfExp[i] = gfExp[i-255]
	}
}

func gfMultiply(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}

	return gfExp[int(gfLog[a])+int(gfLog[b])]
}

// generatorPolynomial returns the coefficients of (x-α^0)(x-α^1)...(x-α^(degree-1)),
// highest power first, without the leading 1.
func generatorPolynomial(degree int) []byte {
	result := make([]byte, degree)
	result[degree-1] = 1

	root := byte(1)
	for range degree {
		for j := range degree {
			result[j] = gfMultiply(result[j], root)
			if j+1 < degree {
				result[j] ^= result[j+1]
			}
		}
		root = gfMultiply(root, 0x02)
	}

	return result
}

// ecCodewords returns the degree error correction codewords of data, the remainder
// of data(x)*x^degree divided by the generator polynomial.
func ecCodewords(data []byte, degree int) []byte {
	generator := generatorPolynomial(degree)
	remainder := make([]byte, degree)
	for _, b := range data {
		factor := b ^ remainder[0]
		copy(remainder, remainder[1:])
		remainder[degree-1] = 0
		for i, coefficient := range generator {
			remainder[i] ^= gfMultiply(coefficient, factor)
		}
	}

	return remainder
}

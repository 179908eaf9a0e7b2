// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

import "fmt"

// Mode is the data encoding mode of a segment.
type Mode int

const (
	// Numeric encodes the digits 0-9.
	Numeric Mode = iota
	// Alphanumeric encodes digits, upper case letters and the symbols " $%*+-./:".
	Alphanumeric
	// Byte encodes arbitrary bytes.
	Byte
)

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

var alphanumericValues = func() map[rune]uint32 {
	values := make(map[rune]uint32, len(alphanumericCharset))
	for i, char := range alphanumericCharset {
		values[char] = uint32(i)
	}
	return values
}()

func (m Mode) String() string {
	switch m {
	case Numeric:
		return "numeric"
	case Alphanumeric:
		return "alphanumeric"
	case Byte:
		return "byte"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// indicator returns the four bit mode indicator.
func (m Mode) indicator() uint32 {
	switch m {
	case Numeric:
		return 0b0001
	case Alphanumeric:
		return 0b0010
	default:
		return 0b0100
	}
}

// charCountBits returns the width of the character count indicator at version.
func (m Mode) charCountBits(version int) int {
	var widths [3]int
	switch m {
	case Numeric:
		widths = [3]int{10, 12, 14}
	case Alphanumeric:
		widths = [3]int{9, 11, 13}
	default:
		widths = [3]int{8, 16, 16}
	}

	switch {
	case version <= 9:
		return widths[0]
	case version <= 26:
		return widths[1]
	default:
		return widths[2]
	}
}

func (m Mode) allows(char rune) bool {
	switch m {
	case Numeric:
		return char >= '0' && char <= '9'
	case Alphanumeric:
		_, ok := alphanumericValues[char]
		return ok
	default:
		return true
	}
}

// ChooseMode returns the most compact mode able to represent every character of data.
func ChooseMode(data string) Mode {
	canBeNumeric := true
	canBeAlphanumeric := true
	for _, char := range data {
		if canBeNumeric && !Numeric.allows(char) {
			canBeNumeric = false
		}
		if canBeAlphanumeric && !Alphanumeric.allows(char) {
			canBeAlphanumeric = false
		}
	}

	switch {
	case canBeNumeric:
		return Numeric
	case canBeAlphanumeric:
		return Alphanumeric
	default:
		return Byte
	}
}

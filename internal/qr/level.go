// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

import (
	"fmt"
	"strings"
)

// Level is the error correction level of a symbol.
type Level int

const (
	// Low recovers about 7% of the codewords.
	Low Level = iota
	// Medium recovers about 15% of the codewords.
	Medium
	// Quartile recovers about 25% of the codewords.
	Quartile
	// High recovers about 30% of the codewords.
	High
)

// DefaultLevel is used when no level is requested.
const DefaultLevel = Medium

// AllLevels lists the levels from the weakest to the strongest.
var AllLevels = []Level{Low, Medium, Quartile, High}

var levelNames = map[Level]string{
	Low:      "low",
	Medium:   "medium",
	Quartile: "quartile",
	High:     "high",
}

// ParseLevel returns the level matching s. Full names and their initial letter are
// accepted regardless of case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return Low, nil
	case "medium", "m":
		return Medium, nil
	case "quartile", "q":
		return Quartile, nil
	case "high", "h":
		return High, nil
	default:
		return 0, fmt.Errorf("%w %q (options are low, medium, quartile, high)", ErrUnknownLevel, s)
	}
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}

	return fmt.Sprintf("Level(%d)", int(l))
}

// Valid reports whether l is one of the four defined levels.
func (l Level) Valid() bool {
	return l >= Low && l <= High
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}

	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}

	*l = parsed
	return nil
}

// formatBits returns the two bit level indicator used in the format information.
func (l Level) formatBits() int {
	switch l {
	case Low:
		return 0b01
	case Medium:
		return 0b00
	case Quartile:
		return 0b11
	default:
		return 0b10
	}
}

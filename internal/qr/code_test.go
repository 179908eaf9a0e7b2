// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readFormatBits reads the first copy of the format information around the top left finder.
func readFormatBits(code *Code) int {
	bits := 0
	set := func(i int, dark bool) {
		if dark {
			bits |= 1 << uint(i)
		}
	}

	for i := 0; i <= 5; i++ {
		set(i, code.Dark(8, i))
	}
	set(6, code.Dark(8, 7))
	set(7, code.Dark(8, 8))
	set(8, code.Dark(7, 8))
	for i := 9; i < 15; i++ {
		set(i, code.Dark(14-i, 8))
	}

	return bits
}

// readSecondFormatBits reads the copy split between the other two finders.
func readSecondFormatBits(code *Code) int {
	bits := 0
	size := code.Size()
	for i := range 8 {
		if code.Dark(size-1-i, 8) {
			bits |= 1 << uint(i)
		}
	}
	for i := 8; i < 15; i++ {
		if code.Dark(8, size-15+i) {
			bits |= 1 << uint(i)
		}
	}

	return bits
}

func TestEncode(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		data            string
		level           Level
		expectedVersion Version
		expectedMode    Mode
	}{
		"alphanumeric": {
			data:            "HELLO WORLD",
			level:           Quartile,
			expectedVersion: 1,
			expectedMode:    Alphanumeric,
		},
		"numeric": {
			data:            "01234567",
			level:           Medium,
			expectedVersion: 1,
			expectedMode:    Numeric,
		},
		"byte with multiple blocks": {
			data:            "Hello, world! I am a weirdly complicated QR code!",
			level:           Quartile,
			expectedVersion: 5,
			expectedMode:    Byte,
		},
		"with version information": {
			data:            strings.Repeat("https://example.com/", 10),
			level:           High,
			expectedVersion: 15,
			expectedMode:    Byte,
		},
		"empty": {
			data:            "",
			level:           Low,
			expectedVersion: 1,
			expectedMode:    Numeric,
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			code, err := Encode(test.data, test.level)
			require.NoError(t, err)

			assert.Equal(t, test.expectedVersion, code.Version)
			assert.Equal(t, test.expectedMode, code.Mode)
			assert.Equal(t, test.level, code.Level)
			assert.Equal(t, test.expectedVersion.ModulesPerSide(), code.Size())

			expectedFormat := formatInfoBits(test.level, code.Mask)
			assert.Equal(t, expectedFormat, readFormatBits(code))
			assert.Equal(t, expectedFormat, readSecondFormatBits(code))
			assert.True(t, code.Dark(8, code.Size()-8))

			for y := range code.Size() {
				for x := range code.Size() {
					require.NotEqual(t, Unset, code.Module(x, y).Kind)
				}
			}

			lowest := -1
			for mask := range MaskCount {
				forced, err := Encode(test.data, test.level, WithMask(mask))
				require.NoError(t, err)
				assert.Equal(t, mask, forced.Mask)
				if lowest < 0 || forced.Penalty() < lowest {
					lowest = forced.Penalty()
				}
			}
			assert.Equal(t, lowest, code.Penalty())
		})
	}
}

func TestEncodeOptions(t *testing.T) {
	t.Parallel()

	code, err := Encode("HELLO WORLD", Medium, WithMinVersion(3), WithMask(5))
	require.NoError(t, err)
	assert.Equal(t, Version(3), code.Version)
	assert.Equal(t, 5, code.Mask)

	code, err = Encode("HELLO WORLD", Medium, WithMask(5), WithMask(AutoMask))
	require.NoError(t, err)
	assert.Equal(t, Version(1), code.Version)
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		data          string
		level         Level
		opts          []Option
		expectedError error
	}{
		"too long": {
			data:          strings.Repeat("a", 2954),
			level:         Low,
			expectedError: ErrDataTooLong,
		},
		"mask out of range": {
			data:          "HELLO",
			level:         Low,
			opts:          []Option{WithMask(8)},
			expectedError: ErrInvalidMask,
		},
		"negative mask": {
			data:          "HELLO",
			level:         Low,
			opts:          []Option{WithMask(-2)},
			expectedError: ErrInvalidMask,
		},
		"version out of range": {
			data:          "HELLO",
			level:         Low,
			opts:          []Option{WithMinVersion(50)},
			expectedError: ErrInvalidVersion,
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			code, err := Encode(test.data, test.level, test.opts...)
			require.ErrorIs(t, err, test.expectedError)
			assert.Nil(t, code)
		})
	}
}

func TestEncodeLargestSymbol(t *testing.T) {
	t.Parallel()

	// 2953 bytes is the byte mode capacity of 40-L
	code, err := Encode(strings.Repeat("a", 2953), Low)
	require.NoError(t, err)
	assert.Equal(t, Version(MaxVersion), code.Version)
	assert.Equal(t, 177, code.Size())
}

func TestCodeOutOfBounds(t *testing.T) {
	t.Parallel()

	code, err := Encode("HELLO WORLD", Low)
	require.NoError(t, err)

	assert.False(t, code.Dark(-1, 0))
	assert.False(t, code.Dark(0, code.Size()))
	assert.Equal(t, Module{}, code.Module(code.Size(), 0))
	assert.Equal(t, Module{Kind: Finder, Dark: true}, code.Module(0, 0))
}

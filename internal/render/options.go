// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const (
	// DefaultScale is the number of pixels drawn for each module.
	DefaultScale = 4
	// DefaultBorder is the quiet zone width in modules required by the standard.
	DefaultBorder = 4
	// DefaultForeground is the colour of dark modules.
	DefaultForeground = "#000000"
	// DefaultBackground is the colour of light modules.
	DefaultBackground = "#ffffff"

	maxScale  = 100
	maxBorder = 40
)

var (
	// ErrInvalidOptions is returned when the render options cannot be used.
	ErrInvalidOptions = errors.New("invalid render options")
)

// Options controls the size and colours of the rendered symbol.
type Options struct {
	// Scale is the side of a module in pixels, ignored by text formats.
	Scale int
	// Border is the quiet zone width in modules.
	Border int
	// Foreground is the #rrggbb colour of dark modules.
	Foreground string
	// Background is the #rrggbb colour of light modules.
	Background string
}

// DefaultOptions returns the options used when nothing is customized.
func DefaultOptions() Options {
	return Options{
		Scale:      DefaultScale,
		Border:     DefaultBorder,
		Foreground: DefaultForeground,
		Background: DefaultBackground,
	}
}

// Validate checks every option and reports all the problems found.
func (o Options) Validate() error {
	problems := make([]string, 0)
	if o.Scale < 1 || o.Scale > maxScale {
		problems = append(problems, fmt.Sprintf("scale must be between 1 and %d", maxScale))
	}
	if o.Border < 0 || o.Border > maxBorder {
		problems = append(problems, fmt.Sprintf("border must be between 0 and %d", maxBorder))
	}
	if _, err := ParseColor(o.Foreground); err != nil {
		problems = append(problems, "foreground "+err.Error())
	}
	if _, err := ParseColor(o.Background); err != nil {
		problems = append(problems, "background "+err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(problems, ", "))
	}

	return nil
}

// ParseColor parses a #rrggbb or #rgb hex colour.
func ParseColor(hex string) (color.RGBA, error) {
	value := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(value) == 3 {
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	}

	if len(value) != 6 {
		return color.RGBA{}, fmt.Errorf("%q is not a hex colour", hex)
	}

	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q is not a hex colour", hex)
	}

	return color.RGBA{
		R: uint8(parsed >> 16),
		G: uint8(parsed >> 8),
		B: uint8(parsed),
		A: 0xff,
	}, nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package render

import (
	"image/color"
	"io"
	"strings"

	"github.com/mithaler/qrust/internal/qr"
)

type textRenderer struct{}

type asciiRenderer struct{}

// inkFunc reports whether the module at x, y must be drawn with a visible character.
type inkFunc func(x, y int) bool

// inkFor returns which modules get printed. Terminals print glyphs in the foreground
// colour, so when the requested foreground is lighter than the background the light
// modules are the ones drawn.
func inkFor(code *qr.Code, opts Options) inkFunc {
	foreground, _ := ParseColor(opts.Foreground)
	background, _ := ParseColor(opts.Background)
	if luminance(foreground) > luminance(background) {
		return func(x, y int) bool { return !code.Dark(x, y) }
	}

	return code.Dark
}

func luminance(c color.RGBA) int {
	return 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
}

func (textRenderer) Render(w io.Writer, code *qr.Code, opts Options) error {
	ink := inkFor(code, opts)
	first := -opts.Border
	last := code.Size() + opts.Border

	builder := new(strings.Builder)
	for y := first; y < last; y += 2 {
		for x := first; x < last; x++ {
			top := ink(x, y)
			bottom := y+1 < last && ink(x, y+1)
			switch {
			case top && bottom:
				builder.WriteString("█")
			case top:
				builder.WriteString("▀")
			case bottom:
				builder.WriteString("▄")
			default:
				builder.WriteString(" ")
			}
		}
		builder.WriteString("\n")
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func (asciiRenderer) Render(w io.Writer, code *qr.Code, opts Options) error {
	ink := inkFor(code, opts)
	first := -opts.Border
	last := code.Size() + opts.Border

	builder := new(strings.Builder)
	for y := first; y < last; y++ {
		for x := first; x < last; x++ {
			if ink(x, y) {
				builder.WriteString("##")
			} else {
				builder.WriteString("  ")
			}
		}
		builder.WriteString("\n")
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

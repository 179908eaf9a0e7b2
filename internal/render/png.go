// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/mithaler/qrust/internal/qr"
)

const (
	backgroundIndex uint8 = iota
	foregroundIndex
)

type pngRenderer struct{}

// Image returns the symbol as a two colour paletted image.
func Image(code *qr.Code, opts Options) (*image.Paletted, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	foreground, _ := ParseColor(opts.Foreground)
	background, _ := ParseColor(opts.Background)

	modules := code.Size() + 2*opts.Border
	side := modules * opts.Scale
	img := image.NewPaletted(image.Rect(0, 0, side, side), color.Palette{background, foreground})

	for my := range modules {
		for mx := range modules {
			if !code.Dark(mx-opts.Border, my-opts.Border) {
				continue
			}

			for py := my * opts.Scale; py < (my+1)*opts.Scale; py++ {
				for px := mx * opts.Scale; px < (mx+1)*opts.Scale; px++ {
					img.SetColorIndex(px, py, foregroundIndex)
				}
			}
		}
	}

	return img, nil
}

func (pngRenderer) Render(w io.Writer, code *qr.Code, opts Options) error {
	img, err := Image(code, opts)
	if err != nil {
		return err
	}

	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	return encoder.Encode(w, img)
}

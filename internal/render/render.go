// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package render

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mithaler/qrust/internal/qr"
)

// Format is an output encoding for a symbol.
type Format string

const (
	// PNG renders a paletted PNG image.
	PNG Format = "png"
	// SVG renders a single path SVG document.
	SVG Format = "svg"
	// Text renders Unicode half blocks, two module rows per line.
	Text Format = "text"
	// ASCII renders two characters per module using only ASCII.
	ASCII Format = "ascii"
)

var (
	// ErrUnknownFormat is returned when parsing an unsupported output format.
	ErrUnknownFormat = errors.New("unknown output format")

	// AllFormats lists the supported formats.
	AllFormats = []Format{PNG, SVG, Text, ASCII}

	contentTypes = map[Format]string{
		PNG:   "image/png",
		SVG:   "image/svg+xml",
		Text:  "text/plain; charset=utf-8",
		ASCII: "text/plain; charset=utf-8",
	}

	extensions = map[string]Format{
		".png": PNG,
		".svg": SVG,
		".txt": Text,
	}
)

// Renderer writes a symbol in a specific format.
type Renderer interface {
	Render(w io.Writer, code *qr.Code, opts Options) error
}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := contentTypes[format]; !ok {
		return "", fmt.Errorf("%w %q (options are png, svg, text, ascii)", ErrUnknownFormat, s)
	}

	return format, nil
}

// FormatFromPath infers the format from the extension of path.
func FormatFromPath(path string) (Format, bool) {
	format, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return format, ok
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	return contentTypes[f]
}

func (f Format) String() string {
	return string(f)
}

// RendererFor returns the renderer of format.
func RendererFor(format Format) (Renderer, error) {
	switch format {
	case PNG:
		return pngRenderer{}, nil
	case SVG:
		return svgRenderer{}, nil
	case Text:
		return textRenderer{}, nil
	case ASCII:
		return asciiRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Render writes code to w in format.
func Render(w io.Writer, code *qr.Code, format Format, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	renderer, err := RendererFor(format)
	if err != nil {
		return err
	}

	return renderer.Render(w, code, opts)
}

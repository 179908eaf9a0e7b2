// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mithaler/qrust/internal/qr"
)

type svgRenderer struct{}

func (svgRenderer) Render(w io.Writer, code *qr.Code, opts Options) error {
	foreground, _ := ParseColor(opts.Foreground)
	background, _ := ParseColor(opts.Background)

	modules := code.Size() + 2*opts.Border
	side := modules * opts.Scale

	path := new(strings.Builder)
	for y := range code.Size() {
		for x := range code.Size() {
			if code.Dark(x, y) {
				fmt.Fprintf(path, "M%d,%dh1v1h-1z", x+opts.Border, y+opts.Border)
			}
		}
	}

	builder := new(strings.Builder)
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(builder, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`+"\n", side, side, modules, modules)
	fmt.Fprintf(builder, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", hexColor(background))
	fmt.Fprintf(builder, `<path d="%s" fill="%s"/>`+"\n", path.String(), hexColor(foreground))
	builder.WriteString("</svg>\n")

	_, err := io.WriteString(w, builder.String())
	return err
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"bytes"
	"fmt"

	"github.com/mithaler/qrust/internal/destination"
	"github.com/mithaler/qrust/internal/qr"
	"github.com/mithaler/qrust/internal/render"
	"github.com/mithaler/qrust/internal/source"
)

// Encoder holds the settings used to turn a payload into a rendered code.
type Encoder struct {
	Level      qr.Level
	Mask       int
	MinVersion int
	Format     render.Format
	Options    render.Options
}

// DefaultEncoder returns the settings used when nothing is configured.
func DefaultEncoder() Encoder {
	return Encoder{
		Level:      qr.DefaultLevel,
		Mask:       qr.AutoMask,
		MinVersion: qr.MinVersion,
		Format:     render.Text,
		Options:    render.DefaultOptions(),
	}
}

// Encode encodes and renders data.
func (e Encoder) Encode(data source.Data) (*destination.Data, *qr.Code, error) {
	code, err := qr.Encode(data.Payload, e.Level, qr.WithMask(e.Mask), qr.WithMinVersion(e.MinVersion))
	if err != nil {
		return nil, nil, fmt.Errorf("encoding %s: %w", data.Name, err)
	}

	buffer := new(bytes.Buffer)
	if err := render.Render(buffer, code, e.Format, e.Options); err != nil {
		return nil, nil, fmt.Errorf("rendering %s: %w", data.Name, err)
	}

	return &destination.Data{
		Name:    data.Name,
		Format:  e.Format,
		Content: buffer.Bytes(),
	}, code, nil
}

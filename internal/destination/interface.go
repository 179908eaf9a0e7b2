// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"context"

	"github.com/mithaler/qrust/internal/render"
)

// Sender delivers rendered codes to a destination.
type Sender interface {
	SendData(ctx context.Context, data *Data) error
}

// Data bundles a rendered code with the information describing it.
type Data struct {
	// Name of the source the encoded payload comes from.
	Name string
	// Format of Content.
	Format render.Format
	// Content is the rendered code.
	Content []byte
}

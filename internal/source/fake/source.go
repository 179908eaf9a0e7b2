// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"testing"

	"github.com/mithaler/qrust/internal/source"
)

var _ source.Source = &Source{}

// Source returns the same Data on every Read and counts the calls.
type Source struct {
	tb   testing.TB
	data source.Data

	Reads int
}

// NewFakeSource returns a Source that always reads data.
func NewFakeSource(tb testing.TB, data source.Data) *Source {
	tb.Helper()

	return &Source{
		tb:   tb,
		data: data,
	}
}

func (f *Source) Read(ctx context.Context) (source.Data, error) {
	f.tb.Helper()

	if ctx.Err() != nil {
		return source.Data{}, ctx.Err()
	}

	f.Reads++
	return f.data, nil
}

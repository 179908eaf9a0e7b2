// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"context"
	"time"
)

// Source defines the interface for a source that can be read a single time.
type Source interface {
	// Read returns the current payload of the source.
	Read(ctx context.Context) (Data, error)
}

// EventSource defines the interface for a source that emits a new payload every time its
// input changes.
type EventSource interface {
	// StartEventStream sends the current payload, and then every updated one, on results.
	// It blocks until the stream ends because of an error, a cancelled context or a Close call.
	StartEventStream(ctx context.Context, results chan<- Data) (err error)
}

// ClosableSource defines the interface for a source that can be gracefully closed, releasing
// any resources it holds. The timeout bounds how long the close operation can take.
type ClosableSource interface {
	Close(ctx context.Context, timeout time.Duration) (err error)
}

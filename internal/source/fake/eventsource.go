// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"testing"
	"time"

	"github.com/mithaler/qrust/internal/source"
)

// FakeEventSource combines event streaming and closing behaviour.
type FakeEventSource interface {
	source.EventSource
	source.ClosableSource
}

var _ source.EventSource = &unclosableEventSource{}

// unclosableEventSource simulates an EventSource without close support.
type unclosableEventSource struct {
	tb testing.TB

	eventsData     []source.Data
	streamFinished chan<- struct{}
	stopChannel    chan struct{}
}

var _ FakeEventSource = &fakeEventSource{}

// fakeEventSource wraps an unclosableEventSource with a Close implementation.
type fakeEventSource struct {
	*unclosableEventSource
}

// NewFakeEventSource returns a closable fake event source emitting eventsData.
// streamFinished receives a value once every event has been sent.
func NewFakeEventSource(tb testing.TB, eventsData []source.Data, streamFinished chan<- struct{}) FakeEventSource {
	tb.Helper()

	return &fakeEventSource{
		unclosableEventSource: &unclosableEventSource{
			tb:             tb,
			eventsData:     eventsData,
			streamFinished: streamFinished,
			stopChannel:    make(chan struct{}, 1),
		},
	}
}

// NewFakeUnclosableEventSource returns an EventSource without close capabilities that
// ends its stream only when the context is cancelled.
func NewFakeUnclosableEventSource(tb testing.TB, eventsData []source.Data, streamFinished chan<- struct{}) source.EventSource {
	tb.Helper()

	return &unclosableEventSource{
		tb:             tb,
		eventsData:     eventsData,
		streamFinished: streamFinished,
	}
}

// StartEventStream pushes queued events and blocks until Close is invoked or the context ends.
func (f *unclosableEventSource) StartEventStream(ctx context.Context, results chan<- source.Data) error {
	f.tb.Helper()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, data := range f.eventsData {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- data:
		}
	}

	f.streamFinished <- struct{}{}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.stopChannel:
		return nil
	}
}

// Close signals the stream to exit.
func (f *fakeEventSource) Close(_ context.Context, _ time.Duration) error {
	f.tb.Helper()
	close(f.stopChannel)
	return nil
}

// ErrorSource returns the configured error from every operation.
type ErrorSource interface {
	source.Source
	source.EventSource
}

var _ ErrorSource = &errorSource{}

type errorSource struct {
	tb  testing.TB
	err error
}

// NewFakeSourceWithError builds a source that always returns err.
func NewFakeSourceWithError(tb testing.TB, err error) ErrorSource {
	tb.Helper()

	return &errorSource{
		tb:  tb,
		err: err,
	}
}

func (f *errorSource) Read(_ context.Context) (source.Data, error) {
	f.tb.Helper()
	return source.Data{}, f.err
}

func (f *errorSource) StartEventStream(_ context.Context, _ chan<- source.Data) error {
	f.tb.Helper()
	return f.err
}

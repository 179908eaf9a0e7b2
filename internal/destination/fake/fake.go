// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"sync"
	"testing"

	"github.com/mithaler/qrust/internal/destination"
)

var _ destination.Sender = &FakeDestination{}

// FakeDestination records every Data it receives, optionally failing with Err.
type FakeDestination struct {
	tb testing.TB

	Err error

	lock     sync.Mutex
	SentData []*destination.Data
}

func NewFakeDestination(tb testing.TB) *FakeDestination {
	tb.Helper()
	return &FakeDestination{tb: tb}
}

func (f *FakeDestination) SendData(_ context.Context, data *destination.Data) error {
	f.tb.Helper()
	if f.Err != nil {
		return f.Err
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	f.SentData = append(f.SentData, data)
	return nil
}

// Sent returns a copy of the data received so far.
func (f *FakeDestination) Sent() []*destination.Data {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]*destination.Data(nil), f.SentData...)
}

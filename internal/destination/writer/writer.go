// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package writer

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/mithaler/qrust/internal/destination"
)

var _ destination.Sender = &writerDestination{}

type writerDestination struct {
	writer io.Writer

	lock sync.Mutex
}

func NewDestination(w io.Writer) destination.Sender {
	return &writerDestination{
		writer: w,
	}
}

func (d *writerDestination) SendData(_ context.Context, data *destination.Data) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if _, err := d.writer.Write(data.Content); err != nil {
		return fmt.Errorf("writing %s code for %s: %w", data.Format, data.Name, err)
	}
	return nil
}

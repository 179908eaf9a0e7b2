// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"context"
	"time"

	"github.com/mithaler/qrust/internal/destination"
	"github.com/mithaler/qrust/internal/logger"
	"github.com/mithaler/qrust/internal/source"
)

const (
	loggerName = "qrgen:pipeline"
)

type Pipeline struct {
	source      any
	encoder     Encoder
	destination destination.Sender
}

// New returns a pipeline reading from src. src must implement source.Source to be used
// with Sync and source.EventSource to be used with Start.
func New(src any, encoder Encoder, destination destination.Sender) *Pipeline {
	return &Pipeline{
		source:      src,
		encoder:     encoder,
		destination: destination,
	}
}

// Sync reads the source once and sends the resulting code.
func (p *Pipeline) Sync(ctx context.Context) error {
	log := logger.FromContext(ctx).WithName(loggerName)

	syncSource, ok := p.source.(source.Source)
	if !ok {
		return &unsupportedSourceError{
			Message: "source does not support reading data",
			Source:  p.source,
		}
	}

	data, err := syncSource.Read(ctx)
	if err != nil {
		return err
	}

	return p.process(ctx, log, data)
}

// Start sends a new code for every payload streamed by the source until the stream ends.
// Payloads that cannot be encoded or sent are logged and skipped.
func (p *Pipeline) Start(ctx context.Context) error {
	log := logger.FromContext(ctx).WithName(loggerName)

	streamSource, ok := p.source.(source.EventSource)
	if !ok {
		return &unsupportedSourceError{
			Message: "source does not support streaming data",
			Source:  p.source,
		}
	}

	log.Trace("starting data pipeline")
	channel := make(chan source.Data)

	// closed when every queued payload has been processed
	processingDone := make(chan struct{})
	go func() {
		log.Trace("starting encoding goroutine")
		p.processStream(ctx, log, channel)
		close(processingDone)
	}()

	err := streamSource.StartEventStream(ctx, channel)
	log.Trace("event stream finished, closing data channel")
	close(channel)

	<-processingDone
	log.Trace("encoding goroutine finished")
	return err
}

// Stop closes the source when it supports it.
func (p *Pipeline) Stop(ctx context.Context, timeout time.Duration) error {
	log := logger.FromContext(ctx).WithName(loggerName)
	closableSource, ok := p.source.(source.ClosableSource)
	if !ok {
		log.Debug("source does not implement ClosableSource, skipping close")
		return nil
	}

	log.Debug("stop source")
	return closableSource.Close(ctx, timeout)
}

func (p *Pipeline) processStream(ctx context.Context, log logger.Logger, channel <-chan source.Data) {
	for {
		select {
		case <-ctx.Done():
			log.Debug("pipeline cancelled from context", "error", ctx.Err())
			return
		case data, ok := <-channel:
			if !ok {
				return
			}

			if err := p.process(ctx, log, data); err != nil {
				log.Error("error processing data", "name", data.Name, "error", err.Error())
			}
		}
	}
}

func (p *Pipeline) process(ctx context.Context, log logger.Logger, data source.Data) error {
	output, code, err := p.encoder.Encode(data)
	if err != nil {
		return err
	}

	log.Debug("code encoded",
		"name", data.Name,
		"mode", code.Mode.String(),
		"version", int(code.Version),
		"level", code.Level.String(),
		"mask", code.Mask,
	)

	if err := p.destination.SendData(ctx, output); err != nil {
		return err
	}

	log.Debug("code sent", "name", data.Name, "format", output.Format.String())
	return nil
}

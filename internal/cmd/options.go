// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mithaler/qrust/internal/destination"
	"github.com/mithaler/qrust/internal/destination/file"
	"github.com/mithaler/qrust/internal/destination/writer"
	"github.com/mithaler/qrust/internal/logger"
	"github.com/mithaler/qrust/internal/pipeline"
	"github.com/mithaler/qrust/internal/qr"
	"github.com/mithaler/qrust/internal/source/reader"
	"github.com/mithaler/qrust/internal/source/watch"
)

const (
	generateLoggerName = "qrgen:generate"

	stopTimeout = 5 * time.Second
)

// generateOptions holds the resolved settings of a generate invocation.
type generateOptions struct {
	input   string
	output  string
	watch   bool
	encoder pipeline.Encoder

	stdin  io.Reader
	stdout io.Writer
}

// validate checks the configured values and reports invalid setups.
func (o *generateOptions) validate() error {
	if o.watch && o.input == "" {
		return fmt.Errorf("%w: %w", errInvalidFlagValue, errWatchWithoutInput)
	}

	if o.encoder.Mask != qr.AutoMask && (o.encoder.Mask < 0 || o.encoder.Mask >= qr.MaskCount) {
		return fmt.Errorf("%w: --%s must be between 0 and %d, or %d", errInvalidFlagValue, maskFlagName, qr.MaskCount-1, qr.AutoMask)
	}

	if _, err := qr.VersionByNumber(o.encoder.MinVersion); err != nil {
		return fmt.Errorf("%w: --%s: %w", errInvalidFlagValue, minVersionFlagName, err)
	}

	if err := o.encoder.Options.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errInvalidFlagValue, err)
	}

	return nil
}

// destination returns where the rendered code must be sent.
func (o *generateOptions) destination() destination.Sender {
	if o.output == "" {
		return writer.NewDestination(o.stdout)
	}
	return file.NewDestination(o.output)
}

// execute generates the code once, or every time the input changes in watch mode.
func (o *generateOptions) execute(ctx context.Context) error {
	log := logger.FromContext(ctx).WithName(generateLoggerName)

	if !o.watch {
		return pipeline.New(reader.New(o.input, o.stdin), o.encoder, o.destination()).Sync(ctx)
	}

	source, err := watch.New(o.input, watch.DefaultDebounce)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("watching input file", "path", o.input)
	p := pipeline.New(source, o.encoder, o.destination())
	go func() {
		<-ctx.Done()
		if err := p.Stop(context.WithoutCancel(ctx), stopTimeout); err != nil {
			log.Error("error stopping the watch", "error", err.Error())
		}
	}()

	return p.Start(ctx)
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mithaler/qrust/internal/logger"
	"github.com/mithaler/qrust/internal/server"
)

const serveLoggerName = "qrgen:serve"

// serveOptions holds the settings of the serve command.
type serveOptions struct {
	config    *server.Config
	newServer func(context.Context, *server.Config) (server.Server, error)
}

func newServeOptions() (*serveOptions, error) {
	cfg, err := server.LoadServerConfig()
	if err != nil {
		return nil, err
	}

	return &serveOptions{
		config:    cfg,
		newServer: server.NewServer,
	}, nil
}

// execute runs the server until it fails or an interrupt or termination signal is received.
func (o *serveOptions) execute(ctx context.Context) error {
	log := logger.FromContext(ctx).WithName(serveLoggerName)

	srv, err := o.newServer(ctx, o.config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	log.Info("server started", "host", o.config.HTTPHost, "port", o.config.HTTPPort)
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info("shutting down server")
		if err := srv.Stop(); err != nil {
			return err
		}
		return <-errChan
	}
}

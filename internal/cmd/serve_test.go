// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithaler/qrust/internal/server"
	fakeserver "github.com/mithaler/qrust/internal/server/fake"
)

func serveOptionsWith(srv server.Server, err error) *serveOptions {
	return &serveOptions{
		config: &server.Config{HTTPPort: 3000},
		newServer: func(context.Context, *server.Config) (server.Server, error) {
			return srv, err
		},
	}
}

func TestServeExecute(t *testing.T) {
	t.Parallel()

	t.Run("stops the server when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		srv := fakeserver.NewFakeServer(t)
		ctx, cancel := context.WithCancel(t.Context())

		errChan := make(chan error, 1)
		go func() {
			errChan <- serveOptionsWith(srv, nil).execute(ctx)
		}()

		<-srv.StartedServer()
		cancel()

		select {
		case err := <-errChan:
			require.NoError(t, err)
		case <-time.After(time.Second):
			require.FailNow(t, "server not stopped")
		}
		<-srv.StoppedServer()
	})

	t.Run("returns the start error", func(t *testing.T) {
		t.Parallel()

		srv := fakeserver.NewFakeServer(t)
		srv.StartErr = server.ErrServerListen
		err := serveOptionsWith(srv, nil).execute(t.Context())
		require.ErrorIs(t, err, server.ErrServerListen)
	})

	t.Run("returns the stop error", func(t *testing.T) {
		t.Parallel()

		srv := fakeserver.NewFakeServer(t)
		srv.StopErr = server.ErrServerShutdown
		ctx, cancel := context.WithCancel(t.Context())
		errChan := make(chan error, 1)
		go func() {
			errChan <- serveOptionsWith(srv, nil).execute(ctx)
		}()

		<-srv.StartedServer()
		cancel()
		require.ErrorIs(t, <-errChan, server.ErrServerShutdown)
	})

	t.Run("returns the creation error", func(t *testing.T) {
		t.Parallel()

		expected := errors.New("cannot build server")
		err := serveOptionsWith(nil, expected).execute(t.Context())
		require.ErrorIs(t, err, expected)
	})
}

func TestServeCmdInvalidEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "0")

	cmd := ServeCmd()
	errBuffer := new(bytes.Buffer)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(errBuffer)
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(t.Context())
	require.ErrorIs(t, err, server.ErrEnvVariablesNotValid)
	assert.Contains(t, errBuffer.String(), "HTTP_PORT is out of valid range (1-65535)")
}

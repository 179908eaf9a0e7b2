// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"sync"
	"testing"

	"github.com/mithaler/qrust/internal/server"
)

var _ server.Server = &Server{}

// Server records the lifecycle calls made on it without opening any socket.
type Server struct {
	tb testing.TB

	StartErr error
	StopErr  error

	startOnce   sync.Once
	stopOnce    sync.Once
	startedChan chan struct{}
	closedChan  chan struct{}
}

func NewFakeServer(tb testing.TB) *Server {
	tb.Helper()

	return &Server{
		tb:          tb,
		startedChan: make(chan struct{}),
		closedChan:  make(chan struct{}),
	}
}

func (s *Server) markStarted() {
	s.startOnce.Do(func() { close(s.startedChan) })
}

func (s *Server) Start() error {
	s.tb.Helper()
	if s.StartErr != nil {
		return s.StartErr
	}

	s.markStarted()
	<-s.closedChan
	return nil
}

func (s *Server) Stop() error {
	s.tb.Helper()
	s.stopOnce.Do(func() { close(s.closedChan) })
	return s.StopErr
}

func (s *Server) StartAsync(_ context.Context) {
	s.tb.Helper()
	s.markStarted()
}

func (s *Server) StartedServer() <-chan struct{} {
	return s.startedChan
}

func (s *Server) StoppedServer() <-chan struct{} {
	return s.closedChan
}

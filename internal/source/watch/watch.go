// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package watch implements a source that emits the content of a file every time it changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mithaler/qrust/internal/logger"
	"github.com/mithaler/qrust/internal/source"
	"github.com/mithaler/qrust/internal/source/reader"
)

const (
	loggerName = "qrgen:source:watch"

	// DefaultDebounce is how long the file must stay untouched before its content is emitted.
	DefaultDebounce = 100 * time.Millisecond
)

var (
	// ErrWatch wraps the failures of the underlying file watcher.
	ErrWatch = errors.New("error watching file")
)

var (
	_ source.Source         = &Source{}
	_ source.EventSource    = &Source{}
	_ source.ClosableSource = &Source{}
)

// Source emits the payload of a file on start and after every write to it.
type Source struct {
	path     string
	debounce time.Duration

	closeOnce sync.Once
	stop      chan struct{}
}

// New returns a Source watching the file at path. A zero debounce uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrWatch, path)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Source{
		path:     absPath,
		debounce: debounce,
		stop:     make(chan struct{}),
	}, nil
}

// Read implements source.Source.
func (s *Source) Read(_ context.Context) (source.Data, error) {
	return reader.ReadFile(s.path)
}

// StartEventStream implements source.EventSource.
// The parent directory is watched so that editors replacing the file on save are
// followed too. Bursts of changes closer than the debounce interval emit a single Data.
func (s *Source) StartEventStream(ctx context.Context, results chan<- source.Data) error {
	log := logger.FromContext(ctx).WithName(loggerName)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}

	data, err := s.Read(ctx)
	if err != nil {
		return err
	}
	if !s.send(ctx, results, data) {
		return nil
	}

	debounce := time.NewTimer(s.debounce)
	debounce.Stop()
	defer debounce.Stop()

	log.Debug("watching file", "path", s.path)
	for {
		select {
		case <-ctx.Done():
			log.Debug("stop watching, context cancelled", "path", s.path)
			return nil
		case <-s.stop:
			log.Debug("stop watching, source closed", "path", s.path)
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				log.Trace("file changed", "path", s.path, "op", event.Op.String())
				debounce.Reset(s.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("file watcher error", "path", s.path, "error", err.Error())
		case <-debounce.C:
			data, err := s.Read(ctx)
			if err != nil {
				log.Error("error reading changed file", "path", s.path, "error", err.Error())
				continue
			}
			if !s.send(ctx, results, data) {
				return nil
			}
		}
	}
}

func (s *Source) send(ctx context.Context, results chan<- source.Data, data source.Data) bool {
	select {
	case results <- data:
		return true
	case <-ctx.Done():
		return false
	case <-s.stop:
		return false
	}
}

// Close implements source.ClosableSource.
func (s *Source) Close(_ context.Context, _ time.Duration) error {
	s.closeOnce.Do(func() { close(s.stop) })
	return nil
}

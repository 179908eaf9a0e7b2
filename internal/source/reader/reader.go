// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package reader implements a source reading its payload from a file or the standard input.
package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mithaler/qrust/internal/logger"
	"github.com/mithaler/qrust/internal/source"
)

const loggerName = "qrgen:source:reader"

var (
	// ErrReadingInput wraps every failure reading the input.
	ErrReadingInput = errors.New("error reading input")
)

var _ source.Source = &Source{}

// Source reads the whole content of a file, or of stdin when no path is set.
type Source struct {
	path  string
	stdin io.Reader
}

// New returns a Source for path, falling back to stdin when path is empty.
func New(path string, stdin io.Reader) *Source {
	return &Source{
		path:  path,
		stdin: stdin,
	}
}

// Read implements source.Source.
func (s *Source) Read(ctx context.Context) (source.Data, error) {
	log := logger.FromContext(ctx).WithName(loggerName)

	if s.path == "" {
		log.Debug("reading payload from stdin")
		raw, err := io.ReadAll(s.stdin)
		if err != nil {
			return source.Data{}, fmt.Errorf("%w from %s: %w", ErrReadingInput, source.StdinName, err)
		}
		return source.NewData(source.StdinName, raw), nil
	}

	log.Debug("reading payload from file", "path", s.path)
	return ReadFile(s.path)
}

// ReadFile reads the payload stored in the file at path.
func ReadFile(path string) (source.Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return source.Data{}, fmt.Errorf("%w: %w", ErrReadingInput, err)
	}
	return source.NewData(path, raw), nil
}

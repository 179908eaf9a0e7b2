// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package file implements a destination that stores every rendered code at a fixed path.
// The content is written to a temporary file in the same directory and then renamed over
// the target, so readers never observe a partially written code.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mithaler/qrust/internal/destination"
	"github.com/mithaler/qrust/internal/logger"
)

const (
	loggerName = "qrgen:destination:file"

	filePermissions = 0o644
)

var (
	// ErrWritingFile wraps every failure storing the rendered code.
	ErrWritingFile = errors.New("error writing output file")
)

var _ destination.Sender = &fileDestination{}

type fileDestination struct {
	path string
}

func NewDestination(path string) destination.Sender {
	return &fileDestination{
		path: path,
	}
}

func (d *fileDestination) SendData(ctx context.Context, data *destination.Data) error {
	log := logger.FromContext(ctx).WithName(loggerName)

	temp, err := os.CreateTemp(filepath.Dir(d.path), "."+filepath.Base(d.path)+".*")
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrWritingFile, d.path, err)
	}
	tempPath := temp.Name()
	defer os.Remove(tempPath)

	if _, err := temp.Write(data.Content); err != nil {
		temp.Close()
		return fmt.Errorf("%w %q: %w", ErrWritingFile, d.path, err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWritingFile, d.path, err)
	}
	if err := os.Chmod(tempPath, filePermissions); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWritingFile, d.path, err)
	}
	if err := os.Rename(tempPath, d.path); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWritingFile, d.path, err)
	}

	log.Debug("code written", "path", d.path, "format", data.Format.String(), "bytes", len(data.Content))
	return nil
}

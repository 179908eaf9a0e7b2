// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"errors"
	"fmt"
)

// unsupportedSourceError signals that the configured source lacks the capability an
// operation needs. It matches errors.ErrUnsupported.
type unsupportedSourceError struct {
	Message string
	Source  any
}

func (e *unsupportedSourceError) Error() string {
	return fmt.Sprintf("%s (%T)", e.Message, e.Source)
}

func (e *unsupportedSourceError) Unwrap() error {
	return errors.ErrUnsupported
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

import (
	"errors"
	"fmt"
)

var (
	// ErrDataTooLong is returned when no version can hold the data at the requested level.
	ErrDataTooLong = errors.New("the data is too long for a QR code at that error correction level")
	// ErrUnknownLevel is returned when parsing an unknown error correction level.
	ErrUnknownLevel = errors.New("unknown error correction level")
	// ErrInvalidVersion is returned for version numbers outside 1-40.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidMask is returned for mask patterns outside 0-7.
	ErrInvalidMask = errors.New("invalid mask pattern")
)

// CapacityError reports the size of the data that did not fit any version.
type CapacityError struct {
	Level Level
	Mode  Mode
	Bits  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %d bits in %s mode at level %s", ErrDataTooLong, e.Bits, e.Mode, e.Level)
}

func (e *CapacityError) Unwrap() error {
	return ErrDataTooLong
}

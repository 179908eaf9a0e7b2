// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package pipeline connects a source to a destination.
// Every payload read from the source is encoded as a QR code, rendered with the configured
// format and options, and sent to the destination.
package pipeline

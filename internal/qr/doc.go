// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package qr implements a QR Code Model 2 encoder.
// Encoding selects the most compact mode for the input, picks the smallest version
// that fits at the requested error correction level, computes the Reed-Solomon
// blocks and lays out the symbol choosing the mask with the lowest penalty score.
package qr

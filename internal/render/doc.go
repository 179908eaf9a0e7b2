// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package render draws encoded QR symbols as PNG images, SVG documents or text
// suitable for terminals.
package render

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package server exposes QR code generation over HTTP.
// It sets up the Fiber application with request logging and panic recovery, the status
// routes used by probes, and the /api/qr routes that encode and render codes on demand.
package server

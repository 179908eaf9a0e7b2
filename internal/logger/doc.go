// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger wraps hclog behind the small interface used across qrgen.
// The command line writes human readable lines, the HTTP server writes JSON, and both
// carry the logger through the context.
package logger

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package writer implements a destination that writes every rendered code to the given
// io.Writer instance, usually the standard output.
package writer

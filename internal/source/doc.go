// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package source defines the contracts used to obtain the payloads to encode.
// Sources either read a payload once, stream a new payload every time the input changes,
// or both, and may expose shutdown semantics through ClosableSource.
package source

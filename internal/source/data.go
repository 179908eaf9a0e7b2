// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"strings"
	"time"
)

// StdinName is the Data name used for payloads read from the standard input.
const StdinName = "stdin"

// Data is a payload emitted by a source.
type Data struct {
	// Name identifies where the payload comes from, a file path or StdinName.
	Name string
	// Payload is the text to encode.
	Payload string
	// Time is when the payload has been read.
	Time time.Time
}

// NewData builds the Data for the raw content read from name.
// Surrounding whitespace, like the trailing newline of a file, is not part of the payload.
func NewData(name string, raw []byte) Data {
	return Data{
		Name:    name,
		Payload: strings.TrimSpace(string(raw)),
		Time:    time.Now(),
	}
}

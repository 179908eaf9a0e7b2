// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

var (
	// nullLogger is a logger that discards all log messages.
	nullLogger = &instance{log: hclog.NewNullLogger()}
)

//go:generate ${TOOLS_BIN}/stringer -type=Level
type Level int

const (
	ERROR Level = iota
	WARN
	INFO
	DEBUG
	TRACE
)

// AllLevels lists every level from the most to the least verbose.
var AllLevels = []Level{TRACE, DEBUG, INFO, WARN, ERROR}

// LevelFromString parses level ignoring case, falling back to INFO.
func LevelFromString(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return TRACE
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func (l Level) convertedLevel() hclog.Level {
	switch l {
	case TRACE:
		return hclog.Trace
	case DEBUG:
		return hclog.Debug
	case INFO:
		return hclog.Info
	case WARN:
		return hclog.Warn
	case ERROR:
		return hclog.Error
	default:
		return hclog.Info
	}
}

// Format selects how log lines are written.
type Format int

const (
	// JSONFormat writes one JSON object per line.
	JSONFormat Format = iota
	// TextFormat writes human readable lines.
	TextFormat
)

// Logger describes the interface that must be implemented by all loggers
type Logger interface {
	// WithName returns a new Logger instance with the specified name.
	WithName(name string) Logger
	// With returns a new Logger that always emits the given key/value pairs.
	With(args ...any) Logger
	// SetLevel updates the logger level.
	SetLevel(level Level)
	// Trace emit a message and key/value pairs at the TRACE level.
	Trace(msg string, args ...any)
	// Debug emit a message and key/value pairs at the DEBUG level.
	Debug(msg string, args ...any)
	// Info emit a message and key/value pairs at the INFO level.
	Info(msg string, args ...any)
	// Warn emit a message and key/value pairs at the WARN level.
	Warn(msg string, args ...any)
	// Error emit a message and key/value pairs at the ERROR level.
	Error(msg string, args ...any)
}

// Make sure that instance is a Logger.
var _ Logger = &instance{}

type instance struct {
	log hclog.Logger
}

// NewLogger creates a JSON logger writing to writer.
func NewLogger(writer io.Writer) Logger {
	return NewLoggerWithFormat(writer, JSONFormat)
}

// NewLoggerWithFormat creates a logger writing to writer in the given format.
// Named and derived loggers share the level of their root.
func NewLoggerWithFormat(writer io.Writer, format Format) Logger {
	return &instance{
		log: hclog.New(&hclog.LoggerOptions{
			Name:        "qrgen",
			JSONFormat:  format == JSONFormat,
			Output:      writer,
			TimeFn:      time.Now,
			Level:       INFO.convertedLevel(),
			DisableTime: format == TextFormat,
		}),
	}
}

func (i instance) WithName(name string) Logger {
	return &instance{
		log: i.log.ResetNamed(name),
	}
}

func (i instance) With(args ...any) Logger {
	return &instance{
		log: i.log.With(args...),
	}
}

func (i instance) SetLevel(level Level) {
	i.log.SetLevel(level.convertedLevel())
}

func (i instance) Trace(msg string, args ...any) {
	i.log.Trace(msg, args...)
}

func (i instance) Debug(msg string, args ...any) {
	i.log.Debug(msg, args...)
}

func (i instance) Info(msg string, args ...any) {
	i.log.Info(msg, args...)
}

func (i instance) Warn(msg string, args ...any) {
	i.log.Warn(msg, args...)
}

func (i instance) Error(msg string, args ...any) {
	i.log.Error(msg, args...)
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mithaler/qrust/internal/qr"
	"github.com/mithaler/qrust/internal/render"
)

const (
	LevelField      = "level"
	FormatField     = "format"
	ScaleField      = "scale"
	BorderField     = "border"
	ForegroundField = "foreground"
	BackgroundField = "background"
	MinVersionField = "minVersion"
)

var (
	// ErrParsing reports failures that occur while decoding a defaults file.
	ErrParsing = errors.New("error parsing")
)

// Defaults holds the values a defaults file can set for the generate command.
// Nil fields and empty strings are left unset.
type Defaults struct {
	Level      *qr.Level     `yaml:"level,omitempty"`
	Format     render.Format `yaml:"format,omitempty"`
	Scale      *int          `yaml:"scale,omitempty"`
	Border     *int          `yaml:"border,omitempty"`
	Foreground string        `yaml:"foreground,omitempty"`
	Background string        `yaml:"background,omitempty"`
	MinVersion *int          `yaml:"minVersion,omitempty"`
}

// NewDefaultsFromPath reads the defaults file at path.
// An empty file yields empty defaults.
func NewDefaultsFromPath(path string) (*Defaults, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	defaults, err := NewDefaults(file)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}
	return defaults, nil
}

// NewDefaults decodes and validates a defaults document read from reader.
func NewDefaults(reader io.Reader) (*Defaults, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	defaults := new(Defaults)
	if err := decoder.Decode(defaults); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := defaults.validate(); err != nil {
		return nil, err
	}
	return defaults, nil
}

func (d *Defaults) validate() error {
	problems := make([]string, 0)

	if d.Format != "" {
		format, err := render.ParseFormat(d.Format.String())
		if err != nil {
			problems = append(problems, fmt.Sprintf("'%s': %s", FormatField, err))
		}
		d.Format = format
	}

	if d.MinVersion != nil {
		if _, err := qr.VersionByNumber(*d.MinVersion); err != nil {
			problems = append(problems, fmt.Sprintf("'%s': %s", MinVersionField, err))
		}
	}

	opts := d.RenderOptions(render.DefaultOptions())
	if err := opts.Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid defaults: %s", strings.Join(problems, "; "))
	}
	return nil
}

// RenderOptions returns base with every render option set in the defaults applied.
func (d *Defaults) RenderOptions(base render.Options) render.Options {
	if d.Scale != nil {
		base.Scale = *d.Scale
	}
	if d.Border != nil {
		base.Border = *d.Border
	}
	if d.Foreground != "" {
		base.Foreground = d.Foreground
	}
	if d.Background != "" {
		base.Background = d.Background
	}
	return base
}

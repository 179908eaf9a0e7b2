// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/mithaler/qrust/internal/qr"
	"github.com/mithaler/qrust/internal/render"
)

var (
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")
)

// Config holds the server settings read from the environment.
type Config struct {
	HTTPHost              string `env:"HTTP_HOST"`
	HTTPPort              int    `env:"HTTP_PORT" envDefault:"3000"`
	DisableStartupMessage bool   `env:"DISABLE_STARTUP_MESSAGE" envDefault:"true"`
	MaxPayloadBytes       int    `env:"MAX_PAYLOAD_BYTES" envDefault:"4096"`
	DefaultLevel          string `env:"DEFAULT_LEVEL" envDefault:"medium"`
	DefaultFormat         string `env:"DEFAULT_FORMAT" envDefault:"png"`
	CORSAllowOrigins      string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`

	level  qr.Level
	format render.Format
}

// LoadServerConfig parses and validates the server configuration from the environment.
func LoadServerConfig() (*Config, error) {
	var envVars Config
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	if err := validateEnvironmentVariables(&envVars); err != nil {
		return nil, err
	}
	return &envVars, nil
}

func validateEnvironmentVariables(envVars *Config) error {
	envError := make([]string, 0)

	if envVars.HTTPPort < 1 || envVars.HTTPPort > 65535 {
		envError = append(envError, "HTTP_PORT is out of valid range (1-65535)")
	}

	if envVars.MaxPayloadBytes < 1 {
		envError = append(envError, "MAX_PAYLOAD_BYTES must be a positive number")
	}

	level, err := qr.ParseLevel(envVars.DefaultLevel)
	if err != nil {
		envError = append(envError, "DEFAULT_LEVEL is not valid: "+err.Error())
	}
	envVars.level = level

	format, err := render.ParseFormat(envVars.DefaultFormat)
	if err != nil {
		envError = append(envError, "DEFAULT_FORMAT is not valid: "+err.Error())
	}
	envVars.format = format

	if len(envError) > 0 {
		return fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, strings.Join(envError, ", "))
	}
	return nil
}

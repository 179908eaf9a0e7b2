// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithaler/qrust/internal/qr"
	"github.com/mithaler/qrust/internal/render"
)

func TestLoadEnvironmentVariables(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		envVars, err := LoadServerConfig()
		require.NoError(t, err)
		assert.Empty(t, envVars.HTTPHost)
		assert.Equal(t, 3000, envVars.HTTPPort)
		assert.True(t, envVars.DisableStartupMessage)
		assert.Equal(t, 4096, envVars.MaxPayloadBytes)
		assert.Equal(t, qr.Medium, envVars.level)
		assert.Equal(t, render.PNG, envVars.format)
		assert.Equal(t, "*", envVars.CORSAllowOrigins)
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("HTTP_HOST", "127.0.0.1")
		t.Setenv("HTTP_PORT", "8080")
		t.Setenv("DEFAULT_LEVEL", "H")
		t.Setenv("DEFAULT_FORMAT", "svg")
		t.Setenv("MAX_PAYLOAD_BYTES", "128")

		envVars, err := LoadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1", envVars.HTTPHost)
		assert.Equal(t, 8080, envVars.HTTPPort)
		assert.Equal(t, 128, envVars.MaxPayloadBytes)
		assert.Equal(t, qr.High, envVars.level)
		assert.Equal(t, render.SVG, envVars.format)
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "655350")
		_, err := LoadServerConfig()
		require.ErrorIs(t, err, ErrEnvVariablesNotValid)
	})

	t.Run("port not a number", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "http")
		_, err := LoadServerConfig()
		require.ErrorIs(t, err, ErrEnvVariablesNotValid)
	})
}

func TestValidateEnvironmentVariables(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{HTTPPort: 3000, MaxPayloadBytes: 10, DefaultLevel: "low", DefaultFormat: "text"}
	}

	testCases := map[string]struct {
		mutate      func(*Config)
		expectedErr string
	}{
		"valid configuration": {
			mutate: func(*Config) {},
		},
		"negative port": {
			mutate:      func(c *Config) { c.HTTPPort = -1 },
			expectedErr: "HTTP_PORT is out of valid range (1-65535)",
		},
		"zero payload": {
			mutate:      func(c *Config) { c.MaxPayloadBytes = 0 },
			expectedErr: "MAX_PAYLOAD_BYTES must be a positive number",
		},
		"unknown level": {
			mutate:      func(c *Config) { c.DefaultLevel = "extreme" },
			expectedErr: "DEFAULT_LEVEL is not valid",
		},
		"unknown format": {
			mutate:      func(c *Config) { c.DefaultFormat = "gif" },
			expectedErr: "DEFAULT_FORMAT is not valid",
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			test.mutate(cfg)
			err := validateEnvironmentVariables(cfg)
			if test.expectedErr == "" {
				require.NoError(t, err)
				assert.Equal(t, qr.Low, cfg.level)
				assert.Equal(t, render.Text, cfg.format)
				return
			}

			require.ErrorIs(t, err, ErrEnvVariablesNotValid)
			assert.Contains(t, err.Error(), test.expectedErr)
		})
	}
}

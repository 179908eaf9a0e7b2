// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mithaler/qrust/internal/logger"
	"github.com/mithaler/qrust/internal/qr"
	"github.com/mithaler/qrust/internal/render"
)

var errMissingData = errors.New("the data query parameter is required")

// qrRequest is the decoded form of a request to the qr routes.
type qrRequest struct {
	data       string
	level      qr.Level
	format     render.Format
	mask       int
	minVersion int
	options    render.Options
}

func queryInt(c *fiber.Ctx, key string, defaultValue int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, raw)
	}
	return value, nil
}

func parseQRRequest(c *fiber.Ctx, cfg *Config) (*qrRequest, error) {
	req := &qrRequest{
		level:   cfg.level,
		format:  cfg.format,
		mask:    qr.AutoMask,
		options: render.DefaultOptions(),
	}

	if c.Method() == http.MethodPost {
		req.data = string(c.Body())
	} else {
		if !c.Request().URI().QueryArgs().Has("data") {
			return nil, errMissingData
		}
		req.data = c.Query("data")
	}

	var err error
	if raw := c.Query("level"); raw != "" {
		if req.level, err = qr.ParseLevel(raw); err != nil {
			return nil, err
		}
	}
	if raw := c.Query("format"); raw != "" {
		if req.format, err = render.ParseFormat(raw); err != nil {
			return nil, err
		}
	}

	if req.options.Scale, err = queryInt(c, "scale", req.options.Scale); err != nil {
		return nil, err
	}
	if req.options.Border, err = queryInt(c, "border", req.options.Border); err != nil {
		return nil, err
	}
	if req.mask, err = queryInt(c, "mask", req.mask); err != nil {
		return nil, err
	}
	if req.minVersion, err = queryInt(c, "minVersion", qr.MinVersion); err != nil {
		return nil, err
	}

	req.options.Foreground = c.Query("foreground", req.options.Foreground)
	req.options.Background = c.Query("background", req.options.Background)
	if err := req.options.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

func qrHandler(cfg *Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.FromContext(c.UserContext()).WithName(loggerName)

		req, err := parseQRRequest(c, cfg)
		if err != nil {
			return errorResponse(c, http.StatusBadRequest, err.Error())
		}

		if len(req.data) > cfg.MaxPayloadBytes {
			message := fmt.Sprintf("data is %d bytes long, the limit is %d", len(req.data), cfg.MaxPayloadBytes)
			return errorResponse(c, http.StatusRequestEntityTooLarge, message)
		}

		code, err := qr.Encode(req.data, req.level, qr.WithMask(req.mask), qr.WithMinVersion(req.minVersion))
		switch {
		case errors.Is(err, qr.ErrDataTooLong):
			return errorResponse(c, http.StatusRequestEntityTooLarge, err.Error())
		case err != nil:
			return errorResponse(c, http.StatusBadRequest, err.Error())
		}

		buffer := new(bytes.Buffer)
		if err := render.Render(buffer, code, req.format, req.options); err != nil {
			return err
		}

		log.Debug("code generated", "version", int(code.Version), "level", code.Level.String(), "mask", code.Mask, "format", req.format.String())
		c.Set(fiber.HeaderContentType, req.format.ContentType())
		return c.Send(buffer.Bytes())
	}
}

// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mithaler/qrust/internal/info"
	"github.com/mithaler/qrust/internal/logger"
)

const (
	loggerName = "qrgen:server"

	statusPrefix = "/-/"
	qrRoute      = "/api/qr"
)

// Server is the HTTP front end of the generator.
type Server interface {
	Start() error
	Stop() error
	StartAsync(ctx context.Context)
}

type impServer struct {
	Config

	app *fiber.App
}

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// NewServer builds the fiber application described by cfg, logging with the logger found in ctx.
func NewServer(ctx context.Context, cfg *Config) (Server, error) {
	if err := validateEnvironmentVariables(cfg); err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               info.AppName,
		DisableStartupMessage: cfg.DisableStartupMessage,
		ErrorHandler:          errorHandler,
	})

	app.Use(logger.RequestMiddlewareLogger(logger.FromContext(ctx), []string{statusPrefix}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + logger.RequestIDHeaderName,
	}))

	statusRoutes(app, info.AppName, info.Version)
	qrRoutes(app, cfg)

	return &impServer{
		app:    app,
		Config: *cfg,
	}, nil
}

func statusRoutes(app *fiber.App, name, version string) {
	status := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"name":    name,
			"version": version,
		})
	}

	app.Get(statusPrefix+"healthz", status)
	app.Get(statusPrefix+"ready", status)
}

func qrRoutes(app *fiber.App, cfg *Config) {
	handler := qrHandler(cfg)
	app.Get(qrRoute, handler)
	app.Post(qrRoute, handler)
}

func errorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"statusCode": statusCode,
		"error":      http.StatusText(statusCode),
		"message":    message,
	})
}

// errorHandler renders errors escaping the handlers, like unknown routes or recovered panics.
func errorHandler(c *fiber.Ctx, err error) error {
	statusCode := http.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		statusCode = fiberErr.Code
	}

	if statusCode >= http.StatusInternalServerError {
		logger.FromContext(c.UserContext()).WithName(loggerName).Error("request failed", "error", err.Error())
	}
	return errorResponse(c, statusCode, err.Error())
}

func (s *impServer) Start() error {
	if err := s.app.Listen(fmt.Sprintf("%s:%d", s.HTTPHost, s.HTTPPort)); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *impServer) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}

func (s *impServer) StartAsync(ctx context.Context) {
	log := logger.FromContext(ctx).WithName(loggerName)
	go func() {
		log.Info("starting server", "address", fmt.Sprintf("%s:%d", s.HTTPHost, s.HTTPPort))
		if err := s.Start(); err != nil {
			log.Error(err.Error())
		}
	}()
}

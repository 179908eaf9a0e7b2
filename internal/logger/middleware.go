// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	forwardedHostHeaderKey = "x-forwarded-host"
	forwardedForHeaderKey  = "x-forwarded-for"
	userAgentHeaderKey     = "user-agent"

	// RequestIDHeaderName is read from incoming requests and echoed back on every response.
	RequestIDHeaderName = "x-request-id"

	IncomingRequestMessage  = "incoming request"
	RequestCompletedMessage = "request completed"
)

// http is the shape of the http field in request log lines.
type http struct {
	Request  *request  `json:"request,omitempty"`
	Response *response `json:"response,omitempty"`
}

type userAgent struct {
	Original string `json:"original,omitempty"`
}

type request struct {
	Method    string    `json:"method,omitempty"`
	UserAgent userAgent `json:"userAgent"`
}

type responseBody struct {
	Bytes int `json:"bytes,omitempty"`
}

type response struct {
	StatusCode  int          `json:"statusCode,omitempty"`
	ContentType string       `json:"contentType,omitempty"`
	Body        responseBody `json:"body"`
}

type host struct {
	Hostname      string `json:"hostname,omitempty"`
	ForwardedHost string `json:"forwardedHost,omitempty"`
	IP            string `json:"ip,omitempty"`
}

type url struct {
	Path  string `json:"path,omitempty"`
	Query string `json:"query,omitempty"`
}

// exchange collects what the middleware logs about a single request.
type exchange struct {
	c          *fiber.Ctx
	handlerErr error
}

func (e *exchange) header(key string) string {
	return e.c.Get(key, "")
}

func (e *exchange) requestID() string {
	if requestID := e.header(RequestIDHeaderName); requestID != "" {
		return requestID
	}

	requestID, err := uuid.NewRandom()
	if err != nil {
		panic(fmt.Errorf("error generating request id: %w", err))
	}
	return requestID.String()
}

func (e *exchange) url() url {
	return url{
		Path:  e.c.Path(),
		Query: string(e.c.Request().URI().QueryString()),
	}
}

func (e *exchange) host() host {
	return host{
		ForwardedHost: e.header(forwardedHostHeaderKey),
		Hostname:      strings.Split(string(e.c.Request().Host()), ":")[0],
		IP:            e.header(forwardedForHeaderKey),
	}
}

func (e *exchange) request() *request {
	return &request{
		Method:    e.c.Method(),
		UserAgent: userAgent{Original: e.header(userAgentHeaderKey)},
	}
}

func (e *exchange) fiberError() *fiber.Error {
	var fiberErr *fiber.Error
	if errors.As(e.handlerErr, &fiberErr) {
		return fiberErr
	}
	return nil
}

func (e *exchange) statusCode() int {
	if fiberErr := e.fiberError(); fiberErr != nil {
		return fiberErr.Code
	}
	return e.c.Response().StatusCode()
}

func (e *exchange) bodySize() int {
	if fiberErr := e.fiberError(); fiberErr != nil {
		return len(fiberErr.Error())
	}

	if content := e.c.GetRespHeader(fiber.HeaderContentLength); content != "" {
		if length, err := strconv.Atoi(content); err == nil {
			return length
		}
	}
	return len(e.c.Response().Body())
}

func (e *exchange) logIncoming(logger Logger) {
	logger.Trace(IncomingRequestMessage,
		"http", http{Request: e.request()},
		"url", e.url(),
		"host", e.host(),
	)
}

func (e *exchange) logCompleted(logger Logger, startTime time.Time) {
	logger.Info(RequestCompletedMessage,
		"http", http{
			Request: e.request(),
			Response: &response{
				StatusCode:  e.statusCode(),
				ContentType: e.c.GetRespHeader(fiber.HeaderContentType),
				Body:        responseBody{Bytes: e.bodySize()},
			},
		},
		"url", e.url(),
		"host", e.host(),
		"responseTime", float64(time.Since(startTime).Milliseconds()),
	)
}

// RequestMiddlewareLogger is a fiber middleware to log all requests whose path does not
// start with one of excludedPrefix.
// It logs the incoming request and, once completed, its outcome and latency. Each request
// gets an id, taken from the x-request-id header or generated, that is attached to every
// log line, set on the response and carried by a logger stored in the request user context.
func RequestMiddlewareLogger(logger Logger, excludedPrefix []string) fiber.Handler {
	return func(fiberCtx *fiber.Ctx) error {
		for _, prefix := range excludedPrefix {
			if strings.HasPrefix(fiberCtx.Path(), prefix) {
				return fiberCtx.Next()
			}
		}

		start := time.Now()
		current := &exchange{c: fiberCtx}

		requestID := current.requestID()
		fiberCtx.Set(RequestIDHeaderName, requestID)
		requestLogger := logger.WithName("request").With("requestId", requestID)
		fiberCtx.SetUserContext(WithContext(fiberCtx.UserContext(), requestLogger))

		current.logIncoming(requestLogger)
		err := fiberCtx.Next()
		current.handlerErr = err
		current.logCompleted(requestLogger, start)

		return err
	}
}

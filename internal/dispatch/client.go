// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch sends one command to the agent endpoint and shapes the
// JSON it returns.
package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultEndpoint is the agent service's execute route on its default port.
const DefaultEndpoint = "http://localhost:10000/execute"

// DefaultTimeout bounds a single exchange.
const DefaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

var errResponseTooLarge = fmt.Errorf("response too large (over %d MiB)", maxResponseBytes>>20)

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result is a successfully shaped response.
type Result struct {
	RequestID  string
	StatusCode int
	Response   Response
	Duration   time.Duration
}

// Pretty returns the indented display value.
func (r Result) Pretty() string {
	return r.Response.Pretty()
}

type Client struct {
	endpoint string
	http     Doer
	log      *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout <= 0 {
			return
		}
		if hc, ok := c.http.(*http.Client); ok {
			hc.Timeout = timeout
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Dispatch performs exactly one POST for cmd. It never retries.
func (c *Client) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Text == "" {
		return Result{}, ErrEmptyCommand
	}
	if !utf8.ValidString(cmd.Text) {
		return Result{}, ErrInvalidEncoding
	}
	requestID := uuid.NewString()
	log := c.log.With(zap.String("request_id", requestID), zap.String("endpoint", c.endpoint))

	body, err := newPayload(cmd).Encode()
	if err != nil {
		return Result{}, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	log.Debug("dispatching command", zap.Int("text_len", len(cmd.Text)))
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("dispatch failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return Result{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		log.Warn("reading response failed", zap.Error(err), zap.Int("status", resp.StatusCode))
		return Result{}, &TransportError{Err: err}
	}
	elapsed := time.Since(start)
	if len(data) > maxResponseBytes {
		log.Warn("response too large", zap.Int("status", resp.StatusCode), zap.Int("limit", maxResponseBytes))
		return Result{}, &ProtocolError{StatusCode: resp.StatusCode, Err: errResponseTooLarge}
	}

	shaped, err := ParseResponse(data)
	if err != nil {
		log.Warn("malformed response", zap.Error(err), zap.Int("status", resp.StatusCode), zap.Duration("duration", elapsed))
		return Result{}, &ProtocolError{StatusCode: resp.StatusCode, Err: err}
	}
	log.Info("dispatch completed",
		zap.Int("status", resp.StatusCode),
		zap.Stringer("kind", shaped.Kind),
		zap.Duration("duration", elapsed),
	)
	return Result{
		RequestID:  requestID,
		StatusCode: resp.StatusCode,
		Response:   shaped,
		Duration:   elapsed,
	}, nil
}

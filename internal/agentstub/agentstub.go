// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package agentstub serves a scriptable stand-in for the agent's execute
// route, for tests and local development.
package agentstub

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shayne/agentcmd/internal/dispatch"
)

// Reply is what the stub answers with for one request.
type Reply struct {
	Status int
	Body   string
	Delay  time.Duration
}

// Request is one recorded call to the execute route.
type Request struct {
	ContentType string
	Body        []byte
	Payload     dispatch.Payload
}

type Stub struct {
	mu       sync.Mutex
	replies  []Reply
	fallback Reply
	requests []Request
}

// New returns a stub that answers every request with fallback until replies
// are queued with Enqueue.
func New(fallback Reply) *Stub {
	if fallback.Status == 0 {
		fallback.Status = http.StatusOK
	}
	return &Stub{fallback: fallback}
}

// Enqueue adds replies consumed in order before the fallback is used again.
func (s *Stub) Enqueue(replies ...Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
}

func (s *Stub) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Handler returns the gin engine exposing POST /execute.
func (s *Stub) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/execute", s.execute)
	return router
}

// Start serves the stub on a loopback listener. The caller closes it.
func (s *Stub) Start() *httptest.Server {
	return httptest.NewServer(s.Handler())
}

// URL is the execute endpoint of a started stub server.
func URL(srv *httptest.Server) string {
	return srv.URL + "/execute"
}

func (s *Stub) execute(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"response": "unreadable body"})
		return
	}
	recorded := Request{ContentType: c.GetHeader("Content-Type"), Body: body}
	payload, decodeErr := dispatch.DecodePayload(body)
	if decodeErr == nil {
		recorded.Payload = payload
	}
	reply := s.record(recorded)

	if decodeErr != nil || payload.Validate() != nil {
		c.JSON(http.StatusBadRequest, gin.H{"response": "missing text"})
		return
	}
	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-c.Request.Context().Done():
			return
		}
	}
	c.Data(reply.Status, "application/json", []byte(reply.Body))
}

func (s *Stub) record(req Request) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if len(s.replies) == 0 {
		return s.fallback
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	if reply.Status == 0 {
		reply.Status = http.StatusOK
	}
	return reply
}

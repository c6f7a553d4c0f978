// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var DefaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	hideCursorSeq = "\033[?25l"
	showCursorSeq = "\033[?25h"
)

// Spinner animates a single status line on out until stopped.
type Spinner struct {
	out        io.Writer
	frames     []string
	interval   time.Duration
	hideCursor bool

	mu      sync.Mutex
	text    string
	running bool
	stop    chan struct{}
	done    chan struct{}
}

type SpinnerOption func(*Spinner)

func WithFrames(frames []string) SpinnerOption {
	return func(s *Spinner) {
		if len(frames) > 0 {
			s.frames = frames
		}
	}
}

func WithInterval(interval time.Duration) SpinnerOption {
	return func(s *Spinner) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithHideCursor(hide bool) SpinnerOption {
	return func(s *Spinner) {
		s.hideCursor = hide
	}
}

func NewSpinner(out io.Writer, opts ...SpinnerOption) *Spinner {
	s := &Spinner{
		out:      out,
		frames:   DefaultFrames,
		interval: 120 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Spinner) Start(text string) {
	s.mu.Lock()
	if s.running {
		s.text = text
		s.mu.Unlock()
		return
	}
	s.running = true
	s.text = text
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	if s.hideCursor {
		fmt.Fprint(s.out, hideCursorSeq)
	}
	s.mu.Unlock()

	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	frame := 0
	for {
		s.mu.Lock()
		s.renderFrame(frame, s.text)
		s.mu.Unlock()
		frame++
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the animation. With clear the status line is erased.
func (s *Spinner) Stop(clear bool) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	if clear {
		s.clearLine()
	} else {
		fmt.Fprintln(s.out)
	}
	if s.hideCursor {
		fmt.Fprint(s.out, showCursorSeq)
	}
}

func (s *Spinner) renderFrame(frame int, text string) {
	glyph := s.frames[frame%len(s.frames)]
	fmt.Fprintf(s.out, "\r\033[K%s %s", glyph, text)
}

func (s *Spinner) clearLine() {
	fmt.Fprint(s.out, "\r\033[K")
}

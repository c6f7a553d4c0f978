// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import "fmt"

// ValidationError is returned for input rejected before any network activity.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// ErrEmptyCommand is returned by NewCommand for empty or whitespace-only input.
var ErrEmptyCommand error = &ValidationError{message: "please enter a command"}

// ErrInvalidEncoding is returned for input that is not valid UTF-8. Such
// text cannot be sent as JSON without being altered.
var ErrInvalidEncoding error = &ValidationError{message: "command is not valid UTF-8"}

// TransportError wraps a failure to complete the HTTP exchange (refused,
// reset, timeout). Its message is the underlying error's message.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is returned when the endpoint answered but the body could
// not be read as a JSON object.
type ProtocolError struct {
	StatusCode int
	Err        error
}

func (e *ProtocolError) Error() string {
	if e.StatusCode != 0 && (e.StatusCode < 200 || e.StatusCode > 299) {
		return fmt.Sprintf("unexpected response (status %d): %v", e.StatusCode, e.Err)
	}
	return e.Err.Error()
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

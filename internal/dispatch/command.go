// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"
)

// Command is one trimmed line of user input bound for the agent endpoint.
type Command struct {
	Text string
}

// NewCommand trims raw and returns ErrEmptyCommand when nothing is left.
// Input that is not valid UTF-8 is rejected with ErrInvalidEncoding.
func NewCommand(raw string) (Command, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Command{}, ErrEmptyCommand
	}
	if !utf8.ValidString(text) {
		return Command{}, ErrInvalidEncoding
	}
	return Command{Text: text}, nil
}

// Payload is the request body sent for a Command.
type Payload struct {
	Text string `json:"text"`
}

func newPayload(cmd Command) Payload {
	return Payload{Text: cmd.Text}
}

// Encode serializes the payload the way a browser JSON.stringify would:
// no HTML escaping and no trailing newline.
func (p Payload) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodePayload parses a request body produced by Encode.
func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, err
	}
	return p, nil
}

var errMissingText = errors.New("payload is missing text")

// Validate reports whether the payload carries dispatchable text.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return errMissingText
	}
	return nil
}

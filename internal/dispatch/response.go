// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	keyClaudeOutput = "claude_output"
	keyResponse     = "response"
)

// ResponseKind tags which key of the response body was selected for display.
type ResponseKind int

const (
	KindUnrecognized ResponseKind = iota
	KindKnown
	KindFallback
)

func (k ResponseKind) String() string {
	switch k {
	case KindKnown:
		return keyClaudeOutput
	case KindFallback:
		return keyResponse
	default:
		return "unrecognized"
	}
}

// Response is the value chosen from the endpoint's JSON object.
// Value is nil for KindUnrecognized.
type Response struct {
	Kind  ResponseKind
	Value json.RawMessage
}

var errNotObject = errors.New("response is not a JSON object")

// ParseResponse decodes body as a JSON object and selects claude_output when
// the key is present, otherwise response. Presence decides, so an explicit
// null still counts.
func ParseResponse(body []byte) (Response, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return Response{}, invalidJSONError(trimmed)
		}
		return Response{}, errNotObject
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Response{}, err
	}
	if value, ok := fields[keyClaudeOutput]; ok {
		return Response{Kind: KindKnown, Value: value}, nil
	}
	if value, ok := fields[keyResponse]; ok {
		return Response{Kind: KindFallback, Value: value}, nil
	}
	return Response{Kind: KindUnrecognized}, nil
}

func invalidJSONError(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return errors.New("invalid JSON")
}

// Pretty renders the selected value with two-space indentation, keeping the
// key order of the original body. Strings are re-encoded from their decoded
// value, so escapes such as \u2705 print as the character itself.
// Unrecognized responses render as null.
func (r Response) Pretty() string {
	if r.Kind == KindUnrecognized || len(r.Value) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	dec := json.NewDecoder(bytes.NewReader(r.Value))
	dec.UseNumber()
	if err := writeIndented(&buf, dec, 0); err != nil {
		return string(r.Value)
	}
	return buf.String()
}

const indentUnit = "  "

func writeIndented(buf *bytes.Buffer, dec *json.Decoder, depth int) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case json.Delim:
		return writeContainer(buf, dec, v, depth)
	case string:
		return writeString(buf, v)
	case json.Number:
		buf.WriteString(v.String())
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %v", tok)
	}
	return nil
}

func writeContainer(buf *bytes.Buffer, dec *json.Decoder, open json.Delim, depth int) error {
	isObject := open == '{'
	buf.WriteByte(byte(open))
	n := 0
	for dec.More() {
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indentUnit, depth+1))
		if isObject {
			key, err := dec.Token()
			if err != nil {
				return err
			}
			name, ok := key.(string)
			if !ok {
				return fmt.Errorf("unexpected object key %v", key)
			}
			if err := writeString(buf, name); err != nil {
				return err
			}
			buf.WriteString(": ")
		}
		if err := writeIndented(buf, dec, depth+1); err != nil {
			return err
		}
		n++
	}
	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return err
	}
	if n > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indentUnit, depth))
	}
	if isObject {
		buf.WriteByte('}')
	} else {
		buf.WriteByte(']')
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(out.Bytes(), []byte("\n")))
	return nil
}

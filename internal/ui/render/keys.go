// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"strings"

	"github.com/shayne/agentcmd/internal/ui/styles"
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key  string
	Desc string
}

// ShellKeys are the bindings the shell model handles.
var ShellKeys = []KeyHint{
	{Key: "enter", Desc: "send"},
	{Key: "pgup/pgdn", Desc: "scroll"},
	{Key: "ctrl+y", Desc: "copy"},
	{Key: "ctrl+l", Desc: "clear"},
	{Key: "esc", Desc: "quit"},
}

// RenderKeyHints renders bindings on one line separated by bullets.
func RenderKeyHints(hints []KeyHint, s styles.Styles) string {
	parts := make([]string, 0, len(hints))
	for _, hint := range hints {
		parts = append(parts, fmt.Sprintf("%s %s", s.Value.Render(hint.Key), s.Muted.Render(hint.Desc)))
	}
	return strings.Join(parts, s.Muted.Render(" • "))
}

// RenderHeader renders the brand line with the endpoint in use.
func RenderHeader(endpoint string, s styles.Styles) string {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = "<unset>"
	}
	return fmt.Sprintf("%s  %s%s", s.Brand.Render("agentcmd"), s.Label.Render("endpoint="), s.Value.Render(endpoint))
}

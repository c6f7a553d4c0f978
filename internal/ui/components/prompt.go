// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package components

import "github.com/shayne/agentcmd/internal/ui/styles"

const promptText = "agentcmd > "

func PromptPrefix(s styles.Styles) string {
	if !s.Enabled {
		return promptText
	}
	return s.Brand.Render("agentcmd") + " " + s.PromptArrow.Render(">") + " "
}

func PromptLine(s styles.Styles, input string) string {
	return PromptPrefix(s) + input
}

// PromptWidth is the printable width of the prompt prefix.
func PromptWidth() int {
	return len(promptText)
}

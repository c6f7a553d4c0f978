// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/shayne/agentcmd/internal/ui/styles"
)

func promptTheme() *huh.Theme {
	if styles.Enabled() {
		return huh.ThemeCharm()
	}
	return huh.ThemeBase()
}

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clipboard copies rendered results to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

var ErrUnavailable = errors.New("clipboard unavailable")

// CopyText places text on the system clipboard.
func CopyText(text string) error {
	if err := writeNative(text); err == nil {
		return nil
	} else if !errors.Is(err, ErrUnavailable) {
		return err
	}
	for _, argv := range fallbackCommands() {
		if _, err := exec.LookPath(argv[0]); err != nil {
			continue
		}
		if err := pipeTo(argv, text); err == nil {
			return nil
		}
	}
	return ErrUnavailable
}

func fallbackCommands() [][]string {
	cmds := [][]string{}
	if isWSL() {
		cmds = append(cmds, []string{"clip.exe"})
	}
	if runtime.GOOS == "linux" {
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			cmds = append(cmds, []string{"wl-copy"})
		}
		cmds = append(cmds, []string{"xclip", "-selection", "clipboard"}, []string{"xsel", "--clipboard", "--input"})
	}
	return cmds
}

func pipeTo(argv []string, text string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

func isWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	if data, err := os.ReadFile("/proc/version"); err == nil {
		version := strings.ToLower(string(data))
		if strings.Contains(version, "microsoft") || strings.Contains(version, "wsl") {
			return true
		}
	}
	if os.Getenv("WSL_DISTRO_NAME") != "" || os.Getenv("WSL_INTEROP") != "" {
		return true
	}
	return false
}

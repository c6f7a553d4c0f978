// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && !clipboard_x11

package clipboard

// Without the clipboard_x11 tag the cgo X11 backend is not linked; the
// command-line fallbacks handle Linux.
func writeNative(string) error {
	return ErrUnavailable
}

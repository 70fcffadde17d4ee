// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	ColorReset = "\x1b[0m"
	ColorBold  = "\x1b[1m"
	ColorRed   = "\x1b[31m"
	ColorDim   = "\x1b[90m"
)

type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer that is enabled only when w is a terminal
// and the environment does not ask for plain output.
func NewColorizer(w io.Writer) Colorizer {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	t := os.Getenv("TERM")
	if t == "" || t == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

func (c Colorizer) Wrap(code, text string) string {
	if !c.Enabled || code == "" {
		return text
	}
	return code + text + ColorReset
}

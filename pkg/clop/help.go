// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clop

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yeetrun/clop/pkg/tui"
)

const (
	commandsHeading = "Commands:"
	optionsHeading  = "Options:"
)

// RenderHelp formats the schema as help text: the usage text, the commands
// and options tables, then the examples text.
func RenderHelp(s Schema) string {
	var b strings.Builder
	b.WriteString(s.Usage)
	if s.Version != "" {
		fmt.Fprintf(&b, "Version: %s\n\n", s.Version)
	}

	b.WriteString(commandsHeading + "\n\n")
	width := 0
	for _, cmd := range s.Commands {
		width = max(width, len(cmd.Command))
	}
	lines := make([]string, 0, len(s.Commands))
	for _, cmd := range s.Commands {
		lines = append(lines, fmt.Sprintf("    %-*s%s", width+2, cmd.Command, cmd.Desc))
	}
	b.WriteString(strings.Join(lines, "\n"))

	b.WriteString("\n\n" + optionsHeading + "\n")
	heads := make([]string, len(s.Options))
	width = 0
	for i, opt := range s.Options {
		heads[i] = formatOption(opt)
		width = max(width, len(heads[i]))
	}
	lines = lines[:0]
	for i, opt := range s.Options {
		lines = append(lines, fmt.Sprintf("    %-*s%s%s", width+2, heads[i], opt.Desc, formatValueList(opt.Values)))
	}
	b.WriteString(strings.Join(lines, "\n"))

	b.WriteString("\n\n")
	b.WriteString(s.Examples)
	return b.String()
}

// formatOption renders the aliases, shortest first, and the argument
// placeholder.
func formatOption(opt OptionSpec) string {
	aliases := slices.Clone(opt.Aliases)
	slices.SortStableFunc(aliases, func(a, b string) int {
		return len(a) - len(b)
	})
	for i, alias := range aliases {
		aliases[i] = "-" + alias
	}
	str := strings.Join(aliases, ", ")
	if opt.Args != "" {
		str += " " + opt.Args
	}
	return str
}

func formatValueList(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return " [" + strings.Join(values, ", ") + "]"
}

// highlightHeadings bolds the section heading lines for terminal output.
func highlightHeadings(text string, c tui.Colorizer) string {
	if !c.Enabled {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == commandsHeading || line == optionsHeading {
			lines[i] = c.Wrap(tui.ColorBold, line)
		}
	}
	return strings.Join(lines, "\n")
}

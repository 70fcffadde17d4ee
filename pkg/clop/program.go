// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clop

import (
	"strconv"
	"strings"
)

// Program is the result of parsing one command line.
type Program struct {
	// Command is the declared name of the selected command, "help" when help
	// was requested, or empty when no command could be selected.
	Command string `json:"command,omitempty" yaml:"command,omitempty"`
	// Options maps canonical option names to their values: true for flags,
	// a string or int for single values, and []any for lists. Defaults are
	// included, as declared, for options that were not supplied.
	Options map[string]any `json:"options" yaml:"options"`
	// Error is the first error encountered, if any.
	Error *ErrorRecord `json:"error,omitempty" yaml:"error,omitempty"`
	// HelpContent is the rendered help text when help was requested and
	// Config.ReportHelpContent is set.
	HelpContent string `json:"helpContent,omitempty" yaml:"helpContent,omitempty"`
}

// Has reports whether the option is present, either supplied or defaulted.
func (p *Program) Has(name string) bool {
	_, ok := p.Options[name]
	return ok
}

// Bool reports whether the option is set to a truthy value.
func (p *Program) Bool(name string) bool {
	return truthy(p.Options[name])
}

// String returns a single value as text, or a list joined by commas. It
// returns "" for absent options and flags.
func (p *Program) String(name string) string {
	switch v := p.Options[name].(type) {
	case []any:
		return strings.Join(formatValues(v), ",")
	case bool, nil:
		return ""
	default:
		return formatValue(v)
	}
}

// Int returns the option's value as an int if it is a single integer.
func (p *Program) Int(name string) (int, bool) {
	switch v := p.Options[name].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// Strings returns the option's values as text. A single value yields a one
// element slice; absent options and flags yield nil.
func (p *Program) Strings(name string) []string {
	switch v := p.Options[name].(type) {
	case []any:
		return formatValues(v)
	case bool, nil:
		return nil
	default:
		return []string{formatValue(v)}
	}
}

func formatValues(vs []any) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = formatValue(v)
	}
	return out
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	}
	return true
}

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clop

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OptionSpec declares an option.
type OptionSpec struct {
	// Aliases are the accepted spellings, without leading dashes. The first
	// alias names the option unless Name is set.
	Aliases []string `json:"aliases" yaml:"aliases" toml:"aliases"`
	Name    string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	// Default is reported when the option is not supplied. nil means none.
	Default any `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	// Values restricts the accepted values (case-insensitive).
	Values []string `json:"values,omitempty" yaml:"values,omitempty" toml:"values,omitempty"`
	Args   string   `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
	Desc   string   `json:"desc,omitempty" yaml:"desc,omitempty" toml:"desc,omitempty"`
}

// CommandSpec declares a command.
type CommandSpec struct {
	Command string `json:"command" yaml:"command" toml:"command"`
	Desc    string `json:"desc,omitempty" yaml:"desc,omitempty" toml:"desc,omitempty"`
	// Default selects this command when the command line starts with an
	// option or is empty. At most one command may be the default.
	Default bool `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
}

// Schema is the declaration a Parser is built from. Usage and Examples are
// free-form text only used for help output.
type Schema struct {
	Commands []CommandSpec `json:"commands,omitempty" yaml:"commands,omitempty" toml:"commands,omitempty"`
	Options  []OptionSpec  `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	Usage    string        `json:"usage,omitempty" yaml:"usage,omitempty" toml:"usage,omitempty"`
	Examples string        `json:"examples,omitempty" yaml:"examples,omitempty" toml:"examples,omitempty"`
	// Version is an optional semantic version shown in help output.
	Version string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
}

const (
	helpCommand = "help"
	helpOption  = "help"
)

var implicitHelpAliases = []string{"help", "h"}

// scrubOption maps an alias to its canonical identifier: dashes become
// underscores and every underscore followed by a lowercase letter is replaced
// by that letter in uppercase.
func scrubOption(s string) string {
	s = strings.ReplaceAll(s, "-", "_")
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' && i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
			b.WriteByte(s[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// normalizeCommand is scrubOption followed by lowercasing.
func normalizeCommand(s string) string {
	return cases.Lower(language.Und).String(scrubOption(s))
}

// optionRef is what an alias resolves to.
type optionRef struct {
	name   string
	values []string
}

type commandRef struct {
	name       string
	normalized string
	isDefault  bool
}

// normalizedSchema is derived once from a Schema and never mutated.
type normalizedSchema struct {
	aliases  map[string]optionRef
	defaults map[string]any
	commands []commandRef
	// implicitHelp holds the aliases of the built-in help option that do not
	// collide with declared ones. It is empty when an option named help is
	// declared.
	implicitHelp map[string]optionRef
}

func normalize(s Schema) (*normalizedSchema, error) {
	ns := &normalizedSchema{
		aliases:      make(map[string]optionRef),
		defaults:     make(map[string]any),
		implicitHelp: make(map[string]optionRef),
	}
	declaresHelp := false
	for _, opt := range s.Options {
		if len(opt.Aliases) == 0 {
			return nil, &SchemaError{Subject: opt.Name, Err: ErrEmptyAliases}
		}
		name := opt.Name
		if name == "" {
			name = scrubOption(opt.Aliases[0])
		}
		if name == helpOption {
			declaresHelp = true
		}
		if opt.Default != nil {
			ns.defaults[name] = cloneValue(opt.Default)
		}
		ref := optionRef{name: name, values: append([]string(nil), opt.Values...)}
		for _, alias := range opt.Aliases {
			alias = scrubOption(alias)
			if _, exists := ns.aliases[alias]; exists {
				return nil, &SchemaError{Subject: alias, Err: ErrDuplicateAlias}
			}
			ns.aliases[alias] = ref
		}
	}
	if !declaresHelp {
		for _, alias := range implicitHelpAliases {
			if _, exists := ns.aliases[alias]; !exists {
				ns.implicitHelp[alias] = optionRef{name: helpOption}
			}
		}
	}

	var defaultCmd string
	for _, cmd := range s.Commands {
		if cmd.Default {
			if defaultCmd != "" {
				return nil, &SchemaError{Subject: defaultCmd + ", " + cmd.Command, Err: ErrMultipleDefaults}
			}
			defaultCmd = cmd.Command
		}
		ns.commands = append(ns.commands, commandRef{
			name:       cmd.Command,
			normalized: normalizeCommand(cmd.Command),
			isDefault:  cmd.Default,
		})
	}

	if s.Version != "" {
		if _, err := semver.StrictNewVersion(strings.TrimPrefix(s.Version, "v")); err != nil {
			return nil, &SchemaError{Subject: s.Version, Err: ErrInvalidVersion}
		}
	}
	return ns, nil
}

// defaultOptions returns a fresh copy of the declared defaults.
func (ns *normalizedSchema) defaultOptions() map[string]any {
	out := make(map[string]any, len(ns.defaults))
	for name, v := range ns.defaults {
		out[name] = cloneValue(v)
	}
	return out
}

// cloneValue copies list values so callers never share backing arrays with
// the schema or with each other.
func cloneValue(v any) any {
	switch v := v.(type) {
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return slices.Clone(v)
	case []int:
		return slices.Clone(v)
	case []float64:
		return slices.Clone(v)
	}
	return v
}

func (ns *normalizedSchema) hasDefaultCommand() bool {
	for _, cmd := range ns.commands {
		if cmd.isDefault {
			return true
		}
	}
	return false
}

// implicitHelpSpec returns the built-in help option as it appears in help
// output, or false when a help option is declared.
func (ns *normalizedSchema) implicitHelpSpec() (OptionSpec, bool) {
	var aliases []string
	for _, alias := range implicitHelpAliases {
		if _, ok := ns.implicitHelp[alias]; ok {
			aliases = append(aliases, alias)
		}
	}
	if len(aliases) == 0 {
		return OptionSpec{}, false
	}
	return OptionSpec{Aliases: aliases, Name: helpOption, Desc: "Show this message."}, true
}

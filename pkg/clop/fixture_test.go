// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clop

import "testing"

const otterUsage = `
Usage: otter <command> [options]

Otter is the command-line utility for managing the development process tooling.
`

func otterSchema() Schema {
	return Schema{
		Commands: []CommandSpec{
			{Command: "check", Desc: "Check that issues and gecks match by owner and status."},
			{Command: "importBugs", Desc: "Import bug gecks for all users into Jira."},
			{Command: "issuesClosed", Desc: "Display the issues closed by a user over a date range."},
			{Command: "projectWikiText", Desc: "Display the wiki text for a project reference in the index."},
		},
		Options: []OptionSpec{
			{Aliases: []string{"instance", "i"}, Args: "<instanceName>", Desc: "Name of the Jira instance to use.", Values: []string{"mf", "DASPerf", "mdwe"}},
			{Aliases: []string{"project", "p"}, Desc: "Jira project key, where applicable"},
			{Aliases: []string{"noop", "n"}, Desc: "Perform no modifying action."},
			{Aliases: []string{"user", "u"}, Args: "<userName>", Desc: "Name of the Jira user."},
			{Aliases: []string{"time", "t"}, Args: "a[,b]", Desc: "Filter by date, date range, or duration"},
			{Aliases: []string{"help", "h"}, Desc: "Output: Show this message."},
		},
		Usage:    otterUsage,
		Examples: "\nExample:\n    otter check -u me\n",
	}
}

func withDefaultCommand(s Schema) Schema {
	s.Commands = append(s.Commands[:len(s.Commands):len(s.Commands)], CommandSpec{Command: "def", Desc: "Default command", Default: true})
	return s
}

func withDefaultOption(s Schema) Schema {
	s.Options = append(s.Options[:len(s.Options):len(s.Options)], OptionSpec{Aliases: []string{"mode", "m"}, Desc: "Mode", Default: "test"})
	return s
}

// argv builds a process argument vector from already-split arguments.
func argv(args ...string) []string {
	return append([]string{"/usr/bin/node", "otter.js"}, args...)
}

// recorder collects errors handed to an ErrorHandler.
type recorder struct {
	kinds []ErrorKind
	msgs  []string
}

func (r *recorder) handler() ErrorHandler {
	return func(kind ErrorKind, msg string) {
		r.kinds = append(r.kinds, kind)
		r.msgs = append(r.msgs, msg)
	}
}

func newTestParser(t *testing.T, s Schema) (*Parser, *recorder) {
	t.Helper()
	rec := &recorder{}
	p, err := New(s, Config{ErrorHandler: rec.handler(), ReportHelpContent: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p, rec
}

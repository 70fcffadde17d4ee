// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Otter is a small program showing clop's default error and help policy:
// errors are printed to stderr and exit 1, help is printed and exits 0.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/yeetrun/clop/pkg/clop"
)

var schema = clop.Schema{
	Usage: "Usage: otter <command> [options]\n",
	Commands: []clop.CommandSpec{
		{Command: "check", Desc: "Check that issues and gecks match by owner and status.", Default: true},
		{Command: "importBugs", Desc: "Import bug gecks for all users into Jira."},
	},
	Options: []clop.OptionSpec{
		{Aliases: []string{"instance", "i"}, Args: "<instanceName>", Desc: "Name of the Jira instance to use.", Values: []string{"mf", "DASPerf", "mdwe"}},
		{Aliases: []string{"user", "u"}, Args: "<userName>", Desc: "Only consider issues owned by these users."},
		{Aliases: []string{"noop", "n"}, Desc: "Perform no modifying action."},
		{Aliases: []string{"retries", "r"}, Args: "<count>", Desc: "Retry count.", Default: 3},
	},
	Examples: "Example:\n    otter check -u me\n    otter importBugs -i mf,!mdwe -n\n",
}

func main() {
	p := clop.MustNew(schema, clop.Config{})
	prog := p.ParseArgs(os.Args[1:])
	if prog.Error != nil {
		// Only reached for errors the default policy did not exit on.
		os.Exit(1)
	}
	retries, _ := prog.Int("retries")
	fmt.Printf("%s: instances=%s users=%s noop=%t retries=%d\n",
		prog.Command,
		strings.Join(prog.Strings("instance"), ","),
		strings.Join(prog.Strings("user"), ","),
		prog.Bool("noop"),
		retries)
}

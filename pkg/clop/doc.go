// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clop parses a command line against a declarative schema of
// commands and options.
//
// A command line has the shape
//
//	program <command> [-option [value ...]] ...
//
// The first token selects a command. Every following token is either an
// option marker (one or more leading dashes followed by a known alias) or a
// value for the most recently opened option. Single and double dashes are
// equivalent, and hyphenated, underscored and medial-capital spellings of the
// same alias all resolve to one canonical name:
//
//	-dry-run, --dry_run and -dryRun all report as "dryRun"
//
// Merged single-letter flags and --opt=value syntax are not supported.
//
// # Values
//
// An option with no value tokens reports the boolean true. Value tokens are
// split on commas unless they contain a space (the shell removed the quotes
// of a multi-word argument), numbers are coerced to int keeping their integer
// part, and a single element collapses to a scalar:
//
//	-u me          "me"
//	-u you,me      []any{"you", "me"}
//	-u 35,34       []any{35, 34}
//	-t 1.5         1
//	-u "you, me"   "you, me"
//
// Options that declare Values only accept those values (case-insensitive),
// optionally negated with a leading "no-", "~" or "!":
//
//	-i MDWE        "mdwe"
//	-i no-mdwe     "!mdwe"
//
// # Basic Usage
//
//	p := clop.MustNew(clop.Schema{
//	    Usage:    "Usage: otter <command> [options]\n\n",
//	    Commands: []clop.CommandSpec{{Command: "check", Desc: "Check issues"}},
//	    Options:  []clop.OptionSpec{{Aliases: []string{"user", "u"}, Args: "<userName>"}},
//	}, clop.Config{})
//	prog := p.ParseArgs(os.Args[1:])
//	fmt.Println(prog.Command, prog.String("user"))
//
// # Errors
//
// With the zero Config, any error is printed to stderr and the process exits
// with status 1, and help output exits with status 0. Set
// Config.ErrorHandler to receive errors instead; the first one is also kept in
// Program.Error. Set Config.ReportHelpContent to receive the help text in
// Program.HelpContent instead of having it printed.
package clop

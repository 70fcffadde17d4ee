// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command clop checks clop schema files, renders their help and parses
// argument vectors against them.
//
//	clop check -s cli.toml
//	clop render -s cli.yaml
//	clop parse -s cli.toml -f yaml -- check -i mf,mdwe -n
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/yeetrun/clop/pkg/clop"
	"github.com/yeetrun/clop/pkg/schemafile"
	"gopkg.in/yaml.v3"
)

// schemaEnv names the environment variable consulted when -schema is not
// given.
const schemaEnv = "CLOP_SCHEMA"

var cliSchema = clop.Schema{
	Usage: "Usage: clop <command> [options] [-- <argv...>]\n",
	Commands: []clop.CommandSpec{
		{Command: "check", Desc: "Load and validate a schema file.", Default: true},
		{Command: "render", Desc: "Print the help text for a schema file."},
		{Command: "parse", Desc: "Parse the arguments after -- and print the result."},
	},
	Options: []clop.OptionSpec{
		{Aliases: []string{"schema", "s"}, Args: "<file>", Desc: "Schema file. Defaults to $" + schemaEnv + " or the nearest clop.toml, clop.yaml or clop.yml."},
		{Aliases: []string{"format", "f"}, Args: "<format>", Desc: "Output format for parse.", Values: []string{"json", "yaml"}, Default: "json"},
		{Aliases: []string{"verbose", "v"}, Desc: "Trace parsing decisions to stderr."},
	},
	Examples: "Examples:\n    clop check -s cli.toml\n    clop parse -s cli.toml -- check -i mf -n\n",
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	own, target := splitArgs(args)

	printError := func(_ clop.ErrorKind, msg string) {
		fmt.Fprintln(stderr, color.RedString("ERROR: %s", msg))
	}
	self := clop.MustNew(cliSchema, clop.Config{ErrorHandler: printError, ReportHelpContent: true})
	opts := self.ParseArgs(own)
	if opts.Error != nil {
		if opts.Error.Suggestion != "" {
			fmt.Fprintf(stderr, "Did you mean %q?\n", opts.Error.Suggestion)
		}
		return 1
	}
	if opts.HelpContent != "" {
		fmt.Fprintln(stdout, opts.HelpContent)
		return 0
	}

	var logf func(string, ...any)
	if opts.Bool("verbose") {
		logf = log.New(stderr, "clop: ", 0).Printf
	}

	path, err := schemaPath(opts.String("schema"))
	if err != nil {
		printError("", err.Error())
		return 1
	}
	if logf != nil {
		logf("using schema %s", path)
	}
	s, err := schemafile.Load(path)
	if err != nil {
		printError("", err.Error())
		return 1
	}
	p, err := clop.New(s, clop.Config{
		ErrorHandler:      printError,
		ReportHelpContent: true,
		Logf:              logf,
	})
	if err != nil {
		printError("", fmt.Sprintf("%s: %v", path, err))
		return 1
	}

	switch opts.Command {
	case "check":
		fmt.Fprintf(stdout, "%s: ok (%d commands, %d options", path, len(s.Commands), len(s.Options))
		if s.Version != "" {
			fmt.Fprintf(stdout, ", version %s", s.Version)
		}
		fmt.Fprintln(stdout, ")")
		return 0
	case "render":
		fmt.Fprintln(stdout, p.Help())
		return 0
	case "parse":
		prog := p.ParseArgs(target)
		if err := encode(stdout, opts.String("format"), prog); err != nil {
			printError("", err.Error())
			return 1
		}
		if prog.Error != nil {
			return 1
		}
		return 0
	}
	printError("", fmt.Sprintf("unhandled command %q", opts.Command))
	return 1
}

// splitArgs separates clop's own arguments from the arguments after the
// first "--".
func splitArgs(args []string) (own, target []string) {
	i := slices.Index(args, "--")
	if i < 0 {
		return args, nil
	}
	return args[:i], args[i+1:]
}

// schemaPath resolves the schema file from the flag, the environment or the
// working directory, in that order.
func schemaPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(schemaEnv); env != "" {
		return env, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	path, err := schemafile.Find(wd)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("no schema file found; pass -schema or set %s", schemaEnv)
	}
	return path, err
}

func encode(w io.Writer, format string, prog *clop.Program) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(prog)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(prog); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}

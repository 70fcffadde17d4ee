// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clop

import (
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/yeetrun/clop/pkg/tui"
)

// Config controls how a Parser reports errors and help.
type Config struct {
	// ErrorHandler receives every parse error. When nil, the first error is
	// printed to Stderr and the process exits with status 1.
	ErrorHandler ErrorHandler
	// ReportHelpContent returns help text in Program.HelpContent instead of
	// printing it to Stdout and exiting with status 0.
	ReportHelpContent bool
	// OmitDefaultHelpOption disables the built-in -help/-h option that is
	// otherwise provided when the schema declares no option named help.
	OmitDefaultHelpOption bool

	// Stdout, Stderr and Exit are used when help or errors are emitted
	// directly. They default to os.Stdout, os.Stderr and os.Exit.
	Stdout io.Writer
	Stderr io.Writer
	Exit   func(code int)

	// Logf, if set, traces parsing decisions.
	Logf func(format string, args ...any)
}

// Parser parses command lines against a fixed schema. The schema is
// normalized once by New; Parse may be called any number of times.
type Parser struct {
	schema Schema
	ns     *normalizedSchema
	cfg    Config
}

// New builds a Parser. It returns a *SchemaError if two option aliases
// collide after normalization, an option has no aliases, more than one
// command is marked default, or Version is not a semantic version.
func New(s Schema, cfg Config) (*Parser, error) {
	ns, err := normalize(s)
	if err != nil {
		return nil, err
	}
	return &Parser{schema: s, ns: ns, cfg: cfg}, nil
}

// MustNew is like New but panics if the schema is invalid.
func MustNew(s Schema, cfg Config) *Parser {
	p, err := New(s, cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Configure replaces the parser's configuration. It must not be called
// concurrently with Parse.
func (p *Parser) Configure(cfg Config) {
	p.cfg = cfg
}

// Parse parses an argument vector whose first two elements identify an
// interpreter and script, as with a program run through a launcher. They are
// skipped. Use ParseArgs with os.Args[1:] for an ordinary binary.
func (p *Parser) Parse(argv []string) *Program {
	var args []string
	if len(argv) > 2 {
		args = argv[2:]
	}
	return p.ParseArgs(args)
}

// ParseArgs parses arguments that start with the command token.
func (p *Parser) ParseArgs(args []string) *Program {
	prog := &Program{}
	var first string
	if len(args) > 0 {
		first = args[0]
	}

	scanner := &optionScanner{lookup: p.lookup, sink: p.sink(), logf: p.cfg.Logf}
	if p.isHelpRequest(args, scanner) {
		prog.Command = helpCommand
		prog.Options = map[string]any{}
	} else {
		cmd, skip, rec := selectCommand(p.ns.commands, first, scanner.sink)
		prog.Command = cmd
		if rec != nil {
			prog.Options = map[string]any{}
			prog.Error = rec
			return prog
		}
		p.logf("command %q selected, %d token(s) consumed", cmd, skip)

		opts, rec := scanner.scan(args[skip:])
		prog.Options = p.ns.defaultOptions()
		maps.Copy(prog.Options, opts)
		prog.Error = rec
	}

	if prog.Command == helpCommand || truthy(prog.Options[helpOption]) {
		p.showHelp(prog)
	}
	return prog
}

func (p *Parser) isHelpRequest(args []string, scanner *optionScanner) bool {
	if len(args) == 0 {
		return !p.ns.hasDefaultCommand()
	}
	if args[0] == helpCommand {
		return true
	}
	opt, ok := scanner.asOption(args[0])
	return ok && opt.name == helpOption
}

// Help renders the help text for the parser's schema, including the
// built-in help option when it is active.
func (p *Parser) Help() string {
	s := p.schema
	if !p.cfg.OmitDefaultHelpOption {
		if spec, ok := p.ns.implicitHelpSpec(); ok {
			s.Options = append(s.Options[:len(s.Options):len(s.Options)], spec)
		}
	}
	return RenderHelp(s)
}

func (p *Parser) showHelp(prog *Program) {
	text := p.Help()
	if p.cfg.ReportHelpContent {
		prog.HelpContent = text
		return
	}
	w := p.stdout()
	fmt.Fprintln(w, highlightHeadings(text, tui.NewColorizer(w)))
	p.exit(0)
}

func (p *Parser) lookup(alias string) (optionRef, bool) {
	if ref, ok := p.ns.aliases[alias]; ok {
		return ref, true
	}
	if p.cfg.OmitDefaultHelpOption {
		return optionRef{}, false
	}
	ref, ok := p.ns.implicitHelp[alias]
	return ref, ok
}

func (p *Parser) sink() errorSink {
	if p.cfg.ErrorHandler != nil {
		return p.cfg.ErrorHandler
	}
	stderr := p.cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return exitSink{w: stderr, exit: p.exit}
}

func (p *Parser) stdout() io.Writer {
	if p.cfg.Stdout != nil {
		return p.cfg.Stdout
	}
	return os.Stdout
}

func (p *Parser) exit(code int) {
	if p.cfg.Exit != nil {
		p.cfg.Exit(code)
		return
	}
	os.Exit(code)
}

func (p *Parser) logf(format string, args ...any) {
	if p.cfg.Logf != nil {
		p.cfg.Logf(format, args...)
	}
}

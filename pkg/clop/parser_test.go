// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clop

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCommands(t *testing.T) {
	p, _ := newTestParser(t, otterSchema())
	prog := p.Parse(argv("check"))
	if prog.Command != "check" {
		t.Errorf("Command = %q, want %q", prog.Command, "check")
	}
	if prog.Error != nil {
		t.Errorf("Error = %v, want nil", prog.Error)
	}

	prog = p.Parse(argv("choock"))
	if prog.Error == nil || prog.Error.Kind != UnknownCommand {
		t.Fatalf("Error = %v, want %s", prog.Error, UnknownCommand)
	}
	if diff := cmp.Diff(map[string]any{}, prog.Options); diff != "" {
		t.Errorf("Options after a command error mismatch (-want +got):\n%s", diff)
	}
	if prog.HelpContent != "" {
		t.Errorf("HelpContent set alongside a command error")
	}
}

func TestParseDefaultCommand(t *testing.T) {
	p, _ := newTestParser(t, withDefaultCommand(otterSchema()))

	prog := p.Parse(argv())
	if prog.Command != "def" {
		t.Errorf("Command = %q, want %q", prog.Command, "def")
	}
	if prog.HelpContent != "" {
		t.Errorf("HelpContent = %q, want empty with a default command", prog.HelpContent)
	}

	prog = p.Parse(argv("-n"))
	if prog.Command != "def" {
		t.Errorf("Command = %q, want %q", prog.Command, "def")
	}
	if !prog.Bool("noop") {
		t.Errorf("Options[noop] = %v, want true", prog.Options["noop"])
	}

	prog = p.Parse(argv("-u", "me", "-n"))
	if diff := cmp.Diff(map[string]any{"user": "me", "noop": true}, prog.Options); diff != "" {
		t.Errorf("Options mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHelp(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		args   []string
	}{
		{name: "absent command", schema: otterSchema(), args: nil},
		{name: "help command", schema: otterSchema(), args: []string{"help"}},
		{name: "-help", schema: otterSchema(), args: []string{"-help"}},
		{name: "-h", schema: otterSchema(), args: []string{"-h"}},
		{name: "--help with default command", schema: withDefaultCommand(otterSchema()), args: []string{"--help"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rec := newTestParser(t, tt.schema)
			prog := p.Parse(argv(tt.args...))
			if prog.Command != "help" {
				t.Errorf("Command = %q, want %q", prog.Command, "help")
			}
			if len(prog.Options) != 0 {
				t.Errorf("Options = %v, want empty", prog.Options)
			}
			if !strings.Contains(prog.HelpContent, "Usage:") {
				t.Errorf("HelpContent = %q, want usage text", prog.HelpContent)
			}
			if prog.Error != nil || len(rec.kinds) != 0 {
				t.Errorf("Error = %v, handler saw %v; want none", prog.Error, rec.kinds)
			}
		})
	}
}

func TestParseHelpOptionAfterCommand(t *testing.T) {
	p, _ := newTestParser(t, otterSchema())
	prog := p.Parse(argv("check", "-u", "me", "-h"))
	if prog.Command != "check" {
		t.Errorf("Command = %q, want %q", prog.Command, "check")
	}
	if !strings.Contains(prog.HelpContent, "Options:") {
		t.Errorf("HelpContent = %q, want rendered help", prog.HelpContent)
	}
	if prog.String("user") != "me" {
		t.Errorf("Options[user] = %v, want %q", prog.Options["user"], "me")
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want map[string]any
	}{
		{name: "flag", args: []string{"check", "-n"}, want: map[string]any{"noop": true}},
		{name: "flag with argument", args: []string{"check", "-noop", "on"}, want: map[string]any{"noop": "on"}},
		{name: "alias", args: []string{"check", "-n", "on"}, want: map[string]any{"noop": "on"}},
		{name: "named by alias not argument", args: []string{"check", "-u", "me"}, want: map[string]any{"user": "me"}},
		{name: "permitted value", args: []string{"check", "-i", "mdwe"}, want: map[string]any{"instance": "mdwe"}},
		{name: "multiple values", args: []string{"check", "-u", "you,me"}, want: map[string]any{"user": []any{"you", "me"}}},
		{name: "multiple numeric values", args: []string{"check", "-u", "35,34"}, want: map[string]any{"user": []any{35, 34}}},
		{name: "spaces between list values", args: []string{"check", "-u", "you,", "me"}, want: map[string]any{"user": []any{"you", "me"}}},
		{name: "quoted value", args: []string{"check", "-u", "you, me"}, want: map[string]any{"user": "you, me"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestParser(t, otterSchema())
			prog := p.Parse(argv(tt.args...))
			if prog.Error != nil {
				t.Fatalf("Error = %v", prog.Error)
			}
			if diff := cmp.Diff(tt.want, prog.Options); diff != "" {
				t.Errorf("Options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseAliasSpellings(t *testing.T) {
	p, _ := newTestParser(t, Schema{
		Commands: []CommandSpec{{Command: "run"}},
		Options:  []OptionSpec{{Aliases: []string{"dry-run", "d"}}},
	})
	for _, spelling := range []string{"-dry-run", "--dry_run", "-dryRun", "--dry-run", "-d"} {
		prog := p.Parse(argv("run", spelling))
		if diff := cmp.Diff(map[string]any{"dryRun": true}, prog.Options); diff != "" {
			t.Errorf("%s: Options mismatch (-want +got):\n%s", spelling, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want ErrorKind
	}{
		{name: "invalid option", args: []string{"check", "-chicken"}, want: UnknownOption},
		{name: "stray token", args: []string{"check", "chicken"}, want: UnknownOption},
		{name: "restricted value", args: []string{"check", "-i", "goofus"}, want: IllegalValue},
		{name: "restricted value in list", args: []string{"check", "-i", "mdwe,goofus"}, want: IllegalValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rec := newTestParser(t, otterSchema())
			prog := p.Parse(argv(tt.args...))
			if prog.Error == nil || prog.Error.Kind != tt.want {
				t.Fatalf("Error = %v, want %s", prog.Error, tt.want)
			}
			if len(rec.kinds) == 0 || rec.kinds[0] != tt.want {
				t.Errorf("handler saw %v, want %s first", rec.kinds, tt.want)
			}
			if prog.Command != "check" {
				t.Errorf("Command = %q, want %q", prog.Command, "check")
			}
		})
	}
}

func TestParseIllegalValueKeepsDefaults(t *testing.T) {
	p, _ := newTestParser(t, withDefaultOption(otterSchema()))
	prog := p.Parse(argv("check", "-u", "me", "-i", "goofus"))
	if prog.Error == nil || prog.Error.Kind != IllegalValue {
		t.Fatalf("Error = %v, want %s", prog.Error, IllegalValue)
	}
	if diff := cmp.Diff(map[string]any{"mode": "test"}, prog.Options); diff != "" {
		t.Errorf("Options mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDefaults(t *testing.T) {
	p, _ := newTestParser(t, withDefaultOption(otterSchema()))

	prog := p.Parse(argv("check"))
	if got := prog.String("mode"); got != "test" {
		t.Errorf("Options[mode] = %q, want %q", got, "test")
	}

	prog = p.Parse(argv("check", "-m", "prod"))
	if got := prog.String("mode"); got != "prod" {
		t.Errorf("Options[mode] = %q, want %q", got, "prod")
	}

	prog = p.Parse(argv("check"))
	if got := prog.String("mode"); got != "test" {
		t.Errorf("second parse Options[mode] = %q, want %q; defaults must not be shared", got, "test")
	}
}

func TestParseListDefaultsAreCopied(t *testing.T) {
	declared := []any{"a", "b"}
	s := otterSchema()
	s.Options = append(s.Options, OptionSpec{Aliases: []string{"list", "l"}, Default: declared})
	p, _ := newTestParser(t, s)

	first := p.Parse(argv("check"))
	list, ok := first.Options["list"].([]any)
	if !ok {
		t.Fatalf("Options[list] = %#v, want a list", first.Options["list"])
	}
	list[0] = "changed"
	declared[1] = "changed"

	second := p.Parse(argv("check"))
	if diff := cmp.Diff([]any{"a", "b"}, second.Options["list"]); diff != "" {
		t.Errorf("second parse Options[list] mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArgs(t *testing.T) {
	p, _ := newTestParser(t, otterSchema())
	prog := p.ParseArgs([]string{"importBugs", "-p", "OTTER"})
	if prog.Command != "importBugs" || prog.String("project") != "OTTER" {
		t.Errorf("ParseArgs() = %+v", prog)
	}
}

func TestImplicitHelpOption(t *testing.T) {
	schema := Schema{
		Usage:    "Usage: tool <command>\n\n",
		Commands: []CommandSpec{{Command: "run", Desc: "Run it"}},
		Options:  []OptionSpec{{Aliases: []string{"verbose", "v"}, Desc: "Chatty"}},
	}

	p, _ := newTestParser(t, schema)
	prog := p.Parse(argv("-h"))
	if prog.Command != "help" {
		t.Errorf("Command = %q, want %q", prog.Command, "help")
	}
	if !strings.Contains(prog.HelpContent, "-h, -help") {
		t.Errorf("HelpContent = %q, want the built-in help option listed", prog.HelpContent)
	}

	p.Configure(Config{ErrorHandler: func(ErrorKind, string) {}, ReportHelpContent: true, OmitDefaultHelpOption: true})
	prog = p.Parse(argv("run", "-h"))
	if prog.Command != "run" {
		t.Errorf("Command = %q, want %q", prog.Command, "run")
	}
	if prog.Error == nil || prog.Error.Kind != UnknownOption {
		t.Errorf("Error = %v, want %s for -h without the built-in option", prog.Error, UnknownOption)
	}
	if strings.Contains(p.Help(), "-help") {
		t.Errorf("Help() lists -help with OmitDefaultHelpOption set")
	}
}

func TestDefaultErrorPolicy(t *testing.T) {
	var stderr bytes.Buffer
	var codes []int
	p, err := New(otterSchema(), Config{
		Stderr: &stderr,
		Exit:   func(code int) { codes = append(codes, code) },
	})
	if err != nil {
		t.Fatal(err)
	}
	prog := p.Parse(argv("choock"))
	if prog.Error == nil || prog.Error.Kind != UnknownCommand {
		t.Fatalf("Error = %v, want %s", prog.Error, UnknownCommand)
	}
	if !strings.Contains(stderr.String(), `ERROR: Unknown command "choock"`) {
		t.Errorf("stderr = %q, want the error message", stderr.String())
	}
	if diff := cmp.Diff([]int{1}, codes); diff != "" {
		t.Errorf("exit codes mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultHelpPolicy(t *testing.T) {
	var stdout bytes.Buffer
	var codes []int
	p, err := New(otterSchema(), Config{
		Stdout: &stdout,
		Exit:   func(code int) { codes = append(codes, code) },
	})
	if err != nil {
		t.Fatal(err)
	}
	prog := p.Parse(argv("help"))
	if prog.HelpContent != "" {
		t.Errorf("HelpContent = %q, want empty when help is printed", prog.HelpContent)
	}
	if !strings.Contains(stdout.String(), "Usage: otter") {
		t.Errorf("stdout = %q, want help text", stdout.String())
	}
	if diff := cmp.Diff([]int{0}, codes); diff != "" {
		t.Errorf("exit codes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLogf(t *testing.T) {
	var lines []string
	p, err := New(otterSchema(), Config{
		ErrorHandler: func(ErrorKind, string) {},
		Logf: func(format string, args ...any) {
			lines = append(lines, format)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	p.Parse(argv("check", "-n"))
	if len(lines) == 0 {
		t.Errorf("Logf was not called")
	}
}

func TestProgramAccessors(t *testing.T) {
	prog := &Program{Options: map[string]any{
		"flag":  true,
		"name":  "me",
		"count": 3,
		"ratio": 0.5,
		"list":  []any{"a", 2},
	}}
	if !prog.Has("flag") || prog.Has("missing") {
		t.Errorf("Has() wrong")
	}
	if !prog.Bool("flag") || !prog.Bool("name") || prog.Bool("missing") {
		t.Errorf("Bool() wrong")
	}
	if got := prog.String("list"); got != "a,2" {
		t.Errorf("String(list) = %q, want %q", got, "a,2")
	}
	if got := prog.String("ratio"); got != "0.5" {
		t.Errorf("String(ratio) = %q, want %q", got, "0.5")
	}
	if got := prog.String("flag"); got != "" {
		t.Errorf("String(flag) = %q, want empty", got)
	}
	if n, ok := prog.Int("count"); !ok || n != 3 {
		t.Errorf("Int(count) = %d, %v", n, ok)
	}
	if _, ok := prog.Int("name"); ok {
		t.Errorf("Int(name) ok = true, want false")
	}
	if diff := cmp.Diff([]string{"me"}, prog.Strings("name")); diff != "" {
		t.Errorf("Strings(name) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "2"}, prog.Strings("list")); diff != "" {
		t.Errorf("Strings(list) mismatch (-want +got):\n%s", diff)
	}
	if prog.Strings("flag") != nil {
		t.Errorf("Strings(flag) = %v, want nil", prog.Strings("flag"))
	}
}

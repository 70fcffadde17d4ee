// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clop

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ErrorKind classifies a parse error.
type ErrorKind string

const (
	// UnknownCommand is reported when the first token matches no command and
	// no default command applies.
	UnknownCommand ErrorKind = "Unknown command"
	// UnknownOption is reported for a token that appears before any option
	// has been opened and is not itself an option.
	UnknownOption ErrorKind = "Unknown option"
	// IllegalValue is reported when a value is not one of the option's
	// declared Values.
	IllegalValue ErrorKind = "Illegal value"
)

// ErrorRecord is a parse error attached to a Program.
type ErrorRecord struct {
	Kind    ErrorKind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
	// Suggestion is the closest known command name for an UnknownCommand
	// error, if any is close enough to be a likely typo.
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

func (e *ErrorRecord) Error() string {
	return e.Message
}

// Sentinel errors wrapped by SchemaError.
var (
	ErrEmptyAliases     = errors.New("option has no aliases")
	ErrDuplicateAlias   = errors.New("redundant option alias")
	ErrMultipleDefaults = errors.New("more than one default command")
	ErrInvalidVersion   = errors.New("invalid schema version")
)

// SchemaError is returned by New when the schema is inconsistent.
type SchemaError struct {
	Subject string // The alias, command or version at fault
	Err     error  // One of the Err* sentinels
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("clop: %v: %s", e.Err, e.Subject)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives parse errors in place of the default policy of
// printing the message and exiting. Parsing continues after it returns.
type ErrorHandler func(kind ErrorKind, msg string)

func (h ErrorHandler) handleError(kind ErrorKind, msg string) {
	h(kind, msg)
}

// errorSink decides what happens when the engine produces an error.
type errorSink interface {
	handleError(kind ErrorKind, msg string)
}

// exitSink prints the message and terminates the process.
type exitSink struct {
	w    io.Writer
	exit func(code int)
}

func (s exitSink) handleError(_ ErrorKind, msg string) {
	fmt.Fprintln(s.w, color.RedString("ERROR: %s", msg))
	s.exit(1)
}

func produceError(sink errorSink, kind ErrorKind, msg string) *ErrorRecord {
	sink.handleError(kind, msg)
	return &ErrorRecord{Kind: kind, Message: msg}
}

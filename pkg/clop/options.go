// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clop

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// negationPrefixes mark a negated enumerated value. They are normalized to
// "!" in the reported value.
var negationPrefixes = []string{"no-", "~", "!"}

// optionScanner partitions the tokens after the command into option spans.
type optionScanner struct {
	lookup func(alias string) (optionRef, bool)
	sink   errorSink
	logf   func(format string, args ...any)
}

// asOption reports whether tok is an option marker: dashes followed by a
// known alias.
func (s *optionScanner) asOption(tok string) (optionRef, bool) {
	tok = strings.TrimSpace(tok)
	if !strings.HasPrefix(tok, "-") {
		return optionRef{}, false
	}
	return s.lookup(scrubOption(strings.TrimLeft(tok, "-")))
}

// scan parses tokens into a map of canonical option name to value.
//
// Tokens that are not option markers are values of the currently open
// option, even when they start with a dash. Before any option is open such
// tokens are reported as UnknownOption and dropped. An IllegalValue error
// aborts the scan and discards the options collected so far.
func (s *optionScanner) scan(tokens []string) (map[string]any, *ErrorRecord) {
	opts := make(map[string]any)
	var (
		first   *ErrorRecord
		current *optionRef
		pending []string
	)
	for _, tok := range tokens {
		if next, ok := s.asOption(tok); ok {
			if current != nil {
				if rec := s.commit(opts, *current, pending); rec != nil {
					return nil, firstError(first, rec)
				}
			}
			current = &next
			pending = nil
			continue
		}
		if current == nil {
			rec := produceError(s.sink, UnknownOption, fmt.Sprintf("Unknown option \"%s\"", tok))
			first = firstError(first, rec)
			continue
		}
		pending = append(pending, tok)
	}
	if current != nil {
		if rec := s.commit(opts, *current, pending); rec != nil {
			return nil, firstError(first, rec)
		}
	}
	return opts, first
}

// commit stores the value of a closed option. No tokens make a flag.
func (s *optionScanner) commit(opts map[string]any, opt optionRef, tokens []string) *ErrorRecord {
	if len(tokens) == 0 {
		opts[opt.name] = true
		s.trace("option %q = true", opt.name)
		return nil
	}
	elems := make([]any, 0, len(tokens))
	for _, tok := range tokens {
		for _, part := range splitValue(tok) {
			v, rec := s.element(opt, part)
			if rec != nil {
				return rec
			}
			elems = append(elems, v)
		}
	}
	if len(elems) == 1 {
		opts[opt.name] = elems[0]
	} else {
		opts[opt.name] = elems
	}
	s.trace("option %q = %v", opt.name, opts[opt.name])
	return nil
}

func (s *optionScanner) element(opt optionRef, raw string) (any, *ErrorRecord) {
	if len(opt.values) == 0 {
		return coerceNumber(raw), nil
	}
	value := strings.TrimSpace(raw)
	bare, negated := stripNegation(value)
	fold := cases.Fold()
	bare = fold.String(bare)
	for _, allowed := range opt.values {
		if fold.String(allowed) != bare {
			continue
		}
		if negated {
			return "!" + allowed, nil
		}
		return allowed, nil
	}
	msg := fmt.Sprintf("Value \"%s\" not valid for option \"%s.\" Allowed values are %s",
		value, opt.name, strings.Join(opt.values, ","))
	return nil, produceError(s.sink, IllegalValue, msg)
}

func (s *optionScanner) trace(format string, args ...any) {
	if s.logf != nil {
		s.logf(format, args...)
	}
}

// splitValue splits a value token into list elements. A token containing a
// space was a quoted argument and stays whole; anything else is split on
// commas with empty segments dropped.
func splitValue(tok string) []string {
	if strings.Contains(tok, " ") {
		return []string{tok}
	}
	var out []string
	for _, part := range strings.Split(tok, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func stripNegation(v string) (string, bool) {
	for _, prefix := range negationPrefixes {
		if rest, ok := strings.CutPrefix(v, prefix); ok {
			return rest, true
		}
	}
	return v, false
}

// coerceNumber returns s as an int when the whole element reads as a finite
// number, keeping only its leading integer part: "1.5" is 1 and "1e3" is 1.
// Anything else, including integers that overflow int, is returned unchanged.
func coerceNumber(s string) any {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return s
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return s
	}
	return n
}

func firstError(first, next *ErrorRecord) *ErrorRecord {
	if first != nil {
		return first
	}
	return next
}

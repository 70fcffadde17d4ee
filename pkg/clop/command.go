// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clop

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance at which an unknown command
// is still considered a typo of a known one.
const maxSuggestDistance = 2

// selectCommand resolves the first token of the command line. It returns the
// declared command name and how many tokens the command consumed.
//
// An empty token, or one that starts with a dash, selects the default
// command without consuming anything so the token is left for option
// parsing. Otherwise the token must match a command after normalization; the
// first declared match wins.
func selectCommand(cmds []commandRef, token string, sink errorSink) (string, int, *ErrorRecord) {
	skip := 1
	var found *commandRef
	if token == "" || token[0] == '-' {
		skip = 0
		for i := range cmds {
			if cmds[i].isDefault {
				found = &cmds[i]
				break
			}
		}
	} else {
		want := normalizeCommand(token)
		for i := range cmds {
			if cmds[i].normalized == want {
				found = &cmds[i]
				break
			}
		}
	}
	if found != nil {
		return found.name, skip, nil
	}

	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.name
	}
	msg := fmt.Sprintf("Unknown command \"%s\"\nPossible commands: %s", token, strings.Join(names, ", "))
	rec := produceError(sink, UnknownCommand, msg)
	rec.Suggestion = suggestCommand(cmds, token)
	return "", skip, rec
}

// suggestCommand returns the command closest to token, or "" when none is
// within maxSuggestDistance.
func suggestCommand(cmds []commandRef, token string) string {
	if token == "" || token[0] == '-' {
		return ""
	}
	want := normalizeCommand(token)
	best, bestDist := "", maxSuggestDistance+1
	for _, cmd := range cmds {
		if d := levenshtein.ComputeDistance(want, cmd.normalized); d < bestDist {
			best, bestDist = cmd.name, d
		}
	}
	return best
}

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemafile loads clop schemas from TOML, YAML or JSON files.
//
// A schema file mirrors clop.Schema:
//
//	usage = "Usage: otter <command> [options]\n"
//	version = "1.0.0"
//
//	[[commands]]
//	command = "check"
//	desc = "Check that issues and gecks match."
//	default = true
//
//	[[options]]
//	aliases = ["instance", "i"]
//	args = "<instanceName>"
//	values = ["mf", "DASPerf", "mdwe"]
package schemafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/clop/pkg/clop"
	"gopkg.in/yaml.v3"
)

// Names are the file names Find looks for, in order of preference.
var Names = []string{"clop.toml", "clop.yaml", "clop.yml"}

// Load reads and decodes the schema file at path.
func Load(path string) (clop.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return clop.Schema{}, err
	}
	s, err := Decode(data, DetectFormat(path, data))
	if err != nil {
		return clop.Schema{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// Decode decodes a schema in the given format. Unknown keys are rejected.
func Decode(data []byte, format Format) (clop.Schema, error) {
	var s clop.Schema
	switch format {
	case TOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return clop.Schema{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return clop.Schema{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return clop.Schema{}, err
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return clop.Schema{}, err
		}
	default:
		return clop.Schema{}, fmt.Errorf("unrecognized schema format")
	}
	for i := range s.Options {
		s.Options[i].Default = normalizeValue(s.Options[i].Default)
	}
	return s, nil
}

// normalizeValue converts the integer types produced by the decoders to int
// so a default reads the same as a parsed value.
func normalizeValue(v any) any {
	switch v := v.(type) {
	case int64:
		if v >= math.MinInt && v <= math.MaxInt {
			return int(v)
		}
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int(v)
		}
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalizeValue(e)
		}
		return out
	}
	return v
}

// Find looks for a schema file in startDir and its parents and returns the
// first one found. It returns os.ErrNotExist if there is none.
func Find(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range Names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			} else if !os.IsNotExist(err) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

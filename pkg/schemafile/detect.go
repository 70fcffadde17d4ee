// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schemafile

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Format int

const (
	Unknown Format = iota
	TOML
	YAML
	JSON
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	}
	return "unknown"
}

// DetectFormat picks the format from the file extension, falling back to
// the content when the extension is not recognized.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML
	case ".yaml", ".yml":
		return YAML
	case ".json":
		return JSON
	}
	return sniff(data)
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Unknown
	}
	if trimmed[0] == '{' {
		return JSON
	}
	var probe map[string]any
	if _, err := toml.Decode(string(trimmed), &probe); err == nil {
		return TOML
	}
	return YAML
}

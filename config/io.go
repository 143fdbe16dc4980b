// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Open returns the defaults overridden by the given config file and
// its includes, and validates the result.
func Open(file string) (*Config, error) {
	cfg := Defaults()
	if err := openWithIncludes(cfg, file, map[string]bool{}); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// openWithIncludes reads the includes of file in order, each with their
// own includes, then reads file itself so that it overrides them.
func openWithIncludes(cfg *Config, file string, stack map[string]bool) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	if stack[abs] {
		return fmt.Errorf("config: include cycle at %q", file)
	}
	stack[abs] = true
	defer delete(stack, abs)

	var inc Config
	if err := openFile(&inc, file); err != nil {
		return err
	}
	for _, f := range inc.Includes {
		if !filepath.IsAbs(f) {
			f = filepath.Join(filepath.Dir(file), f)
		}
		if err := openWithIncludes(cfg, f, stack); err != nil {
			return err
		}
	}
	return openFile(cfg, file)
}

// openFile decodes file into cfg, with the format given by the
// extension: .toml, or .yaml and .yml. Only settings present in the
// file are changed.
func openFile(cfg *Config, file string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("config: unknown format %q for %s", ext, file)
	}
	if err != nil {
		return fmt.Errorf("config: %s: %w", file, err)
	}
	return nil
}

// Save writes cfg to file, as TOML or YAML by extension.
func Save(cfg *Config, file string) error {
	var b []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".toml":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		err = enc.Encode(cfg)
		b = buf.Bytes()
	case ".yaml", ".yml":
		b, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("config: unknown format %q for %s", ext, file)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(file, b, 0o644)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dotenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"dario.cat/mergo"
)

const (
	// ModeVar is the environment variable consulted for the deployment mode.
	ModeVar = "APP_ENV"

	// DefaultMode is the deployment mode assumed when ModeVar is unset.
	DefaultMode = "development"
)

// Mode resolves the current deployment mode from the process environment.
func Mode() string {
	if mode := os.Getenv(ModeVar); mode != "" {
		return mode
	}

	return DefaultMode
}

// Candidates returns the layered candidate file names for the given mode,
// in ascending precedence order.
func Candidates(mode string) []string {
	return []string{
		".env",
		".env." + mode,
		".env.local",
		".env." + mode + ".local",
	}
}

// Load reads the file-derived portion of the environment.
//
// When explicitPath is non-empty and the file exists, only that file is
// read and the layered default set is ignored. A missing explicit path
// falls back to the layered defaults rather than failing. Each existing
// candidate is parsed and merged into the accumulating mapping, later
// layers overwriting earlier keys. Missing candidate files are skipped.
func Load(explicitPath string) (map[string]string, error) {
	if explicitPath != "" {
		vars, err := readFile(explicitPath)
		if err == nil {
			return vars, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	merged := make(map[string]string)
	for _, name := range Candidates(Mode()) {
		vars, err := readFile(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}

		if err := mergo.Merge(&merged, vars, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging layer %q: %w", name, err)
		}
	}

	return merged, nil
}

func readFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading env file: %w", err)
	}
	defer f.Close()

	vars, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing env file %q: %w", path, err)
	}

	return vars, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dotenv

import (
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
)

// Merge overlays the live process environment on top of the file-derived
// mapping. Process environment entries always win on key collision,
// regardless of which file layer supplied the value. The input mapping is
// not modified.
func Merge(fileVars map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(fileVars))

	if err := mergo.Merge(&merged, fileVars); err != nil {
		return nil, fmt.Errorf("error merging file variables: %w", err)
	}
	if err := mergo.Merge(&merged, Environ(), mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging process environment: %w", err)
	}

	return merged, nil
}

// Environ returns the live process environment as a flat mapping.
func Environ() map[string]string {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if key, value, found := strings.Cut(kv, "="); found {
			env[key] = value
		}
	}

	return env
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dotenv

import (
	"bufio"
	"io"
	"strings"
)

// Parse reads dotenv-formatted text from r into a flat key/value mapping.
//
// One assignment per line; the first '=' separates key from value and both
// sides are trimmed of surrounding whitespace. Blank lines, lines whose
// first non-whitespace character is '#', and lines without any '=' are
// silently skipped. A value wrapped in a single matching pair of double or
// single quotes loses exactly one layer of quoting.
//
// Returns an error only when reading from r fails.
func Parse(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		vars[key] = unquote(strings.TrimSpace(value))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return vars, nil
}

// unquote strips one layer of matching double or single quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}

	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}

	return value
}

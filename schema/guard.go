// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// PublicPrefix marks variables that are safe to expose to browser-delivered
// code. The client guard accepts only field names carrying it.
const PublicPrefix = "NEXT_PUBLIC_"

// Client builds a schema for browser-exposed variables. Every declared
// field name must start with [PublicPrefix]; the first violation fails
// construction immediately, naming the offending field. The check is a
// static naming contract applied at build time, not at env-load time.
func Client(fields Fields) (*MapSchema, error) {
	names := maps.Keys(fields)
	slices.Sort(names)
	for _, name := range names {
		if !strings.HasPrefix(name, PublicPrefix) {
			return nil, fmt.Errorf("%w: %q must start with %q", ErrNotClientSafe, name, PublicPrefix)
		}
	}

	return &MapSchema{
		fields:   fields,
		validate: newValidate(),
	}, nil
}

// MustClient is like [Client] but panics on a naming violation. Intended
// for package-level schema declarations where construction cannot fail at
// a recoverable point.
func MustClient(fields Fields) *MapSchema {
	s, err := Client(fields)
	if err != nil {
		panic(err)
	}

	return s
}

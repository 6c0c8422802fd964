// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"fmt"
	"strings"
)

// Schema is the capability contract every validation provider implements:
// given the merged environment mapping, produce a typed snapshot or fail
// with a structured issue list (an *Error).
type Schema[T any] interface {
	Parse(vars map[string]string) (T, error)
}

// Cloner lets snapshot types control how read-only copies are produced.
// Types with reference semantics (maps, slices) should implement it so
// cached state cannot be mutated through returned values.
type Cloner[T any] interface {
	Clone() T
}

// Kind classifies a validation issue.
type Kind string

const (
	// KindMissing marks a required variable that is absent or empty.
	KindMissing Kind = "missing"
	// KindInvalidType marks a value that cannot be converted to the
	// declared type.
	KindInvalidType Kind = "invalid_type"
	// KindTooShort marks a value failing a minimum-length constraint.
	KindTooShort Kind = "too_short"
	// KindInvalidFormat marks a value failing a format rule such as url.
	KindInvalidFormat Kind = "invalid_format"
	// KindInvalidEnum marks a value outside the declared member set.
	KindInvalidEnum Kind = "invalid_enum"
	// KindOther marks failures that fit no more specific kind.
	KindOther Kind = "other"
)

// Issue is a single field-level validation failure.
type Issue struct {
	// Path is the environment variable name; struct fields without an
	// env tag fall back to the dotted Go field path.
	Path string
	// Message is a human-readable description of the failure.
	Message string
	// Kind classifies the failure.
	Kind Kind
}

// Error is an ordered set of field-level issues produced by a failed Parse.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	switch len(e.Issues) {
	case 0:
		return "environment validation failed"
	case 1:
		return fmt.Sprintf("environment validation failed: %s: %s", e.Issues[0].Path, e.Issues[0].Message)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "environment validation failed with %d issues:", len(e.Issues))
	for _, issue := range e.Issues {
		fmt.Fprintf(&sb, "\n  - %s: %s", issue.Path, issue.Message)
	}

	return sb.String()
}

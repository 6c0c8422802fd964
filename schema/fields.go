// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/maps"
)

// Type enumerates the value types a declared field can coerce to.
type Type string

const (
	String   Type = "string"
	Int      Type = "int"
	Float    Type = "float"
	Bool     Type = "bool"
	Duration Type = "duration"
	URL      Type = "url"
)

// Field declares a single environment variable: its target type, whether it
// may be absent, an optional default, an optional enum member set, and any
// extra go-playground/validator constraints (e.g. "min=32", "email").
type Field struct {
	Type     Type
	Optional bool
	Default  string
	Enum     []string
	Rules    string
}

// Fields maps variable names to their declarations.
type Fields map[string]Field

// Values is the typed snapshot produced by a field-map schema.
type Values map[string]any

// Clone returns a shallow copy so cached snapshots stay immutable.
func (v Values) Clone() Values {
	return maps.Clone(v)
}

// String returns the value of name as a string, or "" when absent or of a
// different type.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns the value of name as an int, or 0 when absent or of a
// different type.
func (v Values) Int(name string) int {
	i, _ := v[name].(int)
	return i
}

// Bool returns the value of name as a bool, or false when absent or of a
// different type.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Duration returns the value of name as a time.Duration, or 0 when absent
// or of a different type.
func (v Values) Duration(name string) time.Duration {
	d, _ := v[name].(time.Duration)
	return d
}

// MapSchema validates a flat mapping against declared Fields and produces
// typed Values. Construct with [Server] or [Client].
type MapSchema struct {
	fields   Fields
	validate *validator.Validate
}

// Server builds a schema for server-only variables. Any field set is
// accepted; no naming constraint applies.
func Server(fields Fields) *MapSchema {
	return &MapSchema{
		fields:   fields,
		validate: newValidate(),
	}
}

// Parse validates vars against the declared fields. Issues are reported in
// lexical field order so output is deterministic. An absent or empty
// variable takes the field's default when one is declared; otherwise it is
// an error unless the field is optional.
func (s *MapSchema) Parse(vars map[string]string) (Values, error) {
	out := make(Values, len(s.fields))
	var issues []Issue

	names := maps.Keys(s.fields)
	slices.Sort(names)
	for _, name := range names {
		field := s.fields[name]

		raw, ok := vars[name]
		if (!ok || raw == "") && field.Default != "" {
			raw, ok = field.Default, true
		}
		if !ok || raw == "" {
			if field.Optional {
				continue
			}
			issues = append(issues, Issue{
				Path:    name,
				Message: "required variable is not set",
				Kind:    KindMissing,
			})
			continue
		}

		value, issue := s.coerce(name, field, raw)
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}

		out[name] = value
	}

	if len(issues) > 0 {
		return nil, &Error{Issues: issues}
	}

	return out, nil
}

// coerce converts raw to the field's declared type and applies enum and
// rule checks. Returns the typed value or a single issue.
func (s *MapSchema) coerce(name string, field Field, raw string) (any, *Issue) {
	var value any

	switch field.Type {
	case String, "":
		value = raw
	case Int:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &Issue{Path: name, Message: fmt.Sprintf("expected an integer, got %q", raw), Kind: KindInvalidType}
		}
		value = i
	case Float:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &Issue{Path: name, Message: fmt.Sprintf("expected a number, got %q", raw), Kind: KindInvalidType}
		}
		value = f
	case Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &Issue{Path: name, Message: fmt.Sprintf("expected a boolean, got %q", raw), Kind: KindInvalidType}
		}
		value = b
	case Duration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, &Issue{Path: name, Message: fmt.Sprintf("expected a duration such as \"30s\", got %q", raw), Kind: KindInvalidType}
		}
		value = d
	case URL:
		if err := s.validate.Var(raw, "url"); err != nil {
			return nil, &Issue{Path: name, Message: fmt.Sprintf("expected a valid URL, got %q", raw), Kind: KindInvalidFormat}
		}
		value = raw
	default:
		return nil, &Issue{Path: name, Message: fmt.Sprintf("declared with unknown type %q", field.Type), Kind: KindOther}
	}

	if len(field.Enum) > 0 && !slices.Contains(field.Enum, raw) {
		return nil, &Issue{
			Path:    name,
			Message: fmt.Sprintf("must be one of [%s], got %q", strings.Join(field.Enum, ", "), raw),
			Kind:    KindInvalidEnum,
		}
	}

	if field.Rules != "" {
		if err := s.validate.Var(raw, field.Rules); err != nil {
			return nil, ruleIssue(name, field.Rules, err)
		}
	}

	return value, nil
}

// ruleIssue converts a validator.Var failure into an Issue, classifying
// length constraints separately so diagnostics can surface them as such.
func ruleIssue(name, rules string, err error) *Issue {
	kind := KindInvalidFormat
	message := fmt.Sprintf("failed %q validation", rules)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "min", "gte", "len":
			kind = KindTooShort
		}
		if fe.Param() != "" {
			message = fmt.Sprintf("failed %q validation", fe.Tag()+"="+fe.Param())
		} else {
			message = fmt.Sprintf("failed %q validation", fe.Tag())
		}
	}

	return &Issue{Path: name, Message: message, Kind: kind}
}

func newValidate() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

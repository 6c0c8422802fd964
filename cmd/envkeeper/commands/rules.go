package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-env-keeper/schema"
)

// ErrEmptyRuleName indicates a --require spec without a variable name.
var ErrEmptyRuleName = errors.New("rule spec has no variable name")

// ParseRules converts NAME[:TYPE[:RULES]] specs into schema fields.
//
// A '?' suffix on NAME marks the field optional. TYPE is one of string,
// int, float, bool, duration, url and defaults to string; a token that is
// not a known type is treated as go-playground/validator rules instead, so
// both "API_SECRET:string:min=32" and "API_SECRET:min=32" work.
func ParseRules(specs []string) (schema.Fields, error) {
	fields := make(schema.Fields, len(specs))

	for _, spec := range specs {
		name, rest, _ := strings.Cut(spec, ":")
		name = strings.TrimSpace(name)

		optional := strings.HasSuffix(name, "?")
		name = strings.TrimSuffix(name, "?")
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptyRuleName, spec)
		}

		field := schema.Field{Optional: optional}
		if rest != "" {
			typeToken, rules, _ := strings.Cut(rest, ":")
			if ft, known := fieldType(typeToken); known {
				field.Type = ft
				field.Rules = rules
			} else {
				field.Rules = rest
			}
		}

		fields[name] = field
	}

	return fields, nil
}

func fieldType(token string) (schema.Type, bool) {
	switch t := schema.Type(token); t {
	case schema.String, schema.Int, schema.Float, schema.Bool, schema.Duration, schema.URL:
		return t, true
	}

	return "", false
}

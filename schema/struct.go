// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// StructSchema maps the merged environment onto a caller-declared struct
// via `env` and `envPrefix` tags (caarlos0/env), then applies any
// `validate` tag constraints (go-playground/validator). Both stages report
// failures as field-level Issues.
type StructSchema[T any] struct {
	validate *validator.Validate
}

// Struct builds a schema producing snapshots of type T.
//
//	type Config struct {
//		DatabaseURL string `env:"DATABASE_URL" validate:"required,url"`
//		APISecret   string `env:"API_SECRET" validate:"required,min=32"`
//		Port        int    `env:"PORT" envDefault:"3000"`
//	}
//
//	snapshot, err := schema.Struct[Config]().Parse(merged)
func Struct[T any]() *StructSchema[T] {
	return &StructSchema[T]{validate: newValidate()}
}

// Parse populates a T from vars and validates it. Lookups use only the
// supplied mapping, never the process environment directly, so the caller
// controls precedence.
func (s *StructSchema[T]) Parse(vars map[string]string) (T, error) {
	var cfg T

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return cfg, &Error{Issues: issuesFromEnv(err)}
	}

	if err := s.validate.Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return cfg, &Error{Issues: issuesFromValidator(verrs, reflect.TypeOf(cfg))}
		}
		return cfg, err
	}

	return cfg, nil
}

// issuesFromEnv converts caarlos0/env failures into Issues. The library
// aggregates per-field errors; each is classified as missing or
// wrong-typed where the concrete error type allows.
func issuesFromEnv(err error) []Issue {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return []Issue{{Message: err.Error(), Kind: KindOther}}
	}

	issues := make([]Issue, 0, len(agg.Errors))
	for _, e := range agg.Errors {
		var (
			notSet   env.VarIsNotSetError
			parseErr env.ParseError
		)
		switch {
		case errors.As(e, &notSet):
			issues = append(issues, Issue{
				Path:    notSet.Key,
				Message: "required variable is not set",
				Kind:    KindMissing,
			})
		case errors.As(e, &parseErr):
			issues = append(issues, Issue{
				Path:    parseErr.Name,
				Message: parseErr.Err.Error(),
				Kind:    KindInvalidType,
			})
		default:
			issues = append(issues, Issue{Message: e.Error(), Kind: KindOther})
		}
	}

	return issues
}

// issuesFromValidator converts validator failures into Issues. Paths carry
// the environment variable name declared by the field's env tag (with any
// envPrefix chain applied), so diagnostics and shell hints name a variable
// the user can actually export.
func issuesFromValidator(verrs validator.ValidationErrors, root reflect.Type) []Issue {
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		path := fe.Namespace()
		if _, rest, found := strings.Cut(path, "."); found {
			path = rest
		}
		path = envVarPath(root, strings.Split(path, "."))

		kind := KindInvalidFormat
		switch fe.Tag() {
		case "required":
			kind = KindMissing
		case "min", "gte", "len":
			kind = KindTooShort
		}

		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}

		issues = append(issues, Issue{
			Path:    path,
			Message: "failed " + strconv.Quote(rule) + " validation",
			Kind:    kind,
		})
	}

	return issues
}

// envVarPath maps a dotted struct field path to the variable name declared
// by env and envPrefix tags. Falls back to the dotted Go path when a
// segment cannot be resolved or the leaf carries no env tag.
func envVarPath(root reflect.Type, segments []string) string {
	fallback := strings.Join(segments, ".")

	t := root
	prefix := ""
	for i, segment := range segments {
		for t != nil && t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == nil || t.Kind() != reflect.Struct {
			return fallback
		}

		field, found := t.FieldByName(segment)
		if !found {
			return fallback
		}

		if i < len(segments)-1 {
			prefix += field.Tag.Get("envPrefix")
			t = field.Type
			continue
		}

		// tag options such as ",required" are not part of the name
		name, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if name == "" {
			return fallback
		}
		return prefix + name
	}

	return fallback
}

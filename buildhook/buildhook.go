// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package buildhook decorates a bundler build configuration with a marker
// flag signalling that environment validation is wired in. It is a
// pass-through decorator, independent of the validation pipeline.
package buildhook

import "maps"

const (
	// MarkerKey is the environment flag injected into the build config.
	MarkerKey = "ENV_KEEPER_VALIDATED"
	// MarkerValue is the value assigned to MarkerKey.
	MarkerValue = "1"
)

// Config is the slice of a bundler configuration this hook cares about: the
// environment handed to the build and an optional customization callback
// the build runs before producing output.
type Config struct {
	Env       map[string]string
	Customize func(*Config)
}

// Wrap returns a copy of cfg with the validation marker injected into its
// environment. Any pre-existing Customize callback is preserved: the
// returned config's callback re-injects the marker and then delegates to
// the original, so its behavior and output are unchanged.
func Wrap(cfg Config) Config {
	wrapped := cfg

	wrapped.Env = maps.Clone(cfg.Env)
	if wrapped.Env == nil {
		wrapped.Env = make(map[string]string, 1)
	}
	wrapped.Env[MarkerKey] = MarkerValue

	prev := cfg.Customize
	wrapped.Customize = func(c *Config) {
		if c.Env == nil {
			c.Env = make(map[string]string, 1)
		}
		c.Env[MarkerKey] = MarkerValue
		if prev != nil {
			prev(c)
		}
	}

	return wrapped
}

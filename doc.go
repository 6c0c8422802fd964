// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package envkeeper validates process environment variables against a
// declared schema at startup and caches the typed result for the process
// lifetime.
//
// Values are assembled from layered dotenv files and the live process
// environment (see package dotenv for the precedence order), validated by
// a schema (see package schema), and stored in a [Runtime]. Application
// code reads the immutable snapshot through [Runtime.Read] instead of raw
// environment lookups.
//
//	keeper := envkeeper.New[schema.Values](nil)
//	cfg, err := keeper.Initialize(schema.Server(schema.Fields{
//		"DATABASE_URL": {Type: schema.URL},
//		"API_SECRET":   {Rules: "min=32"},
//	}), envkeeper.Options{})
//
// Validation failures print a per-field report and end the process with a
// failure exit code; a server cannot safely start with an invalid
// configuration. Supplying Options.OnError takes over that disposition,
// and Options.AllowMissingInDevelopment downgrades failures to a warning
// exit in development mode.
package envkeeper

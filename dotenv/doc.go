// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dotenv reads layered dotenv files and merges them with the live
// process environment into a single flat mapping.
//
// Sources are applied in the following priority order (later sources
// override earlier ones on key collision):
//  1. .env
//  2. .env.<mode>
//  3. .env.local
//  4. .env.<mode>.local
//  5. Process environment variables
//
// All files are optional and resolved against the working directory. The
// deployment mode is read from the APP_ENV environment variable and
// defaults to "development". When an explicit file path is supplied and
// exists, it replaces the layered set entirely; the process environment
// still wins on top of it.
package dotenv

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package schema defines the validation contract applied to the merged
// environment mapping and ships two providers implementing it.
//
// Core concepts:
//   - Schema: generic interface turning a flat string mapping into a typed
//     snapshot or a structured list of field-level issues.
//   - Issue / Error: the ordered field-level failure set carried by every
//     validation error.
//
// Providers:
//  1. Field-map schemas built with [Server] or [Client] from declared
//     [Fields]; value coercion and format rules are delegated to
//     go-playground/validator.
//  2. Struct schemas built with [Struct], mapping variables onto a
//     caller-declared struct via caarlos0/env tags and applying `validate`
//     tag rules afterwards.
//
// [Client] additionally enforces, at construction time, that every field
// name carries [PublicPrefix] so server-only secrets cannot end up under a
// browser-readable name.
package schema

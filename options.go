// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package envkeeper

import "github.com/MKhiriev/go-env-keeper/schema"

// Options control a single initialization run.
type Options struct {
	// ConfigPath optionally points at one explicit dotenv file. When set
	// and the file exists, the layered default set is ignored entirely; a
	// missing file falls back to the layered defaults.
	ConfigPath string

	// AllowMissingInDevelopment downgrades a validation failure to a
	// warning and a success exit code, but only when the resolved
	// deployment mode is exactly "development".
	AllowMissingInDevelopment bool

	// OnError, when set, receives the validation issues instead of the
	// built-in reporter. Initialize still returns the original error
	// afterwards, so error-propagation callers observe the failure.
	OnError func(*schema.Error)

	// Quiet suppresses the success log entry emitted after a clean
	// validation run. Failure reporting is unaffected.
	Quiet bool
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package envkeeper

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/MKhiriev/go-env-keeper/dotenv"
	"github.com/MKhiriev/go-env-keeper/internal/logger"
	"github.com/MKhiriev/go-env-keeper/schema"
)

// Runtime owns the validated snapshot for the process lifetime. It is
// empty until the first successful Initialize; after that it holds exactly
// one snapshot and every Read returns a copy. Construct one per process,
// at startup, and hand it to the code that needs configuration.
type Runtime[T any] struct {
	mu          sync.RWMutex
	snapshot    T
	initialized bool
	testMode    bool
	configPath  string

	log  *logger.Logger
	exit func(int)
}

// New constructs an empty Runtime. A nil log discards runtime warnings.
func New[T any](log *logger.Logger) *Runtime[T] {
	if log == nil {
		log = logger.Nop()
	}

	return &Runtime[T]{
		log:  log,
		exit: os.Exit,
	}
}

// Initialize runs the load → merge → validate pipeline and stores the
// result as the process snapshot.
//
// A repeated call outside test mode never re-runs validation: it logs a
// warning and returns the first snapshot, together with
// [ErrAlreadyInitialized] when the supplied config path conflicts with the
// one used originally.
//
// On validation failure the issues go to opts.OnError when supplied,
// otherwise to the built-in reporter, which prints per-field guidance and
// ends the process. The original error is returned in either case.
func (r *Runtime[T]) Initialize(s schema.Schema[T], opts Options) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized && !r.testMode {
		r.log.Warn().
			Str("config_path", opts.ConfigPath).
			Msg("environment already initialized, returning the existing snapshot")

		if opts.ConfigPath != r.configPath {
			return r.copyLocked(), ErrAlreadyInitialized
		}
		return r.copyLocked(), nil
	}

	var zero T

	fileVars, err := dotenv.Load(opts.ConfigPath)
	if err != nil {
		return zero, fmt.Errorf("error loading env files: %w", err)
	}

	merged, err := dotenv.Merge(fileVars)
	if err != nil {
		return zero, fmt.Errorf("error merging environment: %w", err)
	}

	snapshot, err := s.Parse(merged)
	if err != nil {
		var verr *schema.Error
		if errors.As(err, &verr) {
			if opts.OnError != nil {
				opts.OnError(verr)
			} else {
				report(os.Stderr, r.exit, verr, opts.AllowMissingInDevelopment, dotenv.Mode())
			}
		}
		return zero, err
	}

	r.snapshot = snapshot
	r.initialized = true
	r.configPath = opts.ConfigPath

	if !opts.Quiet && dotenv.Mode() != "production" {
		r.log.Debug().Str("mode", dotenv.Mode()).Msg("environment validated")
	}

	return r.copyLocked(), nil
}

// Read returns a copy of the snapshot. Fails with [ErrNotInitialized] when
// no successful Initialize has happened yet.
func (r *Runtime[T]) Read() (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.initialized {
		var zero T
		return zero, ErrNotInitialized
	}

	return r.copyLocked(), nil
}

// InitializeAndRead composes Initialize and Read for callers that do not
// need to hold onto the schema or options separately.
func (r *Runtime[T]) InitializeAndRead(s schema.Schema[T], opts Options) (T, error) {
	if _, err := r.Initialize(s, opts); err != nil {
		var zero T
		return zero, err
	}

	return r.Read()
}

// EnableTestMode permits repeated Initialize and Reset calls so tests can
// exercise the pipeline more than once per process.
func (r *Runtime[T]) EnableTestMode() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.testMode = true
}

// Reset clears the snapshot. Honored only in test mode; outside it the
// call logs a warning and leaves the snapshot in place.
func (r *Runtime[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.testMode {
		r.log.Warn().Msg("Reset ignored outside test mode")
		return
	}

	var zero T
	r.snapshot = zero
	r.initialized = false
	r.configPath = ""
}

// copyLocked returns the snapshot by value, delegating to Clone when the
// type has reference semantics. Callers must hold at least a read lock.
func (r *Runtime[T]) copyLocked() T {
	if cloner, ok := any(r.snapshot).(schema.Cloner[T]); ok {
		return cloner.Clone()
	}

	return r.snapshot
}

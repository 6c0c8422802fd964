// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package envkeeper

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-env-keeper/dotenv"
	"github.com/MKhiriev/go-env-keeper/internal/logger"
	"github.com/MKhiriev/go-env-keeper/schema"
)

// fakeSchema records parse calls and returns a canned result.
type fakeSchema struct {
	result schema.Values
	err    error
	calls  int
	seen   map[string]string
}

func (f *fakeSchema) Parse(vars map[string]string) (schema.Values, error) {
	f.calls++
	f.seen = vars
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// newTestRuntime returns a Runtime in a fresh temp working directory with a
// captured exit func so the reporter cannot end the test process.
func newTestRuntime(t *testing.T) (*Runtime[schema.Values], *int) {
	t.Helper()
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { require.NoError(t, os.Chdir(oldWD)) })
	t.Setenv(dotenv.ModeVar, "")

	exitCode := -1
	r := New[schema.Values](nil)
	r.exit = func(code int) { exitCode = code }
	return r, &exitCode
}

func TestInitialize_Success(t *testing.T) {
	// Arrange
	r, _ := newTestRuntime(t)
	fake := &fakeSchema{result: schema.Values{"KEY": "value"}}

	// Act
	values, err := r.Initialize(fake, Options{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "value", values.String("KEY"))
	assert.Equal(t, 1, fake.calls)
}

func TestInitialize_PipesMergedMappingToSchema(t *testing.T) {
	// Arrange: file layer and a conflicting process variable
	r, _ := newTestRuntime(t)
	require.NoError(t, os.WriteFile(".env", []byte("FILE_KEY=from-file\nBOTH=from-file\n"), 0o600))
	t.Setenv("BOTH", "from-process")

	fake := &fakeSchema{result: schema.Values{}}

	// Act
	_, err := r.Initialize(fake, Options{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "from-file", fake.seen["FILE_KEY"])
	assert.Equal(t, "from-process", fake.seen["BOTH"])
}

func TestInitialize_ExplicitConfigPath(t *testing.T) {
	// Arrange
	r, _ := newTestRuntime(t)
	require.NoError(t, os.WriteFile(".env", []byte("KEY=layered\n"), 0o600))
	explicit := filepath.Join(".", "custom.env")
	require.NoError(t, os.WriteFile(explicit, []byte("KEY=explicit\n"), 0o600))

	fake := &fakeSchema{result: schema.Values{}}

	// Act
	_, err := r.Initialize(fake, Options{ConfigPath: explicit})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "explicit", fake.seen["KEY"])
}

func TestRead_BeforeInitialize(t *testing.T) {
	r, _ := newTestRuntime(t)

	_, err := r.Read()

	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestRead_ReturnsCopy(t *testing.T) {
	// Arrange
	r, _ := newTestRuntime(t)
	fake := &fakeSchema{result: schema.Values{"KEY": "value"}}
	_, err := r.Initialize(fake, Options{})
	require.NoError(t, err)

	// Act: mutate the returned copy
	first, err := r.Read()
	require.NoError(t, err)
	first["KEY"] = "mutated"
	first["INJECTED"] = "surprise"

	// Assert: cached state is unaffected
	second, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "value", second.String("KEY"))
	assert.NotContains(t, second, "INJECTED")
}

func TestInitialize_SecondCallReturnsFirstSnapshot(t *testing.T) {
	// Arrange
	r, _ := newTestRuntime(t)
	first := &fakeSchema{result: schema.Values{"KEY": "first"}}
	second := &fakeSchema{result: schema.Values{"KEY": "second"}}

	_, err := r.Initialize(first, Options{})
	require.NoError(t, err)

	// Act
	values, err := r.Initialize(second, Options{})

	// Assert: same snapshot, no re-validation
	require.NoError(t, err)
	assert.Equal(t, "first", values.String("KEY"))
	assert.Zero(t, second.calls)
}

func TestInitialize_ConflictingReinitReturnsSentinel(t *testing.T) {
	// Arrange
	r, _ := newTestRuntime(t)
	fake := &fakeSchema{result: schema.Values{"KEY": "first"}}
	_, err := r.Initialize(fake, Options{})
	require.NoError(t, err)

	// Act: a different config path signals the caller expects new content
	values, err := r.Initialize(fake, Options{ConfigPath: "other.env"})

	// Assert: first snapshot plus a loud error
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Equal(t, "first", values.String("KEY"))
	assert.Equal(t, 1, fake.calls)
}

func TestInitialize_TestModeAllowsReinit(t *testing.T) {
	// Arrange
	r, _ := newTestRuntime(t)
	r.EnableTestMode()
	first := &fakeSchema{result: schema.Values{"KEY": "first"}}
	second := &fakeSchema{result: schema.Values{"KEY": "second"}}

	_, err := r.Initialize(first, Options{})
	require.NoError(t, err)

	// Act
	values, err := r.Initialize(second, Options{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "second", values.String("KEY"))
	assert.Equal(t, 1, second.calls)
}

func TestReset_OnlyInTestMode(t *testing.T) {
	// Arrange
	r, _ := newTestRuntime(t)
	fake := &fakeSchema{result: schema.Values{"KEY": "value"}}
	_, err := r.Initialize(fake, Options{})
	require.NoError(t, err)

	// Act: outside test mode Reset is ignored
	r.Reset()
	_, err = r.Read()
	require.NoError(t, err)

	// Act: in test mode Reset clears the snapshot
	r.EnableTestMode()
	r.Reset()
	_, err = r.Read()

	// Assert
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestInitialize_OnErrorHandlerReceivesIssues(t *testing.T) {
	// Arrange
	r, exitCode := newTestRuntime(t)
	verr := &schema.Error{Issues: []schema.Issue{{Path: "DATABASE_URL", Message: "required variable is not set", Kind: schema.KindMissing}}}
	fake := &fakeSchema{err: verr}

	var handled *schema.Error

	// Act
	_, err := r.Initialize(fake, Options{OnError: func(e *schema.Error) { handled = e }})

	// Assert: handler consumed the issues, the original error propagated,
	// and the reporter never ran
	require.Same(t, verr, handled)
	var got *schema.Error
	require.ErrorAs(t, err, &got)
	assert.Same(t, verr, got)
	assert.Equal(t, -1, *exitCode)
}

func TestInitialize_ReporterExitsOne(t *testing.T) {
	// Arrange
	r, exitCode := newTestRuntime(t)
	fake := &fakeSchema{err: &schema.Error{Issues: []schema.Issue{{Path: "KEY", Message: "bad", Kind: schema.KindMissing}}}}

	// Act
	_, err := r.Initialize(fake, Options{})

	// Assert
	require.Error(t, err)
	assert.Equal(t, 1, *exitCode)
}

func TestInitialize_ReporterToleratesDevelopment(t *testing.T) {
	// Arrange: mode defaults to development
	r, exitCode := newTestRuntime(t)
	fake := &fakeSchema{err: &schema.Error{Issues: []schema.Issue{{Path: "KEY", Message: "bad", Kind: schema.KindMissing}}}}

	// Act
	_, err := r.Initialize(fake, Options{AllowMissingInDevelopment: true})

	// Assert
	require.Error(t, err)
	assert.Equal(t, 0, *exitCode)
}

func TestInitialize_ReporterFailsOutsideDevelopment(t *testing.T) {
	// Arrange
	r, exitCode := newTestRuntime(t)
	t.Setenv(dotenv.ModeVar, "production")
	fake := &fakeSchema{err: &schema.Error{Issues: []schema.Issue{{Path: "KEY", Message: "bad", Kind: schema.KindMissing}}}}

	// Act
	_, err := r.Initialize(fake, Options{AllowMissingInDevelopment: true})

	// Assert
	require.Error(t, err)
	assert.Equal(t, 1, *exitCode)
}

func TestInitialize_LogsSuccessEvent(t *testing.T) {
	// Arrange: logger with a captured sink
	r, _ := newTestRuntime(t)
	var buf bytes.Buffer
	r.log = &logger.Logger{Logger: zerolog.New(&buf)}
	fake := &fakeSchema{result: schema.Values{"KEY": "value"}}

	// Act
	_, err := r.Initialize(fake, Options{})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "environment validated")
}

func TestInitialize_QuietSuppressesSuccessEvent(t *testing.T) {
	// Arrange
	r, _ := newTestRuntime(t)
	var buf bytes.Buffer
	r.log = &logger.Logger{Logger: zerolog.New(&buf)}
	fake := &fakeSchema{result: schema.Values{"KEY": "value"}}

	// Act
	_, err := r.Initialize(fake, Options{Quiet: true})

	// Assert: validation still succeeds, the log stays empty
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestInitializeAndRead_Composes(t *testing.T) {
	// Arrange
	r, _ := newTestRuntime(t)
	fake := &fakeSchema{result: schema.Values{"KEY": "value"}}

	// Act
	values, err := r.InitializeAndRead(fake, Options{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "value", values.String("KEY"))
}

func TestInitializeAndRead_PropagatesFailure(t *testing.T) {
	r, _ := newTestRuntime(t)
	wantErr := errors.New("schema exploded")
	fake := &fakeSchema{err: wantErr}

	_, err := r.InitializeAndRead(fake, Options{})

	assert.ErrorIs(t, err, wantErr)
}

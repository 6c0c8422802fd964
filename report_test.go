// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package envkeeper

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-env-keeper/schema"
)

func runReport(verr *schema.Error, allowMissing bool, mode string) (string, int) {
	var buf bytes.Buffer
	exitCode := -1
	report(&buf, func(code int) { exitCode = code }, verr, allowMissing, mode)
	return buf.String(), exitCode
}

func TestReport_HeaderAndIssueOrder(t *testing.T) {
	// Arrange
	verr := &schema.Error{Issues: []schema.Issue{
		{Path: "DATABASE_URL", Message: "required variable is not set", Kind: schema.KindMissing},
		{Path: "API_SECRET", Message: `failed "min=32" validation`, Kind: schema.KindTooShort},
	}}

	// Act
	out, exitCode := runReport(verr, false, "production")

	// Assert: header first, then issues in their original order
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "Invalid environment variables:", lines[0])
	assert.Contains(t, lines[1], "DATABASE_URL")
	assert.Contains(t, lines[2], "API_SECRET")
	assert.Equal(t, 1, exitCode)
}

func TestReport_HintsOnlyForMissingAndWrongType(t *testing.T) {
	// Arrange
	verr := &schema.Error{Issues: []schema.Issue{
		{Path: "DATABASE_URL", Message: "required variable is not set", Kind: schema.KindMissing},
		{Path: "PORT", Message: `expected an integer, got "abc"`, Kind: schema.KindInvalidType},
		{Path: "API_SECRET", Message: `failed "min=32" validation`, Kind: schema.KindTooShort},
	}}

	// Act
	out, _ := runReport(verr, false, "production")

	// Assert
	assert.Contains(t, out, "export DATABASE_URL=<value>")
	assert.Contains(t, out, "export PORT=<value>")
	assert.NotContains(t, out, "export API_SECRET")
}

func TestReport_NoHintSectionWithoutEligibleIssues(t *testing.T) {
	verr := &schema.Error{Issues: []schema.Issue{
		{Path: "API_SECRET", Message: `failed "min=32" validation`, Kind: schema.KindTooShort},
	}}

	out, _ := runReport(verr, false, "production")

	assert.NotContains(t, out, "export ")
}

func TestReport_DevelopmentToleranceExitsZero(t *testing.T) {
	// Arrange
	verr := &schema.Error{Issues: []schema.Issue{
		{Path: "KEY", Message: "required variable is not set", Kind: schema.KindMissing},
	}}

	// Act
	out, exitCode := runReport(verr, true, "development")

	// Assert
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, out, "WARNING")
}

func TestReport_ToleranceNeedsDevelopmentMode(t *testing.T) {
	verr := &schema.Error{Issues: []schema.Issue{
		{Path: "KEY", Message: "required variable is not set", Kind: schema.KindMissing},
	}}

	tests := []struct {
		name         string
		allowMissing bool
		mode         string
		expected     int
	}{
		{"tolerated in development", true, "development", 0},
		{"flag without development mode", true, "production", 1},
		{"development without flag", false, "development", 1},
		{"neither", false, "production", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, exitCode := runReport(verr, tt.allowMissing, tt.mode)
			assert.Equal(t, tt.expected, exitCode)
		})
	}
}

package spdx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		// Wildcard only
		{"*", "anything", true},
		{"*", "", true},

		// Trailing wildcard
		{"property-*", "property-unknown", true},
		{"property-*", "property-", true},
		{"property-*", "element-unknown", false},
		{"property-*", "property", false},

		// Leading wildcard
		{"*-unknown", "enum-unknown", true},
		{"*-Unknown", "enum-unknown", false},
		{"*-duplicate", "identifier-duplicate", true},

		// Exact match
		{"node-empty", "node-empty", true},
		{"node-empty", "node-emptyish", false},

		// Inner wildcard and classes
		{"license-*", "license-unknown", true},
		{"*-dup*", "identifier-duplicate", true},
		{"enum-[a-m]*", "enum-unknown", false},

		// Edge cases
		{"", "", true},
		{"", "x", false},
		{"enum-[", "enum-[", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.s, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchGlob(tt.pattern, tt.s))
		})
	}
}

func TestShouldReport(t *testing.T) {
	tests := []struct {
		name string
		cfg  DiagnosticConfig
		code string
		sev  Severity
		want bool
	}{
		{"zero value keeps errors", DiagnosticConfig{}, DiagIdentifierDuplicate, SeverityError, true},
		{"zero value drops warnings", DiagnosticConfig{}, DiagEnumUnknown, SeverityWarning, false},
		{"default keeps warnings", DefaultDiagnosticConfig(), DiagEnumUnknown, SeverityWarning, true},
		{"default drops info", DefaultDiagnosticConfig(), DiagPropertyUnknown, SeverityInfo, false},
		{"info keeps all", DiagnosticConfig{MinSeverity: SeverityInfo}, DiagPropertyUnknown, SeverityInfo, true},
		{
			"ignore glob wins over severity",
			DiagnosticConfig{MinSeverity: SeverityInfo, Ignore: []string{"enum-*"}},
			DiagEnumUnknown, SeverityError, false,
		},
		{
			"ignore leaves other codes",
			DiagnosticConfig{MinSeverity: SeverityInfo, Ignore: []string{"enum-*"}},
			DiagLicenseUnknown, SeverityWarning, true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ShouldReport(tt.code, tt.sev))
		})
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Severity: SeverityWarning, Code: DiagEnumUnknown, Message: "unknown file type \"WIDGET\"", Element: "SPDXRef-File"}
	assert.Equal(t, `[warning] SPDXRef-File: unknown file type "WIDGET"`, d.String())

	d.Element = ""
	assert.Equal(t, `[warning] unknown file type "WIDGET"`, d.String())
}

func TestSeverity(t *testing.T) {
	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityInfo.AtLeast(SeverityWarning))
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "unknown", Severity(9).String())
	assert.Equal(t, "unknown", Severity(-1).String())
}

func TestParseSeverity(t *testing.T) {
	for _, sev := range []Severity{SeverityError, SeverityWarning, SeverityInfo} {
		got, err := ParseSeverity(sev.String())
		require.NoError(t, err)
		assert.Equal(t, sev, got)
	}

	got, err := ParseSeverity("WARNING")
	require.NoError(t, err)
	assert.Equal(t, SeverityWarning, got)

	_, err = ParseSeverity("fatal")
	assert.ErrorContains(t, err, `unknown severity "fatal"`)
}

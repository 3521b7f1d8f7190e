package spdx

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// Severity ranks a diagnostic. Lower values are more severe, so the zero
// value is SeverityError.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

var severityNames = [...]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// ParseSeverity is the inverse of Severity.String. Case is ignored.
func ParseSeverity(name string) (Severity, error) {
	i := slices.Index(severityNames[:], strings.ToLower(name))
	if i < 0 {
		return 0, fmt.Errorf("unknown severity %q (want error, warning or info)", name)
	}
	return Severity(i), nil
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s <= other
}

// Diagnostic is a recoverable problem noticed while reading a document:
// an unrecognized property, an enum value outside the vocabulary, a
// duplicated identifier. Problems that abort the read are *Error values.
type Diagnostic struct {
	Severity Severity
	Code     string // one of the Diag* constants
	Message  string
	Element  string // SPDX identifier of the element being read, if any
}

// String formats the diagnostic as "[severity] element: message", leaving
// out the element when there is none.
func (d Diagnostic) String() string {
	if d.Element == "" {
		return "[" + d.Severity.String() + "] " + d.Message
	}
	return "[" + d.Severity.String() + "] " + d.Element + ": " + d.Message
}

// DiagnosticConfig decides which diagnostics a read keeps.
type DiagnosticConfig struct {
	// MinSeverity is the least severe level kept. The zero value keeps
	// errors only.
	MinSeverity Severity

	// Ignore suppresses codes regardless of severity. Entries are glob
	// patterns such as "enum-*".
	Ignore []string
}

// DefaultDiagnosticConfig keeps warnings and errors.
func DefaultDiagnosticConfig() DiagnosticConfig {
	return DiagnosticConfig{MinSeverity: SeverityWarning}
}

// ShouldReport reports whether a diagnostic with this code and severity
// survives the filter.
func (c DiagnosticConfig) ShouldReport(code string, sev Severity) bool {
	for _, pattern := range c.Ignore {
		if MatchGlob(pattern, code) {
			return false
		}
	}
	return sev.AtLeast(c.MinSeverity)
}

// MatchGlob reports whether a diagnostic code matches pattern. The syntax
// is that of path.Match; a malformed pattern matches nothing.
func MatchGlob(pattern, code string) bool {
	ok, err := path.Match(pattern, code)
	return err == nil && ok
}

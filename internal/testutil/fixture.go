package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// ExpressionCase is one entry of an expression fixture file. Exactly one of
// Render and Error is set: Render is the expected canonical rendering of a
// successful parse, Error the expected error message.
type ExpressionCase struct {
	Name                   string `json:"name"`
	Input                  string `json:"input"`
	Render                 string `json:"render,omitempty"`
	Error                  string `json:"error,omitempty"`
	AllowUnknownLicenses   bool   `json:"allowUnknownLicenses,omitempty"`
	AllowUnknownExceptions bool   `json:"allowUnknownExceptions,omitempty"`
}

// TestdataDir returns the repository's top-level testdata directory.
func TestdataDir(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate testutil source file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata")
}

// TestdataPath joins name onto the testdata directory.
func TestdataPath(t testing.TB, name ...string) string {
	t.Helper()
	return filepath.Join(append([]string{TestdataDir(t)}, name...)...)
}

// LoadExpressionCases loads an expression fixture file.
func LoadExpressionCases(t testing.TB, path string) []ExpressionCase {
	t.Helper()
	var cases []ExpressionCase
	loadJSON(t, path, &cases)
	return cases
}

// LoadSummary loads a document summary fixture, as written by Summarize.
func LoadSummary(t testing.TB, path string) *DocumentSummary {
	t.Helper()
	var s DocumentSummary
	loadJSON(t, path, &s)
	return &s
}

func loadJSON(t testing.TB, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("failed to parse fixture %s: %v", path, err)
	}
}

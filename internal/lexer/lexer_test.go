package lexer

import (
	"errors"
	"testing"

	"github.com/gospdx/gospdx/internal/testutil"
	"github.com/gospdx/gospdx/spdx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	table := testutil.Licenses()
	return Config{
		IsLicenseID:   table.IsLicenseID,
		IsExceptionID: table.IsExceptionID,
	}
}

func tokenKinds(t *testing.T, source string, cfg Config) []TokenKind {
	t.Helper()
	tokens, err := New(source, cfg, nil).Tokenize()
	require.NoError(t, err)
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   \t\n", nil},
		{"MIT", []string{"MIT"}},
		{"(MIT OR Apache-2.0)", []string{"(", "MIT", "OR", "Apache-2.0", ")"}},
		{"((MIT))", []string{"(", "(", "MIT", ")", ")"}},
		{"MIT\tAND\n ISC", []string{"MIT", "AND", "ISC"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Split(tt.in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeKinds(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		in   string
		want []TokenKind
	}{
		{"MIT", []TokenKind{TokLicenseID}},
		{"GPL-2.0+", []TokenKind{TokLicenseID}},
		{"LicenseRef-scancode-foo", []TokenKind{TokLicenseRef}},
		{"DocumentRef-other:LicenseRef-1", []TokenKind{TokLicenseRef}},
		{"MIT AND Apache-2.0", []TokenKind{TokLicenseID, TokAnd, TokLicenseID}},
		{"MIT or ISC", []TokenKind{TokLicenseID, TokOr, TokLicenseID}},
		{"GPL-2.0 WITH Classpath-exception-2.0", []TokenKind{TokLicenseID, TokWith, TokExceptionID}},
		{"(MIT)", []TokenKind{TokLParen, TokLicenseID, TokRParen}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenKinds(t, tt.in, cfg))
		})
	}
}

func TestKeywordsIgnoreCase(t *testing.T) {
	cfg := testConfig()
	for _, in := range []string{"MIT AND ISC", "MIT and ISC", "MIT aNd ISC"} {
		assert.Equal(t, []TokenKind{TokLicenseID, TokAnd, TokLicenseID}, tokenKinds(t, in, cfg), in)
	}
	tokens, err := New("mit with llvm-exception", cfg, nil).Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, TokWith, tokens[1].Kind)
	assert.Equal(t, "mit", tokens[0].Text, "identifiers keep their spelling")
}

// Any fragment containing "with" is the WITH keyword, even a listed id.
func TestWithSubstringClassification(t *testing.T) {
	cfg := testConfig()
	require.True(t, cfg.IsLicenseID("GPL-2.0-with-autoconf-exception"))
	assert.Equal(t, []TokenKind{TokWith}, tokenKinds(t, "GPL-2.0-with-autoconf-exception", cfg))
	assert.Equal(t, []TokenKind{TokWith}, tokenKinds(t, "Withheld", cfg))
}

func TestPlusSuffixBypassesPredicate(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, []TokenKind{TokLicenseID}, tokenKinds(t, "Unknown-1.0+", cfg))
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		cfg  Config
		kind spdx.ErrorKind
		msg  string
	}{
		{"underscore", "GPL_2.0", testConfig(), spdx.KindInvalidCharacters, "Invalid characters found"},
		{"slash", "MIT/X11", testConfig(), spdx.KindInvalidCharacters, "Invalid characters found"},
		{"unknown id", "Foo-1.0", testConfig(), spdx.KindUnknownToken, "Unknown token: Foo-1.0"},
		{"no predicates", "MIT", Config{}, spdx.KindUnknownToken, "Unknown token: MIT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.in, tt.cfg, nil).Tokenize()
			require.Error(t, err)
			var serr *spdx.Error
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.kind, serr.Kind)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestTolerance(t *testing.T) {
	cfg := testConfig()
	cfg.AllowUnknownExceptions = true
	assert.Equal(t, []TokenKind{TokExceptionID}, tokenKinds(t, "Foo-exception", cfg))

	cfg = testConfig()
	cfg.AllowUnknownLicenses = true
	assert.Equal(t, []TokenKind{TokLicenseID}, tokenKinds(t, "Foo-1.0", cfg))

	// Exceptions are tried before licenses.
	cfg.AllowUnknownExceptions = true
	assert.Equal(t, []TokenKind{TokExceptionID}, tokenKinds(t, "Foo-1.0", cfg))

	// Invalid characters fail regardless of tolerance.
	_, err := New("Foo_1.0", cfg, nil).Tokenize()
	assert.ErrorIs(t, err, spdx.ErrInvalidCharacters)
}

func TestTokenizeIsRestartable(t *testing.T) {
	lx := New("MIT OR ISC", testConfig(), nil)
	first, err := lx.Tokenize()
	require.NoError(t, err)
	second, err := lx.Tokenize()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "LicenseId", TokLicenseID.String())
	assert.Equal(t, "RightParen", TokRParen.String())
	assert.Equal(t, "Unknown", TokenKind(99).String())
	assert.True(t, TokWith.IsKeyword())
	assert.False(t, TokLParen.IsKeyword())
}

func TestValidChars(t *testing.T) {
	assert.True(t, ValidChars("GPL-2.0+"))
	assert.True(t, ValidChars("(MIT)"))
	assert.False(t, ValidChars("GPL_2.0"))
	assert.False(t, ValidChars("MIT:X"))
}

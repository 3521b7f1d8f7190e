package parser

import (
	"errors"
	"testing"

	"github.com/gospdx/gospdx/expr"
	"github.com/gospdx/gospdx/internal/testutil"
	"github.com/gospdx/gospdx/spdx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string, opts Options) (expr.Expression, error) {
	t.Helper()
	table := testutil.Licenses()
	return Parse(text, table.IsLicenseID, table.IsExceptionID, opts, nil)
}

func mustParse(t *testing.T, text string) expr.Expression {
	t.Helper()
	e, err := parse(t, text, Options{})
	require.NoError(t, err, text)
	return e
}

func TestScenarios(t *testing.T) {
	mit := &expr.SimpleLicense{ID: "MIT"}
	tests := []struct {
		in   string
		want expr.Expression
	}{
		{"MIT", mit},
		{"MIT AND Apache-2.0", &expr.And{Left: mit, Right: &expr.SimpleLicense{ID: "Apache-2.0"}}},
		{"GPL-2.0+", &expr.SimpleLicense{ID: "GPL-2.0", OrLater: true}},
		{"GPL-2.0 WITH Autoconf-exception-2.0", &expr.With{
			Expr:        &expr.SimpleLicense{ID: "GPL-2.0"},
			ExceptionID: "Autoconf-exception-2.0",
		}},
		{"LicenseRef-x", &expr.LicenseReference{Ref: "LicenseRef-x"}},
		{"(MIT)", &expr.Scoped{Inner: mit}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := mustParse(t, tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestConformanceFixture(t *testing.T) {
	table := testutil.Licenses()
	cases := testutil.LoadExpressionCases(t, testutil.TestdataPath(t, "expressions", "conformance.json"))
	require.NotEmpty(t, cases)
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			opts := Options{
				AllowUnknownLicenses:   tc.AllowUnknownLicenses,
				AllowUnknownExceptions: tc.AllowUnknownExceptions,
			}
			e, err := Parse(tc.Input, table.IsLicenseID, table.IsExceptionID, opts, nil)
			if tc.Error != "" {
				require.Error(t, err)
				assert.Equal(t, tc.Error, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Render, e.String())
		})
	}
}

func TestPrecedence(t *testing.T) {
	a, b, c := &expr.SimpleLicense{ID: "MIT"}, &expr.SimpleLicense{ID: "ISC"}, &expr.SimpleLicense{ID: "MPL-2.0"}

	// AND binds tighter than OR.
	assert.Equal(t, &expr.Or{Left: a, Right: &expr.And{Left: b, Right: c}}, mustParse(t, "MIT OR ISC AND MPL-2.0"))
	assert.Equal(t, &expr.Or{Left: &expr.And{Left: a, Right: b}, Right: c}, mustParse(t, "MIT AND ISC OR MPL-2.0"))

	// Both operators associate to the left.
	assert.Equal(t, &expr.And{Left: &expr.And{Left: a, Right: b}, Right: c}, mustParse(t, "MIT AND ISC AND MPL-2.0"))
	assert.Equal(t, &expr.Or{Left: &expr.Or{Left: a, Right: b}, Right: c}, mustParse(t, "MIT OR ISC OR MPL-2.0"))

	// WITH binds tighter than AND.
	got := mustParse(t, "GPL-2.0+ WITH Autoconf-exception-2.0 AND MIT")
	want := &expr.And{
		Left: &expr.With{
			Expr:        &expr.SimpleLicense{ID: "GPL-2.0", OrLater: true},
			ExceptionID: "Autoconf-exception-2.0",
		},
		Right: a,
	}
	assert.Equal(t, want, got)
}

func TestRenderingProperties(t *testing.T) {
	exprs := []string{
		"MIT",
		"GPL-2.0+",
		"mit and apache-2.0",
		"MIT OR (ISC AND Apache-2.0)",
		"GPL-2.0 WITH Classpath-exception-2.0 OR MIT",
		"((MIT OR ISC))",
		"LicenseRef-a AND (LicenseRef-b OR EPL-1.0)",
	}
	for _, in := range exprs {
		t.Run(in, func(t *testing.T) {
			once := mustParse(t, in).String()

			// Idempotent.
			assert.Equal(t, once, mustParse(t, once).String())

			// Parenthesization round-trips.
			assert.Equal(t, "("+once+")", mustParse(t, "("+in+")").String())

			assert.NotContains(t, once, " and ")
			assert.NotContains(t, once, " or ")
		})
	}
}

func TestValidIDsRoundTrip(t *testing.T) {
	for _, id := range []string{"MIT", "Apache-2.0", "GPL-2.0-only", "BSD-3-Clause", "CC0-1.0"} {
		e := mustParse(t, id)
		assert.Equal(t, &expr.SimpleLicense{ID: id}, e)
		assert.Equal(t, id, e.String())

		later := mustParse(t, id+"+")
		assert.Equal(t, &expr.SimpleLicense{ID: id, OrLater: true}, later)
		assert.Equal(t, id+"+", later.String())
	}
}

func TestUnknownLicenses(t *testing.T) {
	_, err := parse(t, "Acme-1.0+", Options{})
	require.ErrorIs(t, err, spdx.ErrInvalidLicenseID)
	assert.Equal(t, "Invalid/unknown SPDX license id", err.Error())

	e, err := parse(t, "Acme-1.0+", Options{AllowUnknownLicenses: true})
	require.NoError(t, err)
	assert.Equal(t, &expr.SimpleLicense{ID: "Acme-1.0", OrLater: true}, e)

	e, err = parse(t, "Acme-1.0 OR MIT", Options{AllowUnknownLicenses: true})
	require.NoError(t, err)
	assert.Equal(t, "Acme-1.0 OR MIT", e.String())

	// With both switches the lexer files the unknown id as an exception,
	// and the parser takes it back as a license.
	e, err = parse(t, "Acme-1.0 WITH Acme-exception", Options{AllowUnknownLicenses: true, AllowUnknownExceptions: true})
	require.NoError(t, err)
	assert.Equal(t, &expr.With{Expr: &expr.SimpleLicense{ID: "Acme-1.0"}, ExceptionID: "Acme-exception"}, e)

	_, err = parse(t, "+", Options{AllowUnknownLicenses: true})
	assert.ErrorIs(t, err, spdx.ErrInvalidLicenseID)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		in   string
		kind spdx.ErrorKind
	}{
		{"", spdx.KindEmptyExpression},
		{"(MIT", spdx.KindUnexpectedEnd},
		{"(MIT OR", spdx.KindUnexpectedEnd},
		{"((MIT)", spdx.KindUnexpectedEnd},
		{"GPL_2.0", spdx.KindInvalidCharacters},
		{"MIT ISC", spdx.KindUnknownToken},
		{"AND MIT", spdx.KindUnknownToken},
		{"MIT AND OR ISC", spdx.KindUnknownToken},
		{"()", spdx.KindUnknownToken},
		{"(MIT ISC)", spdx.KindUnknownToken},
		{"MIT WITH MIT", spdx.KindUnknownToken},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := parse(t, tt.in, Options{})
			require.Error(t, err)
			assert.Nil(t, e)
			var serr *spdx.Error
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.kind, serr.Kind, err.Error())
		})
	}
}

func TestMissingPredicate(t *testing.T) {
	table := testutil.Licenses()
	_, err := Parse("MIT", nil, table.IsExceptionID, Options{}, nil)
	assert.ErrorIs(t, err, spdx.ErrArgument)
	_, err = Parse("MIT", table.IsLicenseID, nil, Options{}, nil)
	assert.ErrorIs(t, err, spdx.ErrArgument)
}

func TestIndependentParses(t *testing.T) {
	table := testutil.Licenses()
	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			e, err := Parse("MIT OR (ISC AND GPL-2.0+)", table.IsLicenseID, table.IsExceptionID, Options{}, nil)
			if err != nil {
				done <- err.Error()
				return
			}
			done <- e.String()
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, "MIT OR (ISC AND GPL-2.0+)", <-done)
	}
}

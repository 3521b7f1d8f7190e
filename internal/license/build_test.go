package license

import (
	"testing"

	"github.com/gospdx/gospdx/expr"
	"github.com/gospdx/gospdx/internal/parser"
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
		Lookup:        table.Find,
	}
}

func TestBuildSimple(t *testing.T) {
	table := testutil.Licenses()

	l := Build(&expr.SimpleLicense{ID: "MIT"}, table.Find)
	lic, ok := l.(*spdx.License)
	require.True(t, ok, "MIT resolves to a full license, got %T", l)
	assert.Equal(t, testutil.MITText, lic.Text)
	assert.Equal(t, "MIT", l.String())

	l = Build(&expr.SimpleLicense{ID: "ISC"}, table.Find)
	assert.IsType(t, &spdx.ListedLicenseInfo{}, l)

	l = Build(&expr.SimpleLicense{ID: "Acme-1.0"}, table.Find)
	assert.Equal(t, &spdx.SimpleLicensingInfo{ID: "Acme-1.0"}, l)

	l = Build(&expr.SimpleLicense{ID: "MIT"}, nil)
	assert.Equal(t, &spdx.SimpleLicensingInfo{ID: "MIT"}, l)
}

func TestBuildOrLater(t *testing.T) {
	table := testutil.Licenses()
	l := Build(&expr.SimpleLicense{ID: "MIT", OrLater: true}, table.Find)
	info, ok := l.(*spdx.SimpleLicensingInfo)
	require.True(t, ok)
	assert.Equal(t, "MIT+", info.ID)
	assert.Equal(t, "MIT License", info.Name)
	assert.Equal(t, []string{"https://opensource.org/licenses/MIT"}, info.SeeAlso)
}

func TestBuildWith(t *testing.T) {
	e := &expr.With{Expr: &expr.SimpleLicense{ID: "GPL-2.0", OrLater: true}, ExceptionID: "Autoconf-exception-2.0"}
	l := Build(e, testutil.Licenses().Find)
	assert.Equal(t, &spdx.SimpleLicensingInfo{ID: "GPL-2.0+ WITH Autoconf-exception-2.0"}, l)
}

func TestBuildSets(t *testing.T) {
	table := testutil.Licenses()
	e, err := parser.Parse("MIT AND ISC AND (Apache-2.0 OR MPL-2.0)", table.IsLicenseID, table.IsExceptionID, parser.Options{}, nil)
	require.NoError(t, err)

	l := Build(e, nil)
	outer, ok := l.(*spdx.LicenseSet)
	require.True(t, ok)
	assert.Equal(t, spdx.Conjunctive, outer.Kind)
	require.Len(t, outer.Members, 2, "sets are binary")

	inner, ok := outer.Members[0].(*spdx.LicenseSet)
	require.True(t, ok)
	assert.Equal(t, spdx.Conjunctive, inner.Kind)
	assert.Equal(t, "MIT", inner.Members[0].String())
	assert.Equal(t, "ISC", inner.Members[1].String())

	or, ok := outer.Members[1].(*spdx.LicenseSet)
	require.True(t, ok, "scoped nodes unwrap")
	assert.Equal(t, spdx.Disjunctive, or.Kind)

	assert.Equal(t, "MIT AND ISC AND (Apache-2.0 OR MPL-2.0)", l.String())
}

func TestBuildRoundTrip(t *testing.T) {
	cfg := testConfig()
	for _, in := range []string{
		"MIT",
		"MIT OR ISC",
		"MIT AND (ISC OR Apache-2.0)",
		"(MIT AND ISC) OR Apache-2.0",
		"GPL-2.0+ WITH Autoconf-exception-2.0 AND MIT",
		"LicenseRef-x OR MIT AND ISC",
	} {
		t.Run(in, func(t *testing.T) {
			l, err := Parse(in, cfg)
			require.NoError(t, err)
			again, err := Parse(l.String(), cfg)
			require.NoError(t, err)
			assert.Equal(t, l.String(), again.String())
		})
	}
}

func TestParseSentinels(t *testing.T) {
	cfg := testConfig()
	l, err := Parse("NONE", cfg)
	require.NoError(t, err)
	assert.Equal(t, &spdx.NoneLicense{}, l)

	l, err = Parse(" noassertion ", cfg)
	require.NoError(t, err)
	assert.Equal(t, &spdx.NoAssertionLicense{}, l)

	// Sentinels short-circuit, so they work without predicates.
	l, err = Parse("NOASSERTION", Config{})
	require.NoError(t, err)
	assert.Equal(t, "NOASSERTION", l.String())
}

func TestParseErrors(t *testing.T) {
	cfg := testConfig()
	_, err := Parse("(MIT", cfg)
	assert.ErrorIs(t, err, spdx.ErrUnexpectedEnd)

	_, err = Parse("MIT", Config{})
	assert.ErrorIs(t, err, spdx.ErrArgument)

	cfg.Options.AllowUnknownLicenses = true
	l, err := Parse("Acme-1.0", cfg)
	require.NoError(t, err)
	assert.Equal(t, &spdx.SimpleLicensingInfo{ID: "Acme-1.0"}, l)
}

func TestChain(t *testing.T) {
	local := &spdx.ExtractedLicenseInfo{
		SimpleLicensingInfo: spdx.SimpleLicensingInfo{ID: "LicenseRef-1", Name: "Local"},
		ExtractedText:       "text",
	}
	shadow := &spdx.ExtractedLicenseInfo{SimpleLicensingInfo: spdx.SimpleLicensingInfo{ID: "MIT"}}
	lookup := Chain(Extracted([]*spdx.ExtractedLicenseInfo{local, shadow}), nil, testutil.Licenses().Find)

	l, ok := lookup("LicenseRef-1")
	require.True(t, ok)
	assert.Same(t, local, l)

	l, ok = lookup("MIT")
	require.True(t, ok)
	assert.Same(t, shadow, l, "earlier lookups win")

	l, ok = lookup("ISC")
	require.True(t, ok)
	assert.Equal(t, "ISC", l.String())

	_, ok = lookup("nothing")
	assert.False(t, ok)

	built := Build(&expr.LicenseReference{Ref: "LicenseRef-1"}, lookup)
	assert.Same(t, local, built)
}

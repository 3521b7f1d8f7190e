// Package license converts license expressions into the license object
// model.
package license

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gospdx/gospdx/expr"
	"github.com/gospdx/gospdx/internal/parser"
	"github.com/gospdx/gospdx/spdx"
)

// Lookup finds the license object for an identifier. Implementations
// return false for ids they do not know.
type Lookup func(id string) (spdx.AnyLicense, bool)

// Chain returns a Lookup that tries each lookup in order. Nil lookups are
// skipped.
func Chain(lookups ...Lookup) Lookup {
	return func(id string) (spdx.AnyLicense, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if lic, ok := l(id); ok {
				return lic, true
			}
		}
		return nil, false
	}
}

// Extracted returns a Lookup over document-local licenses.
func Extracted(licenses []*spdx.ExtractedLicenseInfo) Lookup {
	return func(id string) (spdx.AnyLicense, bool) {
		for _, l := range licenses {
			if l.ID == id {
				return l, true
			}
		}
		return nil, false
	}
}

// Build converts e into a license object. And and Or become two-member
// sets in expression order; nested operators are not flattened. With
// becomes a SimpleLicensingInfo whose id is the rendered "L WITH E".
// Scoped is transparent. Identifiers are resolved through lookup, falling
// back to a SimpleLicensingInfo carrying only the id.
func Build(e expr.Expression, lookup Lookup) spdx.AnyLicense {
	switch n := e.(type) {
	case *expr.SimpleLicense:
		return buildSimple(n, lookup)
	case *expr.LicenseReference:
		return find(n.Ref, lookup)
	case *expr.With:
		return &spdx.SimpleLicensingInfo{ID: n.String()}
	case *expr.And:
		return spdx.NewConjunctive(Build(n.Left, lookup), Build(n.Right, lookup))
	case *expr.Or:
		return spdx.NewDisjunctive(Build(n.Left, lookup), Build(n.Right, lookup))
	case *expr.Scoped:
		return Build(n.Inner, lookup)
	}
	panic(fmt.Sprintf("license: unhandled expression type %T", e))
}

// buildSimple resolves a license id. An or-later id keeps its "+" in the
// model id and borrows the name and links of the base license.
func buildSimple(n *expr.SimpleLicense, lookup Lookup) spdx.AnyLicense {
	if !n.OrLater {
		return find(n.ID, lookup)
	}
	info := &spdx.SimpleLicensingInfo{ID: n.String()}
	if lookup != nil {
		if base, ok := lookup(n.ID); ok {
			if b := spdx.LicensingInfo(base); b != nil {
				info.Name = b.Name
				info.SeeAlso = b.SeeAlso
			}
		}
	}
	return info
}

func find(id string, lookup Lookup) spdx.AnyLicense {
	if lookup != nil {
		if l, ok := lookup(id); ok {
			return l
		}
	}
	return &spdx.SimpleLicensingInfo{ID: id}
}

// Config configures Parse.
type Config struct {
	IsLicenseID   func(string) bool
	IsExceptionID func(string) bool
	Lookup        Lookup
	Options       parser.Options
	Logger        *slog.Logger
}

// Sentinel returns the NONE or NOASSERTION license for text, ignoring case
// and surrounding whitespace.
func Sentinel(text string) (spdx.AnyLicense, bool) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case spdx.NoneValue:
		return &spdx.NoneLicense{}, true
	case spdx.NoAssertionValue:
		return &spdx.NoAssertionLicense{}, true
	}
	return nil, false
}

// Parse converts expression text into a license object. The sentinels
// NONE and NOASSERTION are recognized before the grammar is tried.
func Parse(text string, cfg Config) (spdx.AnyLicense, error) {
	if l, ok := Sentinel(text); ok {
		return l, nil
	}
	e, err := parser.Parse(text, cfg.IsLicenseID, cfg.IsExceptionID, cfg.Options, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return Build(e, cfg.Lookup), nil
}

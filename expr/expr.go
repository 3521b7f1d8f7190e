// Package expr defines the SPDX license expression syntax tree.
//
// Nodes are immutable once built. Every node renders to a canonical string:
// keywords upper-cased, the or-later suffix appended as "+", and Scoped
// nodes wrapped in parentheses, so a parsed expression prints back with its
// original grouping.
package expr

import "strings"

// Expression is a node of a license expression. The set of implementations
// is closed: *SimpleLicense, *LicenseReference, *With, *And, *Or, *Scoped.
type Expression interface {
	String() string
	expression()
}

// SimpleLicense is a license identifier, optionally followed by "+".
type SimpleLicense struct {
	ID      string
	OrLater bool
}

func (s *SimpleLicense) String() string {
	if s.OrLater {
		return s.ID + "+"
	}
	return s.ID
}

// LicenseReference is a "LicenseRef-..." identifier, optionally qualified
// with "DocumentRef-...:". The grammar treats it as opaque.
type LicenseReference struct {
	Ref string
}

func (r *LicenseReference) String() string { return r.Ref }

// With attaches an exception to a license.
type With struct {
	Expr        Expression
	ExceptionID string
}

func (w *With) String() string { return w.Expr.String() + " WITH " + w.ExceptionID }

// And is a conjunction of two expressions.
type And struct {
	Left, Right Expression
}

func (a *And) String() string { return a.Left.String() + " AND " + a.Right.String() }

// Or is a disjunction of two expressions.
type Or struct {
	Left, Right Expression
}

func (o *Or) String() string { return o.Left.String() + " OR " + o.Right.String() }

// Scoped is a parenthesized expression. It is kept as its own node so that
// rendering reproduces the source grouping.
type Scoped struct {
	Inner Expression
}

func (s *Scoped) String() string { return "(" + s.Inner.String() + ")" }

func (*SimpleLicense) expression()    {}
func (*LicenseReference) expression() {}
func (*With) expression()             {}
func (*And) expression()              {}
func (*Or) expression()               {}
func (*Scoped) expression()           {}

// Walk calls fn for e and each of its descendants, depth-first and left to
// right. Returning false from fn skips the node's children.
func Walk(e Expression, fn func(Expression) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch n := e.(type) {
	case *With:
		Walk(n.Expr, fn)
	case *And:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Or:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Scoped:
		Walk(n.Inner, fn)
	}
}

// LicenseIDs returns the license identifiers and references in e, in order
// of appearance, without duplicates. Or-later ids are reported without "+".
func LicenseIDs(e Expression) []string {
	var ids []string
	seen := make(map[string]struct{})
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	Walk(e, func(n Expression) bool {
		switch v := n.(type) {
		case *SimpleLicense:
			add(v.ID)
		case *LicenseReference:
			add(v.Ref)
		}
		return true
	})
	return ids
}

// ExceptionIDs returns the exception identifiers used in e.
func ExceptionIDs(e Expression) []string {
	var ids []string
	Walk(e, func(n Expression) bool {
		if w, ok := n.(*With); ok {
			ids = append(ids, w.ExceptionID)
		}
		return true
	})
	return ids
}

// IsLicenseRef reports whether id names a document-local license
// ("LicenseRef-..." or "DocumentRef-...:LicenseRef-..."), ignoring case.
func IsLicenseRef(id string) bool {
	lower := strings.ToLower(id)
	if strings.HasPrefix(lower, "licenseref") {
		return true
	}
	return strings.HasPrefix(lower, "documentref") && strings.Contains(lower, ":licenseref")
}

package spdx

import "strings"

// AnyLicense is a node in a license object graph. The set of
// implementations is closed: *SimpleLicensingInfo, *License,
// *ExtractedLicenseInfo, *ListedLicenseInfo, *LicenseSet, *NoneLicense and
// *NoAssertionLicense.
//
// String returns the canonical rendering, which also serves as the
// license's display identifier.
type AnyLicense interface {
	String() string
	anyLicense()
}

// SimpleLicensingInfo is a license known only by identifier and a few
// descriptive fields.
type SimpleLicensingInfo struct {
	ID      string
	Name    string
	Comment string
	SeeAlso []string
}

func (l *SimpleLicensingInfo) String() string { return l.ID }
func (*SimpleLicensingInfo) anyLicense()      {}

// License is a listed license with its full text and metadata.
type License struct {
	SimpleLicensingInfo
	Text           string
	StandardHeader string
	OSIApproved    bool
	FSFLibre       bool
	Deprecated     bool
}

// ListedLicenseInfo is a listed license for which only partial metadata
// is available (no license text).
type ListedLicenseInfo struct {
	SimpleLicensingInfo
	OSIApproved bool
	FSFLibre    bool
	Deprecated  bool
}

// ExtractedLicenseInfo is a document-local license (LicenseRef-...) whose
// text was extracted verbatim from the analyzed software.
type ExtractedLicenseInfo struct {
	SimpleLicensingInfo
	ExtractedText string
}

// SetKind distinguishes conjunctive (AND) from disjunctive (OR) sets.
type SetKind int

const (
	Conjunctive SetKind = iota
	Disjunctive
)

func (k SetKind) String() string {
	if k == Disjunctive {
		return "OR"
	}
	return "AND"
}

// LicenseSet combines licenses with AND or OR. Members keep the
// left-to-right order of the source expression.
type LicenseSet struct {
	Kind    SetKind
	Members []AnyLicense
}

// NewConjunctive returns an AND set of the given members.
func NewConjunctive(members ...AnyLicense) *LicenseSet {
	return &LicenseSet{Kind: Conjunctive, Members: members}
}

// NewDisjunctive returns an OR set of the given members.
func NewDisjunctive(members ...AnyLicense) *LicenseSet {
	return &LicenseSet{Kind: Disjunctive, Members: members}
}

// String joins members with the set's keyword. A member set of the other
// kind is parenthesized so the rendering parses back to the same grouping.
func (s *LicenseSet) String() string {
	sep := " " + s.Kind.String() + " "
	var b strings.Builder
	for i, m := range s.Members {
		if i > 0 {
			b.WriteString(sep)
		}
		if inner, ok := m.(*LicenseSet); ok && inner.Kind != s.Kind && len(inner.Members) > 1 {
			b.WriteByte('(')
			b.WriteString(inner.String())
			b.WriteByte(')')
			continue
		}
		b.WriteString(m.String())
	}
	return b.String()
}

func (*LicenseSet) anyLicense() {}

// NoneLicense records that no license applies.
type NoneLicense struct{}

func (*NoneLicense) String() string { return NoneValue }
func (*NoneLicense) anyLicense()    {}

// NoAssertionLicense records that no license assertion was made.
type NoAssertionLicense struct{}

func (*NoAssertionLicense) String() string { return NoAssertionValue }
func (*NoAssertionLicense) anyLicense()    {}

// Literal values for the license and element sentinels.
const (
	NoneValue        = "NONE"
	NoAssertionValue = "NOASSERTION"
)

// LicenseID returns the identifier of a single license, or the rendering
// for sets and sentinels.
func LicenseID(l AnyLicense) string {
	if info := LicensingInfo(l); info != nil {
		return info.ID
	}
	if l == nil {
		return ""
	}
	return l.String()
}

// LicensingInfo returns the descriptive fields of any single-license variant.
func LicensingInfo(l AnyLicense) *SimpleLicensingInfo {
	switch v := l.(type) {
	case *SimpleLicensingInfo:
		return v
	case *License:
		return &v.SimpleLicensingInfo
	case *ListedLicenseInfo:
		return &v.SimpleLicensingInfo
	case *ExtractedLicenseInfo:
		return &v.SimpleLicensingInfo
	}
	return nil
}

// IsSentinel reports whether l is NONE or NOASSERTION.
func IsSentinel(l AnyLicense) bool {
	switch l.(type) {
	case *NoneLicense, *NoAssertionLicense:
		return true
	}
	return false
}

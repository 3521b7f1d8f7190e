package spdx

import "fmt"

// ErrorKind classifies a parse or read failure.
type ErrorKind int

const (
	// KindArgument is a caller error such as a missing predicate.
	KindArgument ErrorKind = iota
	// KindEmptyExpression is an empty or whitespace-only expression.
	KindEmptyExpression
	// KindInvalidCharacters is a fragment with characters outside [A-Za-z0-9+.()-].
	KindInvalidCharacters
	// KindUnknownToken is a fragment or token that fits nowhere in the grammar.
	KindUnknownToken
	// KindInvalidLicenseID is a license id rejected by the id predicate.
	KindInvalidLicenseID
	// KindUnexpectedEnd is an expression that stops mid-construct.
	KindUnexpectedEnd
	// KindMissingMandatoryField is a document element missing a required property.
	KindMissingMandatoryField
	// KindMissingNamespace is a document without its identifier or namespace.
	KindMissingNamespace
	// KindUnresolvedReference is a reference to an identifier nothing defines.
	KindUnresolvedReference
	// KindUnsupportedExternalDocument is a reference into another SPDX document.
	KindUnsupportedExternalDocument
)

var kindNames = [...]string{
	KindArgument:                    "ArgumentError",
	KindEmptyExpression:             "EmptyExpression",
	KindInvalidCharacters:           "InvalidCharacters",
	KindUnknownToken:                "UnknownToken",
	KindInvalidLicenseID:            "InvalidLicenseId",
	KindUnexpectedEnd:               "UnexpectedEndOfExpression",
	KindMissingMandatoryField:       "MissingMandatoryField",
	KindMissingNamespace:            "MissingNamespace",
	KindUnresolvedReference:         "UnresolvedReference",
	KindUnsupportedExternalDocument: "UnsupportedExternalDocument",
}

// String returns the kind name.
func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the failure returned by expression parsing and document reading.
// Detail holds the offending text, field name or identifier, depending on
// the kind. Error() yields the fixed message for the kind so callers can
// match on text.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindArgument:
		return "Argument error: " + e.Detail
	case KindEmptyExpression:
		return "Empty license expression"
	case KindInvalidCharacters:
		return "Invalid characters found"
	case KindUnknownToken:
		return "Unknown token: " + e.Detail
	case KindInvalidLicenseID:
		return "Invalid/unknown SPDX license id"
	case KindUnexpectedEnd:
		return "Unexpected end of expression."
	case KindMissingMandatoryField:
		return "Missing mandatory field: " + e.Detail
	case KindMissingNamespace:
		return "Missing document namespace"
	case KindUnresolvedReference:
		return "Unresolved reference: " + e.Detail
	case KindUnsupportedExternalDocument:
		return "External document references are not supported: " + e.Detail
	default:
		return e.Kind.String()
	}
}

// Is reports whether target is an *Error of the same kind, so the
// package-level sentinels match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NewError returns an *Error of the given kind.
func NewError(kind ErrorKind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Sentinels for errors.Is. Each matches every *Error of its kind.
var (
	ErrArgument                    = &Error{Kind: KindArgument}
	ErrEmptyExpression             = &Error{Kind: KindEmptyExpression}
	ErrInvalidCharacters           = &Error{Kind: KindInvalidCharacters}
	ErrUnknownToken                = &Error{Kind: KindUnknownToken}
	ErrInvalidLicenseID            = &Error{Kind: KindInvalidLicenseID}
	ErrUnexpectedEnd               = &Error{Kind: KindUnexpectedEnd}
	ErrMissingMandatoryField       = &Error{Kind: KindMissingMandatoryField}
	ErrMissingNamespace            = &Error{Kind: KindMissingNamespace}
	ErrUnresolvedReference         = &Error{Kind: KindUnresolvedReference}
	ErrUnsupportedExternalDocument = &Error{Kind: KindUnsupportedExternalDocument}
)

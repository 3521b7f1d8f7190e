package spdx

// Diagnostic codes emitted by the document readers.
// Centralizing these keeps filter globs and tests in step with the readers.

// Element and property codes.
const (
	DiagPropertyUnknown     = "property-unknown"
	DiagElementUnknown      = "element-unknown"
	DiagIdentifierDuplicate = "identifier-duplicate"
	DiagNodeEmpty           = "node-empty"
)

// Value codes.
const (
	DiagEnumUnknown    = "enum-unknown"
	DiagLicenseUnknown = "license-unknown"
)

// Package gospdx reads SPDX 2.x documents and parses SPDX license
// expressions.
//
// Documents in RDF/XML are read by a graph reader that resolves forward
// references, blank nodes and reference cycles to shared element
// instances. JSON, YAML and tag-value documents are decoded with
// tools-golang and converted into the same model.
package gospdx

import (
	"github.com/gospdx/gospdx/expr"
	"github.com/gospdx/gospdx/internal/license"
	"github.com/gospdx/gospdx/internal/rdf"
	"github.com/gospdx/gospdx/spdx"
)

// Type aliases for the public API. The model lives in the spdx and expr
// subpackages.

// Document is an SPDX document.
type Document = spdx.Document

// Package is an SPDX package.
type Package = spdx.Package

// File is an SPDX file.
type File = spdx.File

// Snippet is a range within a file.
type Snippet = spdx.Snippet

// AnyLicense is a license object.
type AnyLicense = spdx.AnyLicense

// Expression is a parsed license expression.
type Expression = expr.Expression

// Node is a decoded RDF/XML element.
type Node = rdf.Node

// LicenseLookup finds the license object for an identifier.
type LicenseLookup = license.Lookup

// Error is a parse or read failure with a kind.
type Error = spdx.Error

// Diagnostic is a non-fatal observation made while reading.
type Diagnostic = spdx.Diagnostic

// DiagnosticConfig filters diagnostics.
type DiagnosticConfig = spdx.DiagnosticConfig

// Severity ranks a diagnostic.
type Severity = spdx.Severity

// Error sentinels, for use with errors.Is.
var (
	ErrArgument                    = spdx.ErrArgument
	ErrEmptyExpression             = spdx.ErrEmptyExpression
	ErrInvalidCharacters           = spdx.ErrInvalidCharacters
	ErrUnknownToken                = spdx.ErrUnknownToken
	ErrInvalidLicenseID            = spdx.ErrInvalidLicenseID
	ErrUnexpectedEnd               = spdx.ErrUnexpectedEnd
	ErrMissingMandatoryField       = spdx.ErrMissingMandatoryField
	ErrMissingNamespace            = spdx.ErrMissingNamespace
	ErrUnresolvedReference         = spdx.ErrUnresolvedReference
	ErrUnsupportedExternalDocument = spdx.ErrUnsupportedExternalDocument
)

// DecodeRDF decodes RDF/XML into a node tree for ReadDocumentGraph.
var DecodeRDF = rdf.Decode

// ParseSeverity parses "error", "warning" or "info".
var ParseSeverity = spdx.ParseSeverity

// Severity constants (lower = more severe).
const (
	SeverityError   = spdx.SeverityError
	SeverityWarning = spdx.SeverityWarning
	SeverityInfo    = spdx.SeverityInfo
)

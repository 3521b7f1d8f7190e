package gospdx

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gospdx/gospdx/expr"
	"github.com/gospdx/gospdx/internal/convert"
	"github.com/gospdx/gospdx/internal/license"
	"github.com/gospdx/gospdx/internal/parser"
	"github.com/gospdx/gospdx/internal/rdf"
	"github.com/gospdx/gospdx/internal/reader"
	"github.com/gospdx/gospdx/internal/types"
	"github.com/gospdx/gospdx/spdx"
)

// ErrUnknownFormat is returned when a file's extension names no supported
// SPDX serialization.
var ErrUnknownFormat = errors.New("unknown SPDX document format")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, RDF nodes, registrations).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// Option configures parsing and reading.
type Option func(*config)

type config struct {
	logger                 *slog.Logger
	licenses               *LicenseList
	allowUnknownLicenses   bool
	allowUnknownExceptions bool
	diagConfig             spdx.DiagnosticConfig
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithLicenseList sets the license list used to recognize license and
// exception identifiers. The default is DefaultLicenseList.
func WithLicenseList(list *LicenseList) Option {
	return func(c *config) { c.licenses = list }
}

// WithAllowUnknownLicenses accepts well-formed license identifiers that
// are not on the license list.
func WithAllowUnknownLicenses() Option {
	return func(c *config) { c.allowUnknownLicenses = true }
}

// WithAllowUnknownExceptions accepts well-formed exception identifiers
// that are not on the license list.
func WithAllowUnknownExceptions() Option {
	return func(c *config) { c.allowUnknownExceptions = true }
}

// WithDiagnosticConfig sets the filter for diagnostics kept on read
// documents. The default keeps warnings and errors.
func WithDiagnosticConfig(cfg spdx.DiagnosticConfig) Option {
	return func(c *config) { c.diagConfig = cfg }
}

func newConfig(opts []Option) config {
	cfg := config{diagConfig: spdx.DefaultDiagnosticConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.licenses == nil {
		cfg.licenses = DefaultLicenseList()
	}
	return cfg
}

func (c config) parserOptions() parser.Options {
	return parser.Options{
		AllowUnknownLicenses:   c.allowUnknownLicenses,
		AllowUnknownExceptions: c.allowUnknownExceptions,
	}
}

func (c config) licenseConfig() license.Config {
	return license.Config{
		IsLicenseID:   c.licenses.IsLicenseID,
		IsExceptionID: c.licenses.IsExceptionID,
		Lookup:        c.licenses.FindLicenseByID,
		Options:       c.parserOptions(),
		Logger:        types.Component(c.logger, "parser"),
	}
}

// ParseExpression parses a license expression into its syntax tree.
//
// Example:
//
//	e, err := gospdx.ParseExpression("MIT OR (Apache-2.0 WITH LLVM-exception)")
//	fmt.Println(e) // MIT OR (Apache-2.0 WITH LLVM-exception)
func ParseExpression(text string, opts ...Option) (expr.Expression, error) {
	cfg := newConfig(opts)
	return parser.Parse(text, cfg.licenses.IsLicenseID, cfg.licenses.IsExceptionID,
		cfg.parserOptions(), types.Component(cfg.logger, "parser"))
}

// ParseLicense parses a license expression and builds its license object.
// NONE and NOASSERTION yield the sentinel licenses.
func ParseLicense(text string, opts ...Option) (AnyLicense, error) {
	cfg := newConfig(opts)
	return license.Parse(text, cfg.licenseConfig())
}

// BuildLicense converts a parsed expression into a license object,
// resolving identifiers through lookup. A nil lookup yields bare
// SimpleLicensingInfo values.
func BuildLicense(e expr.Expression, lookup LicenseLookup) AnyLicense {
	return license.Build(e, lookup)
}

// ReadRDF reads an SPDX document in RDF/XML.
func ReadRDF(r io.Reader, opts ...Option) (*Document, error) {
	root, err := rdf.Decode(r)
	if err != nil {
		return nil, err
	}
	return ReadDocumentGraph(root, opts...)
}

// ReadDocumentGraph reads an SPDX document from an already-decoded RDF
// tree. root is the rdf:RDF element or the SpdxDocument element.
func ReadDocumentGraph(root *Node, opts ...Option) (*Document, error) {
	if root == nil {
		return nil, spdx.NewError(spdx.KindArgument, "nil document graph")
	}
	cfg := newConfig(opts)
	return reader.Read(root, reader.Config{
		License:     cfg.licenseConfig(),
		Diagnostics: cfg.diagConfig,
		Logger:      types.Component(cfg.logger, "reader"),
	})
}

func (c config) convertConfig() convert.Config {
	return convert.Config{
		License:     c.licenseConfig(),
		Diagnostics: c.diagConfig,
		Logger:      types.Component(c.logger, "convert"),
	}
}

// ReadJSON reads an SPDX document in JSON.
func ReadJSON(r io.Reader, opts ...Option) (*Document, error) {
	return convert.ReadJSON(r, newConfig(opts).convertConfig())
}

// ReadYAML reads an SPDX document in YAML.
func ReadYAML(r io.Reader, opts ...Option) (*Document, error) {
	return convert.ReadYAML(r, newConfig(opts).convertConfig())
}

// ReadTagValue reads an SPDX document in tag-value form.
func ReadTagValue(r io.Reader, opts ...Option) (*Document, error) {
	return convert.ReadTagValue(r, newConfig(opts).convertConfig())
}

// Format is an SPDX serialization.
type Format int

const (
	FormatUnknown Format = iota
	FormatRDF
	FormatJSON
	FormatYAML
	FormatTagValue
)

var formatNames = [...]string{
	FormatUnknown:  "unknown",
	FormatRDF:      "rdf",
	FormatJSON:     "json",
	FormatYAML:     "yaml",
	FormatTagValue: "tag-value",
}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatOf returns the serialization implied by a file name's extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rdf", ".xml":
		return FormatRDF
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".spdx", ".tv":
		return FormatTagValue
	}
	return FormatUnknown
}

// Read reads a document in the given format.
func Read(r io.Reader, format Format, opts ...Option) (*Document, error) {
	switch format {
	case FormatRDF:
		return ReadRDF(r, opts...)
	case FormatJSON:
		return ReadJSON(r, opts...)
	case FormatYAML:
		return ReadYAML(r, opts...)
	case FormatTagValue:
		return ReadTagValue(r, opts...)
	}
	return nil, ErrUnknownFormat
}

// ReadFile reads the document at path, choosing the reader by extension.
func ReadFile(path string, opts ...Option) (*Document, error) {
	format := FormatOf(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file
	return Read(f, format, opts...)
}

// Package convert turns documents decoded by tools-golang into the gospdx
// model.
//
// The JSON, YAML and tag-value forms are decoded structurally by
// tools-golang. Everything that carries meaning beyond structure goes
// through gospdx: license fields are parsed as expressions, and
// identifiers in relationships, snippets and file dependencies are
// resolved against a per-document registry, so every reference to an
// element shares that element's instance.
package convert

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tvjson "github.com/spdx/tools-golang/json"
	tspdx "github.com/spdx/tools-golang/spdx"
	"github.com/spdx/tools-golang/spdx/v2/common"
	"github.com/spdx/tools-golang/tagvalue"
	tvyaml "github.com/spdx/tools-golang/yaml"

	"github.com/gospdx/gospdx/internal/license"
	"github.com/gospdx/gospdx/internal/registry"
	"github.com/gospdx/gospdx/internal/types"
	"github.com/gospdx/gospdx/spdx"
)

// Config configures a conversion.
type Config struct {
	// License configures parsing of license fields. Its Lookup is
	// consulted after the document's own extracted licenses.
	License license.Config

	Diagnostics spdx.DiagnosticConfig
	Logger      *slog.Logger
}

// ReadJSON decodes an SPDX JSON document and converts it.
func ReadJSON(r io.Reader, cfg Config) (*spdx.Document, error) {
	src, err := tvjson.Read(r)
	if err != nil {
		return nil, fmt.Errorf("decoding SPDX JSON: %w", err)
	}
	return Document(src, cfg)
}

// ReadYAML decodes an SPDX YAML document and converts it.
func ReadYAML(r io.Reader, cfg Config) (*spdx.Document, error) {
	src, err := tvyaml.Read(r)
	if err != nil {
		return nil, fmt.Errorf("decoding SPDX YAML: %w", err)
	}
	return Document(src, cfg)
}

// ReadTagValue decodes an SPDX tag-value document and converts it.
func ReadTagValue(r io.Reader, cfg Config) (*spdx.Document, error) {
	src, err := tagvalue.Read(r)
	if err != nil {
		return nil, fmt.Errorf("decoding SPDX tag-value: %w", err)
	}
	return Document(src, cfg)
}

type converter struct {
	cfg        Config
	doc        *spdx.Document
	reg        *registry.Registry
	licenseCfg license.Config
	types.Logger
}

// Document converts a decoded document.
func Document(src *tspdx.Document, cfg Config) (*spdx.Document, error) {
	if src == nil {
		return nil, spdx.NewError(spdx.KindArgument, "nil document")
	}
	c := &converter{
		cfg:    cfg,
		reg:    registry.New(),
		Logger: types.Logger{L: cfg.Logger},
	}
	return c.convert(src)
}

func (c *converter) convert(src *tspdx.Document) (*spdx.Document, error) {
	if src.DocumentNamespace == "" {
		return nil, spdx.NewError(spdx.KindMissingNamespace, "")
	}
	doc := &spdx.Document{
		SpecVersion: src.SPDXVersion,
		Namespace:   src.DocumentNamespace,
	}
	doc.ID = elementID(src.SPDXIdentifier)
	doc.Name = src.DocumentName
	doc.Comment = src.DocumentComment
	c.doc = doc
	c.reg.Register(doc.ID, doc)

	c.Log(slog.LevelDebug, "starting phase", slog.String("phase", "licenses"))
	for _, ol := range src.OtherLicenses {
		if ol == nil {
			continue
		}
		doc.ExtractedLicenses = append(doc.ExtractedLicenses, &spdx.ExtractedLicenseInfo{
			SimpleLicensingInfo: spdx.SimpleLicensingInfo{
				ID:      ol.LicenseIdentifier,
				Name:    ol.LicenseName,
				Comment: ol.LicenseComment,
				SeeAlso: ol.LicenseCrossReferences,
			},
			ExtractedText: ol.ExtractedText,
		})
	}
	c.licenseCfg = c.cfg.License
	c.licenseCfg.Lookup = license.Chain(license.Extracted(doc.ExtractedLicenses), c.cfg.License.Lookup)
	if c.licenseCfg.Logger == nil {
		c.licenseCfg.Logger = types.Component(c.cfg.Logger, "parser")
	}

	var err error
	if doc.DataLicense, err = c.license(src.DataLicense); err != nil {
		return nil, err
	}
	doc.CreationInfo = convertCreationInfo(src.CreationInfo)
	for _, ref := range src.ExternalDocumentReferences {
		doc.ExternalDocumentRefs = append(doc.ExternalDocumentRefs, &spdx.ExternalDocumentRef{
			ID:          ref.DocumentRefID,
			DocumentURI: ref.URI,
			Checksum:    c.checksum(ref.Checksum),
		})
	}
	c.Log(slog.LevelDebug, "phase complete", slog.String("phase", "licenses"),
		slog.Int("extracted", len(doc.ExtractedLicenses)))

	c.Log(slog.LevelDebug, "starting phase", slog.String("phase", "elements"))
	if err := c.convertElements(src); err != nil {
		return nil, err
	}
	c.Log(slog.LevelDebug, "phase complete", slog.String("phase", "elements"),
		slog.Int("elements", c.reg.Len()))

	c.Log(slog.LevelDebug, "starting phase", slog.String("phase", "references"))
	if err := c.convertReferences(src); err != nil {
		return nil, err
	}
	c.Log(slog.LevelDebug, "phase complete", slog.String("phase", "references"))

	for _, e := range c.reg.Elements() {
		switch v := e.(type) {
		case *spdx.Package:
			doc.Packages = append(doc.Packages, v)
		case *spdx.File:
			doc.Files = append(doc.Files, v)
		case *spdx.Snippet:
			doc.Snippets = append(doc.Snippets, v)
		}
	}
	return doc, nil
}

func (c *converter) diag(code string, sev spdx.Severity, element, msg string) {
	if c.cfg.Diagnostics.ShouldReport(code, sev) {
		c.doc.Diagnostics = append(c.doc.Diagnostics, spdx.Diagnostic{
			Severity: sev,
			Code:     code,
			Message:  msg,
			Element:  element,
		})
	}
}

// license parses a license field. An empty field is absent, not an error.
func (c *converter) license(text string) (spdx.AnyLicense, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return license.Parse(text, c.licenseCfg)
}

func (c *converter) licenses(texts []string) ([]spdx.AnyLicense, error) {
	var out []spdx.AnyLicense
	for _, t := range texts {
		l, err := c.license(t)
		if err != nil {
			return nil, err
		}
		if l != nil {
			out = append(out, l)
		}
	}
	return out, nil
}

func (c *converter) checksum(cs common.Checksum) *spdx.Checksum {
	if cs.Value == "" {
		return nil
	}
	alg, ok := spdx.ParseChecksumAlgorithm(string(cs.Algorithm))
	if !ok {
		c.diag(spdx.DiagEnumUnknown, spdx.SeverityWarning, "",
			fmt.Sprintf("unknown checksum algorithm %q", cs.Algorithm))
	}
	return &spdx.Checksum{Algorithm: alg, Value: cs.Value}
}

func (c *converter) checksums(in []common.Checksum) []*spdx.Checksum {
	var out []*spdx.Checksum
	for _, cs := range in {
		if v := c.checksum(cs); v != nil {
			out = append(out, v)
		}
	}
	return out
}

func convertCreationInfo(ci *tspdx.CreationInfo) *spdx.CreationInfo {
	if ci == nil {
		return nil
	}
	info := &spdx.CreationInfo{
		Created:            ci.Created,
		LicenseListVersion: ci.LicenseListVersion,
		Comment:            ci.CreatorComment,
	}
	for _, cr := range ci.Creators {
		info.Creators = append(info.Creators, cr.CreatorType+": "+cr.Creator)
	}
	return info
}

// elementID restores the "SPDXRef-" prefix tools-golang strips.
func elementID(id common.ElementID) string {
	if id == "" {
		return ""
	}
	s := string(id)
	if strings.HasPrefix(s, "SPDXRef-") {
		return s
	}
	return "SPDXRef-" + s
}

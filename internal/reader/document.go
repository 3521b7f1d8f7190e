package reader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gospdx/gospdx/internal/rdf"
	"github.com/gospdx/gospdx/spdx"
)

// readDocument reads the SpdxDocument node. Its about URI supplies both
// the namespace and the document identifier.
func (c *readContext) readDocument(n *rdf.Node) error {
	a := rdf.Attributes(n)
	if !strings.Contains(a.About, "#") {
		return spdx.NewError(spdx.KindMissingNamespace, a.About)
	}
	ns, id := rdf.SplitURI(a.About)
	if ns == "" || id == "" {
		return spdx.NewError(spdx.KindMissingNamespace, a.About)
	}

	doc := &spdx.Document{Namespace: ns}
	doc.ID = id
	doc.Diagnostics = c.pending
	c.pending = nil
	c.doc = doc
	c.reg.Register(id, doc)
	c.source[id] = n
	c.Log(slog.LevelDebug, "reading document",
		slog.String("namespace", ns),
		slog.String("id", id))

	for _, prop := range n.Children {
		if err := c.readDocumentProperty(doc, prop); err != nil {
			return err
		}
	}
	return nil
}

func (c *readContext) readDocumentProperty(doc *spdx.Document, prop *rdf.Node) error {
	if handled, err := c.readElementProperty(&doc.Element, prop); handled || err != nil {
		return err
	}
	if prop.Space != rdf.NSSPDX {
		c.unknownProperty(doc.ID, prop)
		return nil
	}
	switch prop.Local {
	case "specVersion":
		doc.SpecVersion = prop.Value()
	case "dataLicense":
		l, err := c.readLicense(prop)
		if err != nil {
			return err
		}
		doc.DataLicense = l
	case "creationInfo":
		info, err := c.readCreationInfo(prop)
		if err != nil {
			return err
		}
		doc.CreationInfo = info
	case "externalDocumentRef":
		ref, err := c.readExternalDocumentRef(prop)
		if err != nil {
			return err
		}
		doc.ExternalDocumentRefs = append(doc.ExternalDocumentRefs, ref)
	case "hasExtractedLicensingInfo":
		t, err := c.target(prop)
		if err != nil {
			return err
		}
		if t.node == nil {
			if _, err := c.licenseFromURI(t.uri); err != nil {
				return err
			}
			return nil
		}
		c.readExtracted(t.node)
	case "describesPackage":
		// SPDX 2.0 spelling of a DESCRIBES relationship.
		related, err := c.readElementTarget(prop)
		if err != nil {
			return err
		}
		doc.Relationships = append(doc.Relationships, &spdx.Relationship{
			Type:    spdx.RelationshipDescribes,
			Related: related,
		})
	default:
		c.unknownProperty(doc.ID, prop)
	}
	return nil
}

// readTopLevel reads top-level typed nodes that nothing referenced.
func (c *readContext) readTopLevel(docNode *rdf.Node) error {
	if docNode.Parent == nil {
		return nil
	}
	for _, n := range docNode.Parent.Children {
		if n == docNode || !isTyped(n) || n.IsEmpty() {
			continue
		}
		switch n.Local {
		case "ExtractedLicensingInfo":
			c.readExtracted(n)
		case "Package", "File", "Snippet":
			if _, err := c.readElement(n); err != nil {
				return err
			}
		case "Relationship", "Annotation", "Checksum", "CreationInfo",
			"ConjunctiveLicenseSet", "DisjunctiveLicenseSet", "License",
			"ListedLicense", "LicenseException", "StartEndPointer",
			"ByteOffsetPointer", "LineCharPointer", "ExternalRef",
			"ExternalDocumentRef", "PackageVerificationCode":
			// Reached through a property or not at all.
		default:
			c.diag(spdx.DiagElementUnknown, spdx.SeverityWarning, rdf.Attributes(n).Identifier(),
				fmt.Sprintf("ignoring top-level %s", n.Name()))
		}
	}
	return nil
}

// collect gathers the registered elements onto the document.
func (c *readContext) collect() {
	doc := c.doc
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
	doc.ExtractedLicenses = c.extractedOrder
}

func (c *readContext) readCreationInfo(prop *rdf.Node) (*spdx.CreationInfo, error) {
	t, err := c.target(prop)
	if err != nil {
		return nil, err
	}
	if t.node == nil {
		c.diag(spdx.DiagNodeEmpty, spdx.SeverityWarning, c.doc.ID, "creationInfo has no content")
		return nil, nil
	}
	return memo(c, t.node, func(n *rdf.Node) (*spdx.CreationInfo, error) {
		info := &spdx.CreationInfo{}
		for _, p := range n.Children {
			switch p.Local {
			case "created":
				info.Created = p.Value()
			case "creator":
				info.Creators = append(info.Creators, p.Value())
			case "licenseListVersion":
				info.LicenseListVersion = p.Value()
			case "comment":
				info.Comment = p.Value()
			default:
				c.unknownProperty(c.doc.ID, p)
			}
		}
		return info, nil
	})
}

func (c *readContext) readExternalDocumentRef(prop *rdf.Node) (*spdx.ExternalDocumentRef, error) {
	t, err := c.target(prop)
	if err != nil {
		return nil, err
	}
	if t.node == nil {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, "externalDocumentId")
	}
	return memo(c, t.node, func(n *rdf.Node) (*spdx.ExternalDocumentRef, error) {
		ref := &spdx.ExternalDocumentRef{}
		for _, p := range n.Children {
			switch p.Local {
			case "externalDocumentId":
				ref.ID = p.Value()
			case "spdxDocument":
				ref.DocumentURI = c.literal(p)
			case "checksum":
				cs, err := c.readChecksum(p)
				if err != nil {
					return nil, err
				}
				ref.Checksum = cs
			default:
				c.unknownProperty(c.doc.ID, p)
			}
		}
		if ref.ID == "" {
			return nil, spdx.NewError(spdx.KindMissingMandatoryField, "externalDocumentId")
		}
		return ref, nil
	})
}

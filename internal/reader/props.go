package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gospdx/gospdx/internal/rdf"
	"github.com/gospdx/gospdx/spdx"
)

// structNode returns the typed node a structured property points at.
func (c *readContext) structNode(prop *rdf.Node, field string) (*rdf.Node, error) {
	t, err := c.target(prop)
	if err != nil {
		return nil, err
	}
	if t.node == nil {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, field)
	}
	return t.node, nil
}

func (c *readContext) readRelationship(owner string, prop *rdf.Node) (*spdx.Relationship, error) {
	n, err := c.structNode(prop, "relationshipType")
	if err != nil {
		return nil, err
	}
	return memo(c, n, func(n *rdf.Node) (*spdx.Relationship, error) {
		rel := &spdx.Relationship{}
		var haveType, haveRelated bool
		for _, p := range n.Children {
			switch {
			case p.Is(rdf.NSSPDX, "relationshipType"):
				v, ok := spdx.ParseRelationshipType(c.literal(p))
				if !ok {
					c.unknownEnum(owner, "relationshipType", string(v))
				}
				rel.Type = v
				haveType = true
			case p.Is(rdf.NSSPDX, "relatedSpdxElement"):
				e, err := c.readElementTarget(p)
				if err != nil {
					return nil, err
				}
				rel.Related = e
				haveRelated = true
			case p.Is(rdf.NSRDFS, "comment"):
				rel.Comment = p.Value()
			default:
				c.unknownProperty(owner, p)
			}
		}
		if !haveType {
			return nil, spdx.NewError(spdx.KindMissingMandatoryField, "relationshipType")
		}
		if !haveRelated {
			return nil, spdx.NewError(spdx.KindMissingMandatoryField, "relatedSpdxElement")
		}
		return rel, nil
	})
}

func (c *readContext) readAnnotation(owner string, prop *rdf.Node) (*spdx.Annotation, error) {
	n, err := c.structNode(prop, "annotator")
	if err != nil {
		return nil, err
	}
	return memo(c, n, func(n *rdf.Node) (*spdx.Annotation, error) {
		ann := &spdx.Annotation{}
		for _, p := range n.Children {
			switch p.Local {
			case "annotator":
				ann.Annotator = p.Value()
			case "annotationDate":
				ann.Date = p.Value()
			case "annotationType":
				v, ok := spdx.ParseAnnotationType(c.literal(p))
				if !ok {
					c.unknownEnum(owner, "annotationType", string(v))
				}
				ann.Type = v
			case "comment":
				ann.Comment = p.Value()
			default:
				c.unknownProperty(owner, p)
			}
		}
		return ann, nil
	})
}

func (c *readContext) readChecksum(prop *rdf.Node) (*spdx.Checksum, error) {
	n, err := c.structNode(prop, "checksumValue")
	if err != nil {
		return nil, err
	}
	return memo(c, n, func(n *rdf.Node) (*spdx.Checksum, error) {
		cs := &spdx.Checksum{}
		for _, p := range n.Children {
			switch p.Local {
			case "algorithm":
				v, ok := spdx.ParseChecksumAlgorithm(c.literal(p))
				if !ok {
					c.unknownEnum("", "algorithm", string(v))
				}
				cs.Algorithm = v
			case "checksumValue":
				cs.Value = p.Value()
			}
		}
		if cs.Value == "" {
			return nil, spdx.NewError(spdx.KindMissingMandatoryField, "checksumValue")
		}
		return cs, nil
	})
}

func (c *readContext) readVerificationCode(prop *rdf.Node) (*spdx.VerificationCode, error) {
	n, err := c.structNode(prop, "packageVerificationCodeValue")
	if err != nil {
		return nil, err
	}
	code := &spdx.VerificationCode{}
	for _, p := range n.Children {
		switch p.Local {
		case "packageVerificationCodeValue":
			code.Value = p.Value()
		case "packageVerificationCodeExcludedFile":
			code.ExcludedFiles = append(code.ExcludedFiles, p.Value())
		}
	}
	return code, nil
}

func (c *readContext) readExternalRef(owner string, prop *rdf.Node) (*spdx.ExternalRef, error) {
	n, err := c.structNode(prop, "referenceLocator")
	if err != nil {
		return nil, err
	}
	ref := &spdx.ExternalRef{}
	for _, p := range n.Children {
		switch p.Local {
		case "referenceCategory":
			v, ok := spdx.ParseReferenceCategory(c.literal(p))
			if !ok {
				c.unknownEnum(owner, "referenceCategory", string(v))
			}
			ref.Category = v
		case "referenceType":
			ref.Type = referenceTypeName(c.literal(p))
		case "referenceLocator":
			ref.Locator = p.Value()
		case "comment":
			ref.Comment = p.Value()
		default:
			c.unknownProperty(owner, p)
		}
	}
	return ref, nil
}

// referenceTypeName reduces a reference type URI such as
// "http://spdx.org/rdf/references/purl" to its last segment.
func referenceTypeName(uri string) string {
	if i := strings.LastIndexAny(uri, "/#"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

func (c *readContext) readRange(s *spdx.Snippet, prop *rdf.Node) (*spdx.StartEndPointer, error) {
	n, err := c.structNode(prop, "startPointer")
	if err != nil {
		return nil, err
	}
	r := &spdx.StartEndPointer{}
	for _, p := range n.Children {
		switch {
		case p.Is(rdf.NSPtr, "startPointer"):
			if r.Start, err = c.readPointer(s, p); err != nil {
				return nil, err
			}
		case p.Is(rdf.NSPtr, "endPointer"):
			if r.End, err = c.readPointer(s, p); err != nil {
				return nil, err
			}
		default:
			c.unknownProperty(s.ID, p)
		}
	}
	if r.Start == nil {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, "startPointer")
	}
	if r.End == nil {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, "endPointer")
	}
	return r, nil
}

// readPointer reads a ByteOffsetPointer or LineCharPointer. A pointer
// without a reference points into the snippet's own file.
func (c *readContext) readPointer(s *spdx.Snippet, prop *rdf.Node) (spdx.SinglePointer, error) {
	n, err := c.structNode(prop, prop.Local)
	if err != nil {
		return nil, err
	}
	ref := s.FromFile
	value := -1
	var field string
	for _, p := range n.Children {
		switch {
		case p.Is(rdf.NSPtr, "reference"):
			e, err := c.readElementTarget(p)
			if err != nil {
				return nil, err
			}
			f, ok := e.(*spdx.File)
			if !ok {
				return nil, spdx.NewError(spdx.KindUnresolvedReference, e.ElementID())
			}
			ref = f
		case p.Is(rdf.NSPtr, "offset"), p.Is(rdf.NSPtr, "lineNumber"):
			field = p.Local
			v, err := strconv.Atoi(p.Value())
			if err != nil {
				c.diag(spdx.DiagEnumUnknown, spdx.SeverityError, s.ID,
					fmt.Sprintf("%s %q is not an integer", p.Local, p.Value()))
				continue
			}
			value = v
		}
	}
	kind := n.Local
	if kind != "ByteOffsetPointer" && kind != "LineCharPointer" {
		// Untyped pointer: infer the class from its value property.
		kind = "ByteOffsetPointer"
		if field == "lineNumber" {
			kind = "LineCharPointer"
		}
	}
	if kind == "LineCharPointer" {
		if value < 0 {
			return nil, spdx.NewError(spdx.KindMissingMandatoryField, "lineNumber")
		}
		return &spdx.LineCharPointer{Reference: ref, LineNumber: value}, nil
	}
	if value < 0 {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, "offset")
	}
	return &spdx.ByteOffsetPointer{Reference: ref, Offset: value}, nil
}

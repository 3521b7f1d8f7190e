package convert

import (
	"fmt"
	"strings"

	tspdx "github.com/spdx/tools-golang/spdx"
	"github.com/spdx/tools-golang/spdx/v2/common"

	"github.com/gospdx/gospdx/spdx"
)

// base is implemented by every element that embeds spdx.Element.
type base interface {
	Base() *spdx.Element
}

func (c *converter) convertReferences(src *tspdx.Document) error {
	for _, r := range src.Relationships {
		if r == nil {
			continue
		}
		if err := c.relationship(r); err != nil {
			return err
		}
	}
	for _, a := range src.Annotations {
		if a == nil {
			continue
		}
		// Document-level annotations in JSON and YAML carry no subject;
		// they annotate the document.
		owner := &c.doc.Element
		if a.AnnotationSPDXIdentifier.ElementRefID != "" || a.AnnotationSPDXIdentifier.DocumentRefID != "" {
			var err error
			if owner, err = c.owner(a.AnnotationSPDXIdentifier); err != nil {
				return err
			}
		}
		owner.Annotations = append(owner.Annotations, c.annotation(*a))
	}
	for _, f := range c.allFiles(src) {
		if f == nil || len(f.FileDependencies) == 0 {
			continue
		}
		file, err := c.resolveFile(f.FileSPDXIdentifier)
		if err != nil {
			return err
		}
		if len(file.Dependencies) > 0 {
			continue
		}
		for _, dep := range f.FileDependencies {
			d, err := c.resolveFile(common.ElementID(strings.TrimPrefix(dep, "SPDXRef-")))
			if err != nil {
				return err
			}
			file.Dependencies = append(file.Dependencies, d)
		}
	}
	return nil
}

func (c *converter) relationship(r *tspdx.Relationship) error {
	if r.Relationship == "" {
		return spdx.NewError(spdx.KindMissingMandatoryField, "relationshipType")
	}
	owner, err := c.owner(r.RefA)
	if err != nil {
		return err
	}
	related, err := c.related(r.RefB)
	if err != nil {
		return err
	}
	t, ok := spdx.ParseRelationshipType(r.Relationship)
	if !ok {
		c.diag(spdx.DiagEnumUnknown, spdx.SeverityWarning, owner.ID,
			fmt.Sprintf("unknown relationship type %q", r.Relationship))
	}
	owner.Relationships = append(owner.Relationships, &spdx.Relationship{
		Type:    t,
		Comment: r.RelationshipComment,
		Related: related,
	})
	return nil
}

// owner resolves the element a relationship or annotation belongs to.
func (c *converter) owner(ref common.DocElementID) (*spdx.Element, error) {
	if ref.DocumentRefID != "" {
		return nil, spdx.NewError(spdx.KindUnsupportedExternalDocument, docRef(ref))
	}
	id := elementID(ref.ElementRefID)
	if id == "" {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, "spdxElementId")
	}
	e, ok := c.reg.Resolve(id)
	if !ok {
		return nil, spdx.NewError(spdx.KindUnresolvedReference, id)
	}
	b, ok := e.(base)
	if !ok {
		return nil, spdx.NewError(spdx.KindUnresolvedReference, id)
	}
	return b.Base(), nil
}

// related resolves a relationship target. NONE and NOASSERTION map to the
// element sentinels.
func (c *converter) related(ref common.DocElementID) (spdx.SpdxElement, error) {
	switch {
	case strings.EqualFold(ref.SpecialID, spdx.NoneValue):
		return spdx.NoneElement, nil
	case strings.EqualFold(ref.SpecialID, spdx.NoAssertionValue):
		return spdx.NoAssertionElement, nil
	case ref.DocumentRefID != "":
		return nil, spdx.NewError(spdx.KindUnsupportedExternalDocument, docRef(ref))
	case ref.ElementRefID == "":
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, "relatedSpdxElement")
	}
	id := elementID(ref.ElementRefID)
	if e, ok := c.reg.Resolve(id); ok {
		return e, nil
	}
	return nil, spdx.NewError(spdx.KindUnresolvedReference, id)
}

func docRef(ref common.DocElementID) string {
	d := ref.DocumentRefID
	if !strings.HasPrefix(d, "DocumentRef-") {
		d = "DocumentRef-" + d
	}
	return d + ":" + elementID(ref.ElementRefID)
}

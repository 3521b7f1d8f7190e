package reader

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gospdx/gospdx/expr"
	"github.com/gospdx/gospdx/internal/license"
	"github.com/gospdx/gospdx/internal/rdf"
	"github.com/gospdx/gospdx/spdx"
)

// readLicense reads a license-valued property. The value may be a URI, a
// nested license node, or literal expression text.
func (c *readContext) readLicense(prop *rdf.Node) (spdx.AnyLicense, error) {
	t, err := c.target(prop)
	if err != nil {
		return nil, err
	}
	switch {
	case t.node != nil:
		return c.licenseFromNode(t.node)
	case t.uri != "":
		return c.licenseFromURI(t.uri)
	}
	if t.text == "" {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, prop.Local)
	}
	l, err := license.Parse(t.text, c.licenseCfg)
	if err != nil {
		c.Log(slog.LevelDebug, "license expression rejected",
			slog.String("property", prop.Local),
			slog.String("expression", t.text))
		return nil, err
	}
	return l, nil
}

// licenseFromURI resolves a license URI: the none and noassertion terms,
// a listed license under http://spdx.org/licenses/, or a LicenseRef in
// this document.
func (c *readContext) licenseFromURI(uri string) (spdx.AnyLicense, error) {
	switch uri {
	case rdf.NSSPDX + "none":
		return &spdx.NoneLicense{}, nil
	case rdf.NSSPDX + "noassertion":
		return &spdx.NoAssertionLicense{}, nil
	}
	if id, ok := strings.CutPrefix(uri, rdf.LicensesBase); ok {
		return c.listed(id), nil
	}
	ns, id := rdf.SplitURI(uri)
	if !c.isLocal(ns) || strings.HasPrefix(id, "DocumentRef-") {
		return nil, spdx.NewError(spdx.KindUnsupportedExternalDocument, uri)
	}
	if l, ok := c.lookupExtracted(id); ok {
		return l, nil
	}
	c.diag(spdx.DiagLicenseUnknown, spdx.SeverityWarning, id,
		fmt.Sprintf("license %s is referenced but not defined", id))
	return license.Build(&expr.LicenseReference{Ref: id}, c.licenseCfg.Lookup), nil
}

// listed builds a listed license id, which may carry an or-later "+".
func (c *readContext) listed(id string) spdx.AnyLicense {
	base, orLater := strings.CutSuffix(id, "+")
	if c.cfg.License.IsLicenseID != nil && !c.cfg.License.IsLicenseID(base) {
		c.diag(spdx.DiagLicenseUnknown, spdx.SeverityInfo, base,
			fmt.Sprintf("%s is not in the license list", base))
	}
	return license.Build(&expr.SimpleLicense{ID: base, OrLater: orLater}, c.licenseCfg.Lookup)
}

func (c *readContext) licenseFromNode(n *rdf.Node) (spdx.AnyLicense, error) {
	return memo(c, n, c.parseLicenseNode)
}

func (c *readContext) parseLicenseNode(n *rdf.Node) (spdx.AnyLicense, error) {
	a := rdf.Attributes(n)
	switch n.Local {
	case "ConjunctiveLicenseSet", "DisjunctiveLicenseSet":
		var members []spdx.AnyLicense
		for _, p := range n.Children {
			if !p.Is(rdf.NSSPDX, "member") {
				c.unknownProperty(a.Identifier(), p)
				continue
			}
			m, err := c.readLicense(p)
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		if len(members) == 0 {
			c.diag(spdx.DiagNodeEmpty, spdx.SeverityWarning, "", n.Name()+" has no members")
		}
		if n.Local == "ConjunctiveLicenseSet" {
			return spdx.NewConjunctive(members...), nil
		}
		return spdx.NewDisjunctive(members...), nil
	case "ExtractedLicensingInfo":
		return c.readExtracted(n), nil
	case "OrLaterOperator":
		member, err := c.operatorMember(n)
		if err != nil {
			return nil, err
		}
		return license.Build(&expr.SimpleLicense{ID: spdx.LicenseID(member), OrLater: true}, c.licenseCfg.Lookup), nil
	case "WithExceptionOperator":
		member, err := c.operatorMember(n)
		if err != nil {
			return nil, err
		}
		exc := c.exceptionID(n)
		if exc == "" {
			return nil, spdx.NewError(spdx.KindMissingMandatoryField, "licenseException")
		}
		return license.Build(&expr.With{Expr: expressionOf(member), ExceptionID: exc}, c.licenseCfg.Lookup), nil
	case "NoneLicense":
		return &spdx.NoneLicense{}, nil
	case "NoAssertionLicense":
		return &spdx.NoAssertionLicense{}, nil
	case "License", "ListedLicense":
		return c.readListedNode(n, a), nil
	case "SimpleLicensingInfo", "AnyLicenseInfo":
		info := &spdx.SimpleLicensingInfo{ID: a.Identifier()}
		c.readLicensingInfo(info, n)
		return info, nil
	}
	if a.About != "" {
		return c.licenseFromURI(a.About)
	}
	c.diag(spdx.DiagElementUnknown, spdx.SeverityWarning, "",
		fmt.Sprintf("%s is not a license class", n.Name()))
	return nil, spdx.NewError(spdx.KindUnresolvedReference, n.Name())
}

func (c *readContext) operatorMember(n *rdf.Node) (spdx.AnyLicense, error) {
	if p := n.Child("member"); p != nil {
		return c.readLicense(p)
	}
	return nil, spdx.NewError(spdx.KindMissingMandatoryField, "member")
}

// exceptionID reads the exception of a WithExceptionOperator, given either
// as a LicenseException node or as a URI.
func (c *readContext) exceptionID(n *rdf.Node) string {
	p := n.Child("licenseException")
	if p == nil {
		return ""
	}
	if res := rdf.Attributes(p).Resource; res != "" {
		return referenceTypeName(res)
	}
	for _, exc := range p.Children {
		if id := exc.Child("licenseExceptionId"); id != nil {
			return id.Value()
		}
		if about := rdf.Attributes(exc).About; about != "" {
			return referenceTypeName(about)
		}
	}
	return p.Value()
}

func expressionOf(l spdx.AnyLicense) expr.Expression {
	id := spdx.LicenseID(l)
	if expr.IsLicenseRef(id) {
		return &expr.LicenseReference{Ref: id}
	}
	return &expr.SimpleLicense{ID: id}
}

// readListedNode reads a License node. A listed id found through the
// lookup wins over the node's own fields.
func (c *readContext) readListedNode(n *rdf.Node, a rdf.Attrs) spdx.AnyLicense {
	var id string
	if p := n.Child("licenseId"); p != nil {
		id = p.Value()
	} else if rest, ok := strings.CutPrefix(a.About, rdf.LicensesBase); ok {
		id = rest
	} else {
		id = a.Identifier()
	}
	if l, ok := c.licenseCfg.Lookup(id); ok {
		return l
	}
	lic := &spdx.License{}
	lic.ID = id
	c.readLicensingInfo(&lic.SimpleLicensingInfo, n)
	for _, p := range n.Children {
		switch p.Local {
		case "licenseText":
			lic.Text = p.Value()
		case "standardLicenseHeader":
			lic.StandardHeader = p.Value()
		case "isOsiApproved":
			lic.OSIApproved, _ = strconv.ParseBool(p.Value())
		case "isFsfLibre":
			lic.FSFLibre, _ = strconv.ParseBool(p.Value())
		case "isDeprecatedLicenseId":
			lic.Deprecated, _ = strconv.ParseBool(p.Value())
		}
	}
	return lic
}

// readLicensingInfo reads the descriptive fields shared by all licenses.
func (c *readContext) readLicensingInfo(info *spdx.SimpleLicensingInfo, n *rdf.Node) {
	for _, p := range n.Children {
		switch {
		case p.Is(rdf.NSSPDX, "licenseId"):
			info.ID = p.Value()
		case p.Is(rdf.NSSPDX, "name"):
			info.Name = p.Value()
		case p.Is(rdf.NSRDFS, "comment"):
			info.Comment = p.Value()
		case p.Is(rdf.NSRDFS, "seeAlso"):
			info.SeeAlso = append(info.SeeAlso, c.literal(p))
		}
	}
}

// readExtracted reads an ExtractedLicensingInfo node once and records it
// on the document.
func (c *readContext) readExtracted(n *rdf.Node) *spdx.ExtractedLicenseInfo {
	a := rdf.Attributes(n)
	key := a.Key()
	if v, ok := c.reg.ResolveNode(key); ok && key != "" {
		if l, ok := v.(*spdx.ExtractedLicenseInfo); ok {
			return l
		}
	}
	id := a.Identifier()
	if l, ok := c.extracted[id]; ok && id != "" {
		return l
	}

	l := &spdx.ExtractedLicenseInfo{}
	l.ID = id
	c.readLicensingInfo(&l.SimpleLicensingInfo, n)
	if p := n.Child("extractedText"); p != nil {
		l.ExtractedText = p.Value()
	}
	if l.ID == "" {
		c.diag(spdx.DiagNodeEmpty, spdx.SeverityWarning, "", "extracted license without licenseId")
	} else {
		if prev, ok := c.extracted[l.ID]; ok {
			return prev
		}
		c.extracted[l.ID] = l
	}
	if id != "" {
		c.extracted[id] = l
	}
	c.extractedOrder = append(c.extractedOrder, l)
	if key != "" {
		c.reg.RegisterNode(key, spdx.AnyLicense(l))
	}
	return l
}

// lookupExtracted finds a document-local license, reading its definition
// from the graph on first use.
func (c *readContext) lookupExtracted(id string) (spdx.AnyLicense, bool) {
	if l, ok := c.extracted[id]; ok {
		return l, true
	}
	if def, ok := c.defs[id]; ok && def.Local == "ExtractedLicensingInfo" {
		return c.readExtracted(def), true
	}
	return nil, false
}

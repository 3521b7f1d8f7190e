package reader

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gospdx/gospdx/internal/rdf"
	"github.com/gospdx/gospdx/spdx"
)

// readElementTarget resolves the element a property points at.
func (c *readContext) readElementTarget(prop *rdf.Node) (spdx.SpdxElement, error) {
	t, err := c.target(prop)
	if err != nil {
		return nil, err
	}
	switch {
	case t.node != nil:
		return c.readElement(t.node)
	case t.uri != "":
		return c.resolveElementURI(t.uri)
	}
	if e, ok := isSentinelURI(t.text); ok {
		return e, nil
	}
	if t.text == "" {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, prop.Local)
	}
	return c.resolveElementURI(t.text)
}

// resolveElementURI resolves a reference to an element: first the
// registry, then a definition elsewhere in the graph, then the none and
// noassertion sentinels. References into other documents are rejected.
func (c *readContext) resolveElementURI(uri string) (spdx.SpdxElement, error) {
	ns, id := rdf.SplitURI(uri)
	local := c.isLocal(ns) && !strings.HasPrefix(id, "DocumentRef-")
	if local {
		if e, ok := c.reg.Resolve(id); ok {
			return e, nil
		}
		if def, ok := c.defs[id]; ok {
			return c.readElement(def)
		}
	}
	if e, ok := isSentinelURI(uri); ok {
		return e, nil
	}
	if !local {
		return nil, spdx.NewError(spdx.KindUnsupportedExternalDocument, uri)
	}
	return nil, spdx.NewError(spdx.KindUnresolvedReference, id)
}

// readElement returns the element defined by a typed node, reading it if
// this node has not been read before. A second node defining an
// already-registered identifier replaces the earlier element.
func (c *readContext) readElement(n *rdf.Node) (spdx.SpdxElement, error) {
	a := rdf.Attributes(n)
	id := a.Identifier()

	if a.NodeID != "" {
		if v, ok := c.reg.ResolveNode(a.Key()); ok {
			if e, ok := v.(spdx.SpdxElement); ok {
				return e, nil
			}
		}
	}
	if id != "" {
		if e, ok := c.reg.Resolve(id); ok {
			if c.source[id] == n || n.IsEmpty() {
				return e, nil
			}
			c.diag(spdx.DiagIdentifierDuplicate, spdx.SeverityWarning, id,
				fmt.Sprintf("%s redefined by a second %s", id, n.Name()))
		}
	}

	if c.TraceEnabled() {
		c.Trace("reading element", slog.String("class", n.Name()), slog.String("id", id))
	}

	switch n.Local {
	case "SpdxDocument":
		if id == "" || id == c.doc.ID {
			return c.doc, nil
		}
		return nil, spdx.NewError(spdx.KindUnsupportedExternalDocument, a.About)
	case "Package":
		return c.readPackage(n, a)
	case "File":
		return c.readFile(n, a)
	case "Snippet":
		return c.readSnippet(n, a)
	}
	c.diag(spdx.DiagElementUnknown, spdx.SeverityWarning, id,
		fmt.Sprintf("%s is not a supported element class", n.Name()))
	return &spdx.ElementStub{ID: id}, nil
}

// register records e under its identifier and blank node label before
// its properties are read.
func (c *readContext) register(e spdx.SpdxElement, n *rdf.Node, a rdf.Attrs) {
	if id := e.ElementID(); id != "" {
		c.reg.Register(id, e)
		c.source[id] = n
	}
	if a.NodeID != "" {
		c.reg.RegisterNode(a.Key(), e)
	}
}

// readElementProperty handles the properties every element has.
func (c *readContext) readElementProperty(e *spdx.Element, prop *rdf.Node) (bool, error) {
	switch {
	case prop.Is(rdf.NSRDFS, "comment"):
		e.Comment = prop.Value()
	case prop.Is(rdf.NSSPDX, "name"):
		e.Name = prop.Value()
	case prop.Is(rdf.NSSPDX, "relationship"):
		rel, err := c.readRelationship(e.ID, prop)
		if err != nil {
			return true, err
		}
		e.Relationships = append(e.Relationships, rel)
	case prop.Is(rdf.NSSPDX, "annotation"):
		ann, err := c.readAnnotation(e.ID, prop)
		if err != nil {
			return true, err
		}
		e.Annotations = append(e.Annotations, ann)
	default:
		return false, nil
	}
	return true, nil
}

// readItemProperty handles the licensing properties of packages, files
// and snippets, then the element properties.
func (c *readContext) readItemProperty(item *spdx.Item, prop *rdf.Node) (bool, error) {
	if prop.Space == rdf.NSSPDX {
		switch prop.Local {
		case "licenseConcluded":
			l, err := c.readLicense(prop)
			if err != nil {
				return true, err
			}
			item.LicenseConcluded = l
			return true, nil
		case "licenseInfoFromFiles", "licenseInfoInFile", "licenseInfoInSnippet":
			l, err := c.readLicense(prop)
			if err != nil {
				return true, err
			}
			item.LicenseInfoFromFiles = append(item.LicenseInfoFromFiles, l)
			return true, nil
		case "licenseComments":
			item.LicenseComments = prop.Value()
			return true, nil
		case "copyrightText":
			item.CopyrightText = c.literal(prop)
			return true, nil
		case "attributionText":
			item.AttributionText = append(item.AttributionText, prop.Value())
			return true, nil
		}
	}
	return c.readElementProperty(&item.Element, prop)
}

func (c *readContext) readPackage(n *rdf.Node, a rdf.Attrs) (*spdx.Package, error) {
	pkg := &spdx.Package{FilesAnalyzed: true}
	pkg.ID = a.Identifier()
	c.register(pkg, n, a)

	for _, prop := range n.Children {
		handled, err := c.readItemProperty(&pkg.Item, prop)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		if err := c.readPackageProperty(pkg, prop); err != nil {
			return nil, err
		}
	}
	if pkg.DownloadLocation == "" {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, "downloadLocation")
	}
	return pkg, nil
}

func (c *readContext) readPackageProperty(pkg *spdx.Package, prop *rdf.Node) error {
	if prop.Is(rdf.NSDOAP, "homepage") {
		pkg.HomePage = c.literal(prop)
		return nil
	}
	if prop.Space != rdf.NSSPDX {
		c.unknownProperty(pkg.ID, prop)
		return nil
	}
	switch prop.Local {
	case "versionInfo":
		pkg.Version = prop.Value()
	case "packageFileName":
		pkg.FileName = prop.Value()
	case "supplier":
		pkg.Supplier = c.literal(prop)
	case "originator":
		pkg.Originator = c.literal(prop)
	case "downloadLocation":
		pkg.DownloadLocation = c.literal(prop)
	case "filesAnalyzed":
		v, err := strconv.ParseBool(prop.Value())
		if err != nil {
			c.diag(spdx.DiagEnumUnknown, spdx.SeverityWarning, pkg.ID,
				fmt.Sprintf("filesAnalyzed %q is not a boolean", prop.Value()))
			return nil
		}
		pkg.FilesAnalyzed = v
	case "packageVerificationCode":
		code, err := c.readVerificationCode(prop)
		if err != nil {
			return err
		}
		pkg.VerificationCode = code
	case "checksum":
		cs, err := c.readChecksum(prop)
		if err != nil {
			return err
		}
		pkg.Checksums = append(pkg.Checksums, cs)
	case "sourceInfo":
		pkg.SourceInfo = prop.Value()
	case "licenseDeclared":
		l, err := c.readLicense(prop)
		if err != nil {
			return err
		}
		pkg.LicenseDeclared = l
	case "summary":
		pkg.Summary = prop.Value()
	case "description":
		pkg.Description = prop.Value()
	case "externalRef":
		ref, err := c.readExternalRef(pkg.ID, prop)
		if err != nil {
			return err
		}
		pkg.ExternalRefs = append(pkg.ExternalRefs, ref)
	case "hasFile":
		e, err := c.readElementTarget(prop)
		if err != nil {
			return err
		}
		f, ok := e.(*spdx.File)
		if !ok {
			c.diag(spdx.DiagElementUnknown, spdx.SeverityWarning, pkg.ID,
				fmt.Sprintf("hasFile refers to %s, which is not a file", e.ElementID()))
			return nil
		}
		pkg.Files = append(pkg.Files, f)
	case "primaryPackagePurpose":
		v, ok := spdx.ParsePackagePurpose(c.literal(prop))
		if !ok {
			c.unknownEnum(pkg.ID, "primaryPackagePurpose", string(v))
		}
		pkg.PrimaryPurpose = v
	case "releaseDate":
		pkg.ReleaseDate = prop.Value()
	case "builtDate":
		pkg.BuiltDate = prop.Value()
	case "validUntilDate":
		pkg.ValidUntilDate = prop.Value()
	default:
		c.unknownProperty(pkg.ID, prop)
	}
	return nil
}

func (c *readContext) readFile(n *rdf.Node, a rdf.Attrs) (*spdx.File, error) {
	f := &spdx.File{}
	f.ID = a.Identifier()
	c.register(f, n, a)

	for _, prop := range n.Children {
		handled, err := c.readItemProperty(&f.Item, prop)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		if err := c.readFileProperty(f, prop); err != nil {
			return nil, err
		}
	}
	if f.FileName == "" {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, "fileName")
	}
	return f, nil
}

func (c *readContext) readFileProperty(f *spdx.File, prop *rdf.Node) error {
	if prop.Space != rdf.NSSPDX {
		c.unknownProperty(f.ID, prop)
		return nil
	}
	switch prop.Local {
	case "fileName":
		f.FileName = prop.Value()
	case "fileType":
		v, ok := spdx.ParseFileType(c.literal(prop))
		if !ok {
			c.unknownEnum(f.ID, "fileType", string(v))
		}
		f.FileTypes = append(f.FileTypes, v)
	case "checksum":
		cs, err := c.readChecksum(prop)
		if err != nil {
			return err
		}
		f.Checksums = append(f.Checksums, cs)
	case "noticeText":
		f.NoticeText = c.literal(prop)
	case "fileContributor":
		f.Contributors = append(f.Contributors, prop.Value())
	case "fileDependency":
		e, err := c.readElementTarget(prop)
		if err != nil {
			return err
		}
		dep, ok := e.(*spdx.File)
		if !ok {
			c.diag(spdx.DiagElementUnknown, spdx.SeverityWarning, f.ID,
				fmt.Sprintf("fileDependency refers to %s, which is not a file", e.ElementID()))
			return nil
		}
		f.Dependencies = append(f.Dependencies, dep)
	default:
		c.unknownProperty(f.ID, prop)
	}
	return nil
}

func (c *readContext) readSnippet(n *rdf.Node, a rdf.Attrs) (*spdx.Snippet, error) {
	s := &spdx.Snippet{}
	s.ID = a.Identifier()
	c.register(s, n, a)

	var ranges []*rdf.Node
	for _, prop := range n.Children {
		handled, err := c.readItemProperty(&s.Item, prop)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch {
		case prop.Is(rdf.NSSPDX, "snippetFromFile"):
			e, err := c.readElementTarget(prop)
			if err != nil {
				return nil, err
			}
			f, ok := e.(*spdx.File)
			if !ok {
				return nil, spdx.NewError(spdx.KindMissingMandatoryField, "snippetFromFile")
			}
			s.FromFile = f
		case prop.Is(rdf.NSSPDX, "range"):
			// Ranges may name their file implicitly, so wait for
			// snippetFromFile.
			ranges = append(ranges, prop)
		default:
			c.unknownProperty(s.ID, prop)
		}
	}
	if s.FromFile == nil {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, "snippetFromFile")
	}
	for _, prop := range ranges {
		r, err := c.readRange(s, prop)
		if err != nil {
			return nil, err
		}
		s.Ranges = append(s.Ranges, r)
	}
	return s, nil
}

func (c *readContext) unknownEnum(element, property, value string) {
	c.diag(spdx.DiagEnumUnknown, spdx.SeverityWarning, element,
		fmt.Sprintf("unknown %s value %q", property, value))
}

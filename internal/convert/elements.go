package convert

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	tspdx "github.com/spdx/tools-golang/spdx"
	"github.com/spdx/tools-golang/spdx/v2/common"

	"github.com/gospdx/gospdx/spdx"
)

// convertElements converts files first, then packages, then snippets, so
// that package file lists and snippet file references find their targets
// already registered.
func (c *converter) convertElements(src *tspdx.Document) error {
	for _, f := range src.Files {
		if _, err := c.file(f); err != nil {
			return err
		}
	}
	for _, p := range src.Packages {
		if p == nil {
			continue
		}
		for _, f := range p.Files {
			if _, err := c.file(f); err != nil {
				return err
			}
		}
	}
	for _, p := range src.Packages {
		if p == nil {
			continue
		}
		if err := c.pkg(p); err != nil {
			return err
		}
	}
	for i := range src.Snippets {
		if err := c.snippet(&src.Snippets[i]); err != nil {
			return err
		}
	}
	// Snippets nested in files are keyed by id; visit them in id order so
	// conversion is deterministic. Ones already seen at document level are
	// the same snippet.
	for _, f := range c.allFiles(src) {
		if f == nil {
			continue
		}
		ids := slices.Sorted(maps.Keys(f.Snippets))
		for _, sid := range ids {
			s := f.Snippets[sid]
			if s == nil {
				continue
			}
			if _, ok := c.reg.Resolve(elementID(s.SnippetSPDXIdentifier)); ok {
				continue
			}
			if err := c.snippet(s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *converter) allFiles(src *tspdx.Document) []*tspdx.File {
	files := append([]*tspdx.File(nil), src.Files...)
	for _, p := range src.Packages {
		if p != nil {
			files = append(files, p.Files...)
		}
	}
	return files
}

// register records e under id. A second definition of an id replaces the
// first and is reported.
func (c *converter) register(id string, e spdx.SpdxElement) {
	if c.reg.Register(id, e) {
		c.diag(spdx.DiagIdentifierDuplicate, spdx.SeverityWarning, id,
			"element defined more than once; keeping the last definition")
	}
}

func (c *converter) file(src *tspdx.File) (*spdx.File, error) {
	if src == nil {
		return nil, nil
	}
	id := elementID(src.FileSPDXIdentifier)
	// The same file may be listed at document level and inside a package.
	if e, ok := c.reg.Resolve(id); ok {
		if f, ok := e.(*spdx.File); ok {
			return f, nil
		}
	}
	if src.FileName == "" {
		return nil, spdx.NewError(spdx.KindMissingMandatoryField, "fileName")
	}
	f := &spdx.File{
		FileName:     src.FileName,
		Checksums:    c.checksums(src.Checksums),
		NoticeText:   src.FileNotice,
		Contributors: src.FileContributors,
	}
	f.ID = id
	f.Name = src.FileName
	f.Comment = src.FileComment
	f.LicenseComments = src.LicenseComments
	f.CopyrightText = src.FileCopyrightText
	f.AttributionText = src.FileAttributionTexts
	for _, t := range src.FileTypes {
		ft, ok := spdx.ParseFileType(t)
		if !ok {
			c.diag(spdx.DiagEnumUnknown, spdx.SeverityWarning, id, fmt.Sprintf("unknown file type %q", t))
		}
		f.FileTypes = append(f.FileTypes, ft)
	}
	var err error
	if f.LicenseConcluded, err = c.license(src.LicenseConcluded); err != nil {
		return nil, err
	}
	if f.LicenseInfoFromFiles, err = c.licenses(src.LicenseInfoInFiles); err != nil {
		return nil, err
	}
	for _, a := range src.Annotations {
		f.Annotations = append(f.Annotations, c.annotation(a))
	}
	c.register(id, f)
	c.Trace("file converted", slog.String("id", id))
	return f, nil
}

func (c *converter) pkg(src *tspdx.Package) error {
	id := elementID(src.PackageSPDXIdentifier)
	if src.PackageDownloadLocation == "" {
		return spdx.NewError(spdx.KindMissingMandatoryField, "downloadLocation")
	}
	p := &spdx.Package{
		Version:          src.PackageVersion,
		FileName:         src.PackageFileName,
		DownloadLocation: src.PackageDownloadLocation,
		// Absent means analyzed.
		FilesAnalyzed:  src.FilesAnalyzed || !src.IsFilesAnalyzedTagPresent,
		Checksums:      c.checksums(src.PackageChecksums),
		HomePage:       src.PackageHomePage,
		SourceInfo:     src.PackageSourceInfo,
		Summary:        src.PackageSummary,
		Description:    src.PackageDescription,
		ReleaseDate:    src.ReleaseDate,
		BuiltDate:      src.BuiltDate,
		ValidUntilDate: src.ValidUntilDate,
	}
	p.ID = id
	p.Name = src.PackageName
	p.Comment = src.PackageComment
	p.LicenseComments = src.PackageLicenseComments
	p.CopyrightText = src.PackageCopyrightText
	p.AttributionText = src.PackageAttributionTexts
	if s := src.PackageSupplier; s != nil {
		p.Supplier = agent(s.SupplierType, s.Supplier)
	}
	if o := src.PackageOriginator; o != nil {
		p.Originator = agent(o.OriginatorType, o.Originator)
	}
	if vc := src.PackageVerificationCode; vc != nil && vc.Value != "" {
		p.VerificationCode = &spdx.VerificationCode{Value: vc.Value, ExcludedFiles: vc.ExcludedFiles}
	}
	if src.PrimaryPackagePurpose != "" {
		purpose, ok := spdx.ParsePackagePurpose(src.PrimaryPackagePurpose)
		if !ok {
			c.diag(spdx.DiagEnumUnknown, spdx.SeverityWarning, id,
				fmt.Sprintf("unknown package purpose %q", src.PrimaryPackagePurpose))
		}
		p.PrimaryPurpose = purpose
	}
	for _, ref := range src.PackageExternalReferences {
		if ref == nil {
			continue
		}
		cat, ok := spdx.ParseReferenceCategory(ref.Category)
		if !ok {
			c.diag(spdx.DiagEnumUnknown, spdx.SeverityWarning, id,
				fmt.Sprintf("unknown reference category %q", ref.Category))
		}
		p.ExternalRefs = append(p.ExternalRefs, &spdx.ExternalRef{
			Category: cat,
			Type:     ref.RefType,
			Locator:  ref.Locator,
			Comment:  ref.ExternalRefComment,
		})
	}

	var err error
	if p.LicenseConcluded, err = c.license(src.PackageLicenseConcluded); err != nil {
		return err
	}
	if p.LicenseDeclared, err = c.license(src.PackageLicenseDeclared); err != nil {
		return err
	}
	if p.LicenseInfoFromFiles, err = c.licenses(src.PackageLicenseInfoFromFiles); err != nil {
		return err
	}
	for _, f := range src.Files {
		if f == nil {
			continue
		}
		if e, ok := c.reg.Resolve(elementID(f.FileSPDXIdentifier)); ok {
			if file, ok := e.(*spdx.File); ok {
				p.Files = append(p.Files, file)
			}
		}
	}
	for _, a := range src.Annotations {
		p.Annotations = append(p.Annotations, c.annotation(a))
	}
	c.register(id, p)
	c.Trace("package converted", slog.String("id", id))
	return nil
}

func (c *converter) snippet(src *tspdx.Snippet) error {
	id := elementID(src.SnippetSPDXIdentifier)
	if src.SnippetFromFileSPDXIdentifier == "" {
		return spdx.NewError(spdx.KindMissingMandatoryField, "snippetFromFile")
	}
	from, err := c.resolveFile(src.SnippetFromFileSPDXIdentifier)
	if err != nil {
		return err
	}
	s := &spdx.Snippet{FromFile: from}
	s.ID = id
	s.Name = src.SnippetName
	s.Comment = src.SnippetComment
	s.LicenseComments = src.SnippetLicenseComments
	s.CopyrightText = src.SnippetCopyrightText
	s.AttributionText = src.SnippetAttributionTexts
	if s.LicenseConcluded, err = c.license(src.SnippetLicenseConcluded); err != nil {
		return err
	}
	if s.LicenseInfoFromFiles, err = c.licenses(src.LicenseInfoInSnippet); err != nil {
		return err
	}
	for _, r := range src.Ranges {
		rng, err := c.snippetRange(r, from)
		if err != nil {
			return err
		}
		s.Ranges = append(s.Ranges, rng)
	}
	c.register(id, s)
	return nil
}

func (c *converter) resolveFile(id common.ElementID) (*spdx.File, error) {
	full := elementID(id)
	if e, ok := c.reg.Resolve(full); ok {
		if f, ok := e.(*spdx.File); ok {
			return f, nil
		}
	}
	return nil, spdx.NewError(spdx.KindUnresolvedReference, full)
}

// snippetRange converts a range. A pointer carrying a line number and no
// offset is a line pointer; anything else is a byte offset. Pointers that
// name no file refer to the snippet's file.
func (c *converter) snippetRange(r common.SnippetRange, from *spdx.File) (*spdx.StartEndPointer, error) {
	start, err := c.pointer(r.StartPointer, from)
	if err != nil {
		return nil, err
	}
	end, err := c.pointer(r.EndPointer, from)
	if err != nil {
		return nil, err
	}
	return &spdx.StartEndPointer{Start: start, End: end}, nil
}

func (c *converter) pointer(p common.SnippetRangePointer, from *spdx.File) (spdx.SinglePointer, error) {
	ref := from
	if p.FileSPDXIdentifier != "" {
		f, err := c.resolveFile(p.FileSPDXIdentifier)
		if err != nil {
			return nil, err
		}
		ref = f
	}
	if p.LineNumber > 0 && p.Offset == 0 {
		return &spdx.LineCharPointer{Reference: ref, LineNumber: p.LineNumber}, nil
	}
	return &spdx.ByteOffsetPointer{Reference: ref, Offset: p.Offset}, nil
}

func (c *converter) annotation(a tspdx.Annotation) *spdx.Annotation {
	t, ok := spdx.ParseAnnotationType(a.AnnotationType)
	if !ok {
		c.diag(spdx.DiagEnumUnknown, spdx.SeverityWarning, "",
			fmt.Sprintf("unknown annotation type %q", a.AnnotationType))
	}
	return &spdx.Annotation{
		Annotator: agent(a.Annotator.AnnotatorType, a.Annotator.Annotator),
		Date:      a.AnnotationDate,
		Type:      t,
		Comment:   a.AnnotationComment,
	}
}

// agent renders a typed agent the way the tag-value form spells it,
// "Organization: ACME". Untyped values such as NOASSERTION stay bare.
func agent(kind, name string) string {
	if kind == "" || strings.EqualFold(name, spdx.NoAssertionValue) {
		return name
	}
	return kind + ": " + name
}

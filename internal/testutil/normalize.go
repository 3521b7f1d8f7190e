package testutil

import (
	"fmt"
	"strings"

	"github.com/gospdx/gospdx/spdx"
)

// DocumentSummary is a flattened, serialization-independent view of a
// document, used to compare readers against each other and against
// fixtures.
type DocumentSummary struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Namespace         string            `json:"namespace"`
	SpecVersion       string            `json:"specVersion"`
	DataLicense       string            `json:"dataLicense"`
	Creators          []string          `json:"creators,omitempty"`
	ExtractedLicenses []string          `json:"extractedLicenses,omitempty"`
	Packages          []PackageSummary  `json:"packages,omitempty"`
	Files             []FileSummary     `json:"files,omitempty"`
	Snippets          []SnippetSummary  `json:"snippets,omitempty"`
	Relationships     []string          `json:"relationships,omitempty"`
	Annotations       []string          `json:"annotations,omitempty"`
}

// PackageSummary is the summary of one package.
type PackageSummary struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Version          string   `json:"version,omitempty"`
	DownloadLocation string   `json:"downloadLocation"`
	LicenseConcluded string   `json:"licenseConcluded,omitempty"`
	LicenseDeclared  string   `json:"licenseDeclared,omitempty"`
	Checksums        []string `json:"checksums,omitempty"`
	Files            []string `json:"files,omitempty"`
}

// FileSummary is the summary of one file.
type FileSummary struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	LicenseConcluded string   `json:"licenseConcluded,omitempty"`
	Checksums        []string `json:"checksums,omitempty"`
}

// SnippetSummary is the summary of one snippet.
type SnippetSummary struct {
	ID       string   `json:"id"`
	FromFile string   `json:"fromFile"`
	Ranges   []string `json:"ranges,omitempty"`
}

// Summarize flattens doc. Relationships render as "FROM TYPE TO" in
// document order: the document's own first, then each package, file and
// snippet.
func Summarize(doc *spdx.Document) *DocumentSummary {
	s := &DocumentSummary{
		ID:          doc.ID,
		Name:        doc.Name,
		Namespace:   doc.Namespace,
		SpecVersion: doc.SpecVersion,
		DataLicense: licenseString(doc.DataLicense),
	}
	if doc.CreationInfo != nil {
		s.Creators = doc.CreationInfo.Creators
	}
	for _, l := range doc.ExtractedLicenses {
		s.ExtractedLicenses = append(s.ExtractedLicenses, l.ID)
	}
	addRels := func(e *spdx.Element) {
		for _, r := range e.Relationships {
			s.Relationships = append(s.Relationships, NormalizeRelationship(e.ID, r))
		}
		for _, a := range e.Annotations {
			s.Annotations = append(s.Annotations, e.ID+" "+string(a.Type)+": "+a.Comment)
		}
	}
	addRels(&doc.Element)
	for _, p := range doc.Packages {
		ps := PackageSummary{
			ID:               p.ID,
			Name:             p.Name,
			Version:          p.Version,
			DownloadLocation: p.DownloadLocation,
			LicenseConcluded: licenseString(p.LicenseConcluded),
			LicenseDeclared:  licenseString(p.LicenseDeclared),
			Checksums:        checksumStrings(p.Checksums),
		}
		for _, f := range p.Files {
			ps.Files = append(ps.Files, f.ID)
		}
		s.Packages = append(s.Packages, ps)
		addRels(&p.Element)
	}
	for _, f := range doc.Files {
		s.Files = append(s.Files, FileSummary{
			ID:               f.ID,
			Name:             f.FileName,
			LicenseConcluded: licenseString(f.LicenseConcluded),
			Checksums:        checksumStrings(f.Checksums),
		})
		addRels(&f.Element)
	}
	for _, sn := range doc.Snippets {
		ss := SnippetSummary{ID: sn.ID}
		if sn.FromFile != nil {
			ss.FromFile = sn.FromFile.ID
		}
		for _, r := range sn.Ranges {
			ss.Ranges = append(ss.Ranges, NormalizeRange(r))
		}
		s.Snippets = append(s.Snippets, ss)
		addRels(&sn.Element)
	}
	return s
}

// NormalizeRelationship renders r as "FROM TYPE TO".
func NormalizeRelationship(from string, r *spdx.Relationship) string {
	to := "<nil>"
	if r.Related != nil {
		to = r.Related.ElementID()
	}
	return fmt.Sprintf("%s %s %s", from, r.Type, to)
}

// NormalizeRange renders a snippet range as "bytes 10-20" or "lines 3-5".
func NormalizeRange(r *spdx.StartEndPointer) string {
	kind, start := pointerValue(r.Start)
	_, end := pointerValue(r.End)
	return fmt.Sprintf("%s %d-%d", kind, start, end)
}

func pointerValue(p spdx.SinglePointer) (string, int) {
	switch v := p.(type) {
	case *spdx.ByteOffsetPointer:
		return "bytes", v.Offset
	case *spdx.LineCharPointer:
		return "lines", v.LineNumber
	}
	return "none", 0
}

func licenseString(l spdx.AnyLicense) string {
	if l == nil {
		return ""
	}
	return l.String()
}

func checksumStrings(cs []*spdx.Checksum) []string {
	var out []string
	for _, c := range cs {
		out = append(out, string(c.Algorithm)+":"+strings.ToLower(c.Value))
	}
	return out
}

package main

import (
	"fmt"

	"github.com/gospdx/gospdx"
	"github.com/gospdx/gospdx/spdx"
)

// DocumentJSON is the JSON form of one parsed document.
type DocumentJSON struct {
	Path              string             `json:"path"`
	Format            string             `json:"format"`
	Error             string             `json:"error,omitempty"`
	ID                string             `json:"spdxId,omitempty"`
	Name              string             `json:"name,omitempty"`
	SpecVersion       string             `json:"specVersion,omitempty"`
	Namespace         string             `json:"namespace,omitempty"`
	DataLicense       string             `json:"dataLicense,omitempty"`
	Created           string             `json:"created,omitempty"`
	Creators          []string           `json:"creators,omitempty"`
	Described         []string           `json:"describes,omitempty"`
	ExtractedLicenses []string           `json:"extractedLicenses,omitempty"`
	Packages          []PackageJSON      `json:"packages,omitempty"`
	Files             []FileJSON         `json:"files,omitempty"`
	Snippets          []SnippetJSON      `json:"snippets,omitempty"`
	Relationships     []RelationshipJSON `json:"relationships,omitempty"`
	Diagnostics       []DiagnosticJSON   `json:"diagnostics,omitempty"`
}

// PackageJSON holds the summary fields of a package.
type PackageJSON struct {
	ID               string   `json:"spdxId"`
	Name             string   `json:"name"`
	Version          string   `json:"version,omitempty"`
	DownloadLocation string   `json:"downloadLocation"`
	LicenseConcluded string   `json:"licenseConcluded,omitempty"`
	LicenseDeclared  string   `json:"licenseDeclared,omitempty"`
	Files            []string `json:"files,omitempty"`
}

// FileJSON holds the summary fields of a file.
type FileJSON struct {
	ID                 string         `json:"spdxId"`
	Name               string         `json:"fileName"`
	LicenseConcluded   string         `json:"licenseConcluded,omitempty"`
	LicenseInfoInFiles []string       `json:"licenseInfoInFiles,omitempty"`
	Checksums          []ChecksumJSON `json:"checksums,omitempty"`
	Dependencies       []string       `json:"dependencies,omitempty"`
}

// ChecksumJSON is an algorithm/value pair.
type ChecksumJSON struct {
	Algorithm string `json:"algorithm"`
	Value     string `json:"value"`
}

// SnippetJSON holds the summary fields of a snippet.
type SnippetJSON struct {
	ID               string   `json:"spdxId"`
	Name             string   `json:"name,omitempty"`
	File             string   `json:"snippetFromFile"`
	LicenseConcluded string   `json:"licenseConcluded,omitempty"`
	Ranges           []string `json:"ranges,omitempty"`
}

// RelationshipJSON is one relationship edge.
type RelationshipJSON struct {
	From    string `json:"spdxElementId"`
	Type    string `json:"relationshipType"`
	To      string `json:"relatedSpdxElement"`
	Comment string `json:"comment,omitempty"`
}

// DiagnosticJSON holds a read diagnostic.
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	Element  string `json:"element,omitempty"`
	Message  string `json:"message"`
}

func documentJSON(path string, doc *gospdx.Document) DocumentJSON {
	out := DocumentJSON{
		Path:        path,
		Format:      gospdx.FormatOf(path).String(),
		ID:          doc.ID,
		Name:        doc.Name,
		SpecVersion: doc.SpecVersion,
		Namespace:   doc.Namespace,
		DataLicense: licenseString(doc.DataLicense),
	}
	if ci := doc.CreationInfo; ci != nil {
		out.Created = ci.Created
		out.Creators = ci.Creators
	}
	for _, e := range doc.DescribedElements() {
		out.Described = append(out.Described, e.ElementID())
	}
	for _, l := range doc.ExtractedLicenses {
		out.ExtractedLicenses = append(out.ExtractedLicenses, l.ID)
	}

	for _, p := range doc.Packages {
		pj := PackageJSON{
			ID:               p.ID,
			Name:             p.Name,
			Version:          p.Version,
			DownloadLocation: p.DownloadLocation,
			LicenseConcluded: licenseString(p.LicenseConcluded),
			LicenseDeclared:  licenseString(p.LicenseDeclared),
		}
		for _, f := range p.Files {
			pj.Files = append(pj.Files, f.ID)
		}
		out.Packages = append(out.Packages, pj)
	}

	for _, f := range doc.Files {
		fj := FileJSON{
			ID:               f.ID,
			Name:             f.FileName,
			LicenseConcluded: licenseString(f.LicenseConcluded),
		}
		for _, l := range f.LicenseInfoFromFiles {
			fj.LicenseInfoInFiles = append(fj.LicenseInfoInFiles, licenseString(l))
		}
		for _, c := range f.Checksums {
			fj.Checksums = append(fj.Checksums, ChecksumJSON{Algorithm: string(c.Algorithm), Value: c.Value})
		}
		for _, d := range f.Dependencies {
			fj.Dependencies = append(fj.Dependencies, d.ID)
		}
		out.Files = append(out.Files, fj)
	}

	for _, s := range doc.Snippets {
		sj := SnippetJSON{
			ID:               s.ID,
			Name:             s.Name,
			LicenseConcluded: licenseString(s.LicenseConcluded),
		}
		if s.FromFile != nil {
			sj.File = s.FromFile.ID
		}
		for _, r := range s.Ranges {
			sj.Ranges = append(sj.Ranges, rangeString(r))
		}
		out.Snippets = append(out.Snippets, sj)
	}

	out.Relationships = relationshipsJSON(doc)
	for _, d := range doc.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Element:  d.Element,
			Message:  d.Message,
		})
	}
	return out
}

// relationshipsJSON lists every relationship in the document, grouped by
// owner: the document first, then packages, files and snippets.
func relationshipsJSON(doc *gospdx.Document) []RelationshipJSON {
	var out []RelationshipJSON
	add := func(e *spdx.Element) {
		for _, r := range e.Relationships {
			rj := RelationshipJSON{From: e.ID, Type: string(r.Type), Comment: r.Comment}
			if r.Related != nil {
				rj.To = r.Related.ElementID()
			}
			out = append(out, rj)
		}
	}
	add(&doc.Element)
	for _, p := range doc.Packages {
		add(&p.Element)
	}
	for _, f := range doc.Files {
		add(&f.Element)
	}
	for _, s := range doc.Snippets {
		add(&s.Element)
	}
	return out
}

func licenseString(l gospdx.AnyLicense) string {
	if l == nil {
		return ""
	}
	return l.String()
}

// rangeString renders a snippet range as "bytes 310-420" or "lines 5-23".
func rangeString(r *spdx.StartEndPointer) string {
	switch start := r.Start.(type) {
	case *spdx.ByteOffsetPointer:
		if end, ok := r.End.(*spdx.ByteOffsetPointer); ok {
			return fmt.Sprintf("bytes %d-%d", start.Offset, end.Offset)
		}
	case *spdx.LineCharPointer:
		if end, ok := r.End.(*spdx.LineCharPointer); ok {
			return fmt.Sprintf("lines %d-%d", start.LineNumber, end.LineNumber)
		}
	}
	return "mixed range"
}

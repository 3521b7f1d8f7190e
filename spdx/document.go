// Package spdx defines the in-memory SPDX document and license object model
// produced by the gospdx readers.
//
// Elements reference each other through shared pointers: a Relationship
// whose target is a File already read elsewhere in the document holds that
// same *File, never a copy.
package spdx

// SpdxElement is implemented by every element that can be the target of a
// relationship: *Document, *Package, *File, *Snippet, *ElementStub and the
// None/NoAssertion element sentinels.
type SpdxElement interface {
	ElementID() string
	spdxElement()
}

// Element holds the fields shared by all SPDX elements.
type Element struct {
	ID            string
	Name          string
	Comment       string
	Annotations   []*Annotation
	Relationships []*Relationship
}

// ElementID returns the element's SPDX identifier.
func (e *Element) ElementID() string { return e.ID }
func (*Element) spdxElement()        {}

// Base returns the shared element fields.
func (e *Element) Base() *Element { return e }

// Item adds the licensing fields shared by packages, files and snippets.
type Item struct {
	Element
	LicenseConcluded     AnyLicense
	LicenseInfoFromFiles []AnyLicense
	LicenseComments      string
	CopyrightText        string
	AttributionText      []string
}

// Document is an SPDX document.
type Document struct {
	Element
	SpecVersion          string
	DataLicense          AnyLicense
	Namespace            string
	CreationInfo         *CreationInfo
	ExternalDocumentRefs []*ExternalDocumentRef
	ExtractedLicenses    []*ExtractedLicenseInfo
	Packages             []*Package
	Files                []*File
	Snippets             []*Snippet

	// Diagnostics holds non-fatal observations made while reading.
	Diagnostics []Diagnostic
}

// FindElement returns the package, file, snippet or the document itself
// with the given identifier, or nil.
func (d *Document) FindElement(id string) SpdxElement {
	if id == d.ID {
		return d
	}
	for _, p := range d.Packages {
		if p.ID == id {
			return p
		}
	}
	for _, f := range d.Files {
		if f.ID == id {
			return f
		}
	}
	for _, s := range d.Snippets {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// DescribedElements returns the targets of the document's DESCRIBES
// relationships, in declaration order.
func (d *Document) DescribedElements() []SpdxElement {
	var out []SpdxElement
	for _, r := range d.Relationships {
		if r.Type == RelationshipDescribes && r.Related != nil {
			out = append(out, r.Related)
		}
	}
	return out
}

// ExtractedLicense returns the document-local license with the given id.
func (d *Document) ExtractedLicense(id string) *ExtractedLicenseInfo {
	for _, l := range d.ExtractedLicenses {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// CreationInfo records who created the document and when.
type CreationInfo struct {
	Created            string
	Creators           []string
	LicenseListVersion string
	Comment            string
}

// ExternalDocumentRef names another SPDX document this one may reference.
// References into it are recorded but never resolved.
type ExternalDocumentRef struct {
	ID          string
	DocumentURI string
	Checksum    *Checksum
}

// Checksum is an algorithm/value pair.
type Checksum struct {
	Algorithm ChecksumAlgorithm
	Value     string
}

// Annotation is a comment attached to an element by a person or tool.
type Annotation struct {
	Annotator string
	Date      string
	Type      AnnotationType
	Comment   string
}

// Relationship is a typed edge from the owning element to Related.
type Relationship struct {
	Type    RelationshipType
	Comment string
	Related SpdxElement
}

// ElementStub stands in for an element known only by identifier.
type ElementStub struct {
	ID string
}

func (s *ElementStub) ElementID() string { return s.ID }
func (*ElementStub) spdxElement()        {}

// noneElement and noAssertionElement are the relationship-target sentinels.
type noneElement struct{}

func (noneElement) ElementID() string { return NoneValue }
func (noneElement) spdxElement()      {}

type noAssertionElement struct{}

func (noAssertionElement) ElementID() string { return NoAssertionValue }
func (noAssertionElement) spdxElement()      {}

// Relationship target sentinels.
var (
	NoneElement        SpdxElement = noneElement{}
	NoAssertionElement SpdxElement = noAssertionElement{}
)

// Package is an SPDX package.
type Package struct {
	Item
	Version          string
	FileName         string
	Supplier         string
	Originator       string
	DownloadLocation string
	FilesAnalyzed    bool
	VerificationCode *VerificationCode
	Checksums        []*Checksum
	HomePage         string
	SourceInfo       string
	LicenseDeclared  AnyLicense
	Summary          string
	Description      string
	ExternalRefs     []*ExternalRef
	Files            []*File
	PrimaryPurpose   PackagePurpose
	ReleaseDate      string
	BuiltDate        string
	ValidUntilDate   string
}

// VerificationCode is a package verification code and the files excluded
// from its computation.
type VerificationCode struct {
	Value         string
	ExcludedFiles []string
}

// ExternalRef is a reference from a package to an external resource such
// as a package manager coordinate or a security advisory.
type ExternalRef struct {
	Category ReferenceCategory
	Type     string
	Locator  string
	Comment  string
}

// File is an SPDX file.
type File struct {
	Item
	FileName     string
	FileTypes    []FileType
	Checksums    []*Checksum
	NoticeText   string
	Contributors []string
	Dependencies []*File
}

// Snippet is a byte or line range within a File.
type Snippet struct {
	Item
	FromFile *File
	Ranges   []*StartEndPointer
}

// StartEndPointer is a range between two pointers into the same file.
type StartEndPointer struct {
	Start SinglePointer
	End   SinglePointer
}

// SinglePointer is a position within a file: *ByteOffsetPointer or
// *LineCharPointer.
type SinglePointer interface {
	File() *File
	singlePointer()
}

// ByteOffsetPointer is a zero-based byte offset into Reference.
type ByteOffsetPointer struct {
	Reference *File
	Offset    int
}

func (p *ByteOffsetPointer) File() *File  { return p.Reference }
func (*ByteOffsetPointer) singlePointer() {}

// LineCharPointer is a one-based line number within Reference.
type LineCharPointer struct {
	Reference  *File
	LineNumber int
}

func (p *LineCharPointer) File() *File  { return p.Reference }
func (*LineCharPointer) singlePointer() {}

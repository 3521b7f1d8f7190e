package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gospdx/gospdx"
	"github.com/gospdx/gospdx/internal/testutil"
)

// summarize flattens doc for comparison. Package file lists are dropped:
// only RDF and tag-value carry them inline, the other formats express
// containment through relationships.
func summarize(doc *gospdx.Document) *testutil.DocumentSummary {
	s := testutil.Summarize(doc)
	for i := range s.Packages {
		s.Packages[i].Files = nil
	}
	return s
}

// TestFormatsAgree compares each fixture against the JSON reading.
func TestFormatsAgree(t *testing.T) {
	want := summarize(getDocument(t, gospdx.FormatJSON))

	for _, format := range formats {
		if format == gospdx.FormatJSON {
			continue
		}
		t.Run(format.String(), func(t *testing.T) {
			got := summarize(getDocument(t, format))

			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Name, got.Name)
			assert.Equal(t, want.Namespace, got.Namespace)
			assert.Equal(t, want.SpecVersion, got.SpecVersion)
			assert.Equal(t, want.DataLicense, got.DataLicense)
			assert.ElementsMatch(t, want.Creators, got.Creators)
			assert.ElementsMatch(t, want.ExtractedLicenses, got.ExtractedLicenses)
			assert.ElementsMatch(t, want.Packages, got.Packages)
			assert.ElementsMatch(t, want.Files, got.Files)
			assert.ElementsMatch(t, want.Snippets, got.Snippets)
			assert.ElementsMatch(t, want.Relationships, got.Relationships)
		})
	}
}

// DocumentTestCase pins header fields every format must produce.
type DocumentTestCase struct {
	Field string
	Get   func(*gospdx.Document) string
	Want  string
}

var documentTests = []DocumentTestCase{
	{"id", func(d *gospdx.Document) string { return d.ID }, "SPDXRef-DOCUMENT"},
	{"name", func(d *gospdx.Document) string { return d.Name }, "example"},
	{"specVersion", func(d *gospdx.Document) string { return d.SpecVersion }, "SPDX-2.3"},
	{"dataLicense", func(d *gospdx.Document) string { return d.DataLicense.String() }, "CC0-1.0"},
	{"created", func(d *gospdx.Document) string { return d.CreationInfo.Created }, "2024-01-02T03:04:05Z"},
	{"licenseListVersion", func(d *gospdx.Document) string { return d.CreationInfo.LicenseListVersion }, "3.21"},
}

func TestDocumentFields(t *testing.T) {
	for _, format := range formats {
		doc := getDocument(t, format)
		for _, tc := range documentTests {
			t.Run(format.String()+"/"+tc.Field, func(t *testing.T) {
				assert.Equal(t, tc.Want, tc.Get(doc))
			})
		}
	}
}

func TestSnippetRanges(t *testing.T) {
	for _, format := range formats {
		t.Run(format.String(), func(t *testing.T) {
			doc := getDocument(t, format)
			main := getFile(t, doc, "SPDXRef-Main")

			if assert.Len(t, doc.Snippets, 1) {
				sn := doc.Snippets[0]
				assert.Same(t, main, sn.FromFile)
				var ranges []string
				for _, r := range sn.Ranges {
					assert.Same(t, main, r.Start.File())
					assert.Same(t, main, r.End.File())
					ranges = append(ranges, testutil.NormalizeRange(r))
				}
				assert.ElementsMatch(t, []string{"bytes 310-420", "lines 5-23"}, ranges)
			}
		})
	}
}

func TestNoErrorDiagnostics(t *testing.T) {
	for _, format := range formats {
		doc := getDocument(t, format)
		for _, d := range doc.Diagnostics {
			assert.False(t, d.Severity.AtLeast(gospdx.SeverityError), "%s: %s", format, d)
		}
	}
}

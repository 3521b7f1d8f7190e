// Package integration provides integration tests against the SPDX document
// fixtures.
//
// These tests read every document in testdata/documents/ through the public
// API and make assertions against the resulting model. The fixtures
// describe the same document in each serialization, so most assertions
// run once per format and must agree.
//
// # Adding Test Cases
//
//  1. Change all four fixtures together: example.rdf, example.spdx.json,
//     example.spdx.yaml and example.spdx (tag-value)
//  2. Add the assertion to the file covering the concern
//
// # File Organization
//
//   - corpus_test.go: Shared infrastructure and basic load test
//   - formats_test.go: Cross-format agreement
//   - licenses_test.go: License fields and shared license objects
//   - relationships_test.go: Relationships, described elements, graph order
package integration

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gospdx/gospdx"
)

// fixtures lists the corpus documents by format.
var fixtures = map[gospdx.Format]string{
	gospdx.FormatRDF:      "example.rdf",
	gospdx.FormatJSON:     "example.spdx.json",
	gospdx.FormatYAML:     "example.spdx.yaml",
	gospdx.FormatTagValue: "example.spdx",
}

var formats = []gospdx.Format{
	gospdx.FormatRDF,
	gospdx.FormatJSON,
	gospdx.FormatYAML,
	gospdx.FormatTagValue,
}

// corpus holds the documents read once for all tests, keyed by base name.
var (
	corpus     map[string]*gospdx.Document
	corpusOnce sync.Once
	corpusErr  error
)

func corpusPath() string {
	return filepath.Join("..", "testdata", "documents")
}

// loadCorpus reads the whole fixture directory once and caches the result.
func loadCorpus(t *testing.T) map[string]*gospdx.Document {
	t.Helper()

	corpusOnce.Do(func() {
		src, err := gospdx.DirTree(corpusPath())
		if err != nil {
			corpusErr = err
			return
		}
		results, err := gospdx.LoadAll(context.Background(), src)
		if err != nil {
			corpusErr = err
			return
		}
		corpus = make(map[string]*gospdx.Document, len(results))
		for _, r := range results {
			if r.Err != nil {
				corpusErr = r.Err
				return
			}
			corpus[filepath.Base(r.Path)] = r.Document
		}
	})

	if corpusErr != nil {
		t.Fatalf("failed to load corpus: %v", corpusErr)
	}
	return corpus
}

// getDocument returns the fixture for format and fails if it was not read.
func getDocument(t *testing.T, format gospdx.Format) *gospdx.Document {
	t.Helper()
	doc := loadCorpus(t)[fixtures[format]]
	require.NotNil(t, doc, "fixture %s should have been read", fixtures[format])
	return doc
}

// getFile returns the file with the given id and fails if it is missing.
func getFile(t *testing.T, doc *gospdx.Document, id string) *gospdx.File {
	t.Helper()
	f, ok := doc.FindElement(id).(*gospdx.File)
	require.True(t, ok, "file %s should exist", id)
	return f
}

// TestCorpusLoads verifies every fixture reads without fatal errors.
func TestCorpusLoads(t *testing.T) {
	docs := loadCorpus(t)
	require.Len(t, docs, len(fixtures))

	for _, format := range formats {
		doc := getDocument(t, format)
		require.Equal(t, "http://spdx.org/spdxdocs/example-1", doc.Namespace, format.String())
		t.Logf("%s: %d packages, %d files, %d snippets, %d diagnostics",
			format, len(doc.Packages), len(doc.Files), len(doc.Snippets), len(doc.Diagnostics))
	}
}

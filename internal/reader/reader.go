// Package reader builds SPDX documents from RDF node trees.
//
// A read makes a single pass over the SpdxDocument element and the
// top-level elements beside it, dispatching each typed node to a reader
// for its class. Elements reference each other by URI, by blank node label
// or by nesting, and a reference may precede its definition. All of these
// resolve through one per-read context:
//
//  1. Index: every typed node that carries content is indexed by
//     identifier and by blank node label.
//  2. Document: the SpdxDocument properties are read. Elements met along
//     the way are registered before their own properties are read, so
//     reference cycles end at the registry and share one instance.
//  3. Elements: top-level elements nothing referenced are read.
//  4. Collect: packages, files, snippets and extracted licenses are
//     gathered onto the document in registration order.
//
// Any mandatory-field or unresolved-reference error fails the whole read.
package reader

import (
	"log/slog"

	"github.com/gospdx/gospdx/internal/license"
	"github.com/gospdx/gospdx/internal/rdf"
	"github.com/gospdx/gospdx/internal/types"
	"github.com/gospdx/gospdx/spdx"
)

// Config configures a read.
type Config struct {
	// License configures parsing of license expressions found in literal
	// license fields. Its Lookup is consulted after the document's own
	// extracted licenses.
	License license.Config

	// Diagnostics filters the non-fatal observations kept on the document.
	Diagnostics spdx.DiagnosticConfig

	Logger *slog.Logger
}

type reader struct {
	types.Logger
}

// Read builds a document from an RDF tree. root is either the rdf:RDF
// element or the SpdxDocument element itself.
func Read(root *rdf.Node, cfg Config) (*spdx.Document, error) {
	r := &reader{Logger: types.Logger{L: cfg.Logger}}
	return r.read(root, cfg)
}

func (r *reader) read(root *rdf.Node, cfg Config) (*spdx.Document, error) {
	c := newContext(root, cfg)

	r.Log(slog.LevelDebug, "starting phase", slog.String("phase", "index"))
	docNode := c.index()
	if docNode == nil {
		return nil, spdx.NewError(spdx.KindMissingNamespace, "")
	}
	r.Log(slog.LevelDebug, "phase complete", slog.String("phase", "index"),
		slog.Int("definitions", len(c.defs)),
		slog.Int("blankNodes", len(c.blank)))

	r.Log(slog.LevelDebug, "starting phase", slog.String("phase", "document"))
	if err := c.readDocument(docNode); err != nil {
		return nil, err
	}
	r.Log(slog.LevelDebug, "phase complete", slog.String("phase", "document"),
		slog.String("namespace", c.doc.Namespace),
		slog.Int("elements", c.reg.Len()))

	r.Log(slog.LevelDebug, "starting phase", slog.String("phase", "elements"))
	if err := c.readTopLevel(docNode); err != nil {
		return nil, err
	}
	r.Log(slog.LevelDebug, "phase complete", slog.String("phase", "elements"),
		slog.Int("elements", c.reg.Len()))

	c.collect()
	if len(c.doc.Diagnostics) > 0 {
		r.Log(slog.LevelDebug, "diagnostics reported", slog.Int("count", len(c.doc.Diagnostics)))
	}
	return c.doc, nil
}

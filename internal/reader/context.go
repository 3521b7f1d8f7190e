package reader

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/gospdx/gospdx/internal/license"
	"github.com/gospdx/gospdx/internal/rdf"
	"github.com/gospdx/gospdx/internal/registry"
	"github.com/gospdx/gospdx/internal/types"
	"github.com/gospdx/gospdx/spdx"
)

// readContext holds the state of one read. Nothing in it outlives the
// read or is shared with another.
type readContext struct {
	root *rdf.Node
	cfg  Config
	doc  *spdx.Document
	reg  *registry.Registry

	// defs maps identifiers to the typed node defining them, blank maps
	// blank node labels likewise.
	defs  map[string]*rdf.Node
	blank map[string]*rdf.Node

	// source records which node produced each registered element.
	source map[string]*rdf.Node

	extracted      map[string]*spdx.ExtractedLicenseInfo
	extractedOrder []*spdx.ExtractedLicenseInfo

	licenseCfg license.Config

	// parsing holds the keys of nodes memo is currently inside.
	parsing map[string]bool

	// pending holds diagnostics raised before the document exists.
	pending []spdx.Diagnostic

	types.Logger
}

func newContext(root *rdf.Node, cfg Config) *readContext {
	c := &readContext{
		root:      root,
		cfg:       cfg,
		reg:       registry.New(),
		defs:      make(map[string]*rdf.Node),
		blank:     make(map[string]*rdf.Node),
		source:    make(map[string]*rdf.Node),
		extracted: make(map[string]*spdx.ExtractedLicenseInfo),
		parsing:   make(map[string]bool),
		Logger:    types.Logger{L: cfg.Logger},
	}
	c.licenseCfg = cfg.License
	c.licenseCfg.Lookup = license.Chain(c.lookupExtracted, cfg.License.Lookup)
	if c.licenseCfg.Logger == nil {
		c.licenseCfg.Logger = types.Component(cfg.Logger, "parser")
	}
	return c
}

// isTyped reports whether n is a typed node (a class instance such as
// spdx:Package) rather than a property element. SPDX class names start
// with an upper-case letter, property names with a lower-case one.
func isTyped(n *rdf.Node) bool {
	if n.Space == rdf.NSRDF || n.Local == "" {
		return false
	}
	return unicode.IsUpper(rune(n.Local[0]))
}

// index locates the SpdxDocument node and records every typed node that
// carries content.
func (c *readContext) index() *rdf.Node {
	var docNode *rdf.Node
	c.root.Walk(func(n *rdf.Node) {
		if n.Is(rdf.NSSPDX, "SpdxDocument") && docNode == nil {
			docNode = n
		}
		if !isTyped(n) || n.IsEmpty() {
			return
		}
		a := rdf.Attributes(n)
		if a.NodeID != "" {
			c.blank[a.NodeID] = n
		}
		if id := a.Identifier(); id != "" {
			if prev, ok := c.defs[id]; ok && prev != n {
				c.diag(spdx.DiagIdentifierDuplicate, spdx.SeverityWarning, id,
					fmt.Sprintf("%s is defined more than once", id))
			}
			c.defs[id] = n
		}
		if c.TraceEnabled() {
			c.Trace("indexed node",
				slog.String("class", n.Name()),
				slog.String("key", a.Key()))
		}
	})
	return docNode
}

// diag records a diagnostic if the configuration reports it.
func (c *readContext) diag(code string, sev spdx.Severity, element, msg string) {
	if !c.cfg.Diagnostics.ShouldReport(code, sev) {
		return
	}
	d := spdx.Diagnostic{Severity: sev, Code: code, Message: msg, Element: element}
	if c.doc != nil {
		c.doc.Diagnostics = append(c.doc.Diagnostics, d)
	} else {
		c.pending = append(c.pending, d)
	}
}

func (c *readContext) unknownProperty(element string, prop *rdf.Node) {
	c.diag(spdx.DiagPropertyUnknown, spdx.SeverityInfo, element,
		fmt.Sprintf("ignoring property %s", prop.Name()))
}

// isLocal reports whether a URI namespace refers to this document.
func (c *readContext) isLocal(ns string) bool {
	return ns == "" || ns == c.doc.Namespace
}

// target is what a property element points at: a URI, a typed node
// (nested, or the definition of a blank node), or literal text.
type target struct {
	uri  string
	node *rdf.Node
	text string
}

func (c *readContext) target(prop *rdf.Node) (target, error) {
	a := rdf.Attributes(prop)
	switch {
	case a.Resource != "":
		return target{uri: a.Resource}, nil
	case a.NodeID != "" && prop.IsEmpty():
		def, ok := c.blank[a.NodeID]
		if !ok {
			return target{}, spdx.NewError(spdx.KindUnresolvedReference, "_:"+a.NodeID)
		}
		return target{node: def}, nil
	}
	for _, child := range prop.Children {
		if !isTyped(child) {
			continue
		}
		ca := rdf.Attributes(child)
		if child.IsEmpty() {
			// A typed node without content is a reference.
			switch {
			case ca.NodeID != "":
				if def, ok := c.blank[ca.NodeID]; ok {
					return target{node: def}, nil
				}
				return target{}, spdx.NewError(spdx.KindUnresolvedReference, "_:"+ca.NodeID)
			case ca.About != "":
				return target{uri: ca.About}, nil
			case ca.ID != "":
				return target{uri: "#" + ca.ID}, nil
			}
		}
		return target{node: child}, nil
	}
	return target{text: prop.Value()}, nil
}

// literal returns the string value of a property. The SPDX none and
// noassertion resources become NONE and NOASSERTION; other resources, and
// nested nodes, are returned as URIs.
func (c *readContext) literal(prop *rdf.Node) string {
	res := rdf.Attributes(prop).Resource
	if res == "" {
		for _, child := range prop.Children {
			if about := rdf.Attributes(child).About; about != "" {
				return about
			}
		}
	}
	switch res {
	case "":
		return prop.Value()
	case rdf.NSSPDX + "none":
		return spdx.NoneValue
	case rdf.NSSPDX + "noassertion":
		return spdx.NoAssertionValue
	}
	return res
}

// memo parses n once per blank node label or URI. Nodes with neither are
// parsed every time they are met. A node reached again from inside its own
// parse is a reference cycle and fails as unresolved.
func memo[T any](c *readContext, n *rdf.Node, parse func(*rdf.Node) (T, error)) (T, error) {
	key := rdf.Attributes(n).Key()
	if key == "" {
		return parse(n)
	}
	if v, ok := c.reg.ResolveNode(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	if c.parsing[key] {
		var zero T
		c.Log(slog.LevelDebug, "reference cycle", slog.String("node", key))
		return zero, spdx.NewError(spdx.KindUnresolvedReference, key)
	}
	c.parsing[key] = true
	defer delete(c.parsing, key)

	v, err := parse(n)
	if err == nil {
		c.reg.RegisterNode(key, v)
	}
	return v, err
}

func isSentinelURI(uri string) (spdx.SpdxElement, bool) {
	switch {
	case uri == rdf.NSSPDX+"none", strings.EqualFold(uri, spdx.NoneValue):
		return spdx.NoneElement, true
	case uri == rdf.NSSPDX+"noassertion", strings.EqualFold(uri, spdx.NoAssertionValue):
		return spdx.NoAssertionElement, true
	}
	return nil, false
}

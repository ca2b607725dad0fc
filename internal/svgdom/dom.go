// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svgdom

import (
	"io"
	"strings"

	"github.com/ericchiang/css"
	"golang.org/x/net/html"
)

// Parse parses an SVG document from r into an attributed tree, using
// golang.org/x/net/html the way the teacher's coredom package parses
// XHTML-ish markup — SVG's XML syntax is a strict subset of what the
// lenient HTML5 tokenizer accepts, and treating it as foreign content
// keeps the DOM representation uniform across the whole transform
// pipeline. DTD references (spec §6) are never followed by this parser,
// satisfying the "resolved to empty" requirement for free.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// Root returns the <svg> element within doc, the document parsed by Parse.
func Root(doc *html.Node) *html.Node {
	var svg *html.Node
	Walk(doc, func(n *html.Node, _ Path) {
		if svg == nil && n.Data == "svg" {
			svg = n
		}
	})
	return svg
}

// Attr returns the value of attribute name on n, and whether it was present.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute name on n to val, adding it if absent.
func SetAttr(n *html.Node, name, val string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: val})
}

// RemoveAttr removes attribute name from n, if present.
func RemoveAttr(n *html.Node, name string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Render serializes doc back to w.
func Render(w io.Writer, doc *html.Node) error {
	return html.Render(w, doc)
}

// BiasedNodes returns every element under doc whose class attribute
// contains the substring "bias-", in document order. It returns the nodes
// only; PathOf gives an element's ElementPath. It is
// grounded on coredom/context.go's pairing of golang.org/x/net/html with
// github.com/ericchiang/css: a compiled attribute-substring selector walks
// the tree once instead of hand-rolling a second tree-walk with string
// matching duplicated from Walk.
func BiasedNodes(doc *html.Node) ([]*html.Node, error) {
	sel, err := css.Compile(`[class*="bias-"]`)
	if err != nil {
		return nil, err
	}
	return sel.Select(doc), nil
}

// PathOf returns the ElementPath of n within doc, or nil if n is not part
// of doc's tree.
func PathOf(doc *html.Node, n *html.Node) Path {
	var result Path
	Walk(doc, func(c *html.Node, path Path) {
		if c == n {
			result = path
		}
	})
	return result
}

// ClassList returns n's class attribute split on whitespace.
func ClassList(n *html.Node) []string {
	v, ok := Attr(n, "class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

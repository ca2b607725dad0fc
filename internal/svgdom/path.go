// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svgdom wraps golang.org/x/net/html as a generic attributed tree
// for SVG documents, the same pairing the teacher's coredom package uses
// for XHTML-ish markup, and adds the ElementPath value type and CSS-class
// based anchor discovery spec §3/§4.1 need.
package svgdom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Step is one (localName, ordinal) hop in an ElementPath.
type Step struct {
	Name    string
	Ordinal int // 1-based, among same-named siblings
}

// Path is an ordered sequence of Steps from the document root identifying
// an element, per the GLOSSARY's ElementPath. A Path is a slice and cannot
// itself be a map key; String gives its key form.
type Path []Step

// String renders p as "name[ordinal]/name[ordinal]/...", used for
// diagnostics and as the key of svgmeta.Metadata's ChildAnchors map, where
// a string form is more convenient than a compound struct key.
func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		if i > 0 {
			sb.WriteByte('/')
		}
		fmt.Fprintf(&sb, "%s[%d]", s.Name, s.Ordinal)
	}
	return sb.String()
}

// Equal reports whether p and o name the same element.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// childPath returns the path to child, the ord'th occurrence of its local
// name among parentPath's children.
func childPath(parentPath Path, name string, ord int) Path {
	np := make(Path, len(parentPath), len(parentPath)+1)
	copy(np, parentPath)
	return append(np, Step{Name: name, Ordinal: ord})
}

// Walk visits every element node in the tree rooted at root in document
// order, calling fn with each node and its ElementPath (root's own path is
// the empty Path).
func Walk(root *html.Node, fn func(n *html.Node, path Path)) {
	walk(root, nil, fn)
}

func walk(n *html.Node, path Path, fn func(n *html.Node, path Path)) {
	if n.Type == html.ElementNode {
		fn(n, path)
	}
	counts := map[string]int{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		counts[c.Data]++
		childP := childPath(path, c.Data, counts[c.Data])
		walk(c, childP, fn)
	}
}

// Find returns the first element in the tree rooted at root whose path
// equals target, or nil if none matches.
func Find(root *html.Node, target Path) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node, path Path) {
		if found == nil && path.Equal(target) {
			found = n
		}
	})
	return found
}

// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svgmeta reads the per-SVG-file cursor metadata (view box, hotspot,
// root anchor, child anchors) described in spec §3, component C2.
package svgmeta

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/cursorforge/cursorforge/internal/anchor"
	"github.com/cursorforge/cursorforge/internal/cursorset"
	"github.com/cursorforge/cursorforge/internal/geom"
	"github.com/cursorforge/cursorforge/internal/svgdom"
)

// Metadata is the semantic record extracted from one SVG cursor file, per
// spec §3.
type Metadata struct {
	ViewBox     geom.Rect
	Hotspot     anchor.Point
	RootAnchor  anchor.Point
	ChildAnchors map[string]anchor.Point // keyed by svgdom.Path.String()
	ChildPaths  map[string]svgdom.Path   // same key, the structured path
}

// hotspotID and rootAnchorID are the element-id convention cursorforge
// documents (and ships worked examples for) to mark the two distinguished
// anchors a cursor SVG may declare, since spec §3 leaves the concrete
// on-disk marker for "the" hotspot and "the" root anchor unspecified
// beyond "an anchor point". Any other bias-classed element contributes a
// child anchor keyed by its ElementPath.
const (
	hotspotID    = "cursorforge-hotspot"
	rootAnchorID = "cursorforge-root-anchor"
)

// Read extracts Metadata from doc, the root <svg> element's owning
// document as returned by svgdom.Parse. cursorName is the cursor's base
// SVG filename (no extension); when the file declares no explicit
// hotspot marker, Read consults cursorset.Resolve before falling back to
// the view-box center, per SPEC_FULL.md §5's supplemented default-hotspot
// behavior.
func Read(doc *html.Node, cursorName string) (*Metadata, error) {
	root := svgdom.Root(doc)
	if root == nil {
		return nil, fmt.Errorf("svgmeta: no <svg> root element")
	}

	vb, err := readViewBox(root)
	if err != nil {
		return nil, err
	}

	md := &Metadata{
		ViewBox:      vb,
		RootAnchor:   anchor.Point{X: 0, Y: 0},
		ChildAnchors: map[string]anchor.Point{},
		ChildPaths:   map[string]svgdom.Path{},
	}
	md.Hotspot = anchor.Point{X: vb.Center().X, Y: vb.Center().Y}
	if x, y, ok := cursorset.Resolve(cursorName, vb.W); ok {
		md.Hotspot = anchor.Point{X: vb.X + x, Y: vb.Y + y}
	}

	nodes, err := svgdom.BiasedNodes(doc)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		classAttr, _ := svgdom.Attr(n, "class")
		b, ok, err := anchor.ParseBias(classAttr)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		x, y, err := nodePoint(n)
		if err != nil {
			return nil, err
		}
		pt := anchor.Point{X: x, Y: y, Bias: b}

		id, _ := svgdom.Attr(n, "id")
		switch id {
		case hotspotID:
			md.Hotspot = pt
		case rootAnchorID:
			md.RootAnchor = pt
		default:
			path := svgdom.PathOf(doc, n)
			key := path.String()
			md.ChildAnchors[key] = pt
			md.ChildPaths[key] = path
		}
	}

	return md, nil
}

// readViewBox reads the viewBox attribute, falling back to width/height
// attributes (origin 0,0) if viewBox is absent, per spec §7's SVGError
// condition "missing viewBox and width/height".
func readViewBox(root *html.Node) (geom.Rect, error) {
	if vb, ok := svgdom.Attr(root, "viewBox"); ok {
		return parseViewBox(vb)
	}
	if vb, ok := svgdom.Attr(root, "viewbox"); ok {
		return parseViewBox(vb)
	}
	wStr, wOK := svgdom.Attr(root, "width")
	hStr, hOK := svgdom.Attr(root, "height")
	if wOK && hOK {
		w, err := parseLength(wStr)
		if err != nil {
			return geom.Rect{}, err
		}
		h, err := parseLength(hStr)
		if err != nil {
			return geom.Rect{}, err
		}
		return geom.Rect{X: 0, Y: 0, W: w, H: h}, nil
	}
	return geom.Rect{}, fmt.Errorf("svgmeta: missing viewBox and width/height")
}

func parseViewBox(s string) (geom.Rect, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(fields) != 4 {
		return geom.Rect{}, fmt.Errorf("svgmeta: malformed viewBox %q", s)
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("svgmeta: malformed viewBox %q: %w", s, err)
		}
		v[i] = n
	}
	return geom.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

func parseLength(s string) (float64, error) {
	s = strings.TrimSuffix(s, "px")
	return strconv.ParseFloat(s, 64)
}

// nodePoint returns the representative point of a biased element: its
// (cx, cy) for circles/ellipses, its (x, y) for everything else that
// carries them, defaulting to (0,0) when neither is present (e.g. a
// <path> whose bias class only marks a conceptual, not geometric, point —
// such elements are expected to also carry explicit x/y or cx/cy).
func nodePoint(n *html.Node) (float64, float64, error) {
	if cx, ok := svgdom.Attr(n, "cx"); ok {
		cy, _ := svgdom.Attr(n, "cy")
		x, err := parseLength(cx)
		if err != nil {
			return 0, 0, err
		}
		y, err := parseLength(cy)
		if err != nil {
			return 0, 0, err
		}
		return x, y, nil
	}
	x, hasX := svgdom.Attr(n, "x")
	y, hasY := svgdom.Attr(n, "y")
	if hasX || hasY {
		xf, err := parseLength(x)
		if err != nil && hasX {
			return 0, 0, err
		}
		yf, err := parseLength(y)
		if err != nil && hasY {
			return 0, 0, err
		}
		return xf, yf, nil
	}
	return 0, 0, nil
}

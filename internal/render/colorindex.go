// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cursorforge/cursorforge/internal/svgdom"
)

// colorAttrs are the SVG presentation attributes a color index scans for
// hex-string values.
var colorAttrs = []string{"fill", "stroke", "stop-color", "flood-color"}

// colorRef is one attribute location a recognized hex value was found
// at, kept so setColors can replay the substitution without rescanning
// the DOM on every call.
type colorRef struct {
	node   *html.Node
	attr   string
	suffix string // any value text after the matched hex prefix (e.g. opacity hints)
}

// colorIndex maps a source hex string (as it appeared, lowercase) to
// every attribute location whose value starts with it, per spec §4.4's
// "colorTheme (an index mapping hex-string → list of DOM attribute nodes
// whose value starts with that color)".
type colorIndex map[string][]colorRef

// buildColorIndex scans doc for colorAttrs whose value begins with a
// "#rrggbb"(aa)? hex string.
func buildColorIndex(doc *html.Node) colorIndex {
	idx := make(colorIndex)
	svgdom.Walk(doc, func(n *html.Node, _ svgdom.Path) {
		for _, attr := range colorAttrs {
			v, ok := svgdom.Attr(n, attr)
			if !ok {
				continue
			}
			hex, suffix, ok := splitHexPrefix(v)
			if !ok {
				continue
			}
			key := strings.ToLower(hex)
			idx[key] = append(idx[key], colorRef{node: n, attr: attr, suffix: suffix})
		}
	})
	return idx
}

// splitHexPrefix splits v into a leading "#"-prefixed hex run (6 or 8
// hex digits) and whatever text follows it.
func splitHexPrefix(v string) (hex, suffix string, ok bool) {
	if !strings.HasPrefix(v, "#") {
		return "", "", false
	}
	i := 1
	for i < len(v) && isHexDigit(v[i]) {
		i++
	}
	n := i - 1
	if n != 6 && n != 8 {
		return "", "", false
	}
	return v[:i], v[i:], true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// setColors replays idx, setting each indexed node's attribute to the
// mapped replacement (preserving the non-hex suffix); keys absent from
// mapping are left at their original value, per spec §4.4's setColors.
func (idx colorIndex) setColors(mapping map[string]string) {
	for hex, refs := range idx {
		replacement, ok := mapping[hex]
		if !ok {
			continue
		}
		for _, ref := range refs {
			svgdom.SetAttr(ref.node, ref.attr, replacement+ref.suffix)
		}
	}
}

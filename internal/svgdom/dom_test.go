// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svgdom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const docSVG = `<svg viewBox="0 0 32 32" xmlns="http://www.w3.org/2000/svg">` +
	`<circle id="hotspot" class="bias-center" cx="16" cy="16" r="1"/>` +
	`<path class="icon bias-left" d="M0 0 L32 32" stroke="#ff0000"/>` +
	`<path d="M0 0"/>` +
	`</svg>`

func TestParseAndRoot(t *testing.T) {
	doc, err := Parse(strings.NewReader(docSVG))
	require.NoError(t, err)
	root := Root(doc)
	require.NotNil(t, root)
	require.Equal(t, "svg", root.Data)
}

func TestAttrSetAttrRemoveAttr(t *testing.T) {
	doc, err := Parse(strings.NewReader(docSVG))
	require.NoError(t, err)
	root := Root(doc)

	v, ok := Attr(root, "viewBox")
	require.True(t, ok)
	require.Equal(t, "0 0 32 32", v)

	SetAttr(root, "viewBox", "0 0 64 64")
	v, ok = Attr(root, "viewBox")
	require.True(t, ok)
	require.Equal(t, "0 0 64 64", v)

	SetAttr(root, "data-new", "x")
	v, ok = Attr(root, "data-new")
	require.True(t, ok)
	require.Equal(t, "x", v)

	RemoveAttr(root, "data-new")
	_, ok = Attr(root, "data-new")
	require.False(t, ok)
}

func TestRenderRoundTrips(t *testing.T) {
	doc, err := Parse(strings.NewReader(docSVG))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, doc))
	require.Contains(t, buf.String(), "viewBox")
}

func TestBiasedNodesFindsAllBiasClasses(t *testing.T) {
	doc, err := Parse(strings.NewReader(docSVG))
	require.NoError(t, err)
	nodes, err := BiasedNodes(doc)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
}

func TestPathOfAndFind(t *testing.T) {
	doc, err := Parse(strings.NewReader(docSVG))
	require.NoError(t, err)
	nodes, err := BiasedNodes(doc)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)

	p := PathOf(doc, nodes[0])
	require.NotEmpty(t, p)

	found := Find(doc, p)
	require.Equal(t, nodes[0], found)
}

func TestClassList(t *testing.T) {
	doc, err := Parse(strings.NewReader(docSVG))
	require.NoError(t, err)
	nodes, err := BiasedNodes(doc)
	require.NoError(t, err)

	var cls []string
	for _, n := range nodes {
		cls = ClassList(n)
		if len(cls) > 1 {
			break
		}
	}
	require.Contains(t, cls, "bias-left")
}

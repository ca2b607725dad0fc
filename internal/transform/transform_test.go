// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/cursorforge/cursorforge/internal/svgdom"
)

const sampleSVG = `<svg viewBox="0 0 32 32" xmlns="http://www.w3.org/2000/svg">` +
	`<path d="M0 0" stroke="black" stroke-width="2" fill="red" paint-order="stroke fill"/>` +
	`<image href="foo.png"/>` +
	`</svg>`

func TestThinStrokeRewritesWidth(t *testing.T) {
	doc, err := svgdom.Parse(strings.NewReader(sampleSVG))
	require.NoError(t, err)

	pipe := NewPipeline()
	w := 5.0
	require.NoError(t, pipe.Run(doc, Params{ThinStrokeWidth: &w}))

	root := svgdom.Root(doc)
	var got string
	svgdom.Walk(root, func(n *html.Node, _ svgdom.Path) {
		if n.Data == "path" {
			v, _ := svgdom.Attr(n, "stroke-width")
			got = v
		}
	})
	require.Equal(t, "5", got)
}

func TestSVG11CompatRewritesHrefAndPaintOrder(t *testing.T) {
	doc, err := svgdom.Parse(strings.NewReader(sampleSVG))
	require.NoError(t, err)

	pipe := NewPipeline()
	require.NoError(t, pipe.Run(doc, Params{SVG11Compat: true}))

	root := svgdom.Root(doc)
	var sawXlinkHref, sawUse, sawPlainHref bool
	svgdom.Walk(root, func(n *html.Node, _ svgdom.Path) {
		if _, ok := svgdom.Attr(n, "xlink:href"); ok {
			sawXlinkHref = true
		}
		if _, ok := svgdom.Attr(n, "href"); ok {
			sawPlainHref = true
		}
		if n.Data == "use" {
			sawUse = true
		}
	})
	require.True(t, sawXlinkHref)
	require.False(t, sawPlainHref)
	require.True(t, sawUse)
}

func TestDropShadowAddsFilterAndDefs(t *testing.T) {
	doc, err := svgdom.Parse(strings.NewReader(sampleSVG))
	require.NoError(t, err)

	pipe := NewPipeline()
	require.NoError(t, pipe.Run(doc, Params{DropShadow: &DropShadow{Blur: 2, DX: 1, DY: 1, Opacity: 0.5, Color: "#000"}}))

	root := svgdom.Root(doc)
	filter, hasFilter := svgdom.Attr(root, "filter")
	require.True(t, hasFilter)
	require.Contains(t, filter, dropShadowFilterID)

	var sawDefs bool
	svgdom.Walk(root, func(n *html.Node, _ svgdom.Path) {
		if n.Data == "defs" {
			sawDefs = true
		}
	})
	require.True(t, sawDefs)
}

func TestBufferReplayAppliesSameParamsAsDOM(t *testing.T) {
	buf, err := Load(strings.NewReader(sampleSVG))
	require.NoError(t, err)

	var out bytes.Buffer
	w := 7.0
	require.NoError(t, buf.Replay(&out, Params{ThinStrokeWidth: &w, SVG11Compat: true}))
	require.Contains(t, out.String(), `stroke-width="7"`)
	require.Contains(t, out.String(), "xlink:href")

	// Re-running Replay with a different width re-applies it without
	// re-tokenizing the source, demonstrating the "re-set without
	// rebuilding" contract in the streaming mode.
	out.Reset()
	w2 := 9.0
	require.NoError(t, buf.Replay(&out, Params{ThinStrokeWidth: &w2}))
	require.Contains(t, out.String(), `stroke-width="9"`)
}

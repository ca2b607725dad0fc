// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svgmeta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cursorforge/cursorforge/internal/anchor"
	"github.com/cursorforge/cursorforge/internal/geom"
	"github.com/cursorforge/cursorforge/internal/svgdom"
)

const fullSVG = `<svg viewBox="0 0 32 32" xmlns="http://www.w3.org/2000/svg">` +
	`<circle id="cursorforge-hotspot" class="bias-center" cx="4" cy="4" r="1"/>` +
	`<circle id="cursorforge-root-anchor" class="bias-left" cx="0" cy="16" r="1"/>` +
	`<path class="bias-right-fill" x="30" y="2" d="M0 0"/>` +
	`</svg>`

func TestReadExtractsViewBoxHotspotAndAnchors(t *testing.T) {
	doc, err := svgdom.Parse(strings.NewReader(fullSVG))
	require.NoError(t, err)

	md, err := Read(doc, "custom-cursor")
	require.NoError(t, err)

	require.Equal(t, geom.Rect{X: 0, Y: 0, W: 32, H: 32}, md.ViewBox)
	require.Equal(t, 4.0, md.Hotspot.X)
	require.Equal(t, 4.0, md.Hotspot.Y)
	require.Equal(t, anchor.ModeStrokeInside, md.Hotspot.Bias.Mode)

	require.Equal(t, 0.0, md.RootAnchor.X)
	require.Equal(t, 16.0, md.RootAnchor.Y)

	require.Len(t, md.ChildAnchors, 1)
	for _, pt := range md.ChildAnchors {
		require.Equal(t, 30.0, pt.X)
		require.Equal(t, 2.0, pt.Y)
	}
}

func TestReadDefaultsHotspotToViewBoxCenterWithoutMarker(t *testing.T) {
	svg := `<svg viewBox="0 0 32 32" xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`
	doc, err := svgdom.Parse(strings.NewReader(svg))
	require.NoError(t, err)

	md, err := Read(doc, "custom-cursor")
	require.NoError(t, err)
	require.Equal(t, 16.0, md.Hotspot.X)
	require.Equal(t, 16.0, md.Hotspot.Y)
}

func TestReadUsesDefaultHotspotTableWhenNameRecognized(t *testing.T) {
	svg := `<svg viewBox="0 0 32 32" xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`
	doc, err := svgdom.Parse(strings.NewReader(svg))
	require.NoError(t, err)

	md, err := Read(doc, "arrow")
	require.NoError(t, err)
	require.InDelta(t, 11.0, md.Hotspot.X, 1e-9)
	require.InDelta(t, 10.0, md.Hotspot.Y, 1e-9)
}

func TestReadFallsBackToWidthHeight(t *testing.T) {
	svg := `<svg width="24" height="24" xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`
	doc, err := svgdom.Parse(strings.NewReader(svg))
	require.NoError(t, err)

	md, err := Read(doc, "custom-cursor")
	require.NoError(t, err)
	require.Equal(t, geom.Rect{X: 0, Y: 0, W: 24, H: 24}, md.ViewBox)
}

func TestReadErrorsOnMissingViewBoxAndSize(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`
	doc, err := svgdom.Parse(strings.NewReader(svg))
	require.NoError(t, err)

	_, err = Read(doc, "custom-cursor")
	require.Error(t, err)
}

func TestReadPropagatesInvalidBiasClass(t *testing.T) {
	svg := `<svg viewBox="0 0 32 32" xmlns="http://www.w3.org/2000/svg">` +
		`<circle class="bias-diagonal" cx="1" cy="1"/></svg>`
	doc, err := svgdom.Parse(strings.NewReader(svg))
	require.NoError(t, err)

	_, err = Read(doc, "custom-cursor")
	require.Error(t, err)
}

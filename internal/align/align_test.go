// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cursorforge/cursorforge/internal/anchor"
	"github.com/cursorforge/cursorforge/internal/geom"
)

func TestComputeNoBalanceStaticSourceCanvas(t *testing.T) {
	in := Input{
		Target:       32,
		ViewBox:      geom.Rect{X: 0, Y: 0, W: 32, H: 32},
		CanvasSize:   1,
		StrokeOffset: 1,
		FillOffset:   1,
		Hotspot:      anchor.Point{X: 16, Y: 16, Bias: anchor.Bias{Mode: anchor.ModeNone}},
		RootAnchor:   anchor.Point{X: 0, Y: 0, Bias: anchor.Bias{Mode: anchor.ModeNone}},
		ChildAnchors: map[string]anchor.Point{
			"circle[1]": {X: 30, Y: 30, Bias: anchor.Bias{Mode: anchor.ModeNone}},
		},
	}

	res, err := Compute(in)
	require.NoError(t, err)
	require.Equal(t, 32.0, res.ViewBox.W)
	require.Equal(t, 16, res.HotspotX)
	require.Equal(t, 16, res.HotspotY)
	require.Contains(t, res.Translates, "circle[1]")
}

func TestComputeEnlargesCanvasByScheme(t *testing.T) {
	in := Input{
		Target:     32,
		ViewBox:    geom.Rect{X: 0, Y: 0, W: 32, H: 32},
		CanvasSize: 1.5,
		Hotspot:    anchor.Point{X: 16, Y: 16},
		RootAnchor: anchor.Point{X: 16, Y: 16},
	}
	res, err := Compute(in)
	require.NoError(t, err)
	require.Equal(t, 48.0, res.ViewBox.W)
	require.Equal(t, 48.0, res.ViewBox.H)
}

func TestComputeOverflowsOnExtremeHotspot(t *testing.T) {
	in := Input{
		Target:     32,
		ViewBox:    geom.Rect{X: 0, Y: 0, W: 32, H: 32},
		CanvasSize: 1,
		Hotspot:    anchor.Point{X: 1e9, Y: 0, Bias: anchor.Bias{DX: 1, Mode: anchor.ModeStrokeInside}},
		RootAnchor: anchor.Point{X: 0, Y: 0},
	}
	_, err := Compute(in)
	require.Error(t, err)
	var overflow *OverflowError
	require.ErrorAs(t, err, &overflow)
}

func TestGridOffsetSnapsToNearestPixelCenter(t *testing.T) {
	box := geom.Rect{X: 0, Y: 0, W: 32, H: 32}
	off := gridOffset(geom.Point{X: 16.2, Y: 16.2}, box, 32)
	require.InDelta(t, -0.2, off.X, 1e-9)
	require.InDelta(t, -0.2, off.Y, 1e-9)
}

func TestGridOffsetZeroExtentIsZero(t *testing.T) {
	box := geom.Rect{X: 0, Y: 0, W: 0, H: 0}
	off := gridOffset(geom.Point{X: 1, Y: 1}, box, 32)
	require.Equal(t, geom.Point{}, off)
}

func TestBalanceShiftClampsToLimit(t *testing.T) {
	box := geom.Rect{X: 0, Y: 0, W: 32, H: 32}
	hotspot := anchor.Point{X: -1000, Y: 0}
	root := anchor.Point{X: -1000, Y: 0}
	shift := balanceShift(hotspot, root, box, 0.1, 1)
	require.Equal(t, 3.2, shift.X)
}

func TestBalanceShiftDefaultsLimitFactor(t *testing.T) {
	box := geom.Rect{X: 0, Y: 0, W: 32, H: 32}
	hotspot := anchor.Point{X: 0, Y: 0}
	root := anchor.Point{X: 0, Y: 0}
	shift := balanceShift(hotspot, root, box, 0.5, 0)
	require.Equal(t, box.Center().X, shift.X)
}

func TestRoundHotspotNegativeBiasRoundsUpGenerously(t *testing.T) {
	v, err := roundHotspot(15.5, -1)
	require.NoError(t, err)
	require.Equal(t, 16, v)
}

func TestRoundHotspotPositiveBiasRoundsDownAndInsets(t *testing.T) {
	v, err := roundHotspot(15.5, 1)
	require.NoError(t, err)
	require.Equal(t, 14, v)
}

func TestRoundHotspotNeutralBiasRoundsNearest(t *testing.T) {
	v, err := roundHotspot(15.5, 0)
	require.NoError(t, err)
	require.Equal(t, 16, v)
}

func TestRoundHotspotClampsNegativeToZero(t *testing.T) {
	v, err := roundHotspot(-5, 1)
	require.NoError(t, err)
	require.Equal(t, 0, v)
}

func TestRoundHotspotOverflowsAbove16Bit(t *testing.T) {
	_, err := roundHotspot(70000, 0)
	require.Error(t, err)
}

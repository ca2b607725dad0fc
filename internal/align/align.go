// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package align implements the sizing/alignment engine (spec §4.2,
// component C4): it computes a rewritten view box, per-child-anchor
// translates, and the integer hotspot for one target pixel size.
package align

import (
	"fmt"
	"math"

	"github.com/cursorforge/cursorforge/internal/anchor"
	"github.com/cursorforge/cursorforge/internal/geom"
)

// Input bundles the parameters spec §4.2's Compute contract takes.
type Input struct {
	Target         float64 // T
	ViewBox        geom.Rect
	CanvasSize     float64 // k
	StrokeOffset   float64 // so
	FillOffset     float64 // fo
	Hotspot        anchor.Point
	RootAnchor     anchor.Point
	ChildAnchors   map[string]anchor.Point
	BalanceCanvas  bool
	BalanceLimit   float64 // fraction of view-box extent, default 0.5
	BalanceFactor  float64 // clamp factor applied to the computed shift, 0..1
}

// Result is the engine's output: the rewritten view box, a translate per
// child anchor key, and the rounded, clamped hotspot.
type Result struct {
	ViewBox    geom.Rect
	Translates map[string]geom.Point
	HotspotX   int
	HotspotY   int
}

// OverflowError reports that a computed hotspot coordinate does not fit in
// the 16-bit unsigned range the Windows cursor format requires (spec §3's
// "Hotspot coordinates after alignment are non-negative integers bounded
// by 0xFFFF").
type OverflowError struct {
	Value float64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("align: hotspot coordinate %v overflows 0..0xFFFF", e.Value)
}

const defaultBalanceLimit = 0.5

// Compute runs the five-step algorithm of spec §4.2.
func Compute(in Input) (*Result, error) {
	if in.BalanceLimit <= 0 {
		in.BalanceLimit = defaultBalanceLimit
	}

	// Step 1: enlarge canvas.
	v0 := in.ViewBox.Scaled(in.CanvasSize)

	// Step 2: optional balance.
	if in.BalanceCanvas {
		shift := balanceShift(in.Hotspot, in.RootAnchor, v0, in.BalanceLimit, in.BalanceFactor)
		v0 = v0.Translate(shift)
	}

	// Step 3: snap the root anchor (after stroke/fill offset) to the
	// target pixel grid, and shift the view-box origin by the resulting
	// offset so the anchor lands exactly on a pixel center.
	rax, ray := in.RootAnchor.PointWithOffset(in.StrokeOffset, in.FillOffset)
	rootPt := geom.Point{X: rax, Y: ray}
	offset := gridOffset(rootPt, v0, in.Target)
	vPrime := v0.Translate(geom.Point{X: -offset.X, Y: -offset.Y})

	// Step 4: per-child translate against the new view box.
	translates := make(map[string]geom.Point, len(in.ChildAnchors))
	for key, a := range in.ChildAnchors {
		ax, ay := a.PointWithOffset(in.StrokeOffset, in.FillOffset)
		pt := geom.Point{X: ax, Y: ay}
		translates[key] = gridOffset(pt, vPrime, in.Target)
	}

	// Step 5: hotspot in target space.
	hx, hy := in.Hotspot.PointWithOffset(in.StrokeOffset, in.FillOffset)
	projected := vPrime.Project(geom.Point{X: hx, Y: hy}, in.Target, in.Target)
	sign := in.Hotspot.Bias.DX + in.Hotspot.Bias.DY
	hxi, err := roundHotspot(projected.X, sign)
	if err != nil {
		return nil, err
	}
	hyi, err := roundHotspot(projected.Y, sign)
	if err != nil {
		return nil, err
	}

	return &Result{
		ViewBox:    geom.Rect{X: geom.RoundFrac(vPrime.X), Y: geom.RoundFrac(vPrime.Y), W: geom.RoundFrac(vPrime.W), H: geom.RoundFrac(vPrime.H)},
		Translates: translates,
		HotspotX:   hxi,
		HotspotY:   hyi,
	}, nil
}

// gridOffset returns the translate amount that snaps anchor a (in the
// user-space of box b) to the nearest pixel center at target size t, per
// spec §4.2 step 3's formula:
//
//	(round((Ax-Bx)*sx)/sx - (Ax-Bx), round((Ay-By)*sy)/sy - (Ay-By))
func gridOffset(a geom.Point, b geom.Rect, t float64) geom.Point {
	s := b.Scale(t, t)
	dx := a.X - b.X
	dy := a.Y - b.Y
	var ox, oy float64
	if s.X != 0 {
		ox = math.Round(dx*s.X)/s.X - dx
	}
	if s.Y != 0 {
		oy = math.Round(dy*s.Y)/s.Y - dy
	}
	return geom.Point{X: geom.RoundFrac(ox), Y: geom.RoundFrac(oy)}
}

// balanceShift computes the (sx, sy) shift that moves the geometric mean
// of hotspot and rootAnchor toward box's center, clamped by limitFactor and
// a hard balanceLimit fraction of the box's extent.
func balanceShift(hotspot, root anchor.Point, box geom.Rect, balanceLimit, limitFactor float64) geom.Point {
	mean := geom.Point{X: (hotspot.X + root.X) / 2, Y: (hotspot.Y + root.Y) / 2}
	center := box.Center()
	delta := geom.Point{X: center.X - mean.X, Y: center.Y - mean.Y}
	if limitFactor <= 0 || limitFactor > 1 {
		limitFactor = 1
	}
	delta = delta.MulScalar(limitFactor)
	maxX := box.W * balanceLimit
	maxY := box.H * balanceLimit
	if delta.X > maxX {
		delta.X = maxX
	} else if delta.X < -maxX {
		delta.X = -maxX
	}
	if delta.Y > maxY {
		delta.Y = maxY
	} else if delta.Y < -maxY {
		delta.Y = -maxY
	}
	return delta
}

// roundHotspot applies the hotspot rounding rule of spec §4.2 step 5: a
// negative bias sign rounds up generously (floor(c+0.51)), a positive
// bias sign rounds down and shifts one pixel inside the shape
// (floor(c+0.49)-1), and a neutral bias rounds to the nearest integer.
// A negative result is clamped to 0; a result above the 16-bit range the
// CUR/ANI hotspot field allows (0xFFFF) returns an *OverflowError.
func roundHotspot(c float64, biasSign float64) (int, error) {
	var r float64
	switch {
	case biasSign < 0:
		r = math.Floor(c + 0.51)
	case biasSign > 0:
		r = math.Floor(c+0.49) - 1
	default:
		r = math.Round(c)
	}
	if r < 0 {
		r = 0
	}
	if r > 0xFFFF {
		return 0, &OverflowError{Value: r}
	}
	return int(r), nil
}

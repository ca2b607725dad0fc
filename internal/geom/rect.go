// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom provides the small float64 vector-box arithmetic the sizing
// and alignment engine needs. It is modeled on cogentcore's mat32.Box2
// (Min/Max corner representation with Center/Size/Translate helpers), but
// reimplemented at float64 because spec §4.2's numeric policy requires
// nine fractional digits of precision that float32 cannot carry.
package geom

import (
	"math"
	"strconv"
)

// Point is a 2D point or vector in source user-space units.
type Point struct {
	X, Y float64
}

// Add returns p+o.
func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

// Sub returns p-o.
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Mul returns p scaled componentwise by o.
func (p Point) Mul(o Point) Point { return Point{p.X * o.X, p.Y * o.Y} }

// MulScalar returns p scaled by s.
func (p Point) MulScalar(s float64) Point { return Point{p.X * s, p.Y * s} }

// Rect is a view-box style rectangle: an origin (Min) and extent (W, H),
// matching the SVG viewBox attribute's (x, y, width, height) layout rather
// than mat32.Box2's Min/Max corner pair, since view boxes are always
// expressed as origin+size in the data this package operates on.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Scale returns the (sx, sy) scale factors mapping r's user-space extent
// onto a targetW x targetH pixel box, as used by BoxSizing transforms.
func (r Rect) Scale(targetW, targetH float64) Point {
	sx, sy := 0.0, 0.0
	if r.W != 0 {
		sx = targetW / r.W
	}
	if r.H != 0 {
		sy = targetH / r.H
	}
	return Point{sx, sy}
}

// Project maps a point in r's user-space coordinates to target-space pixel
// coordinates, per the "BoxSizing(V', (T,T))" transform named in spec §4.2.
func (r Rect) Project(p Point, targetW, targetH float64) Point {
	s := r.Scale(targetW, targetH)
	return Point{(p.X - r.X) * s.X, (p.Y - r.Y) * s.Y}
}

// Translate returns r shifted by offset, applied to its origin only (the
// extent is unchanged) — this is how the alignment engine moves a
// view-box's origin to snap an anchor to the pixel grid.
func (r Rect) Translate(offset Point) Rect {
	return Rect{X: r.X + offset.X, Y: r.Y + offset.Y, W: r.W, H: r.H}
}

// Scaled returns r with its extent multiplied by k, origin unchanged —
// the "enlarge canvas" step of spec §4.2 step 1.
func (r Rect) Scaled(k float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W * k, H: r.H * k}
}

// RoundFrac rounds v to 9 fractional digits, per spec §4.2's numeric
// policy, and returns it with trailing zeros conceptually stripped (the
// float64 representation itself has no trailing zeros; FormatFrac below
// is what actually trims them for attribute emission).
func RoundFrac(v float64) float64 {
	const scale = 1e9
	return math.Round(v*scale) / scale
}

// FormatFrac formats v as a fixed-point decimal with up to 9 fractional
// digits, trailing zeros (and a trailing '.') stripped, and a '.' decimal
// separator regardless of locale, per spec §4.2.
func FormatFrac(v float64) string {
	v = RoundFrac(v)
	s := strconv.FormatFloat(v, 'f', 9, 64)
	end := len(s)
	for end > 0 && s[end-1] == '0' {
		end--
	}
	if end > 0 && s[end-1] == '.' {
		end--
	}
	if end == 0 || (end == 1 && s[0] == '-') {
		return "0"
	}
	return s[:end]
}

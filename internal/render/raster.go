// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render implements the cursor renderer (spec §4.4, component
// C5): the stateful orchestrator that loads an SVG, applies color/
// stroke/shadow edits, runs the sizing/alignment engine, invokes the
// pluggable raster backend, and accumulates frames into a CursorBuilder.
package render

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/net/html"
)

// Rasterizer is the pluggable SVG-to-bitmap backend spec §1 calls an
// external collaborator: given a transformed SVG DOM and a target pixel
// size, it returns a 32-bit RGBA image. cursorforge ships no concrete
// implementation — callers wire in whatever rasterizer (e.g. a CGO
// binding to a vector renderer) their build supports.
type Rasterizer interface {
	Rasterize(doc *html.Node, width, height int) (image.Image, error)
}

// DownscalingRasterizer decorates a Rasterizer so it renders at
// supersampleFactor times the requested size and downscales with
// golang.org/x/image/draw's CatmullRom interpolator, trading render cost
// for anti-aliasing quality on small target sizes — the "high-quality
// image downscaling... utility with a stated contract only" spec §1
// names as an external collaborator. draw.Scaler is the same package the
// teacher uses throughout its own image/canvas/sprite code for this kind
// of resample.
type DownscalingRasterizer struct {
	Backend           Rasterizer
	SupersampleFactor int
}

// Rasterize implements Rasterizer.
func (d *DownscalingRasterizer) Rasterize(doc *html.Node, width, height int) (image.Image, error) {
	factor := d.SupersampleFactor
	if factor < 1 {
		factor = 1
	}
	if factor == 1 {
		return d.Backend.Rasterize(doc, width, height)
	}
	big, err := d.Backend.Rasterize(doc, width*factor, height*factor)
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), big, big.Bounds(), draw.Over, nil)
	return dst, nil
}

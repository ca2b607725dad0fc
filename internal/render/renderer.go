// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/net/html"

	"github.com/cursorforge/cursorforge/internal/config"
	"github.com/cursorforge/cursorforge/internal/errorsx"
	"github.com/cursorforge/cursorforge/internal/geom"
	"github.com/cursorforge/cursorforge/internal/ordmap"
	"github.com/cursorforge/cursorforge/internal/svgdom"
	"github.com/cursorforge/cursorforge/internal/svgmeta"
	"github.com/cursorforge/cursorforge/internal/transform"
)

// defaultMinStrokeWidth is the default minimum on-screen stroke width, in
// pixels, below which RenderTargetSize promotes the resolved stroke width,
// per spec §4.4.
const defaultMinStrokeWidth = 1.0

// CursorRenderer is the single-file stateful orchestrator of spec §4.4,
// component C5.
type CursorRenderer struct {
	Rasterizer Rasterizer

	pipeline *transform.Pipeline

	cursorName string
	svgPath    string
	targetName string

	doc      *html.Node
	meta     *svgmeta.Metadata
	colorIdx colorIndex

	strokeWidth     *config.StrokeWidth
	baseStroke      float64
	minStroke       float64
	expandFill      bool
	expandFillLimit float64
	thinStroke      bool
	shadow          *config.DropShadow
	dirty           bool

	animName  string
	animFrame int
	isAnim    bool

	sizingTools map[string]*SizingTool

	current  *CursorBuilder
	deferred *ordmap.Map[string, *CursorBuilder] // keyed by output path, insertion order
}

// Options configures the stroke/fill resolution and thin-stroke rewrite
// behavior of a CursorRenderer, bound to the --base-stroke-width,
// --min-stroke-width, --expand-fill, --expand-fill-limit, and --thin-stroke
// flags of spec §6.
type Options struct {
	BaseStrokeWidth float64
	MinStrokeWidth  float64
	ExpandFill      bool
	ExpandFillLimit float64
	ThinStroke      bool
}

// DefaultOptions returns the spec-documented defaults: BaseStrokeWidth from
// config.BaseStrokeWidth, MinStrokeWidth 1, fill expansion off.
func DefaultOptions() Options {
	return Options{BaseStrokeWidth: config.BaseStrokeWidth, MinStrokeWidth: defaultMinStrokeWidth}
}

// NewCursorRenderer returns an idle renderer. rasterizer is the pluggable
// backend spec §1 treats as an external collaborator.
func NewCursorRenderer(rasterizer Rasterizer, opts Options) *CursorRenderer {
	base := opts.BaseStrokeWidth
	if base == 0 {
		base = config.BaseStrokeWidth
	}
	min := opts.MinStrokeWidth
	if min == 0 {
		min = defaultMinStrokeWidth
	}
	return &CursorRenderer{
		Rasterizer:      rasterizer,
		pipeline:        transform.NewPipeline(),
		sizingTools:     make(map[string]*SizingTool),
		deferred:        ordmap.New[string, *CursorBuilder](),
		baseStroke:      base,
		minStroke:       min,
		expandFill:      opts.ExpandFill,
		expandFillLimit: opts.ExpandFillLimit,
		thinStroke:      opts.ThinStroke,
	}
}

// loadFile loads svgPath's DOM, resetting colorTheme and sizing caches,
// per spec §4.4.
func (r *CursorRenderer) loadFile(cursorName, svgPath, targetName string) error {
	data, err := os.ReadFile(svgPath)
	if err != nil {
		return errorsx.New(errorsx.KindIO, "render.loadFile", err)
	}
	doc, err := svgdom.Parse(bytes.NewReader(data))
	if err != nil {
		return errorsx.New(errorsx.KindSVG, "render.loadFile", err)
	}
	if err := r.pipeline.Run(doc, transform.Params{SVG11Compat: true}); err != nil {
		return errorsx.New(errorsx.KindSVG, "render.loadFile", err)
	}
	meta, err := svgmeta.Read(doc, cursorName)
	if err != nil {
		return errorsx.New(errorsx.KindSVG, "render.loadFile", err)
	}

	r.cursorName = cursorName
	r.svgPath = svgPath
	r.targetName = targetName
	r.doc = doc
	r.meta = meta
	r.colorIdx = buildColorIndex(doc)
	r.dirty = true
	r.current = NewCursorBuilder(targetName)
	r.isAnim = false
	r.animFrame = 0
	return nil
}

// LoadFile is the exported form of loadFile.
func (r *CursorRenderer) LoadFile(cursorName, svgPath, targetName string) error {
	return r.loadFile(cursorName, svgPath, targetName)
}

// SetColors replays the color index, per spec §4.4's setColors.
func (r *CursorRenderer) SetColors(mapping map[string]string) {
	if r.colorIdx == nil {
		return
	}
	r.colorIdx.setColors(mapping)
}

// SetStrokeWidth updates the stroke-width parameter and marks the
// derived DOM dirty.
func (r *CursorRenderer) SetStrokeWidth(w *config.StrokeWidth) {
	r.strokeWidth = w
	r.dirty = true
}

// SetPointerShadow updates the shadow parameter and marks the derived
// DOM dirty.
func (r *CursorRenderer) SetPointerShadow(sh *config.DropShadow) {
	r.shadow = sh
	r.dirty = true
}

// SetAnimation declares whether the current file is frame frameNum of
// animation anim.
func (r *CursorRenderer) SetAnimation(animName string, frameNum int) {
	r.isAnim = animName != ""
	r.animName = animName
	r.animFrame = frameNum
}

// SetCanvasSize selects outputDir's SizingTool, creating it (with
// persisted hotspots, if any) on first use.
func (r *CursorRenderer) SetCanvasSize(outputDir string, scheme config.SizeScheme, persisted config.Hotspots) *SizingTool {
	tool, ok := r.sizingTools[outputDir]
	if !ok {
		tool = NewSizingTool(outputDir, scheme.CanvasSize, persisted)
		r.sizingTools[outputDir] = tool
	} else {
		tool.CanvasSize = scheme.CanvasSize
	}
	return tool
}

// RenderTargetSize recomputes stroke/fill offsets, regenerates the
// variant DOM if dirty, computes alignment, invokes the raster backend,
// and stores the resulting frame in the current CursorBuilder, per spec
// §4.4.
func (r *CursorRenderer) RenderTargetSize(outputDir string, pixels int) error {
	if r.doc == nil || r.meta == nil {
		return errorsx.New(errorsx.KindSVG, "render.RenderTargetSize", fmt.Errorf("no file loaded"))
	}

	strokeOff, fillOff := r.resolveOffsets(pixels)

	if r.dirty {
		params := transform.Params{}
		if r.strokeWidth != nil || r.thinStroke {
			w := r.resolvedStrokeWidth(pixels)
			params.ThinStrokeWidth = &w
		}
		if r.shadow != nil {
			params.DropShadow = &transform.DropShadow{
				Blur: r.shadow.Blur, DX: r.shadow.DX, DY: r.shadow.DY,
				Opacity: r.shadow.Opacity, Color: r.shadow.Color,
			}
		}
		if err := r.pipeline.Run(r.doc, params); err != nil {
			return errorsx.New(errorsx.KindSVG, "render.RenderTargetSize", err)
		}
		r.dirty = false
	}

	tool := r.sizingTools[outputDir]
	if tool == nil {
		tool = r.SetCanvasSize(outputDir, config.SizeSource, nil)
	}

	result, err := tool.Align(r.cursorName, float64(pixels), r.meta.ViewBox, strokeOff, fillOff, r.meta.Hotspot, r.meta.RootAnchor, r.meta.ChildAnchors)
	if err != nil {
		return errorsx.New(errorsx.KindAlignment, "render.RenderTargetSize", err)
	}

	svgdom.SetAttr(svgdom.Root(r.doc), "viewBox", formatViewBox(result.ViewBox))

	img, err := r.Rasterizer.Rasterize(r.doc, pixels, pixels)
	if err != nil {
		return errorsx.New(errorsx.KindSVG, "render.RenderTargetSize", err)
	}

	frameNum := 0
	if r.isAnim {
		frameNum = r.animFrame
	}
	r.current.SetFrame(frameNum, CursorEntry{Image: img, HotspotX: result.HotspotX, HotspotY: result.HotspotY})
	return nil
}

// resolvedStrokeWidth derives the stroke width in source units to apply at
// this target size: the configured or base width, promoted to the
// hair-width threshold sourceCanvas·minStrokeWidth/pixels when it falls
// below it, per spec §4.4.
func (r *CursorRenderer) resolvedStrokeWidth(pixels int) float64 {
	width := r.baseStroke
	if r.strokeWidth != nil {
		width = r.strokeWidth.Value
	}
	sourceCanvas := r.meta.ViewBox.W
	threshold := sourceCanvas * r.minStroke / float64(pixels)
	if width < threshold {
		width = threshold
	}
	return width
}

// resolveOffsets derives the stroke and fill pointWithOffset magnitudes
// from the resolved stroke width, per spec §4.4. A stroke-biased anchor
// always needs the full half-stroke-width padding so the centerline stroke
// isn't clipped at the view-box edge; a fill-biased anchor needs none by
// default, since an opaque fill already reaches the edge it describes.
// --expand-fill promotes the fill offset toward the stroke offset, capped
// at expandFillLimit source units, for shapes whose fill should also clear
// a margin (e.g. a fill inset to avoid anti-aliasing bleed).
func (r *CursorRenderer) resolveOffsets(pixels int) (strokeOff, fillOff float64) {
	strokeOff = r.resolvedStrokeWidth(pixels) / 2
	if r.expandFill {
		fillOff = strokeOff
		if r.expandFillLimit > 0 && fillOff > r.expandFillLimit {
			fillOff = r.expandFillLimit
		}
	}
	return strokeOff, fillOff
}

func formatViewBox(v geom.Rect) string {
	return geom.FormatFrac(v.X) + " " + geom.FormatFrac(v.Y) + " " + geom.FormatFrac(v.W) + " " + geom.FormatFrac(v.H)
}

// SaveCurrent flushes the current builder if the file is a static
// cursor or the last animation frame, per spec §4.4.
func (r *CursorRenderer) SaveCurrent(outputPath string, isLastFrame bool) *CursorBuilder {
	if !r.isAnim {
		b := r.current
		r.current = nil
		return b
	}
	existing, ok := r.deferred.ValueByKeyTry(outputPath)
	if !ok {
		existing = NewCursorBuilder(r.targetName)
		r.deferred.Add(outputPath, existing)
	}
	for _, fn := range r.current.order {
		existing.SetFrame(fn, r.current.frames[fn])
	}
	if isLastFrame {
		r.deferred.Delete(outputPath)
		return existing
	}
	return nil
}

// SaveDeferred flushes all pending animations in the order their output
// paths were first seen, per spec §4.4.
func (r *CursorRenderer) SaveDeferred() []ordmap.KeyValue[string, *CursorBuilder] {
	out := r.deferred.Order
	r.deferred = ordmap.New[string, *CursorBuilder]()
	return out
}

// SaveHotspots returns the hotspots computed so far for every directory
// touched, for persistence via config.WriteHotspots.
func (r *CursorRenderer) SaveHotspots() map[string]config.Hotspots {
	out := make(map[string]config.Hotspots, len(r.sizingTools))
	for dir, tool := range r.sizingTools {
		out[dir] = tool.Touched()
	}
	return out
}

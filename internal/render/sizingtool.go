// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/cursorforge/cursorforge/internal/align"
	"github.com/cursorforge/cursorforge/internal/anchor"
	"github.com/cursorforge/cursorforge/internal/config"
	"github.com/cursorforge/cursorforge/internal/geom"
)

// SizingTool is the per-output-directory sizing/alignment handle spec
// §4.4 calls "sizingTool (per output directory)": it wraps the C4
// alignment engine and the directory's persisted hotspot map, so a
// second build that finds the alignment result unchanged from
// cursor-hotspots.json can skip re-emitting that cursor's packaged output.
type SizingTool struct {
	OutputDir     string
	CanvasSize    float64
	BalanceCanvas bool
	BalanceLimit  float64
	BalanceFactor float64
	Persisted     config.Hotspots
	touched       map[string][2]int
}

// NewSizingTool returns a SizingTool for outputDir, seeded with any
// previously persisted hotspots (nil if this is a first build).
func NewSizingTool(outputDir string, canvasSize float64, persisted config.Hotspots) *SizingTool {
	if persisted == nil {
		persisted = config.Hotspots{}
	}
	return &SizingTool{
		OutputDir:  outputDir,
		CanvasSize: canvasSize,
		Persisted:  persisted,
		touched:    make(map[string][2]int),
	}
}

// Align runs the C4 engine for one (cursorName, target size) pair and
// records the resulting hotspot for later persistence.
func (t *SizingTool) Align(cursorName string, target float64, viewBox geom.Rect, strokeOff, fillOff float64, hotspot, rootAnchor anchor.Point, childAnchors map[string]anchor.Point) (*align.Result, error) {
	res, err := align.Compute(align.Input{
		Target:        target,
		ViewBox:       viewBox,
		CanvasSize:    t.CanvasSize,
		StrokeOffset:  strokeOff,
		FillOffset:    fillOff,
		Hotspot:       hotspot,
		RootAnchor:    rootAnchor,
		ChildAnchors:  childAnchors,
		BalanceCanvas: t.BalanceCanvas,
		BalanceLimit:  t.BalanceLimit,
		BalanceFactor: t.BalanceFactor,
	})
	if err != nil {
		return nil, err
	}
	t.touched[cursorName] = [2]int{res.HotspotX, res.HotspotY}
	return res, nil
}

// Unchanged reports whether cursorName's last-persisted hotspot matches
// its most recently computed one, letting the caller skip re-emitting that
// cursor's packaged output on an incremental run.
func (t *SizingTool) Unchanged(cursorName string) bool {
	prev, ok := t.Persisted[cursorName]
	if !ok {
		return false
	}
	cur, ok := t.touched[cursorName]
	return ok && prev == cur
}

// Touched returns the hotspots computed so far, for persistence via
// config.WriteHotspots.
func (t *SizingTool) Touched() config.Hotspots {
	out := make(config.Hotspots, len(t.touched))
	for k, v := range t.touched {
		out[k] = v
	}
	return out
}

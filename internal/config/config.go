// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config is the typed representation of cursorforge's manifest
// files (spec §3, §6, component C8): render.json, colors.json,
// animations.json, cursor-names.json, and cursor-hotspots.json, plus the
// ThemeConfig/SizeScheme/StrokeWidth/DropShadow/Animation records every
// other component consumes.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cursorforge/cursorforge/internal/errorsx"
)

// BaseStrokeWidth is the build-time constant base stroke used to decide
// whether a StrokeWidth is named "Thin" or "Thick", per spec §3.
const BaseStrokeWidth = 16.0

// SizeScheme is a canvas-enlargement preset, per spec §3.
type SizeScheme struct {
	Name        string
	CanvasSize  float64
	NominalSize float64
	Permanent   bool
}

// Preset size schemes named in spec §3.
var (
	SizeSource = SizeScheme{Name: "", CanvasSize: 1, NominalSize: 1}
	SizeNormal = SizeScheme{Name: "N", CanvasSize: 1.5, NominalSize: 1}
	SizeLarge  = SizeScheme{Name: "L", CanvasSize: 1.25, NominalSize: 1, Permanent: true}
	SizeXLarge = SizeScheme{Name: "XL", CanvasSize: 1.0, NominalSize: 1, Permanent: true}
)

// StrokeWidth is a named stroke-width override, per spec §3. Name, when
// empty, is derived from Value relative to BaseStrokeWidth at variant
// expansion time.
type StrokeWidth struct {
	Value float64
	Name  string
}

// DerivedName returns w's name, computed against base if Name is empty:
// "Thin" below base, "Thick" above, "" at base.
func (w StrokeWidth) DerivedName(base float64) string {
	if w.Name != "" {
		return w.Name
	}
	switch {
	case w.Value < base:
		return "Thin"
	case w.Value > base:
		return "Thick"
	default:
		return ""
	}
}

// DropShadowTarget selects which stage a DropShadow is applied at.
type DropShadowTarget int

const (
	ShadowTargetSVG DropShadowTarget = iota
	ShadowTargetBMP
)

// DropShadow is a drop-shadow parameter set, per spec §3.
type DropShadow struct {
	Target  DropShadowTarget
	Blur    float64
	DX, DY  float64
	Opacity float64
	Color   string // "0xAARRGGBB" in config files
}

// Animation is an animated cursor's frame count and timing, per spec §3.
type Animation struct {
	Name       string
	FrameCount int
	Jiffies    int // 1 jiffy = 1/60s; derived from a millisecond duration
}

// ColorMapping is one match→replace hex-string pair for a palette.
type ColorMapping struct {
	Match, Replace string
}

// ThemeConfig is one source or expanded theme configuration, per spec §3.
type ThemeConfig struct {
	Name          string
	Dir           string
	Out           string
	Colors        []ColorMapping
	Cursors       []string // filter set; nil means "all cursors in dir"
	Sizes         []SizeScheme
	Resolutions   []int
	StrokeWidth   *StrokeWidth
	PointerShadow *DropShadow
	SizeScheme    SizeScheme
}

// RenderManifest is the parsed form of render.json.
type RenderManifest map[string]ThemeEntry

// ThemeEntry is one theme-name's entry in render.json.
type ThemeEntry struct {
	Dir         string         `json:"dir"`
	Out         string         `json:"out,omitempty"`
	Cursors     []string       `json:"cursors,omitempty"`
	Sizes       []string       `json:"sizes,omitempty"`
	Resolutions []int          `json:"resolutions,omitempty"`
	Colors      []colorsEntry  `json:"colors,omitempty"`
}

type colorsEntry struct {
	Match   string `json:"match"`
	Replace string `json:"replace"`
}

// ReadRenderManifest parses render.json from r.
func ReadRenderManifest(r io.Reader) (RenderManifest, error) {
	var m RenderManifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errorsx.New(errorsx.KindConfig, "config.ReadRenderManifest", err)
	}
	for name, entry := range m {
		if strings.TrimSpace(name) == "" {
			return nil, errorsx.New(errorsx.KindConfig, "config.ReadRenderManifest", fmt.Errorf("blank theme name"))
		}
		_ = entry
	}
	return m, nil
}

// ColorPalettes is the parsed form of colors.json: palette name →
// (source hex → target hex).
type ColorPalettes map[string]map[string]string

// ReadColorPalettes parses colors.json from r.
func ReadColorPalettes(r io.Reader) (ColorPalettes, error) {
	var m ColorPalettes
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errorsx.New(errorsx.KindConfig, "config.ReadColorPalettes", err)
	}
	return m, nil
}

// AnimationManifest is the parsed form of animations.json.
type AnimationManifest map[string]animationEntry

type animationEntry struct {
	Frames   int `json:"frames"`
	Duration int `json:"duration"` // milliseconds
}

// ReadAnimationManifest parses animations.json from r, converting each
// entry's millisecond duration to jiffies (1/60s), rounding to the
// nearest integer jiffy.
func ReadAnimationManifest(r io.Reader) (map[string]Animation, error) {
	var raw AnimationManifest
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errorsx.New(errorsx.KindConfig, "config.ReadAnimationManifest", err)
	}
	out := make(map[string]Animation, len(raw))
	for name, e := range raw {
		out[name] = Animation{
			Name:       name,
			FrameCount: e.Frames,
			Jiffies:    msToJiffies(e.Duration),
		}
	}
	return out, nil
}

func msToJiffies(ms int) int {
	return int(float64(ms)*60/1000 + 0.5)
}

// CursorNames is the parsed form of a platform-specific cursor-names.json:
// SVG base name → target output name.
type CursorNames map[string]string

// ReadCursorNames parses a cursor-names.json file from r.
func ReadCursorNames(r io.Reader) (CursorNames, error) {
	var m CursorNames
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errorsx.New(errorsx.KindConfig, "config.ReadCursorNames", err)
	}
	return m, nil
}

// Hotspots is the parsed form of a per-directory cursor-hotspots.json:
// cursor name → (x, y).
type Hotspots map[string][2]int

// ReadHotspots parses cursor-hotspots.json from r.
func ReadHotspots(r io.Reader) (Hotspots, error) {
	var m Hotspots
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errorsx.New(errorsx.KindConfig, "config.ReadHotspots", err)
	}
	return m, nil
}

// WriteHotspots serializes h as indented JSON to w.
func WriteHotspots(w io.Writer, h Hotspots) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(h)
}

// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cursorset supplies the default hotspot table for the standard
// cursor set (arrow, pointer, text, resize handles, and so on), used
// when an SVG cursor file declares no explicit hotspot anchor. It is
// adapted from the teacher's cursors.Hotspots table, which expresses
// each point on a 0-256 scale relative to the drawing's top-left corner
// — cursorforge keeps that convention since it is exactly the fractional
// coordinate space a 256x256 source viewBox already uses.
package cursorset

// DefaultHotspots maps a cursor's base SVG filename (kebab-case, no
// extension) to its conventional hotspot on a 0-256 scale. A cursor
// whose SVG carries no hotspot anchor falls back to this table; a
// cursor absent from it falls back further to the view-box center.
var DefaultHotspots = map[string][2]float64{
	"arrow":                {88, 80},
	"context-menu":         {72, 80},
	"help":                 {128, 128},
	"pointer":              {104, 76},
	"progress":             {64, 24},
	"wait":                 {132, 127},
	"cell":                 {125, 128},
	"crosshair":            {128, 128},
	"text":                 {128, 128},
	"vertical-text":        {128, 124},
	"alias":                {156, 80},
	"copy":                 {64, 24},
	"move":                 {128, 128},
	"not-allowed":          {64, 24},
	"grab":                 {124, 124},
	"grabbing":             {124, 124},
	"resize-col":           {128, 128},
	"resize-row":           {128, 128},
	"resize-up":            {128, 128},
	"resize-right":         {128, 128},
	"resize-down":          {128, 128},
	"resize-left":          {128, 128},
	"resize-n":             {128, 128},
	"resize-e":             {128, 128},
	"resize-s":             {128, 128},
	"resize-w":             {128, 128},
	"resize-ne":            {128, 128},
	"resize-nw":            {128, 128},
	"resize-se":            {128, 128},
	"resize-sw":            {128, 128},
	"resize-ew":            {128, 128},
	"resize-ns":            {128, 128},
	"resize-nesw":          {128, 128},
	"resize-nwse":          {128, 128},
	"zoom-in":              {128, 128},
	"zoom-out":             {128, 128},
	"screenshot-selection": {128, 128},
	"screenshot-window":    {128, 128},
	"poof":                 {64, 24},
}

// Resolve returns the default hotspot for baseName scaled from the 0-256
// table onto a sourceExtent-sized view box, and whether baseName was
// found in the table.
func Resolve(baseName string, sourceExtent float64) (x, y float64, ok bool) {
	hs, ok := DefaultHotspots[baseName]
	if !ok {
		return 0, 0, false
	}
	scale := sourceExtent / 256
	return hs[0] * scale, hs[1] * scale, true
}

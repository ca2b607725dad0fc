// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "image"

// CursorEntry is one frame of a cursor: its bitmap and integer hotspot,
// the container-agnostic record named in spec §3.
type CursorEntry struct {
	Image    image.Image
	HotspotX int
	HotspotY int
}

// CursorBuilder accumulates a cursor's frames in memory until flushed: a
// static cursor flushes immediately with a single frame, an animation
// defers until its directory completes because frames arrive as
// separate SVG files, per spec §3's Lifecycles.
type CursorBuilder struct {
	Name   string
	frames map[int]CursorEntry
	order  []int
}

// NewCursorBuilder returns an empty builder for the named output cursor.
func NewCursorBuilder(name string) *CursorBuilder {
	return &CursorBuilder{Name: name, frames: make(map[int]CursorEntry)}
}

// SetFrame stores entry as frameNum, overwriting any prior value for
// that frame number.
func (b *CursorBuilder) SetFrame(frameNum int, entry CursorEntry) {
	if _, exists := b.frames[frameNum]; !exists {
		b.order = append(b.order, frameNum)
	}
	b.frames[frameNum] = entry
}

// FrameCount returns the number of distinct frames accumulated.
func (b *CursorBuilder) FrameCount() int { return len(b.order) }

// Frames returns the accumulated entries ordered by ascending frame
// number, per spec §5's "frames of an animation are accumulated in
// SVG-filename order".
func (b *CursorBuilder) Frames() []CursorEntry {
	ordered := append([]int(nil), b.order...)
	sortInts(ordered)
	out := make([]CursorEntry, len(ordered))
	for i, n := range ordered {
		out[i] = b.frames[n]
	}
	return out
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/cursorforge/cursorforge/internal/config"
	"github.com/cursorforge/cursorforge/internal/render"
)

type fakeRasterizer struct{}

func (fakeRasterizer) Rasterize(doc *html.Node, width, height int) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	return img, nil
}

const arrowSVG = `<svg viewBox="0 0 32 32" xmlns="http://www.w3.org/2000/svg">` +
	`<circle id="cursorforge-hotspot" class="bias-center" cx="16" cy="16" r="1"/>` +
	`<path d="M0 0 L32 32" stroke="#ff0000" stroke-width="2"/>` +
	`</svg>`

func writeSVG(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(arrowSVG), 0o644))
}

func TestGroupFilesSeparatesStaticAndAnimated(t *testing.T) {
	dir := t.TempDir()
	writeSVG(t, dir, "arrow.svg")
	writeSVG(t, dir, "wait-001.svg")
	writeSVG(t, dir, "wait-002.svg")
	writeSVG(t, dir, "wait-003.svg")

	groups, err := groupFiles(dir)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	byName := make(map[string]fileGroup, len(groups))
	for _, g := range groups {
		byName[g.baseName] = g
	}

	require.False(t, byName["arrow"].isAnim)
	require.Equal(t, filepath.Join(dir, "arrow.svg"), byName["arrow"].single)

	require.True(t, byName["wait"].isAnim)
	require.Len(t, byName["wait"].frames, 3)
}

func TestBuildThemeInvokesStaticCallback(t *testing.T) {
	dir := t.TempDir()
	writeSVG(t, dir, "arrow.svg")

	var gotName string
	var gotHotspotSet bool
	d := &Driver{
		Renderer:   render.NewCursorRenderer(fakeRasterizer{}, render.DefaultOptions()),
		OutputRoot: t.TempDir(),
		OnStaticCursor: func(outputDir, name string, entry render.CursorEntry, hotspotX, hotspotY int) error {
			gotName = name
			gotHotspotSet = true
			return nil
		},
	}

	cfg := config.ThemeConfig{Dir: dir, Out: "theme1", SizeScheme: config.SizeSource}
	require.NoError(t, d.BuildTheme(context.Background(), cfg, []int{32}))
	require.Equal(t, "arrow", gotName)
	require.True(t, gotHotspotSet)
}

func TestBuildThemeFlushesAnimationWithConfiguredJiffies(t *testing.T) {
	dir := t.TempDir()
	writeSVG(t, dir, "wait-001.svg")
	writeSVG(t, dir, "wait-002.svg")

	var gotJiffies int
	var gotFrames int
	d := &Driver{
		Renderer:   render.NewCursorRenderer(fakeRasterizer{}, render.DefaultOptions()),
		OutputRoot: t.TempDir(),
		Animations: map[string]config.Animation{
			"wait": {Name: "wait", FrameCount: 2, Jiffies: 5},
		},
		OnAnimatedCursor: func(outputDir, name string, frames []render.CursorEntry, jiffies int) error {
			gotJiffies = jiffies
			gotFrames = len(frames)
			return nil
		},
	}

	cfg := config.ThemeConfig{Dir: dir, Out: "theme1", SizeScheme: config.SizeSource}
	require.NoError(t, d.BuildTheme(context.Background(), cfg, []int{32}))
	require.Equal(t, 5, gotJiffies)
	require.Equal(t, 2, gotFrames)
}

func TestBuildThemeDefaultsJiffiesWhenUnconfigured(t *testing.T) {
	dir := t.TempDir()
	writeSVG(t, dir, "wait-001.svg")

	var gotJiffies int
	d := &Driver{
		Renderer:   render.NewCursorRenderer(fakeRasterizer{}, render.DefaultOptions()),
		OutputRoot: t.TempDir(),
		OnAnimatedCursor: func(outputDir, name string, frames []render.CursorEntry, jiffies int) error {
			gotJiffies = jiffies
			return nil
		},
	}

	cfg := config.ThemeConfig{Dir: dir, Out: "theme1", SizeScheme: config.SizeSource}
	require.NoError(t, d.BuildTheme(context.Background(), cfg, []int{32}))
	require.Equal(t, 3, gotJiffies)
}

func TestBuildThemeFiltersCursors(t *testing.T) {
	dir := t.TempDir()
	writeSVG(t, dir, "arrow.svg")
	writeSVG(t, dir, "hand.svg")

	var seen []string
	d := &Driver{
		Renderer:   render.NewCursorRenderer(fakeRasterizer{}, render.DefaultOptions()),
		OutputRoot: t.TempDir(),
		OnStaticCursor: func(outputDir, name string, entry render.CursorEntry, hotspotX, hotspotY int) error {
			seen = append(seen, name)
			return nil
		},
	}

	cfg := config.ThemeConfig{Dir: dir, Out: "theme1", SizeScheme: config.SizeSource, Cursors: []string{"hand"}}
	require.NoError(t, d.BuildTheme(context.Background(), cfg, []int{32}))
	require.Equal(t, []string{"hand"}, seen)
}

func TestTargetNameAppliesCursorNames(t *testing.T) {
	d := &Driver{CursorNames: config.CursorNames{"arrow": "left_ptr"}}
	require.Equal(t, "left_ptr", d.targetName("arrow"))
	require.Equal(t, "hand", d.targetName("hand"))
}

func TestCancelStopsBeforeNextGroup(t *testing.T) {
	dir := t.TempDir()
	writeSVG(t, dir, "arrow.svg")
	writeSVG(t, dir, "hand.svg")

	var seen []string
	stopped := false
	d := &Driver{
		Renderer:   render.NewCursorRenderer(fakeRasterizer{}, render.DefaultOptions()),
		OutputRoot: t.TempDir(),
		Cancel:     func() bool { return stopped },
		OnStaticCursor: func(outputDir, name string, entry render.CursorEntry, hotspotX, hotspotY int) error {
			seen = append(seen, name)
			stopped = true
			return nil
		},
	}

	cfg := config.ThemeConfig{Dir: dir, Out: "theme1", SizeScheme: config.SizeSource}
	require.NoError(t, d.BuildTheme(context.Background(), cfg, []int{32}))
	require.Len(t, seen, 1)
}

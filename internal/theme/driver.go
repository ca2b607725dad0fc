// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package theme implements the theme driver (spec §4, §5, component C7):
// it walks an SVG source directory, groups files into static cursors and
// animation frame sequences, dispatches each to the cursor renderer for
// every configured size/resolution, and flushes deferred animations at the
// end of the directory. The per-directory hotspot map stays on the renderer
// (CursorRenderer.SaveHotspots) for the caller to persist.
package theme

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cursorforge/cursorforge/internal/config"
	"github.com/cursorforge/cursorforge/internal/containers/ani"
	"github.com/cursorforge/cursorforge/internal/containers/cur"
	"github.com/cursorforge/cursorforge/internal/errorsx"
	"github.com/cursorforge/cursorforge/internal/fsutil"
	"github.com/cursorforge/cursorforge/internal/render"
)

// frameFileRe recognizes an animation frame filename, "name-NN.svg" or
// "name-NNN.svg", per spec §3's Animation record.
var frameFileRe = regexp.MustCompile(`^(.+)-(\d{2,3})$`)

// fileGroup is one static cursor or animation's source files, base name
// derived by stripping any frame-number suffix.
type fileGroup struct {
	baseName string
	isAnim   bool
	frames   map[int]string // frame number -> svg path, only set when isAnim
	single   string          // svg path, only set when !isAnim
}

// groupFiles partitions dir's *.svg files into static cursors and
// animation frame sequences.
func groupFiles(dir string) ([]fileGroup, error) {
	files, err := fsutil.SVGFiles(dir)
	if err != nil {
		return nil, errorsx.New(errorsx.KindIO, "theme.groupFiles", err)
	}

	byBase := make(map[string]*fileGroup)
	var order []string
	for _, name := range files {
		f := filepath.Join(dir, name)
		base := strings.TrimSuffix(name, ".svg")
		if m := frameFileRe.FindStringSubmatch(base); m != nil {
			baseName := m[1]
			frameNum, _ := strconv.Atoi(m[2])
			g, ok := byBase[baseName]
			if !ok {
				g = &fileGroup{baseName: baseName, isAnim: true, frames: make(map[int]string)}
				byBase[baseName] = g
				order = append(order, baseName)
			}
			g.frames[frameNum] = f
			continue
		}
		g, ok := byBase[base]
		if !ok {
			g = &fileGroup{baseName: base}
			byBase[base] = g
			order = append(order, base)
		}
		if g.isAnim {
			// a base name that already has numbered frames also has a
			// plain file: keep it as an animation, the bare file is
			// spurious and skipped (best-effort per spec §9's Open
			// Question on silently-suppressed errors).
			continue
		}
		g.single = f
	}

	sort.Strings(order)
	out := make([]fileGroup, 0, len(order))
	for _, name := range order {
		out = append(out, *byBase[name])
	}
	return out, nil
}

// CancelFunc is polled at file and directory boundaries; when it returns
// true the driver stops cooperatively, per spec §5's cancellation model.
type CancelFunc func() bool

// Driver drives the renderer over one theme's expanded ThemeConfig.
type Driver struct {
	Renderer    *render.CursorRenderer
	OutputRoot  string
	CursorNames config.CursorNames
	Animations  map[string]config.Animation
	Cancel      CancelFunc

	// Strict promotes a per-cursor render failure (spec §9's Open Question
	// on silent suppression) from a warn-and-continue to a fatal error
	// that aborts the whole theme.
	Strict bool

	// UpdateExisting skips re-emitting a cursor's packaged output
	// (CUR/ANI/Xcursor/Mousecape) when cursor-hotspots.json shows its
	// alignment is unchanged since the directory's last build.
	UpdateExisting bool

	// OnStaticCursor/OnAnimatedCursor, when non-nil, receive the rendered
	// frame(s) of a completed static/animated cursor so the caller can
	// encode and route them to Windows, Xcursor, or Mousecape packaging as
	// appropriate.
	OnStaticCursor    func(outputDir, name string, entry render.CursorEntry, hotspotX, hotspotY int) error
	OnAnimatedCursor  func(outputDir, name string, frames []render.CursorEntry, jiffies int) error
}

// BuildTheme renders every cursor in cfg.Dir across cfg.Resolutions (or
// across resolutions when the theme declares none) and flushes deferred
// animations at the end of the directory, per spec §4.4, §4.2, and §5. It
// does not write cursor-hotspots.json; the caller persists the renderer's
// SaveHotspots result.
func (d *Driver) BuildTheme(ctx context.Context, cfg config.ThemeConfig, resolutions []int) error {
	if len(cfg.Resolutions) > 0 {
		resolutions = cfg.Resolutions
	}
	groups, err := groupFiles(cfg.Dir)
	if err != nil {
		return err
	}

	outDir := filepath.Join(d.OutputRoot, cfg.Out)
	if err := fsutil.EnsureDir(outDir); err != nil {
		return errorsx.New(errorsx.KindIO, "theme.BuildTheme", err)
	}

	persisted := d.loadPersistedHotspots(outDir)

	for _, g := range groups {
		if d.cancelled() {
			return nil
		}
		if cfg.Cursors != nil && !contains(cfg.Cursors, g.baseName) {
			continue
		}
		if err := d.renderGroup(ctx, cfg, g, outDir, resolutions, persisted); err != nil {
			if d.Strict {
				return err
			}
			errorsx.Warn(ctx, "skip cursor", "cursor", g.baseName, err)
		}
	}

	if d.cancelled() {
		return nil
	}

	if d.OnAnimatedCursor != nil {
		tool := d.Renderer.SetCanvasSize(outDir, cfg.SizeScheme, persisted)
		for _, kv := range d.Renderer.SaveDeferred() {
			path, builder := kv.Key, kv.Value
			if err := d.flushAnimation(path, builder, d.jiffiesForTarget(builder.Name), tool); err != nil {
				errorsx.Warn(ctx, "flush deferred animation", "path", path, err)
			}
		}
	}

	return nil
}

// loadPersistedHotspots reads outDir's cursor-hotspots.json from a prior
// build, returning nil (a first build) if absent or unreadable.
func (d *Driver) loadPersistedHotspots(outDir string) config.Hotspots {
	f, err := os.Open(filepath.Join(outDir, "cursor-hotspots.json"))
	if err != nil {
		return nil
	}
	defer f.Close()
	h, err := config.ReadHotspots(f)
	if err != nil {
		return nil
	}
	return h
}

func (d *Driver) renderGroup(ctx context.Context, cfg config.ThemeConfig, g fileGroup, outDir string, resolutions []int, persisted config.Hotspots) error {
	targetName := d.targetName(g.baseName)

	if g.isAnim {
		anim, ok := d.Animations[g.baseName]
		if !ok {
			anim = config.Animation{Name: g.baseName, FrameCount: len(g.frames), Jiffies: 3}
		}
		frameNums := make([]int, 0, len(g.frames))
		for n := range g.frames {
			frameNums = append(frameNums, n)
		}
		sort.Ints(frameNums)

		for i, n := range frameNums {
			if d.cancelled() {
				return nil
			}
			path := g.frames[n]
			if err := d.Renderer.LoadFile(g.baseName, path, targetName); err != nil {
				return err
			}
			d.Renderer.SetColors(colorMapFromConfig(cfg))
			d.Renderer.SetStrokeWidth(cfg.StrokeWidth)
			d.Renderer.SetPointerShadow(cfg.PointerShadow)
			d.Renderer.SetAnimation(g.baseName, n)
			d.Renderer.SetCanvasSize(outDir, cfg.SizeScheme, persisted)

			isLast := i == len(frameNums)-1
			for _, px := range resolutions {
				if err := d.Renderer.RenderTargetSize(outDir, px); err != nil {
					return err
				}
			}
			if builder := d.Renderer.SaveCurrent(filepath.Join(outDir, targetName), isLast); builder != nil && isLast {
				tool := d.Renderer.SetCanvasSize(outDir, cfg.SizeScheme, persisted)
				if err := d.flushAnimation(filepath.Join(outDir, targetName), builder, anim.Jiffies, tool); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := d.Renderer.LoadFile(g.baseName, g.single, targetName); err != nil {
		return err
	}
	d.Renderer.SetColors(colorMapFromConfig(cfg))
	d.Renderer.SetStrokeWidth(cfg.StrokeWidth)
	d.Renderer.SetPointerShadow(cfg.PointerShadow)
	d.Renderer.SetAnimation("", 0)
	tool := d.Renderer.SetCanvasSize(outDir, cfg.SizeScheme, persisted)

	for _, px := range resolutions {
		if err := d.Renderer.RenderTargetSize(outDir, px); err != nil {
			return err
		}
	}
	builder := d.Renderer.SaveCurrent(filepath.Join(outDir, targetName), true)
	if builder != nil && d.OnStaticCursor != nil {
		frames := builder.Frames()
		if len(frames) > 0 {
			if d.UpdateExisting && tool.Unchanged(g.baseName) {
				return nil
			}
			f := frames[0]
			if err := d.OnStaticCursor(outDir, targetName, f, f.HotspotX, f.HotspotY); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Driver) flushAnimation(outputPath string, builder *render.CursorBuilder, jiffies int, tool *render.SizingTool) error {
	frames := builder.Frames()
	if d.OnAnimatedCursor == nil || len(frames) == 0 {
		return nil
	}
	if jiffies <= 0 {
		jiffies = 3
	}
	targetName := filepath.Base(outputPath)
	if d.UpdateExisting && tool != nil && tool.Unchanged(d.baseNameForTarget(targetName)) {
		return nil
	}
	return d.OnAnimatedCursor(filepath.Dir(outputPath), targetName, frames, jiffies)
}

// baseNameForTarget reverse-looks-up a rendered target name's cursor-
// hotspots.json key (the group's source base name), matching
// jiffiesForTarget's lookup against CursorNames.
func (d *Driver) baseNameForTarget(targetName string) string {
	for baseName, name := range d.CursorNames {
		if name == targetName {
			return baseName
		}
	}
	return targetName
}

func (d *Driver) targetName(baseName string) string {
	if d.CursorNames != nil {
		if name, ok := d.CursorNames[baseName]; ok {
			return name
		}
	}
	return baseName
}

// jiffiesForTarget reverse-looks-up an animation's configured jiffies
// from its rendered target name, falling back to baseName equality when
// no CursorNames rename applies.
func (d *Driver) jiffiesForTarget(targetName string) int {
	for baseName, name := range d.CursorNames {
		if name == targetName {
			if anim, ok := d.Animations[baseName]; ok {
				return anim.Jiffies
			}
		}
	}
	if anim, ok := d.Animations[targetName]; ok {
		return anim.Jiffies
	}
	return 0
}

func (d *Driver) cancelled() bool {
	return d.Cancel != nil && d.Cancel()
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func colorMapFromConfig(cfg config.ThemeConfig) map[string]string {
	out := make(map[string]string, len(cfg.Colors))
	for _, m := range cfg.Colors {
		out[strings.ToLower(m.Match)] = m.Replace
	}
	return out
}

// EncodeCUR turns one static rendered frame into a complete CUR file.
func EncodeCUR(entry render.CursorEntry) ([]byte, error) {
	curEntry, err := cur.NewEntry(entry.Image, uint16(entry.HotspotX), uint16(entry.HotspotY))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := cur.Encode(&buf, []cur.Entry{curEntry}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeANI turns an animation's rendered frames into a complete ANI
// file: each frame becomes its own CUR payload wrapped by ani.Encode,
// per spec §4.6.
func EncodeANI(frames []render.CursorEntry, jiffies int) ([]byte, error) {
	curFrames := make([][]byte, 0, len(frames))
	for _, f := range frames {
		b, err := EncodeCUR(f)
		if err != nil {
			return nil, err
		}
		curFrames = append(curFrames, b)
	}
	var buf bytes.Buffer
	if err := ani.Encode(&buf, curFrames, uint32(jiffies)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

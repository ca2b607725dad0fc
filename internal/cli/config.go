// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli implements the cursorforge command line (spec §6): a
// single `render` command that loads a project's render.json/colors.json
// /animations.json/cursor-names.json manifests, expands variants, and
// drives the theme builder, modeled on the teacher's cli package's
// config-file-plus-flag-override precedence (cli/config.go) and built on
// github.com/spf13/cobra, a dependency already present (indirectly) in
// the teacher's own module graph.
package cli

import (
	"github.com/cursorforge/cursorforge/internal/config"
)

// RenderOptions is the parsed form of the render command's flags, per
// spec §6's CLI surface.
type RenderOptions struct {
	ProjectPath string
	BuildDir    string
	Sources     []string // --source, repeatable
	Names       []string // --name, repeatable (paired positionally with Sources)

	AnimationsFile string
	Colors         []string // --color, palette names to render
	ColorMapFile   string

	WindowsCursors     bool
	WindowsNamesFile   string
	LinuxCursors       bool
	LinuxNamesFile     string

	PointerShadow   *config.DropShadow
	NoShadowAlso    bool
	StrokeWidths    []config.StrokeWidth
	DefaultStrokeAlso bool
	BaseStrokeWidth float64
	MinStrokeWidth  float64

	ExpandFill      bool
	ExpandFillLimit float64
	ThinStroke      bool

	AllVariants bool
	SizeSchemes []string // -s
	Resolutions []int    // -r
	Themes      []string // -t
	Cursors     []string // -f
	AllCursors  bool

	UpdateExisting bool
	Strict         bool
	Watch          bool
	PermanentSuffix bool
}

// DefaultRenderOptions returns a RenderOptions with spec-documented
// defaults: BaseStrokeWidth from config.BaseStrokeWidth, MinStrokeWidth 1,
// and the Large/XLarge "permanent" size schemes named in the output
// directory suffix (the majority-documented behavior for Open Question 3).
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		BuildDir:        "build",
		BaseStrokeWidth: config.BaseStrokeWidth,
		MinStrokeWidth:  1.0,
		PermanentSuffix: true,
	}
}

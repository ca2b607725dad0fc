// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/cursorforge/cursorforge/internal/config"
	"github.com/cursorforge/cursorforge/internal/containers/mousecape"
	"github.com/cursorforge/cursorforge/internal/containers/xcursor"
	"github.com/cursorforge/cursorforge/internal/errorsx"
	"github.com/cursorforge/cursorforge/internal/fsutil"
	"github.com/cursorforge/cursorforge/internal/render"
	"github.com/cursorforge/cursorforge/internal/theme"
	"github.com/cursorforge/cursorforge/internal/variant"
)

// NewRenderCommand returns the `render` subcommand. rasterizer is the
// pluggable SVG-to-bitmap backend (spec §1 leaves it an external
// collaborator); cursorforge ships no concrete implementation, so callers
// of NewRootCmd must supply one or the command fails fast with an
// Unsupported error before touching any file.
func NewRenderCommand(rasterizer render.Rasterizer) *cobra.Command {
	opts := DefaultRenderOptions()
	var (
		strokeWidthFlags []string
		colorFlags       []string
		sizeFlags        []string
		resolutionFlags  []int
		themeFlags       []string
		cursorFlags      []string
		shadowFlag       string
	)

	cmd := &cobra.Command{
		Use:   "render [project-path]",
		Short: "Render a cursor theme from SVG sources and a manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.ProjectPath = args[0]
			}
			opts.Colors = colorFlags
			opts.SizeSchemes = sizeFlags
			opts.Resolutions = resolutionFlags
			opts.Themes = themeFlags
			opts.Cursors = cursorFlags

			if err := parseStrokeWidths(&opts, strokeWidthFlags); err != nil {
				return errorsx.New(errorsx.KindArg, "cli.render", err)
			}
			if shadowFlag != "" || cmd.Flags().Changed("pointer-shadow") {
				sh, err := parseShadow(shadowFlag)
				if err != nil {
					return errorsx.New(errorsx.KindArg, "cli.render", err)
				}
				opts.PointerShadow = sh
			}

			return RunRender(cmd.Context(), rasterizer, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.BuildDir, "build-dir", opts.BuildDir, "output directory for rendered themes")
	flags.StringArrayVar(&opts.Sources, "source", nil, "SVG source directory (repeatable, paired with --name)")
	flags.StringArrayVar(&opts.Names, "name", nil, "source theme name (repeatable, paired with --source)")
	flags.StringVar(&opts.AnimationsFile, "animations", "", "path to animations.json")
	flags.StringArrayVar(&colorFlags, "color", nil, "named color palette to render (repeatable)")
	flags.StringVar(&opts.ColorMapFile, "color-map", "", "path to colors.json")
	flags.BoolVar(&opts.WindowsCursors, "windows-cursors", false, "write Windows CUR/ANI output")
	flags.StringVar(&opts.WindowsNamesFile, "windows-cursors-names", "", "cursor-names.json for Windows output names")
	flags.BoolVar(&opts.LinuxCursors, "linux-cursors", false, "write Linux Xcursor output")
	flags.StringVar(&opts.LinuxNamesFile, "linux-cursors-names", "", "cursor-names.json for Linux output names")
	flags.StringVar(&shadowFlag, "pointer-shadow", "", "drop-shadow params (blur:dx:dy:opacity:color)")
	flags.BoolVar(&opts.NoShadowAlso, "no-shadow-also", false, "also render a no-shadow variant")
	flags.StringArrayVar(&strokeWidthFlags, "stroke-width", nil, "stroke width override w[:name] (repeatable)")
	flags.BoolVar(&opts.DefaultStrokeAlso, "default-stroke-also", false, "also render the base stroke width")
	flags.Float64Var(&opts.BaseStrokeWidth, "base-stroke-width", opts.BaseStrokeWidth, "base stroke width in source units")
	flags.Float64Var(&opts.MinStrokeWidth, "min-stroke-width", opts.MinStrokeWidth, "minimum on-screen stroke width in pixels")
	flags.BoolVar(&opts.ExpandFill, "expand-fill", false, "promote fill offsets toward stroke offsets below the limit")
	flags.Float64Var(&opts.ExpandFillLimit, "expand-fill-limit", 0, "fill-expansion limit in source units")
	flags.BoolVar(&opts.ThinStroke, "thin-stroke", false, "rewrite stroke-width attributes to the resolved width")
	flags.BoolVar(&opts.AllVariants, "all-variants", false, "render all size schemes and color palettes unless narrowed by -s/--color, ignoring -t theme filters")
	flags.StringArrayVarP(&sizeFlags, "size-scheme", "s", nil, "size scheme to render: '', N, L, or XL (repeatable)")
	flags.IntSliceVarP(&resolutionFlags, "resolution", "r", nil, "target pixel size to render (repeatable)")
	flags.StringArrayVarP(&themeFlags, "theme", "t", nil, "source theme name to render (repeatable)")
	flags.StringArrayVarP(&cursorFlags, "cursor", "f", nil, "cursor base name to render (repeatable)")
	flags.BoolVar(&opts.AllCursors, "all-cursors", false, "render every cursor, ignoring --cursor filters")
	flags.BoolVar(&opts.UpdateExisting, "update-existing", false, "skip cursors whose alignment is unchanged since the last build")
	flags.BoolVar(&opts.Strict, "strict", false, "promote recoverable per-file warnings to fatal errors")
	flags.BoolVar(&opts.Watch, "watch", false, "re-render on source file changes")
	flags.BoolVar(&opts.PermanentSuffix, "permanent-suffix", true, "suffix the output directory for permanent size schemes, rather than a separate directory")

	return cmd
}

// RunRender executes one render invocation: it loads manifests, expands
// variants, and drives the theme builder and container writers for every
// platform the flags request.
func RunRender(ctx context.Context, rasterizer render.Rasterizer, opts RenderOptions) error {
	if rasterizer == nil {
		return errorsx.New(errorsx.KindUnsupported, "cli.RunRender",
			fmt.Errorf("no rasterizer backend configured: cursorforge ships no concrete SVG rasterizer, wire one via cli.NewRenderCommand"))
	}

	projectPath, err := resolvePath(opts.ProjectPath)
	if err != nil {
		return errorsx.New(errorsx.KindArg, "cli.RunRender", err)
	}
	buildDir, err := resolvePath(opts.BuildDir)
	if err != nil {
		return errorsx.New(errorsx.KindArg, "cli.RunRender", err)
	}

	sources, err := loadSources(projectPath, opts)
	if err != nil {
		return err
	}

	palettes, err := loadColorPalettes(opts)
	if err != nil {
		return err
	}
	animations, err := loadAnimations(opts)
	if err != nil {
		return err
	}

	axes := buildAxes(opts, palettes)
	expanded, err := variant.Expand(sources, axes)
	if err != nil {
		return errorsx.New(errorsx.KindConfig, "cli.RunRender", err)
	}
	expanded = filterThemes(expanded, opts)
	expanded = applyPermanentSuffix(expanded, opts.PermanentSuffix)

	rr := render.NewCursorRenderer(rasterizer, render.Options{
		BaseStrokeWidth: opts.BaseStrokeWidth,
		MinStrokeWidth:  opts.MinStrokeWidth,
		ExpandFill:      opts.ExpandFill,
		ExpandFillLimit: opts.ExpandFillLimit,
		ThinStroke:      opts.ThinStroke,
	})
	d := &theme.Driver{
		Renderer:       rr,
		OutputRoot:     buildDir,
		Animations:     animations,
		Strict:         opts.Strict,
		UpdateExisting: opts.UpdateExisting,
	}

	var windowsNames, linuxNames config.CursorNames
	if opts.WindowsCursors {
		windowsNames, err = loadCursorNames(opts.WindowsNamesFile)
		if err != nil {
			return err
		}
	}
	if opts.LinuxCursors {
		linuxNames, err = loadCursorNames(opts.LinuxNamesFile)
		if err != nil {
			return err
		}
	}

	profile := termenv.ColorProfile()
	summary := newBuildSummary(profile)

	for _, cfg := range expanded {
		if d.Cancel != nil && d.Cancel() {
			break
		}
		themeOut := filepath.Join(buildDir, cfg.Out)
		cursorNamesForRun := windowsNames
		if cursorNamesForRun == nil {
			cursorNamesForRun = linuxNames
		}
		d.CursorNames = cursorNamesForRun

		var capeCursors = map[string]mousecape.Cursor{}
		var xcursorLines []xcursor.Line

		d.OnStaticCursor = func(outputDir, name string, entry render.CursorEntry, hotspotX, hotspotY int) error {
			summary.cursors++
			if opts.WindowsCursors {
				if err := writeStaticCUR(outputDir, name, entry); err != nil {
					return err
				}
			}
			if opts.LinuxCursors {
				xcursorLines = append(xcursorLines, xcursor.Line{
					NominalSize: entry.Image.Bounds().Dx(), FrameNo: 0,
					Xhot: hotspotX, Yhot: hotspotY, Filename: name,
				})
			}
			accumulateMousecapeStatic(capeCursors, name, entry, hotspotX, hotspotY)
			return nil
		}
		d.OnAnimatedCursor = func(outputDir, name string, frames []render.CursorEntry, jiffies int) error {
			summary.animations++
			if opts.WindowsCursors {
				if err := writeAnimatedANI(outputDir, name, frames, jiffies); err != nil {
					return err
				}
			}
			if opts.LinuxCursors {
				delayMs := int(float64(jiffies) * 1000 / 60)
				for i, f := range frames {
					xcursorLines = append(xcursorLines, xcursor.Line{
						NominalSize: f.Image.Bounds().Dx(), FrameNo: i,
						Xhot: f.HotspotX, Yhot: f.HotspotY, Filename: fmt.Sprintf("%s-%d", name, i), DelayMs: delayMs,
					})
				}
			}
			accumulateMousecapeAnimated(capeCursors, name, frames, jiffies)
			return nil
		}

		if err := d.BuildTheme(ctx, cfg, opts.Resolutions); err != nil {
			return errorsx.New(errorsx.KindIO, "cli.RunRender", err)
		}

		if opts.LinuxCursors && len(xcursorLines) > 0 {
			if err := writeXcursorTheme(themeOut, cfg.Name, xcursorLines, opts.UpdateExisting); err != nil {
				return err
			}
		}
		if len(capeCursors) > 0 {
			if err := writeMousecape(themeOut, cfg.Name, capeCursors); err != nil {
				return err
			}
		}

		if hotspots := rr.SaveHotspots(); hotspots != nil {
			for dir, h := range hotspots {
				if err := persistHotspots(dir, h); err != nil {
					errorsx.Warn(ctx, "persist hotspots", "dir", dir, err)
				}
			}
		}
		summary.themes++
	}

	summary.print(os.Stdout)
	return nil
}

func resolvePath(p string) (string, error) {
	if p == "" {
		return os.Getwd()
	}
	return homedir.Expand(p)
}

func loadSources(projectPath string, opts RenderOptions) ([]config.ThemeConfig, error) {
	var sources []config.ThemeConfig

	renderJSON := filepath.Join(projectPath, "render.json")
	if data, err := os.Open(renderJSON); err == nil {
		defer data.Close()
		manifest, err := config.ReadRenderManifest(data)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(manifest))
		for name := range manifest {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sources = append(sources, ThemeConfigFromEntry(name, manifest[name]))
		}
	}

	for i, dir := range opts.Sources {
		name := dir
		if i < len(opts.Names) {
			name = opts.Names[i]
		}
		sources = append(sources, config.ThemeConfig{Name: name, Dir: dir, Out: name})
	}

	if len(sources) == 0 {
		return nil, errorsx.New(errorsx.KindConfig, "cli.loadSources", fmt.Errorf("no theme sources: need render.json or --source/--name"))
	}
	return sources, nil
}

// ThemeConfigFromEntry converts a parsed render.json entry into a source
// ThemeConfig.
func ThemeConfigFromEntry(name string, e config.ThemeEntry) config.ThemeConfig {
	cfg := config.ThemeConfig{
		Name:        name,
		Dir:         e.Dir,
		Out:         e.Out,
		Cursors:     e.Cursors,
		Resolutions: e.Resolutions,
	}
	if cfg.Out == "" {
		cfg.Out = name
	}
	for _, c := range e.Colors {
		cfg.Colors = append(cfg.Colors, config.ColorMapping{Match: c.Match, Replace: c.Replace})
	}
	return cfg
}

func loadColorPalettes(opts RenderOptions) (config.ColorPalettes, error) {
	if opts.ColorMapFile == "" {
		return nil, nil
	}
	f, err := os.Open(opts.ColorMapFile)
	if err != nil {
		return nil, errorsx.New(errorsx.KindIO, "cli.loadColorPalettes", err)
	}
	defer f.Close()
	return config.ReadColorPalettes(f)
}

func loadAnimations(opts RenderOptions) (map[string]config.Animation, error) {
	if opts.AnimationsFile == "" {
		return nil, nil
	}
	f, err := os.Open(opts.AnimationsFile)
	if err != nil {
		return nil, errorsx.New(errorsx.KindIO, "cli.loadAnimations", err)
	}
	defer f.Close()
	return config.ReadAnimationManifest(f)
}

func loadCursorNames(path string) (config.CursorNames, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errorsx.New(errorsx.KindIO, "cli.loadCursorNames", err)
	}
	defer f.Close()
	return config.ReadCursorNames(f)
}

func buildAxes(opts RenderOptions, palettes config.ColorPalettes) variant.Axes {
	axes := variant.Axes{
		Shadows: []*config.DropShadow{nil},
		Colors:  []variant.ColorOption{{}},
		Sizes:   []config.SizeScheme{config.SizeSource},
	}
	if opts.PointerShadow != nil {
		axes.Shadows = []*config.DropShadow{opts.PointerShadow}
		if opts.NoShadowAlso {
			axes.Shadows = append(axes.Shadows, nil)
		}
	}

	axes.StrokeWidths = []*config.StrokeWidth{nil}
	if len(opts.StrokeWidths) > 0 {
		axes.StrokeWidths = nil
		for i := range opts.StrokeWidths {
			axes.StrokeWidths = append(axes.StrokeWidths, &opts.StrokeWidths[i])
		}
		if opts.DefaultStrokeAlso {
			axes.StrokeWidths = append(axes.StrokeWidths, nil)
		}
	}

	if len(opts.Colors) > 0 {
		axes.Colors = nil
		for _, name := range opts.Colors {
			mappings := paletteMappings(palettes, name)
			axes.Colors = append(axes.Colors, variant.ColorOption{Name: name, Mappings: mappings})
		}
	}

	if len(opts.SizeSchemes) > 0 {
		axes.Sizes = nil
		for _, s := range opts.SizeSchemes {
			axes.Sizes = append(axes.Sizes, sizeSchemeByName(s))
		}
	} else if opts.AllVariants {
		axes.Sizes = []config.SizeScheme{config.SizeSource, config.SizeNormal, config.SizeLarge, config.SizeXLarge}
	}

	if opts.AllVariants && len(opts.Colors) == 0 {
		names := make([]string, 0, len(palettes))
		for name := range palettes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			axes.Colors = append(axes.Colors, variant.ColorOption{Name: name, Mappings: paletteMappings(palettes, name)})
		}
	}

	return axes
}

func paletteMappings(palettes config.ColorPalettes, name string) []config.ColorMapping {
	p, ok := palettes[name]
	if !ok {
		return nil
	}
	var out []config.ColorMapping
	for match, replace := range p {
		out = append(out, config.ColorMapping{Match: match, Replace: replace})
	}
	return out
}

func sizeSchemeByName(name string) config.SizeScheme {
	switch strings.ToUpper(name) {
	case "N":
		return config.SizeNormal
	case "L":
		return config.SizeLarge
	case "XL":
		return config.SizeXLarge
	default:
		return config.SizeSource
	}
}

func filterThemes(all []config.ThemeConfig, opts RenderOptions) []config.ThemeConfig {
	if opts.AllVariants || len(opts.Themes) == 0 {
		return withCursorFilter(all, opts)
	}
	wanted := make(map[string]bool, len(opts.Themes))
	for _, t := range opts.Themes {
		wanted[t] = true
	}
	var out []config.ThemeConfig
	for _, c := range all {
		if wanted[c.Name] {
			out = append(out, c)
		}
	}
	return withCursorFilter(out, opts)
}

// applyPermanentSuffix resolves Open Question 3: a permanent size scheme
// (Large/XLarge) either suffixes its source theme's existing output
// directory name (permanentSuffix true, the default) or renders into a
// wholly separate subdirectory named after the scheme (permanentSuffix
// false).
func applyPermanentSuffix(cfgs []config.ThemeConfig, permanentSuffix bool) []config.ThemeConfig {
	out := make([]config.ThemeConfig, len(cfgs))
	for i, c := range cfgs {
		if c.SizeScheme.Permanent {
			if permanentSuffix {
				c.Out = c.Out + "-" + c.SizeScheme.Name
			} else {
				c.Out = filepath.Join(c.Out, c.SizeScheme.Name)
			}
		}
		out[i] = c
	}
	return out
}

func withCursorFilter(all []config.ThemeConfig, opts RenderOptions) []config.ThemeConfig {
	if opts.AllCursors || len(opts.Cursors) == 0 {
		return all
	}
	out := make([]config.ThemeConfig, len(all))
	copy(out, all)
	for i := range out {
		out[i].Cursors = opts.Cursors
	}
	return out
}

func parseStrokeWidths(opts *RenderOptions, flags []string) error {
	for _, f := range flags {
		parts := strings.SplitN(f, ":", 2)
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return fmt.Errorf("malformed --stroke-width %q: %w", f, err)
		}
		sw := config.StrokeWidth{Value: v}
		if len(parts) == 2 {
			sw.Name = parts[1]
		}
		opts.StrokeWidths = append(opts.StrokeWidths, sw)
	}
	return nil
}

func parseShadow(raw string) (*config.DropShadow, error) {
	sh := &config.DropShadow{Blur: 2, DX: 0, DY: 1, Opacity: 0.5, Color: "0x80000000"}
	if raw == "" {
		return sh, nil
	}
	parts := strings.Split(raw, ":")
	fields := []*float64{&sh.Blur, &sh.DX, &sh.DY, &sh.Opacity}
	for i, p := range parts {
		if i < len(fields) {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed --pointer-shadow %q: %w", raw, err)
			}
			*fields[i] = v
			continue
		}
		sh.Color = p
	}
	return sh, nil
}

func writeStaticCUR(outputDir, name string, entry render.CursorEntry) error {
	data, err := theme.EncodeCUR(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, name+".cur"), data, 0o644)
}

func writeAnimatedANI(outputDir, name string, frames []render.CursorEntry, jiffies int) error {
	data, err := theme.EncodeANI(frames, jiffies)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, name+".ani"), data, 0o644)
}

func writeXcursorTheme(themeOut, themeName string, lines []xcursor.Line, updateExisting bool) error {
	cursorsDir := filepath.Join(themeOut, "cursors")
	if err := os.MkdirAll(cursorsDir, 0o777); err != nil {
		return errorsx.New(errorsx.KindIO, "cli.writeXcursorTheme", err)
	}
	byName := map[string][]xcursor.Line{}
	for _, l := range lines {
		byName[l.Filename] = append(byName[l.Filename], l)
	}
	for name, group := range byName {
		path := filepath.Join(cursorsDir, name+".cursorgen")
		comments := readExistingComments(path, updateExisting)
		f, err := os.Create(path)
		if err != nil {
			return errorsx.New(errorsx.KindIO, "cli.writeXcursorTheme", err)
		}
		err = xcursor.WriteConfig(f, comments, group)
		f.Close()
		if err != nil {
			return errorsx.New(errorsx.KindIO, "cli.writeXcursorTheme", err)
		}
	}
	idx, err := os.Create(filepath.Join(themeOut, "cursor.theme"))
	if err != nil {
		return errorsx.New(errorsx.KindIO, "cli.writeXcursorTheme", err)
	}
	defer idx.Close()
	return xcursor.WriteTheme(idx, themeName, "")
}

// readExistingComments runs the read half of xcursor's read-modify-write
// round trip (spec §4.8): when updateExisting is set and path already has a
// generated config, its comment lines are preserved ahead of the
// freshly regenerated entry lines.
func readExistingComments(path string, updateExisting bool) []string {
	if !updateExisting {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	comments, _, err := xcursor.ReadConfig(f)
	if err != nil {
		return nil
	}
	return comments
}

func accumulateMousecapeStatic(cursors map[string]mousecape.Cursor, name string, entry render.CursorEntry, hotspotX, hotspotY int) {
	w := entry.Image.Bounds().Dx()
	c := cursors[name]
	c.Identifier = name
	c.FrameCount = 1
	if c.HotspotsBySize == nil {
		c.HotspotsBySize = map[int][2]float64{}
	}
	c.HotspotsBySize[w] = [2]float64{float64(hotspotX), float64(hotspotY)}
	c.Representations = append(c.Representations, mousecape.Representation{
		PointsWide: w, PointsHigh: entry.Image.Bounds().Dy(), FrameImages: []image.Image{entry.Image},
	})
	cursors[name] = c
}

func accumulateMousecapeAnimated(cursors map[string]mousecape.Cursor, name string, frames []render.CursorEntry, jiffies int) {
	if len(frames) == 0 {
		return
	}
	w := frames[0].Image.Bounds().Dx()
	c := cursors[name]
	c.Identifier = name
	c.FrameCount = len(frames)
	c.FrameDurationMs = jiffies * 1000 / 60
	if c.HotspotsBySize == nil {
		c.HotspotsBySize = map[int][2]float64{}
	}
	c.HotspotsBySize[w] = [2]float64{float64(frames[0].HotspotX), float64(frames[0].HotspotY)}
	images := make([]image.Image, len(frames))
	for i, f := range frames {
		images[i] = f.Image
	}
	c.Representations = append(c.Representations, mousecape.Representation{
		PointsWide: w, PointsHigh: frames[0].Image.Bounds().Dy(), FrameImages: images,
	})
	cursors[name] = c
}

func writeMousecape(themeOut, themeName string, cursors map[string]mousecape.Cursor) error {
	cape := mousecape.Cape{CapeName: themeName, CapeVersion: "1.0", Identifier: "org.cursorforge." + themeName, Cursors: cursors}
	data, err := mousecape.Encode(cape)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(themeOut, themeName+".cape"), data, 0o644)
}

func persistHotspots(dir string, h config.Hotspots) error {
	var buf bytes.Buffer
	if err := config.WriteHotspots(&buf, h); err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(filepath.Join(dir, "cursor-hotspots.json"), buf.Bytes(), 0o644); err != nil {
		return errorsx.New(errorsx.KindIO, "cli.persistHotspots", err)
	}
	return nil
}

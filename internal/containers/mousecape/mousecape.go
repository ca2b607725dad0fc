// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mousecape writes the macOS Mousecape `.cape` property list
// (spec §4.7, component C1c). It builds the plist with text/template,
// the way the teacher's cmd/pack.go generates InfoPlistTmpl, rather than
// reaching for a third-party plist library the teacher never uses.
package mousecape

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"sort"
	"strings"
	"text/template"

	"github.com/cursorforge/cursorforge/internal/errorsx"
)

// Representation is one resolution's filmstrip: all frames of an
// animation (or the single frame of a static cursor) stacked vertically
// into one PNG.
type Representation struct {
	PointsWide, PointsHigh int // this representation's per-frame pixel size
	FrameImages            []image.Image
}

// Cursor is one Mousecape cursor entry.
type Cursor struct {
	Identifier      string
	FrameCount      int
	FrameDurationMs int // 0 for static cursors
	// HotspotsBySize maps each representation's pixel width to its
	// (x, y) hotspot in that representation's own pixel space; the
	// writer averages them down to the smallest representation per
	// spec §4.7's hotspot-averaging rule.
	HotspotsBySize map[int][2]float64
	Representations []Representation
}

// Cape is the top-level document.
type Cape struct {
	Author, CapeName, CapeVersion string
	Cloud                         bool
	Identifier                    string
	HiDPI                         bool
	Cursors                       map[string]Cursor
}

type plistCursor struct {
	Key             string
	FrameCount      int
	FrameDuration   string
	HotSpotX        string
	HotSpotY        string
	PointsWide      int
	PointsHigh      int
	Representations []string
}

type plistData struct {
	Author, CapeName, CapeVersion string
	Cloud                         bool
	Identifier                    string
	HiDPI                         bool
	MinimumVersion, Version       string
	Cursors                       []plistCursor
}

const plistTmplSrc = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Author</key>
	<string>{{.Author}}</string>
	<key>CapeName</key>
	<string>{{.CapeName}}</string>
	<key>CapeVersion</key>
	<real>{{.CapeVersion}}</real>
	<key>Cloud</key>
	{{if .Cloud}}<true/>{{else}}<false/>{{end}}
	<key>Cursors</key>
	<dict>
{{range .Cursors}}		<key>{{.Key}}</key>
		<dict>
			<key>FrameCount</key>
			<integer>{{.FrameCount}}</integer>
			<key>FrameDuration</key>
			<real>{{.FrameDuration}}</real>
			<key>HotSpotX</key>
			<real>{{.HotSpotX}}</real>
			<key>HotSpotY</key>
			<real>{{.HotSpotY}}</real>
			<key>PointsHigh</key>
			<integer>{{.PointsHigh}}</integer>
			<key>PointsWide</key>
			<integer>{{.PointsWide}}</integer>
			<key>Representations</key>
			<array>
{{range .Representations}}				<data>
{{.}}
				</data>
{{end}}			</array>
		</dict>
{{end}}	</dict>
	<key>HiDPI</key>
	{{if .HiDPI}}<true/>{{else}}<false/>{{end}}
	<key>Identifier</key>
	<string>{{.Identifier}}</string>
	<key>MinimumVersion</key>
	<real>{{.MinimumVersion}}</real>
	<key>Version</key>
	<real>{{.Version}}</real>
</dict>
</plist>
`

var plistTmpl = template.Must(template.New("cape").Parse(plistTmplSrc))

// Encode renders cape as a complete .cape plist.
func Encode(cape Cape) ([]byte, error) {
	data := plistData{
		Author: cape.Author, CapeName: cape.CapeName, CapeVersion: cape.CapeVersion,
		Cloud: cape.Cloud, Identifier: cape.Identifier, HiDPI: cape.HiDPI,
		MinimumVersion: "2.0", Version: "2.0",
	}

	keys := make([]string, 0, len(cape.Cursors))
	for k := range cape.Cursors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		c := cape.Cursors[key]
		pc, err := buildPlistCursor(key, c)
		if err != nil {
			return nil, err
		}
		data.Cursors = append(data.Cursors, pc)
	}

	var buf bytes.Buffer
	if err := plistTmpl.Execute(&buf, data); err != nil {
		return nil, errorsx.New(errorsx.KindIO, "mousecape.Encode", err)
	}
	return buf.Bytes(), nil
}

func buildPlistCursor(key string, c Cursor) (plistCursor, error) {
	hx, hy := averageHotspot(c.HotspotsBySize, c.PointsWide())

	reps := make([]string, 0, len(c.Representations))
	sort.Slice(c.Representations, func(i, j int) bool {
		return c.Representations[i].PointsWide < c.Representations[j].PointsWide
	})
	for _, r := range c.Representations {
		b64, err := filmstripBase64(r.FrameImages)
		if err != nil {
			return plistCursor{}, err
		}
		reps = append(reps, b64)
	}

	return plistCursor{
		Key:             key,
		FrameCount:      c.FrameCount,
		FrameDuration:   fmt.Sprintf("%.6g", float64(c.FrameDurationMs)/1000),
		HotSpotX:        fmt.Sprintf("%.3f", hx),
		HotSpotY:        fmt.Sprintf("%.3f", hy),
		PointsWide:      c.PointsWide(),
		PointsHigh:      c.PointsHighFromWide(),
		Representations: reps,
	}, nil
}

// PointsWide returns the smallest representation's width, per spec
// §4.7's "PointsHigh/PointsWide (integers of the smallest representation
// size)".
func (c Cursor) PointsWide() int {
	min := 0
	for _, r := range c.Representations {
		if min == 0 || r.PointsWide < min {
			min = r.PointsWide
		}
	}
	return min
}

// PointsHighFromWide returns the smallest representation's height.
func (c Cursor) PointsHighFromWide() int {
	min := 0
	for _, r := range c.Representations {
		if min == 0 || r.PointsHigh < min {
			min = r.PointsHigh
		}
	}
	return min
}

// averageHotspot implements spec §4.7's hotspot-averaging rule: the
// unweighted arithmetic mean of the hotspot expressed at each
// representation's own scale, scaled down to the smallest
// representation's size and rounded to 3 decimals.
func averageHotspot(bySize map[int][2]float64, pointsWide int) (x, y float64) {
	if len(bySize) == 0 || pointsWide == 0 {
		return 0, 0
	}
	var sx, sy float64
	for size, hs := range bySize {
		scale := float64(pointsWide) / float64(size)
		sx += hs[0] * scale
		sy += hs[1] * scale
	}
	n := float64(len(bySize))
	return round3(sx / n), round3(sy / n)
}

func round3(v float64) float64 {
	const scale = 1000
	return float64(int64(v*scale+0.5)) / scale
}

// filmstripBase64 stacks frames vertically into one PNG and returns its
// base64 encoding, line-wrapped at 76 characters per spec §4.7.
func filmstripBase64(frames []image.Image) (string, error) {
	if len(frames) == 0 {
		return "", fmt.Errorf("mousecape: representation has no frames")
	}
	w := frames[0].Bounds().Dx()
	h := frames[0].Bounds().Dy()

	strip := image.NewRGBA(image.Rect(0, 0, w, h*len(frames)))
	for i, f := range frames {
		offset := image.Pt(0, h*i)
		drawInto(strip, f, offset)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, strip); err != nil {
		return "", errorsx.New(errorsx.KindIO, "mousecape.filmstripBase64", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	var wrapped strings.Builder
	for i := 0; i < len(encoded); i += 76 {
		end := i + 76
		if end > len(encoded) {
			end = len(encoded)
		}
		wrapped.WriteString(encoded[i:end])
		if end < len(encoded) {
			wrapped.WriteByte('\n')
		}
	}
	return wrapped.String(), nil
}

func drawInto(dst *image.RGBA, src image.Image, offset image.Point) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(offset.X+x-b.Min.X, offset.Y+y-b.Min.Y, src.At(x, y))
		}
	}
}

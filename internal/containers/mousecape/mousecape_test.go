// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mousecape

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func frame(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

func TestFilmstripBase64RoundTrip(t *testing.T) {
	frames := []image.Image{frame(64, 64), frame(64, 64), frame(64, 64), frame(64, 64)}
	b64, err := filmstripBase64(frames)
	require.NoError(t, err)

	raw := ""
	for _, line := range splitLines(b64) {
		raw += line
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(decoded))
	require.NoError(t, err)
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 256, img.Bounds().Dy()) // 4 frames * 64
}

func splitLines(s string) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == '\n' {
			out = append(out, cur)
			cur = ""
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

func TestEncodeProducesValidPlistShape(t *testing.T) {
	cape := Cape{
		Author: "cursorforge", CapeName: "Demo", CapeVersion: "1.0",
		Identifier: "com.example.demo",
		Cursors: map[string]Cursor{
			"com.example.demo.arrow": {
				FrameCount:      4,
				FrameDurationMs: 100,
				HotspotsBySize:  map[int][2]float64{64: {32.4, 31.6}, 128: {64.6, 63.4}},
				Representations: []Representation{
					{PointsWide: 64, PointsHigh: 64, FrameImages: []image.Image{frame(64, 64), frame(64, 64), frame(64, 64), frame(64, 64)}},
				},
			},
		},
	}

	out, err := Encode(cape)
	require.NoError(t, err)
	s := string(out)
	require.Contains(t, s, "<plist version=\"1.0\">")
	require.Contains(t, s, "com.example.demo.arrow")
	require.Contains(t, s, "<key>FrameCount</key>")
	require.Contains(t, s, "<integer>4</integer>")
}

// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cursorforge/cursorforge/internal/config"
)

func TestExpandScenario1(t *testing.T) {
	sources := []config.ThemeConfig{
		{Name: "A", Dir: "svg"},
		{Name: "B", Dir: "svg"},
	}
	axes := Axes{
		StrokeWidths: []*config.StrokeWidth{nil},
		Shadows:      []*config.DropShadow{nil},
		Colors: []ColorOption{
			{Name: "Amber"},
			{Name: "Blue"},
		},
		Sizes: []config.SizeScheme{config.SizeSource, config.SizeLarge},
	}

	out, err := Expand(sources, axes)
	require.NoError(t, err)
	require.Len(t, out, 8)

	// A's variants precede B's.
	require.Equal(t, "A", out[0].Name[:1])
	lastA := 0
	for i, c := range out {
		if len(c.Name) > 0 && c.Name[0] == 'A' {
			lastA = i
		}
	}
	firstB := -1
	for i, c := range out {
		if len(c.Name) > 0 && c.Name[0] == 'B' {
			firstB = i
			break
		}
	}
	require.Less(t, lastA, firstB)
}

func TestDedupKeepsOriginal(t *testing.T) {
	sources := []config.ThemeConfig{{Name: "Only", Dir: "svg"}}
	axes := Axes{
		StrokeWidths: []*config.StrokeWidth{nil, nil}, // both map to "no override" -> same dedup key
		Shadows:      []*config.DropShadow{nil},
		Colors:       []ColorOption{{Name: ""}},
		Sizes:        []config.SizeScheme{config.SizeSource},
	}
	out, err := Expand(sources, axes)
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestStrokeNamingCollision(t *testing.T) {
	thin1 := &config.StrokeWidth{Value: 10}
	thin2 := &config.StrokeWidth{Value: 11}
	names := nameStrokeWidths([]*config.StrokeWidth{thin1, thin2})
	require.Equal(t, "Thin", names[thin1])
	require.Equal(t, "Thin2", names[thin2])
}

// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrokeWidthDerivedName(t *testing.T) {
	require.Equal(t, "Thin", StrokeWidth{Value: 8}.DerivedName(BaseStrokeWidth))
	require.Equal(t, "Thick", StrokeWidth{Value: 24}.DerivedName(BaseStrokeWidth))
	require.Equal(t, "", StrokeWidth{Value: BaseStrokeWidth}.DerivedName(BaseStrokeWidth))
	require.Equal(t, "Custom", StrokeWidth{Value: 8, Name: "Custom"}.DerivedName(BaseStrokeWidth))
}

func TestReadRenderManifest(t *testing.T) {
	data := `{"Default":{"dir":"src/default","out":"default","resolutions":[32,48]}}`
	m, err := ReadRenderManifest(strings.NewReader(data))
	require.NoError(t, err)
	require.Contains(t, m, "Default")
	require.Equal(t, "src/default", m["Default"].Dir)
	require.Equal(t, []int{32, 48}, m["Default"].Resolutions)
}

func TestReadRenderManifestRejectsBlankName(t *testing.T) {
	data := `{"":{"dir":"src/default"}}`
	_, err := ReadRenderManifest(strings.NewReader(data))
	require.Error(t, err)
}

func TestReadColorPalettes(t *testing.T) {
	data := `{"Dark":{"#ffffff":"#000000"}}`
	m, err := ReadColorPalettes(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "#000000", m["Dark"]["#ffffff"])
}

func TestReadAnimationManifestConvertsDurationToJiffies(t *testing.T) {
	data := `{"wait":{"frames":8,"duration":133}}`
	m, err := ReadAnimationManifest(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 8, m["wait"].FrameCount)
	require.Equal(t, 8, m["wait"].Jiffies)
}

func TestMsToJiffiesRounds(t *testing.T) {
	require.Equal(t, 6, msToJiffies(100))
	require.Equal(t, 3, msToJiffies(50))
}

func TestReadCursorNames(t *testing.T) {
	data := `{"arrow":"left_ptr"}`
	m, err := ReadCursorNames(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "left_ptr", m["arrow"])
}

func TestHotspotsRoundTrip(t *testing.T) {
	h := Hotspots{"arrow": [2]int{16, 16}}
	var buf bytes.Buffer
	require.NoError(t, WriteHotspots(&buf, h))

	got, err := ReadHotspots(&buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anchor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBiasNoClass(t *testing.T) {
	b, ok, err := ParseBias("some other-class")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, Bias{}, b)
}

func TestParseBiasDirectionsAndModes(t *testing.T) {
	cases := []struct {
		class string
		want  Bias
	}{
		{"bias-left", Bias{DX: -1, DY: 0, Mode: ModeStrokeInside}},
		{"bias-right-stroke", Bias{DX: 1, DY: 0, Mode: ModeStrokeInside}},
		{"bias-right-stroke-outside", Bias{DX: 1, DY: 0, Mode: ModeStrokeOutside}},
		{"bias-top-fill", Bias{DX: 0, DY: -1, Mode: ModeFillInside}},
		{"bias-bottom-fill-outside", Bias{DX: 0, DY: 1, Mode: ModeFillOutside}},
		{"bias-center", Bias{DX: 0, DY: 0, Mode: ModeStrokeInside}},
		{"bias-right-base", Bias{DX: 1, DY: 0, Mode: ModeStrokeBase}},
		{"bias-right-base-outside", Bias{DX: 1, DY: 0, Mode: ModeStrokeBaseOutside}},
	}
	for _, c := range cases {
		b, ok, err := ParseBias(c.class)
		require.NoError(t, err, c.class)
		require.True(t, ok, c.class)
		require.Equal(t, c.want, b, c.class)
	}
}

func TestParseBiasMagnitudeSuffix(t *testing.T) {
	b, ok, err := ParseBias("bias-l50")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, -0.5, b.DX)
	require.Equal(t, 0.0, b.DY)
}

func TestParseBiasHalfFlag(t *testing.T) {
	b, ok, err := ParseBias("bias-right-half")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0.5, b.DX)
	require.Equal(t, ModeStrokeBase, b.Mode)
}

func TestParseBiasMultipleClassesPicksFirstBias(t *testing.T) {
	b, ok, err := ParseBias("icon bias-left foo")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, -1.0, b.DX)
}

func TestParseBiasInvalidToken(t *testing.T) {
	_, _, err := ParseBias("bias-diagonal")
	require.Error(t, err)
	var invalid *InvalidBiasError
	require.ErrorAs(t, err, &invalid)
}

func TestParseBiasEmptyToken(t *testing.T) {
	_, _, err := ParseBias("bias-left--right")
	require.Error(t, err)
}

func TestPointWithOffsetModes(t *testing.T) {
	p := Point{X: 10, Y: 10, Bias: Bias{DX: 1, DY: 0, Mode: ModeStrokeInside}}
	x, y := p.PointWithOffset(2, 4)
	require.Equal(t, 12.0, x)
	require.Equal(t, 10.0, y)

	p.Bias.Mode = ModeStrokeOutside
	x, _ = p.PointWithOffset(2, 4)
	require.Equal(t, 8.0, x)

	p.Bias.Mode = ModeFillInside
	x, _ = p.PointWithOffset(2, 4)
	require.Equal(t, 14.0, x)

	p.Bias.Mode = ModeFillOutside
	x, _ = p.PointWithOffset(2, 4)
	require.Equal(t, 6.0, x)

	p.Bias.Mode = ModeNone
	x, _ = p.PointWithOffset(2, 4)
	require.Equal(t, 10.0, x)
}

func TestModeString(t *testing.T) {
	require.Equal(t, "stroke-inside", ModeStrokeInside.String())
	require.Equal(t, "none", ModeNone.String())
}

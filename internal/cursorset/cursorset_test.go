// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cursorset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveScalesFrom256Table(t *testing.T) {
	x, y, ok := Resolve("arrow", 32)
	require.True(t, ok)
	require.InDelta(t, 11.0, x, 1e-9)
	require.InDelta(t, 10.0, y, 1e-9)
}

func TestResolveUnknownCursorFails(t *testing.T) {
	_, _, ok := Resolve("does-not-exist", 32)
	require.False(t, ok)
}

func TestResolveSourceExtentScalesLinearly(t *testing.T) {
	x32, y32, _ := Resolve("wait", 32)
	x256, y256, _ := Resolve("wait", 256)
	require.InDelta(t, x256/8, x32, 1e-9)
	require.InDelta(t, y256/8, y32, 1e-9)
}

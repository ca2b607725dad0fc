// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cur

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestEncodeSingleImageByteLayout(t *testing.T) {
	img := solidImage(32, 32, color.RGBA{200, 10, 10, 255})
	entry, err := NewEntry(img, 4, 5)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []Entry{entry}))

	data := buf.Bytes()
	require.Equal(t, headerSize+entrySize+len(entry.PNG), len(data))
	require.Equal(t, []byte{0x00, 0x00, 0x02, 0x00, 0x01, 0x00}, data[0:6])
	require.Equal(t, byte(0x20), data[6])
	require.Equal(t, byte(0x20), data[7])
}

func TestHotspotRoundtrip(t *testing.T) {
	img := solidImage(16, 16, color.RGBA{0, 0, 0, 255})
	entry, err := NewEntry(img, 4, 5)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []Entry{entry}))

	decoded, err := Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.EqualValues(t, 4, decoded[0].HotspotX)
	require.EqualValues(t, 5, decoded[0].HotspotY)
}

func TestEntryOrderAndOffsets(t *testing.T) {
	small, err := NewEntry(solidImage(16, 16, color.RGBA{1, 2, 3, 255}), 0, 0)
	require.NoError(t, err)
	large, err := NewEntry(solidImage(32, 32, color.RGBA{1, 2, 3, 255}), 0, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []Entry{small, large}))

	decoded, err := Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	require.GreaterOrEqual(t, decoded[0].DataOffset, uint32(headerSize+2*entrySize))
	require.Less(t, decoded[0].DataOffset, decoded[1].DataOffset)
}

func TestDuplicateEntriesCollapse(t *testing.T) {
	first, err := NewEntry(solidImage(16, 16, color.RGBA{1, 1, 1, 255}), 1, 1)
	require.NoError(t, err)
	second, err := NewEntry(solidImage(16, 16, color.RGBA{1, 1, 1, 255}), 9, 9)
	require.NoError(t, err)

	out := sortDedup([]Entry{first, second})
	require.Len(t, out, 1)
	require.EqualValues(t, 9, out[0].HotspotX)
}

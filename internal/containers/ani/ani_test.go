// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ani

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeCur(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestEncodeProducesExpectedHeader(t *testing.T) {
	frames := [][]byte{fakeCur(37), fakeCur(50), fakeCur(12), fakeCur(8), fakeCur(9), fakeCur(22)}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, frames, 3))

	decoded, err := Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.EqualValues(t, 6, decoded.Header.NumFrames)
	require.EqualValues(t, 6, decoded.Header.NumSteps)
	require.EqualValues(t, 3, decoded.Header.DisplayRate)
	require.EqualValues(t, flagIconData, decoded.Header.Flags)
	require.Len(t, decoded.Frames, 6)
	require.Equal(t, frames[2], decoded.Frames[2])
}

func TestRIFFSizeConsistency(t *testing.T) {
	frames := [][]byte{fakeCur(5), fakeCur(6)} // one odd-sized chunk needs padding
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, frames, 1))

	data := buf.Bytes()
	require.Equal(t, []byte("RIFF"), data[0:4])
	riffSize := int(uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24)
	require.Equal(t, len(data)-8, riffSize)

	// every pad byte introduced for odd-sized chunks must be 0x00: walk
	// the icon chunks and confirm the single trailing byte after the
	// 5-byte frame is zero.
	iconOffset := bytes.Index(data, []byte("icon"))
	require.NotEqual(t, -1, iconOffset)
	require.Equal(t, byte(0), data[iconOffset+8+5])
}

func TestRejectsSeqChunk(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(idRIFF[:])
	buf.Write([]byte{0, 0, 0, 0})
	buf.Write(idACON[:])
	buf.Write(idSEQ[:])
	buf.Write([]byte{4, 0, 0, 0})
	buf.Write([]byte{1, 2, 3, 4})

	_, err := Decode(bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
}

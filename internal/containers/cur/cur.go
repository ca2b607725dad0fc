// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cur implements the CUR/ICO binary container (spec §4.5,
// component C1a): a bit-exact writer and a parity reader.
package cur

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sort"

	"github.com/h2non/filetype"

	"github.com/cursorforge/cursorforge/internal/errorsx"
)

const (
	headerSize     = 6
	entrySize      = 16
	typeCursor     = 2
	pngSignatureLen = 8
)

var pngSignature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Entry is one image in a CUR file: a bitmap plus its hotspot.
type Entry struct {
	Width, Height int
	NumColors     int // 0 means "256 or more", per the ICONDIRENTRY convention
	HotspotX      uint16
	HotspotY      uint16
	PNG           []byte
}

// NewEntry builds an Entry from img, encoding it as PNG and computing
// NumColors by sampling the image's distinct color count (capped at 256,
// which the ICONDIRENTRY format represents as 0).
func NewEntry(img image.Image, hotspotX, hotspotY uint16) (Entry, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Entry{}, errorsx.New(errorsx.KindIO, "cur.NewEntry", err)
	}
	b := img.Bounds()
	return Entry{
		Width:     b.Dx(),
		Height:    b.Dy(),
		NumColors: countColors(img),
		HotspotX:  hotspotX,
		HotspotY:  hotspotY,
		PNG:       buf.Bytes(),
	}, nil
}

// countColors returns the number of distinct colors in img, capped at 256
// (the cap is reported as 0, the ICONDIRENTRY convention for "≥256").
func countColors(img image.Image) int {
	seen := make(map[color.RGBA]struct{}, 257)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			seen[color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a >> 8)}] = struct{}{}
			if len(seen) > 256 {
				return 0
			}
		}
	}
	return len(seen)
}

func dimByte(v int) byte {
	if v >= 256 {
		return 0
	}
	return byte(v)
}

func avgDim(e Entry) int { return (e.Width + e.Height) / 2 }

// dedupKey identifies entries the writer treats as the same logical
// image slot, per spec §4.5's "duplicates (same width, height,
// numColors) replace the earlier entry".
type dedupKey struct {
	w, h, colors int
}

// Encode writes entries as a CUR file to w, per spec §4.5's layout:
// sorted on (−numColors, −averageDimension), duplicates collapsed to the
// latest write.
func Encode(w io.Writer, entries []Entry) error {
	ordered := sortDedup(entries)

	if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(typeCursor)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(ordered))); err != nil {
		return err
	}

	offset := uint32(headerSize + entrySize*len(ordered))
	for _, e := range ordered {
		if err := writeEntryHeader(w, e, offset); err != nil {
			return err
		}
		offset += uint32(len(e.PNG))
	}
	for _, e := range ordered {
		if _, err := w.Write(e.PNG); err != nil {
			return err
		}
	}
	return nil
}

func writeEntryHeader(w io.Writer, e Entry, offset uint32) error {
	fields := []any{
		dimByte(e.Width), dimByte(e.Height), byte(e.NumColors), byte(0),
		e.HotspotX, e.HotspotY,
		uint32(len(e.PNG)), offset,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

// sortDedup applies the insertion semantics of §4.5: later entries with
// the same (width, height, numColors) replace earlier ones, and the
// result is ordered by (−numColors, −averageDimension).
func sortDedup(entries []Entry) []Entry {
	order := make([]dedupKey, 0, len(entries))
	byKey := make(map[dedupKey]Entry, len(entries))
	for _, e := range entries {
		k := dedupKey{e.Width, e.Height, e.NumColors}
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = e
	}
	out := make([]Entry, len(order))
	for i, k := range order {
		out[i] = byKey[k]
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NumColors != out[j].NumColors {
			return out[i].NumColors > out[j].NumColors
		}
		return avgDim(out[i]) > avgDim(out[j])
	})
	return out
}

// DecodedEntry is one image recovered by Decode, together with its
// on-disk data offset (used by callers validating strictly increasing
// offsets per spec §8's CUR entry order property).
type DecodedEntry struct {
	Entry
	DataOffset uint32
	IsBMP      bool
}

// Decode parses a CUR (or ICO) byte stream per spec §4.5's reader
// parity requirements: entries are read in ascending dataOffset order,
// non-overlapping gaps are tolerated, and overlapping offsets are
// rejected with a DataFormat error.
func Decode(r io.Reader) ([]DecodedEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errorsx.New(errorsx.KindIO, "cur.Decode", err)
	}
	if len(data) < headerSize {
		return nil, errorsx.New(errorsx.KindDataFormat, "cur.Decode", fmt.Errorf("file too short"))
	}
	n := int(binary.LittleEndian.Uint16(data[4:6]))
	need := headerSize + n*entrySize
	if len(data) < need {
		return nil, errorsx.New(errorsx.KindDataFormat, "cur.Decode", fmt.Errorf("truncated entry table"))
	}

	type raw struct {
		w, h, colors int
		hx, hy       uint16
		size, offset uint32
	}
	entries := make([]raw, n)
	for i := 0; i < n; i++ {
		b := data[headerSize+i*entrySize : headerSize+(i+1)*entrySize]
		w, h := int(b[0]), int(b[1])
		if w == 0 {
			w = 256
		}
		if h == 0 {
			h = 256
		}
		entries[i] = raw{
			w: w, h: h, colors: int(b[2]),
			hx: binary.LittleEndian.Uint16(b[4:6]),
			hy: binary.LittleEndian.Uint16(b[6:8]),
			size: binary.LittleEndian.Uint32(b[8:12]), offset: binary.LittleEndian.Uint32(b[12:16]),
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].offset < entries[j].offset })

	out := make([]DecodedEntry, 0, n)
	prevEnd := uint32(need)
	for _, e := range entries {
		if e.offset < prevEnd {
			return nil, errorsx.New(errorsx.KindDataFormat, "cur.Decode", fmt.Errorf("overlapping entry at offset %d", e.offset))
		}
		end := e.offset + e.size
		if end > uint32(len(data)) {
			return nil, errorsx.New(errorsx.KindDataFormat, "cur.Decode", fmt.Errorf("entry payload out of range"))
		}
		payload := data[e.offset:end]
		isBMP := !isPNG(payload)
		w, h := e.w, e.h
		if isBMP {
			if bw, bh, ok := parseBMPHeader(payload); ok {
				w, h = bw, bh
			}
		}
		out = append(out, DecodedEntry{
			Entry: Entry{
				Width: w, Height: h, NumColors: e.colors,
				HotspotX: e.hx, HotspotY: e.hy, PNG: payload,
			},
			DataOffset: e.offset,
			IsBMP:      isBMP,
		})
		prevEnd = end
	}
	return out, nil
}

func isPNG(b []byte) bool {
	if len(b) < pngSignatureLen {
		return false
	}
	for i := 0; i < pngSignatureLen; i++ {
		if b[i] != pngSignature[i] {
			return false
		}
	}
	return filetype.IsImage(b)
}

// parseBMPHeader reads width/height straight out of a BITMAPINFOHEADER,
// rather than decoding the bitmap through golang.org/x/image/bmp: CUR's
// embedded DIB has no file header and its biHeight is doubled to cover
// the trailing AND mask, a layout the standard bmp decoder does not
// model, so the header fields are read directly per spec §4.5.
func parseBMPHeader(b []byte) (w, h int, ok bool) {
	if len(b) < 40 {
		return 0, 0, false
	}
	width := int32(binary.LittleEndian.Uint32(b[4:8]))
	height := int32(binary.LittleEndian.Uint32(b[8:12]))
	if height < 0 {
		height = -height
	}
	return int(width), int(height / 2), true
}

// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ani implements the RIFF/ANI binary container (spec §4.6,
// component C1b): a bit-exact writer and a parity reader that dispatches
// on chunk id.
package ani

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cursorforge/cursorforge/internal/errorsx"
)

const (
	anihDataSize = 36
	flagIconData = 1 << 0
)

var (
	idRIFF = [4]byte{'R', 'I', 'F', 'F'}
	idACON = [4]byte{'A', 'C', 'O', 'N'}
	idANIH = [4]byte{'a', 'n', 'i', 'h'}
	idLIST = [4]byte{'L', 'I', 'S', 'T'}
	idFRAM = [4]byte{'f', 'r', 'a', 'm'}
	idICON = [4]byte{'i', 'c', 'o', 'n'}
	idSEQ  = [4]byte{'s', 'e', 'q', ' '}
	idRATE = [4]byte{'r', 'a', 't', 'e'}
)

// Encode writes a complete ANI file to w: numFrames CUR payloads, each
// wrapped as an `icon` chunk inside `LIST/fram`, preceded by the 36-byte
// `anih` header, per spec §4.6. displayRate is in jiffies (1/60 s).
func Encode(w io.Writer, curFrames [][]byte, displayRate uint32) error {
	numFrames := uint32(len(curFrames))

	anih := new(bytes.Buffer)
	writeChunkHeader(anih, idANIH, anihDataSize)
	for _, v := range []uint32{anihDataSize, numFrames, numFrames, 0, 0, 0, 0, displayRate, flagIconData} {
		binary.Write(anih, binary.LittleEndian, v)
	}

	fram := new(bytes.Buffer)
	fram.Write(idLIST[:])
	framBody := new(bytes.Buffer)
	framBody.Write(idFRAM[:])
	for _, cur := range curFrames {
		writeChunkHeader(framBody, idICON, uint32(len(cur)))
		framBody.Write(cur)
		if len(cur)%2 == 1 {
			framBody.WriteByte(0)
		}
	}
	binary.Write(fram, binary.LittleEndian, uint32(framBody.Len()))
	fram.Write(framBody.Bytes())

	riffBody := new(bytes.Buffer)
	riffBody.Write(idACON[:])
	riffBody.Write(anih.Bytes())
	riffBody.Write(fram.Bytes())

	if _, err := w.Write(idRIFF[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(riffBody.Len())); err != nil {
		return err
	}
	_, err := w.Write(riffBody.Bytes())
	return err
}

func writeChunkHeader(w io.Writer, id [4]byte, size uint32) {
	w.Write(id[:])
	binary.Write(w, binary.LittleEndian, size)
}

// Header is the parsed `anih` chunk.
type Header struct {
	NumFrames    uint32
	NumSteps     uint32
	DisplayRate  uint32
	Flags        uint32
}

// Decoded is the result of parsing an ANI file: its header and the raw
// CUR payload of each `icon` chunk, in file order.
type Decoded struct {
	Header Header
	Frames [][]byte
}

// Decode parses an ANI byte stream per spec §4.6's reader contract:
// chunks are dispatched by id, a second `anih` or `LIST/fram` is
// rejected, `seq`/`rate` chunks are rejected as Unsupported, and any
// other unknown chunk is tolerated.
func Decode(r io.Reader) (*Decoded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errorsx.New(errorsx.KindIO, "ani.Decode", err)
	}
	if len(data) < 12 || !bytes.Equal(data[0:4], idRIFF[:]) || !bytes.Equal(data[8:12], idACON[:]) {
		return nil, errorsx.New(errorsx.KindDataFormat, "ani.Decode", fmt.Errorf("not a RIFF/ACON stream"))
	}

	var out Decoded
	haveAnih, haveFram := false, false
	pos := 12
	for pos+8 <= len(data) {
		var id [4]byte
		copy(id[:], data[pos:pos+4])
		size := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		body := data[pos+8 : pos+8+int(size)]

		switch id {
		case idANIH:
			if haveAnih {
				return nil, errorsx.New(errorsx.KindDataFormat, "ani.Decode", fmt.Errorf("duplicate anih chunk"))
			}
			haveAnih = true
			if len(body) < anihDataSize {
				return nil, errorsx.New(errorsx.KindDataFormat, "ani.Decode", fmt.Errorf("truncated anih chunk"))
			}
			out.Header = Header{
				NumFrames:   binary.LittleEndian.Uint32(body[4:8]),
				NumSteps:    binary.LittleEndian.Uint32(body[8:12]),
				DisplayRate: binary.LittleEndian.Uint32(body[28:32]),
				Flags:       binary.LittleEndian.Uint32(body[32:36]),
			}
		case idLIST:
			if len(body) < 4 {
				return nil, errorsx.New(errorsx.KindDataFormat, "ani.Decode", fmt.Errorf("truncated LIST chunk"))
			}
			var listType [4]byte
			copy(listType[:], body[0:4])
			if listType == idFRAM {
				if haveFram {
					return nil, errorsx.New(errorsx.KindDataFormat, "ani.Decode", fmt.Errorf("duplicate LIST/fram chunk"))
				}
				haveFram = true
				frames, err := decodeFram(body[4:])
				if err != nil {
					return nil, err
				}
				out.Frames = frames
			}
		case idSEQ, idRATE:
			return nil, errorsx.New(errorsx.KindUnsupported, "ani.Decode", fmt.Errorf("chunk %q not supported by this writer", id))
		default:
			// unknown chunk, tolerated per spec §4.6.
		}

		pos += 8 + int(size)
		if size%2 == 1 {
			pos++
		}
	}
	return &out, nil
}

func decodeFram(body []byte) ([][]byte, error) {
	var frames [][]byte
	pos := 0
	for pos+8 <= len(body) {
		var id [4]byte
		copy(id[:], body[pos:pos+4])
		size := binary.LittleEndian.Uint32(body[pos+4 : pos+8])
		if id != idICON {
			return nil, errorsx.New(errorsx.KindDataFormat, "ani.decodeFram", fmt.Errorf("unexpected chunk %q in LIST/fram", id))
		}
		end := pos + 8 + int(size)
		if end > len(body) {
			return nil, errorsx.New(errorsx.KindDataFormat, "ani.decodeFram", fmt.Errorf("icon chunk out of range"))
		}
		frames = append(frames, body[pos+8:end])
		pos = end
		if size%2 == 1 {
			pos++
		}
	}
	return frames, nil
}

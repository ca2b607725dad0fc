// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anchor implements anchor points and the bias class-name grammar
// used to direct the sizing/alignment engine's stroke/fill offsets, per
// spec §3.
package anchor

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects which stroke/fill offset pointWithOffset applies, and in
// which direction.
type Mode int

const (
	// ModeNone applies no offset.
	ModeNone Mode = iota
	ModeStrokeInside
	ModeStrokeOutside
	ModeFillInside
	ModeFillOutside
	ModeStrokeBase
	ModeStrokeBaseOutside
)

// String returns the bias-grammar token for m, used only for diagnostics.
func (m Mode) String() string {
	switch m {
	case ModeStrokeInside:
		return "stroke-inside"
	case ModeStrokeOutside:
		return "stroke-outside"
	case ModeFillInside:
		return "fill-inside"
	case ModeFillOutside:
		return "fill-outside"
	case ModeStrokeBase:
		return "stroke-base"
	case ModeStrokeBaseOutside:
		return "stroke-base-outside"
	default:
		return "none"
	}
}

// Bias is a per-anchor direction and offset mode, parsed from the
// `bias-<token>(-<token>)*` class-name grammar described in spec §3.
type Bias struct {
	DX, DY float64
	Mode   Mode
}

// Point is a point in source user-space units together with the Bias that
// tells the alignment engine how stroke/fill offsets should nudge it.
type Point struct {
	X, Y float64
	Bias Bias
}

// PointWithOffset returns the anchor's coordinates shifted by the bias
// direction and the mode-selected offset, per spec §4.2's
// "pointWithOffset(strokeOff, fillOff)".
func (p Point) PointWithOffset(strokeOff, fillOff float64) (x, y float64) {
	var o float64
	switch p.Bias.Mode {
	case ModeStrokeInside:
		o = strokeOff
	case ModeStrokeOutside:
		o = -strokeOff
	case ModeFillInside:
		o = fillOff
	case ModeFillOutside:
		o = -fillOff
	case ModeStrokeBase:
		o = strokeOff - fillOff
	case ModeStrokeBaseOutside:
		o = fillOff - strokeOff
	default:
		o = 0
	}
	return p.X + p.Bias.DX*o, p.Y + p.Bias.DY*o
}

// InvalidBiasError reports an unrecognized token in a bias class name.
type InvalidBiasError struct {
	Class string
	Token string
}

func (e *InvalidBiasError) Error() string {
	return fmt.Sprintf("invalid bias token %q in class %q", e.Token, e.Class)
}

// directional tokens, magnitude 1 unless a numeric suffix overrides it.
var directions = map[string][2]float64{
	"left":   {-1, 0},
	"right":  {1, 0},
	"top":    {0, -1},
	"bottom": {0, 1},
	"center": {0, 0},
}

// ParseBias parses a class attribute value, which may contain multiple
// whitespace-separated class names, and returns the Bias encoded by any
// `bias-...` class among them. If no bias-prefixed class is present, it
// returns the zero Bias (ModeNone) and ok=false. An unrecognized token
// within a bias-prefixed class is reported as *InvalidBiasError.
func ParseBias(classAttr string) (Bias, bool, error) {
	for _, cls := range strings.Fields(classAttr) {
		if !strings.HasPrefix(cls, "bias-") {
			continue
		}
		b, err := parseBiasClass(cls)
		if err != nil {
			return Bias{}, false, err
		}
		return b, true, nil
	}
	return Bias{}, false, nil
}

func parseBiasClass(cls string) (Bias, error) {
	body := strings.TrimPrefix(cls, "bias-")
	tokens := strings.Split(body, "-")

	var dx, dy float64
	var haveDir bool
	half := false
	mode := ModeNone
	sawStroke, sawFill, sawOutside, sawBase := false, false, false, false

	for _, tok := range tokens {
		if tok == "" {
			return Bias{}, &InvalidBiasError{Class: cls, Token: tok}
		}
		switch tok {
		case "half":
			half = true
			continue
		case "stroke":
			sawStroke = true
			continue
		case "fill":
			sawFill = true
			continue
		case "base":
			sawBase = true
			continue
		case "outside":
			sawOutside = true
			continue
		}
		dir, mag, err := parseDirToken(tok)
		if err != nil {
			return Bias{}, &InvalidBiasError{Class: cls, Token: tok}
		}
		dx += dir[0] * mag
		dy += dir[1] * mag
		haveDir = true
	}
	if !haveDir {
		return Bias{}, &InvalidBiasError{Class: cls, Token: body}
	}

	switch {
	case sawBase && sawOutside:
		mode = ModeStrokeBaseOutside
	case sawBase:
		mode = ModeStrokeBase
	case sawStroke && sawOutside:
		mode = ModeStrokeOutside
	case sawStroke:
		mode = ModeStrokeInside
	case sawFill && sawOutside:
		mode = ModeFillOutside
	case sawFill:
		mode = ModeFillInside
	default:
		mode = ModeStrokeInside
	}

	if half {
		dx *= 0.5
		dy *= 0.5
		if mode == ModeStrokeInside || mode == ModeStrokeOutside ||
			mode == ModeFillInside || mode == ModeFillOutside {
			if sawOutside {
				mode = ModeStrokeBaseOutside
			} else {
				mode = ModeStrokeBase
			}
		}
	}

	return Bias{DX: dx, DY: dy, Mode: mode}, nil
}

// parseDirToken parses a single directional token such as "left", "l50",
// "top", "t33", "center", returning its unit direction and magnitude
// (default 1, or a numeric suffix /100).
func parseDirToken(tok string) ([2]float64, float64, error) {
	for name, dir := range directions {
		short := name[:1]
		if tok == name {
			return dir, 1, nil
		}
		if strings.HasPrefix(tok, short) {
			rest := tok[1:]
			if rest == "" {
				return dir, 1, nil
			}
			mag, err := strconv.ParseFloat(rest, 64)
			if err != nil {
				continue
			}
			return dir, mag / 100, nil
		}
	}
	return [2]float64{}, 0, fmt.Errorf("unrecognized direction token %q", tok)
}

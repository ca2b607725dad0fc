// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xcursor writes the Linux Xcursor config format (spec §4.8,
// component C1d): an xcursorgen-compatible text file of
// "<size> <xhot> <yhot> <filename> [<ms-delay>]" lines, plus the
// cursor.theme index file.
package xcursor

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Line is one frame entry in an xcursorgen config.
type Line struct {
	NominalSize int
	NumColors   int // used only for de-duplication/sort ordering, not written
	FrameNo     int
	Xhot, Yhot  int
	Filename    string
	DelayMs     int // 0 for static cursors (omitted from output)
}

type dedupKey struct {
	size, colors, frame int
}

// WriteConfig writes an xcursorgen config file: entries de-duplicated by
// (nominalSize, numColors, frameNo), sorted by (numColors, size,
// frameNo), any leading comment lines preserved verbatim ahead of the
// generated entries, per spec §4.8.
func WriteConfig(w io.Writer, comments []string, lines []Line) error {
	ordered := sortDedup(lines)

	for _, c := range comments {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	for _, l := range ordered {
		if _, err := fmt.Fprintln(w, formatLine(l)); err != nil {
			return err
		}
	}
	return nil
}

func formatLine(l Line) string {
	if l.DelayMs > 0 {
		return fmt.Sprintf("%d %d %d %s %d", l.NominalSize, l.Xhot, l.Yhot, l.Filename, l.DelayMs)
	}
	return fmt.Sprintf("%d %d %d %s", l.NominalSize, l.Xhot, l.Yhot, l.Filename)
}

func sortDedup(lines []Line) []Line {
	order := make([]dedupKey, 0, len(lines))
	byKey := make(map[dedupKey]Line, len(lines))
	for _, l := range lines {
		k := dedupKey{l.NominalSize, l.NumColors, l.FrameNo}
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = l
	}
	out := make([]Line, len(order))
	for i, k := range order {
		out[i] = byKey[k]
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NumColors != out[j].NumColors {
			return out[i].NumColors < out[j].NumColors
		}
		if out[i].NominalSize != out[j].NominalSize {
			return out[i].NominalSize < out[j].NominalSize
		}
		return out[i].FrameNo < out[j].FrameNo
	})
	return out
}

// ReadConfig parses an existing xcursorgen config, separating its comment
// lines, wherever they appear, from entry lines so a read-modify-write cycle preserves
// them, per spec §4.8.
func ReadConfig(r io.Reader) (comments []string, lines []Line, err error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			comments = append(comments, text)
			continue
		}
		l, err := parseLine(text)
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, l)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return comments, lines, nil
}

func parseLine(text string) (Line, error) {
	fields := strings.Fields(text)
	if len(fields) < 4 {
		return Line{}, fmt.Errorf("xcursor: malformed config line %q", text)
	}
	size, err := strconv.Atoi(fields[0])
	if err != nil {
		return Line{}, fmt.Errorf("xcursor: malformed size in %q: %w", text, err)
	}
	xhot, err := strconv.Atoi(fields[1])
	if err != nil {
		return Line{}, fmt.Errorf("xcursor: malformed xhot in %q: %w", text, err)
	}
	yhot, err := strconv.Atoi(fields[2])
	if err != nil {
		return Line{}, fmt.Errorf("xcursor: malformed yhot in %q: %w", text, err)
	}
	l := Line{NominalSize: size, Xhot: xhot, Yhot: yhot, Filename: fields[3]}
	if len(fields) >= 5 {
		delay, err := strconv.Atoi(fields[4])
		if err != nil {
			return Line{}, fmt.Errorf("xcursor: malformed delay in %q: %w", text, err)
		}
		l.DelayMs = delay
	}
	return l, nil
}

// WriteTheme writes a minimal cursor.theme index file naming name.
func WriteTheme(w io.Writer, name string, inherits string) error {
	if _, err := fmt.Fprintf(w, "[Icon Theme]\nName=%s\n", name); err != nil {
		return err
	}
	if inherits != "" {
		if _, err := fmt.Fprintf(w, "Inherits=%s\n", inherits); err != nil {
			return err
		}
	}
	return nil
}

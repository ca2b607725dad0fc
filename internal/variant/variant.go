// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package variant implements the variant expansion engine (spec §4.1,
// component C6): it turns a set of source ThemeConfigs plus five option
// axes into the concrete, deduplicated, deterministically named list of
// ThemeConfigs the theme driver renders.
package variant

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/cursorforge/cursorforge/internal/config"
	"github.com/cursorforge/cursorforge/internal/errorsx"
)

// ColorOption is one named color palette a theme may be rendered in.
type ColorOption struct {
	Name     string
	Mappings []config.ColorMapping
}

// Axes bundles the five option axes spec §4.1 expands the cartesian
// product over.
type Axes struct {
	// StrokeWidths is {defaultStrokeAlso} ∪ strokeWidths: a nil entry in
	// this slice represents "no stroke override" (base width).
	StrokeWidths []*config.StrokeWidth
	// Shadows is {none} ∪ {pointerShadow}: a nil entry represents "no
	// shadow".
	Shadows []*config.DropShadow
	Colors  []ColorOption
	Sizes   []config.SizeScheme
}

// candidate is an expanded config plus the option tuple it was built
// from, used for deduplication.
type candidate struct {
	cfg  config.ThemeConfig
	key  dedupKey
	isSource bool
}

type dedupKey struct {
	dir         string
	colorName   string
	sizeName    string
	strokeValue float64
	strokeSet   bool
	shadow      string
}

// Expand runs the variant expansion engine over sources in order,
// producing the ordered, deduplicated list of concrete ThemeConfigs.
func Expand(sources []config.ThemeConfig, axes Axes) ([]config.ThemeConfig, error) {
	for _, s := range sources {
		if strings.TrimSpace(s.Name) == "" {
			return nil, errorsx.New(errorsx.KindConfig, "variant.Expand", fmt.Errorf("blank source config name"))
		}
	}

	strokeNames := nameStrokeWidths(axes.StrokeWidths)
	prefixes := themeNamePrefixes(sources)

	var out []candidate
	for _, sw := range axes.StrokeWidths {
		for _, sh := range axes.Shadows {
			for _, src := range sources {
				prefix, suffix := splitWildcard(src.Name)
				if prefix == "" && suffix == "" {
					prefix = prefixes[src.Dir]
				}
				for _, size := range axes.Sizes {
					for _, color := range axes.Colors {
						cfg := buildConfig(src, prefix, suffix, sw, strokeNames, sh, size, color)
						key := dedupKey{
							dir:       src.Dir,
							colorName: color.Name,
							sizeName:  size.Name,
							shadow:    shadowKey(sh),
						}
						if sw != nil {
							key.strokeValue = sw.Value
							key.strokeSet = true
						}
						out = appendDedup(out, candidate{cfg: cfg, key: key, isSource: isSourceDefault(sw, sh, size, color)})
					}
				}
			}
		}
	}

	result := make([]config.ThemeConfig, len(out))
	for i, c := range out {
		result[i] = c.cfg
	}
	return result, nil
}

// isSourceDefault reports whether this combination of axis values is the
// "no override" default for every axis. The result is recorded on the
// candidate; appendDedup does not consult it, and on a dedup match the
// earlier candidate is always kept.
func isSourceDefault(sw *config.StrokeWidth, sh *config.DropShadow, size config.SizeScheme, color ColorOption) bool {
	return sw == nil && sh == nil && size == config.SizeSource && color.Name == ""
}

// appendDedup scans the output tail for an existing entry with the same
// key; if found, the original is kept (it may retain the
// manifest-declared name), otherwise next is appended, per spec §4.1's
// deduplication rule.
func appendDedup(out []candidate, next candidate) []candidate {
	for i := range out {
		if out[i].key == next.key {
			return out
		}
	}
	return append(out, next)
}

func shadowKey(sh *config.DropShadow) string {
	if sh == nil {
		return ""
	}
	return fmt.Sprintf("%v", *sh)
}

// buildConfig assembles one concrete ThemeConfig and its deterministic
// name: [basePrefix, color, sizeName, strokeName, "Shadow", baseSuffix]
// joined by "-", non-empty tags only.
func buildConfig(src config.ThemeConfig, prefix, suffix string, sw *config.StrokeWidth, strokeNames map[*config.StrokeWidth]string, sh *config.DropShadow, size config.SizeScheme, color ColorOption) config.ThemeConfig {
	tags := []string{prefix, color.Name, size.Name}
	if sw != nil {
		tags = append(tags, strokeNames[sw])
	}
	if sh != nil {
		tags = append(tags, "Shadow")
	}
	tags = append(tags, suffix)

	var nonEmpty []string
	for _, t := range tags {
		if t != "" {
			nonEmpty = append(nonEmpty, t)
		}
	}

	cfg := src
	cfg.Name = strings.Join(nonEmpty, "-")
	cfg.SizeScheme = size
	cfg.StrokeWidth = sw
	cfg.PointerShadow = sh
	if color.Name != "" {
		cfg.Colors = color.Mappings
	}
	return cfg
}

func splitWildcard(name string) (prefix, suffix string) {
	i := strings.IndexByte(name, '*')
	if i < 0 {
		return "", ""
	}
	return name[:i], name[i+1:]
}

// nameStrokeWidths builds the {width → name} mapping of spec §4.1's
// stroke-width naming rule: derive each width's name, then disambiguate
// case-insensitive collisions with a numeric suffix.
func nameStrokeWidths(widths []*config.StrokeWidth) map[*config.StrokeWidth]string {
	names := make(map[*config.StrokeWidth]string, len(widths))
	used := make(map[string]int)
	for _, w := range widths {
		if w == nil {
			continue
		}
		base := w.DerivedName(config.BaseStrokeWidth)
		key := strings.ToLower(base)
		n := used[key]
		used[key] = n + 1
		name := base
		if n > 0 {
			name = fmt.Sprintf("%s%d", base, n+1)
		}
		names[w] = name
	}
	return names
}

// themeNamePrefixes computes, per dir, the longest common prefix of all
// source config names sharing that dir, tokenized on alphanumeric/
// non-alphanumeric transitions, trimming a trailing non-alphanumeric
// token; falls back to the directory's leaf name if nothing remains.
func themeNamePrefixes(sources []config.ThemeConfig) map[string]string {
	byDir := make(map[string][]string)
	var order []string
	for _, s := range sources {
		if _, ok := byDir[s.Dir]; !ok {
			order = append(order, s.Dir)
		}
		byDir[s.Dir] = append(byDir[s.Dir], s.Name)
	}
	sort.Strings(order)

	out := make(map[string]string, len(order))
	for _, dir := range order {
		names := byDir[dir]
		prefix := longestCommonTokenPrefix(names)
		if prefix == "" {
			prefix = path.Base(dir)
		}
		out[dir] = prefix
	}
	return out
}

func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	isAlnum := func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	}
	var curKind bool
	started := false
	for _, r := range s {
		kind := isAlnum(r)
		if started && kind != curKind {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		curKind = kind
		started = true
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func longestCommonTokenPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	tokenized := make([][]string, len(names))
	for i, n := range names {
		tokenized[i] = tokenize(n)
	}
	common := tokenized[0]
	for _, toks := range tokenized[1:] {
		common = commonPrefix(common, toks)
		if len(common) == 0 {
			break
		}
	}
	if len(common) > 0 && !isAlnumToken(common[len(common)-1]) {
		common = common[:len(common)-1]
	}
	return strings.Join(common, "")
}

func isAlnumToken(tok string) bool {
	if tok == "" {
		return false
	}
	r := tok[0]
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func commonPrefix(a, b []string) []string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var out []string
	for i := 0; i < n; i++ {
		if strings.EqualFold(a[i], b[i]) {
			out = append(out, a[i])
		} else {
			break
		}
	}
	return out
}

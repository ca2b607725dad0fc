// Copyright (c) 2026, Cursorforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// event is one lexed token, captured verbatim so Replay can reconstruct
// the document without re-reading the source file.
type event struct {
	tt    xml.TokenType
	name  []byte // tag or attribute name; nil for text/comment/etc
	value []byte // attribute value or raw token bytes
}

// Buffer is a one-time tokenization of an on-disk SVG file, replayed by
// Pipeline.RunStream to re-apply thin-stroke/drop-shadow parameter
// changes without reopening the file, per spec §4.3's SAX-event replay
// mode. It is built on tdewolff/parse/v2/xml, the teacher corpus's XML
// tokenizer.
type Buffer struct {
	events     []event
	rootTagIdx int // index of the root <svg> StartTagToken, or -1
}

// Load tokenizes r once and stores the resulting event stream.
func Load(r io.Reader) (*Buffer, error) {
	l := xml.NewLexer(parse.NewInput(r))
	b := &Buffer{rootTagIdx: -1}
	for {
		tt, data := l.Next()
		if tt == xml.ErrorToken {
			if l.Err() != io.EOF {
				return nil, fmt.Errorf("transform: tokenize: %w", l.Err())
			}
			break
		}
		switch tt {
		case xml.StartTagToken:
			name := append([]byte(nil), data...)
			if b.rootTagIdx == -1 && string(bytes.TrimPrefix(name, []byte("<"))) == "svg" {
				b.rootTagIdx = len(b.events)
			}
			b.events = append(b.events, event{tt: tt, name: name})
		case xml.AttributeToken:
			name := append([]byte(nil), data...)
			val := append([]byte(nil), l.AttrVal()...)
			b.events = append(b.events, event{tt: tt, name: name, value: val})
		default:
			b.events = append(b.events, event{tt: tt, value: append([]byte(nil), data...)})
		}
	}
	return b, nil
}

// Replay writes b's event stream to w, rewriting stroke-width and href
// attribute values/names in flight per params, and — when params
// requests drop-shadow — splicing a filter definition and a filter=
// reference onto the root <svg> element without re-parsing anything.
func (b *Buffer) Replay(w io.Writer, params Params) error {
	for i, ev := range b.events {
		switch ev.tt {
		case xml.StartTagToken:
			fmt.Fprint(w, string(ev.name))
		case xml.AttributeToken:
			name := string(ev.name)
			val := string(ev.value)
			currentAttrName := attrBareName(name)
			if currentAttrName == "stroke-width" && params.ThinStrokeWidth != nil {
				val = quotedAttr(strconv.FormatFloat(*params.ThinStrokeWidth, 'f', -1, 64))
				name = nameToken(name, "stroke-width")
			}
			if currentAttrName == "href" && params.SVG11Compat {
				name = nameToken(name, "xlink:href")
			}
			fmt.Fprintf(w, " %s%s", name, val)
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken:
			if i-1 >= 0 && b.rootTagIdx == rootTagStartBeforeClose(b.events, i) && params.DropShadow != nil {
				fmt.Fprintf(w, ` filter="url(#%s)"`, dropShadowFilterID)
			}
			if ev.tt == xml.StartTagCloseVoidToken {
				fmt.Fprint(w, "/>")
			} else {
				fmt.Fprint(w, ">")
			}
			if i-1 >= 0 && b.rootTagIdx == rootTagStartBeforeClose(b.events, i) && params.DropShadow != nil {
				writeDropShadowDefs(w, *params.DropShadow)
			}
		case xml.EndTagToken:
			fmt.Fprint(w, string(ev.value))
		default:
			fmt.Fprint(w, string(ev.value))
		}
	}
	return nil
}

// rootTagStartBeforeClose returns the index of the StartTagToken that the
// close token at idx belongs to, walking backward past any attribute
// tokens — used to recognize "this close token belongs to the root <svg>
// open tag" without tracking a full element stack.
func rootTagStartBeforeClose(events []event, closeIdx int) int {
	for i := closeIdx - 1; i >= 0; i-- {
		if events[i].tt == xml.StartTagToken {
			return i
		}
		if events[i].tt != xml.AttributeToken {
			break
		}
	}
	return -1
}

func attrBareName(raw string) string {
	s := raw
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '=' {
			return s[:i]
		}
	}
	return s
}

func nameToken(raw, newName string) string {
	i := len(raw)
	for j := 0; j < len(raw); j++ {
		if raw[j] == ' ' || raw[j] == '=' {
			i = j
			break
		}
	}
	return newName + raw[i:]
}

func quotedAttr(v string) string { return `="` + v + `"` }

func writeDropShadowDefs(w io.Writer, d DropShadow) {
	fmt.Fprintf(w, `<defs><filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">`+
		`<feGaussianBlur in="SourceAlpha" stdDeviation="%s" result="blur"/>`+
		`<feOffset in="blur" dx="%s" dy="%s" result="offsetBlur"/>`+
		`<feFlood flood-color="%s" flood-opacity="%s" result="shadowColor"/>`+
		`<feComposite in="shadowColor" in2="offsetBlur" operator="in" result="shadow"/>`+
		`<feMerge><feMergeNode in="shadow"/><feMergeNode in="SourceGraphic"/></feMerge>`+
		`</filter></defs>`,
		dropShadowFilterID, fmtNum(d.Blur), fmtNum(d.DX), fmtNum(d.DY), d.Color, fmtNum(d.Opacity))
}

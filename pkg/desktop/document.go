package desktop

import (
	"strings"

	"github.com/arthur-debert/apphide/pkg/errors"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineGroup
	lineEntry
)

type line struct {
	kind  lineKind
	raw   string
	group string
	key   string
	value string
}

// byteOrderMark is the UTF-8 encoding of U+FEFF some editors put first
const byteOrderMark = "\ufeff"

// Document is a parsed desktop entry file that remembers its exact layout
type Document struct {
	lines           []line
	groups          []string
	trailingNewline bool
	bom             bool
}

// ParseDocument parses data into a Document
func ParseDocument(data []byte) (*Document, error) {
	text := string(data)
	doc := &Document{
		trailingNewline: strings.HasSuffix(text, "\n"),
		bom:             strings.HasPrefix(text, byteOrderMark),
	}
	text = strings.TrimPrefix(text, byteOrderMark)
	if doc.trailingNewline {
		text = strings.TrimSuffix(text, "\n")
	}

	seen := make(map[string]bool)
	current := ""
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		l := line{raw: raw, group: current}

		switch {
		case trimmed == "":
			l.kind = lineBlank
		case strings.HasPrefix(trimmed, "#"):
			l.kind = lineComment
		case strings.HasPrefix(trimmed, "["):
			if !strings.HasSuffix(trimmed, "]") {
				return nil, errors.Newf(errors.ErrParse, "line %d: unterminated group header", i+1).
					WithDetail("line", i+1)
			}
			name := trimmed[1 : len(trimmed)-1]
			if seen[name] {
				return nil, errors.Newf(errors.ErrParse, "line %d: duplicate group [%s]", i+1, name).
					WithDetail("line", i+1)
			}
			seen[name] = true
			current = name
			doc.groups = append(doc.groups, name)
			l.kind = lineGroup
			l.group = name
		default:
			key, value, ok := strings.Cut(trimmed, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				return nil, errors.Newf(errors.ErrParse, "line %d: invalid line %q", i+1, trimmed).
					WithDetail("line", i+1)
			}
			if current == "" {
				return nil, errors.Newf(errors.ErrParse, "line %d: key %q outside of any group", i+1, key).
					WithDetail("line", i+1)
			}
			l.kind = lineEntry
			l.key = key
			l.value = strings.TrimSpace(value)
		}

		doc.lines = append(doc.lines, l)
	}

	return doc, nil
}

// Groups returns the group names in file order
func (d *Document) Groups() []string {
	out := make([]string, len(d.groups))
	copy(out, d.groups)
	return out
}

// HasGroup reports whether the document contains group
func (d *Document) HasGroup(group string) bool {
	for _, g := range d.groups {
		if g == group {
			return true
		}
	}
	return false
}

// Get returns the raw value of key in group. When a key is repeated the
// last occurrence wins.
func (d *Document) Get(group, key string) (string, bool) {
	idx := d.find(group, key)
	if idx < 0 {
		return "", false
	}
	return d.lines[idx].value, true
}

// Set assigns value to key in group. An existing line is rewritten in
// place; otherwise a new line is inserted after the group's last entry.
// The group is created at the end of the document if missing.
func (d *Document) Set(group, key, value string) {
	if idx := d.find(group, key); idx >= 0 {
		l := &d.lines[idx]
		l.value = value
		l.raw = key + "=" + value + crSuffix(l.raw)
		return
	}

	newLine := line{kind: lineEntry, raw: key + "=" + value + d.groupCR(group), group: group, key: key, value: value}

	if !d.HasGroup(group) {
		if len(d.lines) > 0 && d.lines[len(d.lines)-1].kind != lineBlank {
			d.lines = append(d.lines, line{kind: lineBlank})
		}
		d.lines = append(d.lines, line{kind: lineGroup, raw: "[" + group + "]", group: group}, newLine)
		d.groups = append(d.groups, group)
		return
	}

	insertAt := -1
	for i, l := range d.lines {
		if l.group != group {
			continue
		}
		if l.kind == lineGroup || l.kind == lineEntry {
			insertAt = i + 1
		}
	}
	d.lines = append(d.lines, line{})
	copy(d.lines[insertAt+1:], d.lines[insertAt:])
	d.lines[insertAt] = newLine
}

// Bytes serialises the document
func (d *Document) Bytes() []byte {
	raws := make([]string, len(d.lines))
	for i, l := range d.lines {
		raws[i] = l.raw
	}
	out := strings.Join(raws, "\n")
	if d.trailingNewline {
		out += "\n"
	}
	if d.bom {
		out = byteOrderMark + out
	}
	return []byte(out)
}

// Clone returns an independent copy of the document
func (d *Document) Clone() *Document {
	c := &Document{trailingNewline: d.trailingNewline, bom: d.bom}
	c.lines = make([]line, len(d.lines))
	copy(c.lines, d.lines)
	c.groups = d.Groups()
	return c
}

// groupCR returns "\r" when the group header uses CRLF line endings
func (d *Document) groupCR(group string) string {
	for _, l := range d.lines {
		if l.kind == lineGroup && l.group == group {
			return crSuffix(l.raw)
		}
	}
	return ""
}

func crSuffix(raw string) string {
	if strings.HasSuffix(raw, "\r") {
		return "\r"
	}
	return ""
}

func (d *Document) find(group, key string) int {
	idx := -1
	for i, l := range d.lines {
		if l.kind == lineEntry && l.group == group && l.key == key {
			idx = i
		}
	}
	return idx
}

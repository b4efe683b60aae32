// Package magicstring implements the mutable text-patching buffer the source
// rewriters share. Edits are collected first and applied once, so the order
// transformer passes run in never corrupts offsets: every edit is addressed
// against the original source.
package magicstring

import (
	"fmt"
	"sort"
	"strings"
)

type editKind int

const (
	editAppendLeft editKind = iota
	editAppendRight
	editOverwrite
)

type edit struct {
	kind  editKind
	start int
	end   int // only for overwrite
	text  string
	seq   int
}

// MagicString accumulates offset-addressed edits over an immutable original
// string. At equal positions, AppendLeft content is emitted before
// AppendRight content; edits of the same kind keep their insertion order.
// That rule is what lets a read rewrite (".value" via AppendLeft at an
// initializer's end) land inside a wrapping call's closing parenthesis
// (")" via AppendRight at the same offset).
type MagicString struct {
	original string
	edits    []edit
	seq      int
}

// New creates a MagicString over the given original source.
func New(original string) *MagicString {
	return &MagicString{original: original}
}

// Original returns the unmodified source.
func (m *MagicString) Original() string {
	return m.original
}

// AppendLeft inserts text at pos, before any content appended to the right of
// the same position.
func (m *MagicString) AppendLeft(pos int, text string) {
	m.edits = append(m.edits, edit{kind: editAppendLeft, start: pos, end: pos, text: text, seq: m.nextSeq()})
}

// AppendRight inserts text at pos, after any content appended to the left of
// the same position.
func (m *MagicString) AppendRight(pos int, text string) {
	m.edits = append(m.edits, edit{kind: editAppendRight, start: pos, end: pos, text: text, seq: m.nextSeq()})
}

// Overwrite replaces the range [start, end) with text.
func (m *MagicString) Overwrite(start, end int, text string) {
	m.edits = append(m.edits, edit{kind: editOverwrite, start: start, end: end, text: text, seq: m.nextSeq()})
}

func (m *MagicString) nextSeq() int {
	m.seq++
	return m.seq
}

// HasEdits reports whether any edit has been recorded.
func (m *MagicString) HasEdits() bool {
	return len(m.edits) > 0
}

// String applies all recorded edits and returns the transformed source. It
// fails when overwrites overlap each other, or when an insert falls strictly
// inside an overwritten range; both indicate two passes touched the same
// node, which the pipeline is supposed to rule out by construction.
func (m *MagicString) String() (string, error) {
	if len(m.edits) == 0 {
		return m.original, nil
	}

	var overwrites, inserts []edit
	for _, e := range m.edits {
		if e.start < 0 || e.end > len(m.original) || e.start > e.end {
			return "", fmt.Errorf("edit range [%d, %d) out of bounds for source of length %d", e.start, e.end, len(m.original))
		}
		if e.kind == editOverwrite {
			overwrites = append(overwrites, e)
		} else {
			inserts = append(inserts, e)
		}
	}

	sort.SliceStable(overwrites, func(i, j int) bool { return overwrites[i].start < overwrites[j].start })
	for i := 1; i < len(overwrites); i++ {
		if overwrites[i].start < overwrites[i-1].end {
			return "", fmt.Errorf("overlapping overwrites at [%d, %d) and [%d, %d)",
				overwrites[i-1].start, overwrites[i-1].end, overwrites[i].start, overwrites[i].end)
		}
	}
	for _, ins := range inserts {
		for _, ow := range overwrites {
			if ins.start > ow.start && ins.start < ow.end {
				return "", fmt.Errorf("insert at %d falls inside overwritten range [%d, %d)", ins.start, ow.start, ow.end)
			}
		}
	}

	// AppendLeft before AppendRight at equal positions, insertion order
	// within a kind.
	sort.SliceStable(inserts, func(i, j int) bool {
		if inserts[i].start != inserts[j].start {
			return inserts[i].start < inserts[j].start
		}
		return inserts[i].kind < inserts[j].kind
	})

	var out strings.Builder
	cursor := 0
	nextInsert := 0

	emitInsertsAt := func(pos int) {
		for nextInsert < len(inserts) && inserts[nextInsert].start == pos {
			out.WriteString(inserts[nextInsert].text)
			nextInsert++
		}
	}

	for _, ow := range overwrites {
		for nextInsert < len(inserts) && inserts[nextInsert].start < ow.start {
			ins := inserts[nextInsert]
			out.WriteString(m.original[cursor:ins.start])
			cursor = ins.start
			out.WriteString(ins.text)
			nextInsert++
		}
		out.WriteString(m.original[cursor:ow.start])
		cursor = ow.start
		emitInsertsAt(ow.start)
		out.WriteString(ow.text)
		cursor = ow.end
	}
	for nextInsert < len(inserts) {
		ins := inserts[nextInsert]
		if ins.start < cursor {
			// Insert at the end boundary of an already-emitted overwrite.
			out.WriteString(ins.text)
			nextInsert++
			continue
		}
		out.WriteString(m.original[cursor:ins.start])
		cursor = ins.start
		out.WriteString(ins.text)
		nextInsert++
	}
	out.WriteString(m.original[cursor:])

	return out.String(), nil
}

// Package textbuf is the text field the composer writes into. The syllable
// being composed sits in the buffer as a one-rune selection so it can be
// replaced in place until it is committed.
package textbuf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const DefaultMaxBytes = 4096

type Buffer struct {
	text []rune
	// start/end delimit the selection; start == end is a plain caret.
	start, end int
	maxBytes   int
	bytes      int
}

// New returns an empty buffer. maxBytes <= 0 disables the limit.
func New(maxBytes int) *Buffer {
	return &Buffer{maxBytes: maxBytes}
}

func (b *Buffer) String() string { return string(b.text) }

func (b *Buffer) Len() int { return len(b.text) }

// Caret returns the rune offset insertion happens at.
func (b *Buffer) Caret() int { return b.start }

func (b *Buffer) Selection() (start, end int) { return b.start, b.end }

// Preview replaces the selection with r and selects it. A zero rune removes
// the selection and leaves a plain caret.
func (b *Buffer) Preview(r rune) {
	b.removeSelection()
	if r == 0 || !b.fits(utf8.RuneLen(r)) {
		return
	}
	b.insert(b.start, []rune{r})
	b.end = b.start + 1
}

// Commit replaces the selection with r and moves the caret past it.
func (b *Buffer) Commit(r rune) {
	b.Preview(r)
	b.start = b.end
}

// Settle keeps whatever is selected and collapses the caret after it.
func (b *Buffer) Settle() {
	b.start = b.end
}

// AddString inserts s at the caret, cut to whatever room is left.
func (b *Buffer) AddString(s string) {
	b.Settle()
	if b.maxBytes > 0 {
		s = trimToBytes(s, b.maxBytes-b.bytes)
	}
	if s == "" {
		return
	}
	runes := []rune(s)
	b.insert(b.start, runes)
	b.start += len(runes)
	b.end = b.start
}

// DeleteBack removes the rune before the caret. The selection, if any, is
// settled first.
func (b *Buffer) DeleteBack() bool {
	b.Settle()
	if b.start == 0 {
		return false
	}
	b.bytes -= utf8.RuneLen(b.text[b.start-1])
	b.text = append(b.text[:b.start-1], b.text[b.start:]...)
	b.start--
	b.end = b.start
	return true
}

// Word returns the run of non-space runes that ends at the caret, including
// a live selection.
func (b *Buffer) Word() string {
	from, to := b.wordBounds()
	return string(b.text[from:to])
}

// ReplaceWord swaps the word at the caret for w and places the caret after
// it.
func (b *Buffer) ReplaceWord(w string) {
	from, to := b.wordBounds()
	removed := b.text[from:to]
	for _, r := range removed {
		b.bytes -= utf8.RuneLen(r)
	}
	b.text = append(b.text[:from], b.text[to:]...)
	b.start, b.end = from, from
	b.AddString(w)
}

// Clear empties the buffer and returns what it held.
func (b *Buffer) Clear() string {
	out := string(b.text)
	b.text = b.text[:0]
	b.start, b.end, b.bytes = 0, 0, 0
	return out
}

func (b *Buffer) wordBounds() (int, int) {
	to := b.end
	from := to
	for from > 0 && !unicode.IsSpace(b.text[from-1]) {
		from--
	}
	return from, to
}

func (b *Buffer) removeSelection() {
	if b.end == b.start {
		return
	}
	for _, r := range b.text[b.start:b.end] {
		b.bytes -= utf8.RuneLen(r)
	}
	b.text = append(b.text[:b.start], b.text[b.end:]...)
	b.end = b.start
}

func (b *Buffer) insert(at int, runes []rune) {
	tail := append([]rune(nil), b.text[at:]...)
	b.text = append(append(b.text[:at], runes...), tail...)
	for _, r := range runes {
		b.bytes += utf8.RuneLen(r)
	}
}

func (b *Buffer) fits(size int) bool {
	return b.maxBytes <= 0 || b.bytes+size <= b.maxBytes
}

// CanAccept reports whether s would fit without trimming.
func (b *Buffer) CanAccept(s string) bool {
	return b.maxBytes <= 0 || b.bytes+len(s) <= b.maxBytes
}

func trimToBytes(input string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(input) <= limit {
		return input
	}

	var buf strings.Builder
	buf.Grow(limit)
	for len(input) > 0 {
		r, size := utf8.DecodeRuneInString(input)
		if r == utf8.RuneError && size == 1 {
			break
		}
		if buf.Len()+size > limit {
			break
		}
		buf.WriteString(input[:size])
		input = input[size:]
	}
	return buf.String()
}

// Package layout maps terminal keys to the letters the composer consumes.
package layout

import (
	"fmt"
	"sort"
	"unicode"
)

type SymbolKind int

const (
	SymbolPassthrough SymbolKind = iota
	SymbolText
	SymbolJamo
)

type Symbol struct {
	Kind SymbolKind
	Text string
	Jamo rune
	// CommitBefore asks the caller to commit the syllable in progress before
	// handling the symbol.
	CommitBefore bool
}

type Entry struct {
	Normal  *Symbol
	Shifted *Symbol
}

// Layout is keyed by the unshifted key rune. Upper-case letters select the
// shifted symbol.
type Layout struct {
	name    string
	mapping map[rune]Entry
}

func NewLayout(name string) *Layout {
	return &Layout{name: name, mapping: make(map[rune]Entry)}
}

func (l *Layout) Name() string { return l.name }

func (l *Layout) Translate(key rune) *Symbol {
	if l == nil {
		return nil
	}
	base := unicode.ToLower(key)
	shift := base != key
	entry, ok := l.mapping[base]
	if !ok {
		return nil
	}
	if shift && entry.Shifted != nil {
		return entry.Shifted
	}
	if entry.Normal != nil {
		return entry.Normal
	}
	if entry.Shifted != nil {
		return entry.Shifted
	}
	return nil
}

func NewTextSymbol(value string) *Symbol {
	return &Symbol{Kind: SymbolText, Text: value}
}

func NewJamoSymbol(value rune) *Symbol {
	return &Symbol{Kind: SymbolJamo, Jamo: value}
}

func NewPassthroughSymbol(commitBefore bool) *Symbol {
	return &Symbol{Kind: SymbolPassthrough, CommitBefore: commitBefore}
}

func (l *Layout) ApplyOverride(key rune, shift bool, symbol *Symbol) {
	if l == nil {
		return
	}
	key = unicode.ToLower(key)
	entry := l.mapping[key]
	if shift {
		entry.Shifted = symbol
	} else {
		entry.Normal = symbol
	}
	l.mapping[key] = entry
}

func addEntry(mapping map[rune]Entry, key rune, normal, shifted *Symbol) {
	mapping[key] = Entry{Normal: normal, Shifted: shifted}
}

func buildDubeolsik() *Layout {
	layout := NewLayout("dubeolsik")
	mapping := layout.mapping
	jamo := NewJamoSymbol

	addEntry(mapping, 'q', jamo('ㅂ'), jamo('ㅃ'))
	addEntry(mapping, 'w', jamo('ㅈ'), jamo('ㅉ'))
	addEntry(mapping, 'e', jamo('ㄷ'), jamo('ㄸ'))
	addEntry(mapping, 'r', jamo('ㄱ'), jamo('ㄲ'))
	addEntry(mapping, 't', jamo('ㅅ'), jamo('ㅆ'))
	addEntry(mapping, 'y', jamo('ㅛ'), nil)
	addEntry(mapping, 'u', jamo('ㅕ'), nil)
	addEntry(mapping, 'i', jamo('ㅑ'), nil)
	addEntry(mapping, 'o', jamo('ㅐ'), jamo('ㅒ'))
	addEntry(mapping, 'p', jamo('ㅔ'), jamo('ㅖ'))
	addEntry(mapping, 'a', jamo('ㅁ'), nil)
	addEntry(mapping, 's', jamo('ㄴ'), nil)
	addEntry(mapping, 'd', jamo('ㅇ'), nil)
	addEntry(mapping, 'f', jamo('ㄹ'), nil)
	addEntry(mapping, 'g', jamo('ㅎ'), nil)
	addEntry(mapping, 'h', jamo('ㅗ'), nil)
	addEntry(mapping, 'j', jamo('ㅓ'), nil)
	addEntry(mapping, 'k', jamo('ㅏ'), nil)
	addEntry(mapping, 'l', jamo('ㅣ'), nil)
	addEntry(mapping, 'z', jamo('ㅋ'), nil)
	addEntry(mapping, 'x', jamo('ㅌ'), nil)
	addEntry(mapping, 'c', jamo('ㅊ'), nil)
	addEntry(mapping, 'v', jamo('ㅍ'), nil)
	addEntry(mapping, 'b', jamo('ㅠ'), nil)
	addEntry(mapping, 'n', jamo('ㅜ'), nil)
	addEntry(mapping, 'm', jamo('ㅡ'), nil)

	addPunctuation(mapping)
	return layout
}

func buildLatin() *Layout {
	layout := NewLayout("latin")
	mapping := layout.mapping

	for ch := 'a'; ch <= 'z'; ch++ {
		addEntry(mapping, ch, NewTextSymbol(string(ch)), NewTextSymbol(string(unicode.ToUpper(ch))))
	}
	addPunctuation(mapping)
	return layout
}

// addPunctuation maps digits and punctuation to literal text that ends the
// syllable in progress.
func addPunctuation(mapping map[rune]Entry) {
	for _, ch := range "0123456789-=[]\\;',./`!@#$%^&*()_+{}|:\"<>?~" {
		sym := NewTextSymbol(string(ch))
		sym.CommitBefore = true
		addEntry(mapping, ch, sym, nil)
	}
}

func AvailableLayouts() []string {
	names := []string{"dubeolsik", "latin"}
	sort.Strings(names)
	return names
}

func Load(name string) (*Layout, error) {
	switch name {
	case "", "dubeolsik", "2beolsik":
		return buildDubeolsik(), nil
	case "latin":
		return buildLatin(), nil
	default:
		return nil, fmt.Errorf("unknown layout: %s", name)
	}
}

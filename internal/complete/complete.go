// Package complete suggests words for the text being composed.
package complete

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"sonjit/internal/hangul"
)

// Completer returns up to limit words that could finish prefix, best first.
type Completer interface {
	Complete(prefix string, limit int) []string
}

type entry struct {
	word string
	freq int
}

// Dictionary is a frequency-ranked word list. The last rune of a prefix may
// be a syllable still being composed: "하" matches "한국" and "ㄱ" matches
// "가방".
type Dictionary struct {
	entries []entry // sorted by word
}

func LoadDictionary(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary %s: %w", path, err)
	}
	defer file.Close()

	dict, err := ReadDictionary(file)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return dict, nil
}

// ReadDictionary parses "word[\tfrequency]" lines. Blank lines and lines
// starting with '#' or ';' are skipped; a missing or bad frequency counts
// as zero.
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	dict := &Dictionary{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		word := strings.TrimSpace(parts[0])
		if word == "" {
			continue
		}
		freq := 0
		if len(parts) == 2 {
			freq, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
		}
		dict.Add(word, freq)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dict, nil
}

// Add inserts word, or raises its frequency by freq when already present.
func (d *Dictionary) Add(word string, freq int) {
	i := sort.Search(len(d.entries), func(i int) bool { return d.entries[i].word >= word })
	if i < len(d.entries) && d.entries[i].word == word {
		d.entries[i].freq += freq
		return
	}
	d.entries = append(d.entries, entry{})
	copy(d.entries[i+1:], d.entries[i:])
	d.entries[i] = entry{word: word, freq: freq}
}

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

func (d *Dictionary) Complete(prefix string, limit int) []string {
	if d == nil || prefix == "" || limit <= 0 {
		return nil
	}
	runes := []rune(prefix)
	head := string(runes[:len(runes)-1])
	last := runes[len(runes)-1]
	at := len(runes) - 1

	var matches []entry
	i := sort.Search(len(d.entries), func(i int) bool { return d.entries[i].word >= head })
	for ; i < len(d.entries) && strings.HasPrefix(d.entries[i].word, head); i++ {
		word := []rune(d.entries[i].word)
		if len(word) <= at || !extends(last, word[at]) {
			continue
		}
		matches = append(matches, d.entries[i])
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].freq != matches[b].freq {
			return matches[a].freq > matches[b].freq
		}
		return matches[a].word < matches[b].word
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.word
	}
	return out
}

// extends reports whether full can be reached from partial by adding
// letters.
func extends(partial, full rune) bool {
	if partial == full {
		return true
	}
	fc, fj, fk, ok := hangul.Decompose(full)
	if !ok {
		return false
	}
	if hangul.AsChosung(partial) == partial && partial != 0 {
		return fc == partial
	}
	pc, pj, pk, ok := hangul.Decompose(partial)
	if !ok || pc != fc || pj != fj {
		return false
	}
	if pk == 0 {
		return true
	}
	first, second := hangul.Unstack(fk)
	return second != 0 && first == pk
}

package layout

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// CustomPair overrides one key. Kind is "passthrough", "text" or "jamo".
type CustomPair struct {
	Key          string `yaml:"key"`
	Kind         string `yaml:"kind"`
	Normal       string `yaml:"normal"`
	Shifted      string `yaml:"shifted"`
	CommitBefore bool   `yaml:"commit_before"`
}

func LoadCustomPairs(path string) ([]CustomPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open custom keypair file: %w", err)
	}

	var pairs []CustomPair
	if err := yaml.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("parse custom keypair file: %w", err)
	}
	return pairs, nil
}

func ApplyCustomPairs(l *Layout, pairs []CustomPair) error {
	for _, pair := range pairs {
		key, err := resolveKey(pair.Key)
		if err != nil {
			return err
		}
		entry := l.mapping[key]

		switch strings.ToLower(pair.Kind) {
		case "passthrough":
			symbol := NewPassthroughSymbol(pair.CommitBefore)
			entry.Normal = symbol
			entry.Shifted = symbol
		case "text":
			normal := makeTextSymbol(pair.Normal, pair.CommitBefore)
			entry.Normal = normal
			if pair.Shifted != "" {
				entry.Shifted = makeTextSymbol(pair.Shifted, pair.CommitBefore)
			} else if entry.Shifted != nil {
				entry.Shifted = makeTextSymbol(pair.Normal, pair.CommitBefore)
			}
		case "jamo":
			normal, shifted, err := makeJamoPair(pair.Normal, pair.Shifted)
			if err != nil {
				return err
			}
			entry.Normal = normal
			entry.Shifted = shifted
		default:
			return fmt.Errorf("unsupported custom keypair kind '%s'", pair.Kind)
		}

		l.mapping[key] = entry
	}
	return nil
}

func makeTextSymbol(value string, commitBefore bool) *Symbol {
	sym := NewTextSymbol(value)
	sym.CommitBefore = commitBefore
	return sym
}

func makeJamoPair(normal, shifted string) (*Symbol, *Symbol, error) {
	makeSymbol := func(value string) (*Symbol, error) {
		if value == "" {
			return nil, nil
		}
		if utf8.RuneCountInString(value) != 1 {
			return nil, fmt.Errorf("jamo value must be a single rune, got %q", value)
		}
		r, _ := utf8.DecodeRuneInString(value)
		return NewJamoSymbol(r), nil
	}

	normalSymbol, err := makeSymbol(normal)
	if err != nil {
		return nil, nil, err
	}
	shiftedSymbol, err := makeSymbol(shifted)
	if err != nil {
		return nil, nil, err
	}
	return normalSymbol, shiftedSymbol, nil
}

// resolveKey accepts a single printable character or a name like "space".
func resolveKey(name string) (rune, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, fmt.Errorf("empty key name")
	}
	switch strings.ToLower(trimmed) {
	case "space":
		return ' ', nil
	case "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(trimmed) != 1 {
		return 0, fmt.Errorf("unknown key name '%s'", name)
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	return r, nil
}

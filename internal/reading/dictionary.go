package reading

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Term is a single reading override.
type Term struct {
	Term string `yaml:"term"`
	Yomi string `yaml:"yomi"`
}

type dictionaryFile struct {
	Terms []Term `yaml:"terms"`
}

// LoadDictionary reads a YAML file of reading overrides:
//
//	terms:
//	  - term: 明日
//	    yomi: あした
//
// Katakana readings are stored as hiragana.
func LoadDictionary(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reading dictionary: %w", err)
	}

	var dict dictionaryFile
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("parse reading dictionary: %w", err)
	}

	terms := make(map[string]string, len(dict.Terms))
	for i, t := range dict.Terms {
		if t.Term == "" || t.Yomi == "" {
			return nil, fmt.Errorf("reading dictionary: entry %d: term and yomi are required", i+1)
		}
		if _, exists := terms[t.Term]; exists {
			return nil, fmt.Errorf("reading dictionary: duplicate term %q", t.Term)
		}
		terms[t.Term] = toHiragana(t.Yomi)
	}
	return terms, nil
}

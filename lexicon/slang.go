package lexicon

import (
	"strings"
)

// IsSlang reports whether the word appears in the language's slang set.
// Matching is case-insensitive and exact; no fuzzy matching.
func (s *Service) IsSlang(word string, language Language) (bool, error) {
	l, err := s.language(language)
	if err != nil {
		return false, err
	}

	_, ok := l.slang[strings.ToLower(word)]
	return ok, nil
}

// FindSlangWords returns the slang terms found in words, preserving
// input order. Repeated matches are reported once per occurrence.
func (s *Service) FindSlangWords(words []string, language Language) ([]string, error) {
	l, err := s.language(language)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, word := range words {
		if _, ok := l.slang[strings.ToLower(word)]; ok {
			matches = append(matches, word)
		}
	}
	return matches, nil
}

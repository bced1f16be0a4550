package lexicon

import (
	"strings"
)

// englishVowels is the ARPABET vowel phoneme set, matched after
// stripping the trailing stress digit from a phoneme token.
var englishVowels = map[string]struct{}{
	"AA": {}, "AE": {}, "AH": {}, "AO": {}, "AW": {},
	"AY": {}, "EH": {}, "ER": {}, "EY": {}, "IH": {},
	"IY": {}, "OW": {}, "OY": {}, "UH": {}, "UW": {},
}

// Pronunciation looks up a word's pronunciation as space-separated
// phoneme tokens. Unknown words yield an empty string, not an error.
func (s *Service) Pronunciation(word string, language Language) (string, error) {
	l, err := s.language(language)
	if err != nil {
		return "", err
	}
	return l.pronunciations[strings.ToLower(word)], nil
}

// LastSyllable extracts the rhyme unit from a pronunciation.
//
// For English the unit is the token run from the last vowel phoneme
// (stress digit kept) to the end; a pronunciation with no vowel token
// falls back to its final token. Portuguese has no phoneme-class
// analysis here, so the final two tokens stand in as a coarse unit.
func (s *Service) LastSyllable(pronunciation string, language Language) string {
	tokens := strings.Fields(pronunciation)
	if len(tokens) == 0 {
		return ""
	}

	if language != English {
		if len(tokens) < 2 {
			return strings.Join(tokens, " ")
		}
		return strings.Join(tokens[len(tokens)-2:], " ")
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		if _, ok := englishVowels[stripStress(tokens[i])]; ok {
			return strings.Join(tokens[i:], " ")
		}
	}

	return tokens[len(tokens)-1]
}

// Rhymes reports whether two words share an equal, non-empty last
// syllable. Words with no known pronunciation never rhyme.
func (s *Service) Rhymes(word1, word2 string, language Language) (bool, error) {
	p1, err := s.Pronunciation(word1, language)
	if err != nil {
		return false, err
	}
	p2, err := s.Pronunciation(word2, language)
	if err != nil {
		return false, err
	}
	if p1 == "" || p2 == "" {
		return false, nil
	}

	s1 := s.LastSyllable(p1, language)
	if s1 == "" {
		return false, nil
	}

	return s1 == s.LastSyllable(p2, language), nil
}

func stripStress(token string) string {
	if len(token) == 0 {
		return token
	}
	switch token[len(token)-1] {
	case '0', '1', '2':
		return token[:len(token)-1]
	}
	return token
}

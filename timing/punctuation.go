package timing

import (
	"strings"
	"unicode"
)

// PunctuationSegmenter closes segments on sentence punctuation instead
// of timing gaps. It is the strategy used with estimated timings, where
// pause analysis would only recover the estimation formula.
//
// A word ending in '!' or '?' closes a verse. A word ending in '.'
// closes a verse when the next word starts with an uppercase letter,
// otherwise a phrase.
type PunctuationSegmenter struct{}

func NewPunctuationSegmenter() *PunctuationSegmenter {
	return &PunctuationSegmenter{}
}

func (s *PunctuationSegmenter) Segment(words []Word) Result {
	result := Result{Words: words}
	if len(words) == 0 {
		return result
	}

	var open []Word
	firstIndex := 0

	for i, word := range words {
		open = append(open, word)

		kind, boundary := boundaryAfter(word, wordAt(words, i+1))
		if boundary && i < len(words)-1 {
			result.Segments = append(result.Segments, closeSegment(open, firstIndex, word.End, kind))
			open = nil
			firstIndex = i + 1
		}
	}

	result.Segments = append(result.Segments, closeSegment(open, firstIndex, words[len(words)-1].End, KindPhrase))

	return result
}

func wordAt(words []Word, i int) string {
	if i < 0 || i >= len(words) {
		return ""
	}
	return words[i].Text
}

func boundaryAfter(word Word, next string) (SegmentKind, bool) {
	text := strings.TrimSpace(word.Text)
	if text == "" {
		return "", false
	}

	switch text[len(text)-1] {
	case '!', '?':
		return KindVerse, true
	case '.':
		if startsUpper(next) {
			return KindVerse, true
		}
		return KindPhrase, true
	}

	return "", false
}

func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

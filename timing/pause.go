package timing

const (
	DefaultPhraseThresholdSeconds = 0.5
	DefaultVerseThresholdSeconds  = 1.0
)

// PauseSegmenter closes segments on timing gaps between consecutive
// words. Thresholds are inclusive: a pause of exactly the phrase
// threshold breaks the phrase, exactly the verse threshold breaks the
// verse.
type PauseSegmenter struct {
	PhraseThresholdSeconds float64
	VerseThresholdSeconds  float64
}

func NewPauseSegmenter() *PauseSegmenter {
	return &PauseSegmenter{
		PhraseThresholdSeconds: DefaultPhraseThresholdSeconds,
		VerseThresholdSeconds:  DefaultVerseThresholdSeconds,
	}
}

func (s *PauseSegmenter) Segment(words []Word) Result {
	result := Result{Words: words}
	if len(words) == 0 {
		return result
	}

	var open []Word
	firstIndex := 0

	for i, word := range words {
		if i == 0 {
			open = append(open, word)
			continue
		}

		previous := words[i-1]
		pause := word.Start - previous.End

		switch {
		case pause >= s.VerseThresholdSeconds:
			result.Segments = append(result.Segments, closeSegment(open, firstIndex, previous.End, KindVerse))
			open = nil
			firstIndex = i
		case pause >= s.PhraseThresholdSeconds:
			result.Segments = append(result.Segments, closeSegment(open, firstIndex, previous.End, KindPhrase))
			open = nil
			firstIndex = i
		}

		open = append(open, word)
	}

	// The trailing segment always closes as a phrase.
	result.Segments = append(result.Segments, closeSegment(open, firstIndex, words[len(words)-1].End, KindPhrase))

	return result
}

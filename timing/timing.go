// Package timing splits a timestamped word stream into phrase and
// verse segments. Two strategies exist behind one interface: pause-gap
// analysis for engines that emit per-word timestamps, and a
// punctuation heuristic over estimated timings for engines that only
// return text plus a total duration.
package timing

import (
	"strings"
	"unicode/utf8"
)

// Word is one timestamped word from the recognition engine (or from
// timing estimation).
type Word struct {
	Text  string
	Start float64
	End   float64
}

type SegmentKind string

const (
	KindPhrase SegmentKind = "phrase"
	KindVerse  SegmentKind = "verse"
)

// Segment is a contiguous run of words closed off by a pause or a
// punctuation boundary.
type Segment struct {
	Text           string
	Start          float64
	End            float64
	Kind           SegmentKind
	FirstWordIndex int
	LastWordIndex  int
	Duration       float64
}

// Result carries the processed word list together with the segments
// derived from it.
type Result struct {
	Words    []Word
	Segments []Segment
}

// Segmenter is one boundary-detection strategy over a word stream.
type Segmenter interface {
	Segment(words []Word) Result
}

// EstimateWordTimings synthesizes per-word timestamps for a plain-text
// transcript of known total duration. Longer words get a larger share:
// each word's duration is avgWordDuration * (0.5 + length/5), with a
// running clock. The result is approximate and only meant to feed the
// punctuation segmenter.
func EstimateWordTimings(text string, totalDurationSeconds float64) []Word {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	avg := totalDurationSeconds / float64(len(fields))

	words := make([]Word, 0, len(fields))
	clock := 0.0
	for _, field := range fields {
		duration := avg * (0.5 + float64(utf8.RuneCountInString(field))/5.0)
		words = append(words, Word{
			Text:  field,
			Start: clock,
			End:   clock + duration,
		})
		clock += duration
	}
	return words
}

func segmentText(words []Word) string {
	texts := make([]string, 0, len(words))
	for _, w := range words {
		texts = append(texts, w.Text)
	}
	return strings.Join(texts, " ")
}

func closeSegment(words []Word, firstIndex int, end float64, kind SegmentKind) Segment {
	start := words[0].Start
	return Segment{
		Text:           segmentText(words),
		Start:          start,
		End:            end,
		Kind:           kind,
		FirstWordIndex: firstIndex,
		LastWordIndex:  firstIndex + len(words) - 1,
		Duration:       end - start,
	}
}

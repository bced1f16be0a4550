package timing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimateWordTimings(t *testing.T) {
	words := EstimateWordTimings("hello world", 2.0)
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}

	// avg = 1.0s; both words are 5 runes, so each gets 1.0*(0.5+5/5).
	if !almostEqual(words[0].Start, 0) || !almostEqual(words[0].End, 1.5) {
		t.Errorf("first word timing = [%f, %f], want [0, 1.5]", words[0].Start, words[0].End)
	}
	if !almostEqual(words[1].Start, 1.5) || !almostEqual(words[1].End, 3.0) {
		t.Errorf("second word timing = [%f, %f], want [1.5, 3.0]", words[1].Start, words[1].End)
	}
}

func TestEstimateWordTimings_LongerWordsGetMoreTime(t *testing.T) {
	words := EstimateWordTimings("a abcdefghij", 2.0)
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}

	short := words[0].End - words[0].Start
	long := words[1].End - words[1].Start
	if long <= short {
		t.Errorf("longer word got %.3fs, shorter got %.3fs", long, short)
	}
}

func TestEstimateWordTimings_Empty(t *testing.T) {
	if words := EstimateWordTimings("   ", 5.0); words != nil {
		t.Errorf("expected nil for blank text, got %v", words)
	}
}

func TestPunctuationSegmenter_PeriodBeforeLowercaseIsPhrase(t *testing.T) {
	words := EstimateWordTimings("came here. saw things", 4.0)
	result := NewPunctuationSegmenter().Segment(words)

	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %+v", result.Segments)
	}
	if result.Segments[0].Kind != KindPhrase {
		t.Errorf("kind = %q, want phrase", result.Segments[0].Kind)
	}
	if result.Segments[0].Text != "came here." {
		t.Errorf("text = %q, want 'came here.'", result.Segments[0].Text)
	}
}

func TestPunctuationSegmenter_PeriodBeforeCapitalIsVerse(t *testing.T) {
	words := EstimateWordTimings("I came. Then left", 4.0)
	result := NewPunctuationSegmenter().Segment(words)

	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %+v", result.Segments)
	}
	if result.Segments[0].Kind != KindVerse {
		t.Errorf("kind = %q, want verse", result.Segments[0].Kind)
	}
}

func TestPunctuationSegmenter_ExclamationAndQuestionAreVerses(t *testing.T) {
	for _, text := range []string{"let's go! more words", "really? more words"} {
		words := EstimateWordTimings(text, 4.0)
		result := NewPunctuationSegmenter().Segment(words)

		if len(result.Segments) != 2 {
			t.Fatalf("%q: expected 2 segments, got %+v", text, result.Segments)
		}
		if result.Segments[0].Kind != KindVerse {
			t.Errorf("%q: kind = %q, want verse", text, result.Segments[0].Kind)
		}
	}
}

func TestPunctuationSegmenter_TrailingPunctuationNoEmptySegment(t *testing.T) {
	words := EstimateWordTimings("the end.", 2.0)
	result := NewPunctuationSegmenter().Segment(words)

	if len(result.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %+v", result.Segments)
	}
	if result.Segments[0].Kind != KindPhrase {
		t.Errorf("kind = %q, want phrase", result.Segments[0].Kind)
	}
}

func TestPunctuationSegmenter_NoPunctuationSingleSegment(t *testing.T) {
	words := EstimateWordTimings("just some words here", 3.0)
	result := NewPunctuationSegmenter().Segment(words)

	if len(result.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %+v", result.Segments)
	}
	if result.Segments[0].FirstWordIndex != 0 || result.Segments[0].LastWordIndex != 3 {
		t.Errorf("indices = %d..%d, want 0..3", result.Segments[0].FirstWordIndex, result.Segments[0].LastWordIndex)
	}
}

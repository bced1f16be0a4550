package timing

import (
	"reflect"
	"testing"
)

func TestPauseSegmenter_Empty(t *testing.T) {
	result := NewPauseSegmenter().Segment(nil)
	if len(result.Segments) != 0 {
		t.Errorf("expected no segments, got %v", result.Segments)
	}
}

func TestPauseSegmenter_SingleWord(t *testing.T) {
	result := NewPauseSegmenter().Segment([]Word{{Text: "yo", Start: 0, End: 0.4}})

	if len(result.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(result.Segments))
	}
	segment := result.Segments[0]
	if segment.Kind != KindPhrase {
		t.Errorf("kind = %q, want phrase", segment.Kind)
	}
	if segment.Text != "yo" || segment.Start != 0 || segment.End != 0.4 {
		t.Errorf("segment = %+v", segment)
	}
}

func TestPauseSegmenter_SplitsOnPhraseGap(t *testing.T) {
	words := []Word{
		{Text: "hello", Start: 0.0, End: 0.5},
		{Text: "world", Start: 0.6, End: 1.0},
		{Text: "this", Start: 1.8, End: 2.0},
		{Text: "is", Start: 2.1, End: 2.3},
		{Text: "a", Start: 2.4, End: 2.5},
		{Text: "test", Start: 2.6, End: 3.0},
	}

	result := NewPauseSegmenter().Segment(words)

	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(result.Segments), result.Segments)
	}

	first := result.Segments[0]
	if first.Text != "hello world" {
		t.Errorf("first segment text = %q, want 'hello world'", first.Text)
	}
	// The 0.8s gap breaks the phrase; the segment closes at the
	// previous word's end.
	if first.Kind != KindPhrase || first.End != 1.0 {
		t.Errorf("first segment = %+v", first)
	}
	if first.FirstWordIndex != 0 || first.LastWordIndex != 1 {
		t.Errorf("first segment indices = %d..%d", first.FirstWordIndex, first.LastWordIndex)
	}

	second := result.Segments[1]
	if second.Text != "this is a test" {
		t.Errorf("second segment text = %q, want 'this is a test'", second.Text)
	}
	if second.FirstWordIndex != 2 || second.LastWordIndex != 5 {
		t.Errorf("second segment indices = %d..%d", second.FirstWordIndex, second.LastWordIndex)
	}
	if second.Duration != second.End-second.Start {
		t.Errorf("duration = %f, want %f", second.Duration, second.End-second.Start)
	}
}

func TestPauseSegmenter_VerseGapClosesVerse(t *testing.T) {
	words := []Word{
		{Text: "first", Start: 0.0, End: 0.5},
		{Text: "line", Start: 0.6, End: 1.0},
		{Text: "second", Start: 2.5, End: 3.0},
	}

	result := NewPauseSegmenter().Segment(words)

	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(result.Segments))
	}
	if result.Segments[0].Kind != KindVerse {
		t.Errorf("first segment kind = %q, want verse", result.Segments[0].Kind)
	}
	// The trailing segment always closes as a phrase.
	if result.Segments[1].Kind != KindPhrase {
		t.Errorf("trailing segment kind = %q, want phrase", result.Segments[1].Kind)
	}
}

func TestPauseSegmenter_InclusiveThresholds(t *testing.T) {
	// A pause of exactly the phrase threshold breaks the phrase.
	words := []Word{
		{Text: "one", Start: 0.0, End: 1.0},
		{Text: "two", Start: 1.5, End: 2.0},
	}
	result := NewPauseSegmenter().Segment(words)
	if len(result.Segments) != 2 {
		t.Fatalf("phrase threshold not inclusive: %+v", result.Segments)
	}
	if result.Segments[0].Kind != KindPhrase {
		t.Errorf("kind = %q, want phrase", result.Segments[0].Kind)
	}

	// A pause of exactly the verse threshold breaks the verse.
	words = []Word{
		{Text: "one", Start: 0.0, End: 1.0},
		{Text: "two", Start: 2.0, End: 2.5},
	}
	result = NewPauseSegmenter().Segment(words)
	if len(result.Segments) != 2 {
		t.Fatalf("verse threshold not inclusive: %+v", result.Segments)
	}
	if result.Segments[0].Kind != KindVerse {
		t.Errorf("kind = %q, want verse", result.Segments[0].Kind)
	}
}

func TestPauseSegmenter_Idempotent(t *testing.T) {
	words := []Word{
		{Text: "hello", Start: 0.0, End: 0.5},
		{Text: "world", Start: 0.6, End: 1.0},
		{Text: "again", Start: 2.5, End: 3.0},
	}

	s := NewPauseSegmenter()
	first := s.Segment(words)
	second := s.Segment(words)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("segmentation not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestPauseSegmenter_CustomThresholds(t *testing.T) {
	s := &PauseSegmenter{PhraseThresholdSeconds: 0.2, VerseThresholdSeconds: 0.4}

	words := []Word{
		{Text: "a1", Start: 0.0, End: 0.5},
		{Text: "b2", Start: 0.8, End: 1.0},
	}
	result := s.Segment(words)
	if len(result.Segments) != 2 || result.Segments[0].Kind != KindPhrase {
		t.Errorf("segments = %+v", result.Segments)
	}
}

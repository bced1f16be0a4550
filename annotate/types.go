// Package annotate merges timing, rhyme, and slang findings over one
// transcript into a single span-indexed annotation structure.
package annotate

import (
	"encoding/json"
	"fmt"

	"github.com/loonix/cadence/lexicon"
	"github.com/loonix/cadence/timing"
)

// WordRecord is one transcript word with its timing, character span,
// and annotation flags. StartIndex and EndIndex are offsets into the
// full transcript text; both are -1 when the word could not be located
// there.
type WordRecord struct {
	Text         string  `json:"text"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	Index        int     `json:"index"`
	StartIndex   int     `json:"startIndex"`
	EndIndex     int     `json:"endIndex"`
	RhymeGroupID *int    `json:"rhymeGroupId,omitempty"`
	IsSlang      bool    `json:"isSlang"`
}

// SegmentRecord is one phrase or verse segment.
type SegmentRecord struct {
	Text           string             `json:"text"`
	Start          float64            `json:"start"`
	End            float64            `json:"end"`
	Kind           timing.SegmentKind `json:"type"`
	FirstWordIndex int                `json:"firstWordIndex"`
	LastWordIndex  int                `json:"lastWordIndex"`
	Duration       float64            `json:"duration"`
}

type AnnotationKind string

const (
	KindRhyme  AnnotationKind = "rhyme"
	KindSlang  AnnotationKind = "slang"
	KindPhrase AnnotationKind = "phrase"
	KindVerse  AnnotationKind = "verse"
)

// RhymePayload is the data carried by a rhyme annotation.
type RhymePayload struct {
	GroupID int `json:"groupId"`
}

// SegmentPayload is the data carried by a phrase or verse annotation:
// the segment's timing in seconds.
type SegmentPayload struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// Annotation is a character-offset span tagged with a kind. The
// payload variant is discriminated by Kind: rhyme annotations carry
// Rhyme, phrase and verse annotations carry Segment, slang annotations
// carry nothing.
type Annotation struct {
	Start int
	End   int
	Kind  AnnotationKind

	Rhyme   *RhymePayload
	Segment *SegmentPayload
}

type wireAnnotation struct {
	Start int             `json:"start"`
	End   int             `json:"end"`
	Kind  AnnotationKind  `json:"type"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func (a Annotation) MarshalJSON() ([]byte, error) {
	wire := wireAnnotation{
		Start: a.Start,
		End:   a.End,
		Kind:  a.Kind,
	}

	var payload any
	switch a.Kind {
	case KindRhyme:
		payload = a.Rhyme
	case KindPhrase, KindVerse:
		payload = a.Segment
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s payload: %w", a.Kind, err)
		}
		wire.Data = data
	}

	return json.Marshal(wire)
}

func (a *Annotation) UnmarshalJSON(data []byte) error {
	wire := wireAnnotation{}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*a = Annotation{
		Start: wire.Start,
		End:   wire.End,
		Kind:  wire.Kind,
	}
	if len(wire.Data) == 0 {
		return nil
	}

	switch wire.Kind {
	case KindRhyme:
		a.Rhyme = &RhymePayload{}
		if err := json.Unmarshal(wire.Data, a.Rhyme); err != nil {
			return fmt.Errorf("unmarshaling rhyme payload: %w", err)
		}
	case KindPhrase, KindVerse:
		a.Segment = &SegmentPayload{}
		if err := json.Unmarshal(wire.Data, a.Segment); err != nil {
			return fmt.Errorf("unmarshaling segment payload: %w", err)
		}
	}

	return nil
}

// AnnotatedTranscript is the aggregate result of one pipeline run. It
// serializes losslessly: unmarshaling the marshaled form reconstructs
// an equal value.
type AnnotatedTranscript struct {
	Text        string           `json:"text"`
	Language    lexicon.Language `json:"language"`
	Words       []WordRecord     `json:"words"`
	Segments    []SegmentRecord  `json:"segments"`
	Annotations []Annotation     `json:"annotations"`
}

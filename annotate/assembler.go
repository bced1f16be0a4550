package annotate

import (
	"strings"

	"go.uber.org/zap"

	"github.com/loonix/cadence/lexicon"
	"github.com/loonix/cadence/timing"
)

// OffsetNotFound is the sentinel character offset for a word that could
// not be located in the transcript text.
const OffsetNotFound = -1

// Assembler reconciles the word list with the transcript text and
// merges rhyme, slang, and segment findings into one transcript.
type Assembler struct {
	log *zap.Logger
}

type AssemblerOptions struct {
	ParentLogger *zap.Logger
}

func NewAssembler(options AssemblerOptions) *Assembler {
	a := &Assembler{log: zap.NewNop()}
	if options.ParentLogger != nil {
		a.log = options.ParentLogger.Named("assembler")
	}
	return a
}

// Assemble builds the annotated transcript. rhymeAssignments maps word
// index to rhyme group id; slangFlags is positional and may be shorter
// than the word list.
//
// Word spans are located by forward substring search starting at the
// end of the previous match, which keeps offsets monotonically
// non-decreasing even for repeated words. A word the search cannot
// find gets the OffsetNotFound sentinel and contributes no annotations;
// the word itself stays in the list.
func (a *Assembler) Assemble(text string, language lexicon.Language, result timing.Result, rhymeAssignments map[int]int, slangFlags []bool) *AnnotatedTranscript {
	transcript := &AnnotatedTranscript{
		Text:        text,
		Language:    language,
		Words:       make([]WordRecord, 0, len(result.Words)),
		Segments:    make([]SegmentRecord, 0, len(result.Segments)),
		Annotations: []Annotation{},
	}

	searchFrom := 0
	located := 0
	for i, word := range result.Words {
		start := OffsetNotFound
		end := OffsetNotFound
		if at := strings.Index(text[searchFrom:], word.Text); at >= 0 {
			start = searchFrom + at
			end = start + len(word.Text)
			searchFrom = end
			located++
		}

		record := WordRecord{
			Text:       word.Text,
			Start:      word.Start,
			End:        word.End,
			Index:      i,
			StartIndex: start,
			EndIndex:   end,
		}

		if id, ok := rhymeAssignments[i]; ok {
			groupID := id
			record.RhymeGroupID = &groupID
			if start != OffsetNotFound {
				transcript.Annotations = append(transcript.Annotations, Annotation{
					Start: start,
					End:   end,
					Kind:  KindRhyme,
					Rhyme: &RhymePayload{GroupID: groupID},
				})
			}
		}

		if i < len(slangFlags) && slangFlags[i] {
			record.IsSlang = true
			if start != OffsetNotFound {
				transcript.Annotations = append(transcript.Annotations, Annotation{
					Start: start,
					End:   end,
					Kind:  KindSlang,
				})
			}
		}

		transcript.Words = append(transcript.Words, record)
	}

	if located < len(result.Words) {
		a.log.With(
			zap.Int("words", len(result.Words)),
			zap.Int("located", located),
		).Warn("some words could not be located in the transcript text")
	}

	for _, segment := range result.Segments {
		transcript.Segments = append(transcript.Segments, SegmentRecord{
			Text:           segment.Text,
			Start:          segment.Start,
			End:            segment.End,
			Kind:           segment.Kind,
			FirstWordIndex: segment.FirstWordIndex,
			LastWordIndex:  segment.LastWordIndex,
			Duration:       segment.Duration,
		})

		if segment.FirstWordIndex < 0 || segment.LastWordIndex >= len(transcript.Words) {
			continue
		}
		first := transcript.Words[segment.FirstWordIndex]
		last := transcript.Words[segment.LastWordIndex]
		if first.StartIndex == OffsetNotFound || last.EndIndex == OffsetNotFound {
			continue
		}

		transcript.Annotations = append(transcript.Annotations, Annotation{
			Start: first.StartIndex,
			End:   last.EndIndex,
			Kind:  AnnotationKind(segment.Kind),
			Segment: &SegmentPayload{
				Start:    segment.Start,
				End:      segment.End,
				Duration: segment.Duration,
			},
		})
	}

	return transcript
}

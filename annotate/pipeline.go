package annotate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/loonix/cadence/asr"
	"github.com/loonix/cadence/lexicon"
	"github.com/loonix/cadence/rhyme"
	"github.com/loonix/cadence/timing"
	"github.com/loonix/cadence/utils"
)

// Pipeline runs the full post-recognition annotation flow: engine
// output → timed word list → segmentation, rhyme grouping, slang
// flagging → assembly. Language is always an explicit per-request
// parameter, so concurrent runs in different languages are safe.
type Pipeline struct {
	log      *zap.Logger
	lexicons *lexicon.Service

	pause       *timing.PauseSegmenter
	punctuation *timing.PunctuationSegmenter
	assembler   *Assembler
}

type PipelineOptions struct {
	ParentLogger *zap.Logger
	Lexicons     *lexicon.Service

	// Zero values fall back to the package defaults.
	PhraseThresholdSeconds float64
	VerseThresholdSeconds  float64
}

func NewPipeline(options PipelineOptions) *Pipeline {
	p := &Pipeline{
		log:      zap.NewNop(),
		lexicons: options.Lexicons,
		pause:    timing.NewPauseSegmenter(),
	}
	if options.ParentLogger != nil {
		p.log = options.ParentLogger.Named("pipeline")
	}
	if options.PhraseThresholdSeconds > 0 {
		p.pause.PhraseThresholdSeconds = options.PhraseThresholdSeconds
	}
	if options.VerseThresholdSeconds > 0 {
		p.pause.VerseThresholdSeconds = options.VerseThresholdSeconds
	}
	p.punctuation = timing.NewPunctuationSegmenter()
	p.assembler = NewAssembler(AssemblerOptions{ParentLogger: options.ParentLogger})
	return p
}

// Request is one annotation call.
type Request struct {
	// Engine is the decoded recognition output. Callers holding a raw
	// document use asr.ParseEngineDocument first.
	Engine *asr.EngineOutput

	Language lexicon.Language

	// TotalDurationSeconds backs timing estimation when Engine carries
	// only flat text.
	TotalDurationSeconds float64
}

// Annotate runs the pipeline over one engine output. Configuration
// problems (an unloaded language) propagate as errors; an empty or
// unusable engine output degrades to an empty transcript.
func (p *Pipeline) Annotate(ctx context.Context, request Request) (*AnnotatedTranscript, error) {
	log := utils.GetLogFromContext(ctx, p.log).With(zap.String("language", string(request.Language)))

	if request.Engine == nil || request.Engine.Empty() {
		log.Debug("empty engine output, returning empty transcript")
		return p.emptyTranscript(request.Language), nil
	}

	var result timing.Result
	var text string
	if request.Engine.HasWordTimings() {
		words := make([]timing.Word, 0, len(request.Engine.Result))
		for _, entry := range request.Engine.Result {
			words = append(words, timing.Word{
				Text:  entry.Word,
				Start: entry.Start,
				End:   entry.End,
			})
		}
		result = p.pause.Segment(words)
		text = request.Engine.Text
		if text == "" {
			text = timingText(words)
		}
	} else {
		words := timing.EstimateWordTimings(request.Engine.Text, request.TotalDurationSeconds)
		result = p.punctuation.Segment(words)
		text = request.Engine.Text
	}

	wordTexts := make([]string, 0, len(result.Words))
	for _, word := range result.Words {
		wordTexts = append(wordTexts, word.Text)
	}

	// The grouper keeps per-run state, so every call gets its own.
	grouper := rhyme.NewGrouper(rhyme.GrouperOptions{
		ParentLogger: p.log,
		Lexicons:     p.lexicons,
	})
	assignments, err := grouper.Detect(wordTexts, request.Language)
	if err != nil {
		return nil, fmt.Errorf("detecting rhymes: %w", err)
	}

	// The detection pass skips repeated word forms, so recurring words
	// have no index entry of their own; resolve them by form.
	for i, word := range wordTexts {
		if _, ok := assignments[i]; ok {
			continue
		}
		if id := grouper.ByWord(word); id != 0 {
			assignments[i] = id
		}
	}

	slangFlags := make([]bool, len(wordTexts))
	for i, word := range wordTexts {
		flagged, err := p.lexicons.IsSlang(word, request.Language)
		if err != nil {
			return nil, fmt.Errorf("flagging slang: %w", err)
		}
		slangFlags[i] = flagged
	}

	transcript := p.assembler.Assemble(text, request.Language, result, assignments, slangFlags)

	log.With(
		zap.Int("words", len(transcript.Words)),
		zap.Int("segments", len(transcript.Segments)),
		zap.Int("annotations", len(transcript.Annotations)),
	).Debug("annotation done")

	return transcript, nil
}

func (p *Pipeline) emptyTranscript(language lexicon.Language) *AnnotatedTranscript {
	return &AnnotatedTranscript{
		Language:    language,
		Words:       []WordRecord{},
		Segments:    []SegmentRecord{},
		Annotations: []Annotation{},
	}
}

func timingText(words []timing.Word) string {
	texts := make([]string, 0, len(words))
	for _, word := range words {
		texts = append(texts, word.Text)
	}
	return strings.Join(texts, " ")
}

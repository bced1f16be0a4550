// Package asr defines the contract between the annotation core and the
// external speech-recognition layer.
package asr

import (
	"context"
	"encoding/json"
)

// WordTiming is one entry of the primary engine schema: a recognized
// word with its start and end offsets in seconds.
type WordTiming struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// EngineOutput is a recognition engine's response. Engines that produce
// per-word timestamps fill Result; engines that only produce a flat
// transcript fill Text and the caller supplies the total duration
// separately.
type EngineOutput struct {
	Result []WordTiming `json:"result,omitempty"`
	Text   string       `json:"text,omitempty"`
}

// HasWordTimings reports whether the output carries the primary
// per-word schema.
func (o *EngineOutput) HasWordTimings() bool {
	return len(o.Result) > 0
}

// Empty reports whether the output carries nothing usable.
func (o *EngineOutput) Empty() bool {
	return len(o.Result) == 0 && o.Text == ""
}

// ParseEngineDocument decodes a raw engine response. A document that
// cannot be decoded yields an empty output rather than an error, so one
// bad engine response degrades to an empty annotation result instead of
// failing the whole call.
func ParseEngineDocument(data []byte) *EngineOutput {
	output := &EngineOutput{}
	if err := json.Unmarshal(data, output); err != nil {
		return &EngineOutput{}
	}
	return output
}

// SpeechRecognitionAPI is implemented by engine adapters. The core
// never touches audio itself beyond passing the opaque bytes through.
type SpeechRecognitionAPI interface {
	Recognize(ctx context.Context, audio []byte, language string) (*EngineOutput, error)
}

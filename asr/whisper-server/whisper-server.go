package whisperserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/loonix/cadence/asr"
)

// WhisperServerClient talks to a self-hosted whisper-style recognition
// server that accepts raw audio bytes and returns either the per-word
// result schema or a flat text transcript.
type WhisperServerClient struct {
	baseURL string
	token   string
	model   string

	http *http.Client
}

type WhisperServerClientOptions struct {
	BaseURL   string `env:"URL,required"`
	Token     string `env:"TOKEN"`
	ModelName string `env:"MODEL_NAME"`
}

func NewWhisperServerClient(options WhisperServerClientOptions) *WhisperServerClient {
	return &WhisperServerClient{
		baseURL: options.BaseURL,
		token:   options.Token,
		model:   options.ModelName,
		http:    http.DefaultClient,
	}
}

func (w *WhisperServerClient) Recognize(ctx context.Context, audio []byte, language string) (*asr.EngineOutput, error) {
	query := url.Values{}
	query.Set("language", language)
	if w.model != "" {
		query.Set("model", w.model)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/transcribe?%s", w.baseURL, query.Encode()), bytes.NewBuffer(audio))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/octet-stream")
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}

	resp, err := w.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-ok http response: [%d] %s", resp.StatusCode, resp.Status)
	}

	var output *asr.EngineOutput
	err = json.NewDecoder(resp.Body).Decode(&output)
	if err != nil {
		return nil, fmt.Errorf("decoding response json: %w", err)
	}

	if output == nil || output.Empty() {
		return nil, fmt.Errorf("empty recognition result")
	}

	return output, nil
}

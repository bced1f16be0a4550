package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v9"
	"github.com/spf13/cobra"

	"github.com/loonix/cadence/annotate"
	whisperserver "github.com/loonix/cadence/asr/whisper-server"
	"github.com/loonix/cadence/lexicon"
)

var (
	recognizeLanguage string
	recognizeOutput   string
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <audio-file>",
	Short: "Recognize an audio file through a whisper-style server and annotate it",
	Long: `Recognize sends the audio file to the whisper-style recognition server
configured through CADENCE_ASR_WHISPER_* and annotates the result.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecognize,
}

func init() {
	recognizeCmd.Flags().StringVarP(&recognizeLanguage, "language", "l", "en", "transcript language: en, pt")
	recognizeCmd.Flags().StringVarP(&recognizeOutput, "output", "o", "", "output path (default: stdout)")

	rootCmd.AddCommand(recognizeCmd)
}

func runRecognize(cmd *cobra.Command, args []string) error {
	options := whisperserver.WhisperServerClientOptions{}
	if err := env.ParseWithOptions(&options, env.Options{
		Prefix: environmentPrefix + "ASR_WHISPER_",
	}); err != nil {
		return fmt.Errorf("parsing recognition config: %w", err)
	}

	audio, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading audio file: %w", err)
	}

	client := whisperserver.NewWhisperServerClient(options)
	output, err := client.Recognize(cmd.Context(), audio, recognizeLanguage)
	if err != nil {
		return fmt.Errorf("recognizing: %w", err)
	}

	language := lexicon.Language(recognizeLanguage)
	lexicons, err := lexicon.NewService(cmd.Context(), lexicon.ServiceOptions{
		ParentLogger: parentLogger,
		Languages:    []lexicon.Language{language},
	})
	if err != nil {
		return fmt.Errorf("loading lexicons: %w", err)
	}

	pipeline := annotate.NewPipeline(annotate.PipelineOptions{
		ParentLogger: parentLogger,
		Lexicons:     lexicons,
	})

	transcript, err := pipeline.Annotate(cmd.Context(), annotate.Request{
		Engine:   output,
		Language: language,
	})
	if err != nil {
		return fmt.Errorf("annotating: %w", err)
	}

	return writeTranscript(transcript, recognizeOutput)
}

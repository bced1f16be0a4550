package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loonix/cadence/annotate"
	"github.com/loonix/cadence/asr"
	"github.com/loonix/cadence/lexicon"
)

var (
	annotateLanguage string
	annotateDuration float64
	annotateOutput   string

	annotatePhraseThreshold float64
	annotateVerseThreshold  float64
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <engine-output.json>",
	Short: "Annotate a recognition-engine output file",
	Long: `Annotate reads a recognition-engine document ({"result": [{word,
start, end}]} or {"text": ...} with --duration), runs the annotation
pipeline, and writes the annotated transcript JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVarP(&annotateLanguage, "language", "l", "en", "transcript language: en, pt")
	annotateCmd.Flags().Float64VarP(&annotateDuration, "duration", "d", 0, "total duration in seconds, required for text-only engine output")
	annotateCmd.Flags().StringVarP(&annotateOutput, "output", "o", "", "output path (default: stdout)")
	annotateCmd.Flags().Float64Var(&annotatePhraseThreshold, "phrase-threshold", 0, "pause length in seconds that breaks a phrase")
	annotateCmd.Flags().Float64Var(&annotateVerseThreshold, "verse-threshold", 0, "pause length in seconds that breaks a verse")

	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	document, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading engine output: %w", err)
	}

	language := lexicon.Language(annotateLanguage)
	lexicons, err := lexicon.NewService(cmd.Context(), lexicon.ServiceOptions{
		ParentLogger: parentLogger,
		Languages:    []lexicon.Language{language},
	})
	if err != nil {
		return fmt.Errorf("loading lexicons: %w", err)
	}

	pipeline := annotate.NewPipeline(annotate.PipelineOptions{
		ParentLogger:           parentLogger,
		Lexicons:               lexicons,
		PhraseThresholdSeconds: annotatePhraseThreshold,
		VerseThresholdSeconds:  annotateVerseThreshold,
	})

	transcript, err := pipeline.Annotate(cmd.Context(), annotate.Request{
		Engine:               asr.ParseEngineDocument(document),
		Language:             language,
		TotalDurationSeconds: annotateDuration,
	})
	if err != nil {
		return fmt.Errorf("annotating: %w", err)
	}

	return writeTranscript(transcript, annotateOutput)
}

func writeTranscript(transcript *annotate.AnnotatedTranscript, path string) error {
	encoded, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling transcript: %w", err)
	}
	encoded = append(encoded, '\n')

	if path == "" {
		_, err = os.Stdout.Write(encoded)
		return err
	}

	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	return nil
}

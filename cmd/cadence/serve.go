package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/loonix/cadence/annotate"
	"github.com/loonix/cadence/lexicon"
	"github.com/loonix/cadence/server"
	"github.com/loonix/cadence/store"
)

type serveConfig struct {
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	Languages []string `env:"LANGUAGES" envSeparator:","`

	PhraseThresholdSeconds float64 `env:"PHRASE_THRESHOLD_SECONDS"`
	VerseThresholdSeconds  float64 `env:"VERSE_THRESHOLD_SECONDS"`

	MaxBodyBytes int `env:"MAX_BODY_BYTES"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP annotation service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := parentLogger.Named("serve")

	cfg := serveConfig{}
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix: environmentPrefix,
	}); err != nil {
		log.Fatal("failed to parse config", zap.Error(err))
	}

	var languages []lexicon.Language
	for _, language := range cfg.Languages {
		languages = append(languages, lexicon.Language(language))
	}

	lexicons, err := lexicon.NewService(cmd.Context(), lexicon.ServiceOptions{
		ParentLogger: parentLogger,
		Languages:    languages,
	})
	if err != nil {
		log.Fatal("failed to load lexicons", zap.Error(err))
	}

	var s *store.Store
	if cfg.PostgresDSN != "" {
		s = store.NewStore(cmd.Context(), parentLogger)
		if err := s.Connect(cmd.Context(), cfg.PostgresDSN); err != nil {
			log.Fatal("failed to connect store", zap.Error(err))
		}
		defer s.Close()
	}

	pipeline := annotate.NewPipeline(annotate.PipelineOptions{
		ParentLogger:           parentLogger,
		Lexicons:               lexicons,
		PhraseThresholdSeconds: cfg.PhraseThresholdSeconds,
		VerseThresholdSeconds:  cfg.VerseThresholdSeconds,
	})

	srv := server.NewServer(server.ServerOptions{
		ParentLogger: parentLogger,
		Pipeline:     pipeline,
		Store:        s,
		Addr:         cfg.ListenAddr,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g := errgroup.Group{}

	g.Go(func() error {
		defer cancel()

		return srv.Run(ctx)
	})

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-shutdownSignal:
		cancel()
		log.Info("received signal, shutting down")
	case <-ctx.Done():
		log.Info("context done, shutting down")
	}

	if err := g.Wait(); err != nil {
		log.Fatal("error group error", zap.Error(err))
	}

	return nil
}

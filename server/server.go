// Package server exposes the annotation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/loonix/cadence/annotate"
	"github.com/loonix/cadence/store"
)

const DefaultMaxBodyBytes = 8 << 20

type Server struct {
	log *zap.Logger

	pipeline *annotate.Pipeline
	store    *store.Store

	addr         string
	maxBodyBytes int

	http *http.Server
}

type ServerOptions struct {
	ParentLogger *zap.Logger
	Pipeline     *annotate.Pipeline

	// Store is optional; without it the persistence endpoints return
	// 503 and annotate never persists.
	Store *store.Store

	Addr         string
	MaxBodyBytes int
}

func NewServer(options ServerOptions) *Server {
	s := &Server{
		log:          options.ParentLogger.Named("server"),
		pipeline:     options.Pipeline,
		store:        options.Store,
		addr:         options.Addr,
		maxBodyBytes: options.MaxBodyBytes,
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = DefaultMaxBodyBytes
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/annotate", s.handleAnnotate)
	mux.HandleFunc("GET /v1/transcripts", s.handleListTranscripts)
	mux.HandleFunc("GET /v1/transcripts/{id}", s.handleGetTranscript)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.With(zap.String("addr", s.addr)).Info("listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

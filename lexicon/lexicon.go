package lexicon

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed assets/*.yaml
var assets embed.FS

// Language identifies one supported lexicon language.
type Language string

const (
	English    Language = "en"
	Portuguese Language = "pt"
)

// SupportedLanguages lists the languages with bundled lexicon assets.
var SupportedLanguages = []Language{English, Portuguese}

// NotLoadedError is returned when a lookup targets a language that was
// never loaded into the service. A word simply missing from a loaded
// lexicon is not an error.
type NotLoadedError struct {
	Language Language
}

func (e NotLoadedError) Error() string {
	return fmt.Sprintf("lexicon for language %q not loaded", e.Language)
}

// Document is the serialized per-language lexicon format. This is also
// the shape the recognition layer hands over when it initializes
// lexicons from its own asset store.
type Document struct {
	Language       string            `yaml:"language"`
	Pronunciations map[string]string `yaml:"pronunciations"`
	Slang          []string          `yaml:"slang"`
}

type languageLexicon struct {
	pronunciations map[string]string
	slang          map[string]struct{}
}

type Service struct {
	log *zap.Logger

	mu        sync.RWMutex
	languages map[Language]*languageLexicon
}

type ServiceOptions struct {
	ParentLogger *zap.Logger

	// Languages to load at construction. Defaults to SupportedLanguages.
	Languages []Language
}

func newService(options ServiceOptions) *Service {
	s := &Service{
		log:       zap.NewNop(),
		languages: map[Language]*languageLexicon{},
	}
	if options.ParentLogger != nil {
		s.log = options.ParentLogger.Named("lexicon")
	}
	return s
}

// NewService loads the bundled lexicon assets for the requested
// languages. Lexicons are read-only after construction.
func NewService(ctx context.Context, options ServiceOptions) (*Service, error) {
	return NewServiceFromFS(ctx, assets, "assets", options)
}

// NewServiceFromDocuments builds a service from already-materialized
// lexicon documents, the contract used when the recognition layer
// hands over lexicon data it loaded itself.
func NewServiceFromDocuments(options ServiceOptions, documents ...*Document) (*Service, error) {
	s := newService(options)
	for _, doc := range documents {
		if err := s.LoadDocument(doc); err != nil {
			return nil, fmt.Errorf("loading lexicon document: %w", err)
		}
	}
	return s, nil
}

// NewServiceFromFS loads lexicon documents from <dir>/<language>.yaml in
// the given filesystem, one file per language.
func NewServiceFromFS(ctx context.Context, fsys fs.FS, dir string, options ServiceOptions) (*Service, error) {
	s := newService(options)

	languages := options.Languages
	if len(languages) == 0 {
		languages = SupportedLanguages
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, language := range languages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := fs.ReadFile(fsys, fmt.Sprintf("%s/%s.yaml", dir, language))
			if err != nil {
				return fmt.Errorf("reading lexicon asset for %q: %w", language, err)
			}

			doc := Document{}
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parsing lexicon asset for %q: %w", language, err)
			}
			doc.Language = string(language)

			if err := s.LoadDocument(&doc); err != nil {
				return fmt.Errorf("loading lexicon for %q: %w", language, err)
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s, nil
}

// LoadDocument installs one language's pronunciation and slang data.
// Words are normalized to lowercase. Loading the same language twice
// replaces the earlier data wholesale.
func (s *Service) LoadDocument(doc *Document) error {
	if doc.Language == "" {
		return fmt.Errorf("lexicon document missing language")
	}

	l := &languageLexicon{
		pronunciations: make(map[string]string, len(doc.Pronunciations)),
		slang:          make(map[string]struct{}, len(doc.Slang)),
	}
	for word, pronunciation := range doc.Pronunciations {
		l.pronunciations[strings.ToLower(word)] = strings.TrimSpace(pronunciation)
	}
	for _, word := range doc.Slang {
		l.slang[strings.ToLower(word)] = struct{}{}
	}

	s.mu.Lock()
	s.languages[Language(doc.Language)] = l
	s.mu.Unlock()

	s.log.With(
		zap.String("language", doc.Language),
		zap.Int("pronunciations", len(l.pronunciations)),
		zap.Int("slang_terms", len(l.slang)),
	).Debug("lexicon loaded")

	return nil
}

// Languages returns the languages currently loaded.
func (s *Service) Languages() []Language {
	s.mu.RLock()
	defer s.mu.RUnlock()

	languages := make([]Language, 0, len(s.languages))
	for language := range s.languages {
		languages = append(languages, language)
	}
	return languages
}

func (s *Service) language(language Language) (*languageLexicon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.languages[language]
	if !ok {
		return nil, NotLoadedError{Language: language}
	}
	return l, nil
}

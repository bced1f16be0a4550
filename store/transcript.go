package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/loonix/cadence/annotate"
)

// TranscriptRow is one persisted annotated transcript.
type TranscriptRow struct {
	ID        int64
	Language  string
	Text      string
	CreatedAt time.Time

	Document *annotate.AnnotatedTranscript
}

// SaveTranscript persists an annotated transcript as a jsonb document
// and returns its id.
func (s *Store) SaveTranscript(ctx context.Context, transcript *annotate.AnnotatedTranscript) (int64, error) {
	document, err := json.Marshal(transcript)
	if err != nil {
		return 0, fmt.Errorf("marshaling transcript: %w", err)
	}

	var id int64
	err = s.conn.QueryRow(ctx,
		`INSERT INTO transcripts (language, full_text, document) VALUES ($1, $2, $3) RETURNING id`,
		string(transcript.Language), transcript.Text, document,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting transcript: %w", err)
	}

	return id, nil
}

// GetTranscript loads one transcript by id, including the full
// annotated document.
func (s *Store) GetTranscript(ctx context.Context, id int64) (*TranscriptRow, error) {
	row := TranscriptRow{}
	var document []byte

	err := s.conn.QueryRow(ctx,
		`SELECT id, language, full_text, document, created_at FROM transcripts WHERE id = $1`,
		id,
	).Scan(&row.ID, &row.Language, &row.Text, &document, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting transcript: %w", err)
	}

	row.Document = &annotate.AnnotatedTranscript{}
	if err := json.Unmarshal(document, row.Document); err != nil {
		return nil, fmt.Errorf("unmarshaling transcript document: %w", err)
	}

	return &row, nil
}

// ListRecentTranscripts returns the newest transcripts without their
// documents, newest first.
func (s *Store) ListRecentTranscripts(ctx context.Context, limit int) ([]TranscriptRow, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT id, language, full_text, created_at FROM transcripts ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transcripts: %w", err)
	}
	defer rows.Close()

	var transcripts []TranscriptRow
	for rows.Next() {
		row := TranscriptRow{}
		if err := rows.Scan(&row.ID, &row.Language, &row.Text, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transcript row: %w", err)
		}
		transcripts = append(transcripts, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transcript rows: %w", err)
	}

	return transcripts, nil
}

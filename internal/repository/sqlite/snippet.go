package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nabil/snipdrop/internal/apperror"
	"github.com/nabil/snipdrop/internal/model"
	"github.com/nabil/snipdrop/internal/repository"
)

// SnippetDB implements repository.SnippetRepository over the snippets table.
type SnippetDB struct {
	conn *sql.DB
}

// Compile-time check that *SnippetDB implements repository.SnippetRepository.
var _ repository.SnippetRepository = (*SnippetDB)(nil)

// Create inserts a new snippet row and fills in the generated ID and
// timestamp. The artist_id foreign key is enforced by the schema
// (foreign_keys=ON), so an insert referencing a deleted user fails here
// rather than leaving a dangling reference.
func (s *SnippetDB) Create(ctx context.Context, snippet *model.Snippet) error {
	snippet.CreatedAt = time.Now().UTC()

	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO snippets (artist_id, title, genre, spotify_url, audio_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snippet.ArtistID,
		snippet.Title,
		snippet.Genre,
		snippet.SpotifyURL,
		snippet.AudioPath,
		snippet.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting snippet %q: %w", snippet.Title, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading snippet insert id: %w", err)
	}
	snippet.ID = id

	return nil
}

// GetByID retrieves a single snippet by primary key.
func (s *SnippetDB) GetByID(ctx context.Context, id int64) (*model.Snippet, error) {
	var sn model.Snippet
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, artist_id, title, genre, spotify_url, audio_path, created_at
		 FROM snippets WHERE id = ?`, id,
	).Scan(
		&sn.ID,
		&sn.ArtistID,
		&sn.Title,
		&sn.Genre,
		&sn.SpotifyURL,
		&sn.AudioPath,
		&sn.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("snippet", id)
		}
		return nil, fmt.Errorf("sqlite: getting snippet %d: %w", id, err)
	}
	return &sn, nil
}

// ListRecent returns up to limit snippets, newest first. The id tiebreak
// keeps the order stable when several snippets share a created_at value,
// which happens whenever two uploads land within the timestamp resolution.
func (s *SnippetDB) ListRecent(ctx context.Context, limit int) ([]model.Snippet, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, artist_id, title, genre, spotify_url, audio_path, created_at
		 FROM snippets
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing snippets: %w", err)
	}
	defer rows.Close()

	snippets := make([]model.Snippet, 0, limit)
	for rows.Next() {
		var sn model.Snippet
		if err := rows.Scan(
			&sn.ID, &sn.ArtistID, &sn.Title, &sn.Genre,
			&sn.SpotifyURL, &sn.AudioPath, &sn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning snippet row: %w", err)
		}
		snippets = append(snippets, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating snippets: %w", err)
	}

	return snippets, nil
}

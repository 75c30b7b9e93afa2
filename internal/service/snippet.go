package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nabil/snipdrop/internal/apperror"
	"github.com/nabil/snipdrop/internal/media"
	"github.com/nabil/snipdrop/internal/model"
	"github.com/nabil/snipdrop/internal/repository"
)

const (
	MaxTitleLength   = 200
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

// SnippetService handles uploads and the feed.
type SnippetService struct {
	snippets repository.SnippetRepository
	users    repository.UserRepository
	media    *media.Store
	logger   *slog.Logger
}

// NewSnippetService creates a SnippetService.
func NewSnippetService(
	snippets repository.SnippetRepository,
	users repository.UserRepository,
	mediaStore *media.Store,
	logger *slog.Logger,
) *SnippetService {
	return &SnippetService{
		snippets: snippets,
		users:    users,
		media:    mediaStore,
		logger:   logger,
	}
}

// Upload stores an audio file and its metadata for an artist.
//
// The artist check happens before any bytes touch disk: the uploader must
// be an existing user with the is_artist flag set, and a regular user's ID
// fails the same way a nonexistent one does.
//
// The file write and the row insert are not one transaction. If the insert
// fails after the write, the stored file is removed again (best effort) so
// a failed upload doesn't leave an orphan on disk.
func (s *SnippetService) Upload(
	ctx context.Context,
	artistID int64,
	title, genre, spotifyURL string,
	file io.Reader,
	originalName string,
) (*model.SnippetOut, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}

	if _, err := s.users.GetArtistByID(ctx, artistID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ValidationFailed("artist_id", "artist not found or not an artist")
		}
		return nil, fmt.Errorf("looking up artist: %w", err)
	}

	path, err := s.media.Save(file, originalName)
	if err != nil {
		s.logger.Error("failed to store upload",
			slog.Int64("artistID", artistID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("storing upload: %w", err)
	}

	snippet := &model.Snippet{
		ArtistID:   artistID,
		Title:      title,
		Genre:      optional(genre),
		SpotifyURL: optional(spotifyURL),
		AudioPath:  path,
	}
	if err := s.snippets.Create(ctx, snippet); err != nil {
		if rmErr := s.media.Remove(path); rmErr != nil {
			s.logger.Warn("failed to clean up stored file after insert failure",
				slog.String("path", path),
				slog.String("error", rmErr.Error()),
			)
		}
		s.logger.Error("failed to create snippet",
			slog.Int64("artistID", artistID),
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating snippet: %w", err)
	}

	s.logger.Info("snippet uploaded",
		slog.Int64("id", snippet.ID),
		slog.Int64("artistID", snippet.ArtistID),
		slog.String("title", snippet.Title),
	)

	out := model.NewSnippetOut(snippet, s.media.URL(snippet.AudioPath))
	return &out, nil
}

// Feed returns the most recent snippets, newest first, with each stored
// path rewritten to its public URL. The limit is clamped to 1..MaxFeedLimit
// and defaults to DefaultFeedLimit.
func (s *SnippetService) Feed(ctx context.Context, limit int) ([]model.SnippetOut, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	snippets, err := s.snippets.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list feed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing feed: %w", err)
	}

	out := make([]model.SnippetOut, 0, len(snippets))
	for i := range snippets {
		out = append(out, model.NewSnippetOut(&snippets[i], s.media.URL(snippets[i].AudioPath)))
	}
	return out, nil
}

// optional maps an empty form value to a database NULL.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

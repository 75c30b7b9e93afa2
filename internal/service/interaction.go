package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nabil/snipdrop/internal/apperror"
	"github.com/nabil/snipdrop/internal/model"
	"github.com/nabil/snipdrop/internal/repository"
)

// InteractionService records user actions against snippets.
type InteractionService struct {
	interactions repository.InteractionRepository
	users        repository.UserRepository
	snippets     repository.SnippetRepository
	logger       *slog.Logger
}

// NewInteractionService creates an InteractionService.
func NewInteractionService(
	interactions repository.InteractionRepository,
	users repository.UserRepository,
	snippets repository.SnippetRepository,
	logger *slog.Logger,
) *InteractionService {
	return &InteractionService{
		interactions: interactions,
		users:        users,
		snippets:     snippets,
		logger:       logger,
	}
}

// Record stores one interaction. Both referenced rows must exist; either
// one missing surfaces as NotFound and nothing is inserted. The action is
// free-form — "like", "skip" and "save" by convention, but any non-empty
// string is accepted and stored verbatim. Identical calls are all recorded;
// interactions are append-only.
func (s *InteractionService) Record(ctx context.Context, userID, snippetID int64, action string) (*model.Interaction, error) {
	action = strings.TrimSpace(action)
	if action == "" {
		return nil, apperror.ValidationFailed("action", "action is required")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.snippets.GetByID(ctx, snippetID); err != nil {
		return nil, err
	}

	interaction := &model.Interaction{
		UserID:    userID,
		SnippetID: snippetID,
		Action:    action,
	}
	if err := s.interactions.Create(ctx, interaction); err != nil {
		s.logger.Error("failed to record interaction",
			slog.Int64("userID", userID),
			slog.Int64("snippetID", snippetID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("recording interaction: %w", err)
	}

	s.logger.Info("interaction recorded",
		slog.Int64("id", interaction.ID),
		slog.Int64("userID", userID),
		slog.Int64("snippetID", snippetID),
		slog.String("action", action),
	)

	return interaction, nil
}

// Package repository declares the storage interfaces the service layer
// depends on. The sqlite subpackage provides the real implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/nabil/snipdrop/internal/model"
)

// UserRepository persists and looks up user accounts.
//
// GetByEmail and GetByUsername return apperror.ErrNotFound when no row
// matches — registration uses that to pre-check uniqueness, and login uses
// GetByEmail for the credential lookup.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// GetArtistByID returns the user only if their is_artist flag is set.
	GetArtistByID(ctx context.Context, id int64) (*model.User, error)
}

// SnippetRepository persists uploaded snippets and serves the feed query.
type SnippetRepository interface {
	Create(ctx context.Context, snippet *model.Snippet) error
	GetByID(ctx context.Context, id int64) (*model.Snippet, error)
	// ListRecent returns up to limit snippets, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.Snippet, error)
}

// InteractionRepository records user actions. Interactions are insert-only;
// there is no read path.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *model.Interaction) error
}

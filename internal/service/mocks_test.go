package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/nabil/snipdrop/internal/apperror"
	"github.com/nabil/snipdrop/internal/model"
)

// Hand-written in-memory mocks of the repository interfaces. The services
// only see the interfaces, so these swap in for sqlite without the
// services noticing — the same substitution main.go could do with a
// different database.

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.Conflict("email", "email already registered")
		}
		if u.Username == user.Username {
			return apperror.Conflict("username", "username already registered")
		}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "user not found"}
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "user not found"}
}

func (m *mockUserRepo) GetArtistByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok || !u.IsArtist {
		return nil, apperror.NotFound("artist", id)
	}
	result := *u
	return &result, nil
}

type mockSnippetRepo struct {
	snippets map[int64]*model.Snippet
	nextID   int64
	// createErr, when set, makes Create fail — simulates the insert failing
	// after the upload already hit disk.
	createErr error
}

func newMockSnippetRepo() *mockSnippetRepo {
	return &mockSnippetRepo{snippets: make(map[int64]*model.Snippet)}
}

func (m *mockSnippetRepo) Create(_ context.Context, snippet *model.Snippet) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	snippet.ID = m.nextID
	stored := *snippet
	m.snippets[snippet.ID] = &stored
	return nil
}

func (m *mockSnippetRepo) GetByID(_ context.Context, id int64) (*model.Snippet, error) {
	s, ok := m.snippets[id]
	if !ok {
		return nil, apperror.NotFound("snippet", id)
	}
	result := *s
	return &result, nil
}

func (m *mockSnippetRepo) ListRecent(_ context.Context, limit int) ([]model.Snippet, error) {
	// Insertion order is creation order; walk ids backwards for newest
	// first.
	result := make([]model.Snippet, 0, limit)
	for id := m.nextID; id > 0 && len(result) < limit; id-- {
		if s, ok := m.snippets[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

type mockInteractionRepo struct {
	interactions []model.Interaction
	nextID       int64
	createErr    error
}

func newMockInteractionRepo() *mockInteractionRepo {
	return &mockInteractionRepo{}
}

func (m *mockInteractionRepo) Create(_ context.Context, interaction *model.Interaction) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	interaction.ID = m.nextID
	m.interactions = append(m.interactions, *interaction)
	return nil
}

var errMockDB = errors.New("mock database failure")

// testLogger discards everything below Error so test output stays readable.
func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// Package service contains the business logic layer.
//
// Handlers parse HTTP and delegate here; services validate input, enforce
// the domain rules, and talk to the repositories through their interfaces.
// Services return apperror values — never HTTP status codes — so the same
// logic could sit behind a CLI or a different transport untouched.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nabil/snipdrop/internal/apperror"
	"github.com/nabil/snipdrop/internal/auth"
	"github.com/nabil/snipdrop/internal/model"
	"github.com/nabil/snipdrop/internal/repository"
)

// dummyHash is a throwaway bcrypt hash compared against when a login email
// doesn't exist. Without it, unknown-email logins would return faster than
// wrong-password logins (no bcrypt work), letting a caller probe which
// emails are registered. The compare always fails; its result is discarded.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService handles registration and login.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account.
//
// Email is checked before username so a request that collides on both gets
// the email message, matching the registration contract. The pre-checks
// give per-field errors for the common case; the UNIQUE constraints in the
// store close the race two concurrent registrations would otherwise win
// together, and the repository maps that failure to the same Conflict.
func (s *UserService) Register(ctx context.Context, email, username, password string, isArtist bool) (*model.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("email", "email already registered")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperror.Conflict("username", "username already registered")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		IsArtist:     isArtist,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("id", user.ID),
		slog.String("username", user.Username),
		slog.Bool("isArtist", user.IsArtist),
	)

	return user, nil
}

// Login verifies credentials and returns the matching user.
//
// Both failure modes — unknown email and wrong password — return the same
// opaque InvalidCredentials error, and the unknown-email path still burns a
// bcrypt compare (against dummyHash) so the two are indistinguishable by
// response body and by timing.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperror.InvalidCredentials()
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			_ = s.passwords.Verify(dummyHash, password)
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.InvalidCredentials()
	}

	s.logger.Info("user logged in", slog.Int64("id", user.ID))

	return user, nil
}

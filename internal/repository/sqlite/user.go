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

// UserDB implements repository.UserRepository over the users table.
type UserDB struct {
	conn *sql.DB
}

// Compile-time check that *UserDB implements repository.UserRepository.
var _ repository.UserRepository = (*UserDB)(nil)

// Create inserts a new user and fills in the generated ID and timestamp.
//
// The service pre-checks email and username uniqueness for friendly
// per-field errors, but two concurrent registrations can both pass those
// checks. The UNIQUE constraints are the real guarantee, so a constraint
// failure here is translated to the same Conflict error the pre-check
// would have produced.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now().UTC()

	res, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (email, username, password_hash, is_artist, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.IsArtist,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return apperror.Conflict("email", "email already registered")
		}
		if isUniqueViolation(err, "users.username") {
			return apperror.Conflict("username", "username already registered")
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading user insert id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by primary key.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (u *UserDB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := scanUser(u.conn.QueryRowContext(ctx,
		`SELECT id, email, username, password_hash, is_artist, created_at
		 FROM users WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email. Used by login and by the
// registration pre-check.
func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := scanUser(u.conn.QueryRowContext(ctx,
		`SELECT id, email, username, password_hash, is_artist, created_at
		 FROM users WHERE email = ?`, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: fmt.Sprintf("user not found with email %s", email),
			}
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username.
func (u *UserDB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := scanUser(u.conn.QueryRowContext(ctx,
		`SELECT id, email, username, password_hash, is_artist, created_at
		 FROM users WHERE username = ?`, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: fmt.Sprintf("user not found with username %s", username),
			}
		}
		return nil, fmt.Errorf("sqlite: getting user by username: %w", err)
	}
	return user, nil
}

// GetArtistByID retrieves a user only if their is_artist flag is set.
// A regular user's ID gets the same NotFound as a nonexistent ID — the
// upload path treats both as "not a valid artist".
func (u *UserDB) GetArtistByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := scanUser(u.conn.QueryRowContext(ctx,
		`SELECT id, email, username, password_hash, is_artist, created_at
		 FROM users WHERE id = ? AND is_artist = 1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("artist", id)
		}
		return nil, fmt.Errorf("sqlite: getting artist %d: %w", id, err)
	}
	return user, nil
}

// scanUser reads one users row. The column order must match every SELECT
// above.
func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.IsArtist,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

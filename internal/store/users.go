// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/models"
)

// userColumns deliberately excludes hashed_password: credentials never
// travel through the sync wire format and are never overwritten by merges.
var userColumns = []string{
	"id", "username", "email", "full_name", "role",
	"can_supply", "salary", "last_updated", "synced", "is_active",
}

func newUserStore(log *logger.Logger) *tableStore[*models.User] {
	return &tableStore[*models.User]{
		table:   "users",
		columns: userColumns,
		scan:    scanUser,
		values:  userValues,
		logger:  log,
	}
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.Role,
		&u.CanSupply, &u.Salary, &u.LastUpdated, &u.Synced, &u.IsActive,
	)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func userValues(u *models.User) map[string]any {
	return map[string]any{
		"id":           u.ID,
		"username":     u.Username,
		"email":        u.Email,
		"full_name":    u.FullName,
		"role":         string(u.Role),
		"can_supply":   u.CanSupply,
		"salary":       u.Salary,
		"last_updated": u.LastUpdated,
		"synced":       u.Synced,
		"is_active":    u.IsActive,
	}
}

const (
	createUser = `INSERT INTO users (username, hashed_password, full_name, role, last_updated, synced, is_active)
    VALUES ($1, $2, $3, $4, $5, FALSE, TRUE)
    RETURNING id, username, email, full_name, role, can_supply, salary, last_updated, synced, is_active;`

	findUserByUsername = `SELECT id, username, email, full_name, role, can_supply, salary, last_updated, synced, is_active, hashed_password
    FROM users
    WHERE username = $1 AND is_active = TRUE;`
)

// UserRepository holds the account queries used by the auth endpoints.
// Sync access to the users table goes through the registered adapter, not
// through this repository.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, log *logger.Logger) UserRepository {
	return &userRepository{DB: db, logger: log}
}

// CreateUser persists a new account with its password hash.
//
// Returns ErrUsernameAlreadyExists when the unique constraint on username
// is violated.
func (u *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := u.DB.QueryRowContext(ctx, createUser,
		user.Username, user.HashedPassword, user.FullName, string(user.Role), time.Now().UTC())

	created, err := scanUser(row)
	if err != nil {
		if postgresErrorCode(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrUsernameAlreadyExists
		}
		log.Err(err).
			Str("func", "userRepository.CreateUser").
			Str("username", user.Username).
			Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	created.HashedPassword = user.HashedPassword

	return *created, nil
}

// FindUserByUsername looks up an active account by its username.
//
// Returns ErrNoUserWasFound when the account does not exist.
func (u *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := u.DB.QueryRowContext(ctx, findUserByUsername, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.Role,
		&user.CanSupply, &user.Salary, &user.LastUpdated, &user.Synced, &user.IsActive,
		&user.HashedPassword,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.FindUserByUsername").
			Str("username", username).
			Msg("failed to query user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

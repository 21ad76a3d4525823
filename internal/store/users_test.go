package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	l := logger.Nop()
	repo := &userRepository{
		DB:     &DB{DB: db, errorClassifier: &PostgresErrorClassifier{}, dialect: "pgx", logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{
		Username:       "maria",
		FullName:       "Maria Souza",
		Role:           models.RoleCashier,
		HashedPassword: "$2a$10$hash",
	}

	now := time.Now().UTC()

	rows := sqlmock.
		NewRows(userColumns).
		AddRow(1, user.Username, nil, user.FullName, string(user.Role), false, nil, now, false, true)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.HashedPassword, user.FullName, string(user.Role), sqlmock.AnyArg()).
		WillReturnRows(rows)

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected ID=1, got %d", created.ID)
	}
	if created.Username != user.Username {
		t.Errorf("expected username %s, got %s", user.Username, created.Username)
	}
	if created.HashedPassword != user.HashedPassword {
		t.Error("created user must keep its password hash for immediate token issuance")
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "maria"})
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now().UTC()

	rows := sqlmock.
		NewRows(append(append([]string{}, userColumns...), "hashed_password")).
		AddRow(2, "joao", nil, "João Lima", "manager", true, nil, now, true, true, "$2a$10$hash")

	mock.ExpectQuery("SELECT .* FROM users").
		WithArgs("joao").
		WillReturnRows(rows)

	found, err := repo.FindUserByUsername(context.Background(), "joao")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != 2 || found.Role != models.RoleManager {
		t.Errorf("unexpected user: %+v", found)
	}
	if found.HashedPassword == "" {
		t.Error("lookup for login must include the password hash")
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

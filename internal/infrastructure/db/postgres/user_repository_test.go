package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
)

func newMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return mock, db
}

func sampleUser() *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           "u-1",
		Email:        "alice@x.com",
		Name:         "Alice",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_Create_Success(t *testing.T) {
	mock, db := newMockDB(t)
	defer db.Close()
	repo := NewUserRepository(db)

	u := sampleUser()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt, u.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock, db := newMockDB(t)
	defer db.Close()
	repo := NewUserRepository(db)

	u := sampleUser()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt, u.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	if _, err := repo.Create(context.Background(), u); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	mock, db := newMockDB(t)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT .* FROM users\s+WHERE email`).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.FindByEmail(context.Background(), "ghost@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_FindByID_Found(t *testing.T) {
	mock, db := newMockDB(t)
	defer db.Close()
	repo := NewUserRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
		AddRow("u-1", "alice@x.com", "Alice", "$2a$10$hash", now, now)
	mock.ExpectQuery(`SELECT .* FROM users\s+WHERE id`).
		WithArgs("u-1").
		WillReturnRows(rows)

	u, err := repo.FindByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if u.Email != "alice@x.com" || u.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserRepository_List_NewestFirst(t *testing.T) {
	mock, db := newMockDB(t)
	defer db.Close()
	repo := NewUserRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
		AddRow("u-2", "bob@x.com", "Bob", "h2", now, now).
		AddRow("u-1", "alice@x.com", "Alice", "h1", now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT .* FROM users\s+ORDER BY created_at DESC`).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(users) != 2 || users[0].ID != "u-2" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"fms/internal/model"
	"fms/internal/repository"
)

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		now := time.Now().UTC()
		u := &model.User{ID: "u-id", Username: "alice", Email: "alice@example.com", PasswordHash: "hash", CreatedAt: now}

		rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt).
			WillReturnRows(rows)

		result, err := repo.Create(ctx, u)

		assert.NoError(t, err)
		assert.Equal(t, "alice", result.Username)
	})

	t.Run("duplicate username or email", func(t *testing.T) {
		now := time.Now().UTC()
		u := &model.User{ID: "u-id", Username: "alice", Email: "alice@example.com", PasswordHash: "hash", CreatedAt: now}

		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := repo.Create(ctx, u)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrDuplicate))
	})
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow("u-id", "alice", "alice@example.com", "hash", now)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("alice@example.com").
			WillReturnRows(rows)

		user, err := repo.FindByEmail(ctx, "alice@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(ctx, "nobody@example.com")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestUserPostgres_FindByUsernameOrEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow("u-id", "alice", "alice@example.com", "hash", now)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username = ?").
		WithArgs("alice", "other@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByUsernameOrEmail(ctx, "alice", "other@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "u-id", user.ID)
}

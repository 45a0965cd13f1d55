package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"gqlblog/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, driver), mock
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("mysql uses LastInsertId", func(t *testing.T) {
		db, mock := newMock(t, "mysql")
		repo := NewUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (email, password, name, surname) VALUES (?, ?, ?, ?)`)).
			WithArgs("a@x.com", "digest", "A", "B").
			WillReturnResult(sqlmock.NewResult(17, 1))

		user := &models.User{Email: "a@x.com", PasswordHash: "digest", Name: "A", Surname: "B"}
		require.NoError(t, repo.Create(ctx, user))
		assert.Equal(t, int64(17), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("postgres uses RETURNING", func(t *testing.T) {
		db, mock := newMock(t, "postgres")
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`VALUES ($1, $2, $3, $4) RETURNING id`)).
			WithArgs("a@x.com", "digest", "", "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		user := &models.User{Email: "a@x.com", PasswordHash: "digest"}
		require.NoError(t, repo.Create(ctx, user))
		assert.Equal(t, int64(5), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no insert id", func(t *testing.T) {
		db, mock := newMock(t, "mysql")
		repo := NewUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "digest"})
		assert.ErrorIs(t, err, ErrNoInsertID)
	})

	duplicates := []struct {
		name   string
		driver string
		err    error
	}{
		{"mysql duplicate", "mysql", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}},
		{"lib/pq duplicate", "postgres", &pq.Error{Code: "23505"}},
		{"pgx duplicate", "pgx", &pgconn.PgError{Code: "23505"}},
	}

	for _, tt := range duplicates {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t, tt.driver)
			repo := NewUserRepository(db)

			if tt.driver == "mysql" {
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).WillReturnError(tt.err)
			} else {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).WillReturnError(tt.err)
			}

			err := repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "digest"})
			assert.ErrorIs(t, err, ErrDuplicate)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("other errors are not duplicates", func(t *testing.T) {
		db, mock := newMock(t, "mysql")
		repo := NewUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnError(&mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"})

		err := repo.Create(ctx, &models.User{Email: "a@x.com"})
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrDuplicate))
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := newMock(t, "mysql")
		repo := NewUserRepository(db)

		rows := sqlmock.NewRows([]string{"id", "email", "password", "name", "surname"}).
			AddRow(3, "a@x.com", "digest", "A", "B")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password, name, surname FROM users WHERE email = ?`)).
			WithArgs("a@x.com").
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, &models.User{ID: 3, Email: "a@x.com", PasswordHash: "digest", Name: "A", Surname: "B"}, user)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMock(t, "mysql")
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = ?`)).
			WithArgs("nobody@x.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("postgres placeholders", func(t *testing.T) {
		db, mock := newMock(t, "postgres")
		repo := NewUserRepository(db)

		rows := sqlmock.NewRows([]string{"id", "email", "password", "name", "surname"}).
			AddRow(9, "c@x.com", "digest", "", "")
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
			WithArgs(int64(9)).
			WillReturnRows(rows)

		user, err := repo.GetByID(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, "c@x.com", user.Email)
	})

	t.Run("driver failure", func(t *testing.T) {
		db, mock := newMock(t, "mysql")
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = ?`)).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.GetByID(ctx, 1)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNotFound))
	})
}

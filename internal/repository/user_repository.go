package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gqlblog/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, name, surname)
		VALUES (:email, :password, :name, :surname)`

	id, err := insertReturningID(ctx, r.db, query, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = id
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User

	query := r.db.Rebind(`SELECT id, email, password, name, surname FROM users WHERE id = ?`)

	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := r.db.Rebind(`SELECT id, email, password, name, surname FROM users WHERE email = ?`)

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

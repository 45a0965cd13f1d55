package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gqlblog/internal/models"

	"github.com/jmoiron/sqlx"
)

type ItemRepositoryImpl struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) *ItemRepositoryImpl {
	return &ItemRepositoryImpl{db: db}
}

func (r *ItemRepositoryImpl) List(ctx context.Context) ([]*models.Item, error) {
	items := []*models.Item{}

	query := `SELECT id, name, description FROM items ORDER BY createdAt DESC, id DESC`

	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

func (r *ItemRepositoryImpl) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item

	query := r.db.Rebind(`SELECT id, name, description FROM items WHERE id = ?`)

	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}

	return &item, nil
}

func (r *ItemRepositoryImpl) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (name, description)
		VALUES (:name, :description)`

	id, err := insertReturningID(ctx, r.db, query, item)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	item.ID = id
	return nil
}

func (r *ItemRepositoryImpl) Update(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = ?, description = ? WHERE id = ?`

	if err := execAffecting(ctx, r.db, query, item.Name, item.Description, item.ID); err != nil {
		return fmt.Errorf("failed to update item %d: %w", item.ID, err)
	}

	return nil
}

func (r *ItemRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM items WHERE id = ?`

	if err := execAffecting(ctx, r.db, query, id); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}

	return nil
}

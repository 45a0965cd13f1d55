package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gqlblog/internal/models"

	"github.com/jmoiron/sqlx"
)

type BlogRepositoryImpl struct {
	db *sqlx.DB
	// desc is a reserved word in both dialects.
	descColumn string
}

func NewBlogRepository(db *sqlx.DB) *BlogRepositoryImpl {
	return &BlogRepositoryImpl{
		db:         db,
		descColumn: quoteIdent(db, "desc"),
	}
}

func (r *BlogRepositoryImpl) columns() string {
	return fmt.Sprintf("id, name, %s, createdby, imagepath, createdon", r.descColumn)
}

func (r *BlogRepositoryImpl) List(ctx context.Context) ([]*models.Blog, error) {
	blogs := []*models.Blog{}

	query := fmt.Sprintf(`SELECT %s FROM blogs ORDER BY createdon DESC, id DESC`, r.columns())

	if err := r.db.SelectContext(ctx, &blogs, query); err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	return blogs, nil
}

func (r *BlogRepositoryImpl) ListByAuthor(ctx context.Context, authorID int64) ([]*models.Blog, error) {
	blogs := []*models.Blog{}

	query := r.db.Rebind(fmt.Sprintf(
		`SELECT %s FROM blogs WHERE createdby = ? ORDER BY createdon DESC, id DESC`, r.columns()))

	if err := r.db.SelectContext(ctx, &blogs, query, authorID); err != nil {
		return nil, fmt.Errorf("failed to list blogs of user %d: %w", authorID, err)
	}

	return blogs, nil
}

func (r *BlogRepositoryImpl) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	var blog models.Blog

	query := r.db.Rebind(fmt.Sprintf(`SELECT %s FROM blogs WHERE id = ?`, r.columns()))

	err := r.db.GetContext(ctx, &blog, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog %d: %w", id, err)
	}

	return &blog, nil
}

func (r *BlogRepositoryImpl) Create(ctx context.Context, blog *models.Blog) error {
	query := fmt.Sprintf(`
		INSERT INTO blogs (name, %s, createdby, imagepath, createdon)
		VALUES (:name, :desc, :createdby, :imagepath, :createdon)`, r.descColumn)

	id, err := insertReturningID(ctx, r.db, query, blog)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	blog.ID = id
	return nil
}

func (r *BlogRepositoryImpl) Update(ctx context.Context, blog *models.Blog) error {
	query := fmt.Sprintf(`UPDATE blogs SET name = ?, %s = ?, imagepath = ? WHERE id = ?`, r.descColumn)

	if err := execAffecting(ctx, r.db, query, blog.Name, blog.Desc, blog.ImagePath, blog.ID); err != nil {
		return fmt.Errorf("failed to update blog %d: %w", blog.ID, err)
	}

	return nil
}

func (r *BlogRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM blogs WHERE id = ?`

	if err := execAffecting(ctx, r.db, query, id); err != nil {
		return fmt.Errorf("failed to delete blog %d: %w", id, err)
	}

	return nil
}

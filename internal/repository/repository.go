package repository

import (
	"context"
	"errors"

	"gqlblog/internal/models"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("record already exists")
	ErrNoInsertID = errors.New("insert did not produce an id")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type ItemRepository interface {
	List(ctx context.Context) ([]*models.Item, error)
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id int64) error
}

type BlogRepository interface {
	List(ctx context.Context) ([]*models.Blog, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*models.Blog, error)
	GetByID(ctx context.Context, id int64) (*models.Blog, error)
	Create(ctx context.Context, blog *models.Blog) error
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id int64) error
}

type TablesRepository interface {
	MissingTables(ctx context.Context) ([]string, error)
}

type Repository struct {
	User   UserRepository
	Item   ItemRepository
	Blog   BlogRepository
	Tables TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:   NewUserRepository(db),
		Item:   NewItemRepository(db),
		Blog:   NewBlogRepository(db),
		Tables: NewTablesRepository(db),
	}
}

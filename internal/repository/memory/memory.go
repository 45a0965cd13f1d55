// Package memory provides map-backed repositories with the same contracts as
// the SQL ones. They back the test suites and DB_DRIVER=memory runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gqlblog/internal/models"
	"gqlblog/internal/repository"
)

func NewRepository() *repository.Repository {
	return &repository.Repository{
		User:   NewUserRepository(),
		Item:   NewItemRepository(),
		Blog:   NewBlogRepository(),
		Tables: tables{},
	}
}

type tables struct{}

func (tables) MissingTables(context.Context) ([]string, error) {
	return nil, nil
}

// UserRepository compares emails case-insensitively, like the default MySQL
// collation on users.email.
type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]models.User)}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}

	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type ItemRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]models.Item
	writes int
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[int64]models.Item)}
}

// Writes counts successful and attempted mutations.
func (r *ItemRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}

func (r *ItemRepository) List(_ context.Context) ([]*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*models.Item, 0, len(r.items))
	for _, item := range r.items {
		i := item
		items = append(items, &i)
	}

	// Newest first.
	sort.Slice(items, func(a, b int) bool { return items[a].ID > items[b].ID })
	return items, nil
}

func (r *ItemRepository) GetByID(_ context.Context, id int64) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (r *ItemRepository) Create(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writes++
	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = *item
	return nil
}

func (r *ItemRepository) Update(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writes++
	if _, ok := r.items[item.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *ItemRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writes++
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type BlogRepository struct {
	mu     sync.RWMutex
	nextID int64
	blogs  map[int64]models.Blog
	writes int
}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{blogs: make(map[int64]models.Blog)}
}

func (r *BlogRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}

func (r *BlogRepository) List(_ context.Context) ([]*models.Blog, error) {
	return r.filter(func(models.Blog) bool { return true }), nil
}

func (r *BlogRepository) ListByAuthor(_ context.Context, authorID int64) ([]*models.Blog, error) {
	return r.filter(func(b models.Blog) bool { return b.CreatedBy == authorID }), nil
}

func (r *BlogRepository) filter(keep func(models.Blog) bool) []*models.Blog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blogs := make([]*models.Blog, 0, len(r.blogs))
	for _, blog := range r.blogs {
		if keep(blog) {
			b := blog
			blogs = append(blogs, &b)
		}
	}

	sort.Slice(blogs, func(a, b int) bool { return blogs[a].ID > blogs[b].ID })
	return blogs
}

func (r *BlogRepository) GetByID(_ context.Context, id int64) (*models.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blog, ok := r.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &blog, nil
}

func (r *BlogRepository) Create(_ context.Context, blog *models.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writes++
	r.nextID++
	blog.ID = r.nextID
	r.blogs[blog.ID] = *blog
	return nil
}

func (r *BlogRepository) Update(_ context.Context, blog *models.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writes++
	existing, ok := r.blogs[blog.ID]
	if !ok {
		return repository.ErrNotFound
	}

	existing.Name = blog.Name
	existing.Desc = blog.Desc
	existing.ImagePath = blog.ImagePath
	r.blogs[blog.ID] = existing
	return nil
}

func (r *BlogRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writes++
	if _, ok := r.blogs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.blogs, id)
	return nil
}

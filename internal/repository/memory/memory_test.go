package memory

import (
	"context"
	"testing"

	"gqlblog/internal/models"
	"gqlblog/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_EmailCase(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	user := &models.User{Email: "Ann@X.com", PasswordHash: "digest"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	err = repo.Create(ctx, &models.User{Email: "ANN@x.com", PasswordHash: "digest"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = repo.GetByEmail(ctx, "bob@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestItemRepository_WritesCounted(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository()

	item := &models.Item{Name: "lamp"}
	require.NoError(t, repo.Create(ctx, item))
	assert.ErrorIs(t, repo.Delete(ctx, item.ID+1), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, item.ID))

	assert.Equal(t, 3, repo.Writes())
}

func TestBlogRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository()

	require.NoError(t, repo.Create(ctx, &models.Blog{Name: "a", CreatedBy: 1}))
	require.NoError(t, repo.Create(ctx, &models.Blog{Name: "b", CreatedBy: 2}))
	require.NoError(t, repo.Create(ctx, &models.Blog{Name: "c", CreatedBy: 1}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Name)

	mine, err := repo.ListByAuthor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, []string{"c", "a"}, []string{mine[0].Name, mine[1].Name})
}

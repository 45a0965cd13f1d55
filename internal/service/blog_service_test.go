package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gqlblog/internal/apperror"
	"gqlblog/internal/models"
	"gqlblog/internal/repository"
	"gqlblog/internal/repository/memory"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestBlogService(repo repository.BlogRepository, now time.Time) *blogService {
	svc := NewBlogService(repo, validator.New(), discardLogger()).(*blogService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestBlogService_Create(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.UTC)
	svc := newTestBlogService(memory.NewBlogRepository(), now)

	blog, err := svc.Create(context.Background(), 7, models.BlogInput{
		Name:      "T",
		Desc:      "D",
		ImagePath: strPtr("/uploads/blogs/x.png"),
	})
	require.NoError(t, err)

	assert.NotZero(t, blog.ID)
	assert.Equal(t, int64(7), blog.CreatedBy)
	assert.Equal(t, "/uploads/blogs/x.png", *blog.ImagePath)
	require.NotNil(t, blog.CreatedOn)
	assert.Equal(t, now.Truncate(time.Second), *blog.CreatedOn)
}

func TestBlogService_Create_Failures(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		repo := new(MockBlogRepository)
		svc := newTestBlogService(repo, time.Now())

		_, err := svc.Create(context.Background(), 1, models.BlogInput{Name: "T"})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		repo := new(MockBlogRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Blog")).
			Return(repository.ErrNoInsertID)
		svc := newTestBlogService(repo, time.Now())

		blog, err := svc.Create(context.Background(), 1, models.BlogInput{Name: "T", Desc: "D"})
		assert.Nil(t, blog)
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindStorage))
		assert.Equal(t, "failed to create blog", err.Error())
	})
}

func TestBlogService_Update_AlwaysReturnsView(t *testing.T) {
	svc := newTestBlogService(memory.NewBlogRepository(), time.Now())

	blog, err := svc.Update(context.Background(), 404, models.BlogInput{Name: "T", Desc: "D"})
	require.NoError(t, err)
	assert.Equal(t, &models.Blog{ID: 404, Name: "T", Desc: "D"}, blog)
}

func TestBlogService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBlogRepository()
	svc := newTestBlogService(repo, time.Now())

	blog, err := svc.Create(ctx, 1, models.BlogInput{Name: "T", Desc: "D"})
	require.NoError(t, err)

	t.Run("non-owner", func(t *testing.T) {
		ok, err := svc.Delete(ctx, 2, blog.ID)
		assert.False(t, ok)
		require.Error(t, err)
		assert.Equal(t, apperror.MsgNotAuthor, err.Error())
		assert.True(t, apperror.IsKind(err, apperror.KindUnauthenticated))

		still, err := repo.GetByID(ctx, blog.ID)
		require.NoError(t, err)
		assert.Equal(t, "T", still.Name)
	})

	t.Run("owner", func(t *testing.T) {
		ok, err := svc.Delete(ctx, 1, blog.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("repeat", func(t *testing.T) {
		ok, err := svc.Delete(ctx, 1, blog.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBlogService_Delete_LookupFailure(t *testing.T) {
	repo := new(MockBlogRepository)
	repo.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))
	svc := newTestBlogService(repo, time.Now())

	ok, err := svc.Delete(context.Background(), 1, 3)
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindStorage))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestBlogService_Reads(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBlogRepository()
	svc := newTestBlogService(repo, time.Now())

	_, err := svc.Create(ctx, 1, models.BlogInput{Name: "a", Desc: "d"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, models.BlogInput{Name: "b", Desc: "d"})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListByAuthor(ctx, 2)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "b", mine[0].Name)

	missing, err := svc.Get(ctx, 99)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

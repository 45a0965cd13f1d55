package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gqlblog/internal/apperror"
	"gqlblog/internal/models"
	"gqlblog/internal/repository"

	"github.com/go-playground/validator/v10"
)

type BlogService interface {
	List(ctx context.Context) ([]*models.Blog, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*models.Blog, error)
	// Get returns nil when the blog does not exist.
	Get(ctx context.Context, id int64) (*models.Blog, error)
	Create(ctx context.Context, authorID int64, in models.BlogInput) (*models.Blog, error)
	Update(ctx context.Context, id int64, in models.BlogInput) (*models.Blog, error)
	// Delete removes the blog only when requesterID is its author.
	Delete(ctx context.Context, requesterID, id int64) (bool, error)
}

type blogService struct {
	blogRepo repository.BlogRepository
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

func NewBlogService(blogRepo repository.BlogRepository, validate *validator.Validate, logger *slog.Logger) BlogService {
	return &blogService{
		blogRepo: blogRepo,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *blogService) List(ctx context.Context) ([]*models.Blog, error) {
	blogs, err := s.blogRepo.List(ctx)
	if err != nil {
		return nil, s.storageError("failed to fetch blogs", err)
	}
	return blogs, nil
}

func (s *blogService) ListByAuthor(ctx context.Context, authorID int64) ([]*models.Blog, error) {
	blogs, err := s.blogRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, s.storageError("failed to fetch user blogs", err)
	}
	return blogs, nil
}

func (s *blogService) Get(ctx context.Context, id int64) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.storageError("failed to fetch blog", err)
	}
	return blog, nil
}

func (s *blogService) Create(ctx context.Context, authorID int64, in models.BlogInput) (*models.Blog, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperror.Validation(validationMessage(err), err)
	}

	createdOn := s.now().UTC().Truncate(time.Second)
	blog := &models.Blog{
		Name:      in.Name,
		Desc:      in.Desc,
		CreatedBy: authorID,
		ImagePath: in.ImagePath,
		CreatedOn: &createdOn,
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, s.storageError("failed to create blog", err)
	}

	s.logger.Info("blog created",
		slog.Int64("blog_id", blog.ID),
		slog.Int64("user_id", authorID),
	)
	return blog, nil
}

func (s *blogService) Update(ctx context.Context, id int64, in models.BlogInput) (*models.Blog, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperror.Validation(validationMessage(err), err)
	}

	blog := &models.Blog{ID: id, Name: in.Name, Desc: in.Desc, ImagePath: in.ImagePath}
	if err := s.blogRepo.Update(ctx, blog); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, s.storageError("failed to update blog", err)
	}

	return blog, nil
}

func (s *blogService) Delete(ctx context.Context, requesterID, id int64) (bool, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, s.storageError("failed to delete blog", err)
	}

	if blog.CreatedBy != requesterID {
		s.logger.Warn("blog delete refused",
			slog.Int64("blog_id", id),
			slog.Int64("user_id", requesterID),
		)
		return false, apperror.NotAuthor()
	}

	if err := s.blogRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, s.storageError("failed to delete blog", err)
	}

	s.logger.Info("blog deleted", slog.Int64("blog_id", id))
	return true, nil
}

func (s *blogService) storageError(msg string, err error) error {
	s.logger.Error(msg, slog.String("error", err.Error()))
	return apperror.Storage(msg, err)
}

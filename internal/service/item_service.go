package service

import (
	"context"
	"errors"
	"log/slog"

	"gqlblog/internal/apperror"
	"gqlblog/internal/models"
	"gqlblog/internal/repository"

	"github.com/go-playground/validator/v10"
)

type ItemService interface {
	List(ctx context.Context) ([]*models.Item, error)
	// Get returns nil when the item does not exist.
	Get(ctx context.Context, id int64) (*models.Item, error)
	Create(ctx context.Context, in models.ItemInput) (*models.Item, error)
	// Update returns nil when no row matched id.
	Update(ctx context.Context, id int64, in models.ItemInput) (*models.Item, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type itemService struct {
	itemRepo repository.ItemRepository
	validate *validator.Validate
	logger   *slog.Logger
}

func NewItemService(itemRepo repository.ItemRepository, validate *validator.Validate, logger *slog.Logger) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		validate: validate,
		logger:   logger,
	}
}

func (s *itemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, s.storageError("failed to fetch items", err)
	}
	return items, nil
}

func (s *itemService) Get(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.storageError("failed to fetch item", err)
	}
	return item, nil
}

func (s *itemService) Create(ctx context.Context, in models.ItemInput) (*models.Item, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperror.Validation(validationMessage(err), err)
	}

	item := &models.Item{Name: in.Name, Description: in.Description}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, s.storageError("failed to create item", err)
	}

	s.logger.Info("item created", slog.Int64("item_id", item.ID))
	return item, nil
}

func (s *itemService) Update(ctx context.Context, id int64, in models.ItemInput) (*models.Item, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperror.Validation(validationMessage(err), err)
	}

	item := &models.Item{ID: id, Name: in.Name, Description: in.Description}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.storageError("failed to update item", err)
	}

	s.logger.Info("item updated", slog.Int64("item_id", id))
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, s.storageError("failed to delete item", err)
	}

	s.logger.Info("item deleted", slog.Int64("item_id", id))
	return true, nil
}

func (s *itemService) storageError(msg string, err error) error {
	s.logger.Error(msg, slog.String("error", err.Error()))
	return apperror.Storage(msg, err)
}

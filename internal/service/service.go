package service

import (
	"fmt"
	"log/slog"
	"strings"

	"gqlblog/internal/auth"
	"gqlblog/internal/repository"
	"gqlblog/internal/storage"

	"github.com/go-playground/validator/v10"
)

type Service struct {
	Auth   AuthService
	Item   ItemService
	Blog   BlogService
	Upload UploadService
	Tables TablesService
}

type Deps struct {
	Repo    *repository.Repository
	Tokens  *auth.TokenManager
	Hasher  auth.PasswordHasher
	Storage storage.Storage
	Logger  *slog.Logger
}

func NewService(deps Deps) *Service {
	validate := validator.New()

	return &Service{
		Auth:   NewAuthService(deps.Repo.User, deps.Hasher, deps.Tokens, validate, deps.Logger),
		Item:   NewItemService(deps.Repo.Item, validate, deps.Logger),
		Blog:   NewBlogService(deps.Repo.Blog, validate, deps.Logger),
		Upload: NewUploadService(deps.Storage, deps.Logger),
		Tables: NewTablesService(deps.Repo.Tables),
	}
}

// validationMessage turns validator output into a single client-facing line.
func validationMessage(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return "invalid input"
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}

	return strings.Join(msgs, "; ")
}

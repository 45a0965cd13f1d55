package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"gqlblog/internal/apperror"
	"gqlblog/internal/auth"
	"gqlblog/internal/models"
	"gqlblog/internal/repository"

	"github.com/go-playground/validator/v10"
)

const msgRegistrationFailed = "registration failed"

type AuthPayload struct {
	Token string
	User  *models.User
}

type AuthService interface {
	Register(ctx context.Context, req models.CreateUserRequest) (*AuthPayload, error)
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	// CurrentUser re-reads the user behind identity. It returns nil for a
	// nil identity or a user that no longer exists.
	CurrentUser(ctx context.Context, identity *auth.Identity) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	tokens   *auth.TokenManager
	validate *validator.Validate
	logger   *slog.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

func NewAuthService(
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	tokens *auth.TokenManager,
	validate *validator.Validate,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		validate: validate,
		logger:   logger,
	}
}

func (s *authService) Register(ctx context.Context, req models.CreateUserRequest) (*AuthPayload, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation(validationMessage(err), err)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("password hashing failed", slog.String("error", err.Error()))
		return nil, apperror.Storage(msgRegistrationFailed, err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: digest,
		Name:         req.Name,
		Surname:      req.Surname,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Validation("email is already registered", err)
		}
		s.logger.Error("failed to create user", slog.String("error", err.Error()))
		return nil, apperror.Storage(msgRegistrationFailed, err)
	}

	return s.issue(user, msgRegistrationFailed)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Keep the unknown-email path as slow as a wrong password.
			_, _ = s.hasher.Verify(password, s.dummy())
			return nil, apperror.InvalidCredentials()
		}
		s.logger.Error("failed to look up user", slog.String("error", err.Error()))
		return nil, apperror.Storage(apperror.MsgLoginFailed, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("stored password digest is unusable",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Storage(apperror.MsgLoginFailed, err)
	}
	if !ok {
		return nil, apperror.InvalidCredentials()
	}

	return s.issue(user, apperror.MsgLoginFailed)
}

func (s *authService) CurrentUser(ctx context.Context, identity *auth.Identity) (*models.User, error) {
	if identity == nil {
		return nil, nil
	}

	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to load current user", slog.String("error", err.Error()))
		return nil, apperror.Storage("failed to load current user", err)
	}

	return user, nil
}

func (s *authService) issue(user *models.User, failMsg string) (*AuthPayload, error) {
	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		s.logger.Error("failed to issue token", slog.String("error", err.Error()))
		return nil, apperror.Storage(failMsg, err)
	}

	return &AuthPayload{Token: token, User: user}, nil
}

func (s *authService) dummy() string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			s.logger.Error("failed to prepare dummy digest", slog.String("error", err.Error()))
			return
		}
		s.dummyDigest = digest
	})
	return s.dummyDigest
}

// Package account registers users, logs them in and looks them up.
package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/safar/teebay/internal/apperr"
	"github.com/safar/teebay/internal/auth"
	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/models"
	"github.com/safar/teebay/internal/store"
	"github.com/safar/teebay/internal/validation"
)

type Repo interface {
	CreateUser(ctx context.Context, p store.CreateUserParams) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type RegisterInput struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	FirstName string  `json:"firstName" validate:"required,min=2"`
	LastName  string  `json:"lastName" validate:"required,min=2"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	Token string
	User  *models.User
}

var errInvalidCredentials = apperr.Authentication("Invalid credentials")

type Service struct {
	repo       Repo
	issuer     *auth.Issuer
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repo, issuer *auth.Issuer, bcryptCost int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, issuer: issuer, bcryptCost: bcryptCost, logger: logger}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Default().Struct(in); err != nil {
		return nil, err
	}

	_, err := s.repo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperr.Conflict("User with this email already exists")
	case !errors.Is(err, database.ErrUserNotFound):
		return nil, s.internal(ctx, "look up email", err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, s.internal(ctx, "hash password", err)
	}

	user, err := s.repo.CreateUser(ctx, store.CreateUserParams{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Address:      in.Address,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("User with this email already exists")
		}
		return nil, s.internal(ctx, "create user", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return s.authenticate(ctx, user)
}

// Login fails the same way for an unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Default().Struct(in); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, database.ErrUserNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, s.internal(ctx, "look up email", err)
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return nil, errInvalidCredentials
	}

	return s.authenticate(ctx, user)
}

func (s *Service) authenticate(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, s.internal(ctx, "issue token", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Me returns the caller. The caller must be authenticated.
func (s *Service) Me(ctx context.Context) (*models.User, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.User(ctx, userID)
}

func (s *Service) User(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if errors.Is(err, database.ErrUserNotFound) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, s.internal(ctx, "get user", err)
	}
	return user, nil
}

func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, s.internal(ctx, "list users", err)
	}
	return users, nil
}

func (s *Service) internal(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, op+" failed", "error", err)
	return apperr.Internal(err)
}

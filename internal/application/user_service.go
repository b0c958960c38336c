package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/internal/domain/apperror"
	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-catalog-api/internal/domain/repository"
	"github.com/oksasatya/go-catalog-api/pkg/validation"
)

// LoginTokenTTL is the lifetime of the token returned by Login when none is configured.
const LoginTokenTTL = 24 * time.Hour

// CredentialsInput is the body of both register and login.
type CredentialsInput struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required,pwd"`
}

var credentialMessages = validation.Messages{
	"email":             "Invalid email format!",
	"password.required": "Password is required!",
	"password.pwd":      "Password must be at least 4 characters long!",
}

// Validate returns a validation error for the first rule the input breaks.
func (in CredentialsInput) Validate() error {
	if err := validation.Check(in, credentialMessages); err != nil {
		return apperror.Validation(err.Error())
	}
	return nil
}

type UserService struct {
	Repo   repo.UserRepository
	Creds    CredentialService
	TokenTTL time.Duration
	Logger   *logrus.Logger
}

// NewUserService issues login tokens valid for tokenTTL, or LoginTokenTTL when it is not positive.
func NewUserService(r repo.UserRepository, creds CredentialService, tokenTTL time.Duration, logger *logrus.Logger) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = LoginTokenTTL
	}
	return &UserService{Repo: r, Creds: creds, TokenTTL: tokenTTL, Logger: logger}
}

type LoginResult struct {
	User      entity.AuthPayload
	Token     string
	ExpiresAt time.Time
}

// Register creates a user with a hashed password. Role and enabled take their store defaults.
func (s *UserService) Register(ctx context.Context, in CredentialsInput) (entity.AuthPayload, error) {
	if err := in.Validate(); err != nil {
		return entity.AuthPayload{}, err
	}

	_, err := s.Repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return entity.AuthPayload{}, apperror.ErrDuplicateEmail
	case !errors.Is(err, repo.ErrNotFound):
		return entity.AuthPayload{}, storeFailure(s.Logger, "lookup user failed", err, logrus.Fields{"email": in.Email})
	}

	hash, err := s.Creds.Hash(in.Password)
	if err != nil {
		return entity.AuthPayload{}, storeFailure(s.Logger, "hash password failed", err, nil)
	}

	u := &entity.User{Email: in.Email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, repo.ErrConflict) {
			return entity.AuthPayload{}, apperror.ErrDuplicateEmail
		}
		return entity.AuthPayload{}, storeFailure(s.Logger, "create user failed", err, logrus.Fields{"email": in.Email})
	}
	return u.Payload(), nil
}

// Login verifies the password against the stored hash and issues a one day token.
func (s *UserService) Login(ctx context.Context, in CredentialsInput) (*LoginResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	u, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.ErrNotFoundOrDisabled
		}
		return nil, storeFailure(s.Logger, "lookup user failed", err, logrus.Fields{"email": in.Email})
	}
	if !u.Enabled {
		return nil, apperror.ErrNotFoundOrDisabled
	}

	ok, err := s.Creds.Verify(in.Password, u.Password)
	if err != nil {
		return nil, storeFailure(s.Logger, "verify password failed", err, logrus.Fields{"user_id": u.ID})
	}
	if !ok {
		return nil, apperror.ErrInvalidCredentials
	}

	payload := u.Payload()
	token, exp, err := s.Creds.IssueToken(payload, s.TokenTTL)
	if err != nil {
		return nil, storeFailure(s.Logger, "issue token failed", err, logrus.Fields{"user_id": u.ID})
	}
	return &LoginResult{User: payload, Token: token, ExpiresAt: exp}, nil
}

// Current resolves the principal of an authenticated request against the store,
// so a user disabled after login is rejected.
func (s *UserService) Current(ctx context.Context, userID int64) (entity.AuthPayload, error) {
	if userID <= 0 {
		return entity.AuthPayload{}, apperror.ErrNoPrincipal
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.AuthPayload{}, apperror.ErrNotFoundOrDisabled
		}
		return entity.AuthPayload{}, storeFailure(s.Logger, "lookup user failed", err, logrus.Fields{"user_id": userID})
	}
	if !u.Enabled {
		return entity.AuthPayload{}, apperror.ErrNotFoundOrDisabled
	}
	return u.Payload(), nil
}

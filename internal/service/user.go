package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fms/internal/apperr"
	"fms/internal/auth"
	"fms/internal/model"
	"fms/internal/repository"
)

// RegisterInput carries the signup fields.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput carries the credential pair.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is a signed token plus the authenticated account.
type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// UserService defines account registration and credential verification.
type UserService interface {
	// Register creates an account with a hashed password. Username and email
	// must both be unused.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Login verifies the credentials and returns a signed token. A wrong
	// email and a wrong password are indistinguishable to the caller.
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

type userService struct {
	repo   repository.UserRepository
	issuer *auth.Issuer
}

// NewUserService constructs a new UserService.
func NewUserService(repo repository.UserRepository, issuer *auth.Issuer) UserService {
	return &userService{repo: repo, issuer: issuer}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if _, err := s.repo.FindByUsernameOrEmail(ctx, in.Username, in.Email); err == nil {
		return nil, apperr.Conflict("username or email already taken")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, user)
	if err != nil {
		if isConflict(err) {
			return nil, apperr.Conflict("username or email already taken")
		}
		return nil, err
	}
	return stored, nil
}

func (s *userService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := s.issuer.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, apperr.Internal("failed to sign token", err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

package auth

import (
	"context"
	"errors"
	"strings"
)

// AuthUseCase describes administrator authentication and authorization.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Authorize(ctx context.Context, email string) (Administrator, error)
	Provision(ctx context.Context, email, password, role string) (Administrator, error)
}

type LoginResult struct {
	Admin Administrator
	Token string
}

type authService struct {
	repo   AdminRepository
	hasher PasswordHasher
	tokens TokenGenerator
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo AdminRepository, hasher PasswordHasher, tokens TokenGenerator) AuthUseCase {
	return &authService{repo: repo, hasher: hasher, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if s.hasher.Compare(admin.PasswordHash, password) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, admin)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Admin: admin, Token: token}, nil
}

// Authorize re-reads the administrator on every call; deleting the row revokes access.
func (s *authService) Authorize(ctx context.Context, email string) (Administrator, error) {
	if strings.TrimSpace(email) == "" {
		return Administrator{}, ErrForbidden
	}
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Administrator{}, ErrForbidden
		}
		return Administrator{}, err
	}
	return admin, nil
}

func (s *authService) Provision(ctx context.Context, email, password, role string) (Administrator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Administrator{}, ErrInvalidCredentials
	}
	if role == "" {
		role = "admin"
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Administrator{}, err
	}
	admin := Administrator{Email: email, PasswordHash: hash, Role: role}
	if err := s.repo.Create(ctx, &admin); err != nil {
		return Administrator{}, err
	}
	return admin, nil
}

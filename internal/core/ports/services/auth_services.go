package services

import (
	"context"

	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/perkvault/rewards_backend/internal/dto"
)

// TokenSvcFacade defines the interface for access token management.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed JWT for the employee.
	GenerateAccessToken(ctx context.Context, employee *domain.Employee) (string, error)
	// ValidateAccessToken parses and verifies a token string, returning the
	// employee ID and role claims.
	ValidateAccessToken(ctx context.Context, tokenString string) (int64, domain.Role, error)
}

// AuthSvcFacade defines registration and login operations.
type AuthSvcFacade interface {
	// Register creates an employee account gated by an active invitation code.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Employee, string, error)

	// Login verifies credentials and returns the employee with a fresh token.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.Employee, string, error)

	TokenSvcFacade
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
	"github.com/perkvault/rewards_backend/internal/platform/config"
	"github.com/perkvault/rewards_backend/internal/utils"
)

// authService handles registration, login and token issuance. Registration
// is gated by an active invitation code.
type authService struct {
	employeeRepo   portsrepo.EmployeeRepositoryFacade
	invitationRepo portsrepo.InvitationCodeRepository
	cfg            *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, employeeRepo portsrepo.EmployeeRepositoryFacade, invitationRepo portsrepo.InvitationCodeRepository) portssvc.AuthSvcFacade {
	return &authService{
		employeeRepo:   employeeRepo,
		invitationRepo: invitationRepo,
		cfg:            cfg,
	}
}

// Ensure authService implements the portssvc.AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Register creates an employee account gated by an active invitation code.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Employee, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invitation, err := s.invitationRepo.FindInvitationByCode(ctx, req.InvitationCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.NewValidationError("Invalid invitation code")
		}
		return nil, "", err
	}
	if !invitation.IsActive {
		return nil, "", apperrors.NewValidationError("Invitation code is no longer active")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, "", apperrors.NewAppError(500, "failed to process password", err)
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID:         req.EmployeeID,
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       passwordHash,
		Contact:            req.Contact,
		Address:            req.Address,
		Role:               domain.RoleUser,
		DiamondBalance:     0,
		InvitationCodeUsed: invitation.Code,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	saved, err := s.employeeRepo.SaveEmployee(ctx, employee)
	if err != nil {
		logger.Warn("Failed to register employee", slog.String("email", req.Email), slog.String("error", err.Error()))
		return nil, "", err
	}

	token, err := s.GenerateAccessToken(ctx, saved)
	if err != nil {
		return nil, "", err
	}

	logger.Info("Employee registered", slog.Int64("employee_id", saved.ID))
	return saved, token, nil
}

// Login verifies credentials and returns the employee with a fresh token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.Employee, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.NewAppError(401, "Invalid email or password", apperrors.ErrForbidden)
		}
		return nil, "", err
	}

	if !utils.CheckPasswordHash(req.Password, employee.PasswordHash) {
		logger.Warn("Login failed: password mismatch", slog.Int64("employee_id", employee.ID))
		return nil, "", apperrors.NewAppError(401, "Invalid email or password", apperrors.ErrForbidden)
	}

	token, err := s.GenerateAccessToken(ctx, employee)
	if err != nil {
		return nil, "", err
	}

	logger.Info("Employee logged in", slog.Int64("employee_id", employee.ID))
	return employee, token, nil
}

// GenerateAccessToken issues a signed JWT for the employee.
func (s *authService) GenerateAccessToken(ctx context.Context, employee *domain.Employee) (string, error) {
	token, err := utils.GenerateJWT(employee.ID, string(employee.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to sign access token", slog.String("error", err.Error()))
		return "", apperrors.NewAppError(500, "failed to generate access token", err)
	}
	return token, nil
}

// ValidateAccessToken parses and verifies a token string, returning the
// employee ID and role claims.
func (s *authService) ValidateAccessToken(ctx context.Context, tokenString string) (int64, domain.Role, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return 0, "", apperrors.NewAppError(401, "Invalid token", err)
	}
	employeeID, err := utils.SubjectToEmployeeID(claims.Subject)
	if err != nil {
		return 0, "", apperrors.NewAppError(401, "Invalid token claims", err)
	}
	return employeeID, domain.Role(claims.Role), nil
}

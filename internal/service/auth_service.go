package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/auth"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/repository"
	apperrors "github.com/hipolitokrisandrew-code/hr-request-service/pkg/util/errorutil"
)

// AuthService issues session tokens for employee accounts.
type AuthService struct {
	employees repository.EmployeeRepository
	tokens    *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(employees repository.EmployeeRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{employees: employees, tokens: tokens}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login verifies credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.Session, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return "", time.Time{}, nil, apperrors.MapError(err)
	}
	if !employee.IsActive {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("account disabled")
	}
	if err := auth.ComparePassword(employee.PasswordHash, password); err != nil {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	session := &domain.Session{
		Email:       employee.Email,
		Role:        employee.Role,
		Department:  employee.Department,
		CompanyCode: employee.CompanyCode,
		AccountCode: employee.AccountCode,
	}
	token, expiresAt, err := s.tokens.GenerateToken(*session)
	if err != nil {
		return "", time.Time{}, nil, apperrors.NewInternalError(err)
	}
	return token, expiresAt, session, nil
}

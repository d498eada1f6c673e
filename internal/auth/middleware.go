package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/repository"
	apperrors "github.com/hipolitokrisandrew-code/hr-request-service/pkg/util/errorutil"
)

const sessionKey = "auth_session"

// SessionMiddleware validates bearer tokens and materializes a per-request
// session. The stored employee row stays authoritative over the token claims.
type SessionMiddleware struct {
	tokens    *TokenManager
	employees repository.EmployeeRepository
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, employees repository.EmployeeRepository) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, employees: employees}
}

// Handle enforces authentication for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	session := &domain.Session{
		Email:       claims.Email,
		Role:        claims.Role,
		Department:  claims.Department,
		CompanyCode: claims.CompanyCode,
		AccountCode: claims.AccountCode,
	}

	if m.employees != nil {
		employee, err := m.employees.GetByEmail(c.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("account not found")
			}
			return apperrors.MapError(err)
		}
		if !employee.IsActive {
			return apperrors.NewUnauthorized("account disabled")
		}
		session.Role = employee.Role
		session.Department = employee.Department
		session.CompanyCode = employee.CompanyCode
		session.AccountCode = employee.AccountCode
	}

	c.Locals(sessionKey, session)
	return c.Next()
}

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok
}

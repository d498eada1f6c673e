package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
)

// EmployeeRepository encapsulates account persistence for the session provider.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (email, name, password_hash, role, department, company_code, account_code, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		employee.Email,
		employee.Name,
		employee.PasswordHash,
		employee.Role,
		employee.Department,
		employee.CompanyCode,
		employee.AccountCode,
		employee.IsActive,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	const query = `
        SELECT id, email, name, password_hash, role, department, company_code, account_code, is_active, created_at, updated_at
        FROM employees WHERE LOWER(email)=LOWER($1)`
	var employee domain.Employee
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&employee.ID,
		&employee.Email,
		&employee.Name,
		&employee.PasswordHash,
		&employee.Role,
		&employee.Department,
		&employee.CompanyCode,
		&employee.AccountCode,
		&employee.IsActive,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

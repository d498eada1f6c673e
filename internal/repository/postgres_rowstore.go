package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRowStore implements RowStore over pgx with one table per business
// unit. Table names are validated against the configured allow-list because
// they are interpolated into SQL.
type PostgresRowStore struct {
	pool   *pgxpool.Pool
	tables map[string]struct{}
}

// NewPostgresRowStore instantiates the store for the given unit tables.
func NewPostgresRowStore(pool *pgxpool.Pool, tables []string) *PostgresRowStore {
	allowed := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		allowed[t] = struct{}{}
	}
	return &PostgresRowStore{pool: pool, tables: allowed}
}

func (s *PostgresRowStore) checkTable(table string) error {
	if _, ok := s.tables[table]; !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	return nil
}

func (s *PostgresRowStore) ListRows(ctx context.Context, table string) ([]Row, error) {
	if err := s.checkTable(table); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, strings.Join(recordFields, ", "), table)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		values := make([]string, len(recordFields))
		dest := make([]any, len(recordFields))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make(Row, len(recordFields))
		for i, field := range recordFields {
			row[field] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (s *PostgresRowStore) AppendRow(ctx context.Context, table string, values map[string]string) error {
	if err := s.checkTable(table); err != nil {
		return err
	}
	columns := make([]string, 0, len(values))
	placeholders := make([]string, 0, len(values))
	args := make([]any, 0, len(values))
	for _, field := range recordFields {
		v, ok := values[field]
		if !ok {
			continue
		}
		args = append(args, v)
		columns = append(columns, field)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}
	if len(columns) == 0 {
		return fmt.Errorf("append to %s: no known columns in values", table)
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	_, err := s.pool.Exec(ctx, query, args...)
	return err
}

func (s *PostgresRowStore) UpdateRow(ctx context.Context, table string, requestID string, values map[string]string) error {
	if err := s.checkTable(table); err != nil {
		return err
	}
	assignments := make([]string, 0, len(values))
	args := make([]any, 0, len(values)+1)
	for _, field := range recordFields {
		v, ok := values[field]
		if !ok {
			continue
		}
		args = append(args, v)
		assignments = append(assignments, fmt.Sprintf("%s=$%d", field, len(args)))
	}
	if len(assignments) == 0 {
		return fmt.Errorf("update %s: no known columns in values", table)
	}
	args = append(args, requestID)
	query := fmt.Sprintf(`UPDATE %s SET %s, updated_at=NOW() WHERE request_id=$%d`,
		table, strings.Join(assignments, ", "), len(args))
	cmd, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRowNotFound
	}
	return nil
}

func (s *PostgresRowStore) NextSequence(ctx context.Context, table string) (int, error) {
	if err := s.checkTable(table); err != nil {
		return 0, err
	}
	query := fmt.Sprintf(
		`SELECT COALESCE(MAX((substring(request_id from '(\d{4})$'))::int), 0) + 1 FROM %s`, table)
	var next int
	if err := s.pool.QueryRow(ctx, query).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

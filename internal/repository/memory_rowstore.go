package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryRowStore is an in-process RowStore used in tests and when no database
// is configured. Rows keep whatever headers they were appended with, which
// lets fixtures exercise the historical alias spellings.
type MemoryRowStore struct {
	mu     sync.Mutex
	tables map[string][]Row
}

// NewMemoryRowStore creates an empty store.
func NewMemoryRowStore() *MemoryRowStore {
	return &MemoryRowStore{tables: make(map[string][]Row)}
}

// Seed loads a table with pre-built rows.
func (s *MemoryRowStore) Seed(table string, rows []Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]Row, 0, len(rows))
	for _, r := range rows {
		copied = append(copied, cloneRow(r))
	}
	s.tables[table] = copied
}

func (s *MemoryRowStore) ListRows(_ context.Context, table string) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[table]
	result := make([]Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, cloneRow(r))
	}
	return result, nil
}

func (s *MemoryRowStore) AppendRow(_ context.Context, table string, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], cloneRow(values))
	return nil
}

func (s *MemoryRowStore) UpdateRow(_ context.Context, table string, requestID string, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := strings.ToUpper(strings.TrimSpace(requestID))
	for i, row := range s.tables[table] {
		id := ResolveRow(row)[FieldRequestID]
		if strings.ToUpper(strings.TrimSpace(id)) != want {
			continue
		}
		for k, v := range values {
			row[k] = v
		}
		s.tables[table][i] = row
		return nil
	}
	return ErrRowNotFound
}

func (s *MemoryRowStore) NextSequence(_ context.Context, table string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0
	for _, row := range s.tables[table] {
		id := ResolveRow(row)[FieldRequestID]
		idx := strings.LastIndex(id, "-")
		if idx < 0 || len(id[idx+1:]) != 4 {
			continue
		}
		var seq int
		if _, err := fmt.Sscanf(id[idx+1:], "%d", &seq); err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max + 1, nil
}

func cloneRow(r map[string]string) Row {
	copied := make(Row, len(r))
	for k, v := range r {
		copied[k] = v
	}
	return copied
}

package repository

import (
	"context"
	"errors"
	"strings"
)

// ErrMissingColumn signals a structural table problem. It indicates
// misconfiguration rather than user error and is surfaced immediately.
var ErrMissingColumn = errors.New("missing expected column")

// ErrRowNotFound signals an unknown request id within a table.
var ErrRowNotFound = errors.New("row not found")

// Row is one record keyed by header text as stored. Historical tables carry
// divergent header spellings; lookups go through the alias resolver.
type Row map[string]string

// Lookup finds a column value by case-insensitive header text.
func (r Row) Lookup(header string) (string, bool) {
	if v, ok := r[header]; ok {
		return v, true
	}
	want := strings.TrimSpace(header)
	for k, v := range r {
		if strings.EqualFold(strings.TrimSpace(k), want) {
			return v, true
		}
	}
	return "", false
}

// RowStore is the row-oriented contract over one named table per business
// unit. The original cell-addressed write becomes a keyed row update, which is
// the natural shape for a SQL-backed store.
type RowStore interface {
	ListRows(ctx context.Context, table string) ([]Row, error)
	AppendRow(ctx context.Context, table string, values map[string]string) error
	UpdateRow(ctx context.Context, table string, requestID string, values map[string]string) error
	NextSequence(ctx context.Context, table string) (int, error)
}

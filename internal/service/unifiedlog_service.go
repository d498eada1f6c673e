package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/repository"
)

// UnifiedLogService merges request records across the independent
// business-unit tables into one canonical, de-duplicated collection.
type UnifiedLogService struct {
	store  repository.RowStore
	tables map[domain.BusinessUnit]string
	logger *zap.Logger
}

// LogFilter narrows the unified log output.
type LogFilter struct {
	Company string
	Service string
	Status  string
	From    *time.Time
	To      *time.Time
}

// NewUnifiedLogService constructs the service.
func NewUnifiedLogService(store repository.RowStore, tables map[domain.BusinessUnit]string, logger *zap.Logger) *UnifiedLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnifiedLogService{store: store, tables: tables, logger: logger}
}

// UnifiedLog reads every unit table, normalizes aliases, tags sources,
// de-duplicates, and scopes the result to the caller's role.
func (s *UnifiedLogService) UnifiedLog(ctx context.Context, session *domain.Session, filter LogFilter) ([]domain.RequestRecord, error) {
	var merged []domain.RequestRecord
	seen := make(map[string]struct{})

	for _, unit := range domain.AllUnits() {
		table, ok := s.tables[unit]
		if !ok {
			continue
		}
		rows, err := s.store.ListRows(ctx, table)
		if err != nil {
			// one unreadable unit must not take down the whole log;
			// skipping here is a deliberate fallback, not a swallow
			s.logger.Warn("skipping unreadable unit table",
				zap.String("table", table),
				zap.String("unit", string(unit)),
				zap.Error(err))
			continue
		}
		for _, row := range rows {
			rec := repository.DecodeRecord(row)
			if rec.RequestID == "" {
				continue
			}
			if rec.Company == "" {
				rec.Company = unit
			}
			if derived := domain.CompanyFromRequestID(rec.RequestID); derived != "" {
				rec.Company = derived
			}
			key := dedupeKey(&rec)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, rec)
		}
	}

	scoped := scopeToRole(merged, session)
	return applyLogFilter(scoped, filter), nil
}

// dedupeKey builds the composite identity under which redundant snapshots of
// one request collide.
func dedupeKey(rec *domain.RequestRecord) string {
	parts := []string{
		string(rec.Company),
		strings.ToUpper(strings.TrimSpace(rec.RequestID)),
		timeKey(rec.Start),
		timeKey(rec.End),
		string(rec.Status),
	}
	return strings.Join(parts, "|")
}

func timeKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// scopeToRole applies access-control filtering after aggregation.
func scopeToRole(records []domain.RequestRecord, session *domain.Session) []domain.RequestRecord {
	if session == nil {
		return nil
	}
	switch session.Role {
	case domain.RoleEmployee:
		return filterRecords(records, func(r *domain.RequestRecord) bool {
			return strings.EqualFold(r.RequesterEmail, session.Email)
		})
	case domain.RoleDepartmentHead:
		return filterRecords(records, func(r *domain.RequestRecord) bool {
			return strings.EqualFold(r.Department, session.Department)
		})
	default:
		return records
	}
}

func applyLogFilter(records []domain.RequestRecord, filter LogFilter) []domain.RequestRecord {
	result := records
	if filter.Company != "" {
		unit := domain.CompanyFromCode(filter.Company)
		if unit == "" {
			unit = domain.BusinessUnit(filter.Company)
		}
		result = filterRecords(result, func(r *domain.RequestRecord) bool {
			return r.Company == unit
		})
	}
	if filter.Service != "" {
		want := strings.ToLower(strings.TrimSpace(filter.Service))
		result = filterRecords(result, func(r *domain.RequestRecord) bool {
			return strings.Contains(strings.ToLower(r.Service), want)
		})
	}
	if filter.Status != "" {
		result = filterRecords(result, func(r *domain.RequestRecord) bool {
			return string(r.Status) == filter.Status
		})
	}
	if filter.From != nil {
		result = filterRecords(result, func(r *domain.RequestRecord) bool {
			return r.RequestDate != nil && !r.RequestDate.Before(*filter.From)
		})
	}
	if filter.To != nil {
		result = filterRecords(result, func(r *domain.RequestRecord) bool {
			return r.RequestDate != nil && !r.RequestDate.After(*filter.To)
		})
	}
	return result
}

func filterRecords(records []domain.RequestRecord, keep func(*domain.RequestRecord) bool) []domain.RequestRecord {
	filtered := make([]domain.RequestRecord, 0, len(records))
	for i := range records {
		if keep(&records[i]) {
			filtered = append(filtered, records[i])
		}
	}
	return filtered
}

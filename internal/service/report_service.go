package service

import (
	"sort"
	"time"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
)

// Classification buckets a record for SLA reporting.
type Classification string

const (
	ClassClosedWithin   Classification = "closed_within_sla"
	ClassClosedExceeded Classification = "closed_exceeded_sla"
	ClassOpenWithin     Classification = "open_within_sla"
	ClassOpenExceeded   Classification = "open_exceeded_sla"
	ClassReminderDue    Classification = "reminder_due"
)

const (
	// slaCeiling is the fallback deadline when no due date is available.
	slaCeiling = 48 * time.Hour
	// reminderWindow flags open records approaching their due date.
	reminderWindow = 24 * time.Hour
	// targetCompliancePct is the fixed business target.
	targetCompliancePct = 95.0
)

// BucketCounts tallies classifications for one grouping.
type BucketCounts struct {
	ClosedWithin   int     `json:"closed_within_sla"`
	ClosedExceeded int     `json:"closed_exceeded_sla"`
	OpenWithin     int     `json:"open_within_sla"`
	OpenExceeded   int     `json:"open_exceeded_sla"`
	ReminderDue    int     `json:"reminder_due"`
	Total          int     `json:"total"`
	CompliancePct  float64 `json:"compliance_pct"`
	MeetsTarget    bool    `json:"meets_target"`
}

// StepBucket tallies one (service, process step) pair.
type StepBucket struct {
	Service     string `json:"service"`
	ProcessStep string `json:"process_step"`
	BucketCounts
}

// ServiceBucket rolls step buckets up to one service.
type ServiceBucket struct {
	Service string       `json:"service"`
	Steps   []StepBucket `json:"steps"`
	BucketCounts
}

// TrendPoint summarizes closures for one calendar month.
type TrendPoint struct {
	Month          string `json:"month"`
	ClosedWithin   int    `json:"closed_within_sla"`
	ClosedExceeded int    `json:"closed_exceeded_sla"`
}

// HistogramBucket counts records whose TAT falls in a range of hours.
type HistogramBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Report is the full classification output for the reporting layer.
type Report struct {
	Overall      BucketCounts      `json:"overall"`
	TargetPct    float64           `json:"target_pct"`
	PerService   []ServiceBucket   `json:"per_service"`
	Trend        []TrendPoint      `json:"trend"`
	TatHistogram []HistogramBucket `json:"tat_histogram"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// ReportFilter narrows the record set before classification.
type ReportFilter struct {
	Company string
	Service string
}

// ReportService classifies records for SLA reporting. It is pure and
// read-only: malformed rows are skipped, never raised.
type ReportService struct {
	now func() time.Time
}

// NewReportService constructs the service.
func NewReportService() *ReportService {
	return &ReportService{now: time.Now}
}

// Classify buckets a single record against its SLA.
func (s *ReportService) Classify(rec *domain.RequestRecord, now time.Time) Classification {
	if rec.End != nil {
		if rec.DueDate != nil {
			if rec.End.After(*rec.DueDate) {
				return ClassClosedExceeded
			}
			return ClassClosedWithin
		}
		if time.Duration(rec.TatMinutes)*time.Minute > slaCeiling {
			return ClassClosedExceeded
		}
		return ClassClosedWithin
	}

	if rec.DueDate != nil {
		if now.After(*rec.DueDate) {
			return ClassOpenExceeded
		}
		if rec.DueDate.Sub(now) <= reminderWindow {
			return ClassReminderDue
		}
		return ClassOpenWithin
	}
	if time.Duration(effectiveTatMinutes(rec, now))*time.Minute > slaCeiling {
		return ClassOpenExceeded
	}
	return ClassOpenWithin
}

// ClassifyForReporting produces the full report for the given records.
func (s *ReportService) ClassifyForReporting(records []domain.RequestRecord, filter ReportFilter) *Report {
	now := s.now()
	report := &Report{TargetPct: targetCompliancePct, GeneratedAt: now}

	stepBuckets := make(map[string]map[string]*StepBucket)
	trend := make(map[string]*TrendPoint)
	histogram := newHistogram()

	for i := range records {
		rec := &records[i]
		if rec.RequestID == "" {
			continue
		}
		if !matchesReportFilter(rec, filter) {
			continue
		}

		class := s.Classify(rec, now)
		tally(&report.Overall, class)

		service := rec.Service
		if service == "" {
			service = "(unclassified)"
		}
		step := rec.ProcessStep
		if step == "" {
			step = "(none)"
		}
		steps, ok := stepBuckets[service]
		if !ok {
			steps = make(map[string]*StepBucket)
			stepBuckets[service] = steps
		}
		bucket, ok := steps[step]
		if !ok {
			bucket = &StepBucket{Service: service, ProcessStep: step}
			steps[step] = bucket
		}
		tally(&bucket.BucketCounts, class)

		if rec.End != nil {
			month := rec.End.Format("2006-01")
			point, ok := trend[month]
			if !ok {
				point = &TrendPoint{Month: month}
				trend[month] = point
			}
			if class == ClassClosedExceeded {
				point.ClosedExceeded++
			} else {
				point.ClosedWithin++
			}
		}

		histogram.add(effectiveTatMinutes(rec, now))
	}

	finalize(&report.Overall)
	report.PerService = rollupServices(stepBuckets)
	report.Trend = sortTrend(trend)
	report.TatHistogram = histogram.buckets()
	return report
}

// effectiveTatMinutes extends accumulated TAT to "now" for records still in an
// active window.
func effectiveTatMinutes(rec *domain.RequestRecord, now time.Time) int64 {
	total := rec.TatMinutes
	if rec.End == nil && rec.Status.InProgress() {
		if anchor := rec.ActiveAnchor(); anchor != nil {
			extra := int64(now.Sub(*anchor) / time.Minute)
			if extra > 0 {
				total += extra
			}
		}
	}
	if total < 0 {
		return 0
	}
	return total
}

func matchesReportFilter(rec *domain.RequestRecord, filter ReportFilter) bool {
	if filter.Company != "" {
		unit := domain.CompanyFromCode(filter.Company)
		if unit == "" {
			unit = domain.BusinessUnit(filter.Company)
		}
		if rec.Company != unit {
			return false
		}
	}
	if filter.Service != "" && rec.Service != filter.Service {
		return false
	}
	return true
}

func tally(counts *BucketCounts, class Classification) {
	counts.Total++
	switch class {
	case ClassClosedWithin:
		counts.ClosedWithin++
	case ClassClosedExceeded:
		counts.ClosedExceeded++
	case ClassOpenWithin:
		counts.OpenWithin++
	case ClassOpenExceeded:
		counts.OpenExceeded++
	case ClassReminderDue:
		counts.ReminderDue++
	}
}

// finalize computes the compliance percentage. Reminder-due records are still
// within SLA.
func finalize(counts *BucketCounts) {
	if counts.Total == 0 {
		return
	}
	within := counts.ClosedWithin + counts.OpenWithin + counts.ReminderDue
	counts.CompliancePct = float64(within) / float64(counts.Total) * 100
	counts.MeetsTarget = counts.CompliancePct >= targetCompliancePct
}

func rollupServices(stepBuckets map[string]map[string]*StepBucket) []ServiceBucket {
	services := make([]ServiceBucket, 0, len(stepBuckets))
	for service, steps := range stepBuckets {
		sb := ServiceBucket{Service: service}
		for _, bucket := range steps {
			finalize(&bucket.BucketCounts)
			sb.Steps = append(sb.Steps, *bucket)
			sb.ClosedWithin += bucket.ClosedWithin
			sb.ClosedExceeded += bucket.ClosedExceeded
			sb.OpenWithin += bucket.OpenWithin
			sb.OpenExceeded += bucket.OpenExceeded
			sb.ReminderDue += bucket.ReminderDue
			sb.Total += bucket.Total
		}
		sort.Slice(sb.Steps, func(i, j int) bool { return sb.Steps[i].ProcessStep < sb.Steps[j].ProcessStep })
		finalize(&sb.BucketCounts)
		services = append(services, sb)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Service < services[j].Service })
	return services
}

func sortTrend(trend map[string]*TrendPoint) []TrendPoint {
	points := make([]TrendPoint, 0, len(trend))
	for _, p := range trend {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}

type tatHistogram struct {
	bounds []int64
	labels []string
	counts []int
}

func newHistogram() *tatHistogram {
	return &tatHistogram{
		bounds: []int64{60, 240, 480, 1440, 2880},
		labels: []string{"0-1h", "1-4h", "4-8h", "8-24h", "24-48h", "48h+"},
		counts: make([]int, 6),
	}
}

func (h *tatHistogram) add(minutes int64) {
	for i, bound := range h.bounds {
		if minutes < bound {
			h.counts[i]++
			return
		}
	}
	h.counts[len(h.counts)-1]++
}

func (h *tatHistogram) buckets() []HistogramBucket {
	buckets := make([]HistogramBucket, len(h.labels))
	for i, label := range h.labels {
		buckets[i] = HistogramBucket{Label: label, Count: h.counts[i]}
	}
	return buckets
}

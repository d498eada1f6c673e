package duedate

import (
	"regexp"
	"time"
)

// computeFn resolves a due date from the normalized process step and the
// request timestamp.
type computeFn func(step string, anchor time.Time) time.Time

// rule pairs a case-insensitive substring matcher on the service text with a
// date policy. Rules are evaluated in catalog order; the first match wins, so
// specific services must precede the generic fallbacks that would also match
// them.
type rule struct {
	name    string
	match   string
	compute computeFn
}

var (
	reEscalated    = regexp.MustCompile(`major|escalate|high`)
	reUnplanned    = regexp.MustCompile(`unplanned`)
	rePlanned      = regexp.MustCompile(`planned`)
	reManagerial   = regexp.MustCompile(`managerial`)
	reProbationary = regexp.MustCompile(`probationary`)
	reJust         = regexp.MustCompile(`\bjust\b`)
)

func workingDays(n int) computeFn {
	return func(_ string, anchor time.Time) time.Time {
		return AddWorkingDays(anchor, n)
	}
}

func calendarDays(n int) computeFn {
	return func(_ string, anchor time.Time) time.Time {
		return AddCalendarDays(anchor, n)
	}
}

func fixedDate(month time.Month, day int) computeFn {
	return func(_ string, anchor time.Time) time.Time {
		return NextMonthDay(anchor, month, day)
	}
}

func fromCandidates(candidates ...MonthDay) computeFn {
	return func(_ string, anchor time.Time) time.Time {
		return NextFromCandidates(anchor, candidates)
	}
}

func semiMonthly(_ string, anchor time.Time) time.Time {
	return NextSemiMonthly(anchor)
}

func endOfMonth(_ string, anchor time.Time) time.Time {
	return EndOfMonth(anchor)
}

func secondWorkingDayNextMonth(_ string, anchor time.Time) time.Time {
	return SecondWorkingDayOfNextMonth(anchor)
}

func secondWorkingDayNextQuarter(_ string, anchor time.Time) time.Time {
	return SecondWorkingDayOfNextQuarter(anchor)
}

func nthWorkingDayNextMonth(n int) computeFn {
	return func(_ string, anchor time.Time) time.Time {
		next := SecondWorkingDayOfNextMonth(anchor)
		return NthWorkingDay(next.Year(), next.Month(), n, anchor.Location())
	}
}

// catalog is the ordered rule table. Ordering is load-bearing: a service text
// can satisfy several substring matchers, and the earliest entry decides.
var catalog = []rule{
	// employee relations and concerns
	{"employee-concerns", "employee concern", func(step string, anchor time.Time) time.Time {
		if reEscalated.MatchString(step) {
			return AddWorkingDays(anchor, 2)
		}
		return AddWorkingDays(anchor, 1)
	}},
	{"employee-relations", "employee relations", workingDays(12)},
	{"employee-engagement", "employee engagement", workingDays(10)},
	{"grievance", "grievance", workingDays(12)},
	{"notice-to-explain", "notice to explain", calendarDays(5)},
	{"admin-hearing", "admin hearing", workingDays(7)},
	{"disciplinary", "disciplinary", workingDays(10)},
	{"incident-report", "incident report", func(step string, anchor time.Time) time.Time {
		if reEscalated.MatchString(step) {
			return AddWorkingDays(anchor, 3)
		}
		return AddWorkingDays(anchor, 5)
	}},

	// timekeeping and leave
	{"vacation-leave", "vacation leave", workingDays(-5)},
	{"sick-leave", "sick leave", workingDays(2)},
	{"emergency-leave", "emergency leave", workingDays(1)},
	{"bereavement-leave", "bereavement leave", workingDays(1)},
	{"paternity-leave", "paternity leave", workingDays(3)},
	{"maternity-leave", "maternity leave", workingDays(5)},
	{"solo-parent-leave", "solo parent leave", workingDays(5)},
	{"leave-conversion", "leave conversion", endOfMonth},
	{"leave-without-pay", "leave without pay", workingDays(3)},
	{"official-business", "official business", workingDays(2)},
	{"overtime", "overtime", func(step string, anchor time.Time) time.Time {
		// test unplanned first: "unplanned" also contains "planned"
		if reUnplanned.MatchString(step) {
			return AddWorkingDays(anchor, 1)
		}
		if rePlanned.MatchString(step) {
			return AddWorkingDays(anchor, 3)
		}
		return AddWorkingDays(anchor, 2)
	}},
	{"work-schedule", "work schedule", workingDays(3)},
	{"schedule-adjustment", "schedule adjustment", workingDays(3)},
	{"timesheet-correction", "timesheet correction", endOfMonth},
	{"time-dispute", "time dispute", workingDays(2)},

	// payroll
	{"payroll-dispute", "payroll dispute", func(step string, anchor time.Time) time.Time {
		if reJust.MatchString(step) {
			return AddWorkingDays(anchor, 1)
		}
		return AddWorkingDays(anchor, 3)
	}},
	{"payroll-processing", "payroll processing", semiMonthly},
	{"payslip", "payslip", workingDays(2)},
	{"final-pay", "final pay", calendarDays(30)},
	{"last-pay", "last pay", calendarDays(30)},
	{"thirteenth-month", "13th month", fromCandidates(MonthDay{time.June, 1}, MonthDay{time.December, 1})},
	{"salary-adjustment", "salary adjustment", semiMonthly},
	{"salary-dispute", "salary dispute", workingDays(3)},
	{"withholding-tax", "withholding tax", secondWorkingDayNextMonth},
	{"annualization", "annualization", fixedDate(time.January, 31)},
	{"tax-refund", "tax refund", fixedDate(time.April, 15)},
	{"cash-advance", "cash advance", workingDays(3)},

	// government filings
	{"sss-sickness", "sss sickness", workingDays(10)},
	{"sss-maternity", "sss maternity", workingDays(10)},
	{"sss-loan", "sss loan", workingDays(7)},
	{"sss", "sss", workingDays(5)},
	{"pagibig-loan", "pag-ibig loan", workingDays(7)},
	{"pagibig", "pag-ibig", workingDays(5)},
	{"philhealth", "philhealth", workingDays(5)},
	{"government-remittance", "government remittance", secondWorkingDayNextMonth},
	{"bir-filing", "bir", fixedDate(time.January, 31)},

	// benefits
	{"hmo-enrollment", "hmo enrollment", workingDays(5)},
	{"hmo-cancellation", "hmo cancellation", workingDays(5)},
	{"hmo-reimbursement", "hmo reimbursement", workingDays(10)},
	{"hmo", "hmo", workingDays(3)},
	{"insurance", "insurance", workingDays(7)},
	{"allowance", "allowance", semiMonthly},
	{"rice-subsidy", "rice subsidy", endOfMonth},
	{"annual-enrollment", "annual enrollment", fixedDate(time.January, 15)},
	{"retirement", "retirement", workingDays(30)},

	// employment records
	{"certificate-of-employment", "certificate of employment", workingDays(3)},
	{"certificate-of-contribution", "certificate of contribution", workingDays(5)},
	{"certification", "certification", workingDays(3)},
	{"employment-verification", "employment verification", workingDays(3)},
	{"201-file", "201 file", workingDays(5)},
	{"service-record", "service record", workingDays(5)},
	{"company-id", "company id", calendarDays(14)},

	// onboarding and offboarding
	{"onboarding", "onboarding", calendarDays(3)},
	{"pre-employment", "pre-employment", calendarDays(5)},
	{"contract-signing", "contract signing", workingDays(2)},
	{"performance-appraisal", "performance appraisal", func(step string, anchor time.Time) time.Time {
		if reManagerial.MatchString(step) {
			return AddWorkingDays(anchor, 10)
		}
		if reProbationary.MatchString(step) {
			return AddWorkingDays(anchor, 5)
		}
		return AddWorkingDays(anchor, 7)
	}},
	{"regularization", "regularization", workingDays(5)},
	{"clearance", "clearance", workingDays(15)},
	{"exit-interview", "exit interview", calendarDays(2)},
	{"offboarding", "offboarding", workingDays(5)},
	{"resignation", "resignation", workingDays(2)},

	// manpower and movement
	{"manpower-request", "manpower request", func(step string, anchor time.Time) time.Time {
		if reUnplanned.MatchString(step) {
			return AddWorkingDays(anchor, 5)
		}
		if rePlanned.MatchString(step) {
			return AddWorkingDays(anchor, 15)
		}
		return AddWorkingDays(anchor, 10)
	}},
	{"job-requisition", "job requisition", workingDays(10)},
	{"internal-transfer", "internal transfer", workingDays(10)},
	{"promotion", "promotion", workingDays(10)},

	// recurring report cycles; specific reports precede the generic monthly rule
	{"headcount-monthly-report", "headcount monthly report", nthWorkingDayNextMonth(5)},
	{"attrition-monthly-report", "attrition monthly report", nthWorkingDayNextMonth(5)},
	{"performance-review-cycle", "performance review", fromCandidates(
		MonthDay{time.February, 8}, MonthDay{time.June, 8}, MonthDay{time.September, 8}, MonthDay{time.December, 8})},
	{"quarterly-business-review", "quarterly business review", secondWorkingDayNextQuarter},
	{"quarterly-report", "quarterly report", secondWorkingDayNextQuarter},
	{"monthly-report", "monthly report", secondWorkingDayNextMonth},
	{"annual-report", "annual report", fixedDate(time.January, 15)},
	{"audit", "audit", workingDays(15)},

	// general services
	{"training", "training", workingDays(7)},
	{"seminar", "seminar", workingDays(7)},
	{"travel-reimbursement", "travel reimbursement", workingDays(10)},
	{"travel-request", "travel request", workingDays(5)},
	{"expense-reimbursement", "expense reimbursement", workingDays(10)},
	{"uniform", "uniform", calendarDays(20)},
	{"locker", "locker", workingDays(5)},
	{"parking", "parking", workingDays(5)},
	{"referral", "referral", calendarDays(30)},
	{"loan", "loan", workingDays(7)},
}

// requiredServices lists service names that must produce a due date. A missing
// due date for these is surfaced as an anomaly by the caller, never an error.
var requiredServices = map[string]struct{}{
	"employee concerns":                  {},
	"employee relations":                 {},
	"grievance":                          {},
	"notice to explain":                  {},
	"disciplinary action":                {},
	"timekeeping - vacation leave":       {},
	"timekeeping - sick leave":           {},
	"timekeeping - emergency leave":      {},
	"timekeeping - overtime":             {},
	"timekeeping - timesheet correction": {},
	"payroll dispute":                    {},
	"payroll processing":                 {},
	"final pay":                          {},
	"13th month pay":                     {},
	"sss sickness benefit":               {},
	"sss maternity benefit":              {},
	"sss loan":                           {},
	"pag-ibig loan":                      {},
	"philhealth claim":                   {},
	"government remittance":              {},
	"hmo enrollment":                     {},
	"hmo cancellation":                   {},
	"hmo reimbursement":                  {},
	"certificate of employment":          {},
	"employment verification":            {},
	"company id replacement":             {},
	"clearance processing":               {},
	"exit interview":                     {},
	"manpower request":                   {},
	"performance appraisal":              {},
	"headcount monthly report":           {},
	"attrition monthly report":           {},
	"quarterly business review":          {},
	"expense reimbursement":              {},
	"travel reimbursement":               {},
}

// DueDateRequired reports whether the service is on the must-have-due-date
// allow-list. Matching is on the normalized service name.
func DueDateRequired(service string) bool {
	_, ok := requiredServices[normalizeService(service)]
	return ok
}

package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// BusinessUnit identifies one of the independent record tables.
type BusinessUnit string

const (
	UnitITAM    BusinessUnit = "ITAM"
	UnitOnward  BusinessUnit = "Onward"
	UnitElevate BusinessUnit = "Elevate"
	UnitPrime   BusinessUnit = "Prime"
)

// companyByPrefix maps the 3-letter request-id prefix to its business unit.
var companyByPrefix = map[string]BusinessUnit{
	"ITM": UnitITAM,
	"ONW": UnitOnward,
	"ELV": UnitElevate,
	"PRM": UnitPrime,
}

// AllUnits returns business units in a stable order.
func AllUnits() []BusinessUnit {
	return []BusinessUnit{UnitITAM, UnitOnward, UnitElevate, UnitPrime}
}

var requestIDPattern = regexp.MustCompile(`^[A-Za-z]{3}-[A-Za-z0-9]+-\d{4}$`)

// FormatRequestID renders the canonical {companyCode}-{accountCode}-{seq:04d} id.
func FormatRequestID(companyCode, accountCode string, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", strings.ToUpper(strings.TrimSpace(companyCode)), strings.TrimSpace(accountCode), seq)
}

// ValidRequestID reports whether the id matches the wire format.
func ValidRequestID(requestID string) bool {
	return requestIDPattern.MatchString(strings.TrimSpace(requestID))
}

// CompanyFromCode resolves a 3-letter company code to its business unit.
// Unknown codes yield an empty unit.
func CompanyFromCode(code string) BusinessUnit {
	return companyByPrefix[strings.ToUpper(strings.TrimSpace(code))]
}

// CompanyFromRequestID derives the business unit from the id prefix. The id is
// authoritative; stored company values are advisory only.
func CompanyFromRequestID(requestID string) BusinessUnit {
	trimmed := strings.TrimSpace(requestID)
	prefix, _, found := strings.Cut(trimmed, "-")
	if !found {
		return ""
	}
	return CompanyFromCode(prefix)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRequestID(t *testing.T) {
	assert.Equal(t, "ITM-7-0001", FormatRequestID("itm", "7", 1))
	assert.Equal(t, "ONW-42-0315", FormatRequestID(" ONW ", "42", 315))
	assert.Equal(t, "PRM-A1-1200", FormatRequestID("PRM", "A1", 1200))
}

func TestValidRequestID(t *testing.T) {
	assert.True(t, ValidRequestID("ITM-7-0001"))
	assert.True(t, ValidRequestID(" ELV-A1-0042 "))
	assert.False(t, ValidRequestID("ITM-0001"))
	assert.False(t, ValidRequestID("ITM-7-001"))
	assert.False(t, ValidRequestID("IT-7-0001"))
}

func TestCompanyFromCode(t *testing.T) {
	assert.Equal(t, UnitITAM, CompanyFromCode("ITM"))
	assert.Equal(t, UnitOnward, CompanyFromCode("onw"))
	assert.Equal(t, UnitElevate, CompanyFromCode(" elv "))
	assert.Equal(t, UnitPrime, CompanyFromCode("PRM"))
	assert.Empty(t, CompanyFromCode("XYZ"))
	assert.Empty(t, CompanyFromCode(""))
}

func TestCompanyFromRequestID(t *testing.T) {
	assert.Equal(t, UnitITAM, CompanyFromRequestID("ITM-7-0001"))
	assert.Equal(t, UnitOnward, CompanyFromRequestID("onw-3-0042"))
	assert.Empty(t, CompanyFromRequestID("XYZ-3-0042"))
	assert.Empty(t, CompanyFromRequestID("no dashes here"))
}

func TestParseAction(t *testing.T) {
	for raw, want := range map[string]Action{
		"Start":  ActionStart,
		"start":  ActionStart,
		"pause":  ActionPause,
		"resume": ActionResume,
		"End":    ActionEnd,
	} {
		got, ok := ParseAction(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got)
	}
	_, ok := ParseAction("archive")
	assert.False(t, ok)
}

func TestStatusInProgress(t *testing.T) {
	assert.True(t, StatusInProgress.InProgress())
	assert.True(t, StatusResumed.InProgress())
	assert.False(t, StatusOpen.InProgress())
	assert.False(t, StatusPaused.InProgress())
	assert.False(t, StatusCompleted.InProgress())
}

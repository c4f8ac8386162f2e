package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkoester/equishift/pkg/core/model"
)

func personID(id int64) *int64 {
	return &id
}

func testPersons() []Person {
	return []Person{
		{PersonID: 1, Name: "Anna Albers", Status: model.PersonActive},
		{PersonID: 2, Name: "Bernd Bauer", Status: model.PersonActive},
		{PersonID: 3, Name: "Clara Cordes", Status: model.PersonPassive},
		{PersonID: 4, Name: "Dirk Dahl", Status: model.PersonResting},
	}
}

func scoreOf(t *testing.T, report []PersonScore, id int64) int {
	t.Helper()
	for _, s := range report {
		if s.PersonID == id {
			return s.Score
		}
	}
	t.Fatalf("person %d not in report", id)
	return 0
}

func TestHistoricalScores_AttendanceOutcomes(t *testing.T) {
	entries := []Entry{
		{PersonID: 1, Status: model.AttendanceDone},
		{PersonID: 1, Status: model.AttendanceDone},
		{PersonID: 2, Status: model.AttendanceNoShow},
		{PersonID: 3, Status: model.AttendancePlanned},
		{PersonID: 3, Status: model.AttendanceExcused},
	}

	report := HistoricalScores(testPersons(), entries, Options{})

	assert.Equal(t, 2, scoreOf(t, report, 1))
	assert.Equal(t, -2, scoreOf(t, report, 2))
	assert.Equal(t, 0, scoreOf(t, report, 3))
}

func TestHistoricalScores_SubstituteEarnsThePoint(t *testing.T) {
	// Bernd stepped in for Anna: he earns the point, she stays neutral
	entries := []Entry{
		{PersonID: 1, SubstitutePersonID: personID(2), Status: model.AttendanceDoneViaSubstitute},
	}

	report := HistoricalScores(testPersons(), entries, Options{})

	assert.Equal(t, 0, scoreOf(t, report, 1))
	assert.Equal(t, 1, scoreOf(t, report, 2))
}

func TestHistoricalScores_SubstituteCountsEvenOnNoShowRecord(t *testing.T) {
	// However the primary's outcome was recorded, a named substitute
	// served and gets credit; the primary is judged on their own status.
	entries := []Entry{
		{PersonID: 1, SubstitutePersonID: personID(2), Status: model.AttendanceNoShow},
	}

	report := HistoricalScores(testPersons(), entries, Options{})

	assert.Equal(t, -2, scoreOf(t, report, 1))
	assert.Equal(t, 1, scoreOf(t, report, 2))
}

func TestHistoricalScores_LimitCapsCountedDuties(t *testing.T) {
	// Entries are most recent first; with a limit of 2 only Anna's two
	// latest duties count, so the old no-shows are forgiven.
	entries := []Entry{
		{PersonID: 1, Status: model.AttendanceDone},
		{PersonID: 1, Status: model.AttendanceDone},
		{PersonID: 1, Status: model.AttendanceNoShow},
		{PersonID: 1, Status: model.AttendanceNoShow},
	}

	report := HistoricalScores(testPersons(), entries, Options{Limit: 2})

	assert.Equal(t, 2, scoreOf(t, report, 1))
}

func TestHistoricalScores_LimitCountsNeutralDutiesToo(t *testing.T) {
	// A planned duty inside the window uses up a slot even though it
	// contributes nothing, pushing older results out of the window.
	entries := []Entry{
		{PersonID: 1, Status: model.AttendancePlanned},
		{PersonID: 1, Status: model.AttendancePlanned},
		{PersonID: 1, Status: model.AttendanceDone},
	}

	report := HistoricalScores(testPersons(), entries, Options{Limit: 2})

	assert.Equal(t, 0, scoreOf(t, report, 1))
}

func TestHistoricalScores_InactiveFiltering(t *testing.T) {
	report := HistoricalScores(testPersons(), nil, Options{})
	for _, s := range report {
		assert.NotEqual(t, int64(4), s.PersonID, "resting members are hidden by default")
	}
	assert.Len(t, report, 3)

	full := HistoricalScores(testPersons(), nil, Options{IncludeInactive: true})
	assert.Len(t, full, 4)
}

func TestHistoricalScores_UnknownPersonsIgnored(t *testing.T) {
	// Log rows for members no longer in the roster must not panic or
	// surface in the report
	entries := []Entry{
		{PersonID: 99, Status: model.AttendanceDone},
	}

	report := HistoricalScores(testPersons(), entries, Options{})
	for _, s := range report {
		assert.NotEqual(t, int64(99), s.PersonID)
	}
}

func TestHistoricalScores_SortedByScoreThenName(t *testing.T) {
	entries := []Entry{
		{PersonID: 2, Status: model.AttendanceDone},
		{PersonID: 3, Status: model.AttendanceNoShow},
	}

	report := HistoricalScores(testPersons(), entries, Options{})

	require.Len(t, report, 3)
	assert.Equal(t, int64(2), report[0].PersonID) // score 1
	assert.Equal(t, int64(1), report[1].PersonID) // score 0
	assert.Equal(t, int64(3), report[2].PersonID) // score -2
}

func TestScoreLookup(t *testing.T) {
	report := []PersonScore{
		{PersonID: 1, Score: 3},
		{PersonID: 2, Score: -1},
	}

	lookup := ScoreLookup(report)

	assert.Equal(t, map[int64]int{1: 3, 2: -1}, lookup)
}

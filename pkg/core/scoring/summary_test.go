package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkoester/equishift/pkg/core/model"
)

func summaryPersons() []Person {
	return []Person{
		{PersonID: 1, Name: "Anna Albers", Status: model.PersonActive},
		{PersonID: 2, Name: "Bernd Bauer", Status: model.PersonActive},
		{PersonID: 3, Name: "Clara Cordes", Status: model.PersonPassive},
	}
}

func summaryFor(t *testing.T, report []MemberSummary, personID int64) MemberSummary {
	t.Helper()
	for _, s := range report {
		if s.PersonID == personID {
			return s
		}
	}
	t.Fatalf("person %d missing from report", personID)
	return MemberSummary{}
}

func TestMemberSummaries_DoneCreditsThePrimary(t *testing.T) {
	report := MemberSummaries(summaryPersons(), []DutyOutcome{
		{PersonID: 1, Status: model.AttendanceDone, Hours: 4},
		{PersonID: 1, Status: model.AttendanceDone, Hours: 6},
	})

	anna := summaryFor(t, report, 1)
	assert.Equal(t, 2, anna.DoneCount)
	assert.Equal(t, 10.0, anna.TotalHours)
}

func TestMemberSummaries_SubstitutedDutyCreditsTheSubstitute(t *testing.T) {
	substitute := int64(2)
	report := MemberSummaries(summaryPersons(), []DutyOutcome{
		{PersonID: 1, SubstitutePersonID: &substitute, Status: model.AttendanceDoneViaSubstitute, Hours: 4},
	})

	// The person who stepped in gets the duty and the hours, not the
	// member who was substituted away.
	bernd := summaryFor(t, report, 2)
	assert.Equal(t, 1, bernd.SubstituteCount)
	assert.Equal(t, 4.0, bernd.TotalHours)

	anna := summaryFor(t, report, 1)
	assert.Zero(t, anna.SubstituteCount)
	assert.Zero(t, anna.TotalHours)
	assert.Zero(t, anna.DoneCount)
}

func TestMemberSummaries_SubstitutedDutyWithoutSubstituteCreditsNobody(t *testing.T) {
	report := MemberSummaries(summaryPersons(), []DutyOutcome{
		{PersonID: 1, Status: model.AttendanceDoneViaSubstitute, Hours: 4},
	})

	for _, s := range report {
		assert.Zero(t, s.SubstituteCount, "person %d", s.PersonID)
		assert.Zero(t, s.TotalHours, "person %d", s.PersonID)
	}
}

func TestMemberSummaries_NoShowAndExcusedEarnNoHours(t *testing.T) {
	report := MemberSummaries(summaryPersons(), []DutyOutcome{
		{PersonID: 1, Status: model.AttendanceNoShow, Hours: 4},
		{PersonID: 1, Status: model.AttendanceExcused, Hours: 4},
		{PersonID: 1, Status: model.AttendancePlanned, Hours: 4},
	})

	anna := summaryFor(t, report, 1)
	assert.Equal(t, 1, anna.NoShowCount)
	assert.Equal(t, 1, anna.ExcusedCount)
	assert.Zero(t, anna.TotalHours)
}

func TestMemberSummaries_SortedByNameWithAllMembersPresent(t *testing.T) {
	report := MemberSummaries([]Person{
		{PersonID: 3, Name: "Clara Cordes", Status: model.PersonPassive},
		{PersonID: 1, Name: "Anna Albers", Status: model.PersonActive},
	}, nil)

	require.Len(t, report, 2)
	assert.Equal(t, "Anna Albers", report[0].Name)
	assert.Equal(t, "Clara Cordes", report[1].Name)
}

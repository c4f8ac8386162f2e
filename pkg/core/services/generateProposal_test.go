package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/core/model"
	"github.com/fkoester/equishift/pkg/core/planner"
	"github.com/fkoester/equishift/pkg/db"
)

// mockProposalStore implements ProposalStore for testing
type mockProposalStore struct {
	event         *db.Event
	shifts        []db.EventShift
	details       []db.AssignmentDetail
	candidates    map[int64][]db.PersonRef
	competencies  map[int64][]db.Competency
	persons       []db.PersonRef
	history       []db.HistoryEntry
	summary       *db.StaffingSummary
	inserted      []db.Assignment
	deletedEvents []int64
	insertErr     error
}

func (m *mockProposalStore) GetEvent(ctx context.Context, eventID int64) (*db.Event, error) {
	if m.event == nil {
		return nil, db.ErrNotFound
	}
	return m.event, nil
}

func (m *mockProposalStore) ListShiftsForEvent(ctx context.Context, eventID int64) ([]db.EventShift, error) {
	return m.shifts, nil
}

func (m *mockProposalStore) ListEventAssignmentDetails(ctx context.Context, eventID int64) ([]db.AssignmentDetail, error) {
	return m.details, nil
}

func (m *mockProposalStore) ListCandidatesForDuty(ctx context.Context, dutyTypeID, excludingShiftID int64) ([]db.PersonRef, error) {
	return m.candidates[dutyTypeID], nil
}

func (m *mockProposalStore) ListCompetenciesForDuty(ctx context.Context, dutyTypeID int64) ([]db.Competency, error) {
	return m.competencies[dutyTypeID], nil
}

func (m *mockProposalStore) ListPersons(ctx context.Context) ([]db.PersonRef, error) {
	return m.persons, nil
}

func (m *mockProposalStore) HistoricalAssignmentLog(ctx context.Context) ([]db.HistoryEntry, error) {
	return m.history, nil
}

func (m *mockProposalStore) InsertAssignments(ctx context.Context, assignments []db.Assignment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, assignments...)
	return nil
}

func (m *mockProposalStore) DeleteAssignmentsForEvent(ctx context.Context, eventID int64) (int64, error) {
	m.deletedEvents = append(m.deletedEvents, eventID)
	deleted := int64(len(m.details))
	m.details = nil
	return deleted, nil
}

func (m *mockProposalStore) GetEventStaffingSummary(ctx context.Context, eventID int64) (*db.StaffingSummary, error) {
	return m.summary, nil
}

func proposalStore() *mockProposalStore {
	persons := []db.PersonRef{
		{PersonID: 1, DisplayName: "Anna Albers", Status: model.PersonActive},
		{PersonID: 2, DisplayName: "Bernd Bauer", Status: model.PersonActive},
		{PersonID: 3, DisplayName: "Clara Cordes", Status: model.PersonActive},
		{PersonID: 4, DisplayName: "Dirk Dahl", Status: model.PersonActive},
	}

	return &mockProposalStore{
		event: &db.Event{EventID: 1, Name: "Summer Fair", StartDate: "2025-06-14", Status: model.EventPlanning},
		shifts: []db.EventShift{
			{ShiftID: 10, TaskID: 100, TaskName: "Bar", DutyTypeID: 7, ShiftDate: "2025-06-14", StartTime: "18:00", EndTime: "22:00", RequiredPeople: 2},
			{ShiftID: 11, TaskID: 100, TaskName: "Bar", DutyTypeID: 7, ShiftDate: "2025-06-14", StartTime: "22:00", EndTime: "02:00", RequiredPeople: 2},
		},
		candidates: map[int64][]db.PersonRef{7: persons},
		competencies: map[int64][]db.Competency{
			7: {
				{PersonID: 1, DutyTypeID: 7, IsTeamLeader: true},
				{PersonID: 2, DutyTypeID: 7, IsTeamLeader: true},
			},
		},
		persons: persons,
		summary: &db.StaffingSummary{TotalRequired: 4, TotalAssigned: 4},
	}
}

func TestGenerateProposal_FillsAndSaves(t *testing.T) {
	store := proposalStore()
	seed := int64(1)

	result, err := GenerateProposal(context.Background(), store, zap.NewNop(), 1, planner.DefaultWeights(), &seed, false, false)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Created)
	assert.Len(t, store.inserted, 4)
	for _, a := range store.inserted {
		assert.NotEmpty(t, a.AssignmentID)
		assert.Equal(t, model.AttendancePlanned, a.AttendanceStatus)
		assert.Nil(t, a.SubstitutePersonID)
	}
	assert.Equal(t, 4, result.TotalAssigned)
	assert.Equal(t, 4, result.TotalRequired)
}

func TestGenerateProposal_DeterministicWithSeed(t *testing.T) {
	seed := int64(42)

	first, err := GenerateProposal(context.Background(), proposalStore(), zap.NewNop(), 1, planner.DefaultWeights(), &seed, false, true)
	require.NoError(t, err)
	second, err := GenerateProposal(context.Background(), proposalStore(), zap.NewNop(), 1, planner.DefaultWeights(), &seed, false, true)
	require.NoError(t, err)

	require.Equal(t, len(first.Assignments), len(second.Assignments))
	for i := range first.Assignments {
		assert.Equal(t, first.Assignments[i].ShiftID, second.Assignments[i].ShiftID)
		assert.Equal(t, first.Assignments[i].PersonID, second.Assignments[i].PersonID)
	}
}

func TestGenerateProposal_DryRunDoesNotWrite(t *testing.T) {
	store := proposalStore()
	seed := int64(1)

	result, err := GenerateProposal(context.Background(), store, zap.NewNop(), 1, planner.DefaultWeights(), &seed, false, true)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Created)
	assert.Empty(t, store.inserted)
	assert.Empty(t, store.deletedEvents)
}

func TestGenerateProposal_ResetClearsExistingAssignments(t *testing.T) {
	store := proposalStore()
	store.details = []db.AssignmentDetail{
		{AssignmentID: "a-1", ShiftID: 10, PersonID: 3, DisplayName: "Clara Cordes", TaskName: "Bar", DutyTypeID: 7, ShiftDate: "2025-06-14", StartTime: "18:00", EndTime: "22:00"},
	}
	seed := int64(1)

	result, err := GenerateProposal(context.Background(), store, zap.NewNop(), 1, planner.DefaultWeights(), &seed, true, false)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, store.deletedEvents)
	assert.Equal(t, int64(1), result.Deleted)
	assert.Equal(t, 4, result.Created)
}

func TestGenerateProposal_KeepsExistingAssignmentsWithoutReset(t *testing.T) {
	store := proposalStore()
	store.details = []db.AssignmentDetail{
		{AssignmentID: "a-1", ShiftID: 10, PersonID: 1, DisplayName: "Anna Albers", TaskName: "Bar", DutyTypeID: 7, ShiftDate: "2025-06-14", StartTime: "18:00", EndTime: "22:00", IsTeamLeader: true},
	}
	seed := int64(1)

	result, err := GenerateProposal(context.Background(), store, zap.NewNop(), 1, planner.DefaultWeights(), &seed, false, false)
	require.NoError(t, err)

	assert.Empty(t, store.deletedEvents)
	// Only three open slots remain
	assert.Equal(t, 3, result.Created)
	for _, a := range store.inserted {
		if a.ShiftID == 10 {
			assert.NotEqual(t, int64(1), a.PersonID)
		}
	}
}

func TestGenerateProposal_CompletedEventRejected(t *testing.T) {
	store := proposalStore()
	store.event.Status = model.EventCompleted

	_, err := GenerateProposal(context.Background(), store, zap.NewNop(), 1, planner.DefaultWeights(), nil, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can no longer be planned")
	assert.Empty(t, store.inserted)
}

func TestGenerateProposal_UnknownEvent(t *testing.T) {
	store := &mockProposalStore{}

	_, err := GenerateProposal(context.Background(), store, zap.NewNop(), 99, planner.DefaultWeights(), nil, false, false)
	assert.Error(t, err)
}

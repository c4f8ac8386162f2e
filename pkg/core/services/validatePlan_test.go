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

// mockValidatePlanStore implements ValidatePlanStore for testing
type mockValidatePlanStore struct {
	event        *db.Event
	occupancy    []db.ShiftOccupancy
	details      []db.AssignmentDetail
	restrictions map[int64][]int64
}

func (m *mockValidatePlanStore) GetEvent(ctx context.Context, eventID int64) (*db.Event, error) {
	if m.event == nil {
		return nil, db.ErrNotFound
	}
	return m.event, nil
}

func (m *mockValidatePlanStore) ListShiftOccupancy(ctx context.Context, eventID int64) ([]db.ShiftOccupancy, error) {
	return m.occupancy, nil
}

func (m *mockValidatePlanStore) ListEventAssignmentDetails(ctx context.Context, eventID int64) ([]db.AssignmentDetail, error) {
	return m.details, nil
}

func (m *mockValidatePlanStore) GetRestrictions(ctx context.Context, personID int64) ([]int64, error) {
	return m.restrictions[personID], nil
}

func TestValidatePlan_CleanPlan(t *testing.T) {
	store := &mockValidatePlanStore{
		event: &db.Event{EventID: 1, Name: "Summer Fair", Status: model.EventPlanning},
		occupancy: []db.ShiftOccupancy{
			{ShiftID: 10, TaskName: "Bar", ShiftDate: "2025-06-14", StartTime: "18:00", RequiredPeople: 1, AssignedCount: 1},
		},
		details: []db.AssignmentDetail{
			{AssignmentID: "a-1", ShiftID: 10, PersonID: 1, DisplayName: "Anna Albers", TaskName: "Bar", DutyTypeID: 7, ShiftDate: "2025-06-14", StartTime: "18:00", EndTime: "22:00", IsTeamLeader: true, AttendanceStatus: model.AttendancePlanned},
		},
	}

	result, err := ValidatePlan(context.Background(), store, zap.NewNop(), 1)
	require.NoError(t, err)

	assert.True(t, result.OK())
	assert.Empty(t, result.Warnings)
}

func TestValidatePlan_CountsBySeverity(t *testing.T) {
	store := &mockValidatePlanStore{
		event: &db.Event{EventID: 1, Name: "Summer Fair", Status: model.EventPlanning},
		occupancy: []db.ShiftOccupancy{
			// Empty shift: hard
			{ShiftID: 10, TaskName: "Bar", ShiftDate: "2025-06-14", StartTime: "18:00", RequiredPeople: 2, AssignedCount: 0},
			// Understaffed without a lead: two soft findings
			{ShiftID: 11, TaskName: "Door", ShiftDate: "2025-06-14", StartTime: "20:00", RequiredPeople: 2, AssignedCount: 1},
		},
		details: []db.AssignmentDetail{
			{AssignmentID: "a-1", ShiftID: 11, PersonID: 1, DisplayName: "Anna Albers", TaskName: "Door", DutyTypeID: 8, ShiftDate: "2025-06-14", StartTime: "20:00", EndTime: "23:00", AttendanceStatus: model.AttendancePlanned},
		},
		restrictions: map[int64][]int64{
			1: {8}, // hard: assigned despite restriction
		},
	}

	result, err := ValidatePlan(context.Background(), store, zap.NewNop(), 1)
	require.NoError(t, err)

	assert.False(t, result.OK())
	assert.Equal(t, 2, result.HardCount)
	assert.Equal(t, 2, result.SoftCount)

	var hard []string
	for _, w := range result.Warnings {
		if w.Severity == planner.SeverityHard {
			hard = append(hard, w.Message)
		}
	}
	require.Len(t, hard, 2)
	assert.Contains(t, hard[0], "completely empty")
	assert.Contains(t, hard[1], "despite a restriction")
}

func TestValidatePlan_UnknownEvent(t *testing.T) {
	store := &mockValidatePlanStore{}

	_, err := ValidatePlan(context.Background(), store, zap.NewNop(), 99)
	assert.Error(t, err)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/core/model"
	"github.com/fkoester/equishift/pkg/db"
)

// mockDefineShiftsStore implements DefineShiftsStore for testing
type mockDefineShiftsStore struct {
	task     *db.Task
	event    *db.Event
	inserted []db.Shift
}

func (m *mockDefineShiftsStore) GetTask(ctx context.Context, taskID int64) (*db.Task, error) {
	if m.task == nil {
		return nil, db.ErrNotFound
	}
	return m.task, nil
}

func (m *mockDefineShiftsStore) GetEvent(ctx context.Context, eventID int64) (*db.Event, error) {
	if m.event == nil {
		return nil, db.ErrNotFound
	}
	return m.event, nil
}

func (m *mockDefineShiftsStore) InsertShifts(ctx context.Context, shifts []db.Shift) error {
	m.inserted = append(m.inserted, shifts...)
	return nil
}

func defineShiftsStore() *mockDefineShiftsStore {
	return &mockDefineShiftsStore{
		task:  &db.Task{TaskID: 100, EventID: 1, DutyTypeID: 7, Name: "Bar"},
		event: &db.Event{EventID: 1, Name: "Festival Week", StartDate: "2025-06-09", EndDate: "2025-06-15", Status: model.EventPlanning},
	}
}

func TestDefineShifts_SingleDate(t *testing.T) {
	store := defineShiftsStore()

	result, err := DefineShifts(context.Background(), store, zap.NewNop(), DefineShiftsParams{
		TaskID:         100,
		Date:           "2025-06-14",
		StartTime:      "18:00",
		EndTime:        "22:00",
		RequiredPeople: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ShiftsCreated)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "2025-06-14", store.inserted[0].ShiftDate)
	assert.Equal(t, int64(100), store.inserted[0].TaskID)
	assert.Equal(t, 2, store.inserted[0].RequiredPeople)
}

func TestDefineShifts_RecurrenceWithinEvent(t *testing.T) {
	store := defineShiftsStore()

	result, err := DefineShifts(context.Background(), store, zap.NewNop(), DefineShiftsParams{
		TaskID:         100,
		Recurrence:     "FREQ=DAILY;INTERVAL=2",
		StartTime:      "18:00",
		EndTime:        "22:00",
		RequiredPeople: 1,
	})
	require.NoError(t, err)

	// Every second day from June 9 through June 15
	assert.Equal(t, []string{"2025-06-09", "2025-06-11", "2025-06-13", "2025-06-15"}, result.Dates)
	assert.Len(t, store.inserted, 4)
}

func TestDefineShifts_DateOutsideEventRejected(t *testing.T) {
	store := defineShiftsStore()

	_, err := DefineShifts(context.Background(), store, zap.NewNop(), DefineShiftsParams{
		TaskID:         100,
		Date:           "2025-07-01",
		StartTime:      "18:00",
		EndTime:        "22:00",
		RequiredPeople: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the event")
	assert.Empty(t, store.inserted)
}

func TestDefineShifts_InvalidParams(t *testing.T) {
	store := defineShiftsStore()

	cases := []DefineShiftsParams{
		// both date and recurrence
		{TaskID: 100, Date: "2025-06-14", Recurrence: "FREQ=DAILY", StartTime: "18:00", EndTime: "22:00", RequiredPeople: 1},
		// neither
		{TaskID: 100, StartTime: "18:00", EndTime: "22:00", RequiredPeople: 1},
		// broken time
		{TaskID: 100, Date: "2025-06-14", StartTime: "25:99", EndTime: "22:00", RequiredPeople: 1},
		// zero headcount
		{TaskID: 100, Date: "2025-06-14", StartTime: "18:00", EndTime: "22:00", RequiredPeople: 0},
	}

	for _, params := range cases {
		_, err := DefineShifts(context.Background(), store, zap.NewNop(), params)
		assert.Error(t, err)
	}
	assert.Empty(t, store.inserted)
}

func TestDefineShifts_CompletedEventRejected(t *testing.T) {
	store := defineShiftsStore()
	store.event.Status = model.EventCompleted

	_, err := DefineShifts(context.Background(), store, zap.NewNop(), DefineShiftsParams{
		TaskID:         100,
		Date:           "2025-06-14",
		StartTime:      "18:00",
		EndTime:        "22:00",
		RequiredPeople: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can no longer be planned")
}

func TestDefineShifts_MidnightCrossingTimesAccepted(t *testing.T) {
	store := defineShiftsStore()

	result, err := DefineShifts(context.Background(), store, zap.NewNop(), DefineShiftsParams{
		TaskID:         100,
		Date:           "2025-06-14",
		StartTime:      "22:00",
		EndTime:        "02:00",
		RequiredPeople: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ShiftsCreated)
}

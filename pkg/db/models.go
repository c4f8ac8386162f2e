package db

import (
	"github.com/fkoester/equishift/pkg/core/model"
)

// Person represents a member record.
// Dates are stored as strings in 2006-01-02 format; times as 15:04.
type Person struct {
	PersonID    int64
	FirstName   string
	LastName    string
	DisplayName string
	BirthDate   string
	Phone       string
	Status      model.PersonStatus
}

// DutyType represents a category of work (e.g. bar, cash desk).
// Protected duty types are seeded by migrations and cannot be deleted.
type DutyType struct {
	DutyTypeID  int64
	Name        string
	Description string
	IsProtected bool
}

// Event represents a multi-day event record
type Event struct {
	EventID   int64
	Name      string
	StartDate string
	EndDate   string // empty for single-day events
	Status    model.EventStatus
}

// Task is a concrete instance of a duty type within one event
type Task struct {
	TaskID      int64
	EventID     int64
	DutyTypeID  int64
	Name        string
	Description string
}

// Shift is a time-boxed slot under a task requiring N people.
// EndTime <= StartTime means the shift crosses midnight.
type Shift struct {
	ShiftID        int64
	TaskID         int64
	ShiftDate      string
	StartTime      string
	EndTime        string
	RequiredPeople int
}

// Assignment links a person to a shift
type Assignment struct {
	AssignmentID       string // uuid
	ShiftID            int64
	PersonID           int64
	AttendanceStatus   model.AttendanceStatus
	SubstitutePersonID *int64
}

// EventShift is a shift joined with its task and duty type
type EventShift struct {
	ShiftID        int64
	TaskID         int64
	TaskName       string
	DutyTypeID     int64
	ShiftDate      string
	StartTime      string
	EndTime        string
	RequiredPeople int
}

// EventAssignment is one assignment within an event with its shift window
type EventAssignment struct {
	PersonID  int64
	ShiftID   int64
	ShiftDate string
	StartTime string
	EndTime   string
}

// AssignmentDetail joins an assignment with person, shift and competency information
type AssignmentDetail struct {
	AssignmentID       string
	ShiftID            int64
	PersonID           int64
	DisplayName        string
	TaskName           string
	DutyTypeID         int64
	ShiftDate          string
	StartTime          string
	EndTime            string
	HasCompetence      bool
	IsTeamLeader       bool
	AttendanceStatus   model.AttendanceStatus
	SubstitutePersonID *int64
}

// Competency marks a person as qualified for a duty type
type Competency struct {
	PersonID     int64
	DutyTypeID   int64
	IsTeamLeader bool
}

// ShiftOccupancy reports how many people are assigned to a shift
type ShiftOccupancy struct {
	ShiftID        int64
	TaskName       string
	ShiftDate      string
	StartTime      string
	RequiredPeople int
	AssignedCount  int
}

// HistoryEntry is one row of the historical assignment log, used for fairness scoring.
// The log is ordered most-recent-event-first.
type HistoryEntry struct {
	PersonID           int64
	SubstitutePersonID *int64
	AttendanceStatus   model.AttendanceStatus
	EventStartDate     string
}

// PersonRef is a lightweight person reference used in candidate lists
type PersonRef struct {
	PersonID    int64
	DisplayName string
	Status      model.PersonStatus
}

// StaffingSummary holds aggregate staffing counts for an event
type StaffingSummary struct {
	TotalRequired int
	TotalAssigned int
}

// AttendanceOutcome is one recorded assignment outcome with its shift
// window, input for the member summary report
type AttendanceOutcome struct {
	PersonID           int64
	SubstitutePersonID *int64
	AttendanceStatus   model.AttendanceStatus
	ShiftDate          string
	StartTime          string
	EndTime            string
}

// PlanRow is one row of the rendered event plan (export and publishing)
type PlanRow struct {
	TaskName       string
	ShiftDate      string
	StartTime      string
	EndTime        string
	RequiredPeople int
	HelperName     string // empty for unassigned slots
	IsTeamLeader   bool
	Phone          string
}

// CopyEventParams describes an event copy operation
type CopyEventParams struct {
	SourceEventID int64
	NewName       string
	NewStartDate  string
	Mode          model.CopyMode
}

// CopyEventResult reports what an event copy produced
type CopyEventResult struct {
	NewEventID        int64
	TasksCopied       int
	ShiftsCopied      int
	AssignmentsCopied int
}

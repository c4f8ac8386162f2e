package model

// PersonStatus describes a volunteer's membership state.
// Only active and passive members may be proposed for shifts.
type PersonStatus string

const (
	PersonActive  PersonStatus = "active"
	PersonPassive PersonStatus = "passive"
	PersonResting PersonStatus = "resting"
	PersonExited  PersonStatus = "exited"
)

// Assignable returns true if a person with this status may be assigned to shifts
func (s PersonStatus) Assignable() bool {
	return s == PersonActive || s == PersonPassive
}

// EventStatus describes the lifecycle state of an event
type EventStatus string

const (
	EventPlanning  EventStatus = "planning"
	EventActive    EventStatus = "active"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// Editable returns true if planning operations may still modify the event
func (s EventStatus) Editable() bool {
	return s != EventCompleted
}

// AttendanceStatus records the outcome of an assignment after the event
type AttendanceStatus string

const (
	AttendancePlanned           AttendanceStatus = "planned"
	AttendanceDone              AttendanceStatus = "done"
	AttendanceDoneViaSubstitute AttendanceStatus = "done_via_substitute"
	AttendanceNoShow            AttendanceStatus = "no_show"
	AttendanceExcused           AttendanceStatus = "excused"
)

// ValidAttendanceStatus reports whether s is one of the known attendance outcomes
func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendancePlanned, AttendanceDone, AttendanceDoneViaSubstitute, AttendanceNoShow, AttendanceExcused:
		return true
	}
	return false
}

// CopyMode controls how much of an event is duplicated by a copy operation
type CopyMode string

const (
	// CopyStructure copies the event and its tasks only
	CopyStructure CopyMode = "structure"
	// CopyShifts copies tasks and their shifts (dates moved by the start delta)
	CopyShifts CopyMode = "shifts"
	// CopyFull copies tasks, shifts and assignments (attendance reset to planned)
	CopyFull CopyMode = "full"
)

// ValidCopyMode reports whether m is a known copy mode
func ValidCopyMode(m CopyMode) bool {
	return m == CopyStructure || m == CopyShifts || m == CopyFull
}

// MaxRestrictions is the maximum number of duty types a person may be restricted from
const MaxRestrictions = 3

// RecommendedMaxDuties is the advisory ceiling for shifts per person per event.
// Exceeding it is allowed but flagged by the plan validator.
const RecommendedMaxDuties = 2

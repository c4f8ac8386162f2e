package planner

import (
	"strings"

	"github.com/fkoester/equishift/pkg/core/model"
)

// PersonInfo identifies a person considered for a shift
type PersonInfo struct {
	PersonID    int64
	DisplayName string
	Status      model.PersonStatus
}

// CompetencyInfo describes a person's qualification for one duty type
type CompetencyInfo struct {
	HasCompetence bool
	IsTeamLeader  bool
}

// Candidate is one person eligible for a shift, with soft warnings attached.
// Hard conflicts (overlapping assignments, restrictions) never produce a
// candidate; they exclude the person entirely.
type Candidate struct {
	PersonID      int64
	DisplayName   string
	Status        model.PersonStatus
	HasCompetence bool
	IsTeamLeader  bool
	Warnings      []string
}

// WarningsText renders the candidate's warnings for display
func (c Candidate) WarningsText() string {
	return strings.Join(c.Warnings, ", ")
}

// Severity distinguishes blocking problems from advisory ones
type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// Warning is a single plan validation finding. Message is ready for
// display; ShiftID and PersonIDs identify the affected records so the
// presentation layer can link to them.
type Warning struct {
	Severity  Severity
	Message   string
	ShiftID   int64 // zero when the warning is not tied to one shift
	PersonIDs []int64
}

package domain

import (
	"encoding/json"
	"time"

	"github.com/m04kA/interview-slots/pkg/types"
)

// SlotStatus represents the lifecycle status of a slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "AVAILABLE"
	SlotStatusBooked    SlotStatus = "BOOKED"
	SlotStatusCancelled SlotStatus = "CANCELLED"
	SlotStatusCompleted SlotStatus = "COMPLETED"
)

// IsTerminal returns true for CANCELLED and COMPLETED
func (s SlotStatus) IsTerminal() bool {
	return s == SlotStatusCancelled || s == SlotStatusCompleted
}

// IsValid returns true if the status is one of the known values
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusBooked, SlotStatusCancelled, SlotStatusCompleted:
		return true
	}
	return false
}

// InterviewType is the kind of interview a slot is offered for
type InterviewType string

const (
	InterviewTypeTechnical    InterviewType = "technical"
	InterviewTypeBehavioral   InterviewType = "behavioral"
	InterviewTypeSystemDesign InterviewType = "system_design"
	InterviewTypeCoding       InterviewType = "coding"
	InterviewTypeGeneral      InterviewType = "general"
)

func (t InterviewType) IsValid() bool {
	switch t {
	case InterviewTypeTechnical, InterviewTypeBehavioral, InterviewTypeSystemDesign,
		InterviewTypeCoding, InterviewTypeGeneral:
		return true
	}
	return false
}

// Scope narrows which callers may see and book a slot.
// A nil JobID means the slot is offered to every job of the company.
type Scope struct {
	CompanyID int64
	JobID     *int64
}

// Covers reports whether a slot with this scope is visible to a caller
// asking for the requested scope. A request without a job sees every slot
// of the company.
func (s Scope) Covers(requested Scope) bool {
	if s.CompanyID != requested.CompanyID {
		return false
	}
	if s.JobID == nil || requested.JobID == nil {
		return true
	}
	return *s.JobID == *requested.JobID
}

// Equal compares company and job
func (s Scope) Equal(other Scope) bool {
	if s.CompanyID != other.CompanyID {
		return false
	}
	if s.JobID == nil || other.JobID == nil {
		return s.JobID == nil && other.JobID == nil
	}
	return *s.JobID == *other.JobID
}

// Slot represents a bookable interview window with fixed capacity
type Slot struct {
	ID              int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	InterviewType   InterviewType
	MaxCapacity     int
	CurrentBookings int
	Status          SlotStatus
	Scope           Scope

	// Configuration is opaque to the engine (difficulty, question count, topics)
	Configuration json.RawMessage

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the slot's time range
func (s *Slot) Window() types.Window {
	return types.Window{Start: s.StartTime, End: s.EndTime}
}

// IsFull returns true if no seats remain
func (s *Slot) IsFull() bool {
	return s.CurrentBookings >= s.MaxCapacity
}

// RemainingCapacity returns the number of free seats
func (s *Slot) RemainingCapacity() int {
	if s.CurrentBookings >= s.MaxCapacity {
		return 0
	}
	return s.MaxCapacity - s.CurrentBookings
}

// Clone returns a deep copy of the slot
func (s *Slot) Clone() *Slot {
	if s == nil {
		return nil
	}
	c := *s
	if s.Scope.JobID != nil {
		job := *s.Scope.JobID
		c.Scope.JobID = &job
	}
	if s.Configuration != nil {
		c.Configuration = append(json.RawMessage(nil), s.Configuration...)
	}
	return &c
}

// SlotFilter filters slots for a single date and company
type SlotFilter struct {
	Date      time.Time
	CompanyID int64
	// JobID matches slots of this job and slots without a job; nil matches all
	JobID         *int64
	Statuses      []SlotStatus
	InterviewType *InterviewType
}

// SlotUpdate carries the only mutable fields of a slot
type SlotUpdate struct {
	CurrentBookings int
	Status          SlotStatus
}

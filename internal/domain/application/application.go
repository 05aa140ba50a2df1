package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Application is a worker's bid to fill one slot of a job. Rows are never
// deleted, only moved through the state machine.
type Application struct {
	ID            uuid.UUID
	JobID         uuid.UUID
	WorkerID      uuid.UUID
	Status        Status
	PaidConfirmed bool
	AppliedAt     time.Time
	UpdatedAt     time.Time
}

var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether the state machine permits from -> to in
// one step. Rejected, completed and cancelled are terminal.
func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

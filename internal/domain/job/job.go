package job

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePhysicalWork Type = "physical_work"
	TypeFnB          Type = "fnb"
	TypeEvent        Type = "event"
	TypeRetail       Type = "retail"
	TypeOthers       Type = "others"
)

func (t Type) Valid() bool {
	switch t {
	case TypePhysicalWork, TypeFnB, TypeEvent, TypeRetail, TypeOthers:
		return true
	}
	return false
}

// Status is always derived from the job's schedule and its applications;
// it is never written by client code.
type Status string

const (
	StatusOpen      Status = "open"
	StatusFull      Status = "full"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

type Location struct {
	Province string
	City     string
	Ward     string
	Address  string
}

type Job struct {
	ID           uuid.UUID
	EmployerID   uuid.UUID
	Title        string
	Description  string
	Location     Location
	Type         Type
	StartDate    time.Time
	DurationDays int
	WorkerQuota  int
	Salary       *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EndDate is the first day after the work window.
func (j Job) EndDate() time.Time {
	return j.StartDate.AddDate(0, 0, j.DurationDays)
}

// ApplicationCounts is the per-status aggregate of a job's applications.
type ApplicationCounts struct {
	Pending   int
	Accepted  int
	Completed int
}

// DeriveStatus computes the job's displayed state from its schedule and
// application aggregate. Rules are evaluated in precedence order: a job
// whose quota is met is full regardless of dates; an in-window job with
// accepted workers is ongoing; a past-window job with completed work is
// completed; anything else is open. Deleted jobs never reach this
// function (deletion is a hard removal).
func DeriveStatus(j Job, c ApplicationCounts, now time.Time) Status {
	if j.WorkerQuota > 0 && c.Accepted >= j.WorkerQuota {
		return StatusFull
	}
	if !now.Before(j.StartDate) && now.Before(j.EndDate()) && c.Accepted > 0 {
		return StatusOngoing
	}
	if !now.Before(j.EndDate()) && c.Completed > 0 {
		return StatusCompleted
	}
	return StatusOpen
}

// AcceptsApplications reports whether a worker may still apply.
func AcceptsApplications(j Job, c ApplicationCounts, now time.Time) bool {
	return DeriveStatus(j, c, now) == StatusOpen
}

package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is a capability a user holds. A user may hold both.
type Role string

const (
	RoleWorker   Role = "worker"
	RoleEmployer Role = "employer"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsWorker     bool
	IsEmployer   bool
	RatingAvg    float64
	RatingCount  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) HasRole(r Role) bool {
	switch r {
	case RoleWorker:
		return u.IsWorker
	case RoleEmployer:
		return u.IsEmployer
	}
	return false
}

func (u User) Roles() []Role {
	roles := make([]Role, 0, 2)
	if u.IsWorker {
		roles = append(roles, RoleWorker)
	}
	if u.IsEmployer {
		roles = append(roles, RoleEmployer)
	}
	return roles
}

type WorkerProfile struct {
	UserID      uuid.UUID
	Bio         *string
	Gender      *string
	DateOfBirth *time.Time
	Skills      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type EmployerProfile struct {
	UserID         uuid.UUID
	CompanyName    string
	CompanyAddress *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

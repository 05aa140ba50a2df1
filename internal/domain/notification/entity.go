package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeApplication Type = "application"
	TypeJob         Type = "job"
	TypeMessage     Type = "message"
	TypeSystem      Type = "system"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      Type
	Title     string
	Message   string
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

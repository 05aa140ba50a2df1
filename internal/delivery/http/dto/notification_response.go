package dto

import (
	"time"

	"gigboard/internal/domain/notification"
)

type NotificationResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	IsRead    bool    `json:"is_read"`
	ReadAt    *string `json:"read_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func NewNotificationResponse(n notification.Notification) NotificationResponse {
	var readAt *string
	if n.ReadAt != nil {
		s := n.ReadAt.UTC().Format(time.RFC3339)
		readAt = &s
	}
	return NotificationResponse{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		ReadAt:    readAt,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewNotificationListResponse(notifs []notification.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, NewNotificationResponse(n))
	}
	return out
}

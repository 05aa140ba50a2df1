package ws

import (
	"encoding/json"
	"time"

	"gigboard/internal/domain/notification"
)

type notificationEvent struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	NotifType string `json:"notif_type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// NotificationPusher adapts the hub to the usecase-side Pusher port.
type NotificationPusher struct {
	hub *Hub
}

func NewNotificationPusher(hub *Hub) *NotificationPusher {
	return &NotificationPusher{hub: hub}
}

func (p *NotificationPusher) Push(n notification.Notification) {
	if p == nil || p.hub == nil {
		return
	}

	evt := notificationEvent{
		Type:      "notification",
		ID:        n.ID.String(),
		NotifType: string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	p.hub.SendToUser(n.UserID, b)
}

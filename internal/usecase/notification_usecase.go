package usecase

import (
	"context"
	"errors"

	"gigboard/internal/domain/notification"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

// Read and delete are persisted server-side; the WS push is only the
// optimistic delivery layered on top of the stored rows.
type NotificationUsecase interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type Notifications struct {
	notifs repository.NotificationRepository
}

func NewNotificationUsecase(notifs repository.NotificationRepository) *Notifications {
	return &Notifications{notifs: notifs}
}

func (u *Notifications) ListForUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	out, err := u.notifs.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Notifications) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := u.notifs.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Notifications) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := u.notifs.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

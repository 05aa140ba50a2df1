package usecase

import (
	"context"
	"time"

	"gigboard/internal/domain/notification"
)

// ListingCache is the read-side cache for job listings. Implementations
// may serve stale pages for a bounded interval; mutating operations always
// go to the repositories.
type ListingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateJobListings(ctx context.Context) error
}

// Pusher delivers a freshly persisted notification to a connected client.
// Delivery is best effort; the persisted row is authoritative.
type Pusher interface {
	Push(n notification.Notification)
}

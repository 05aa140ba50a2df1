package review

import (
	"time"

	"github.com/google/uuid"
)

// MaxCommentLen caps review comments; mirrored by a CHECK constraint.
const MaxCommentLen = 200

// Review is an immutable post-completion rating between a job's employer
// and a completed worker. One review per (job, reviewer, reviewee).
type Review struct {
	ID         uuid.UUID
	JobID      uuid.UUID
	ReviewerID uuid.UUID
	RevieweeID uuid.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gigboard/internal/domain/application"
	"gigboard/internal/domain/notification"
	"gigboard/internal/domain/review"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

type ReviewInput struct {
	JobID      uuid.UUID
	RevieweeID uuid.UUID
	Rating     int
	Comment    string
}

type ReviewUsecase interface {
	Create(ctx context.Context, reviewerID uuid.UUID, in ReviewInput) (review.Review, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]review.Review, error)
}

type Reviews struct {
	reviews repository.ReviewRepository
	apps    repository.ApplicationRepository
	jobs    repository.JobRepository
	notifs  repository.NotificationRepository
	push    Pusher
	logger  *log.Logger
}

func NewReviewUsecase(
	reviews repository.ReviewRepository,
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	notifs repository.NotificationRepository,
	push Pusher,
	logger *log.Logger,
) *Reviews {
	return &Reviews{reviews: reviews, apps: apps, jobs: jobs, notifs: notifs, push: push, logger: logger}
}

// Create admits exactly one review per (job, reviewer, reviewee) and only
// between the employer and a worker whose application on that job reached
// completed. The counterpart check pins the pair to the job's actual
// participants.
func (u *Reviews) Create(ctx context.Context, reviewerID uuid.UUID, in ReviewInput) (review.Review, error) {
	if reviewerID == in.RevieweeID {
		return review.Review{}, fmt.Errorf("%w: cannot review yourself", ErrValidation)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return review.Review{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if len(in.Comment) > review.MaxCommentLen {
		return review.Review{}, fmt.Errorf("%w: comment exceeds %d characters", ErrValidation, review.MaxCommentLen)
	}

	j, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return review.Review{}, ErrNotEligible
		}
		return review.Review{}, ErrInternal
	}

	// One side of the pair must be the employer; the other must hold the
	// completed application.
	var workerID uuid.UUID
	switch {
	case reviewerID == j.EmployerID:
		workerID = in.RevieweeID
	case in.RevieweeID == j.EmployerID:
		workerID = reviewerID
	default:
		return review.Review{}, ErrNotEligible
	}

	if _, err := u.apps.GetByJobAndWorker(ctx, in.JobID, workerID, application.StatusCompleted); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return review.Review{}, ErrNotEligible
		}
		return review.Review{}, ErrInternal
	}

	created, err := u.reviews.Create(ctx, review.Review{
		JobID:      in.JobID,
		ReviewerID: reviewerID,
		RevieweeID: in.RevieweeID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	})
	if err != nil {
		if errors.Is(err, repository.ErrReviewExists) {
			return review.Review{}, ErrDuplicate
		}
		return review.Review{}, ErrInternal
	}

	u.notifyReviewee(ctx, created, j.Title)
	return created, nil
}

func (u *Reviews) ListForUser(ctx context.Context, userID uuid.UUID) ([]review.Review, error) {
	out, err := u.reviews.ListByReviewee(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Reviews) notifyReviewee(ctx context.Context, rev review.Review, jobTitle string) {
	if u.notifs == nil {
		return
	}
	n, err := u.notifs.Create(ctx, notification.Notification{
		UserID:  rev.RevieweeID,
		Type:    notification.TypeSystem,
		Title:   "New review",
		Message: fmt.Sprintf("You received a %d-star review on %q", rev.Rating, jobTitle),
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Reviews] notification write failed: %v", err)
		}
		return
	}
	if u.push != nil {
		u.push.Push(n)
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gigboard/internal/domain/application"
	"gigboard/internal/domain/job"
	"gigboard/internal/domain/user"

	"github.com/google/uuid"
)

type reviewFixture struct {
	uc      *Reviews
	users   *memUserRepo
	jobs    *memJobRepo
	apps    *memAppRepo
	reviews *memReviewRepo
	notifs  *memNotifRepo
	push    *memPusher

	employer user.User
	worker   user.User
	job      job.Job
}

// newReviewFixture sets up a job whose worker already completed the work,
// the only state in which reviews are permitted.
func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	users := newMemUserRepo()
	jobs := newMemJobRepo()
	apps := newMemAppRepo()

	f := &reviewFixture{
		users:   users,
		jobs:    jobs,
		apps:    apps,
		reviews: &memReviewRepo{users: users},
		notifs:  &memNotifRepo{},
		push:    &memPusher{},
	}

	f.employer, _ = users.Create(context.Background(), user.User{Email: "boss@example.com", IsEmployer: true})
	f.worker, _ = users.Create(context.Background(), user.User{Email: "worker@example.com", IsWorker: true})

	f.job, _ = jobs.Create(context.Background(), job.Job{
		EmployerID:   f.employer.ID,
		Title:        "Night market stall",
		Type:         job.TypeFnB,
		StartDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		DurationDays: 3,
		WorkerQuota:  1,
	})

	a, err := apps.Create(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
	if err := apps.Accept(context.Background(), a.ID, f.job.ID, 1); err != nil {
		t.Fatalf("seed accept: %v", err)
	}
	if err := apps.UpdateStatus(context.Background(), a.ID, application.StatusAccepted, application.StatusCompleted); err != nil {
		t.Fatalf("seed complete: %v", err)
	}

	f.uc = NewReviewUsecase(f.reviews, apps, jobs, f.notifs, f.push, testLogger)
	return f
}

func TestReviews_Create_BothDirections(t *testing.T) {
	f := newReviewFixture(t)

	fromEmployer, err := f.uc.Create(context.Background(), f.employer.ID, ReviewInput{
		JobID:      f.job.ID,
		RevieweeID: f.worker.ID,
		Rating:     5,
		Comment:    "Reliable and fast",
	})
	if err != nil {
		t.Fatalf("employer review: %v", err)
	}
	if fromEmployer.Rating != 5 {
		t.Fatalf("rating = %d, want 5", fromEmployer.Rating)
	}

	if _, err := f.uc.Create(context.Background(), f.worker.ID, ReviewInput{
		JobID:      f.job.ID,
		RevieweeID: f.employer.ID,
		Rating:     4,
	}); err != nil {
		t.Fatalf("worker review: %v", err)
	}

	if len(f.notifs.created) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(f.notifs.created))
	}
}

func TestReviews_Create_RefreshesRatingAggregate(t *testing.T) {
	f := newReviewFixture(t)

	if _, err := f.uc.Create(context.Background(), f.worker.ID, ReviewInput{
		JobID:      f.job.ID,
		RevieweeID: f.employer.ID,
		Rating:     4,
	}); err != nil {
		t.Fatalf("review: %v", err)
	}

	got, err := f.users.GetByID(context.Background(), f.employer.ID)
	if err != nil {
		t.Fatalf("get employer: %v", err)
	}
	if got.RatingCount != 1 {
		t.Fatalf("rating count = %d, want 1", got.RatingCount)
	}
	if got.RatingAvg != 4 {
		t.Fatalf("rating avg = %v, want 4", got.RatingAvg)
	}

	// A second completed job under the same employer lets another worker
	// review them; the aggregate keeps the running mean.
	second, _ := f.users.Create(context.Background(), user.User{Email: "second@example.com", IsWorker: true})
	j, _ := f.jobs.Create(context.Background(), job.Job{
		EmployerID:   f.employer.ID,
		Title:        "Weekend pop-up",
		Type:         job.TypeFnB,
		StartDate:    time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		DurationDays: 2,
		WorkerQuota:  1,
	})
	a, err := f.apps.Create(context.Background(), j.ID, second.ID)
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
	if err := f.apps.Accept(context.Background(), a.ID, j.ID, 1); err != nil {
		t.Fatalf("seed accept: %v", err)
	}
	if err := f.apps.UpdateStatus(context.Background(), a.ID, application.StatusAccepted, application.StatusCompleted); err != nil {
		t.Fatalf("seed complete: %v", err)
	}

	if _, err := f.uc.Create(context.Background(), second.ID, ReviewInput{
		JobID:      j.ID,
		RevieweeID: f.employer.ID,
		Rating:     5,
	}); err != nil {
		t.Fatalf("second review: %v", err)
	}

	got, err = f.users.GetByID(context.Background(), f.employer.ID)
	if err != nil {
		t.Fatalf("get employer: %v", err)
	}
	if got.RatingCount != 2 {
		t.Fatalf("rating count = %d, want 2", got.RatingCount)
	}
	if got.RatingAvg != 4.5 {
		t.Fatalf("rating avg = %v, want 4.5", got.RatingAvg)
	}
}

func TestReviews_Create_Duplicate(t *testing.T) {
	f := newReviewFixture(t)

	in := ReviewInput{JobID: f.job.ID, RevieweeID: f.worker.ID, Rating: 4}
	if _, err := f.uc.Create(context.Background(), f.employer.ID, in); err != nil {
		t.Fatalf("first review: %v", err)
	}

	_, err := f.uc.Create(context.Background(), f.employer.ID, in)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestReviews_Create_Validation(t *testing.T) {
	f := newReviewFixture(t)

	cases := []struct {
		name     string
		reviewer uuid.UUID
		in       ReviewInput
	}{
		{"self review", f.employer.ID, ReviewInput{JobID: f.job.ID, RevieweeID: f.employer.ID, Rating: 3}},
		{"rating too low", f.employer.ID, ReviewInput{JobID: f.job.ID, RevieweeID: f.worker.ID, Rating: 0}},
		{"rating too high", f.employer.ID, ReviewInput{JobID: f.job.ID, RevieweeID: f.worker.ID, Rating: 6}},
		{"comment too long", f.employer.ID, ReviewInput{JobID: f.job.ID, RevieweeID: f.worker.ID, Rating: 3, Comment: strings.Repeat("x", 201)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), tc.reviewer, tc.in)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestReviews_Create_Eligibility(t *testing.T) {
	f := newReviewFixture(t)

	// Neither side of the pair is the job's employer.
	outsider := uuid.New()
	_, err := f.uc.Create(context.Background(), outsider, ReviewInput{
		JobID:      f.job.ID,
		RevieweeID: f.worker.ID,
		Rating:     3,
	})
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible for outsider pair, got %v", err)
	}

	// Worker without a completed application on this job.
	_, err = f.uc.Create(context.Background(), f.employer.ID, ReviewInput{
		JobID:      f.job.ID,
		RevieweeID: uuid.New(),
		Rating:     3,
	})
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible for uninvolved worker, got %v", err)
	}

	// Unknown job.
	_, err = f.uc.Create(context.Background(), f.employer.ID, ReviewInput{
		JobID:      uuid.New(),
		RevieweeID: f.worker.ID,
		Rating:     3,
	})
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible for unknown job, got %v", err)
	}
}

func TestReviews_ListForUser(t *testing.T) {
	f := newReviewFixture(t)

	if _, err := f.uc.Create(context.Background(), f.employer.ID, ReviewInput{
		JobID:      f.job.ID,
		RevieweeID: f.worker.ID,
		Rating:     5,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := f.uc.ListForUser(context.Background(), f.worker.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].RevieweeID != f.worker.ID {
		t.Fatalf("unexpected listing: %+v", got)
	}

	empty, err := f.uc.ListForUser(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no reviews, got %d", len(empty))
	}
}

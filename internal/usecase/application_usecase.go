package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gigboard/internal/domain/application"
	"gigboard/internal/domain/job"
	"gigboard/internal/domain/notification"
	"gigboard/internal/domain/user"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

type ApplicationUsecase interface {
	Apply(ctx context.Context, jobID, workerID uuid.UUID) (application.Application, error)
	Accept(ctx context.Context, applicationID, actorID uuid.UUID) (application.Application, error)
	Reject(ctx context.Context, applicationID, actorID uuid.UUID) (application.Application, error)
	Complete(ctx context.Context, jobID, workerID, actorID uuid.UUID) (application.Application, error)
	ConfirmPaid(ctx context.Context, applicationID, actorID uuid.UUID) error
	Cancel(ctx context.Context, applicationID, actorID uuid.UUID) (application.Application, error)
	ListForJob(ctx context.Context, jobID, actorID uuid.UUID) ([]application.Application, error)
	ListForWorker(ctx context.Context, workerID uuid.UUID) ([]application.Application, error)
}

type Applications struct {
	apps   repository.ApplicationRepository
	jobs   repository.JobRepository
	users  repository.UserRepository
	notifs repository.NotificationRepository
	cache  ListingCache
	push   Pusher
	logger *log.Logger
	now    func() time.Time
}

func NewApplicationUsecase(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	users repository.UserRepository,
	notifs repository.NotificationRepository,
	cache ListingCache,
	push Pusher,
	logger *log.Logger,
) *Applications {
	return &Applications{
		apps:   apps,
		jobs:   jobs,
		users:  users,
		notifs: notifs,
		cache:  cache,
		push:   push,
		logger: logger,
		now:    time.Now,
	}
}

// Apply creates a pending application. Quota is deliberately not checked
// here beyond the derived status: workers may apply past the quota while
// the job is open, and only acceptance consumes slots.
func (u *Applications) Apply(ctx context.Context, jobID, workerID uuid.UUID) (application.Application, error) {
	actor, err := u.users.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return application.Application{}, ErrForbidden
		}
		return application.Application{}, ErrInternal
	}
	if !actor.HasRole(user.RoleWorker) {
		return application.Application{}, fmt.Errorf("%w: worker role required", ErrForbidden)
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	counts, err := u.apps.CountsByJob(ctx, jobID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if !job.AcceptsApplications(j, counts, u.now()) {
		return application.Application{}, fmt.Errorf("%w: job no longer accepts applications", ErrConflict)
	}

	a, err := u.apps.Create(ctx, jobID, workerID)
	if err != nil {
		if errors.Is(err, repository.ErrActiveApplicationExists) {
			return application.Application{}, fmt.Errorf("%w: active application already exists", ErrConflict)
		}
		return application.Application{}, ErrInternal
	}

	u.notify(ctx, j.EmployerID, notification.TypeApplication,
		"New application", fmt.Sprintf("A worker applied to %q", j.Title))

	return a, nil
}

// Accept transitions pending -> accepted. The quota check and the status
// write happen atomically in the repository so two racing accepts can
// never jointly exceed the quota.
func (u *Applications) Accept(ctx context.Context, applicationID, actorID uuid.UUID) (application.Application, error) {
	a, j, err := u.ownedApplication(ctx, applicationID, actorID)
	if err != nil {
		return application.Application{}, err
	}
	if a.Status != application.StatusPending {
		return application.Application{}, ErrInvalidState
	}

	if err := u.apps.Accept(ctx, a.ID, j.ID, j.WorkerQuota); err != nil {
		switch {
		case errors.Is(err, repository.ErrQuotaFull):
			return application.Application{}, ErrQuotaExceeded
		case errors.Is(err, repository.ErrWrongStatus):
			return application.Application{}, ErrInvalidState
		case errors.Is(err, repository.ErrJobNotFound):
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	u.invalidateListings(ctx)
	u.notify(ctx, a.WorkerID, notification.TypeApplication,
		"Application accepted", fmt.Sprintf("You were accepted for %q", j.Title))

	a.Status = application.StatusAccepted
	return a, nil
}

func (u *Applications) Reject(ctx context.Context, applicationID, actorID uuid.UUID) (application.Application, error) {
	a, j, err := u.ownedApplication(ctx, applicationID, actorID)
	if err != nil {
		return application.Application{}, err
	}
	if a.Status != application.StatusPending {
		return application.Application{}, ErrInvalidState
	}

	if err := u.apps.UpdateStatus(ctx, a.ID, application.StatusPending, application.StatusRejected); err != nil {
		if errors.Is(err, repository.ErrWrongStatus) {
			return application.Application{}, ErrInvalidState
		}
		return application.Application{}, ErrInternal
	}

	u.notify(ctx, a.WorkerID, notification.TypeApplication,
		"Application rejected", fmt.Sprintf("Your application for %q was rejected", j.Title))

	a.Status = application.StatusRejected
	return a, nil
}

// Complete records finished work for the accepted worker on the job.
func (u *Applications) Complete(ctx context.Context, jobID, workerID, actorID uuid.UUID) (application.Application, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	if j.EmployerID != actorID {
		return application.Application{}, ErrForbidden
	}

	a, err := u.apps.GetByJobAndWorker(ctx, jobID, workerID, application.StatusAccepted)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, fmt.Errorf("%w: no accepted application for worker", ErrInvalidState)
		}
		return application.Application{}, ErrInternal
	}

	if err := u.apps.UpdateStatus(ctx, a.ID, application.StatusAccepted, application.StatusCompleted); err != nil {
		if errors.Is(err, repository.ErrWrongStatus) {
			return application.Application{}, ErrInvalidState
		}
		return application.Application{}, ErrInternal
	}

	u.invalidateListings(ctx)
	u.notify(ctx, a.WorkerID, notification.TypeApplication,
		"Work completed", fmt.Sprintf("Your work on %q was marked completed", j.Title))

	a.Status = application.StatusCompleted
	return a, nil
}

// ConfirmPaid records the worker's payment acknowledgement on a completed
// application. Calling it again is a no-op with the same outcome.
func (u *Applications) ConfirmPaid(ctx context.Context, applicationID, actorID uuid.UUID) error {
	a, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if a.WorkerID != actorID {
		return ErrForbidden
	}

	if err := u.apps.ConfirmPaid(ctx, a.ID); err != nil {
		if errors.Is(err, repository.ErrWrongStatus) {
			return fmt.Errorf("%w: application not completed", ErrInvalidState)
		}
		return ErrInternal
	}
	return nil
}

func (u *Applications) Cancel(ctx context.Context, applicationID, actorID uuid.UUID) (application.Application, error) {
	a, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	if a.WorkerID != actorID {
		return application.Application{}, ErrForbidden
	}
	if !application.CanTransition(a.Status, application.StatusCancelled) {
		return application.Application{}, ErrInvalidState
	}

	if err := u.apps.Cancel(ctx, a.ID); err != nil {
		if errors.Is(err, repository.ErrWrongStatus) {
			return application.Application{}, ErrInvalidState
		}
		return application.Application{}, ErrInternal
	}

	u.invalidateListings(ctx)
	a.Status = application.StatusCancelled
	return a, nil
}

func (u *Applications) ListForJob(ctx context.Context, jobID, actorID uuid.UUID) ([]application.Application, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}
	if j.EmployerID != actorID {
		return nil, ErrForbidden
	}

	apps, err := u.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return apps, nil
}

func (u *Applications) ListForWorker(ctx context.Context, workerID uuid.UUID) ([]application.Application, error) {
	apps, err := u.apps.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, ErrInternal
	}
	return apps, nil
}

func (u *Applications) ownedApplication(ctx context.Context, applicationID, actorID uuid.UUID) (application.Application, job.Job, error) {
	a, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, job.Job{}, ErrNotFound
		}
		return application.Application{}, job.Job{}, ErrInternal
	}

	j, err := u.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, job.Job{}, ErrNotFound
		}
		return application.Application{}, job.Job{}, ErrInternal
	}
	if j.EmployerID != actorID {
		return application.Application{}, job.Job{}, ErrForbidden
	}
	return a, j, nil
}

func (u *Applications) invalidateListings(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateJobListings(ctx); err != nil && u.logger != nil {
		u.logger.Printf("[Applications] listing invalidation failed: %v", err)
	}
}

// notify persists the record and pushes it; both are best effort and never
// fail the triggering operation.
func (u *Applications) notify(ctx context.Context, userID uuid.UUID, typ notification.Type, title, message string) {
	if u.notifs == nil {
		return
	}
	n, err := u.notifs.Create(ctx, notification.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Applications] notification write failed: %v", err)
		}
		return
	}
	if u.push != nil {
		u.push.Push(n)
	}
}

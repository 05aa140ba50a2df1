package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gigboard/internal/domain/job"
	"gigboard/internal/domain/user"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

const listingCacheTTL = 60 * time.Second

type JobInput struct {
	Title        string
	Description  string
	Location     job.Location
	Type         job.Type
	StartDate    time.Time
	DurationDays int
	WorkerQuota  int
	Salary       *int64
}

type JobListParams struct {
	Location string
	Type     string
	Text     string
	Limit    int
	Offset   int
}

// JobView pairs a job with its derived status and application aggregate.
// Status is recomputed on every read; the row never stores it.
type JobView struct {
	Job    job.Job
	Status job.Status
	Counts job.ApplicationCounts
}

type JobUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, in JobInput) (JobView, error)
	Get(ctx context.Context, id uuid.UUID) (JobView, error)
	Update(ctx context.Context, actorID, jobID uuid.UUID, in JobInput) (JobView, error)
	Delete(ctx context.Context, actorID, jobID uuid.UUID) error
	List(ctx context.Context, params JobListParams) ([]JobView, error)
}

type Jobs struct {
	jobs   repository.JobRepository
	apps   repository.ApplicationRepository
	users  repository.UserRepository
	cache  ListingCache
	logger *log.Logger
	now    func() time.Time
}

func NewJobUsecase(
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	users repository.UserRepository,
	cache ListingCache,
	logger *log.Logger,
) *Jobs {
	return &Jobs{jobs: jobs, apps: apps, users: users, cache: cache, logger: logger, now: time.Now}
}

// Create requires the employer role and a completed employer profile.
func (u *Jobs) Create(ctx context.Context, actorID uuid.UUID, in JobInput) (JobView, error) {
	actor, err := u.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return JobView{}, ErrForbidden
		}
		return JobView{}, ErrInternal
	}
	if !actor.HasRole(user.RoleEmployer) {
		return JobView{}, fmt.Errorf("%w: employer role required", ErrForbidden)
	}

	hasProfile, err := u.users.HasEmployerProfile(ctx, actorID)
	if err != nil {
		return JobView{}, ErrInternal
	}
	if !hasProfile {
		return JobView{}, fmt.Errorf("%w: employer profile required", ErrForbidden)
	}

	if err := validateJobInput(in); err != nil {
		return JobView{}, err
	}

	created, err := u.jobs.Create(ctx, job.Job{
		EmployerID:   actorID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Location:     in.Location,
		Type:         in.Type,
		StartDate:    in.StartDate,
		DurationDays: in.DurationDays,
		WorkerQuota:  in.WorkerQuota,
		Salary:       in.Salary,
	})
	if err != nil {
		return JobView{}, ErrInternal
	}

	u.invalidateListings(ctx)
	return JobView{Job: created, Status: job.StatusOpen}, nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (JobView, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return JobView{}, ErrNotFound
		}
		return JobView{}, ErrInternal
	}
	return u.view(ctx, j)
}

func (u *Jobs) Update(ctx context.Context, actorID, jobID uuid.UUID, in JobInput) (JobView, error) {
	j, err := u.ownedJob(ctx, actorID, jobID)
	if err != nil {
		return JobView{}, err
	}

	if err := validateJobInput(in); err != nil {
		return JobView{}, err
	}

	j.Title = strings.TrimSpace(in.Title)
	j.Description = in.Description
	j.Location = in.Location
	j.Type = in.Type
	j.StartDate = in.StartDate
	j.DurationDays = in.DurationDays
	j.WorkerQuota = in.WorkerQuota
	j.Salary = in.Salary

	if err := u.jobs.Update(ctx, j); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return JobView{}, ErrNotFound
		}
		return JobView{}, ErrInternal
	}

	u.invalidateListings(ctx)
	return u.view(ctx, j)
}

// Delete is a hard removal: the job disappears from every listing while
// its applications stay behind for worker history.
func (u *Jobs) Delete(ctx context.Context, actorID, jobID uuid.UUID) error {
	if _, err := u.ownedJob(ctx, actorID, jobID); err != nil {
		return err
	}

	if err := u.jobs.Delete(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	u.invalidateListings(ctx)
	return nil
}

func (u *Jobs) List(ctx context.Context, params JobListParams) ([]JobView, error) {
	if params.Type != "" && !job.Type(params.Type).Valid() {
		return nil, fmt.Errorf("%w: unknown job type", ErrValidation)
	}
	if params.Limit < 0 || params.Offset < 0 {
		return nil, ErrValidation
	}

	key := listingCacheKey(params)
	if u.cache != nil {
		var cached []JobView
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Jobs] cache HIT: %s", key)
			}
			return cached, nil
		}
	}

	jobs, err := u.jobs.List(ctx, repository.JobListFilter{
		Location: params.Location,
		Type:     job.Type(params.Type),
		Text:     params.Text,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		return nil, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	counts, err := u.apps.CountsByJobIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	now := u.now()
	out := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		c := counts[j.ID]
		out = append(out, JobView{Job: j, Status: job.DeriveStatus(j, c, now), Counts: c})
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, listingCacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("[Jobs] cache write failed: %v", err)
		}
	}
	return out, nil
}

func (u *Jobs) view(ctx context.Context, j job.Job) (JobView, error) {
	counts, err := u.apps.CountsByJob(ctx, j.ID)
	if err != nil {
		return JobView{}, ErrInternal
	}
	return JobView{Job: j, Status: job.DeriveStatus(j, counts, u.now()), Counts: counts}, nil
}

func (u *Jobs) ownedJob(ctx context.Context, actorID, jobID uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	if j.EmployerID != actorID {
		return job.Job{}, ErrForbidden
	}
	return j, nil
}

func (u *Jobs) invalidateListings(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateJobListings(ctx); err != nil && u.logger != nil {
		u.logger.Printf("[Jobs] listing invalidation failed: %v", err)
	}
}

func validateJobInput(in JobInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown job type", ErrValidation)
	}
	if in.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrValidation)
	}
	if in.DurationDays < 1 {
		return fmt.Errorf("%w: duration must be at least one day", ErrValidation)
	}
	if in.WorkerQuota < 1 {
		return fmt.Errorf("%w: worker quota must be at least one", ErrValidation)
	}
	if in.Salary != nil && *in.Salary < 0 {
		return fmt.Errorf("%w: salary cannot be negative", ErrValidation)
	}
	return nil
}

func listingCacheKey(params JobListParams) string {
	return fmt.Sprintf("jobs:list:loc=%s:type=%s:q=%s:limit=%d:offset=%d",
		strings.ToLower(strings.TrimSpace(params.Location)),
		params.Type,
		strings.ToLower(strings.TrimSpace(params.Text)),
		params.Limit, params.Offset,
	)
}

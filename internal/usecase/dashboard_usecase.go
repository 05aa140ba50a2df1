package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"gigboard/internal/domain/application"
	"gigboard/internal/domain/job"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

// WorkerApplicationEntry is one row of the worker dashboard: the
// application joined with its job. Rows whose job was deleted are dropped
// by the join, never surfaced as an error.
type WorkerApplicationEntry struct {
	Application application.Application
	Job         job.Job
	JobStatus   job.Status
}

type WorkerDashboard struct {
	Active         []WorkerApplicationEntry
	History        []WorkerApplicationEntry
	Calendar       map[string][]WorkerApplicationEntry // keyed by YYYY-MM of job start
	PendingCount   int
	AcceptedCount  int
	CompletedCount int
}

type EmployerJobEntry struct {
	Job    job.Job
	Status job.Status
	Counts job.ApplicationCounts
}

type EmployerDashboard struct {
	Jobs           []EmployerJobEntry
	TotalPending   int
	TotalAccepted  int
	TotalCompleted int
}

type DashboardUsecase interface {
	ForWorker(ctx context.Context, workerID uuid.UUID) (WorkerDashboard, error)
	ForEmployer(ctx context.Context, employerID uuid.UUID) (EmployerDashboard, error)
}

type Dashboards struct {
	apps   repository.ApplicationRepository
	jobs   repository.JobRepository
	logger *log.Logger
	now    func() time.Time
}

func NewDashboardUsecase(apps repository.ApplicationRepository, jobs repository.JobRepository, logger *log.Logger) *Dashboards {
	return &Dashboards{apps: apps, jobs: jobs, logger: logger, now: time.Now}
}

func (u *Dashboards) ForWorker(ctx context.Context, workerID uuid.UUID) (WorkerDashboard, error) {
	apps, err := u.apps.ListByWorker(ctx, workerID)
	if err != nil {
		return WorkerDashboard{}, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.JobID)
	}
	jobsByID, err := u.jobs.GetByIDs(ctx, ids)
	if err != nil {
		return WorkerDashboard{}, ErrInternal
	}

	countsByJob, err := u.apps.CountsByJobIDs(ctx, ids)
	if err != nil {
		return WorkerDashboard{}, ErrInternal
	}

	now := u.now()
	d := WorkerDashboard{
		Active:   make([]WorkerApplicationEntry, 0),
		History:  make([]WorkerApplicationEntry, 0),
		Calendar: make(map[string][]WorkerApplicationEntry),
	}
	dropped := 0
	for _, a := range apps {
		switch a.Status {
		case application.StatusPending:
			d.PendingCount++
		case application.StatusAccepted:
			d.AcceptedCount++
		case application.StatusCompleted:
			d.CompletedCount++
		}

		j, ok := jobsByID[a.JobID]
		if !ok {
			// job deleted after the application was made
			dropped++
			continue
		}
		entry := WorkerApplicationEntry{
			Application: a,
			Job:         j,
			JobStatus:   job.DeriveStatus(j, countsByJob[j.ID], now),
		}

		if a.Status.Terminal() {
			d.History = append(d.History, entry)
		} else {
			d.Active = append(d.Active, entry)
		}
		if a.Status == application.StatusAccepted || a.Status == application.StatusCompleted {
			month := j.StartDate.Format("2006-01")
			d.Calendar[month] = append(d.Calendar[month], entry)
		}
	}
	if dropped > 0 && u.logger != nil {
		u.logger.Printf("[Dashboard] worker=%s skipped %d applications with missing jobs", workerID, dropped)
	}

	for _, entries := range d.Calendar {
		sort.Slice(entries, func(i, k int) bool {
			return entries[i].Job.StartDate.Before(entries[k].Job.StartDate)
		})
	}
	return d, nil
}

func (u *Dashboards) ForEmployer(ctx context.Context, employerID uuid.UUID) (EmployerDashboard, error) {
	jobs, err := u.jobs.ListByEmployer(ctx, employerID)
	if err != nil {
		return EmployerDashboard{}, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	counts, err := u.apps.CountsByJobIDs(ctx, ids)
	if err != nil {
		return EmployerDashboard{}, ErrInternal
	}

	now := u.now()
	d := EmployerDashboard{Jobs: make([]EmployerJobEntry, 0, len(jobs))}
	for _, j := range jobs {
		c := counts[j.ID]
		d.Jobs = append(d.Jobs, EmployerJobEntry{
			Job:    j,
			Status: job.DeriveStatus(j, c, now),
			Counts: c,
		})
		d.TotalPending += c.Pending
		d.TotalAccepted += c.Accepted
		d.TotalCompleted += c.Completed
	}
	return d, nil
}

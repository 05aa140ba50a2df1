package repository

import (
	"context"
	"errors"

	"gigboard/internal/database"
	"gigboard/internal/domain/application"
	"gigboard/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrApplicationNotFound     = errors.New("application not found")
	ErrActiveApplicationExists = errors.New("active application already exists")
	ErrQuotaFull               = errors.New("accepted quota already met")
	ErrWrongStatus             = errors.New("application not in required status")
)

type ApplicationRepository interface {
	Create(ctx context.Context, jobID, workerID uuid.UUID) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	GetByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID, status application.Status) (application.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	ListByWorker(ctx context.Context, workerID uuid.UUID) ([]application.Application, error)
	CountsByJob(ctx context.Context, jobID uuid.UUID) (job.ApplicationCounts, error)
	CountsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]job.ApplicationCounts, error)

	Accept(ctx context.Context, id, jobID uuid.UUID, quota int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) error
	Cancel(ctx context.Context, id uuid.UUID) error
	ConfirmPaid(ctx context.Context, id uuid.UUID) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const selectApplication = `SELECT id, job_id, worker_id, status, paid_confirmed, applied_at, updated_at
	FROM applications`

// Create relies on the partial unique index over live (pending or
// accepted) (job_id, worker_id) pairs: of two concurrent applies, exactly
// one insert commits and the other surfaces as ErrActiveApplicationExists.
// Rejected, completed and cancelled rows do not hold the slot.
func (r *PostgresApplicationRepository) Create(ctx context.Context, jobID, workerID uuid.UUID) (application.Application, error) {
	a := application.Application{JobID: jobID, WorkerID: workerID, Status: application.StatusPending}
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (job_id, worker_id, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING id, applied_at, updated_at`,
		jobID, workerID,
	)
	if err := row.Scan(&a.ID, &a.AppliedAt, &a.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return application.Application{}, ErrActiveApplicationExists
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, selectApplication+` WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) GetByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID, status application.Status) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		selectApplication+` WHERE job_id = $1 AND worker_id = $2 AND status = $3`,
		jobID, workerID, string(status),
	)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return r.queryApplications(ctx, selectApplication+` WHERE job_id = $1 ORDER BY applied_at ASC`, jobID)
}

func (r *PostgresApplicationRepository) ListByWorker(ctx context.Context, workerID uuid.UUID) ([]application.Application, error) {
	return r.queryApplications(ctx, selectApplication+` WHERE worker_id = $1 ORDER BY applied_at DESC`, workerID)
}

func (r *PostgresApplicationRepository) CountsByJob(ctx context.Context, jobID uuid.UUID) (job.ApplicationCounts, error) {
	var c job.ApplicationCounts
	row := r.db.QueryRow(ctx,
		`SELECT
			count(*) FILTER (WHERE status = 'pending'),
			count(*) FILTER (WHERE status = 'accepted'),
			count(*) FILTER (WHERE status = 'completed')
		 FROM applications WHERE job_id = $1`,
		jobID,
	)
	if err := row.Scan(&c.Pending, &c.Accepted, &c.Completed); err != nil {
		return job.ApplicationCounts{}, err
	}
	return c, nil
}

func (r *PostgresApplicationRepository) CountsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]job.ApplicationCounts, error) {
	out := make(map[uuid.UUID]job.ApplicationCounts, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id,
			count(*) FILTER (WHERE status = 'pending'),
			count(*) FILTER (WHERE status = 'accepted'),
			count(*) FILTER (WHERE status = 'completed')
		 FROM applications WHERE job_id = ANY($1)
		 GROUP BY job_id`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var c job.ApplicationCounts
		if err := rows.Scan(&id, &c.Pending, &c.Accepted, &c.Completed); err != nil {
			return nil, err
		}
		out[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Accept moves one pending application to accepted without ever letting the
// accepted count pass the quota. The job row is locked first so the count
// and the status write are atomic against a concurrent accept on the same
// job (two racing accepts serialize on the row lock; the loser recounts and
// fails with ErrQuotaFull if the winner filled the last slot).
func (r *PostgresApplicationRepository) Accept(ctx context.Context, id, jobID uuid.UUID, quota int) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var locked uuid.UUID
		row := tx.QueryRow(ctx, `SELECT id FROM jobs WHERE id = $1 FOR UPDATE`, jobID)
		if err := row.Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrJobNotFound
			}
			return err
		}

		var accepted int
		row = tx.QueryRow(ctx,
			`SELECT count(*) FROM applications WHERE job_id = $1 AND status = 'accepted'`,
			jobID,
		)
		if err := row.Scan(&accepted); err != nil {
			return err
		}
		if accepted >= quota {
			return ErrQuotaFull
		}

		n, err := tx.Exec(ctx,
			`UPDATE applications SET status = 'accepted', updated_at = now()
			 WHERE id = $1 AND status = 'pending'`,
			id,
		)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrWrongStatus
		}
		return nil
	})
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWrongStatus
	}
	return nil
}

func (r *PostgresApplicationRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET status = 'cancelled', updated_at = now()
		 WHERE id = $1 AND status IN ('pending', 'accepted')`,
		id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWrongStatus
	}
	return nil
}

// ConfirmPaid is idempotent: re-running it on an already confirmed
// completed application matches the same row and changes nothing.
func (r *PostgresApplicationRepository) ConfirmPaid(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET paid_confirmed = TRUE, updated_at = now()
		 WHERE id = $1 AND status = 'completed'`,
		id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWrongStatus
	}
	return nil
}

func (r *PostgresApplicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		var status string
		if err := rows.Scan(&a.ID, &a.JobID, &a.WorkerID, &status, &a.PaidConfirmed, &a.AppliedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	err := row.Scan(&a.ID, &a.JobID, &a.WorkerID, &status, &a.PaidConfirmed, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}

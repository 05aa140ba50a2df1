package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gigboard/internal/database"
	"gigboard/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type JobListFilter struct {
	Location string
	Type     job.Type
	Text     string
	Limit    int
	Offset   int
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]job.Job, error)
	Update(ctx context.Context, j job.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f JobListFilter) ([]job.Job, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const selectJob = `SELECT id, employer_id, title, description, province, city, ward, address,
	job_type, start_date, duration_days, worker_quota, salary, created_at, updated_at
	FROM jobs`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (employer_id, title, description, province, city, ward, address,
			job_type, start_date, duration_days, worker_quota, salary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		j.EmployerID, j.Title, j.Description,
		j.Location.Province, j.Location.City, j.Location.Ward, j.Location.Address,
		string(j.Type), j.StartDate, j.DurationDays, j.WorkerQuota, j.Salary,
	)
	if err := row.Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, selectJob+` WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]job.Job, error) {
	out := make(map[uuid.UUID]job.Job, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, selectJob+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out[j.ID] = j
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET title = $2, description = $3, province = $4, city = $5, ward = $6, address = $7,
		     job_type = $8, start_date = $9, duration_days = $10, worker_quota = $11,
		     salary = $12, updated_at = now()
		 WHERE id = $1`,
		j.ID, j.Title, j.Description,
		j.Location.Province, j.Location.City, j.Location.Ward, j.Location.Address,
		string(j.Type), j.StartDate, j.DurationDays, j.WorkerQuota, j.Salary,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobListFilter) ([]job.Job, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	conds := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if loc := strings.TrimSpace(f.Location); loc != "" {
		args = append(args, "%"+escapeLike(loc)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(province ILIKE $%d OR city ILIKE $%d OR ward ILIKE $%d OR address ILIKE $%d)`,
			n, n, n, n,
		))
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		conds = append(conds, fmt.Sprintf(`job_type = $%d`, len(args)))
	}
	if text := strings.TrimSpace(f.Text); text != "" {
		args = append(args, "%"+escapeLike(text)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(title ILIKE $%d OR EXISTS(
				SELECT 1 FROM employer_profiles ep
				WHERE ep.user_id = jobs.employer_id AND ep.company_name ILIKE $%d))`,
			n, n,
		))
	}

	query := selectJob
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))
	args = append(args, offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	return r.queryJobs(ctx, query, args...)
}

// escapeLike neutralizes LIKE wildcards in user-supplied filter text so a
// search for "100%" matches the literal string, not every row.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *PostgresJobRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Job, error) {
	return r.queryJobs(ctx, selectJob+` WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type jobRow interface {
	Scan(dest ...any) error
}

func scanJob(row jobRow) (job.Job, error) {
	var j job.Job
	var typ string
	err := row.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description,
		&j.Location.Province, &j.Location.City, &j.Location.Ward, &j.Location.Address,
		&typ, &j.StartDate, &j.DurationDays, &j.WorkerQuota, &j.Salary,
		&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return job.Job{}, err
	}
	j.Type = job.Type(typ)
	return j, nil
}

package repository

import (
	"context"
	"errors"

	"gigboard/internal/database"
	"gigboard/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrProfileNotFound = errors.New("profile not found")
)

type UserRepository interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Update(ctx context.Context, u user.User) error

	GetWorkerProfile(ctx context.Context, userID uuid.UUID) (user.WorkerProfile, error)
	UpsertWorkerProfile(ctx context.Context, p user.WorkerProfile) error
	GetEmployerProfile(ctx context.Context, userID uuid.UUID) (user.EmployerProfile, error)
	UpsertEmployerProfile(ctx context.Context, p user.EmployerProfile) error
	HasEmployerProfile(ctx context.Context, userID uuid.UUID) (bool, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, is_worker, is_employer)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.PasswordHash, u.IsWorker, u.IsEmployer,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, selectUser+` WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, selectUser+` WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users
		 SET email = $2, password_hash = $3, is_worker = $4, is_employer = $5, updated_at = now()
		 WHERE id = $1`,
		u.ID, u.Email, u.PasswordHash, u.IsWorker, u.IsEmployer,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

const selectUser = `SELECT id, email, password_hash, is_worker, is_employer, rating_avg, rating_count, created_at, updated_at FROM users`

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsWorker, &u.IsEmployer,
		&u.RatingAvg, &u.RatingCount, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetWorkerProfile(ctx context.Context, userID uuid.UUID) (user.WorkerProfile, error) {
	var p user.WorkerProfile
	row := r.db.QueryRow(ctx,
		`SELECT user_id, bio, gender, date_of_birth, skills, created_at, updated_at
		 FROM worker_profiles WHERE user_id = $1`,
		userID,
	)
	err := row.Scan(&p.UserID, &p.Bio, &p.Gender, &p.DateOfBirth, &p.Skills, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.WorkerProfile{}, ErrProfileNotFound
		}
		return user.WorkerProfile{}, err
	}
	return p, nil
}

func (r *PostgresUserRepository) UpsertWorkerProfile(ctx context.Context, p user.WorkerProfile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO worker_profiles (user_id, bio, gender, date_of_birth, skills)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE
		 SET bio = EXCLUDED.bio, gender = EXCLUDED.gender,
		     date_of_birth = EXCLUDED.date_of_birth, skills = EXCLUDED.skills,
		     updated_at = now()`,
		p.UserID, p.Bio, p.Gender, p.DateOfBirth, p.Skills,
	)
	return err
}

func (r *PostgresUserRepository) GetEmployerProfile(ctx context.Context, userID uuid.UUID) (user.EmployerProfile, error) {
	var p user.EmployerProfile
	row := r.db.QueryRow(ctx,
		`SELECT user_id, company_name, company_address, created_at, updated_at
		 FROM employer_profiles WHERE user_id = $1`,
		userID,
	)
	err := row.Scan(&p.UserID, &p.CompanyName, &p.CompanyAddress, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.EmployerProfile{}, ErrProfileNotFound
		}
		return user.EmployerProfile{}, err
	}
	return p, nil
}

func (r *PostgresUserRepository) UpsertEmployerProfile(ctx context.Context, p user.EmployerProfile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO employer_profiles (user_id, company_name, company_address)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET company_name = EXCLUDED.company_name,
		     company_address = EXCLUDED.company_address,
		     updated_at = now()`,
		p.UserID, p.CompanyName, p.CompanyAddress,
	)
	return err
}

func (r *PostgresUserRepository) HasEmployerProfile(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employer_profiles WHERE user_id = $1)`, userID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

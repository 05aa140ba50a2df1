package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"gigboard/internal/domain/user"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

type WorkerProfileInput struct {
	Bio         *string
	Gender      *string
	DateOfBirth *time.Time
	Skills      []string
}

type EmployerProfileInput struct {
	CompanyName    string
	CompanyAddress *string
}

type UpdateMeInput struct {
	Email      *string
	IsWorker   *bool
	IsEmployer *bool
}

// Me is the combined profile view: one shell, role-dependent halves.
type Me struct {
	User            user.User
	WorkerProfile   *user.WorkerProfile
	EmployerProfile *user.EmployerProfile
}

type ProfileUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (Me, error)
	GetUser(ctx context.Context, userID uuid.UUID) (Me, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (Me, error)
	UpsertWorkerProfile(ctx context.Context, userID uuid.UUID, in WorkerProfileInput) (user.WorkerProfile, error)
	UpsertEmployerProfile(ctx context.Context, userID uuid.UUID, in EmployerProfileInput) (user.EmployerProfile, error)
}

type Profiles struct {
	users repository.UserRepository
}

func NewProfileUsecase(users repository.UserRepository) *Profiles {
	return &Profiles{users: users}
}

func (u *Profiles) GetMe(ctx context.Context, userID uuid.UUID) (Me, error) {
	return u.GetUser(ctx, userID)
}

func (u *Profiles) GetUser(ctx context.Context, userID uuid.UUID) (Me, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Me{}, ErrNotFound
		}
		return Me{}, ErrInternal
	}

	me := Me{User: sanitizeUser(usr)}

	if usr.IsWorker {
		if wp, err := u.users.GetWorkerProfile(ctx, userID); err == nil {
			me.WorkerProfile = &wp
		} else if !errors.Is(err, repository.ErrProfileNotFound) {
			return Me{}, ErrInternal
		}
	}
	if usr.IsEmployer {
		if ep, err := u.users.GetEmployerProfile(ctx, userID); err == nil {
			me.EmployerProfile = &ep
		} else if !errors.Is(err, repository.ErrProfileNotFound) {
			return Me{}, ErrInternal
		}
	}
	return me, nil
}

func (u *Profiles) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (Me, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Me{}, ErrNotFound
		}
		return Me{}, ErrInternal
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return Me{}, ErrValidation
		}
		usr.Email = email
	}
	if in.IsWorker != nil {
		usr.IsWorker = *in.IsWorker
	}
	if in.IsEmployer != nil {
		usr.IsEmployer = *in.IsEmployer
	}
	// Roles can be widened or narrowed, but never both dropped.
	if !usr.IsWorker && !usr.IsEmployer {
		return Me{}, ErrValidation
	}

	if err := u.users.Update(ctx, usr); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return Me{}, ErrConflict
		}
		return Me{}, ErrInternal
	}
	return u.GetUser(ctx, userID)
}

func (u *Profiles) UpsertWorkerProfile(ctx context.Context, userID uuid.UUID, in WorkerProfileInput) (user.WorkerProfile, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return user.WorkerProfile{}, ErrInternal
	}
	if !usr.HasRole(user.RoleWorker) {
		return user.WorkerProfile{}, ErrForbidden
	}

	skills := make([]string, 0, len(in.Skills))
	seen := map[string]struct{}{}
	for _, s := range in.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(s)]; dup {
			continue
		}
		seen[strings.ToLower(s)] = struct{}{}
		skills = append(skills, s)
	}

	p := user.WorkerProfile{
		UserID:      userID,
		Bio:         in.Bio,
		Gender:      in.Gender,
		DateOfBirth: in.DateOfBirth,
		Skills:      skills,
	}
	if err := u.users.UpsertWorkerProfile(ctx, p); err != nil {
		return user.WorkerProfile{}, ErrInternal
	}
	return p, nil
}

func (u *Profiles) UpsertEmployerProfile(ctx context.Context, userID uuid.UUID, in EmployerProfileInput) (user.EmployerProfile, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return user.EmployerProfile{}, ErrInternal
	}
	if !usr.HasRole(user.RoleEmployer) {
		return user.EmployerProfile{}, ErrForbidden
	}

	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return user.EmployerProfile{}, ErrValidation
	}

	p := user.EmployerProfile{
		UserID:         userID,
		CompanyName:    name,
		CompanyAddress: in.CompanyAddress,
	}
	if err := u.users.UpsertEmployerProfile(ctx, p); err != nil {
		return user.EmployerProfile{}, ErrInternal
	}
	return p, nil
}

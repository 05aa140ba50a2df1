package dto

import (
	"time"

	"gigboard/internal/domain/user"
	"gigboard/internal/usecase"
)

type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	IsWorker    bool     `json:"is_worker"`
	IsEmployer  bool     `json:"is_employer"`
	Roles       []string `json:"roles"`
	RatingAvg   float64  `json:"rating_avg"`
	RatingCount int      `json:"rating_count"`
	CreatedAt   string   `json:"created_at"`
}

type WorkerProfileResponse struct {
	Bio         *string  `json:"bio"`
	Gender      *string  `json:"gender"`
	DateOfBirth *string  `json:"date_of_birth"`
	Skills      []string `json:"skills"`
}

type EmployerProfileResponse struct {
	CompanyName    string  `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
}

type MeResponse struct {
	User            UserResponse             `json:"user"`
	WorkerProfile   *WorkerProfileResponse   `json:"worker_profile,omitempty"`
	EmployerProfile *EmployerProfileResponse `json:"employer_profile,omitempty"`
}

func NewUserResponse(u user.User) UserResponse {
	roles := make([]string, 0, 2)
	for _, r := range u.Roles() {
		roles = append(roles, string(r))
	}
	return UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		IsWorker:    u.IsWorker,
		IsEmployer:  u.IsEmployer,
		Roles:       roles,
		RatingAvg:   u.RatingAvg,
		RatingCount: u.RatingCount,
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewWorkerProfileResponse(p user.WorkerProfile) WorkerProfileResponse {
	var dob *string
	if p.DateOfBirth != nil {
		s := p.DateOfBirth.Format("2006-01-02")
		dob = &s
	}
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return WorkerProfileResponse{
		Bio:         p.Bio,
		Gender:      p.Gender,
		DateOfBirth: dob,
		Skills:      skills,
	}
}

func NewEmployerProfileResponse(p user.EmployerProfile) EmployerProfileResponse {
	return EmployerProfileResponse{
		CompanyName:    p.CompanyName,
		CompanyAddress: p.CompanyAddress,
	}
}

func NewMeResponse(me usecase.Me) MeResponse {
	out := MeResponse{User: NewUserResponse(me.User)}
	if me.WorkerProfile != nil {
		wp := NewWorkerProfileResponse(*me.WorkerProfile)
		out.WorkerProfile = &wp
	}
	if me.EmployerProfile != nil {
		ep := NewEmployerProfileResponse(*me.EmployerProfile)
		out.EmployerProfile = &ep
	}
	return out
}

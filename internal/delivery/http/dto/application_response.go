package dto

import (
	"time"

	"gigboard/internal/domain/application"
)

type ApplicationResponse struct {
	ID            string `json:"id"`
	JobID         string `json:"job_id"`
	WorkerID      string `json:"worker_id"`
	Status        string `json:"status"`
	PaidConfirmed bool   `json:"paid_confirmed"`
	AppliedAt     string `json:"applied_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:            a.ID.String(),
		JobID:         a.JobID.String(),
		WorkerID:      a.WorkerID.String(),
		Status:        string(a.Status),
		PaidConfirmed: a.PaidConfirmed,
		AppliedAt:     a.AppliedAt.UTC().Format(time.RFC3339),
	}
}

func NewApplicationListResponse(apps []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}

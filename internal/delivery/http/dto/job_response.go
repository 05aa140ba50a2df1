package dto

import (
	"time"

	"gigboard/internal/usecase"
)

type LocationResponse struct {
	Province string `json:"province"`
	City     string `json:"city"`
	Ward     string `json:"ward"`
	Address  string `json:"address"`
}

type JobResponse struct {
	ID             string           `json:"id"`
	EmployerID     string           `json:"employer_id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Location       LocationResponse `json:"location"`
	Type           string           `json:"type"`
	StartDate      string           `json:"start_date"`
	DurationDays   int              `json:"duration_days"`
	WorkerQuota    int              `json:"worker_quota"`
	Salary         *int64           `json:"salary,omitempty"`
	Status         string           `json:"status"`
	PendingCount   int              `json:"pending_count"`
	AcceptedCount  int              `json:"accepted_count"`
	CompletedCount int              `json:"completed_count"`
	CreatedAt      string           `json:"created_at"`
}

func NewJobResponse(v usecase.JobView) JobResponse {
	return JobResponse{
		ID:         v.Job.ID.String(),
		EmployerID: v.Job.EmployerID.String(),
		Title:      v.Job.Title,
		Description: v.Job.Description,
		Location: LocationResponse{
			Province: v.Job.Location.Province,
			City:     v.Job.Location.City,
			Ward:     v.Job.Location.Ward,
			Address:  v.Job.Location.Address,
		},
		Type:           string(v.Job.Type),
		StartDate:      v.Job.StartDate.Format("2006-01-02"),
		DurationDays:   v.Job.DurationDays,
		WorkerQuota:    v.Job.WorkerQuota,
		Salary:         v.Job.Salary,
		Status:         string(v.Status),
		PendingCount:   v.Counts.Pending,
		AcceptedCount:  v.Counts.Accepted,
		CompletedCount: v.Counts.Completed,
		CreatedAt:      v.Job.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewJobListResponse(views []usecase.JobView) []JobResponse {
	out := make([]JobResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewJobResponse(v))
	}
	return out
}

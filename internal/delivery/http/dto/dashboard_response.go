package dto

import "gigboard/internal/usecase"

type WorkerApplicationEntryResponse struct {
	Application ApplicationResponse `json:"application"`
	Job         JobResponse         `json:"job"`
}

type WorkerDashboardResponse struct {
	Active         []WorkerApplicationEntryResponse            `json:"active"`
	History        []WorkerApplicationEntryResponse            `json:"history"`
	Calendar       map[string][]WorkerApplicationEntryResponse `json:"calendar"`
	PendingCount   int                                         `json:"pending_count"`
	AcceptedCount  int                                         `json:"accepted_count"`
	CompletedCount int                                         `json:"completed_count"`
}

type EmployerJobEntryResponse struct {
	Job JobResponse `json:"job"`
}

type EmployerDashboardResponse struct {
	Jobs           []EmployerJobEntryResponse `json:"jobs"`
	TotalPending   int                        `json:"total_pending"`
	TotalAccepted  int                        `json:"total_accepted"`
	TotalCompleted int                        `json:"total_completed"`
}

func NewWorkerDashboardResponse(d usecase.WorkerDashboard) WorkerDashboardResponse {
	out := WorkerDashboardResponse{
		Active:         workerEntries(d.Active),
		History:        workerEntries(d.History),
		Calendar:       make(map[string][]WorkerApplicationEntryResponse, len(d.Calendar)),
		PendingCount:   d.PendingCount,
		AcceptedCount:  d.AcceptedCount,
		CompletedCount: d.CompletedCount,
	}
	for month, entries := range d.Calendar {
		out.Calendar[month] = workerEntries(entries)
	}
	return out
}

func workerEntries(entries []usecase.WorkerApplicationEntry) []WorkerApplicationEntryResponse {
	out := make([]WorkerApplicationEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, WorkerApplicationEntryResponse{
			Application: NewApplicationResponse(e.Application),
			Job:         NewJobResponse(usecase.JobView{Job: e.Job, Status: e.JobStatus}),
		})
	}
	return out
}

func NewEmployerDashboardResponse(d usecase.EmployerDashboard) EmployerDashboardResponse {
	out := EmployerDashboardResponse{
		Jobs:           make([]EmployerJobEntryResponse, 0, len(d.Jobs)),
		TotalPending:   d.TotalPending,
		TotalAccepted:  d.TotalAccepted,
		TotalCompleted: d.TotalCompleted,
	}
	for _, e := range d.Jobs {
		out.Jobs = append(out.Jobs, EmployerJobEntryResponse{
			Job: NewJobResponse(usecase.JobView{Job: e.Job, Status: e.Status, Counts: e.Counts}),
		})
	}
	return out
}

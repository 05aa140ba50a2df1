package dto

import (
	"time"

	"gigboard/internal/domain/review"
)

type ReviewResponse struct {
	ID         string `json:"id"`
	JobID      string `json:"job_id"`
	ReviewerID string `json:"reviewer_id"`
	RevieweeID string `json:"reviewee_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"created_at"`
}

func NewReviewResponse(r review.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID.String(),
		JobID:      r.JobID.String(),
		ReviewerID: r.ReviewerID.String(),
		RevieweeID: r.RevieweeID.String(),
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewReviewListResponse(reviews []review.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewReviewResponse(r))
	}
	return out
}

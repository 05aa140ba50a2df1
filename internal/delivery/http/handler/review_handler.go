package handler

import (
	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/", h.Create)
}

// RegisterUserRoutes mounts the public review listing under /users.
func (h *ReviewHandler) RegisterUserRoutes(r fiber.Router) {
	r.Get("/:id/reviews", h.ListForUser)
}

type reviewRequest struct {
	JobID      string `json:"job_id"`
	RevieweeID string `json:"reviewee_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

func (h *ReviewHandler) Create(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}
	revieweeID, err := uuid.Parse(req.RevieweeID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid reviewee id", nil, err)
	}

	rev, err := h.uc.Create(c.Context(), uid, usecase.ReviewInput{
		JobID:      jobID,
		RevieweeID: revieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewReviewResponse(rev))
}

func (h *ReviewHandler) ListForUser(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.uc.ListForUser(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewReviewListResponse(reviews))
}

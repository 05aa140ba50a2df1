package handler

import (
	"context"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/domain/application"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// RegisterJobRoutes mounts the routes nested under /jobs.
func (h *ApplicationHandler) RegisterJobRoutes(r fiber.Router) {
	r.Post("/:id/applications", h.Apply, middleware.RequireWorker())
	r.Get("/:id/applications", h.ListForJob, middleware.RequireEmployer())
	r.Post("/:id/complete", h.Complete, middleware.RequireEmployer())
}

// RegisterUserRoutes mounts the worker's own-application listing under /users.
func (h *ApplicationHandler) RegisterUserRoutes(r fiber.Router) {
	r.Get("/me/applications", h.ListForWorker, middleware.RequireWorker())
}

// RegisterRoutes mounts the routes addressed by application id.
func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/:id/accept", h.Accept, middleware.RequireEmployer())
	r.Post("/:id/reject", h.Reject, middleware.RequireEmployer())
	r.Post("/:id/cancel", h.Cancel, middleware.RequireWorker())
	r.Post("/:id/confirm-paid", h.ConfirmPaid, middleware.RequireWorker())
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	a, err := h.uc.Apply(c.Context(), jobID, uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	apps, err := h.uc.ListForJob(c.Context(), jobID, uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(apps))
}

func (h *ApplicationHandler) ListForWorker(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}

	apps, err := h.uc.ListForWorker(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(apps))
}

func (h *ApplicationHandler) Accept(c fiber.Ctx) error {
	return h.transition(c, h.uc.Accept)
}

func (h *ApplicationHandler) Reject(c fiber.Ctx) error {
	return h.transition(c, h.uc.Reject)
}

func (h *ApplicationHandler) Cancel(c fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

type completeRequest struct {
	WorkerID string `json:"worker_id"`
}

func (h *ApplicationHandler) Complete(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req completeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	workerID, err := uuid.Parse(req.WorkerID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid worker id", nil, err)
	}

	a, err := h.uc.Complete(c.Context(), jobID, workerID, uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) ConfirmPaid(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.ConfirmPaid(c.Context(), id, uid); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ApplicationHandler) transition(
	c fiber.Ctx,
	op func(ctx context.Context, applicationID, actorID uuid.UUID) (application.Application, error),
) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	a, err := op(c.Context(), id, uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(a))
}

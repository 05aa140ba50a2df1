package handler

import (
	"strconv"
	"time"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/domain/job"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create, middleware.RequireEmployer())
	r.Patch("/:id", h.Update, middleware.RequireEmployer())
	r.Delete("/:id", h.Delete, middleware.RequireEmployer())
}

type jobRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Province     string `json:"province"`
	City         string `json:"city"`
	Ward         string `json:"ward"`
	Address      string `json:"address"`
	Type         string `json:"type"`
	StartDate    string `json:"start_date"`
	DurationDays int    `json:"duration_days"`
	WorkerQuota  int    `json:"worker_quota"`
	Salary       *int64 `json:"salary"`
}

func (r jobRequest) toInput() (usecase.JobInput, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return usecase.JobInput{}, err
	}
	return usecase.JobInput{
		Title:       r.Title,
		Description: r.Description,
		Location: job.Location{
			Province: r.Province,
			City:     r.City,
			Ward:     r.Ward,
			Address:  r.Address,
		},
		Type:         job.Type(r.Type),
		StartDate:    start,
		DurationDays: r.DurationDays,
		WorkerQuota:  r.WorkerQuota,
		Salary:       r.Salary,
	}, nil
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	views, err := h.uc.List(c.Context(), usecase.JobListParams{
		Location: c.Query("location"),
		Type:     c.Query("type"),
		Text:     c.Query("q"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(views))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	v, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(v))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid start date", nil, err)
	}

	v, err := h.uc.Create(c.Context(), uid, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewJobResponse(v))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid start date", nil, err)
	}

	v, err := h.uc.Update(c.Context(), uid, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(v))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), uid, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

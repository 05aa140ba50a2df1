package handler

import (
	"time"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	profiles  usecase.ProfileUsecase
	dashboard usecase.DashboardUsecase
}

func NewUserHandler(profiles usecase.ProfileUsecase, dashboard usecase.DashboardUsecase) *UserHandler {
	return &UserHandler{profiles: profiles, dashboard: dashboard}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/me", h.GetMe)
	r.Patch("/me", h.UpdateMe)
	r.Put("/me/worker-profile", h.PutWorkerProfile, middleware.RequireWorker())
	r.Put("/me/employer-profile", h.PutEmployerProfile, middleware.RequireEmployer())
	r.Get("/me/dashboard", h.GetDashboard)
	r.Get("/:id", h.GetUser)
}

type updateMeRequest struct {
	Email      *string `json:"email"`
	IsWorker   *bool   `json:"is_worker"`
	IsEmployer *bool   `json:"is_employer"`
}

type workerProfileRequest struct {
	Bio         *string  `json:"bio"`
	Gender      *string  `json:"gender"`
	DateOfBirth *string  `json:"date_of_birth"`
	Skills      []string `json:"skills"`
}

type employerProfileRequest struct {
	CompanyName    string  `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}

	me, err := h.profiles.GetMe(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMeResponse(me))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}

	var req updateMeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	me, err := h.profiles.UpdateMe(c.Context(), uid, usecase.UpdateMeInput{
		Email:      req.Email,
		IsWorker:   req.IsWorker,
		IsEmployer: req.IsEmployer,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMeResponse(me))
}

func (h *UserHandler) GetUser(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	me, err := h.profiles.GetUser(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMeResponse(me))
}

func (h *UserHandler) PutWorkerProfile(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}

	var req workerProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.WorkerProfileInput{Bio: req.Bio, Gender: req.Gender, Skills: req.Skills}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid date of birth", nil, err)
		}
		in.DateOfBirth = &dob
	}

	p, err := h.profiles.UpsertWorkerProfile(c.Context(), uid, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewWorkerProfileResponse(p))
}

func (h *UserHandler) PutEmployerProfile(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}

	var req employerProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.profiles.UpsertEmployerProfile(c.Context(), uid, usecase.EmployerProfileInput{
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployerProfileResponse(p))
}

// GetDashboard serves the role-dependent aggregate view; users holding
// both roles get both halves.
func (h *UserHandler) GetDashboard(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}

	isWorker, _ := c.Locals(middleware.CtxIsWorkerKey).(bool)
	isEmployer, _ := c.Locals(middleware.CtxIsEmployerKey).(bool)

	data := map[string]any{}
	if isWorker {
		d, err := h.dashboard.ForWorker(c.Context(), uid)
		if err != nil {
			return mapUsecaseError(err)
		}
		data["worker"] = dto.NewWorkerDashboardResponse(d)
	}
	if isEmployer {
		d, err := h.dashboard.ForEmployer(c.Context(), uid)
		if err != nil {
			return mapUsecaseError(err)
		}
		data["employer"] = dto.NewEmployerDashboardResponse(d)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

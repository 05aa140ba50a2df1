package handler

import (
	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.List)
	r.Post("/:id/read", h.MarkRead)
	r.Delete("/:id", h.Delete)
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}

	notifs, err := h.uc.ListForUser(c.Context(), uid)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNotificationListResponse(notifs))
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.MarkRead(c.Context(), id, uid); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *NotificationHandler) Delete(c fiber.Ctx) error {
	uid, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id, uid); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

package handler

import (
	"errors"

	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func actorID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func parseUUIDParam(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(key))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}

// mapUsecaseError translates the shared failure taxonomy to HTTP. Handlers
// with operation-specific wording wrap this with their own cases first.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, firstLine(err), nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, firstLine(err), nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, firstLine(err), nil, err)
	case errors.Is(err, usecase.ErrQuotaExceeded):
		return middleware.NewAppError(fiber.StatusConflict, "Worker quota exceeded", nil, err)
	case errors.Is(err, usecase.ErrInvalidState):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, firstLine(err), nil, err)
	case errors.Is(err, usecase.ErrNotEligible):
		return middleware.NewAppError(fiber.StatusForbidden, "Not eligible to review", nil, err)
	case errors.Is(err, usecase.ErrDuplicate):
		return middleware.NewAppError(fiber.StatusConflict, "Already reviewed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func firstLine(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

package middleware

import "github.com/gofiber/fiber/v3"

// Role guards run after AuthMiddleware and check the capability once at
// the boundary; usecases re-verify against stored state before writing.

func RequireWorker() fiber.Handler {
	return requireRole(CtxIsWorkerKey, "Worker role required")
}

func RequireEmployer() fiber.Handler {
	return requireRole(CtxIsEmployerKey, "Employer role required")
}

func requireRole(key, message string) fiber.Handler {
	return func(c fiber.Ctx) error {
		has, ok := c.Locals(key).(bool)
		if !ok || !has {
			return NewAppError(fiber.StatusForbidden, message, nil, nil)
		}
		return c.Next()
	}
}

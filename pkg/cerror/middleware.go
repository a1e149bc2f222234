package cerror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"auth-api/pkg/logger"
)

// Middleware is the fiber ErrorHandler. Every error a route returns is
// logged once here and rendered as {"message": ...}.
func Middleware(ctx *fiber.Ctx, err error) error {
	log := logger.FromContext(ctx.UserContext()).Desugar()

	var cerr *CustomError
	if errors.As(err, &cerr) {
		log.With(cerr.LogFields...).Log(cerr.LogSeverity, cerr.Message)

		message := cerr.Message
		if cerr.HttpStatusCode >= fiber.StatusInternalServerError {
			message = MessageInternalServerError
		}

		return ctx.
			Status(cerr.HttpStatusCode).
			JSON(&Response{Message: message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		log.Warn(fiberErr.Message, zap.Int("status", fiberErr.Code))
		return ctx.
			Status(fiberErr.Code).
			JSON(&Response{Message: fiberErr.Message})
	}

	log.Error("unhandled error", zap.Error(err))
	return ctx.
		Status(fiber.StatusInternalServerError).
		JSON(&Response{Message: MessageInternalServerError})
}

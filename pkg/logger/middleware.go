package logger

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type contextKey string

const (
	ContextKey                = contextKey("logger")
	EventFinishedSuccessfully = "event successfully finished"
)

// Middleware puts a request-scoped logger into both fiber Locals and the
// user context. It expects the requestid middleware to run first.
func Middleware(logger *zap.SugaredLogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		log := logger.With(
			zap.String("requestId", ctx.GetRespHeader(fiber.HeaderXRequestID)),
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
		)

		ctx.Locals(ContextKey, log)
		ctx.SetUserContext(InjectContext(ctx.UserContext(), log))
		return ctx.Next()
	}
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	logger, isOk := ctx.Value(ContextKey).(*zap.SugaredLogger)
	if !isOk {
		l, _ := zap.NewProduction()
		logger = l.Sugar()
	}

	return logger
}

func InjectContext(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ContextKey, log)
}

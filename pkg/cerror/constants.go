package cerror

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zapcore"
)

const MessageInternalServerError = "Internal server error"

var (
	ErrorValidation = &CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Message:        "All fields are required and must be valid",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorBadRequest = &CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Message:        "Malformed request body",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorConflict = &CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Message:        "User already exists",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorInvalidCredentials = &CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Message:        "Invalid email or password",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorUnauthenticated = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Message:        "No refresh token provided",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorInvalidToken = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Message:        "Invalid refresh token",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorMissingAccessToken = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Message:        "Unauthorized - No access token provided",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorInvalidAccessToken = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Message:        "Unauthorized - Invalid access token",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorUserNotFound = &CustomError{
		HttpStatusCode: fiber.StatusNotFound,
		Message:        "User not found",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorStoreUnavailable = &CustomError{
		HttpStatusCode: fiber.StatusInternalServerError,
		Message:        "Storage is unavailable",
		LogSeverity:    zapcore.ErrorLevel,
	}

	ErrorGenerateToken = &CustomError{
		HttpStatusCode: fiber.StatusInternalServerError,
		Message:        "error occurred while generate token",
		LogSeverity:    zapcore.ErrorLevel,
	}
)

package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"auth-api/pkg/cerror"
	"auth-api/pkg/jwt_generator"
	"auth-api/pkg/session_cookie"
)

const LocalsUserKey = "user"

// NewAuthMiddleware guards routes with the access token cookie and attaches
// the caller's user document to Locals.
func NewAuthMiddleware(jwtGenerator jwt_generator.JwtGenerator, userRepository Repository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		accessToken := ctx.Cookies(session_cookie.AccessTokenCookieName)
		if accessToken == "" {
			return cerror.ErrorMissingAccessToken
		}

		claims, err := jwtGenerator.VerifyAccessToken(accessToken)
		if err != nil {
			return cerror.ErrorInvalidAccessToken.WithFields(zap.Error(err))
		}

		userDocument, err := userRepository.FindUserWithId(ctx.UserContext(), claims.UserId)
		if err != nil {
			if errors.Is(err, cerror.ErrorUserNotFound) {
				return cerror.ErrorInvalidAccessToken.WithFields(
					zap.String("userId", claims.UserId),
					zap.String("reason", "user not found"),
				)
			}

			return err
		}

		ctx.Locals(LocalsUserKey, userDocument)
		return ctx.Next()
	}
}

func UserFromLocals(ctx *fiber.Ctx) *UserDocument {
	userDocument, _ := ctx.Locals(LocalsUserKey).(*UserDocument)
	return userDocument
}

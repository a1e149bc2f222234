//go:build unit

package user

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-api/pkg/cerror"
	"auth-api/pkg/jwt_generator"
	"auth-api/pkg/session_cookie"
)

func setupAuthMiddlewareApp(t *testing.T, userRepository Repository) (*fiber.App, jwt_generator.JwtGenerator) {
	t.Helper()

	jwtGenerator, err := jwt_generator.NewJwtGenerator(TestJwtConfig)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: cerror.Middleware,
	})
	app.Get("/protected", NewAuthMiddleware(jwtGenerator, userRepository), func(ctx *fiber.Ctx) error {
		userDocument := UserFromLocals(ctx)
		if userDocument == nil {
			return ctx.SendStatus(fiber.StatusTeapot)
		}

		return ctx.SendString(userDocument.Id)
	})

	return app, jwtGenerator
}

func newProtectedRequest(accessToken string) *http.Request {
	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	if accessToken != "" {
		req.AddCookie(&http.Cookie{Name: session_cookie.AccessTokenCookieName, Value: accessToken})
	}

	return req
}

func TestNewAuthMiddleware(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("happy path should attach user to locals", func(t *testing.T) {
		mockUserRepository := NewMockRepository(mockController)
		app, jwtGenerator := setupAuthMiddlewareApp(t, mockUserRepository)

		accessToken, err := jwtGenerator.GenerateAccessToken(TestUserId)
		require.NoError(t, err)

		mockUserRepository.
			EXPECT().
			FindUserWithId(gomock.Any(), TestUserId).
			Return(testUserDocument(t), nil)

		resp, err := app.Test(newProtectedRequest(accessToken))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("when access cookie is missing should return unauthorized", func(t *testing.T) {
		app, _ := setupAuthMiddlewareApp(t, NewMockRepository(mockController))

		resp, err := app.Test(newProtectedRequest(""))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Unauthorized - No access token provided", readMessage(t, resp))
	})

	t.Run("when access token is malformed should return unauthorized", func(t *testing.T) {
		app, _ := setupAuthMiddlewareApp(t, NewMockRepository(mockController))

		resp, err := app.Test(newProtectedRequest(TestAccessToken))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Unauthorized - Invalid access token", readMessage(t, resp))
	})

	t.Run("when refresh token is presented as access token should return unauthorized", func(t *testing.T) {
		app, jwtGenerator := setupAuthMiddlewareApp(t, NewMockRepository(mockController))

		tokens, err := jwtGenerator.GenerateTokenPair(TestUserId)
		require.NoError(t, err)

		resp, err := app.Test(newProtectedRequest(tokens.RefreshToken))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("when user no longer exists should return unauthorized", func(t *testing.T) {
		mockUserRepository := NewMockRepository(mockController)
		app, jwtGenerator := setupAuthMiddlewareApp(t, mockUserRepository)

		accessToken, err := jwtGenerator.GenerateAccessToken(TestUserId)
		require.NoError(t, err)

		mockUserRepository.
			EXPECT().
			FindUserWithId(gomock.Any(), TestUserId).
			Return(nil, cerror.ErrorUserNotFound)

		resp, err := app.Test(newProtectedRequest(accessToken))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Unauthorized - Invalid access token", readMessage(t, resp))
	})

	t.Run("when credential store is unavailable should return internal server error", func(t *testing.T) {
		mockUserRepository := NewMockRepository(mockController)
		app, jwtGenerator := setupAuthMiddlewareApp(t, mockUserRepository)

		accessToken, err := jwtGenerator.GenerateAccessToken(TestUserId)
		require.NoError(t, err)

		mockUserRepository.
			EXPECT().
			FindUserWithId(gomock.Any(), TestUserId).
			Return(nil, cerror.ErrorStoreUnavailable)

		resp, err := app.Test(newProtectedRequest(accessToken))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, cerror.MessageInternalServerError, readMessage(t, resp))
	})
}

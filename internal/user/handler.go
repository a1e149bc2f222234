package user

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"auth-api/pkg/cerror"
	"auth-api/pkg/logger"
	"auth-api/pkg/server"
	"auth-api/pkg/session_cookie"
)

type handler struct {
	userService    Service
	cookieWriter   session_cookie.Writer
	authMiddleware fiber.Handler
	validate       *validator.Validate
}

func NewHandler(
	userService Service,
	cookieWriter session_cookie.Writer,
	authMiddleware fiber.Handler,
) server.Handler {
	return &handler{
		userService:    userService,
		cookieWriter:   cookieWriter,
		authMiddleware: authMiddleware,
		validate:       validator.New(),
	}
}

func (h *handler) RegisterRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")
	auth.Post("/signup", h.Signup)
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Post("/refresh", h.Refresh)
	auth.Get("/profile", h.authMiddleware, h.GetProfile)
}

func (h *handler) Signup(ctx *fiber.Ctx) error {
	log := h.eventLogger(ctx, "signup")

	var payload SignupPayload
	err := ctx.BodyParser(&payload)
	if err != nil {
		return cerror.ErrorBadRequest.WithFields(zap.Error(err))
	}

	payload.Normalize()
	err = h.validate.Struct(&payload)
	if err != nil {
		return cerror.ErrorValidation.WithFields(zap.Error(err))
	}

	session, err := h.userService.Signup(ctx.UserContext(), &payload)
	if err != nil {
		return err
	}

	h.cookieWriter.SetSessionCookies(ctx, session.Tokens)

	log.Infow(logger.EventFinishedSuccessfully, zap.String("userId", session.User.Id))
	return ctx.
		Status(fiber.StatusCreated).
		JSON(session.User)
}

func (h *handler) Login(ctx *fiber.Ctx) error {
	log := h.eventLogger(ctx, "login")

	var payload LoginPayload
	err := ctx.BodyParser(&payload)
	if err != nil {
		return cerror.ErrorBadRequest.WithFields(zap.Error(err))
	}

	payload.Normalize()
	err = h.validate.Struct(&payload)
	if err != nil {
		return cerror.ErrorValidation.WithFields(zap.Error(err))
	}

	session, err := h.userService.Login(ctx.UserContext(), &payload)
	if err != nil {
		return err
	}

	h.cookieWriter.SetSessionCookies(ctx, session.Tokens)

	log.Infow(logger.EventFinishedSuccessfully, zap.String("userId", session.User.Id))
	return ctx.
		Status(fiber.StatusOK).
		JSON(session.User)
}

func (h *handler) Logout(ctx *fiber.Ctx) error {
	log := h.eventLogger(ctx, "logout")

	refreshToken := ctx.Cookies(session_cookie.RefreshTokenCookieName)
	h.userService.Logout(ctx.UserContext(), refreshToken)
	h.cookieWriter.ClearSessionCookies(ctx)

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(&MessageResponse{Message: MessageLoggedOut})
}

func (h *handler) Refresh(ctx *fiber.Ctx) error {
	log := h.eventLogger(ctx, "refreshAccessToken")

	refreshToken := ctx.Cookies(session_cookie.RefreshTokenCookieName)
	accessToken, err := h.userService.RefreshAccessToken(ctx.UserContext(), refreshToken)
	if err != nil {
		return err
	}

	h.cookieWriter.SetAccessTokenCookie(ctx, accessToken)

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(&MessageResponse{Message: MessageTokenRefreshed})
}

func (h *handler) GetProfile(ctx *fiber.Ctx) error {
	log := h.eventLogger(ctx, "getProfile")

	userDocument, err := h.userService.GetProfile(ctx.UserContext(), UserFromLocals(ctx))
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(userDocument)
}

func (h *handler) eventLogger(ctx *fiber.Ctx, eventName string) *zap.SugaredLogger {
	log := logger.FromContext(ctx.UserContext()).
		With(zap.String("eventName", eventName))
	ctx.SetUserContext(logger.InjectContext(ctx.UserContext(), log))
	return log
}

package user

//go:generate mockgen -source=service.go -destination=mock_service.go -package=user

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"auth-api/pkg/cerror"
	"auth-api/pkg/jwt_generator"
	"auth-api/pkg/logger"
	"auth-api/pkg/metrics"
	"auth-api/pkg/token_cache"
)

type Service interface {
	Signup(ctx context.Context, payload *SignupPayload) (*Session, error)
	Login(ctx context.Context, payload *LoginPayload) (*Session, error)
	Logout(ctx context.Context, refreshToken string)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	GetProfile(ctx context.Context, identity *UserDocument) (*UserDocument, error)
}

type service struct {
	userRepository Repository
	tokenCache     token_cache.TokenCache
	jwtGenerator   jwt_generator.JwtGenerator
	metrics        metrics.Metrics
}

func NewService(
	userRepository Repository,
	tokenCache token_cache.TokenCache,
	jwtGenerator jwt_generator.JwtGenerator,
	authMetrics metrics.Metrics,
) Service {
	return &service{
		userRepository: userRepository,
		tokenCache:     tokenCache,
		jwtGenerator:   jwtGenerator,
		metrics:        authMetrics,
	}
}

func (s *service) Signup(ctx context.Context, payload *SignupPayload) (session *Session, err error) {
	defer func() { s.recordEvent(metrics.EventSignup, err) }()

	_, err = s.userRepository.FindUserWithEmail(ctx, payload.Email)
	if err == nil {
		return nil, cerror.ErrorConflict
	}
	if !errors.Is(err, cerror.ErrorUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, cerror.NewError(
			http.StatusInternalServerError,
			"error occurred while generate hash from password",
			zap.Error(err),
		)
	}

	now := time.Now().UTC()
	userDocument := &UserDocument{
		Id:        uuid.New().String(),
		Name:      payload.Name,
		Email:     NormalizeEmail(payload.Email),
		Password:  string(hashedPassword),
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	userDocument.Id, err = s.userRepository.InsertUser(ctx, userDocument)
	if err != nil {
		return nil, err
	}

	tokens, err := s.startSession(ctx, userDocument.Id)
	if err != nil {
		return nil, err
	}

	return &Session{
		User:   userDocument.ToResponse(),
		Tokens: tokens,
	}, nil
}

// Login answers an unknown email and a wrong password with the same error so
// callers cannot probe which accounts exist.
func (s *service) Login(ctx context.Context, payload *LoginPayload) (session *Session, err error) {
	defer func() { s.recordEvent(metrics.EventLogin, err) }()

	userDocument, err := s.userRepository.FindUserWithEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, cerror.ErrorUserNotFound) {
			return nil, cerror.ErrorInvalidCredentials.WithFields(
				zap.String("reason", "user not found"),
			)
		}

		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(userDocument.Password), []byte(payload.Password))
	if err != nil {
		return nil, cerror.ErrorInvalidCredentials.WithFields(
			zap.String("userId", userDocument.Id),
			zap.String("reason", "password mismatch"),
		)
	}

	tokens, err := s.startSession(ctx, userDocument.Id)
	if err != nil {
		return nil, err
	}

	return &Session{
		User:   userDocument.ToResponse(),
		Tokens: tokens,
	}, nil
}

// Logout revokes the cached refresh token when it can. Failures are only
// logged, the caller clears cookies regardless.
func (s *service) Logout(ctx context.Context, refreshToken string) {
	log := logger.FromContext(ctx)
	defer s.recordEvent(metrics.EventLogout, nil)

	if refreshToken == "" {
		return
	}

	claims, err := s.jwtGenerator.VerifyRefreshToken(refreshToken)
	if err != nil {
		log.Warnw("refresh token could not be verified on logout", zap.Error(err))
		return
	}

	err = s.tokenCache.DeleteRefreshToken(ctx, claims.UserId)
	if err != nil {
		log.Warnw(
			"refresh token could not be revoked on logout",
			zap.String("userId", claims.UserId),
			zap.Error(err),
		)
	}
}

// RefreshAccessToken mints a new access token only. The refresh token is not
// rotated and stays usable until it expires or a newer login replaces it.
func (s *service) RefreshAccessToken(ctx context.Context, refreshToken string) (accessToken string, err error) {
	defer func() { s.recordEvent(metrics.EventRefresh, err) }()

	if refreshToken == "" {
		return "", cerror.ErrorUnauthenticated
	}

	claims, err := s.jwtGenerator.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", cerror.ErrorInvalidToken.WithFields(zap.Error(err))
	}

	cachedRefreshToken, found, err := s.tokenCache.GetRefreshToken(ctx, claims.UserId)
	if err != nil {
		return "", err
	}

	if !found {
		return "", cerror.ErrorInvalidToken.WithFields(
			zap.String("userId", claims.UserId),
			zap.String("reason", "no cached refresh token"),
		)
	}

	if subtle.ConstantTimeCompare([]byte(cachedRefreshToken), []byte(refreshToken)) != 1 {
		return "", cerror.ErrorInvalidToken.WithFields(
			zap.String("userId", claims.UserId),
			zap.String("reason", "refresh token superseded"),
		)
	}

	accessToken, err = s.jwtGenerator.GenerateAccessToken(claims.UserId)
	if err != nil {
		return "", cerror.ErrorGenerateToken.WithFields(zap.Error(err))
	}

	return accessToken, nil
}

func (s *service) GetProfile(_ context.Context, identity *UserDocument) (*UserDocument, error) {
	if identity == nil {
		return nil, cerror.ErrorMissingAccessToken
	}

	return identity, nil
}

func (s *service) startSession(ctx context.Context, userId string) (*jwt_generator.Tokens, error) {
	tokens, err := s.jwtGenerator.GenerateTokenPair(userId)
	if err != nil {
		return nil, cerror.ErrorGenerateToken.WithFields(zap.Error(err))
	}

	err = s.tokenCache.StoreRefreshToken(ctx, userId, tokens.RefreshToken)
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

func (s *service) recordEvent(event string, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}

	s.metrics.IncAuthEvent(event, outcome)
}

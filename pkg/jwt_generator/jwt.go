package jwt_generator

//go:generate mockgen -source=jwt.go -destination=mock_jwt.go -package=jwt_generator

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"auth-api/pkg/config"
)

type JwtGenerator interface {
	GenerateTokenPair(userId string) (*Tokens, error)
	GenerateAccessToken(userId string) (string, error)
	VerifyAccessToken(rawJwtToken string) (*Claims, error)
	VerifyRefreshToken(rawJwtToken string) (*Claims, error)
}

type jwtGenerator struct {
	accessTokenSecret    []byte
	refreshTokenSecret   []byte
	accessTokenLifetime  time.Duration
	refreshTokenLifetime time.Duration
}

func NewJwtGenerator(jwtConfig config.JwtConfig) (JwtGenerator, error) {
	if len(jwtConfig.AccessTokenSecret) == 0 || len(jwtConfig.RefreshTokenSecret) == 0 {
		return nil, errors.New("access and refresh token secrets must not be empty")
	}

	if bytes.Equal(jwtConfig.AccessTokenSecret, jwtConfig.RefreshTokenSecret) {
		return nil, errors.New("access and refresh token secrets must differ")
	}

	accessTokenLifetime := jwtConfig.AccessTokenLifetime
	if accessTokenLifetime <= 0 {
		accessTokenLifetime = config.AccessTokenLifetime
	}

	refreshTokenLifetime := jwtConfig.RefreshTokenLifetime
	if refreshTokenLifetime <= 0 {
		refreshTokenLifetime = config.RefreshTokenLifetime
	}

	return &jwtGenerator{
		accessTokenSecret:    jwtConfig.AccessTokenSecret,
		refreshTokenSecret:   jwtConfig.RefreshTokenSecret,
		accessTokenLifetime:  accessTokenLifetime,
		refreshTokenLifetime: refreshTokenLifetime,
	}, nil
}

func (jwtGenerator *jwtGenerator) GenerateTokenPair(userId string) (*Tokens, error) {
	accessToken, err := jwtGenerator.GenerateAccessToken(userId)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwtGenerator.generateToken(
		userId,
		jwtGenerator.refreshTokenSecret,
		jwtGenerator.refreshTokenLifetime,
	)
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	return &Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (jwtGenerator *jwtGenerator) GenerateAccessToken(userId string) (string, error) {
	accessToken, err := jwtGenerator.generateToken(
		userId,
		jwtGenerator.accessTokenSecret,
		jwtGenerator.accessTokenLifetime,
	)
	if err != nil {
		return "", fmt.Errorf("access token: %w", err)
	}

	return accessToken, nil
}

func (jwtGenerator *jwtGenerator) VerifyAccessToken(rawJwtToken string) (*Claims, error) {
	return jwtGenerator.verifyToken(rawJwtToken, jwtGenerator.accessTokenSecret)
}

func (jwtGenerator *jwtGenerator) VerifyRefreshToken(rawJwtToken string) (*Claims, error) {
	return jwtGenerator.verifyToken(rawJwtToken, jwtGenerator.refreshTokenSecret)
}

func (jwtGenerator *jwtGenerator) generateToken(
	userId string,
	secret []byte,
	lifetime time.Duration,
) (string, error) {
	if userId == "" {
		return "", errors.New("user id must not be empty")
	}

	now := time.Now().UTC()
	claims := Claims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    IssuerDefault,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

func (jwtGenerator *jwtGenerator) verifyToken(rawJwtToken string, secret []byte) (*Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(rawJwtToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("jwt token is not valid signature")
		}

		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !claims.VerifyIssuer(IssuerDefault, true) {
		return nil, fmt.Errorf("%w: ambiguous jwt token issuer", ErrInvalidToken)
	}

	if claims.UserId == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	return &claims, nil
}

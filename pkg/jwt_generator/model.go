package jwt_generator

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

const IssuerDefault = "auth-api"

var (
	ErrInvalidToken = errors.New("invalid jwt token")
	ErrExpiredToken = errors.New("expired jwt token")
)

type Claims struct {
	UserId string `json:"userId"`
	jwt.RegisteredClaims
}

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

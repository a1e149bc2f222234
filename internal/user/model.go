package user

import (
	"strings"
	"time"

	"auth-api/pkg/jwt_generator"
)

const (
	RoleUser = "user"

	MessageLoggedOut      = "Logged out successfully"
	MessageTokenRefreshed = "Token refreshed successfully"
)

type SignupPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserDocument struct {
	Id        string    `bson:"_id" json:"_id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type UserResponse struct {
	Id    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type Session struct {
	User   *UserResponse
	Tokens *jwt_generator.Tokens
}

func (p *SignupPayload) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = NormalizeEmail(p.Email)
}

func (p *LoginPayload) Normalize() {
	p.Email = NormalizeEmail(p.Email)
}

func (d *UserDocument) ToResponse() *UserResponse {
	return &UserResponse{
		Id:    d.Id,
		Name:  d.Name,
		Email: d.Email,
		Role:  d.Role,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

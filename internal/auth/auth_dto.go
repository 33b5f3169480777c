package auth

import (
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/user"
)

type RegisterRequest struct {
	FullName      string  `json:"full_name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required,min=6"`
	Role          string  `json:"role"`
	StudentNumber *string `json:"student_number"`
	Course        *string `json:"course"`
	Age           *int    `json:"age" binding:"omitempty,min=10,max=120"`
	Gender        *string `json:"gender"`
	ContactNumber *string `json:"contact_number"`
	Address       *string `json:"address"`
	RequiredHours *int    `json:"required_hours" binding:"omitempty,gt=0"`
	ProfilePhoto  *string `json:"profile_photo"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse = user.UserResponse

// TokenPair is empty for accounts that are not Active yet.
type TokenPair struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RegisterResult struct {
	User    AuthResponse `json:"user"`
	Message string       `json:"message"`
	TokenPair
}

type TokenTTL struct {
	Access  time.Duration
	Refresh time.Duration
}

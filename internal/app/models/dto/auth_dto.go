package dto

import (
	"time"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@university.edu"`
	Password string `json:"password" binding:"required,min=8" example:"S3cret!pass"`
	Role     string `json:"role" binding:"omitempty,oneof=admin student" example:"student"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@university.edu"`
	Password string `json:"password" binding:"required" example:"S3cret!pass"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" example:"8a41c720-05f4-4a89-9d5e-2f6f3c2a9b1e"`
}

// TokenResponse contains the issued token pair
type TokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// UserResponse is the public representation of a user account
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Email     string    `json:"email" example:"student@university.edu"`
	Role      string    `json:"role" example:"student"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse couples the authenticated user with a token pair
type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}

// ToUserResponse maps a user model to its public representation
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

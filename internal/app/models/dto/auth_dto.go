package dto

import "github.com/campus2corporate/portal/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents a role-discriminated registration request.
// Student fields are required when role is student, alumni fields when
// role is alumni; the service enforces the cross-field rules.
type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     models.RoleType `json:"role" binding:"required,oneof=student alumni"`

	// Student fields
	RollNumber string `json:"rollNumber,omitempty"`
	Branch     string `json:"branch,omitempty"`
	School     string `json:"school,omitempty"`
	CGPA       string `json:"cgpa,omitempty"`

	// Alumni fields
	Company        string `json:"company,omitempty"`
	Position       string `json:"position,omitempty"`
	GraduationYear int    `json:"graduationYear,omitempty"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  interface{}   `json:"user"`
}

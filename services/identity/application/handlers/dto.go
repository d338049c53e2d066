package handlers

import (
	"time"

	"github.com/google/uuid"

	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/identity/application/services"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/models"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	UserID      uuid.UUID `json:"user_id"      example:"11111111-2222-3333-4444-555555555555"`
	Email       string    `json:"email"        example:"student@adelaide.edu.au"`
	DisplayName string    `json:"display_name" example:"Seed Student"`
	Role        string    `json:"role"         example:"Student"`
	Department  string    `json:"department"   example:"ComputerScience"`
	Degree      string    `json:"degree"       example:"Bachelor"`
	Sex         string    `json:"sex"          example:"PreferNotToSay"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Nationality string    `json:"nationality,omitempty" example:"Australia"`
	Age         *int      `json:"age,omitempty"         example:"21"`
	IsActive    bool      `json:"is_active"    example:"true"`
} // @name UserResponse

// AuthResponse carries a bearer token and the signed-in user.
type AuthResponse struct {
	Token     string       `json:"token"      example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresAt time.Time    `json:"expires_at" example:"2025-03-01T11:00:00Z"`
	User      UserResponse `json:"user"`
} // @name AuthResponse

// RegisterResponse confirms that the activation email went out.
type RegisterResponse struct {
	Email   string `json:"email"   example:"a1234567@adelaide.edu.au"`
	Message string `json:"message" example:"email has been sent to a1234567@adelaide.edu.au"`
} // @name RegisterResponse

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		UserID:      u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Department:  u.Department.String(),
		Degree:      u.Degree.String(),
		Sex:         u.Sex.String(),
		AvatarURL:   u.AvatarURL,
		Nationality: u.Nationality.String(),
		Age:         u.Age,
		IsActive:    u.IsActive,
	}
}

func toAuthResponse(res *appsvcs.AuthResult) AuthResponse {
	return AuthResponse{Token: res.Token, ExpiresAt: res.ExpiresAt, User: toUserResponse(res.User)}
}
